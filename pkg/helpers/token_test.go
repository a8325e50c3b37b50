package helpers

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOpaqueToken(t *testing.T) {
	tok, err := GenOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, tok, 32)
	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestGenOpaqueToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := GenOpaqueToken()
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}
