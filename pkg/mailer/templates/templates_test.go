package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_VerifyEmail(t *testing.T) {
	data := ToMap(EmailData{
		Name:          "alice",
		AppName:       "DevHub",
		VerifyURL:     "http://localhost/verify-email?token=abc",
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		ExpiresAtText: "tomorrow",
	})

	text, html, err := Render(VerifyEmail, data)
	require.NoError(t, err)

	assert.Contains(t, text, "http://localhost/verify-email?token=abc")
	assert.Contains(t, html, "http://localhost/verify-email?token=abc")
	assert.Contains(t, text, "alice")
}

func TestRender_ForgotPassword(t *testing.T) {
	data := ToMap(EmailData{
		Name:     "bob",
		AppName:  "DevHub",
		ResetURL: "http://localhost/reset-password?token=xyz",
	})

	text, html, err := Render(ForgotPassword, data)
	require.NoError(t, err)

	assert.Contains(t, text, "http://localhost/reset-password?token=xyz")
	assert.Contains(t, html, "http://localhost/reset-password?token=xyz")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, err := Render("no-such-template", nil)
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Verify your email address", Subject(VerifyEmail))
	assert.Equal(t, "Reset your password", Subject(ForgotPassword))
	assert.Equal(t, "Notification", Subject("other"))
}
