package repository

import (
	"context"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
//
// ConsumeVerificationToken and ConsumePasswordResetToken are compare-and-clear
// operations: the update only applies when the stored token still matches and
// its expiry is in the future, so a concurrent duplicate observes "no match".
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context, page, size int) ([]*entity.User, int, error)

	// ConsumeVerificationToken marks the matching account verified and clears
	// the token pair. Returns the account id and false when no unexpired token
	// matches.
	ConsumeVerificationToken(ctx context.Context, token string) (string, bool, error)

	// ConsumePasswordResetToken replaces the password hash and clears the
	// token pair in one atomic update. Returns false when no unexpired token
	// matches.
	ConsumePasswordResetToken(ctx context.Context, token, newPasswordHash string) (bool, error)
}
