package entity

import (
	"errors"
	"strings"
	"time"
)

// Role is the authorization level attached to a user account.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole maps a stored/claimed string onto a known role, defaulting to User.
func ParseRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

var (
	ErrInvalidUsername       = errors.New("username must not be empty")
	ErrInvalidEmail          = errors.New("email must not be empty")
	ErrInvalidPasswordHash   = errors.New("password hash must not be empty")
	ErrRoleChangeNotAllowed  = errors.New("only admins can change user roles")
	ErrVerificationTokenUsed = errors.New("verification token already consumed")
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash; the plaintext never
// reaches the entity. Token pairs (verification, password reset) are either
// both set with a future expiry or both cleared.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role

	GitHubURL       string
	DiscordURL      string
	ProfileImageURL string

	EmailVerified            bool
	VerificationToken        string
	VerificationTokenExpiry  time.Time
	PasswordResetToken       string
	PasswordResetTokenExpiry time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser validates the identity fields and returns an unverified account
// with the default role.
func NewUser(username, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, ErrInvalidPasswordHash
	}
	return &User{
		Username:      username,
		Email:         email,
		PasswordHash:  passwordHash,
		Role:          RoleUser,
		EmailVerified: false,
	}, nil
}

// ChangeRole updates the role. The actor performing the change must already
// hold the Admin role; the rule lives here so it holds regardless of call path.
func (u *User) ChangeRole(newRole Role, changedBy *User) error {
	if changedBy == nil || changedBy.Role != RoleAdmin {
		return ErrRoleChangeNotAllowed
	}
	u.Role = newRole
	return nil
}

func (u *User) ChangeUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidUsername
	}
	u.Username = username
	return nil
}

func (u *User) ChangeEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// ChangeGitHubURL trims the value and normalizes empty strings to absent.
func (u *User) ChangeGitHubURL(url string) {
	u.GitHubURL = strings.TrimSpace(url)
}

func (u *User) ChangeDiscordURL(url string) {
	u.DiscordURL = strings.TrimSpace(url)
}

func (u *User) ChangeProfileImageURL(url string) {
	u.ProfileImageURL = strings.TrimSpace(url)
}

// SetVerificationToken registers an outstanding verification token,
// replacing any previous one.
func (u *User) SetVerificationToken(token string, expiry time.Time) {
	u.VerificationToken = token
	u.VerificationTokenExpiry = expiry
}

// SetEmailVerified marks the account verified and clears the token pair.
func (u *User) SetEmailVerified() {
	u.EmailVerified = true
	u.VerificationToken = ""
	u.VerificationTokenExpiry = time.Time{}
}

// SetPasswordResetToken registers an outstanding reset token.
func (u *User) SetPasswordResetToken(token string, expiry time.Time) {
	u.PasswordResetToken = token
	u.PasswordResetTokenExpiry = expiry
}

// ClearPasswordResetToken removes any outstanding reset token.
func (u *User) ClearPasswordResetToken() {
	u.PasswordResetToken = ""
	u.PasswordResetTokenExpiry = time.Time{}
}

// UpdatePassword replaces the stored hash and clears any outstanding reset
// token in the same step.
func (u *User) UpdatePassword(passwordHash string) error {
	if passwordHash == "" {
		return ErrInvalidPasswordHash
	}
	u.PasswordHash = passwordHash
	u.ClearPasswordResetToken()
	return nil
}
