package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devhubhq/devhub-api/config"
	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
	"github.com/devhubhq/devhub-api/pkg/helpers"
	"github.com/devhubhq/devhub-api/pkg/mailer"
	"github.com/devhubhq/devhub-api/pkg/mailer/templates"
)

// Publisher is the slice of the queue publisher the auth flows need.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService orchestrates registration, login, email verification, and the
// password lifecycle. It owns no state beyond its collaborators; all account
// state lives behind the user repository.
type AuthService struct {
	users repository.UserRepository
	jwt   *helpers.JWTManager
	pub   Publisher
	cfg   *config.Config
	log   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, pub Publisher, cfg *config.Config, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, pub: pub, cfg: cfg, log: log}
}

// Register creates an unverified account and queues the verification email.
// The plaintext password is hashed here and never stored or logged.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := entity.NewUser(username, email, hash)
	if err != nil {
		return nil, err
	}

	token, err := helpers.GenOpaqueToken()
	if err != nil {
		return nil, err
	}
	user.SetVerificationToken(token, time.Now().Add(s.cfg.VerificationTokenTTL))

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.enqueueVerificationEmail(ctx, user)

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")
	return user, nil
}

// Login checks credentials and issues a bearer token. An unknown email and a
// wrong password fail the same way so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, "", time.Time{}, ErrEmailNotVerified
	}

	token, exp, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// ConfirmEmail consumes a verification token. It returns true when this call
// verified the account and false when the token is unknown, expired, or was
// already consumed; the three cases are deliberately indistinguishable.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	userID, ok, err := s.users.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.WithField("user_id", userID).Info("email verified")
	}
	return ok, nil
}

// ResendVerificationEmail rotates the verification token for an unverified
// account. Unknown emails are silently accepted.
func (s *AuthService) ResendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	token, err := helpers.GenOpaqueToken()
	if err != nil {
		return err
	}
	user.SetVerificationToken(token, time.Now().Add(s.cfg.VerificationTokenTTL))
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.enqueueVerificationEmail(ctx, user)
	return nil
}

// RequestPasswordReset issues a reset token and queues the reset email. The
// result is identical whether or not the email belongs to an account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.WithField("email", email).Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := helpers.GenOpaqueToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.cfg.PasswordResetTokenTTL)
	user.SetPasswordResetToken(token, expiry)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.enqueueEmail(ctx, user, templates.ForgotPassword, templates.EmailData{
		Name:           user.Username,
		Email:          user.Email,
		RecipientEmail: user.Email,
		AppName:        s.cfg.AppName,
		ResetURL:       s.cfg.ResetPasswordURL + "?token=" + url.QueryEscape(token),
		ExpiresAt:      expiry,
		ExpiresAtText:  expiry.UTC().Format("Jan 2, 2006 at 15:04 MST"),
	})
	return nil
}

// ResetPassword consumes a reset token and installs a new password hash in one
// conditional update, so concurrent attempts with the same token produce
// exactly one winner.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	ok, err := s.users.ConsumePasswordResetToken(ctx, token, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}
	return nil
}

// ChangePassword replaces the password of an authenticated user after
// re-checking the current one. Any outstanding reset token is invalidated.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.CompareHashAndPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := user.UpdatePassword(hash); err != nil {
		return err
	}
	return s.users.Update(ctx, user)
}

func (s *AuthService) enqueueVerificationEmail(ctx context.Context, user *entity.User) {
	s.enqueueEmail(ctx, user, templates.VerifyEmail, templates.EmailData{
		Name:           user.Username,
		Email:          user.Email,
		RecipientEmail: user.Email,
		AppName:        s.cfg.AppName,
		VerifyURL:      s.cfg.VerifyEmailURL + "?token=" + url.QueryEscape(user.VerificationToken),
		ExpiresAt:      user.VerificationTokenExpiry,
		ExpiresAtText:  user.VerificationTokenExpiry.UTC().Format("Jan 2, 2006 at 15:04 MST"),
	})
}

// enqueueEmail hands the job to the queue. A publish failure does not fail the
// calling operation; the account state is already persisted and the user can
// re-request the email.
func (s *AuthService) enqueueEmail(ctx context.Context, user *entity.User, template string, data templates.EmailData) {
	if !s.cfg.MailSendEnabled || s.pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       user.Email,
		Subject:  templates.Subject(template),
		Template: template,
		Data:     templates.ToMap(data),
	}
	if err := s.pub.PublishJSON(ctx, job); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id":  user.ID,
			"template": template,
		}).Warn(fmt.Sprintf("failed to enqueue %s email", template))
	}
}
