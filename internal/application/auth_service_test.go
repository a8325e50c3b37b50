package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhubhq/devhub-api/config"
	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// fakeUserRepo is an in-memory UserRepository with the same conditional
// update semantics as the Postgres implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = copyUser(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = copyUser(u)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, page, size int) ([]*entity.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, copyUser(u))
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) ConsumeVerificationToken(_ context.Context, token string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken == token && u.VerificationTokenExpiry.After(time.Now()) {
			u.SetEmailVerified()
			return u.ID, true, nil
		}
	}
	return "", false, nil
}

func (r *fakeUserRepo) ConsumePasswordResetToken(_ context.Context, token, newPasswordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PasswordResetToken == token && u.PasswordResetTokenExpiry.After(time.Now()) {
			u.PasswordHash = newPasswordHash
			u.ClearPasswordResetToken()
			return true, nil
		}
	}
	return false, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:               "devhub-api",
		VerificationTokenTTL:  24 * time.Hour,
		PasswordResetTokenTTL: time.Hour,
		ResetPasswordURL:      "http://localhost/reset-password",
		VerifyEmailURL:        "http://localhost/verify-email",
		MailSendEnabled:       true,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAuth(t *testing.T) (*AuthService, *fakeUserRepo, *fakePublisher) {
	t.Helper()
	repo := newFakeUserRepo()
	pub := &fakePublisher{}
	jwt := &helpers.JWTManager{
		Secret:   []byte("test-secret"),
		Issuer:   "devhub-api",
		Audience: "devhub-clients",
		TTL:      time.Hour,
	}
	return NewAuthService(repo, jwt, pub, testConfig(), quietLogger()), repo, pub
}

func TestRegister_HashesPasswordAndQueuesEmail(t *testing.T) {
	svc, repo, pub := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice@Example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(user.PasswordHash, "hunter22"))
	assert.False(t, user.EmailVerified)
	assert.Len(t, user.VerificationToken, 32)
	assert.Equal(t, 1, pub.count())

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.VerificationToken, stored.VerificationToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice2", "ALICE@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_PublishFailureDoesNotFailRegistration(t *testing.T) {
	svc, _, pub := newTestAuth(t)
	pub.err = fmt.Errorf("broker down")

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestLogin_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	_, ok, err := svc.users.ConsumeVerificationToken(ctx, user.VerificationToken)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, _, errUnknown := svc.Login(ctx, "nobody@example.com", "hunter22")
	_, _, _, errWrongPwd := svc.Login(ctx, "alice@example.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
}

func TestLogin_UnverifiedEmailRejected(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestLogin_IssuesTokenWithIdentityClaims(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	verified, err := svc.ConfirmEmail(ctx, reg.VerificationToken)
	require.NoError(t, err)
	require.True(t, verified)

	user, token, exp, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.jwt.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "User", claims.Role)
}

func TestConfirmEmail_SecondUseFails(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	token := user.VerificationToken

	first, err := svc.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := svc.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestConfirmEmail_UnknownToken(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	ok, err := svc.ConfirmEmail(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.ConfirmEmail(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResendVerification(t *testing.T) {
	svc, _, pub := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	oldToken := user.VerificationToken

	require.NoError(t, svc.ResendVerificationEmail(ctx, "alice@example.com"))
	assert.Equal(t, 2, pub.count())

	refreshed, err := svc.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, refreshed.VerificationToken)

	// Old token no longer works
	ok, err := svc.ConfirmEmail(ctx, oldToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown email is silently accepted
	require.NoError(t, svc.ResendVerificationEmail(ctx, "nobody@example.com"))

	// Verified accounts conflict
	_, err = svc.ConfirmEmail(ctx, refreshed.VerificationToken)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ResendVerificationEmail(ctx, "alice@example.com"), ErrAlreadyVerified)
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	svc, _, pub := newTestAuth(t)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Equal(t, 0, pub.count())
}

func TestResetPassword_Flow(t *testing.T) {
	svc, repo, _ := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com"))
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordResetToken)

	require.NoError(t, svc.ResetPassword(ctx, stored.PasswordResetToken, "new-password-1"))

	after, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(after.PasswordHash, "new-password-1"))
	assert.Empty(t, after.PasswordResetToken)

	// Token is single-use
	assert.ErrorIs(t, svc.ResetPassword(ctx, stored.PasswordResetToken, "new-password-2"),
		ErrInvalidResetToken)
}

func TestResetPassword_ConcurrentSingleWinner(t *testing.T) {
	svc, repo, _ := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com"))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	token := stored.PasswordResetToken

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.ResetPassword(ctx, token, fmt.Sprintf("password-%d", i))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, e := range errs {
		if e == nil {
			winners++
		} else {
			assert.ErrorIs(t, e, ErrInvalidResetToken)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestChangePassword(t *testing.T) {
	svc, repo, _ := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "new-password"),
		ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "hunter22", "new-password"))
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.PasswordHash, "new-password"))

	assert.ErrorIs(t, svc.ChangePassword(ctx, "missing-id", "x", "y"), ErrUserNotFound)
}

func TestChangePassword_InvalidatesOutstandingResetToken(t *testing.T) {
	svc, repo, _ := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com"))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	resetToken := stored.PasswordResetToken
	require.NotEmpty(t, resetToken)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "hunter22", "new-password"))

	assert.ErrorIs(t, svc.ResetPassword(ctx, resetToken, "stolen"), ErrInvalidResetToken)
}
