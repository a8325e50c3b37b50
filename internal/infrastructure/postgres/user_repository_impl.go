package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

const userColumns = `
	id, username, email, password_hash, role,
	github_url, discord_url, profile_image_url,
	email_verified, verification_token, verification_token_expiry,
	password_reset_token, password_reset_token_expiry,
	created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var (
		role                 string
		ghURL, dcURL, imgURL *string
		vTok, rTok           *string
		vExp, rExp           *time.Time
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role,
		&ghURL, &dcURL, &imgURL,
		&u.EmailVerified, &vTok, &vExp, &rTok, &rExp,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.ParseRole(role)
	u.GitHubURL = strOrEmpty(ghURL)
	u.DiscordURL = strOrEmpty(dcURL)
	u.ProfileImageURL = strOrEmpty(imgURL)
	u.VerificationToken = strOrEmpty(vTok)
	u.VerificationTokenExpiry = timeOrZero(vExp)
	u.PasswordResetToken = strOrEmpty(rTok)
	u.PasswordResetTokenExpiry = timeOrZero(rExp)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role,
			github_url, discord_url, profile_image_url,
			email_verified, verification_token, verification_token_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.PasswordHash, string(u.Role),
		nullStr(u.GitHubURL), nullStr(u.DiscordURL), nullStr(u.ProfileImageURL),
		u.EmailVerified, nullStr(u.VerificationToken), nullTime(u.VerificationTokenExpiry))

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, role = $4,
			github_url = $5, discord_url = $6, profile_image_url = $7,
			email_verified = $8, verification_token = $9, verification_token_expiry = $10,
			password_reset_token = $11, password_reset_token_expiry = $12,
			updated_at = $13
		WHERE id = $14
	`, u.Username, u.Email, u.PasswordHash, string(u.Role),
		nullStr(u.GitHubURL), nullStr(u.DiscordURL), nullStr(u.ProfileImageURL),
		u.EmailVerified, nullStr(u.VerificationToken), nullTime(u.VerificationTokenExpiry),
		nullStr(u.PasswordResetToken), nullTime(u.PasswordResetTokenExpiry),
		u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, page, size int) ([]*entity.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, size)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// ConsumeVerificationToken is a compare-and-clear update: it only applies when
// the token still matches and has not expired, so a duplicate confirmation
// observes zero rows and reports no match.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) (string, bool, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET email_verified = TRUE,
			verification_token = NULL,
			verification_token_expiry = NULL,
			updated_at = now()
		WHERE verification_token = $1 AND verification_token_expiry > now()
		RETURNING id
	`, token).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// ConsumePasswordResetToken replaces the hash and clears the reset token pair
// in one conditional update. Expired and unknown tokens are indistinguishable.
func (r *UserRepository) ConsumePasswordResetToken(ctx context.Context, token, newPasswordHash string) (bool, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $2,
			password_reset_token = NULL,
			password_reset_token_expiry = NULL,
			updated_at = now()
		WHERE password_reset_token = $1 AND password_reset_token_expiry > now()
		RETURNING id
	`, token, newPasswordHash).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
