package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	t := &entity.Tag{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	t := &entity.Tag{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE lower(name) = lower($1)`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TagRepository) GetAll(ctx context.Context) ([]*entity.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*entity.Tag, 0)
	for rows.Next() {
		t := &entity.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepository) Create(ctx context.Context, t *entity.Tag) error {
	t.Name = strings.TrimSpace(t.Name)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		RETURNING id, created_at, updated_at
	`, t.Name)
	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetOrCreate returns the tag with the given name, creating it when missing.
// The upsert keeps concurrent creators from racing on the unique name index.
func (r *TagRepository) GetOrCreate(ctx context.Context, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	t := &entity.Tag{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (lower(name)) DO UPDATE SET updated_at = now()
		RETURNING id, name, created_at, updated_at
	`, name).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TagRepository = (*TagRepository)(nil)
