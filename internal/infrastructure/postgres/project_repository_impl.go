package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	var discordURL *string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.GitHubURL, &discordURL,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.DiscordURL = strOrEmpty(discordURL)
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (title, description, github_url, discord_url, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.GitHubURL, nullStr(p.DiscordURL), p.OwnerID)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, github_url, discord_url, owner_id, created_at, updated_at
		FROM projects WHERE id = $1
	`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadTags(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) GetByGitHubURL(ctx context.Context, url string) (*entity.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, github_url, discord_url, owner_id, created_at, updated_at
		FROM projects WHERE github_url = $1
	`, url)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List filters by an optional title/description substring and an optional tag
// set, newest first.
func (r *ProjectRepository) List(ctx context.Context, page, size int, search string, tags []string) ([]*entity.Project, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if s := strings.TrimSpace(search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	if len(tags) > 0 {
		args = append(args, tags)
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM project_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.project_id = p.id AND lower(t.name) = ANY (SELECT lower(x) FROM unnest($%d::text[]) AS x)
		)`, len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM projects p`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, size, (page-1)*size)
	q := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.github_url, p.discord_url, p.owner_id, p.created_at, p.updated_at
		FROM projects p%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadTagsForAll(ctx, projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string, page, size int) ([]*entity.Project, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM projects WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, github_url, discord_url, owner_id, created_at, updated_at
		FROM projects WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadTagsForAll(ctx, projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET title = $1, description = $2, github_url = $3, discord_url = $4, updated_at = $5
		WHERE id = $6
	`, p.Title, p.Description, p.GitHubURL, nullStr(p.DiscordURL), p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) IsOwner(ctx context.Context, projectID, userID string) (bool, error) {
	var owner bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND owner_id = $2)`,
		projectID, userID).Scan(&owner)
	return owner, err
}

func (r *ProjectRepository) SetTags(ctx context.Context, projectID string, tagIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM project_tags WHERE project_id = $1`, projectID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_tags (project_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, projectID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func collectProjects(rows pgx.Rows) ([]*entity.Project, error) {
	projects := make([]*entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) loadTags(ctx context.Context, p *entity.Project) error {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN project_tags pt ON pt.tag_id = t.id
		WHERE pt.project_id = $1
		ORDER BY t.name
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return err
		}
		p.Tags = append(p.Tags, t)
	}
	return rows.Err()
}

func (r *ProjectRepository) loadTagsForAll(ctx context.Context, projects []*entity.Project) error {
	for _, p := range projects {
		if err := r.loadTags(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
