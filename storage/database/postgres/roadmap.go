package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jnanasetu/platform/core/roadmap"
)

type roadmapRepository struct {
	db *sqlx.DB
}

var _ roadmap.Repository = (*roadmapRepository)(nil) // interface compliance check

func NewRoadmapRepository(db *sqlx.DB) *roadmapRepository {
	return &roadmapRepository{db: db}
}

type roadmapRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (repo roadmapRepository) fromRow(row roadmapRow) roadmap.Roadmap {
	return roadmap.Roadmap{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repo roadmapRepository) CreateRoadmap(ctx context.Context, r roadmap.Roadmap) (roadmap.Roadmap, error) {
	r.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO roadmap (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.UserID, r.Title, r.Content, r.CreatedAt.UTC(), r.UpdatedAt.UTC())
	if err != nil {
		return roadmap.Roadmap{}, errors.Wrap(err, "inserting roadmap")
	}
	return r, nil
}

func (repo roadmapRepository) GetRoadmap(ctx context.Context, ownerID, id string) (roadmap.Roadmap, error) {
	if _, err := uuid.Parse(id); err != nil {
		return roadmap.Roadmap{}, roadmap.ErrNotFound
	}
	var row roadmapRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM roadmap WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return roadmap.Roadmap{}, roadmap.ErrNotFound
		}
		return roadmap.Roadmap{}, errors.Wrap(err, "finding roadmap")
	}
	return repo.fromRow(row), nil
}

func (repo roadmapRepository) QueryRoadmaps(ctx context.Context, ownerID string) ([]roadmap.Roadmap, error) {
	var rows []roadmapRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM roadmap WHERE user_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying roadmaps")
	}
	res := make([]roadmap.Roadmap, 0, len(rows))
	for _, row := range rows {
		res = append(res, repo.fromRow(row))
	}
	return res, nil
}

// UpdateRoadmap is a full replace of title and content, owner-scoped in the
// UPDATE predicate so updating a foreign record reports ErrNotFound.
func (repo roadmapRepository) UpdateRoadmap(ctx context.Context, r roadmap.Roadmap) (roadmap.Roadmap, error) {
	if _, err := uuid.Parse(r.ID); err != nil {
		return roadmap.Roadmap{}, roadmap.ErrNotFound
	}
	var row roadmapRow
	err := repo.db.GetContext(ctx, &row, `
		UPDATE roadmap
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING *`,
		r.Title, r.Content, r.UpdatedAt.UTC(), r.ID, r.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return roadmap.Roadmap{}, roadmap.ErrNotFound
		}
		return roadmap.Roadmap{}, errors.Wrap(err, "updating roadmap")
	}
	return repo.fromRow(row), nil
}
