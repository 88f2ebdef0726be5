package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/jnanasetu/platform/core/assessment"
)

type assessmentRepository struct {
	db *sqlx.DB
}

var _ assessment.Repository = (*assessmentRepository)(nil) // interface compliance check

func NewAssessmentRepository(db *sqlx.DB) *assessmentRepository {
	return &assessmentRepository{db: db}
}

type assessmentRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Score     float64        `db:"score"`
	SkillGaps pq.StringArray `db:"skill_gaps"`
	CreatedAt time.Time      `db:"created_at"`
}

func (repo assessmentRepository) fromRow(row assessmentRow) assessment.Assessment {
	return assessment.Assessment{
		ID:        row.ID,
		UserID:    row.UserID,
		Score:     row.Score,
		SkillGaps: row.SkillGaps,
		CreatedAt: row.CreatedAt,
	}
}

func (repo assessmentRepository) CreateAssessment(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	a.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO assessment (id, user_id, score, skill_gaps, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.Score, pq.StringArray(a.SkillGaps), a.CreatedAt.UTC())
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "inserting assessment")
	}
	return a, nil
}

// GetAssessment carries the owner filter in the query itself: a record owned
// by someone else scans as no rows.
func (repo assessmentRepository) GetAssessment(ctx context.Context, ownerID, id string) (assessment.Assessment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return assessment.Assessment{}, assessment.ErrNotFound
	}
	var row assessmentRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM assessment WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return assessment.Assessment{}, assessment.ErrNotFound
		}
		return assessment.Assessment{}, errors.Wrap(err, "finding assessment")
	}
	return repo.fromRow(row), nil
}

func (repo assessmentRepository) QueryAssessments(ctx context.Context, ownerID string) ([]assessment.Assessment, error) {
	var rows []assessmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM assessment WHERE user_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying assessments")
	}
	res := make([]assessment.Assessment, 0, len(rows))
	for _, row := range rows {
		res = append(res, repo.fromRow(row))
	}
	return res, nil
}
