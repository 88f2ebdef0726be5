package assessment

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("assessment not found")

type (
	// Repository implementations must apply the owner filter as a query
	// predicate: a record owned by someone else is reported as ErrNotFound,
	// never returned.
	Repository interface {
		CreateAssessment(ctx context.Context, a Assessment) (Assessment, error)
		GetAssessment(ctx context.Context, ownerID, id string) (Assessment, error)
		// QueryAssessments returns the owner's assessments, newest first.
		QueryAssessments(ctx context.Context, ownerID string) ([]Assessment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ownerID string, na NewAssessment) (Assessment, error) {
	a := Assessment{
		UserID:    ownerID,
		Score:     *na.Score,
		SkillGaps: na.SkillGaps,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateAssessment(ctx, a)
}

func (svc *Service) Get(ctx context.Context, ownerID, id string) (Assessment, error) {
	return svc.repo.GetAssessment(ctx, ownerID, id)
}

func (svc *Service) Query(ctx context.Context, ownerID string) ([]Assessment, error) {
	return svc.repo.QueryAssessments(ctx, ownerID)
}
