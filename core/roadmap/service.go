package roadmap

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("roadmap not found")

type (
	// Repository implementations must apply the owner filter as a query
	// predicate on every operation, including updates.
	Repository interface {
		CreateRoadmap(ctx context.Context, r Roadmap) (Roadmap, error)
		GetRoadmap(ctx context.Context, ownerID, id string) (Roadmap, error)
		// QueryRoadmaps returns the owner's roadmaps, newest first.
		QueryRoadmaps(ctx context.Context, ownerID string) ([]Roadmap, error)
		UpdateRoadmap(ctx context.Context, r Roadmap) (Roadmap, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ownerID string, nr NewRoadmap) (Roadmap, error) {
	now := time.Now().UTC()
	r := Roadmap{
		UserID:    ownerID,
		Title:     nr.Title,
		Content:   nr.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateRoadmap(ctx, r)
}

func (svc *Service) Get(ctx context.Context, ownerID, id string) (Roadmap, error) {
	return svc.repo.GetRoadmap(ctx, ownerID, id)
}

func (svc *Service) Query(ctx context.Context, ownerID string) ([]Roadmap, error) {
	return svc.repo.QueryRoadmaps(ctx, ownerID)
}

// Update replaces title and content of the owner's roadmap.
func (svc *Service) Update(ctx context.Context, ownerID, id string, ur UpdateRoadmap) (Roadmap, error) {
	r := Roadmap{
		ID:        id,
		UserID:    ownerID,
		Title:     ur.Title,
		Content:   ur.Content,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateRoadmap(ctx, r)
}
