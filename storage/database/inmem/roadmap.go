package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jnanasetu/platform/core/roadmap"
)

type roadmapRepository struct {
	db *roadmapTable
}

var _ roadmap.Repository = (*roadmapRepository)(nil)

func NewRoadmapRepository(db *DB) *roadmapRepository {
	return &roadmapRepository{db: db.roadmap}
}

func (repo *roadmapRepository) CreateRoadmap(_ context.Context, r roadmap.Roadmap) (roadmap.Roadmap, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	r.ID = uuid.New().String()
	repo.db.table[r.ID] = &r
	return r, nil
}

func (repo *roadmapRepository) GetRoadmap(_ context.Context, ownerID, id string) (roadmap.Roadmap, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if r, ok := repo.db.table[id]; ok && r.UserID == ownerID {
		return *r, nil
	}
	return roadmap.Roadmap{}, roadmap.ErrNotFound
}

func (repo *roadmapRepository) QueryRoadmaps(_ context.Context, ownerID string) ([]roadmap.Roadmap, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	res := make([]roadmap.Roadmap, 0)
	for _, r := range repo.db.table {
		if r.UserID == ownerID {
			res = append(res, *r)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (repo *roadmapRepository) UpdateRoadmap(_ context.Context, r roadmap.Roadmap) (roadmap.Roadmap, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[r.ID]
	if !ok || orig.UserID != r.UserID {
		return roadmap.Roadmap{}, roadmap.ErrNotFound
	}
	orig.Title = r.Title
	orig.Content = r.Content
	orig.UpdatedAt = r.UpdatedAt
	return *orig, nil
}
