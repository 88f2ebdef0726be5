package assessment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnanasetu/platform/core/assessment"
	inmemdb "github.com/jnanasetu/platform/storage/database/inmem"
)

func newSvc() *assessment.Service {
	return assessment.NewService(inmemdb.NewAssessmentRepository(inmemdb.Open()))
}

func fPtr(f float64) *float64 { return &f }

func TestService_Create(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", assessment.NewAssessment{
		Score:     fPtr(72.5),
		SkillGaps: []string{"sql", "concurrency"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "owner-1", a.UserID)
	assert.Equal(t, 72.5, a.Score)
	assert.Equal(t, []string{"sql", "concurrency"}, a.SkillGaps)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, a.CreatedAt.Location())

	// ids are unique across creates
	b, err := svc.Create(ctx, "owner-1", assessment.NewAssessment{Score: fPtr(10), SkillGaps: []string{"x"}})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestService_GetOwnerScoped(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", assessment.NewAssessment{Score: fPtr(50), SkillGaps: []string{"x"}})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "owner-1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// another owner gets not-found, never the record
	_, err = svc.Get(ctx, "owner-2", a.ID)
	assert.Equal(t, assessment.ErrNotFound, err)

	_, err = svc.Get(ctx, "owner-1", "unknown")
	assert.Equal(t, assessment.ErrNotFound, err)
}

func TestService_QueryNewestFirst(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		a, err := svc.Create(ctx, "owner-1", assessment.NewAssessment{Score: fPtr(float64(i)), SkillGaps: []string{"x"}})
		require.NoError(t, err)
		ids = append(ids, a.ID)
		time.Sleep(time.Millisecond) // distinct createdAt
	}
	_, err := svc.Create(ctx, "owner-2", assessment.NewAssessment{Score: fPtr(99), SkillGaps: []string{"z"}})
	require.NoError(t, err)

	res, err := svc.Query(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, ids[2], res[0].ID)
	assert.Equal(t, ids[1], res[1].ID)
	assert.Equal(t, ids[0], res[2].ID)
	for _, a := range res {
		assert.Equal(t, "owner-1", a.UserID)
	}

	// an owner with no records gets an empty slice
	res, err = svc.Query(ctx, "owner-3")
	require.NoError(t, err)
	assert.Empty(t, res)
}
