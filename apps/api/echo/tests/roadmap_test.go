package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnanasetu/platform/core/roadmap"
)

func seedRoadmap(t *testing.T, ownerID, title, content string, createdAt time.Time) roadmap.Roadmap {
	t.Helper()
	r, err := roadmapRepo.CreateRoadmap(context.Background(), roadmap.Roadmap{
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seedRoadmap(): %v", err)
	}
	return r
}

func Test_roadmapApi_create(t *testing.T) {
	usr := createUser(t, "Road Mapper", "mapper@test.cd", "VeryS3cret!")
	token := getToken(t, usr)

	t.Run("ok", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"title": "Learn Go", "content": "1. interfaces\n2. goroutines"})
		req, rec := newAuthRequest(http.MethodPost, "/api/roadmaps", token, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var r roadmap.Roadmap
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, usr.ID, r.UserID)
		assert.Equal(t, "Learn Go", r.Title)
		assert.False(t, r.CreatedAt.IsZero())
	})

	tests := []httpTest{
		{
			name: "auth required", body: marchallObj(t, map[string]string{"title": "x", "content": "y"}),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "missing fields", token: token, body: marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"title":   "this field is required",
				"content": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/roadmaps", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// two users work on roadmaps concurrently; each only ever sees their own
func Test_roadmapApi_ownerIsolation(t *testing.T) {
	u1 := createUser(t, "User One", "u1@test.cd", "VeryS3cret!")
	u2 := createUser(t, "User Two", "u2@test.cd", "VeryS3cret!")
	t1, t2 := getToken(t, u1), getToken(t, u2)

	// u1 creates a roadmap
	body := marchallObj(t, map[string]string{"title": "Backend Path", "content": "step 1"})
	req, rec := newAuthRequest(http.MethodPost, "/api/roadmaps", t1, body)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var r roadmap.Roadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))

	// u2 cannot fetch it
	req, rec = newAuthRequest(http.MethodGet, "/api/roadmaps/"+r.ID, t2)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// u2 cannot update it either
	req, rec = newAuthRequest(http.MethodPut, "/api/roadmaps/"+r.ID, t2,
		marchallObj(t, map[string]string{"title": "Hijacked", "content": "pwned"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// u1 updates it
	req, rec = newAuthRequest(http.MethodPut, "/api/roadmaps/"+r.ID, t1,
		marchallObj(t, map[string]string{"title": "Backend Path v2", "content": "step 1\nstep 2"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated roadmap.Roadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, "Backend Path v2", updated.Title)
	assert.Equal(t, "step 1\nstep 2", updated.Content)
	assert.True(t, updated.UpdatedAt.After(r.UpdatedAt) || updated.UpdatedAt.Equal(r.UpdatedAt))

	// the failed hijack left no trace: u1's list has exactly one entry
	req, rec = newAuthRequest(http.MethodGet, "/api/roadmaps", t1)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []roadmap.Roadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Backend Path v2", list[0].Title)

	// and u2's list is still empty
	req, rec = newAuthRequest(http.MethodGet, "/api/roadmaps", t2)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func Test_roadmapApi_query(t *testing.T) {
	usr := createUser(t, "Sorted Owner", "sorted@test.cd", "VeryS3cret!")

	now := time.Now().UTC()
	r1 := seedRoadmap(t, usr.ID, "Oldest", "c1", now.Add(-2*time.Hour))
	r2 := seedRoadmap(t, usr.ID, "Middle", "c2", now.Add(-1*time.Hour))
	r3 := seedRoadmap(t, usr.ID, "Newest", "c3", now)

	tt := httpTest{
		name: "newest first", token: getToken(t, usr),
		wantCode: http.StatusOK, wantData: marchallList(t, r3, r2, r1),
	}
	req, rec := newAuthRequest(http.MethodGet, "/api/roadmaps", tt.token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_roadmapApi_update(t *testing.T) {
	usr := createUser(t, "Up Dater", "updater@test.cd", "VeryS3cret!")
	token := getToken(t, usr)
	r := seedRoadmap(t, usr.ID, "Draft", "wip", time.Now().UTC())

	tests := []httpTest{
		{
			name: "auth required", path: "/api/roadmaps/" + r.ID,
			body:     marchallObj(t, map[string]string{"title": "x", "content": "y"}),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "unknown id", path: "/api/roadmaps/deadbeef", token: token,
			body:     marchallObj(t, map[string]string{"title": "x", "content": "y"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "missing fields", path: "/api/roadmaps/" + r.ID, token: token,
			body:     marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"title":   "this field is required",
				"content": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
