// Package client is the Go API client for the platform backend. It wraps
// every call with bearer auth from an injected session store and translates
// an auth rejection into a single logout plus ErrSessionExpired.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jnanasetu/platform/core/assessment"
	"github.com/jnanasetu/platform/core/roadmap"
	"github.com/jnanasetu/platform/services/questions"
)

// ErrSessionExpired is returned when the server rejects the session's
// credentials. The session has already been logged out when the caller
// sees it.
var ErrSessionExpired = errors.New("session expired, please log in again")

// SessionStore is the auth state the client reads from and writes to.
// *session.Store satisfies it.
type SessionStore interface {
	Token() string
	SetSession(token, userName string) error
	Logout() error
}

// APIError is a non-2xx response that is not an auth rejection.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session SessionStore
}

func New(baseURL string, session SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// do performs a JSON request. The bearer token is attached when the session
// has one. A 401 or 403 response logs the session out (exactly once; a
// session with no token is not logged out again) and returns
// ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		if c.session.Token() != "" {
			if err := c.session.Logout(); err != nil {
				return errors.Wrap(err, "logging out expired session")
			}
		}
		return ErrSessionExpired
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: res.StatusCode, Message: extractMessage(resBody)}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return errors.Wrap(err, "unmarshaling response body")
		}
	}
	return nil
}

// extractMessage pulls a human-readable message out of an error body. The
// server answers either {"error": "..."} or a field->message map.
func extractMessage(body []byte) string {
	var m map[string]string
	if err := json.Unmarshal(body, &m); err != nil || len(m) == 0 {
		return strings.TrimSpace(string(body))
	}
	if msg, ok := m["error"]; ok {
		return msg
	}
	parts := make([]string, 0, len(m))
	for field, msg := range m {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Auth

type (
	RegisterRequest struct {
		FullName        string `json:"full_name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		TermsAccepted   bool   `json:"terms_accepted"`
	}

	tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		FullName    string `json:"full_name"`
	}
)

// Register creates an account and stores the auto-login session.
func (c *Client) Register(ctx context.Context, data RegisterRequest) error {
	var res tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", data, &res); err != nil {
		return err
	}
	return c.session.SetSession(res.AccessToken, res.FullName)
}

// Login authenticates and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var res tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return err
	}
	return c.session.SetSession(res.AccessToken, res.FullName)
}

// Assessments

func (c *Client) CreateAssessment(ctx context.Context, score float64, skillGaps []string) (assessment.Assessment, error) {
	var a assessment.Assessment
	body := map[string]interface{}{"score": score, "skillGaps": skillGaps}
	err := c.do(ctx, http.MethodPost, "/api/assessments", body, &a)
	return a, err
}

func (c *Client) ListAssessments(ctx context.Context) ([]assessment.Assessment, error) {
	var res []assessment.Assessment
	err := c.do(ctx, http.MethodGet, "/api/assessments", nil, &res)
	return res, err
}

func (c *Client) GetAssessment(ctx context.Context, id string) (assessment.Assessment, error) {
	var a assessment.Assessment
	err := c.do(ctx, http.MethodGet, "/api/assessments/"+id, nil, &a)
	return a, err
}

// Roadmaps

func (c *Client) CreateRoadmap(ctx context.Context, title, content string) (roadmap.Roadmap, error) {
	var r roadmap.Roadmap
	body := map[string]string{"title": title, "content": content}
	err := c.do(ctx, http.MethodPost, "/api/roadmaps", body, &r)
	return r, err
}

func (c *Client) ListRoadmaps(ctx context.Context) ([]roadmap.Roadmap, error) {
	var res []roadmap.Roadmap
	err := c.do(ctx, http.MethodGet, "/api/roadmaps", nil, &res)
	return res, err
}

func (c *Client) GetRoadmap(ctx context.Context, id string) (roadmap.Roadmap, error) {
	var r roadmap.Roadmap
	err := c.do(ctx, http.MethodGet, "/api/roadmaps/"+id, nil, &r)
	return r, err
}

func (c *Client) UpdateRoadmap(ctx context.Context, id, title, content string) (roadmap.Roadmap, error) {
	var r roadmap.Roadmap
	body := map[string]string{"title": title, "content": content}
	err := c.do(ctx, http.MethodPut, "/api/roadmaps/"+id, body, &r)
	return r, err
}

// Questions

func (c *Client) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]questions.Question, error) {
	var res []questions.Question
	body := map[string]interface{}{"topic": topic, "difficulty": difficulty, "count": count}
	err := c.do(ctx, http.MethodPost, "/api/questions", body, &res)
	return res, err
}

// Health reports whether the server answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
