package questions

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

	"github.com/jnanasetu/platform/core"
)

type httpGenerator struct {
	apiURL string
	apiKey string
	client *http.Client
}

var _ Generator = (*httpGenerator)(nil)

// NewHTTPGenerator builds a Generator backed by a hosted generative model
// (generateContent-style API).
func NewHTTPGenerator(conf *core.Config) *httpGenerator {
	return &httpGenerator{
		apiURL: conf.Questions.APIURL,
		apiKey: conf.Questions.APIKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type generateRequest struct {
	Contents []genContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

func (g *httpGenerator) Generate(ctx context.Context, topic, difficulty string, n int) ([]Question, error) {
	reqBody := generateRequest{
		Contents: []genContent{{Parts: []genPart{{Text: buildPrompt(topic, difficulty, n)}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	res, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling model API")
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("model API: status %d: %s", res.StatusCode, body)
	}

	var genRes generateResponse
	if err := json.Unmarshal(body, &genRes); err != nil {
		return nil, errors.Wrap(err, "unmarshaling response")
	}
	if len(genRes.Candidates) == 0 || len(genRes.Candidates[0].Content.Parts) == 0 {
		return nil, errEmptyResult
	}

	qs, err := ExtractQuestions(genRes.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, errEmptyResult
	}
	return qs, nil
}

func buildPrompt(topic, difficulty string, n int) string {
	return fmt.Sprintf(
		"Generate %d multiple-choice questions on %q at %s difficulty. "+
			"Respond with a JSON array only; each element has fields "+
			"\"question\", \"options\" (4 strings) and \"correctAnswer\".",
		n, topic, difficulty,
	)
}

// ExtractQuestions parses the model output into questions. Models often wrap
// JSON in a markdown code fence; strip it before unmarshaling.
func ExtractQuestions(text string) ([]Question, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var qs []Question
	if err := json.Unmarshal([]byte(cleaned), &qs); err != nil {
		return nil, errors.Wrap(err, "unmarshaling questions")
	}
	return qs, nil
}
