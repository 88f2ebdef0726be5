package questions

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnanasetu/platform/core"
	logsvc "github.com/jnanasetu/platform/services/logger"
)

func TestExtractQuestions(t *testing.T) {
	raw := `[{"question":"Q1","options":["a","b","c","d"],"correctAnswer":"a"}]`

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "bare json", text: raw},
		{name: "json fence", text: "```json\n" + raw + "\n```"},
		{name: "plain fence", text: "```\n" + raw + "\n```"},
		{name: "surrounding whitespace", text: "\n  " + raw + "  \n"},
		{name: "prose instead of json", text: "Here are your questions!", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := ExtractQuestions(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, qs, 1)
			assert.Equal(t, "Q1", qs[0].Question)
			assert.Equal(t, "a", qs[0].CorrectAnswer)
			assert.Len(t, qs[0].Options, 4)
		})
	}
}

func TestHTTPGeneratorGenerate(t *testing.T) {
	raw := `[{"question":"Q1","options":["a","b","c","d"],"correctAnswer":"a"},` +
		`{"question":"Q2","options":["a","b","c","d"],"correctAnswer":"b"}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		res := generateResponse{}
		res.Candidates = append(res.Candidates, struct {
			Content genContent `json:"content"`
		}{Content: genContent{Parts: []genPart{{Text: "```json\n" + raw + "\n```"}}}})
		_ = json.NewEncoder(w).Encode(res)
	}))
	defer srv.Close()

	conf := &core.Config{}
	conf.Questions.APIURL = srv.URL
	conf.Questions.APIKey = "test-key"

	gen := NewHTTPGenerator(conf)
	qs, err := gen.Generate(context.Background(), "go", "easy", 2)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Q2", qs[1].Question)
}

func TestHTTPGeneratorGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	conf := &core.Config{}
	conf.Questions.APIURL = srv.URL

	gen := NewHTTPGenerator(conf)
	_, err := gen.Generate(context.Background(), "go", "easy", 2)
	assert.Error(t, err)
}

func TestWithFallback(t *testing.T) {
	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", 0))

	ok := GeneratorFunc(func(_ context.Context, _, _ string, n int) ([]Question, error) {
		return []Question{{Question: "primary"}}, nil
	})
	failing := GeneratorFunc(func(_ context.Context, _, _ string, _ int) ([]Question, error) {
		return nil, errors.New("model unavailable")
	})

	t.Run("primary succeeds", func(t *testing.T) {
		qs, err := WithFallback(ok, NewStaticGenerator(), logger).Generate(context.Background(), "go", "easy", 1)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "primary", qs[0].Question)
	})

	t.Run("primary fails", func(t *testing.T) {
		qs, err := WithFallback(failing, NewStaticGenerator(), logger).Generate(context.Background(), "go", "easy", 3)
		require.NoError(t, err)
		assert.Len(t, qs, 3)
	})
}

func TestStaticGenerator(t *testing.T) {
	gen := NewStaticGenerator()

	qs, err := gen.Generate(context.Background(), "anything", "hard", 2)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	// out-of-range n falls back to the whole bank
	qs, err = gen.Generate(context.Background(), "anything", "hard", 100)
	require.NoError(t, err)
	assert.Len(t, qs, len(questionBank))
}
