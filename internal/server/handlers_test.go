// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarsynth/internal/agent"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

const reviewBody = "# Literature Review: transformer networks\n\nGenerated review body.\n"

// fakeRunner counts pipeline invocations so tests can prove a request
// dispatches the pipeline exactly once, or not at all.
type fakeRunner struct {
	calls int32
	err   error
}

func (f *fakeRunner) Run(_ context.Context, topic string) (*agent.Result, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now().UTC()
	return &agent.Result{
		Review: types.Review{
			Topic:     topic,
			Model:     "fake-model",
			Content:   reviewBody,
			Papers:    []types.Paper{{ArxivID: "2301.07041", Title: "Paper One"}},
			CreatedAt: now,
		},
		Messages: []types.Message{
			{Source: "researcher", Content: "Fetched 1 papers", CreatedAt: now},
			{Source: "summarizer", Content: reviewBody, CreatedAt: now},
		},
	}, nil
}

func newTestServer(t *testing.T, runner Runner) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := New(runner, nil, "fake-model")
	require.NoError(t, err)
	return s.Router(nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTestReview(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/reviews", `{"topic":"transformer networks"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Review struct {
			ID string `json:"id"`
		} `json:"review"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Review.ID)
	return resp.Review.ID
}

func TestCreateReviewRunsPipelineOnce(t *testing.T) {
	runner := &fakeRunner{}
	router := newTestServer(t, runner)

	w := doJSON(t, router, http.MethodPost, "/api/reviews", `{"topic":"transformer networks"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.calls), "one request must run the pipeline exactly once")

	var resp struct {
		OK     bool `json:"ok"`
		Review struct {
			ID      string `json:"id"`
			Topic   string `json:"topic"`
			Content string `json:"content"`
		} `json:"review"`
		Messages []types.Message `json:"messages"`
		HTML     string          `json:"html"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "transformer networks", resp.Review.Topic)
	assert.Equal(t, reviewBody, resp.Review.Content)
	assert.Len(t, resp.Messages, 2)
	assert.Contains(t, resp.HTML, "<h1>")
}

func TestCreateReviewEmptyTopic(t *testing.T) {
	runner := &fakeRunner{}
	router := newTestServer(t, runner)

	for _, body := range []string{`{"topic":""}`, `{"topic":"   "}`, `{}`} {
		w := doJSON(t, router, http.MethodPost, "/api/reviews", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
	assert.Zero(t, atomic.LoadInt32(&runner.calls), "blank topics must be rejected before the pipeline runs")
}

func TestCreateReviewPipelineError(t *testing.T) {
	runner := &fakeRunner{err: context.DeadlineExceeded}
	router := newTestServer(t, runner)

	w := doJSON(t, router, http.MethodPost, "/api/reviews", `{"topic":"something"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDownloadMatchesContent(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})
	id := createTestReview(t, router)

	tests := []struct {
		format   string
		wantMIME string
		wantFile string
	}{
		{"markdown", "text/markdown; charset=utf-8", "literature_review_transformer_networks.md"},
		{"text", "text/plain; charset=utf-8", "literature_review_transformer_networks.txt"},
		{"", "text/markdown; charset=utf-8", "literature_review_transformer_networks.md"},
	}
	for _, tt := range tests {
		path := "/api/reviews/" + id + "/download"
		if tt.format != "" {
			path += "?format=" + tt.format
		}
		w := doJSON(t, router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)

		// The download body is byte-identical to the generated review.
		assert.Equal(t, reviewBody, w.Body.String(), "format %q", tt.format)
		assert.Equal(t, tt.wantMIME, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), tt.wantFile)
	}
}

func TestDownloadUnknownFormat(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})
	id := createTestReview(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/reviews/"+id+"/download?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReviewNotFound(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})

	w := doJSON(t, router, http.MethodGet, "/api/reviews/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReviewsWithholdsContent(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})
	createTestReview(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []map[string]any `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, "transformer networks", resp.Reviews[0]["topic"])
	assert.NotContains(t, resp.Reviews[0], "content")
}

func TestDeleteReview(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})
	id := createTestReview(t, router)

	w := doJSON(t, router, http.MethodDelete, "/api/reviews/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/reviews/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListModels(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})

	w := doJSON(t, router, http.MethodGet, "/api/models", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Current string         `json:"current"`
		Models  map[string]any `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fake-model", resp.Current)
	assert.Contains(t, resp.Models, "llama-3.3-70b-versatile")
}

func TestHealthz(t *testing.T) {
	router := newTestServer(t, &fakeRunner{})

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
