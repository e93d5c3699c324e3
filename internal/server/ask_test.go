package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/54b3r/docqa-go/internal/answer"
	"github.com/54b3r/docqa-go/internal/rag"
)

// ---------------------------------------------------------------------------
// Fake answerer for ask handler tests
// ---------------------------------------------------------------------------

// fakeAnswerer implements the answerer interface for tests.
type fakeAnswerer struct {
	// result is returned on each Answer call when err is nil.
	result *answer.Result
	// err is returned as the error value.
	err error
	// ready is reported by Ready().
	ready bool
}

func (f *fakeAnswerer) Answer(_ context.Context, _ string) (*answer.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAnswerer) Ready() bool { return f.ready }

// okHandler is a trivial downstream handler used by middleware tests.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// newTestServer builds a *Server wired with the given answerer fake and a
// fresh isolated metrics registry.
func newTestServer(a answerer) *Server {
	if a == nil {
		a = &fakeAnswerer{ready: true, result: &answer.Result{Answer: "ok"}}
	}
	return &Server{
		engine:  a,
		cfg:     &Config{Port: 8080},
		log:     slog.Default(),
		metrics: newServerMetrics(prometheus.NewRegistry()),
	}
}

// ---------------------------------------------------------------------------
// POST /api/ask — validation error paths
// ---------------------------------------------------------------------------

func TestHandleAsk_MissingQuestion(t *testing.T) {
	t.Parallel()

	s := newTestServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleAsk(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleAsk_InvalidJSON(t *testing.T) {
	t.Parallel()

	s := newTestServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`not-json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleAsk(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/ask — happy path and failure mapping
// ---------------------------------------------------------------------------

func TestHandleAsk_Success(t *testing.T) {
	t.Parallel()

	a := &fakeAnswerer{
		ready: true,
		result: &answer.Result{
			Answer: "Paris is the capital of France.",
			Sources: []rag.Document{
				{Content: strings.Repeat("x", 500), Source: "geography.pdf", Score: 0.91},
			},
		},
	}
	s := newTestServer(a)

	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question":"What is the capital of France?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleAsk(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", w.Code, w.Body.String())
	}

	var resp askResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Answer != "Paris is the capital of France." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(resp.Sources))
	}
	if resp.Sources[0].Source != "geography.pdf" {
		t.Errorf("source = %q", resp.Sources[0].Source)
	}
	if len(resp.Sources[0].Excerpt) != excerptLen {
		t.Errorf("excerpt length = %d, want %d", len(resp.Sources[0].Excerpt), excerptLen)
	}
}

func TestHandleAsk_NotReady(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeAnswerer{err: answer.ErrNotReady})
	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question":"q"}`))
	w := httptest.NewRecorder()

	s.handleAsk(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for not-ready engine, got %d", w.Code)
	}
}

func TestHandleAsk_EngineError(t *testing.T) {
	t.Parallel()

	s := newTestServer(&fakeAnswerer{err: errors.New("model timeout")})
	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question":"q"}`))
	w := httptest.NewRecorder()

	s.handleAsk(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for engine failure, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "model timeout") {
		t.Error("internal error detail leaked to client")
	}
}
