package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Clark-Hu/movie-catalog/internal/config"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// newFullServer keeps the production middleware stack.
func newFullServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	st := store.New(store.Options{Logger: logger})
	st.Seed(store.DefaultSeeds())
	srv, err := New(cfg, st, repository.New(st), nil, logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func serve(srv *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newFullServer(t, testConfig(t))

	rec := serve(srv, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload struct {
		Status string `json:"status"`
		Movies int    `json:"movies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if payload.Status != "ok" || payload.Movies != 3 {
		t.Fatalf("healthz = %+v, want ok with 3 movies", payload)
	}
}

func TestStaticAssets(t *testing.T) {
	cfg := testConfig(t)
	srv := newFullServer(t, cfg)

	rec := serve(srv, http.MethodGet, "/styles.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("styles.css status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "margin") {
		t.Fatalf("unexpected stylesheet body: %q", rec.Body.String())
	}

	// No index.html yet: the directory must not be listed.
	if rec := serve(srv, http.MethodGet, "/"); rec.Code != http.StatusNotFound {
		t.Fatalf("/ without index status = %d, want 404", rec.Code)
	}

	if err := os.WriteFile(filepath.Join(cfg.StaticDir, "index.html"), []byte("<h1>Welcome</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	rec = serve(srv, http.MethodGet, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Welcome") {
		t.Fatalf("/ status = %d body = %q", rec.Code, rec.Body.String())
	}

	if rec := serve(srv, http.MethodGet, "/missing.js"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing asset status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newFullServer(t, testConfig(t))

	before := totalRequestsReceived.Value()
	serve(srv, http.MethodGet, "/movies")
	if got := totalRequestsReceived.Value(); got <= before {
		t.Fatalf("total_requests_received = %d, want > %d", got, before)
	}

	rec := serve(srv, http.MethodGet, "/debug/vars")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "total_responses_sent_by_status") {
		t.Fatalf("metrics missing from /debug/vars")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.LimiterEnabled = true
	cfg.LimiterRPS = 0.001
	cfg.LimiterBurst = 2
	srv := newFullServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rec := serve(srv, http.MethodGet, "/movies"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
	rec := serve(srv, http.MethodGet, "/movies")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Too Many Requests</h1>") {
		t.Fatalf("rate-limit page missing:\n%s", rec.Body.String())
	}
}

func TestClientLimiterSweepsIdleClients(t *testing.T) {
	l := newClientLimiter(1, 1)
	start := time.Now()

	if !l.allow("10.0.0.1", start) {
		t.Fatalf("first request should be allowed")
	}
	if l.allow("10.0.0.1", start) {
		t.Fatalf("second immediate request should be limited")
	}

	later := start.Add(limiterIdleTTL + limiterSweepInterval + time.Second)
	l.allow("10.0.0.2", later)
	l.mu.Lock()
	_, stale := l.clients["10.0.0.1"]
	l.mu.Unlock()
	if stale {
		t.Fatalf("idle client was not swept")
	}
}
