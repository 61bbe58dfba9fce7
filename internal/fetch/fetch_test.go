package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/defwatch/defwatch/internal/config"
)

func testConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:           2 * time.Second,
		MaxAttempts:       3,
		BaseDelay:         10 * time.Millisecond,
		MaxDelay:          50 * time.Millisecond,
		RequestsPerSecond: 1000,
		UserAgents:        []string{"agent-one", "agent-two"},
	}
}

func TestGet_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer ts.Close()

	c := New(testConfig())
	resp, err := c.Get(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != "<html>ok</html>" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestGet_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer ts.Close()

	c := New(testConfig())
	resp, err := c.Get(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Get() error = %v, want success after retries", err)
	}
	if string(resp.Body) != "recovered" {
		t.Errorf("Body = %q, want %q", resp.Body, "recovered")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestGet_NotFoundIsTerminal(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(testConfig())
	_, err := c.Get(context.Background(), ts.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1 (404 must not retry)", got)
	}
}

func TestGet_ExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := New(testConfig())
	_, err := c.Get(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("Get() error = nil, want failure after exhausting attempts")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestGet_RotatesUserAgents(t *testing.T) {
	var agents []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.UserAgent())
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(testConfig())
	_, _ = c.Get(context.Background(), ts.URL)

	if len(agents) != 3 {
		t.Fatalf("server saw %d requests, want 3", len(agents))
	}
	want := []string{"agent-one", "agent-two", "agent-one"}
	for i, agent := range agents {
		if agent != want[i] {
			t.Errorf("attempt %d User-Agent = %q, want %q", i+1, agent, want[i])
		}
	}
}

func TestGet_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cfg := testConfig()
	cfg.BaseDelay = 10 * time.Second // force a long backoff wait
	cfg.MaxDelay = 30 * time.Second
	c := New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Get(ctx, ts.URL)
	if err == nil {
		t.Fatal("Get() error = nil, want cancellation")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Get() took %v, should return promptly on cancellation", elapsed)
	}
}
