package culler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/shelf/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/nohead", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	srv := newTestServer(t)
	c := New(Options{Concurrency: 3, Timeout: 2 * time.Second}, nil)

	bookmarks := []model.Bookmark{
		{ID: "ok", URL: srv.URL + "/ok"},
		{ID: "missing", URL: srv.URL + "/missing"},
		{ID: "gone", URL: srv.URL + "/gone"},
		{ID: "broken", URL: srv.URL + "/broken"},
		{ID: "nohead", URL: srv.URL + "/nohead"},
		{ID: "redirect", URL: srv.URL + "/redirect"},
		{ID: "scheme", URL: "ftp://example.com"},
	}

	var calls atomic.Int32
	results, err := c.Check(context.Background(), bookmarks, func(completed, total int) {
		calls.Add(1)
		if total != len(bookmarks) {
			t.Errorf("expected total %d, got %d", len(bookmarks), total)
		}
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	want := map[string]Status{
		"ok":       Healthy,
		"missing":  Dead,
		"gone":     Dead,
		"broken":   Unreachable,
		"nohead":   Healthy,
		"redirect": Healthy,
		"scheme":   Unreachable,
	}
	if len(results) != len(bookmarks) {
		t.Fatalf("expected %d results, got %d", len(bookmarks), len(results))
	}
	for i, r := range results {
		if r.Bookmark.ID != bookmarks[i].ID {
			t.Errorf("result %d out of order: %s", i, r.Bookmark.ID)
		}
		if r.Status != want[r.Bookmark.ID] {
			t.Errorf("%s: expected %v, got %v (%s)", r.Bookmark.ID, want[r.Bookmark.ID], r.Status, r.Error)
		}
	}
	if int(calls.Load()) != len(bookmarks) {
		t.Errorf("expected %d progress calls, got %d", len(bookmarks), calls.Load())
	}

	if dead := DeadResults(results); len(dead) != 2 {
		t.Errorf("expected 2 dead, got %d", len(dead))
	}
}

func TestCheck_ExcludedDomain(t *testing.T) {
	c := New(Options{ExcludeDomains: []string{"GitHub.com"}}, nil)

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/me/private", true},
		{"https://api.github.com/x", true},
		{"https://notgithub.com", false},
		{"https://example.com", false},
	}
	for _, tt := range tests {
		if got := c.isExcludedDomain(tt.url); got != tt.want {
			t.Errorf("isExcludedDomain(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestCheck_Empty(t *testing.T) {
	results, err := New(Options{}, nil).Check(context.Background(), nil, nil)
	if err != nil || results != nil {
		t.Errorf("expected nil results, got %v, %v", results, err)
	}
}

func TestCheck_Canceled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Concurrency: 1}, nil).Check(ctx, []model.Bookmark{{URL: srv.URL + "/ok"}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("dial tcp: lookup nope.invalid: no such host"), "DNS failure"},
		{errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), "Connection refused"},
		{errors.New("x509: certificate signed by unknown authority"), "TLS/certificate error"},
		{context.DeadlineExceeded, "Timeout"},
		{errors.New("something odd"), "something odd"},
	}
	for _, tt := range tests {
		if got := normalizeError(tt.err); got != tt.want {
			t.Errorf("normalizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
