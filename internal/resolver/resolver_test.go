package resolver_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikbrunner/shelf/internal/resolver"
)

func TestSiteName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.example.com", "example"},
		{"https://example.com/path?q=1", "example"},
		{"https://docs.github.com", "docs"},
		{"http://WWW.Reddit.com", "reddit"},
		{"https://localhost:8080", "localhost"},
		{"not a url", "Website"},
		{"://broken", "Website"},
		{"", "Website"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := resolver.SiteName(tt.url); got != tt.want {
				t.Errorf("SiteName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestHostname(t *testing.T) {
	name, err := resolver.Hostname{}.ResolveName(context.Background(), "https://www.codepen.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "codepen" {
		t.Errorf("expected 'codepen', got %q", name)
	}
}

func TestTitleResolver(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/titled", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head><title>\n  Go   Blog \n</title></head><body></body></html>")
	})
	mux.HandleFunc("/untitled", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>hi</body></html>")
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := resolver.NewTitleResolver(time.Second, nil)
	fallback := resolver.SiteName(srv.URL)

	tests := []struct {
		path string
		want string
	}{
		{"/titled", "Go Blog"},
		{"/untitled", fallback},
		{"/gone", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := r.ResolveName(context.Background(), srv.URL+tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTitleResolver_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := resolver.NewTitleResolver(5*time.Second, nil)
	if _, err := r.ResolveName(ctx, srv.URL); err == nil {
		t.Fatal("expected context error")
	}
}
