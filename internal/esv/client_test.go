package esv

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prinketaru/scriptura/internal/bible"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", ""); !errors.Is(err, bible.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := NewClient("", "   "); !errors.Is(err, bible.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey for blank key, got %v", err)
	}
}

func TestPassageText(t *testing.T) {
	var gotAuth, gotQuery, gotFootnotes string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/passage/text/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		gotFootnotes = r.URL.Query().Get("include-footnotes")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"canonical": "John 3:16",
			"passage_meta": [{"canonical": "John 3:16"}],
			"passages": ["[16] For God so loved the world..."]
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.PassageText(context.Background(), "John 3:16", PassageOptions{IncludeVerseNumbers: true})
	if err != nil {
		t.Fatalf("passage text: %v", err)
	}
	if gotAuth != "Token test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotQuery != "John 3:16" {
		t.Fatalf("query param = %q", gotQuery)
	}
	if gotFootnotes != "false" {
		t.Fatalf("include-footnotes = %q", gotFootnotes)
	}
	if resp.Canonical != "John 3:16" || len(resp.Passages) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPassageTextRequiresReference(t *testing.T) {
	c, err := NewClient("http://unused", "key")
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.PassageText(context.Background(), "  ", PassageOptions{})
	var verr *bible.ValidationError
	if !errors.As(err, &verr) || verr.Param != "q" {
		t.Fatalf("expected validation error for q, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/passage/search/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("page-size"); got != "10" {
			t.Errorf("page-size = %q, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 2,
			"total_results": 23,
			"total_pages": 3,
			"results": [
				{"reference": "Genesis 1:1", "content": "In the beginning God created"},
				{"reference": "John 1:1", "content": "In the beginning was the Word"}
			]
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.Search(context.Background(), "in the beginning", 2, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.TotalResults != 23 || len(resp.Results) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Results[0].Reference != "Genesis 1:1" {
		t.Fatalf("unexpected first result: %+v", resp.Results[0])
	}
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail": "invalid token"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "bad-key")
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.PassageText(context.Background(), "John 3:16", PassageOptions{})
	var apiErr *bible.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Message != "invalid token" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestDeadlineBecomesTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, err := NewClient(srv.URL, "key")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.PassageText(ctx, "John 3:16", PassageOptions{})
	if !errors.Is(err, bible.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestCancellationIsNotATimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, err := NewClient(srv.URL, "key")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = c.PassageText(ctx, "John 3:16", PassageOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, bible.ErrTimeout) {
		t.Fatal("cancellation must not be reported as a timeout")
	}
}
