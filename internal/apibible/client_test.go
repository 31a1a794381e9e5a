package apibible

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prinketaru/scriptura/internal/bible"
)

func TestValidationHappensBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")

	var verr *bible.ValidationError
	if _, err := c.Search(context.Background(), "", "light", SearchOptions{}); !errors.As(err, &verr) || verr.Param != "bibleId" {
		t.Fatalf("expected bibleId validation error, got %v", err)
	}
	if _, err := c.Search(context.Background(), "de4e12af7f28f599-02", "  ", SearchOptions{}); !errors.As(err, &verr) || verr.Param != "query" {
		t.Fatalf("expected query validation error, got %v", err)
	}
	if _, err := c.Passage(context.Background(), "de4e12af7f28f599-02", "", DisplayOptions{}); !errors.As(err, &verr) || verr.Param != "passageId" {
		t.Fatalf("expected passageId validation error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("server was reached %d times for invalid input", calls)
	}
}

func TestMissingKeyReportedOnUse(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Search(context.Background(), "de4e12af7f28f599-02", "light", SearchOptions{}); !errors.Is(err, bible.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if calls != 0 {
		t.Fatal("server was reached without a credential")
	}
}

func TestSearchDecoding(t *testing.T) {
	var gotKey, gotSort string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bibles/de4e12af7f28f599-02/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotKey = r.Header.Get("api-key")
		gotSort = r.URL.Query().Get("sort")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {
			"query": "light of the world",
			"total": 5,
			"limit": 10,
			"offset": 0,
			"passages": [{"id": "JHN.8.12", "reference": "John 8:12"}],
			"verses": [
				{"id": "MAT.5.14", "reference": "Matthew 5:14", "text": "Ye are the light of the world."}
			]
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	res, err := c.Search(context.Background(), "de4e12af7f28f599-02", "light of the world", SearchOptions{Sort: "relevance", Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotKey != "secret" {
		t.Fatalf("api-key header = %q", gotKey)
	}
	if gotSort != "relevance" {
		t.Fatalf("sort = %q", gotSort)
	}
	if res.Total != 5 || len(res.Passages) != 1 || len(res.Verses) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Passages[0].ID != "JHN.8.12" {
		t.Fatalf("unexpected passage: %+v", res.Passages[0])
	}
}

func TestPassageDecodesContentTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("content-type"); got != "json" {
			t.Errorf("content-type = %q, want json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {
			"id": "JHN.3.16",
			"reference": "John 3:16",
			"verseCount": 1,
			"copyright": "Public Domain",
			"content": [
				{"name": "para", "type": "tag", "attrs": {"style": "p"}, "items": [
					{"name": "verse", "type": "tag", "attrs": {"number": 16}, "items": [
						{"type": "text", "text": "16"}
					]},
					{"type": "text", "text": "For God so loved the world"}
				]}
			]
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	p, err := c.Passage(context.Background(), "de4e12af7f28f599-02", "JHN.3.16", DisplayOptions{})
	if err != nil {
		t.Fatalf("passage: %v", err)
	}
	if p.Reference != "John 3:16" || p.VerseCount != 1 {
		t.Fatalf("unexpected passage: %+v", p)
	}
	if len(p.Content) != 1 || p.Content[0].Name != "para" {
		t.Fatalf("unexpected content tree: %+v", p.Content)
	}
	verse := p.Content[0].Items[0]
	if verse.Name != "verse" || verse.Attr("number") != "16" {
		t.Fatalf("unexpected verse node: %+v", verse)
	}
	if p.Text != "" {
		t.Fatalf("text should be empty for tree content, got %q", p.Text)
	}
}

func TestPassageDecodesStringContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {
			"id": "JHN.3.16",
			"reference": "John 3:16",
			"verseCount": 1,
			"content": "For God so loved the world"
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	p, err := c.Passage(context.Background(), "de4e12af7f28f599-02", "JHN.3.16", DisplayOptions{ContentType: "text"})
	if err != nil {
		t.Fatalf("passage: %v", err)
	}
	if p.Text != "For God so loved the world" {
		t.Fatalf("text = %q", p.Text)
	}
	if p.Content != nil {
		t.Fatalf("content tree should be nil for string content, got %+v", p.Content)
	}
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Unauthorized", "message": "Invalid api token supplied"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad")
	_, err := c.Search(context.Background(), "de4e12af7f28f599-02", "light", SearchOptions{})
	var apiErr *bible.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid api token supplied" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}
