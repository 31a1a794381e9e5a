// Package apibible wraps the API.Bible service (Backend B): multi-translation
// search and passage content retrieval.
package apibible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/bible/content"
)

// DefaultBaseURL is the production API.Bible root.
const DefaultBaseURL = "https://api.scripture.api.bible/v1"

const requestTimeout = 10 * time.Second

// Client calls API.Bible over HTTP. Unlike the ESV client the credential is
// checked on first use, not at construction: the bot can start without it
// and serve ESV-only traffic.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs an API.Bible client.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SearchOptions map to search request parameters.
type SearchOptions struct {
	Sort   string // "relevance" or "canonical"; backend default when empty
	Limit  int
	Offset int
}

// SearchResult is the decoded search payload.
type SearchResult struct {
	Query    string       `json:"query"`
	Total    int          `json:"total"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
	Passages []PassageRef `json:"passages"`
	Verses   []Verse      `json:"verses"`
}

// PassageRef is a direct passage hit in search output.
type PassageRef struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}

// Verse is one verse-level search hit.
type Verse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// DisplayOptions are passed through to the passage endpoint unchanged in
// meaning; each field maps to one request parameter.
type DisplayOptions struct {
	ContentType           string // json, text, or html; defaults to json
	IncludeNotes          bool
	IncludeTitles         bool
	IncludeChapterNumbers bool
	IncludeVerseNumbers   bool
	IncludeVerseSpans     bool
	UseOrgID              bool
}

// PassageContent is the decoded passage payload. Content holds the document
// tree when the json content type was requested, Text otherwise.
type PassageContent struct {
	ID         string
	Reference  string
	Content    []content.Node
	Text       string
	VerseCount int
	Copyright  string
}

func (p *PassageContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string          `json:"id"`
		Reference  string          `json:"reference"`
		Content    json.RawMessage `json:"content"`
		VerseCount int             `json:"verseCount"`
		Copyright  string          `json:"copyright"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Reference = raw.Reference
	p.VerseCount = raw.VerseCount
	p.Copyright = strings.TrimSpace(raw.Copyright)
	if len(raw.Content) == 0 {
		return nil
	}
	if raw.Content[0] == '[' {
		return json.Unmarshal(raw.Content, &p.Content)
	}
	return json.Unmarshal(raw.Content, &p.Text)
}

// Search queries one bible for passages and verse matches.
func (c *Client) Search(ctx context.Context, bibleID, query string, opts SearchOptions) (SearchResult, error) {
	if err := c.checkKey(); err != nil {
		return SearchResult{}, err
	}
	if strings.TrimSpace(bibleID) == "" {
		return SearchResult{}, &bible.ValidationError{Param: "bibleId"}
	}
	if strings.TrimSpace(query) == "" {
		return SearchResult{}, &bible.ValidationError{Param: "query"}
	}
	params := url.Values{}
	params.Set("query", query)
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.Itoa(opts.Offset))
	}

	var out struct {
		Data SearchResult `json:"data"`
	}
	if err := c.get(ctx, "/bibles/"+url.PathEscape(bibleID)+"/search", params, &out); err != nil {
		return SearchResult{}, err
	}
	return out.Data, nil
}

// Passage fetches full passage content by identifier.
func (c *Client) Passage(ctx context.Context, bibleID, passageID string, opts DisplayOptions) (PassageContent, error) {
	if err := c.checkKey(); err != nil {
		return PassageContent{}, err
	}
	if strings.TrimSpace(bibleID) == "" {
		return PassageContent{}, &bible.ValidationError{Param: "bibleId"}
	}
	if strings.TrimSpace(passageID) == "" {
		return PassageContent{}, &bible.ValidationError{Param: "passageId"}
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "json"
	}
	params := url.Values{}
	params.Set("content-type", contentType)
	params.Set("include-notes", strconv.FormatBool(opts.IncludeNotes))
	params.Set("include-titles", strconv.FormatBool(opts.IncludeTitles))
	params.Set("include-chapter-numbers", strconv.FormatBool(opts.IncludeChapterNumbers))
	params.Set("include-verse-numbers", strconv.FormatBool(opts.IncludeVerseNumbers))
	params.Set("include-verse-spans", strconv.FormatBool(opts.IncludeVerseSpans))
	params.Set("use-org-id", strconv.FormatBool(opts.UseOrgID))

	var out struct {
		Data PassageContent `json:"data"`
	}
	path := "/bibles/" + url.PathEscape(bibleID) + "/passages/" + url.PathEscape(passageID)
	if err := c.get(ctx, path, params, &out); err != nil {
		return PassageContent{}, err
	}
	return out.Data, nil
}

func (c *Client) checkKey() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("apibible: %w", bible.ErrMissingAPIKey)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &bible.APIError{Status: resp.StatusCode, Message: msg}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apibible: decode response: %w", err)
	}
	return nil
}

// classify mirrors the ESV client: cancellation is surfaced as the context
// error, deadlines as the shared timeout sentinel.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", bible.ErrTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", bible.ErrTimeout, err)
	}
	return fmt.Errorf("apibible: request failed: %w", err)
}
