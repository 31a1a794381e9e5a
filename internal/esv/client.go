// Package esv wraps the ESV API (Backend A): single-translation passage
// lookup and phrase search.
package esv

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
)

// DefaultBaseURL is the production ESV API root.
const DefaultBaseURL = "https://api.esv.org/v3"

const requestTimeout = 10 * time.Second

// Client calls the ESV API over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs an ESV API client. The key is a static credential
// attached to every request; an empty key is a configuration error reported
// at startup rather than per request.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("esv: %w", bible.ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// PassageOptions map to ESV passage-text request parameters.
type PassageOptions struct {
	IncludeFootnotes    bool
	IncludeHeadings     bool
	IncludeVerseNumbers bool
}

// PassageResponse is the decoded passage-text payload.
type PassageResponse struct {
	Canonical   string        `json:"canonical"`
	PassageMeta []PassageMeta `json:"passage_meta"`
	Passages    []string      `json:"passages"`
}

// PassageMeta carries per-passage metadata.
type PassageMeta struct {
	Canonical string `json:"canonical"`
}

// SearchResponse is the decoded passage-search payload.
type SearchResponse struct {
	Page         int           `json:"page"`
	TotalResults int           `json:"total_results"`
	TotalPages   int           `json:"total_pages"`
	Results      []SearchMatch `json:"results"`
}

// SearchMatch is one verse-level search hit.
type SearchMatch struct {
	Reference string `json:"reference"`
	Content   string `json:"content"`
}

// PassageText looks up a passage by reference. An unparseable reference is
// not an error: the response simply carries no passages.
func (c *Client) PassageText(ctx context.Context, reference string, opts PassageOptions) (PassageResponse, error) {
	if strings.TrimSpace(reference) == "" {
		return PassageResponse{}, &bible.ValidationError{Param: "q"}
	}
	params := url.Values{}
	params.Set("q", reference)
	params.Set("include-footnotes", strconv.FormatBool(opts.IncludeFootnotes))
	params.Set("include-headings", strconv.FormatBool(opts.IncludeHeadings))
	params.Set("include-verse-numbers", strconv.FormatBool(opts.IncludeVerseNumbers))
	params.Set("include-passage-references", "false")
	params.Set("include-short-copyright", "false")

	var out PassageResponse
	if err := c.get(ctx, "/passage/text/", params, &out); err != nil {
		return PassageResponse{}, err
	}
	return out, nil
}

// Search runs a phrase search. Pages are 1-based on the wire.
func (c *Client) Search(ctx context.Context, phrase string, page, pageSize int) (SearchResponse, error) {
	if strings.TrimSpace(phrase) == "" {
		return SearchResponse{}, &bible.ValidationError{Param: "q"}
	}
	params := url.Values{}
	params.Set("q", phrase)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("page-size", strconv.Itoa(pageSize))
	}

	var out SearchResponse
	if err := c.get(ctx, "/passage/search/", params, &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &bible.APIError{Status: resp.StatusCode, Message: errResp.Detail}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("esv: decode response: %w", err)
	}
	return nil
}

// classify maps transport errors onto the shared taxonomy: an external
// cancellation is reported as such, a deadline as a timeout, anything else
// as a plain transport failure.
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
	return fmt.Errorf("esv: request failed: %w", err)
}
