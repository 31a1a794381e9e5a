// Package resolver turns raw user queries into typed results: it dispatches
// one search against the selected backend, decides passage-versus-search,
// fetches and flattens passage content, and normalizes every failure.
package resolver

import (
	"context"
	"errors"
	"regexp"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/bible/content"
)

// Options carry the caller's display preferences and search paging.
type Options struct {
	Footnotes    bool
	Headings     bible.TriState
	VerseNumbers bool
	LineByLine   bible.TriState
	Page         int // zero-based search page
	PageSize     int
}

// PassageHit is a direct passage match reported by a backend search.
type PassageHit struct {
	ID        string
	Reference string
}

// Hits is the normalized outcome of one backend search call.
type Hits struct {
	Passages   []PassageHit
	Verses     []bible.SearchEntry
	Total      int
	TotalKnown bool
	Limit      int
	Offset     int
}

// Content is fetched passage content. Exactly one of Tree or Text is set:
// API.Bible returns a document tree, the ESV API pre-rendered text.
type Content struct {
	Reference  string
	Text       string
	Tree       []content.Node
	VerseCount int
	Copyright  string
}

// Backend abstracts the two scripture providers behind a uniform
// search-then-fetch contract. Both implementations honor context
// cancellation.
type Backend interface {
	Query(ctx context.Context, query string, opts Options) (Hits, error)
	Passage(ctx context.Context, id string, opts Options) (Content, error)
}

// Books laid out one verse per line when the line-by-line preference is
// left on auto.
var poeticRef = regexp.MustCompile(`(?i)^(job|psalm|proverb|ecclesiastes|song of solomon|lamentation)s?\b`)

// Resolve runs the passage-versus-search state machine for one query.
// Passages take strict precedence over verse-level matches; any backend
// failure short-circuits to a failure result.
func Resolve(ctx context.Context, b Backend, query string, opts Options) bible.Result {
	hits, err := b.Query(ctx, query, opts)
	if err != nil {
		return failureFrom(err)
	}

	if len(hits.Passages) > 0 {
		hit := hits.Passages[0]
		if hit.ID == "" {
			return bible.FailureResult("passage without id", 0)
		}
		pc, err := b.Passage(ctx, hit.ID, opts)
		if err != nil {
			return failureFrom(err)
		}
		reference := pc.Reference
		if reference == "" {
			reference = hit.Reference
		}
		text := pc.Text
		if len(pc.Tree) > 0 {
			text = content.Flatten(pc.Tree, content.Options{
				LineByLine: lineByLine(opts.LineByLine, reference),
			})
		}
		return bible.PassageResult(bible.Passage{
			Reference:  reference,
			Text:       text,
			VerseCount: pc.VerseCount,
			Copyright:  pc.Copyright,
		})
	}

	if len(hits.Verses) > 0 {
		return bible.SearchResult(bible.SearchSet{
			Query:      query,
			Total:      hits.Total,
			TotalKnown: hits.TotalKnown,
			Limit:      hits.Limit,
			Offset:     hits.Offset,
			Entries:    hits.Verses,
		})
	}

	return bible.EmptyResult(query)
}

// lineByLine resolves the tri-state: on and off are unconditional, auto
// infers the poetic layout from the resolved reference.
func lineByLine(pref bible.TriState, reference string) bool {
	switch pref {
	case bible.TriOn:
		return true
	case bible.TriOff:
		return false
	}
	return poeticRef.MatchString(reference)
}

func failureFrom(err error) bible.Result {
	var apiErr *bible.APIError
	if errors.As(err, &apiErr) {
		return bible.FailureResult(apiErr.Message, apiErr.Status)
	}
	return bible.FailureResult(err.Error(), 0)
}
