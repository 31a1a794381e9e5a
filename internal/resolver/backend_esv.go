package resolver

import (
	"context"
	"strings"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/esv"
)

// esvCopyright is the attribution line attached to every ESV passage.
const esvCopyright = "ESV® Bible, copyright © 2001 by Crossway"

// esvBackend adapts the ESV client to the resolver contract. The ESV API has
// no combined search endpoint: a passage lookup with the raw query doubles
// as the passage-hit probe, and the phrase search runs only when the query
// does not parse as a reference.
type esvBackend struct {
	client *esv.Client
}

// NewESVBackend wraps an ESV client.
func NewESVBackend(client *esv.Client) Backend {
	return &esvBackend{client: client}
}

func (b *esvBackend) Query(ctx context.Context, query string, opts Options) (Hits, error) {
	resp, err := b.client.PassageText(ctx, query, passageOptions(opts))
	if err != nil {
		return Hits{}, err
	}
	if len(resp.Passages) > 0 {
		canonical := resp.Canonical
		if canonical == "" && len(resp.PassageMeta) > 0 {
			canonical = resp.PassageMeta[0].Canonical
		}
		if canonical == "" {
			canonical = query
		}
		return Hits{Passages: []PassageHit{{ID: canonical, Reference: canonical}}}, nil
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	sr, err := b.client.Search(ctx, query, opts.Page+1, pageSize)
	if err != nil {
		return Hits{}, err
	}
	entries := make([]bible.SearchEntry, 0, len(sr.Results))
	for _, m := range sr.Results {
		entries = append(entries, bible.SearchEntry{
			Reference: m.Reference,
			Text:      strings.TrimSpace(m.Content),
		})
	}
	return Hits{
		Verses:     entries,
		Total:      sr.TotalResults,
		TotalKnown: true,
		Limit:      pageSize,
		Offset:     opts.Page * pageSize,
	}, nil
}

func (b *esvBackend) Passage(ctx context.Context, id string, opts Options) (Content, error) {
	resp, err := b.client.PassageText(ctx, id, passageOptions(opts))
	if err != nil {
		return Content{}, err
	}
	reference := resp.Canonical
	if reference == "" && len(resp.PassageMeta) > 0 {
		reference = resp.PassageMeta[0].Canonical
	}
	return Content{
		Reference: reference,
		Text:      strings.TrimSpace(strings.Join(resp.Passages, "\n\n")),
		Copyright: esvCopyright,
	}, nil
}

func passageOptions(opts Options) esv.PassageOptions {
	return esv.PassageOptions{
		IncludeFootnotes: opts.Footnotes,
		// Heading auto resolves to on for the ESV: the API renders them
		// inline and they read naturally in an embed.
		IncludeHeadings:     opts.Headings != bible.TriOff,
		IncludeVerseNumbers: opts.VerseNumbers,
	}
}
