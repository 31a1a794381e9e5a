package resolver

import (
	"context"

	"github.com/prinketaru/scriptura/internal/apibible"
	"github.com/prinketaru/scriptura/internal/bible"
)

// apiBibleBackend adapts the API.Bible client for one bible edition.
type apiBibleBackend struct {
	client  *apibible.Client
	bibleID string
}

// NewAPIBibleBackend wraps an API.Bible client bound to one bible ID.
func NewAPIBibleBackend(client *apibible.Client, bibleID string) Backend {
	return &apiBibleBackend{client: client, bibleID: bibleID}
}

func (b *apiBibleBackend) Query(ctx context.Context, query string, opts Options) (Hits, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	sr, err := b.client.Search(ctx, b.bibleID, query, apibible.SearchOptions{
		Sort:   "relevance",
		Limit:  pageSize,
		Offset: opts.Page * pageSize,
	})
	if err != nil {
		return Hits{}, err
	}

	passages := make([]PassageHit, 0, len(sr.Passages))
	for _, p := range sr.Passages {
		passages = append(passages, PassageHit{ID: p.ID, Reference: p.Reference})
	}
	verses := make([]bible.SearchEntry, 0, len(sr.Verses))
	for _, v := range sr.Verses {
		verses = append(verses, bible.SearchEntry{ID: v.ID, Reference: v.Reference, Text: v.Text})
	}
	return Hits{
		Passages: passages,
		Verses:   verses,
		Total:    sr.Total,
		// A zero total alongside hits means the backend did not report one.
		TotalKnown: sr.Total > 0 || (len(sr.Verses) == 0 && len(sr.Passages) == 0),
		Limit:      sr.Limit,
		Offset:     sr.Offset,
	}, nil
}

func (b *apiBibleBackend) Passage(ctx context.Context, id string, opts Options) (Content, error) {
	pc, err := b.client.Passage(ctx, b.bibleID, id, apibible.DisplayOptions{
		ContentType:         "json",
		IncludeNotes:        opts.Footnotes,
		IncludeTitles:       opts.Headings != bible.TriOff,
		IncludeVerseNumbers: opts.VerseNumbers,
	})
	if err != nil {
		return Content{}, err
	}
	return Content{
		Reference:  pc.Reference,
		Text:       pc.Text,
		Tree:       pc.Content,
		VerseCount: pc.VerseCount,
		Copyright:  pc.Copyright,
	}, nil
}
