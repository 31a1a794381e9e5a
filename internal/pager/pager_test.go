package pager

import (
	"context"
	"errors"
	"testing"

	"github.com/prinketaru/scriptura/internal/bible"
)

func entries(n int) []bible.SearchEntry {
	out := make([]bible.SearchEntry, n)
	for i := range out {
		out[i] = bible.SearchEntry{Reference: "ref", Text: "text"}
	}
	return out
}

func knownTotalFetch(t *testing.T, total int, calls *[]int) FetchFunc {
	t.Helper()
	return func(_ context.Context, page int) (bible.SearchSet, error) {
		*calls = append(*calls, page)
		remaining := total - page*10
		if remaining < 0 {
			remaining = 0
		}
		if remaining > 10 {
			remaining = 10
		}
		return bible.SearchSet{Total: total, TotalKnown: true, Entries: entries(remaining)}, nil
	}
}

func TestMoveClampsIntoKnownRange(t *testing.T) {
	var calls []int
	fetch := knownTotalFetch(t, 23, &calls)
	first, _ := fetch(context.Background(), 0)
	calls = nil

	p := New("user-1", first, fetch)

	// Prev on the first page is a no-op with no fetch.
	set, err := p.Move(context.Background(), -1)
	if err != nil {
		t.Fatalf("prev on first page: %v", err)
	}
	if p.Page() != 0 || len(calls) != 0 {
		t.Fatalf("expected no transition, page=%d calls=%v", p.Page(), calls)
	}

	for want := 1; want <= 2; want++ {
		if _, err := p.Move(context.Background(), 1); err != nil {
			t.Fatalf("next to page %d: %v", want, err)
		}
		if p.Page() != want {
			t.Fatalf("page = %d, want %d", p.Page(), want)
		}
	}

	// Past the last page clamps back onto it without a fetch.
	calls = nil
	set, err = p.Move(context.Background(), 1)
	if err != nil {
		t.Fatalf("next past end: %v", err)
	}
	if p.Page() != 2 || len(calls) != 0 {
		t.Fatalf("expected clamp to page 2 with no fetch, page=%d calls=%v", p.Page(), calls)
	}
	if len(set.Entries) != 3 {
		t.Fatalf("expected the 3 entries of the last page, got %d", len(set.Entries))
	}
}

func TestMoveRefetchesEveryTransition(t *testing.T) {
	var calls []int
	fetch := knownTotalFetch(t, 30, &calls)
	first, _ := fetch(context.Background(), 0)
	calls = nil

	p := New("user-1", first, fetch)
	if _, err := p.Move(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Move(context.Background(), -1); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Move(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	want := []int{1, 0, 1}
	if len(calls) != len(want) {
		t.Fatalf("fetch calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("fetch calls = %v, want %v", calls, want)
		}
	}
}

func TestUnknownTotalEmptyFetchPinsLastPage(t *testing.T) {
	fetch := func(_ context.Context, page int) (bible.SearchSet, error) {
		if page >= 2 {
			return bible.SearchSet{}, nil
		}
		return bible.SearchSet{Entries: entries(10)}, nil
	}
	first, _ := fetch(context.Background(), 0)
	p := New("user-1", first, fetch)

	if _, err := p.Move(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if p.Page() != 1 {
		t.Fatalf("page = %d, want 1", p.Page())
	}

	// Page 2 comes back empty: stay on page 1 and remember the boundary.
	set, err := p.Move(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Page() != 1 || len(set.Entries) != 10 {
		t.Fatalf("expected to stay on page 1, page=%d entries=%d", p.Page(), len(set.Entries))
	}

	// Further Next requests never run past the boundary again.
	if _, err := p.Move(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if p.Page() != 1 {
		t.Fatalf("page = %d, want 1", p.Page())
	}
}

func TestMoveFetchErrorKeepsState(t *testing.T) {
	boom := errors.New("backend down")
	failNext := false
	fetch := func(_ context.Context, page int) (bible.SearchSet, error) {
		if failNext {
			return bible.SearchSet{}, boom
		}
		return bible.SearchSet{Total: 30, TotalKnown: true, Entries: entries(10)}, nil
	}
	first, _ := fetch(context.Background(), 0)
	p := New("user-1", first, fetch)

	failNext = true
	if _, err := p.Move(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if p.Page() != 0 {
		t.Fatalf("failed transition moved the page to %d", p.Page())
	}
	if len(p.Current().Entries) != 10 {
		t.Fatal("failed transition clobbered the current page")
	}
}

func TestExpire(t *testing.T) {
	fetch := func(_ context.Context, page int) (bible.SearchSet, error) {
		return bible.SearchSet{Entries: entries(10)}, nil
	}
	first, _ := fetch(context.Background(), 0)
	p := New("user-1", first, fetch)

	if p.Expired() {
		t.Fatal("fresh pager should not be expired")
	}
	p.Expire()
	if !p.Expired() {
		t.Fatal("pager should report expired after Expire")
	}
	if _, err := p.Move(context.Background(), 1); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}
