// Package votd selects the verse of the day from an immutable reference
// list: day-of-year modulo list length, per UTC calendar date.
package votd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// List is an explicitly-constructed, immutable table of references.
type List struct {
	refs []string
}

// NewList builds a list from references. An empty list is an error: the
// selector must always have something to return.
func NewList(refs []string) (List, error) {
	if len(refs) == 0 {
		return List{}, errors.New("votd: empty reference list")
	}
	out := make([]string, len(refs))
	copy(out, refs)
	return List{refs: out}, nil
}

// Load reads a YAML file holding a flat list of references.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, fmt.Errorf("votd: read list: %w", err)
	}
	var refs []string
	if err := yaml.Unmarshal(data, &refs); err != nil {
		return List{}, fmt.Errorf("votd: parse list: %w", err)
	}
	return NewList(refs)
}

// For returns the reference for a date, deterministic per UTC calendar day.
func (l List) For(date time.Time) string {
	day := date.UTC().YearDay() - 1
	return l.refs[day%len(l.refs)]
}

// Len reports the list size.
func (l List) Len() int { return len(l.refs) }

// DefaultList is the built-in rotation used when no list file is configured.
func DefaultList() List {
	l, err := NewList(defaultRefs)
	if err != nil {
		panic(err) // defaultRefs is non-empty by construction
	}
	return l
}

var defaultRefs = []string{
	"Genesis 1:1",
	"Deuteronomy 31:6",
	"Joshua 1:9",
	"Psalm 23:1-6",
	"Psalm 27:1",
	"Psalm 46:1",
	"Psalm 119:105",
	"Proverbs 3:5-6",
	"Proverbs 16:3",
	"Isaiah 40:31",
	"Isaiah 41:10",
	"Jeremiah 29:11",
	"Lamentations 3:22-23",
	"Micah 6:8",
	"Zephaniah 3:17",
	"Matthew 5:16",
	"Matthew 6:33",
	"Matthew 11:28",
	"Mark 12:30-31",
	"John 3:16",
	"John 14:6",
	"John 16:33",
	"Romans 5:8",
	"Romans 8:28",
	"Romans 12:2",
	"1 Corinthians 10:13",
	"2 Corinthians 5:17",
	"Galatians 5:22-23",
	"Ephesians 2:8-9",
	"Philippians 4:6-7",
	"Philippians 4:13",
	"Colossians 3:23",
	"1 Thessalonians 5:16-18",
	"2 Timothy 1:7",
	"Hebrews 11:1",
	"Hebrews 12:1-2",
	"James 1:5",
	"1 Peter 5:7",
	"1 John 1:9",
	"Revelation 21:4",
}
