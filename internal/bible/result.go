package bible

// TriState is a three-valued display preference: follow the automatic
// behavior, force on, or force off.
type TriState string

const (
	TriAuto TriState = "auto"
	TriOn   TriState = "on"
	TriOff  TriState = "off"
)

// ResultKind tags a Result. Exactly one payload field is populated per kind.
type ResultKind int

const (
	KindPassage ResultKind = iota
	KindSearch
	KindEmpty
	KindFailure
)

func (k ResultKind) String() string {
	switch k {
	case KindPassage:
		return "passage"
	case KindSearch:
		return "search"
	case KindEmpty:
		return "empty"
	case KindFailure:
		return "failure"
	}
	return "unknown"
}

// Passage is a single contiguous span of scripture text.
type Passage struct {
	Reference  string
	Text       string
	VerseCount int // 0 when the backend does not report it
	Copyright  string
}

// SearchEntry is one verse-level match.
type SearchEntry struct {
	ID        string
	Reference string
	Text      string
}

// SearchSet is one page of ranked verse-level matches.
type SearchSet struct {
	Query      string
	Total      int
	TotalKnown bool // some backends never report a total
	Limit      int
	Offset     int
	Entries    []SearchEntry
}

// Failure is a transport or backend error surfaced as a value.
type Failure struct {
	Message string
	Status  int // 0 when no HTTP status applies
}

// Result is the outcome of resolving one query: exactly one of a passage, a
// search set, an empty outcome, or a failure. Consumers switch on Kind.
type Result struct {
	Kind    ResultKind
	Passage Passage
	Search  SearchSet
	Query   string // populated for KindEmpty
	Failure Failure
}

// PassageResult wraps a passage outcome.
func PassageResult(p Passage) Result {
	return Result{Kind: KindPassage, Passage: p}
}

// SearchResult wraps a search outcome.
func SearchResult(s SearchSet) Result {
	return Result{Kind: KindSearch, Search: s}
}

// EmptyResult records that nothing matched the query.
func EmptyResult(query string) Result {
	return Result{Kind: KindEmpty, Query: query}
}

// FailureResult wraps an error outcome.
func FailureResult(message string, status int) Result {
	return Result{Kind: KindFailure, Failure: Failure{Message: message, Status: status}}
}
