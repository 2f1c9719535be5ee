package model

// SortBy values for search results.
type SortBy string

const (
	SortByRelevance   SortBy = "relevance"
	SortByTitle       SortBy = "title"
	SortByReadingTime SortBy = "readingTime"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchFilters narrow a result list after matching. All set filters
// must hold (predicate conjunction). Reading-time bounds are inclusive.
type SearchFilters struct {
	Section        string     `json:"section,omitempty"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	HasCode        bool       `json:"hasCode,omitempty"`
	MinReadingTime int        `json:"minReadingTime,omitempty"`
	MaxReadingTime int        `json:"maxReadingTime,omitempty"`
}

// SearchOptions is the full query contract. An empty Query lists the
// whole corpus (score 0 per item) before filters, sort and limit.
type SearchOptions struct {
	Query     string        `json:"query"`
	Filters   SearchFilters `json:"filters"`
	SortBy    SortBy        `json:"sortBy,omitempty"`
	SortOrder SortOrder     `json:"sortOrder,omitempty"`
	Limit     int           `json:"limit,omitempty"`
}

// IndexedArticle is an article annotated with its precomputed reading
// time at index-build time.
type IndexedArticle struct {
	Article
	ReadingTime int `json:"readingTime"`
}

// HighlightSpan is one run of preview or title text; Matches marks the
// runs the query hit.
type HighlightSpan struct {
	Text    string `json:"text"`
	Matches bool   `json:"matches"`
}

// SearchResult is one ranked hit. Score is the normalized fuzzy match
// score: 0 is a perfect match, lower is better.
type SearchResult struct {
	Item               IndexedArticle      `json:"item"`
	Score              float64             `json:"score"`
	HighlightedTitle   []HighlightSpan     `json:"highlightedTitle"`
	HighlightedPreview []HighlightSpan     `json:"highlightedPreview"`
	MatchedTerms       map[string][]string `json:"matchedTerms,omitempty"`
}

// ReadingTimeRange is the min/max precomputed reading time over the
// indexed corpus.
type ReadingTimeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
