package service

import (
	"sort"
	"time"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"
	"vibewiki_backend/pkg/monitoring"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Field weights of the index. Title hits dominate, section hits only
// nudge the score.
const (
	weightTitle   = 0.6
	weightContent = 0.3
	weightSection = 0.1
)

const (
	previewContext = 50
	previewPlain   = 200
)

// SearchIndex is an explicit, caller-owned index over the article
// corpus. Construct it once at startup and pass it by reference;
// rebuilding after a corpus change means constructing a new value.
type SearchIndex struct {
	entries   []model.IndexedArticle
	threshold float64
	collator  *collate.Collator
}

// NewSearchIndex annotates every article with its precomputed reading
// time and prepares the locale collator used for title sorting.
func NewSearchIndex(articles []model.Article, threshold float64, lang language.Tag) *SearchIndex {
	start := time.Now()

	entries := make([]model.IndexedArticle, 0, len(articles))
	for _, a := range articles {
		entries = append(entries, model.IndexedArticle{
			Article:     a,
			ReadingTime: util.ReadingTime(a.Content),
		})
	}

	idx := &SearchIndex{
		entries:   entries,
		threshold: threshold,
		collator:  collate.New(lang),
	}
	monitoring.IndexBuildDuration.Observe(time.Since(start).Seconds())
	return idx
}

// Search executes the full query contract: fuzzy match (or corpus
// listing on an empty query), filter conjunction, sort and limit.
// Malformed queries degrade to few or no matches; nothing errors.
func (idx *SearchIndex) Search(opts model.SearchOptions) []model.SearchResult {
	var results []model.SearchResult
	if isEmptyQuery(opts.Query) {
		monitoring.SearchCounter.WithLabelValues("browse").Inc()
		results = idx.listAll()
	} else {
		monitoring.SearchCounter.WithLabelValues("query").Inc()
		results = idx.match(opts.Query)
	}

	results = filterResults(results, opts.Filters)
	idx.sortResults(results, opts.SortBy, opts.SortOrder)

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// AvailableSections lists the distinct sections of the corpus in
// collation order.
func (idx *SearchIndex) AvailableSections() []string {
	seen := make(map[string]bool)
	var sections []string
	for _, e := range idx.entries {
		if e.Section != "" && !seen[e.Section] {
			seen[e.Section] = true
			sections = append(sections, e.Section)
		}
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return idx.collator.CompareString(sections[i], sections[j]) < 0
	})
	return sections
}

// ReadingTimeRange reports the min and max precomputed reading time.
func (idx *SearchIndex) ReadingTimeRange() model.ReadingTimeRange {
	if len(idx.entries) == 0 {
		return model.ReadingTimeRange{}
	}
	r := model.ReadingTimeRange{Min: idx.entries[0].ReadingTime, Max: idx.entries[0].ReadingTime}
	for _, e := range idx.entries[1:] {
		if e.ReadingTime < r.Min {
			r.Min = e.ReadingTime
		}
		if e.ReadingTime > r.Max {
			r.Max = e.ReadingTime
		}
	}
	return r
}

func isEmptyQuery(q string) bool {
	for _, r := range q {
		if r != ' ' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}

func (idx *SearchIndex) listAll() []model.SearchResult {
	results := make([]model.SearchResult, 0, len(idx.entries))
	for _, e := range idx.entries {
		results = append(results, model.SearchResult{
			Item:               e,
			Score:              0,
			HighlightedTitle:   plainRuns(e.Title),
			HighlightedPreview: plainPreview(e.Content),
		})
	}
	return results
}

func (idx *SearchIndex) match(query string) []model.SearchResult {
	var results []model.SearchResult
	for _, e := range idx.entries {
		titleMatch, titleOK := matchField(query, e.Title, idx.threshold)
		contentMatch, contentOK := matchField(query, e.Content, idx.threshold)
		sectionMatch, sectionOK := matchField(query, e.Section, idx.threshold)
		if !titleOK && !contentOK && !sectionOK {
			continue
		}

		var weighted, weights float64
		if titleOK {
			weighted += weightTitle * titleMatch.Score
			weights += weightTitle
		}
		if contentOK {
			weighted += weightContent * contentMatch.Score
			weights += weightContent
		}
		if sectionOK {
			weighted += weightSection * sectionMatch.Score
			weights += weightSection
		}

		result := model.SearchResult{
			Item:         e,
			Score:        weighted / weights,
			MatchedTerms: map[string][]string{},
		}

		if titleOK {
			result.HighlightedTitle = highlightRuns([]rune(e.Title), titleMatch.Spans)
			if terms := topTerms(e.Title, titleMatch.Spans); len(terms) > 0 {
				result.MatchedTerms["title"] = terms
			}
		} else {
			result.HighlightedTitle = plainRuns(e.Title)
		}

		if contentOK {
			result.HighlightedPreview = previewRuns([]rune(e.Content), contentMatch.Spans)
			if terms := topTerms(e.Content, contentMatch.Spans); len(terms) > 0 {
				result.MatchedTerms["content"] = terms
			}
		} else {
			result.HighlightedPreview = plainPreview(e.Content)
		}

		if sectionOK {
			if terms := topTerms(e.Section, sectionMatch.Spans); len(terms) > 0 {
				result.MatchedTerms["section"] = terms
			}
		}
		if len(result.MatchedTerms) == 0 {
			result.MatchedTerms = nil
		}

		results = append(results, result)
	}
	return results
}

func filterResults(results []model.SearchResult, f model.SearchFilters) []model.SearchResult {
	out := results[:0]
	for _, r := range results {
		if f.Section != "" && r.Item.Section != f.Section {
			continue
		}
		if f.Difficulty != "" && r.Item.Difficulty != f.Difficulty {
			continue
		}
		if f.HasCode && len(r.Item.CodeBlocks) == 0 {
			continue
		}
		if f.MinReadingTime > 0 && r.Item.ReadingTime < f.MinReadingTime {
			continue
		}
		if f.MaxReadingTime > 0 && r.Item.ReadingTime > f.MaxReadingTime {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (idx *SearchIndex) sortResults(results []model.SearchResult, by model.SortBy, order model.SortOrder) {
	if by == "" {
		by = model.SortByRelevance
	}

	var less func(a, b model.SearchResult) bool
	switch by {
	case model.SortByTitle:
		less = func(a, b model.SearchResult) bool {
			return idx.collator.CompareString(a.Item.Title, b.Item.Title) < 0
		}
	case model.SortByReadingTime:
		less = func(a, b model.SearchResult) bool {
			return a.Item.ReadingTime < b.Item.ReadingTime
		}
	default:
		// Relevance: lower fuzzy score is the better match, ascending
		// puts best first.
		less = func(a, b model.SearchResult) bool {
			return a.Score < b.Score
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if order == model.SortDesc {
			return less(results[j], results[i])
		}
		return less(results[i], results[j])
	})
}

// plainRuns wraps a whole string in a single non-matching run.
func plainRuns(s string) []model.HighlightSpan {
	if s == "" {
		return nil
	}
	return []model.HighlightSpan{{Text: s, Matches: false}}
}

// plainPreview takes the leading slice of the content when the match
// did not land in the content field.
func plainPreview(content string) []model.HighlightSpan {
	runes := []rune(content)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= previewPlain {
		return []model.HighlightSpan{{Text: string(runes), Matches: false}}
	}
	return []model.HighlightSpan{{Text: string(runes[:previewPlain]) + "...", Matches: false}}
}

// highlightRuns converts match spans into alternating text runs.
func highlightRuns(text []rune, spans []matchSpan) []model.HighlightSpan {
	spans = normalizeSpans(spans, len(text))
	var runs []model.HighlightSpan
	pos := 0
	for _, sp := range spans {
		if sp.Start > pos {
			runs = append(runs, model.HighlightSpan{Text: string(text[pos:sp.Start]), Matches: false})
		}
		runs = append(runs, model.HighlightSpan{Text: string(text[sp.Start:sp.End]), Matches: true})
		pos = sp.End
	}
	if pos < len(text) {
		runs = append(runs, model.HighlightSpan{Text: string(text[pos:]), Matches: false})
	}
	return runs
}

// previewRuns centers a window around the first content match with
// ellipses where the window cuts the text.
func previewRuns(content []rune, spans []matchSpan) []model.HighlightSpan {
	spans = normalizeSpans(spans, len(content))
	if len(spans) == 0 {
		return plainPreview(string(content))
	}
	first := spans[0]

	start := first.Start - previewContext
	if start < 0 {
		start = 0
	}
	end := first.End + previewContext
	if end > len(content) {
		end = len(content)
	}

	var window []matchSpan
	for _, sp := range spans {
		if sp.End <= start || sp.Start >= end {
			continue
		}
		s, e := sp.Start, sp.End
		if s < start {
			s = start
		}
		if e > end {
			e = end
		}
		window = append(window, matchSpan{Start: s - start, End: e - start})
	}

	runs := highlightRuns(content[start:end], window)
	if start > 0 && len(runs) > 0 {
		if runs[0].Matches {
			runs = append([]model.HighlightSpan{{Text: "...", Matches: false}}, runs...)
		} else {
			runs[0].Text = "..." + runs[0].Text
		}
	}
	if end < len(content) && len(runs) > 0 {
		last := len(runs) - 1
		if runs[last].Matches {
			runs = append(runs, model.HighlightSpan{Text: "...", Matches: false})
		} else {
			runs[last].Text += "..."
		}
	}
	return runs
}

// normalizeSpans clips, sorts and merges overlapping spans.
func normalizeSpans(spans []matchSpan, limit int) []matchSpan {
	var clipped []matchSpan
	for _, sp := range spans {
		if sp.Start < 0 {
			sp.Start = 0
		}
		if sp.End > limit {
			sp.End = limit
		}
		if sp.Start < sp.End {
			clipped = append(clipped, sp)
		}
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start < clipped[j].Start })

	var merged []matchSpan
	for _, sp := range clipped {
		if n := len(merged); n > 0 && sp.Start <= merged[n-1].End {
			if sp.End > merged[n-1].End {
				merged[n-1].End = sp.End
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// topTerms extracts up to two deduplicated matched substrings of at
// least three characters, used for compact highlight chips.
func topTerms(text string, spans []matchSpan) []string {
	runes := []rune(text)
	spans = normalizeSpans(spans, len(runes))
	seen := make(map[string]bool)
	var terms []string
	for _, sp := range spans {
		term := string(runes[sp.Start:sp.End])
		if len([]rune(term)) < 3 || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
		if len(terms) == 2 {
			break
		}
	}
	return terms
}
