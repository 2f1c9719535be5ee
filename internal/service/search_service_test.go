package service

import (
	"strings"
	"testing"

	"vibewiki_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// contentWithWords builds markdown prose with a topic lead-in and
// enough filler to reach the wanted word count.
func contentWithWords(leadIn string, words int) string {
	lead := strings.Fields(leadIn)
	var b strings.Builder
	b.WriteString(leadIn)
	for i := len(lead); i < words; i++ {
		b.WriteString(" filler")
	}
	return b.String()
}

// testArticles is the four-article corpus with reading times 3, 5, 2
// and 4 minutes at 200 words per minute.
func testArticles() []model.Article {
	return []model.Article{
		{
			Slug:    "react-hooks",
			Title:   "Introduction to React Hooks",
			Section: "frontend",
			Content: contentWithWords("React Hooks let components use state", 450),
			Tags:    []string{"react", "hooks"},
			CodeBlocks: []model.CodeBlock{
				{Language: "javascript", Code: "const [n, setN] = useState(0)"},
			},
		},
		{
			Slug:    "ts-patterns",
			Title:   "Advanced TypeScript Patterns",
			Section: "frontend",
			Content: contentWithWords("TypeScript generics mapped types", 900),
			Tags:    []string{"typescript"},
		},
		{
			Slug:    "node-start",
			Title:   "Getting Started with Node.js",
			Section: "backend",
			Content: contentWithWords("Node runs JavaScript on servers", 300),
		},
		{
			Slug:    "css-grid",
			Title:   "CSS Grid Layout Guide",
			Section: "frontend",
			Content: contentWithWords("Grid layout rows columns", 700),
		},
	}
}

func newTestIndex(t *testing.T) *SearchIndex {
	t.Helper()
	return NewSearchIndex(testArticles(), 0.4, language.English)
}

func TestSearchEmptyQueryReturnsWholeCorpus(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{Query: ""})
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Zero(t, r.Score)
	}

	// Repeated calls stay deterministic.
	again := idx.Search(model.SearchOptions{Query: "   "})
	require.Len(t, again, 4)
}

func TestSearchFindsReactArticleFirst(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{Query: "React"})
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Item.Title, "React")
}

func TestSearchMinReadingTimeFilter(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{
		Query:   "",
		Filters: model.SearchFilters{MinReadingTime: 4},
	})
	require.Len(t, results, 2)

	slugs := []string{results[0].Item.Slug, results[1].Item.Slug}
	assert.ElementsMatch(t, []string{"ts-patterns", "css-grid"}, slugs)
}

func TestSearchSortByReadingTimeDesc(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{
		Query:     "",
		SortBy:    model.SortByReadingTime,
		SortOrder: model.SortDesc,
	})
	require.NotEmpty(t, results)
	assert.Equal(t, "Advanced TypeScript Patterns", results[0].Item.Title)
}

func TestSearchFilterConjunction(t *testing.T) {
	idx := newTestIndex(t)

	section := idx.Search(model.SearchOptions{
		Filters: model.SearchFilters{Section: "frontend"},
	})
	timed := idx.Search(model.SearchOptions{
		Filters: model.SearchFilters{MinReadingTime: 4},
	})
	both := idx.Search(model.SearchOptions{
		Filters: model.SearchFilters{Section: "frontend", MinReadingTime: 4},
	})

	inSection := map[string]bool{}
	for _, r := range section {
		inSection[r.Item.Slug] = true
	}
	inTimed := map[string]bool{}
	for _, r := range timed {
		inTimed[r.Item.Slug] = true
	}

	require.NotEmpty(t, both)
	count := 0
	for slug := range inSection {
		if inTimed[slug] {
			count++
		}
	}
	assert.Len(t, both, count)
	for _, r := range both {
		assert.True(t, inSection[r.Item.Slug])
		assert.True(t, inTimed[r.Item.Slug])
	}
}

func TestSearchHasCodeFilter(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{
		Filters: model.SearchFilters{HasCode: true},
	})
	require.Len(t, results, 1)
	assert.Equal(t, "react-hooks", results[0].Item.Slug)
}

func TestSearchTitleSortIsNonDecreasing(t *testing.T) {
	idx := newTestIndex(t)

	asc := idx.Search(model.SearchOptions{SortBy: model.SortByTitle})
	require.Len(t, asc, 4)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t,
			idx.collator.CompareString(asc[i-1].Item.Title, asc[i].Item.Title), 0)
	}

	desc := idx.Search(model.SearchOptions{SortBy: model.SortByTitle, SortOrder: model.SortDesc})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t,
			idx.collator.CompareString(desc[i-1].Item.Title, desc[i].Item.Title), 0)
	}
}

func TestSearchLimit(t *testing.T) {
	idx := newTestIndex(t)

	limited := idx.Search(model.SearchOptions{Limit: 2})
	assert.Len(t, limited, 2)

	unlimited := idx.Search(model.SearchOptions{})
	assert.Len(t, unlimited, 4)
}

func TestSearchNoMatchReturnsEmpty(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{Query: "xyznonexistent"})
	assert.Empty(t, results)
}

func TestSearchSpecialCharactersDoNotPanic(t *testing.T) {
	idx := newTestIndex(t)

	for _, q := range []string{"c++ ???", "[](){}", "*.*", "  \t \n ", "ال!؟"} {
		assert.NotPanics(t, func() {
			idx.Search(model.SearchOptions{Query: q})
		})
	}
}

func TestSearchTypoTolerance(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{Query: "Reakt"})
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Item.Title, "React")
}

func TestSearchArabicQuery(t *testing.T) {
	articles := append(testArticles(), model.Article{
		Slug:    "intro-ar",
		Title:   "مقدمة في البرمجة بمساعدة الذكاء الاصطناعي",
		Section: "أساسيات",
		Content: contentWithWords("البرمجة بمساعدة الذكاء الاصطناعي تغير طريقة بناء البرمجيات", 250),
	})
	idx := NewSearchIndex(articles, 0.4, language.Arabic)

	results := idx.Search(model.SearchOptions{Query: "الذكاء"})
	require.NotEmpty(t, results)
	assert.Equal(t, "intro-ar", results[0].Item.Slug)
}

func TestSearchHighlightsAndMatchedTerms(t *testing.T) {
	idx := newTestIndex(t)

	results := idx.Search(model.SearchOptions{Query: "React"})
	require.NotEmpty(t, results)
	r := results[0]

	var matched bool
	var rebuilt strings.Builder
	for _, run := range r.HighlightedTitle {
		rebuilt.WriteString(run.Text)
		if run.Matches {
			matched = true
			assert.Equal(t, "react", strings.ToLower(run.Text))
		}
	}
	assert.True(t, matched, "expected a matching title run")
	assert.Equal(t, r.Item.Title, rebuilt.String())

	require.Contains(t, r.MatchedTerms, "title")
	assert.NotEmpty(t, r.MatchedTerms["title"])
	for _, term := range r.MatchedTerms["title"] {
		assert.GreaterOrEqual(t, len([]rune(term)), 3)
	}
	assert.LessOrEqual(t, len(r.MatchedTerms["title"]), 2)
}

func TestSearchPreviewWindowsAroundContentMatch(t *testing.T) {
	content := contentWithWords("start", 300)
	content = content[:900] + " needleword " + content[900:]
	idx := NewSearchIndex([]model.Article{
		{Slug: "a", Title: "Plain", Section: "s", Content: content},
	}, 0.4, language.English)

	results := idx.Search(model.SearchOptions{Query: "needleword"})
	require.Len(t, results, 1)

	preview := results[0].HighlightedPreview
	require.NotEmpty(t, preview)
	assert.True(t, strings.HasPrefix(preview[0].Text, "..."))

	var total string
	var hasMatch bool
	for _, run := range preview {
		total += run.Text
		if run.Matches {
			hasMatch = true
		}
	}
	assert.True(t, hasMatch)
	assert.Contains(t, total, "needleword")
	// Window stays around 100 characters plus the ellipses.
	assert.Less(t, len([]rune(total)), 130)
}

func TestAvailableSectionsAndReadingTimeRange(t *testing.T) {
	idx := newTestIndex(t)

	sections := idx.AvailableSections()
	assert.ElementsMatch(t, []string{"frontend", "backend"}, sections)

	r := idx.ReadingTimeRange()
	assert.Equal(t, 2, r.Min)
	assert.Equal(t, 5, r.Max)
}

func TestEmptyIndex(t *testing.T) {
	idx := NewSearchIndex(nil, 0.4, language.Arabic)

	assert.Empty(t, idx.Search(model.SearchOptions{Query: "anything"}))
	assert.Empty(t, idx.Search(model.SearchOptions{}))
	assert.Empty(t, idx.AvailableSections())
	assert.Equal(t, model.ReadingTimeRange{}, idx.ReadingTimeRange())
}
