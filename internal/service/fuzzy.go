package service

import (
	"strings"
	"unicode"
)

// matchSpan marks a matched region of a field, in rune offsets.
type matchSpan struct {
	Start int
	End   int
}

// fieldMatch is the outcome of matching a query against one indexed
// field. Score is normalized to [0,1] where 0 is a perfect match and
// anything above the threshold is rejected.
type fieldMatch struct {
	Score float64
	Spans []matchSpan
}

const maxSpansPerField = 8

// matchField runs the query against a field. Matching is
// location-independent: a hit anywhere in the text counts. Exact
// substring hits score best; otherwise the query is compared against
// each word with a normalized edit distance, tolerating typos up to
// the threshold.
func matchField(query, text string, threshold float64) (fieldMatch, bool) {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	t := []rune(strings.ToLower(text))
	if len(q) == 0 || len(t) == 0 {
		return fieldMatch{}, false
	}

	if spans := substringSpans(t, q); len(spans) > 0 {
		score := 0.0
		if len(q) != len(t) {
			// Partial hit: nudge the score by how little of the field
			// the query covers, keeping exact field equality ranked first.
			score = 0.1 * (1 - float64(len(q))/float64(len(t)))
		}
		return fieldMatch{Score: score, Spans: spans}, true
	}

	best := 1.0
	var bestSpan matchSpan
	found := false
	for _, w := range fieldWords(t) {
		word := t[w.Start:w.End]
		dist := levenshtein(q, word)
		maxLen := len(q)
		if len(word) > maxLen {
			maxLen = len(word)
		}
		if maxLen == 0 {
			continue
		}
		score := float64(dist) / float64(maxLen)
		if score < best {
			best = score
			bestSpan = w
			found = true
		}
	}
	if !found || best > threshold {
		return fieldMatch{}, false
	}
	return fieldMatch{Score: best, Spans: []matchSpan{bestSpan}}, true
}

// substringSpans finds non-overlapping occurrences of needle.
func substringSpans(haystack, needle []rune) []matchSpan {
	var spans []matchSpan
	for i := 0; i+len(needle) <= len(haystack) && len(spans) < maxSpansPerField; {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			spans = append(spans, matchSpan{Start: i, End: i + len(needle)})
			i += len(needle)
		} else {
			i++
		}
	}
	return spans
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fieldWords returns word spans of the text. Words are maximal runs of
// letters and digits, so punctuation never leaks into edit distances.
func fieldWords(t []rune) []matchSpan {
	var words []matchSpan
	start := -1
	for i, r := range t {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, matchSpan{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, matchSpan{Start: start, End: len(t)})
	}
	return words
}

// levenshtein computes edit distance over runes with a single-row DP.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
