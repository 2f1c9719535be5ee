package util

import (
	"math"
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var (
	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`]*`")
	markdownPunct = regexp.MustCompile(`[#*_>\[\]()!~\-]+`)
)

// StripMarkdown removes fenced code blocks, inline code and markdown
// punctuation, leaving the prose that counts toward reading time.
func StripMarkdown(s string) string {
	s = fencedCodeRe.ReplaceAllString(s, " ")
	s = inlineCodeRe.ReplaceAllString(s, " ")
	s = markdownPunct.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// WordCount counts whitespace-separated words in cleaned text.
func WordCount(s string) int {
	return len(strings.Fields(StripMarkdown(s)))
}

// ReadingTime estimates minutes to read markdown content at 200 words
// per minute, rounded up. Empty content reads in zero minutes.
func ReadingTime(content string) int {
	words := WordCount(content)
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}
