package service

import (
	"strings"
	"unicode"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/pkg/monitoring"
)

const (
	fallbackReplyAr = "عذراً، لم أفهم سؤالك. جرّب سؤالاً عن البرمجة بمساعدة الذكاء الاصطناعي أو تصفح المقالات."
	fallbackReplyEn = "Sorry, I did not understand. Try asking about AI-assisted programming, or browse the articles."
)

// ChatbotService answers messages from a fixed keyword-rule table.
// Pure rule matching: the rule with the most keyword hits wins, ties
// go to the earlier rule.
type ChatbotService struct {
	Rules            []model.ChatRule
	FallbackLanguage string
}

func NewChatbotService(rules []model.ChatRule, fallbackLanguage string) *ChatbotService {
	return &ChatbotService{Rules: rules, FallbackLanguage: fallbackLanguage}
}

// Reply matches the message against the rule table. The reply language
// follows the message script: Arabic text gets the Arabic reply.
func (s *ChatbotService) Reply(message string) model.ChatReply {
	arabic := isArabic(message)
	normalized := strings.ToLower(message)

	bestHits := 0
	var bestRule *model.ChatRule
	for i := range s.Rules {
		hits := 0
		for _, kw := range s.Rules[i].Keywords {
			if kw != "" && strings.Contains(normalized, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			bestRule = &s.Rules[i]
		}
	}

	if bestRule == nil {
		monitoring.ChatFallbackCounter.Inc()
		if s.FallbackLanguage == "en" && !arabic {
			return model.ChatReply{Text: fallbackReplyEn, Fallback: true}
		}
		if arabic || s.FallbackLanguage == "ar" {
			return model.ChatReply{Text: fallbackReplyAr, Fallback: true}
		}
		return model.ChatReply{Text: fallbackReplyEn, Fallback: true}
	}

	text := bestRule.ReplyEn
	if arabic || (text == "" && bestRule.ReplyAr != "") {
		text = bestRule.ReplyAr
	}
	return model.ChatReply{
		Text:      text,
		RuleID:    bestRule.ID,
		LinkSlugs: bestRule.LinkSlugs,
	}
}

// isArabic reports whether the message is predominantly Arabic script.
func isArabic(s string) bool {
	arabic, latin := 0, 0
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.IsLetter(r):
			latin++
		}
	}
	return arabic > latin
}
