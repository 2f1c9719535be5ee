package service

import (
	"testing"

	"vibewiki_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func testChatRules() []model.ChatRule {
	return []model.ChatRule{
		{
			ID:        "what-is-vibe-coding",
			Keywords:  []string{"vibe coding", "البرمجة بالإحساس", "what is"},
			ReplyAr:   "البرمجة بالإحساس هي بناء البرمجيات بالتعاون مع الذكاء الاصطناعي.",
			ReplyEn:   "Vibe coding is building software in collaboration with AI.",
			LinkSlugs: []string{"intro-to-vibe-coding"},
		},
		{
			ID:       "prompting-help",
			Keywords: []string{"prompt", "الموجه", "كيف أكتب"},
			ReplyAr:  "ابدأ بوصف الهدف بوضوح ثم أضف القيود.",
			ReplyEn:  "Start by describing the goal clearly, then add constraints.",
		},
	}
}

func newTestChatbot() *ChatbotService {
	return NewChatbotService(testChatRules(), "ar")
}

func TestChatbotMatchesKeyword(t *testing.T) {
	bot := newTestChatbot()

	reply := bot.Reply("How do I write a good prompt?")
	assert.Equal(t, "prompting-help", reply.RuleID)
	assert.Equal(t, "Start by describing the goal clearly, then add constraints.", reply.Text)
	assert.False(t, reply.Fallback)
}

func TestChatbotMostHitsWins(t *testing.T) {
	bot := newTestChatbot()

	// Two hits on the first rule beat the single "prompt" hit.
	reply := bot.Reply("what is vibe coding and how do I prompt?")
	assert.Equal(t, "what-is-vibe-coding", reply.RuleID)
	assert.Equal(t, []string{"intro-to-vibe-coding"}, reply.LinkSlugs)
}

func TestChatbotArabicMessageGetsArabicReply(t *testing.T) {
	bot := newTestChatbot()

	reply := bot.Reply("كيف أكتب موجهاً جيداً؟")
	assert.Equal(t, "prompting-help", reply.RuleID)
	assert.Equal(t, "ابدأ بوصف الهدف بوضوح ثم أضف القيود.", reply.Text)
}

func TestChatbotFallback(t *testing.T) {
	bot := newTestChatbot()

	reply := bot.Reply("unrelated message about gardening")
	assert.True(t, reply.Fallback)
	assert.Empty(t, reply.RuleID)
	// Arabic fallback language answers unmatched Latin text in Arabic.
	assert.Equal(t, fallbackReplyAr, reply.Text)

	en := NewChatbotService(testChatRules(), "en")
	reply = en.Reply("unrelated message about gardening")
	assert.True(t, reply.Fallback)
	assert.Equal(t, fallbackReplyEn, reply.Text)
}

func TestChatbotEmptyRuleTableFallsBack(t *testing.T) {
	bot := NewChatbotService(nil, "ar")

	reply := bot.Reply("prompt")
	assert.True(t, reply.Fallback)
}

func TestIsArabic(t *testing.T) {
	assert.True(t, isArabic("مرحبا بالعالم"))
	assert.False(t, isArabic("hello world"))
	assert.False(t, isArabic(""))
	// Mixed text follows the majority script.
	assert.True(t, isArabic("ما هو vibe؟ أريد أن أتعلم البرمجة"))
}
