package model

// ChatRule is one keyword rule of the assistant. Keywords mix Arabic
// and English; the rule with the most keyword hits wins.
type ChatRule struct {
	ID        string   `json:"id"`
	Keywords  []string `json:"keywords"`
	ReplyAr   string   `json:"replyAr"`
	ReplyEn   string   `json:"replyEn"`
	LinkSlugs []string `json:"linkSlugs,omitempty"`
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Text      string   `json:"text"`
	RuleID    string   `json:"ruleId,omitempty"`
	LinkSlugs []string `json:"linkSlugs,omitempty"`
	Fallback  bool     `json:"fallback"`
}
