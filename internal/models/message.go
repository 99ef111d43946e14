package models

// Conversation roles understood by the dialogue engine.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry in a conversation. The conversation is
// caller-owned state: it is threaded through HandleQuery explicitly and
// never stored by this module.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
