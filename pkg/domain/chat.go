package domain

import "github.com/sashabaranov/go-openai"

// Roles accepted by the conversation backend. They match the public chat API values.
const (
	MessageRoleUser      = openai.ChatMessageRoleUser
	MessageRoleAssistant = openai.ChatMessageRoleAssistant
	MessageRoleSystem    = openai.ChatMessageRoleSystem
)

const ContentTypeText = "text"

// IsValidRole reports whether the backend accepts role on a message.
func IsValidRole(role string) bool {
	switch role {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// Message is a single conversation turn.
type Message struct {
	ID      string  `json:"id" validate:"required"`
	Role    string  `json:"role" validate:"role"`
	Content Content `json:"content"`
}

type Content struct {
	ContentType string   `json:"content_type" validate:"required"`
	Parts       []string `json:"parts" validate:"min=1"`
}
