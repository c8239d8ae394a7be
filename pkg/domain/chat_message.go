package domain

// Actions recognized by the conversation endpoint.
const (
	ActionNext     = "next"
	ActionVariant  = "variant"
	ActionContinue = "continue"
)

// ConversationRequest is the payload sent to the conversation endpoint.
type ConversationRequest struct {
	Action          string    `json:"action" validate:"oneof=next variant continue"`
	Messages        []Message `json:"messages" validate:"dive"`
	ConversationID  string    `json:"conversation_id,omitempty"`
	ParentMessageID string    `json:"parent_message_id" validate:"required"`
	Model           string    `json:"model" validate:"required"`
}
