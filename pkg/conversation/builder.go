package conversation

import (
	"github.com/google/uuid"

	"github.com/dskvich/chatgpt-backend-probe/pkg/domain"
)

// NewMessage builds a text message with a fresh id.
func NewMessage(role string, parts ...string) domain.Message {
	return domain.Message{
		ID:   uuid.NewString(),
		Role: role,
		Content: domain.Content{
			ContentType: domain.ContentTypeText,
			Parts:       append([]string(nil), parts...),
		},
	}
}

func NewUserMessage(text string) domain.Message {
	return NewMessage(domain.MessageRoleUser, text)
}

type Option func(*domain.ConversationRequest)

func WithAction(action string) Option {
	return func(r *domain.ConversationRequest) { r.Action = action }
}

func WithModel(model string) Option {
	return func(r *domain.ConversationRequest) {
		if model != "" {
			r.Model = model
		}
	}
}

// WithConversationID continues an existing conversation. Empty means a new one.
func WithConversationID(id string) Option {
	return func(r *domain.ConversationRequest) { r.ConversationID = id }
}

func WithParentMessageID(id string) Option {
	return func(r *domain.ConversationRequest) {
		if id != "" {
			r.ParentMessageID = id
		}
	}
}

// NewRequest assembles a request for the given turns. A first turn still needs a
// parent id, so one is generated unless WithParentMessageID supplies it.
func NewRequest(messages []domain.Message, opts ...Option) domain.ConversationRequest {
	req := domain.ConversationRequest{
		Action:          domain.ActionNext,
		Messages:        append([]domain.Message(nil), messages...),
		ParentMessageID: uuid.NewString(),
		Model:           domain.DefaultModel,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}
