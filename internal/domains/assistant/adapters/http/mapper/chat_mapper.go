package mapper

import (
	"github.com/pethaven/pethaven-api/internal/domains/assistant/ports"
)

// Chat captures one inbound chat message.
type Chat struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatReply is the HTTP representation of the assistant's answer.
type ChatReply struct {
	Reply       string `json:"reply"`
	SessionID   string `json:"sessionId"`
	RateLimited bool   `json:"rateLimited,omitempty"`
}

// ToChatInput maps the transport payload for the authenticated user.
func (c Chat) ToChatInput(userID int64) ports.ChatInput {
	return ports.ChatInput{
		UserID:    userID,
		Message:   c.Message,
		SessionID: c.SessionID,
	}
}

// FromResult maps a chat result into the transport representation.
func FromResult(r *ports.ChatResult) *ChatReply {
	if r == nil {
		return nil
	}
	return &ChatReply{
		Reply:       r.Reply,
		SessionID:   r.SessionID,
		RateLimited: r.RateLimited,
	}
}
