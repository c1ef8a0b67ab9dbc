package ports

import (
	"context"

	usersports "github.com/pethaven/pethaven-api/internal/domains/users/ports"
)

// UserDirectory is the narrow slice of the users context the assistant needs
// to resolve the chatting account.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*usersports.UserProjection, error)
}

// ChatInput carries one user message. SessionID groups a conversation and is
// generated when absent.
type ChatInput struct {
	UserID    int64
	Message   string
	SessionID string
}

// ChatResult is the assistant's answer. RateLimited marks a throttled request
// whose Reply is a wait-and-retry message rather than a generated answer.
type ChatResult struct {
	Reply       string
	SessionID   string
	RateLimited bool
}

type Service interface {
	Chat(ctx context.Context, input ChatInput) (*ChatResult, error)
}
