package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/assistant/ports"
	usersports "github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/platform/ratelimit"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

var _ ports.Service = (*Service)(nil)

const (
	// limiterKey throttles the provider globally, not per user, mirroring the
	// provider-side quota the limit protects.
	limiterKey       = "assistant:global"
	lookupRetryDelay = 500 * time.Millisecond

	rateLimitedReply = "I'm getting a lot of requests right now! Please wait a moment before asking again."
)

// Service proxies chat messages to the AI generator. A freshly registered
// user may not be visible yet when their first message arrives, so the lookup
// retries once after a short delay.
type Service struct {
	users     ports.UserDirectory
	generator ports.Generator
	limiter   *ratelimit.Limiter
	now       func() time.Time
	sleep     func(time.Duration)
}

type Option func(*Service)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSleep overrides the retry delay implementation for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

func NewService(users ports.UserDirectory, generator ports.Generator, limiter *ratelimit.Limiter, opts ...Option) *Service {
	s := &Service{
		users:     users,
		generator: generator,
		limiter:   limiter,
		now:       time.Now,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat resolves the user, checks the global window, and asks the generator.
func (s *Service) Chat(ctx context.Context, input ports.ChatInput) (*ports.ChatResult, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperr.InvalidInput("message is required")
	}

	if _, err := s.resolveUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = fmt.Sprintf("chat_%d_%d", input.UserID, s.now().UnixMilli())
	}

	allowed, err := s.limiter.Allow(ctx, limiterKey)
	if err != nil {
		return nil, apperr.External(err, "the assistant is unavailable right now, please try again")
	}
	if !allowed {
		return &ports.ChatResult{
			Reply:       rateLimitedReply,
			SessionID:   sessionID,
			RateLimited: true,
		}, nil
	}

	reply, err := s.generator.Generate(ctx, buildPetCarePrompt(message))
	if err != nil {
		return nil, apperr.External(err, "the assistant is having trouble right now, please try again")
	}

	return &ports.ChatResult{Reply: reply, SessionID: sessionID}, nil
}

// resolveUser looks the account up, retrying once after a short delay for
// records created moments ago that a replica has not caught up with yet.
func (s *Service) resolveUser(ctx context.Context, userID int64) (*usersports.UserProjection, error) {
	found, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, usersports.ErrNotFound) {
		return nil, err
	}
	s.sleep(lookupRetryDelay)
	found, err = s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usersports.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return found, nil
}

func buildPetCarePrompt(message string) string {
	return `You are a friendly AI Pet Care Assistant. Help with:
- Pet health and wellness
- Training and behavior
- Nutrition advice
- General pet care

Be helpful, friendly, and concise (200-300 words max).
For serious health issues, recommend consulting a vet.

User question: ` + message
}
