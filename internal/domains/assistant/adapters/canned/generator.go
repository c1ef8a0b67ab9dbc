package canned

import (
	"context"

	"github.com/pethaven/pethaven-api/internal/domains/assistant/ports"
)

var _ ports.Generator = (*Generator)(nil)

// Generator answers every prompt with a fixed reply. Used in development when
// no API key is configured so the chat endpoint stays functional.
type Generator struct {
	reply string
}

func NewGenerator() *Generator {
	return &Generator{
		reply: "I'm running without an AI provider right now, so I can only offer general advice: keep fresh water available, feed a balanced diet, and see a vet for anything serious.",
	}
}

func (g *Generator) Generate(context.Context, string) (string, error) {
	return g.reply, nil
}
