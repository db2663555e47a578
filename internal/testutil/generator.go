package testutil

import (
	"context"
	"sync"

	"sudarshan-portal/internal/ai"
)

// Generator replies with Reply (or Err) and records every prompt.
type Generator struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	prompts []ai.Prompt
}

func (g *Generator) GenerateText(_ context.Context, p ai.Prompt) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, p)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Reply, nil
}

func (g *Generator) Close() error {
	return nil
}

func (g *Generator) Prompts() []ai.Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]ai.Prompt(nil), g.prompts...)
}

// Last returns the most recent prompt. It panics when none was sent.
func (g *Generator) Last() ai.Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prompts[len(g.prompts)-1]
}
