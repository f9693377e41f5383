package llm

import "context"

// Provider is a generative-text backend.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}
