package gateway

import "context"

// Client is the boundary to the generative text backend. One call, one
// completion: prompt in, raw text out. There is no retry and no streaming.
type Client interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// ConnectionError means the backend could not be reached or did not speak
// the expected protocol.
type ConnectionError struct {
	Reason string
}

func (e ConnectionError) Error() string {
	return e.Reason
}
