package generator

import "context"

// Responder maps one user message to one reply. Implementations never fail:
// a responder that cannot produce a real answer returns a human-readable
// fallback string instead.
type Responder interface {
	Generate(ctx context.Context, message string) string
}
