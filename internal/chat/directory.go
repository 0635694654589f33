package chat

import (
	"context"

	"chat-backend/internal/history"
)

// Directory is the read-only projection over the history store: the session
// listing and single-session transcript replay. It delegates straight to the
// store, no caching or transformation.
type Directory struct {
	store *history.Store
}

func NewDirectory(store *history.Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) ListSessions(ctx context.Context) ([]history.SessionSummary, error) {
	return d.store.ListSessions(ctx)
}

func (d *Directory) GetTranscript(ctx context.Context, sessionID string) ([]history.Turn, error) {
	return d.store.GetSession(ctx, sessionID)
}
