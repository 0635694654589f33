package chat

import (
	"context"
	"errors"
	"log/slog"

	"chat-backend/internal/database"
	"chat-backend/internal/generator"
	"chat-backend/internal/history"
)

// ErrInvalidRequest is returned when a chat turn is missing its session id
// or message. It is the only user-facing validation error in the system.
var ErrInvalidRequest = errors.New("message and session id are required")

// Service orchestrates one chat turn: generate a reply, persist both the
// user and the ai record, return the reply.
type Service struct {
	store     *history.Store
	responder generator.Responder
}

func NewService(store *history.Store, responder generator.Responder) *Service {
	return &Service{store: store, responder: responder}
}

// HandleChat runs one turn for a session. Persistence failures during the
// turn are logged but do not withhold the reply that was already generated;
// the transcript may end up missing a turn, the caller still gets an answer.
func (s *Service) HandleChat(ctx context.Context, sessionID, message string) (string, error) {
	if sessionID == "" || message == "" {
		return "", ErrInvalidRequest
	}

	reply := s.responder.Generate(ctx, message)

	if _, err := s.store.Append(ctx, sessionID, database.RoleUser, message); err != nil {
		slog.Error("error saving user message", "session_id", sessionID, "error", err)
	}
	if _, err := s.store.Append(ctx, sessionID, database.RoleAI, reply); err != nil {
		slog.Error("error saving ai message", "session_id", sessionID, "error", err)
	}

	return reply, nil
}
