package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chat-backend/internal/chat"
	"chat-backend/pkg/api"
)

type ChatService struct {
	service   *chat.Service
	directory *chat.Directory
}

func NewChatService(service *chat.Service, directory *chat.Directory) *ChatService {
	return &ChatService{service: service, directory: directory}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Post("/chat", RestHandler(s.Chat))
	r.Get("/sessions", RestHandler(s.GetSessions))
	r.Get("/session/{session_id}", RestHandler(s.GetTranscript))
}

func (s *ChatService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, err
	}

	reply, err := s.service.HandleChat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidRequest) {
			return nil, CodedError(http.StatusBadRequest, err)
		}
		return nil, err
	}

	return api.ChatResponse{Response: reply}, nil
}

func (s *ChatService) GetSessions(r *http.Request) (any, error) {
	sessions, err := s.directory.ListSessions(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make([]api.Session, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, api.Session{SessionID: session.SessionID, Title: session.Title})
	}
	return resp, nil
}

func (s *ChatService) GetTranscript(r *http.Request) (any, error) {
	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "missing {session_id} url parameter")
	}

	transcript, err := s.directory.GetTranscript(r.Context(), sessionID)
	if err != nil {
		return nil, err
	}

	resp := make([]api.TranscriptItem, 0, len(transcript))
	for _, turn := range transcript {
		resp = append(resp, api.TranscriptItem{Role: turn.Role, Content: turn.Content})
	}
	return resp, nil
}
