package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"chat-backend/internal/chat"
	"chat-backend/internal/database"
	"chat-backend/internal/history"
	pkgapi "chat-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type cannedResponder struct {
	reply string
}

func (c cannedResponder) Generate(ctx context.Context, message string) string {
	return c.reply
}

func newTestRouter(t *testing.T) chi.Router {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.GetMigrator(db).Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store := history.NewStore(db)
	chatService := NewChatService(
		chat.NewService(store, cannedResponder{reply: "une réponse"}),
		chat.NewDirectory(store),
	)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		chatService.AddRoutes(r)
	})
	return router
}

func postChat(t *testing.T, router chi.Router, payload pkgapi.ChatRequest) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postChat(t, router, pkgapi.ChatRequest{Message: "bonjour", SessionID: "session-1"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var chatResp pkgapi.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&chatResp); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	assert.Equal(t, "une réponse", chatResp.Response)

	// Both turns must be replayable afterwards.
	req := httptest.NewRequest(http.MethodGet, "/api/session/session-1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var transcript []pkgapi.TranscriptItem
	if err := json.NewDecoder(rec.Body).Decode(&transcript); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	require.Len(t, transcript, 2)
	assert.Equal(t, pkgapi.TranscriptItem{Role: "user", Content: "bonjour"}, transcript[0])
	assert.Equal(t, pkgapi.TranscriptItem{Role: "ai", Content: "une réponse"}, transcript[1])
}

func TestChatEndpointMissingFields(t *testing.T) {
	router := newTestRouter(t)

	for _, payload := range []pkgapi.ChatRequest{
		{Message: "", SessionID: "session-1"},
		{Message: "bonjour", SessionID: ""},
		{},
	} {
		rec := postChat(t, router, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp pkgapi.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		assert.NotEmpty(t, errResp.Error)
	}
}

func TestChatEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postChat(t, router, pkgapi.ChatRequest{Message: "premier message", SessionID: "session-1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = postChat(t, router, pkgapi.ChatRequest{Message: "autre sujet", SessionID: "session-2"})
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var sessions []pkgapi.Session
	if err := json.NewDecoder(rec.Body).Decode(&sessions); err != nil {
		t.Fatalf("decode sessions: %v", err)
	}
	require.Len(t, sessions, 2)

	// Most recently active first.
	assert.Equal(t, "session-2", sessions[0].SessionID)
	require.NotNil(t, sessions[0].Title)
	assert.Equal(t, "autre sujet", *sessions[0].Title)
	assert.Equal(t, "session-1", sessions[1].SessionID)
	require.NotNil(t, sessions[1].Title)
	assert.Equal(t, "premier message", *sessions[1].Title)
}

func TestSessionsEndpointEmptyStore(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTranscriptEndpointUnknownSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session/never-seen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
