package api

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type Session struct {
	SessionID string  `json:"session_id"`
	Title     *string `json:"title"` // first user message, null if the session has none
}

type TranscriptItem struct {
	Role    string `json:"role"` // "user" or "ai"
	Content string `json:"content"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
