package generator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	ollamaErrorReply       = "Désolé, l'API Ollama locale a rencontré une erreur."
	ollamaUnreachableReply = "Erreur : Le service Ollama n'est pas démarré ou n'est pas accessible."
)

// Ollama is the remote responder, backed by a local Ollama server. Failures
// never propagate to the caller: a connection error, non-success status or
// malformed payload turns into a fixed fallback reply.
type Ollama struct {
	client *resty.Client
	model  string
}

func NewOllama(baseURL, model string) *Ollama {
	return &Ollama{
		client: resty.New().SetBaseURL(baseURL),
		model:  model,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (o *Ollama) Generate(ctx context.Context, message string) string {
	res, err := o.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(generateRequest{Model: o.model, Prompt: message, Stream: false}).
		Post("/api/generate")

	if err != nil {
		slog.Error("unable to reach ollama", "error", err)
		return ollamaUnreachableReply
	}

	if !res.IsSuccess() {
		slog.Error("ollama returned error", "status_code", res.StatusCode(), "body", res.String())
		return ollamaErrorReply
	}

	var out generateResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		slog.Error("error parsing response from ollama", "error", err)
		return ollamaErrorReply
	}

	return strings.TrimSpace(out.Response)
}
