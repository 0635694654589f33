package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	greetingReply = "Bonjour ! Je suis AI INT. Quel est votre question ?"
	projectReply  = "AI INT est un prototype d'assistant full-stack développé avec Go et SQLite."
	fallbackReply = "Je ne suis qu'un petit modèle ! Pouvez-vous essayer une question différente ?"
)

// Rules is the static responder: a fixed rule table evaluated in priority
// order over the lower-cased, trimmed input, first match wins. It holds no
// state, so the same input at the same instant always yields the same reply.
type Rules struct {
	now func() time.Time
}

func NewRules() *Rules {
	return &Rules{now: time.Now}
}

func (r *Rules) Generate(ctx context.Context, message string) string {
	message = strings.ToLower(strings.TrimSpace(message))

	if strings.Contains(message, "bonjour") || strings.Contains(message, "salut") {
		return greetingReply
	}
	if strings.Contains(message, "heure") {
		return fmt.Sprintf("Il est actuellement %s.", r.now().Format("15:04:05"))
	}
	if strings.Contains(message, "projet") || strings.Contains(message, "int") || strings.Contains(message, "role") {
		return projectReply
	}
	return fallbackReply
}
