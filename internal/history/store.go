package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chat-backend/internal/database"

	"gorm.io/gorm"
)

// SQLite only supports one writer at a time, so we need a lock
// whenever we write to the database
var dbMutex sync.Mutex

// StorageError is the single failure kind reported by the store. The
// underlying cause is always attached and reachable via errors.Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SessionSummary is one row of the session listing. Title is the first
// user message of the session, or nil for a session that has no user-role
// record (the reply-only edge case keeps the session listed, title null).
type SessionSummary struct {
	SessionID string  `json:"session_id"`
	Title     *string `json:"title"`
}

// Turn is one (role, content) entry of a session transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store is the append-only log of chat turns. It never updates or deletes
// records, and it does not enforce user/ai alternation within a session;
// interleaved writers produce interleaved transcripts.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Append inserts one record with a store-assigned id and timestamp and
// returns the id. Role must be 'user' or 'ai'; sessionID and content must
// be non-empty.
func (s *Store) Append(ctx context.Context, sessionID, role, content string) (uint, error) {
	if sessionID == "" {
		return 0, &StorageError{Op: "append", Err: fmt.Errorf("session id must not be empty")}
	}
	if content == "" {
		return 0, &StorageError{Op: "append", Err: fmt.Errorf("content must not be empty")}
	}
	if role != database.RoleUser && role != database.RoleAI {
		return 0, &StorageError{Op: "append", Err: fmt.Errorf("invalid role %q", role)}
	}

	record := database.ChatHistory{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	dbMutex.Lock()
	defer dbMutex.Unlock()
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, &StorageError{Op: "append", Err: err}
	}
	return record.ID, nil
}

// ListSessions returns every session with a derived title, most recently
// active first. Consecutive writes can share a second-resolution timestamp,
// so the id is used as a tie-break everywhere ordering matters.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	sessions := []SessionSummary{}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			session_id,
			(SELECT content FROM chat_histories AS h2
				WHERE h2.session_id = h1.session_id AND h2.role = ?
				ORDER BY h2.timestamp ASC, h2.id ASC LIMIT 1) AS title
		FROM chat_histories AS h1
		GROUP BY session_id
		ORDER BY MAX(timestamp) DESC, MAX(id) DESC`, database.RoleUser).
		Scan(&sessions).Error
	if err != nil {
		return nil, &StorageError{Op: "list sessions", Err: err}
	}
	return sessions, nil
}

// GetSession returns the full transcript of a session in insertion order.
// An unknown session id yields an empty slice, not an error.
func (s *Store) GetSession(ctx context.Context, sessionID string) ([]Turn, error) {
	var records []database.ChatHistory
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, &StorageError{Op: "get session", Err: err}
	}

	turns := make([]Turn, 0, len(records))
	for _, record := range records {
		turns = append(turns, Turn{Role: record.Role, Content: record.Content})
	}
	return turns, nil
}
