package storage

import (
	"context"

	"github.com/kaganatalay/ciz.im/internal/model"
)

// Storage defines the interface for session and word bank state.
// Session codes are normalized to uppercase by implementations, so lookups
// are case-insensitive regardless of backend.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, code model.SessionCode) (*model.GameSession, error)
	DeleteSession(ctx context.Context, code model.SessionCode) error
	SessionExists(ctx context.Context, code model.SessionCode) (bool, error)

	// Word bank operations
	GetWords(ctx context.Context) ([]string, error)
	SaveWords(ctx context.Context, words []string) error
}
