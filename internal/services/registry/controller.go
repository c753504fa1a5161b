package registry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kaganatalay/ciz.im/internal/dependencies/clock"
	"github.com/kaganatalay/ciz.im/internal/dependencies/random"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/storage"
)

const (
	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 4
	// SessionCodeAlphabet is the characters used in session codes (avoid confusing chars)
	SessionCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// maxCodeAttempts bounds collision retries. Exhausting it means the
	// code space is effectively full, which is not an expected condition.
	maxCodeAttempts = 100
)

// ErrCodeSpaceExhausted is returned when no free session code can be found
var ErrCodeSpaceExhausted = errors.New("could not generate a free session code")

// Controller creates, looks up, and destroys game sessions keyed by code
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new session registry
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateSession generates a fresh unique code, stores an empty session
// under it, and returns the session
func (c *Controller) CreateSession(ctx context.Context) (*model.GameSession, error) {
	var code model.SessionCode
	for attempt := 0; ; attempt++ {
		if attempt >= maxCodeAttempts {
			return nil, ErrCodeSpaceExhausted
		}
		code = model.SessionCode(c.random.String(SessionCodeLength, SessionCodeAlphabet))
		exists, err := c.storage.SessionExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := model.NewGameSession(code, c.clock.Now())
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created", slog.String("code", string(session.Code)))
	return session, nil
}

// GetSession retrieves a session by code. Lookup is case-insensitive and
// never creates a session on a miss.
func (c *Controller) GetSession(ctx context.Context, code model.SessionCode) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, code)
}

// DeleteSession removes the session if present; deleting an absent code is
// not an error. Callers invoke this synchronously when the last player
// leaves; the registry runs no background cleanup.
func (c *Controller) DeleteSession(ctx context.Context, code model.SessionCode) error {
	if err := c.storage.DeleteSession(ctx, code); err != nil {
		return err
	}
	c.logger.Info("session deleted", slog.String("code", string(code.Normalized())))
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context) (*model.GameSession, error)
	GetSession(ctx context.Context, code model.SessionCode) (*model.GameSession, error)
	DeleteSession(ctx context.Context, code model.SessionCode) error
}

var _ ControllerInterface = (*Controller)(nil)
