package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kaganatalay/ciz.im/internal/dependencies/clock"
	"github.com/kaganatalay/ciz.im/internal/dependencies/random"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/services/words"
	"github.com/kaganatalay/ciz.im/internal/storage"
)

// CorrectGuessAward is the flat score awarded per correct guess
const CorrectGuessAward = 10

// Controller manages roster membership, the round state machine, and
// guess arbitration for game sessions
type Controller struct {
	storage storage.Storage
	words   *words.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *sessionLocks
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	words *words.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		words:   words,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   newSessionLocks(),
	}
}

// AddPlayer joins a connection to a session under the given username.
// The first player into an empty roster becomes admin. A later joiner
// asking for admin is silently demoted while an admin already exists.
func (c *Controller) AddPlayer(ctx context.Context, code model.SessionCode, connID model.ConnectionID, username string, asAdmin bool) (*model.Player, error) {
	lock := c.locks.get(code)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, model.ErrEmptyUsername
	}
	if session.GetPlayer(connID) != nil {
		return nil, model.ErrAlreadyJoined
	}
	if session.HasUsername(trimmed) {
		return nil, model.ErrUsernameTaken
	}

	isAdmin := session.RosterSize() == 0
	if !isAdmin && asAdmin && session.GetAdmin() == nil {
		// An admin-less room accepts a volunteer
		isAdmin = true
	}

	player := &model.Player{
		ConnectionID: connID,
		Username:     trimmed,
		Score:        0,
		IsAdmin:      isAdmin,
		JoinedAt:     c.clock.Now(),
	}

	session.Players[connID] = player
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("code", string(session.Code)),
		slog.String("username", player.Username),
		slog.Bool("is_admin", player.IsAdmin),
		slog.Int("roster_size", session.RosterSize()),
	)

	return player, nil
}

// RemovePlayer removes a connection from a session. Removing an absent
// connection is a no-op. If the drawer leaves, the active round is
// abandoned; if the last not-yet-credited guesser leaves, the round
// completes. The result reports whether the roster is now empty so the
// caller can delete the session; the session never deletes itself.
// No admin succession happens when the sole admin leaves.
func (c *Controller) RemovePlayer(ctx context.Context, code model.SessionCode, connID model.ConnectionID) (model.RemovalResult, error) {
	lock := c.locks.get(code)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return model.RemovalResult{}, err
	}

	player := session.GetPlayer(connID)
	if player == nil {
		return model.RemovalResult{}, nil
	}

	result := model.RemovalResult{
		Removed:  true,
		Username: player.Username,
		WasAdmin: player.IsAdmin,
	}

	delete(session.Players, connID)
	delete(session.GuessedPlayers, connID)

	if session.CurrentDrawer == connID {
		if session.RoundActive {
			result.RoundAbandoned = true
		}
		session.RoundActive = false
		session.CurrentDrawer = ""
		session.CurrentWord = ""
		session.GuessedPlayers = make(map[model.ConnectionID]bool)
	} else if session.RoundActive && len(session.GuessedPlayers) >= session.RosterSize()-1 {
		// The departure satisfied coverage for the remaining roster:
		// everyone still present except the drawer is already credited.
		// Without this check the round could never end.
		result.RoundCompleted = true
		result.Word = session.CurrentWord
		session.RoundActive = false
	}

	result.RosterEmpty = session.RosterSize() == 0
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return model.RemovalResult{}, err
	}

	c.logger.Info("player left",
		slog.String("code", string(session.Code)),
		slog.String("username", result.Username),
		slog.Bool("round_abandoned", result.RoundAbandoned),
		slog.Int("roster_size", session.RosterSize()),
	)

	return result, nil
}

// Roster returns a snapshot of player views for broadcast
func (c *Controller) Roster(ctx context.Context, code model.SessionCode) ([]model.PlayerView, error) {
	lock := c.locks.get(code)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}
	return session.Roster(), nil
}

// StartRound begins a new round: the requesting player must be the session
// admin, the roster must hold at least two players, and no round may be in
// progress. The drawer is chosen uniformly from the roster and the word
// uniformly from the word bank.
func (c *Controller) StartRound(ctx context.Context, code model.SessionCode, requestedBy model.ConnectionID) (model.RoundInfo, error) {
	lock := c.locks.get(code)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return model.RoundInfo{}, err
	}

	requester := session.GetPlayer(requestedBy)
	if requester == nil {
		return model.RoundInfo{}, model.ErrNotInSession
	}
	if !requester.IsAdmin {
		return model.RoundInfo{}, model.ErrNotAdmin
	}
	if session.RoundActive {
		return model.RoundInfo{}, model.ErrRoundInProgress
	}
	if session.RosterSize() < 2 {
		return model.RoundInfo{}, model.ErrInsufficientPlayers
	}

	word, err := c.words.PickRandom()
	if err != nil {
		return model.RoundInfo{}, err
	}

	drawer := c.pickDrawer(session)

	session.RoundActive = true
	session.CurrentDrawer = drawer.ConnectionID
	session.CurrentWord = word
	session.GuessedPlayers = make(map[model.ConnectionID]bool)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return model.RoundInfo{}, err
	}

	c.logger.Info("round started",
		slog.String("code", string(session.Code)),
		slog.String("drawer", drawer.Username),
	)

	return model.RoundInfo{
		DrawerID:       drawer.ConnectionID,
		DrawerUsername: drawer.Username,
		Word:           word,
	}, nil
}

// pickDrawer chooses a player uniformly at random. Candidates are taken
// in roster order so the random index is deterministic under test.
func (c *Controller) pickDrawer(session *model.GameSession) *model.Player {
	views := session.Roster()
	idx := c.random.Intn(len(views))
	return session.GetPlayer(model.ConnectionID(views[idx].ID))
}

// ProcessGuess evaluates a guess submission against the active round.
// Matching is exact case-insensitive equality after trimming; the fold is
// locale-naive. A round ends once every non-drawer has guessed correctly.
func (c *Controller) ProcessGuess(ctx context.Context, code model.SessionCode, connID model.ConnectionID, text string) (model.GuessOutcome, error) {
	lock := c.locks.get(code)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return model.GuessOutcome{}, err
	}

	inert := model.GuessOutcome{Kind: model.GuessInert, PlayerID: connID}

	if !session.RoundActive {
		return inert, nil
	}
	if session.CurrentDrawer == connID {
		// The drawer cannot guess their own word
		return inert, nil
	}

	player := session.GetPlayer(connID)
	if player == nil {
		return inert, nil
	}

	guess := strings.ToLower(strings.TrimSpace(text))
	target := strings.ToLower(strings.TrimSpace(session.CurrentWord))

	if guess != target {
		return model.GuessOutcome{
			Kind:     model.GuessChat,
			PlayerID: connID,
			Username: player.Username,
			Message:  text,
		}, nil
	}

	if session.GuessedPlayers[connID] {
		return model.GuessOutcome{
			Kind:     model.GuessAlreadyGuessed,
			PlayerID: connID,
			Username: player.Username,
		}, nil
	}

	session.GuessedPlayers[connID] = true
	player.Score += CorrectGuessAward

	roundOver := len(session.GuessedPlayers) >= session.RosterSize()-1
	if roundOver {
		// The word and drawer stay set for the caller's announcement;
		// the next StartRound replaces them
		session.RoundActive = false
	}
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return model.GuessOutcome{}, err
	}

	c.logger.Info("correct guess",
		slog.String("code", string(session.Code)),
		slog.String("username", player.Username),
		slog.Int("score", player.Score),
		slog.Bool("round_over", roundOver),
	)

	return model.GuessOutcome{
		Kind:      model.GuessCorrect,
		PlayerID:  connID,
		Username:  player.Username,
		NewScore:  player.Score,
		RoundOver: roundOver,
		Word:      session.CurrentWord,
	}, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	AddPlayer(ctx context.Context, code model.SessionCode, connID model.ConnectionID, username string, asAdmin bool) (*model.Player, error)
	RemovePlayer(ctx context.Context, code model.SessionCode, connID model.ConnectionID) (model.RemovalResult, error)
	Roster(ctx context.Context, code model.SessionCode) ([]model.PlayerView, error)
	StartRound(ctx context.Context, code model.SessionCode, requestedBy model.ConnectionID) (model.RoundInfo, error)
	ProcessGuess(ctx context.Context, code model.SessionCode, connID model.ConnectionID, text string) (model.GuessOutcome, error)
}

var _ ControllerInterface = (*Controller)(nil)
