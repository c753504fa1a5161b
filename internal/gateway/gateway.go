package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/kaganatalay/ciz.im/internal/dependencies/clock"
	"github.com/kaganatalay/ciz.im/internal/dependencies/random"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/services/game"
	"github.com/kaganatalay/ciz.im/internal/services/registry"
)

const (
	connIDLength   = 32
	connIDAlphabet = "0123456789abcdef"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway owns the websocket surface: it upgrades connections, routes
// inbound messages to the controllers, and fans results back out through
// per-session hubs.
type Gateway struct {
	registry registry.ControllerInterface
	game     game.ControllerInterface
	hubs     *Manager
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// New creates a Gateway
func New(
	registry registry.ControllerInterface,
	game game.ControllerInterface,
	hubs *Manager,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		registry: registry,
		game:     game,
		hubs:     hubs,
		clock:    clock,
		random:   random,
		logger:   logger.With(slog.String("component", "gateway")),
	}
}

// ServeWS upgrades the request and runs the connection until it closes.
// The session must already exist; connecting to an unknown code fails
// before the upgrade.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request, code model.SessionCode) error {
	code = code.Normalized()

	if _, err := g.registry.GetSession(r.Context(), code); err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return nil
	}

	connID := model.ConnectionID(g.random.String(connIDLength, connIDAlphabet))
	hub := g.hubs.GetOrCreateHub(code)
	client := NewClient(hub, conn, connID, g.clock.Now(), g.logger)

	hub.Register(client)
	go client.writePump()
	client.readPump(g)
	return nil
}

// dispatch routes one inbound message. It returns true when the connection
// should be torn down.
func (g *Gateway) dispatch(c *Client, msg inboundMessage) bool {
	ctx := context.Background()

	switch msg.Type {
	case msgJoin:
		g.handleJoin(ctx, c, msg)
	case msgStartRound:
		g.handleStartRound(ctx, c)
	case msgGuess:
		g.handleGuess(ctx, c, msg)
	case msgDraw:
		g.handleDraw(ctx, c, msg)
	case msgLeave:
		return true
	default:
		c.hub.SendTo(c.id, model.Event{
			Type: model.EventError,
			Data: model.ErrorPayload{Message: "unknown message type"},
		})
	}
	return false
}

func (g *Gateway) handleJoin(ctx context.Context, c *Client, msg inboundMessage) {
	player, err := g.game.AddPlayer(ctx, c.hub.code, c.id, msg.Username, msg.AsAdmin)
	if err != nil {
		c.hub.SendTo(c.id, model.Event{
			Type: model.EventJoinError,
			Data: model.ErrorPayload{Message: joinErrorMessage(err)},
		})
		return
	}

	c.hub.SendTo(c.id, model.Event{
		Type: model.EventJoined,
		Data: model.JoinedPayload{
			Code:     c.hub.code,
			Username: player.Username,
			IsAdmin:  player.IsAdmin,
		},
	})
	g.broadcastRoster(ctx, c.hub)
}

func (g *Gateway) handleStartRound(ctx context.Context, c *Client) {
	info, err := g.game.StartRound(ctx, c.hub.code, c.id)
	if err != nil {
		c.hub.SendTo(c.id, model.Event{
			Type: model.EventError,
			Data: model.ErrorPayload{Message: startRoundErrorMessage(err)},
		})
		return
	}

	c.hub.Broadcast(model.Event{
		Type: model.EventRoundStarted,
		Data: model.RoundStartedPayload{Drawer: info.DrawerUsername},
	})
	c.hub.SendTo(info.DrawerID, model.Event{
		Type: model.EventYourWord,
		Data: model.YourWordPayload{Word: info.Word},
	})
}

func (g *Gateway) handleGuess(ctx context.Context, c *Client, msg inboundMessage) {
	outcome, err := g.game.ProcessGuess(ctx, c.hub.code, c.id, msg.Guess)
	if err != nil {
		g.logger.Error("guess processing failed",
			slog.String("session", string(c.hub.code)),
			slog.String("error", err.Error()))
		return
	}

	switch outcome.Kind {
	case model.GuessChat:
		c.hub.Broadcast(model.Event{
			Type: model.EventChat,
			Data: model.ChatPayload{From: outcome.Username, Message: outcome.Message},
		})

	case model.GuessCorrect:
		c.hub.Broadcast(model.Event{
			Type: model.EventCorrectGuess,
			Data: model.CorrectGuessPayload{Username: outcome.Username, Score: outcome.NewScore},
		})
		if outcome.RoundOver {
			c.hub.Broadcast(model.Event{
				Type: model.EventRoundOver,
				Data: model.RoundOverPayload{Word: outcome.Word},
			})
		}

	case model.GuessInert, model.GuessAlreadyGuessed:
		// Nothing to relay
	}
}

// handleDraw relays canvas data to everyone else in the session. Only the
// current drawer may draw; anything else is dropped.
func (g *Gateway) handleDraw(ctx context.Context, c *Client, msg inboundMessage) {
	session, err := g.registry.GetSession(ctx, c.hub.code)
	if err != nil {
		return
	}
	if !session.RoundActive || session.CurrentDrawer != c.id {
		return
	}

	c.hub.BroadcastExcept(c.id, model.Event{
		Type: model.EventDraw,
		Data: model.DrawPayload(msg.Data),
	})
}

// handleDisconnect removes the player from the session and tears down the
// session itself once the roster is empty. Called exactly once per
// connection from readPump; a connection that never joined is a no-op.
func (g *Gateway) handleDisconnect(c *Client) {
	ctx := context.Background()

	result, err := g.game.RemovePlayer(ctx, c.hub.code, c.id)
	if err != nil {
		if !errors.Is(err, model.ErrSessionNotFound) {
			g.logger.Error("player removal failed",
				slog.String("session", string(c.hub.code)),
				slog.String("error", err.Error()))
		}
		return
	}
	if !result.Removed {
		return
	}

	if result.RosterEmpty {
		if err := g.registry.DeleteSession(ctx, c.hub.code); err != nil {
			g.logger.Error("session cleanup failed",
				slog.String("session", string(c.hub.code)),
				slog.String("error", err.Error()))
		}
		g.hubs.RemoveHub(c.hub.code)
		return
	}

	c.hub.BroadcastExcept(c.id, model.Event{
		Type: model.EventPlayerLeft,
		Data: model.PlayerLeftPayload{Username: result.Username},
	})
	if result.RoundAbandoned {
		c.hub.BroadcastExcept(c.id, model.Event{Type: model.EventRoundAbandoned})
	}
	if result.RoundCompleted {
		c.hub.BroadcastExcept(c.id, model.Event{
			Type: model.EventRoundOver,
			Data: model.RoundOverPayload{Word: result.Word},
		})
	}
	g.broadcastRoster(ctx, c.hub)
}

func (g *Gateway) broadcastRoster(ctx context.Context, hub *Hub) {
	roster, err := g.game.Roster(ctx, hub.code)
	if err != nil {
		g.logger.Error("roster fetch failed",
			slog.String("session", string(hub.code)),
			slog.String("error", err.Error()))
		return
	}
	hub.Broadcast(model.Event{
		Type: model.EventRoster,
		Data: model.RosterPayload{Players: roster},
	})
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyUsername):
		return "username must not be empty"
	case errors.Is(err, model.ErrUsernameTaken):
		return "username is already taken"
	case errors.Is(err, model.ErrAlreadyJoined):
		return "connection already joined this session"
	case errors.Is(err, model.ErrSessionNotFound):
		return "session not found"
	default:
		return "could not join session"
	}
}

func startRoundErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNotInSession):
		return "join the session before starting a round"
	case errors.Is(err, model.ErrNotAdmin):
		return "only the admin can start a round"
	case errors.Is(err, model.ErrRoundInProgress):
		return "a round is already in progress"
	case errors.Is(err, model.ErrInsufficientPlayers):
		return "at least two players are needed to start"
	default:
		return "could not start round"
	}
}
