package model

import (
	"sort"
	"strings"
	"time"
)

// SessionCode is the short identifier clients use to locate a session.
// Lookups are case-insensitive; the canonical form is uppercase.
type SessionCode string

// Normalized returns the canonical uppercase form of the code
func (c SessionCode) Normalized() SessionCode {
	return SessionCode(strings.ToUpper(string(c)))
}

// GameSession is one room's authoritative state: roster, round state
// machine, and guess bookkeeping
type GameSession struct {
	Code    SessionCode
	Players map[ConnectionID]*Player

	RoundActive   bool
	CurrentDrawer ConnectionID // empty when no round is active
	CurrentWord   string       // empty when no round is active

	// Connection ids of non-drawer players credited this round
	GuessedPlayers map[ConnectionID]bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGameSession returns an empty session with the given code
func NewGameSession(code SessionCode, now time.Time) *GameSession {
	return &GameSession{
		Code:           code.Normalized(),
		Players:        make(map[ConnectionID]*Player),
		GuessedPlayers: make(map[ConnectionID]bool),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// GetPlayer returns the player with the given connection id, or nil
func (s *GameSession) GetPlayer(id ConnectionID) *Player {
	return s.Players[id]
}

// GetAdmin returns the session admin, or nil if the room is admin-less
func (s *GameSession) GetAdmin() *Player {
	for _, p := range s.Players {
		if p.IsAdmin {
			return p
		}
	}
	return nil
}

// HasUsername reports whether a player already holds the given username.
// Comparison is case-sensitive; callers trim before calling.
func (s *GameSession) HasUsername(username string) bool {
	for _, p := range s.Players {
		if p.Username == username {
			return true
		}
	}
	return false
}

// Drawer returns the current drawer, or nil when no round is active
func (s *GameSession) Drawer() *Player {
	if s.CurrentDrawer == "" {
		return nil
	}
	return s.Players[s.CurrentDrawer]
}

// RosterSize returns the number of players in the session
func (s *GameSession) RosterSize() int {
	return len(s.Players)
}

// Roster returns player views ordered by join time for broadcast
func (s *GameSession) Roster() []PlayerView {
	players := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].Username < players[j].Username
	})

	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = p.PublicView()
	}
	return views
}

// Clone returns a deep copy of the session. Storage backends hand out
// copies so a reader never shares map state with a concurrent mutation.
func (s *GameSession) Clone() *GameSession {
	clone := *s
	clone.Players = make(map[ConnectionID]*Player, len(s.Players))
	for id, p := range s.Players {
		player := *p
		clone.Players[id] = &player
	}
	clone.GuessedPlayers = make(map[ConnectionID]bool, len(s.GuessedPlayers))
	for id, guessed := range s.GuessedPlayers {
		clone.GuessedPlayers[id] = guessed
	}
	return &clone
}

// RoundInfo describes a freshly started round
type RoundInfo struct {
	DrawerID       ConnectionID
	DrawerUsername string
	Word           string
}

// RemovalResult reports the side effects of removing a player
type RemovalResult struct {
	Removed        bool
	Username       string
	WasAdmin       bool
	RoundAbandoned bool
	RosterEmpty    bool

	// Set when the departure left every remaining non-drawer credited,
	// ending the round as if the last guess had just landed
	RoundCompleted bool
	Word           string
}
