package model

import "time"

// ConnectionID uniquely identifies a client connection. It is opaque and
// stable for the lifetime of the underlying socket.
type ConnectionID string

// Player represents a game participant
type Player struct {
	ConnectionID ConnectionID
	Username     string
	Score        int
	IsAdmin      bool
	JoinedAt     time.Time
}

// PlayerView is the broadcast-safe representation of a player
type PlayerView struct {
	ID       string `json:"pid"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	IsAdmin  bool   `json:"is_admin"`
}

// PublicView returns the view of the player sent to clients
func (p *Player) PublicView() PlayerView {
	return PlayerView{
		ID:       string(p.ConnectionID),
		Username: p.Username,
		Score:    p.Score,
		IsAdmin:  p.IsAdmin,
	}
}
