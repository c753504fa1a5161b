package model

import "encoding/json"

// EventType identifies an outbound event broadcast through the gateway
type EventType string

const (
	// Sent to the joining client only
	EventJoined    EventType = "joined"
	EventJoinError EventType = "join_error"

	// Roster events
	EventRoster     EventType = "roster"
	EventPlayerLeft EventType = "player_left"

	// Round events
	EventRoundStarted   EventType = "round_started"
	EventYourWord       EventType = "your_word" // drawer only
	EventChat           EventType = "chat"
	EventCorrectGuess   EventType = "correct_guess"
	EventRoundOver      EventType = "round_over"
	EventRoundAbandoned EventType = "round_abandoned"

	// Canvas relay, payload opaque to the server
	EventDraw EventType = "draw"

	EventError EventType = "error"
)

// Event is the outbound wire envelope
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// JoinedPayload confirms a successful join to the joining client
type JoinedPayload struct {
	Code     SessionCode `json:"code"`
	Username string      `json:"username"`
	IsAdmin  bool        `json:"is_admin"`
}

// RosterPayload carries the full player list
type RosterPayload struct {
	Players []PlayerView `json:"players"`
}

// PlayerLeftPayload announces a departure
type PlayerLeftPayload struct {
	Username string `json:"username"`
}

// RoundStartedPayload announces a new round and its drawer
type RoundStartedPayload struct {
	Drawer string `json:"drawer"`
}

// YourWordPayload delivers the secret word to the drawer
type YourWordPayload struct {
	Word string `json:"word"`
}

// ChatPayload is a non-matching guess forwarded as chat
type ChatPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// CorrectGuessPayload announces a credited guess
type CorrectGuessPayload struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// RoundOverPayload announces the end of a round and reveals the word
type RoundOverPayload struct {
	Word string `json:"word"`
}

// ErrorPayload carries a user-facing error message
type ErrorPayload struct {
	Message string `json:"message"`
}

// DrawPayload is the raw canvas data relayed between clients
type DrawPayload = json.RawMessage
