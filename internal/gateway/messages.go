package gateway

import "encoding/json"

// Inbound message types accepted over the websocket
const (
	msgJoin       = "join"
	msgStartRound = "start_round"
	msgGuess      = "guess"
	msgDraw       = "draw"
	msgLeave      = "leave"
)

// inboundMessage is the wire envelope for client-to-server messages. Fields
// beyond Type are populated per message type and ignored otherwise.
type inboundMessage struct {
	Type string `json:"type"`

	// join
	Username string `json:"username,omitempty"`
	AsAdmin  bool   `json:"as_admin,omitempty"`

	// guess
	Guess string `json:"guess,omitempty"`

	// draw, relayed verbatim
	Data json.RawMessage `json:"data,omitempty"`
}
