package response

import (
	"time"

	"github.com/kaganatalay/ciz.im/internal/model"
)

// RoomResponse is the public view of a session. It never carries the
// current word.
type RoomResponse struct {
	Code        model.SessionCode  `json:"code"`
	Players     []model.PlayerView `json:"players"`
	RoundActive bool               `json:"round_active"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewRoomResponse builds a RoomResponse from a session
func NewRoomResponse(session *model.GameSession) RoomResponse {
	return RoomResponse{
		Code:        session.Code,
		Players:     session.Roster(),
		RoundActive: session.RoundActive,
		CreatedAt:   session.CreatedAt,
	}
}

// HealthResponse reports server liveness and word bank readiness
type HealthResponse struct {
	Status    string `json:"status"`
	WordCount int    `json:"word_count"`
}
