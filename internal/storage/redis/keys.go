package redis

import (
	"fmt"

	"github.com/kaganatalay/ciz.im/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "cizim"

// sessionKey returns the Redis key for a GameSession
func sessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, code.Normalized())
}

// wordsKey returns the Redis key for the word bank
func wordsKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}
