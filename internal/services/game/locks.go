package game

import (
	"sync"

	"github.com/kaganatalay/ciz.im/internal/model"
)

// sessionLocks hands out one mutex per session code so that all state
// mutations on a session serialize, while different sessions stay fully
// concurrent. Locks are retained for the process lifetime; the code space
// is small and reusing a code must reuse its lock.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[model.SessionCode]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[model.SessionCode]*sync.Mutex),
	}
}

func (l *sessionLocks) get(code model.SessionCode) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	code = code.Normalized()
	lock, ok := l.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[code] = lock
	}
	return lock
}
