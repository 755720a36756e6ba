package locks

import (
	"context"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var ErrLocked = errors.New("lock is held by another run")

type Locker interface {
	// Acquire takes the named lock for at most ttl. It returns ErrLocked when the lock is held.
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), err error)
}

// Local guards runs inside a single process.
type Local struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func NewLocal() *Local {
	return &Local{held: make(map[string]time.Time)}
}

func (l *Local) Acquire(_ context.Context, name string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiresAt, ok := l.held[name]; ok && time.Now().Before(expiresAt) {
		return nil, ErrLocked
	}

	expiresAt := time.Now().Add(ttl)
	l.held[name] = expiresAt

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.held[name] == expiresAt {
				delete(l.held, name)
			}
		})
	}, nil
}
