package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	logx "github.com/studio101-core/server/pkg/logger"
)

// RegistryConfig controls how long idle sessions are kept.
type RegistryConfig struct {
	IdleTTL       time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

// Registry holds the live sessions of the process.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		idleTTL:  idleTTL,
		now:      time.Now,
		log:      logx.With("sessions"),
	}
}

// GetOrCreate returns the session for id, creating it on first use. The
// boolean reports whether the session is new.
func (r *Registry) GetOrCreate(id string) (*Session, bool) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.touch(now)
		return s, false
	}
	s := NewSession(id, now)
	r.sessions[id] = s
	return s, true
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops sessions idle longer than the TTL and returns how many went.
// A non-positive TTL keeps every session.
func (r *Registry) Evict() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.log.Debug().Int("evicted", n).Int("live", r.Len()).Msg("idle sessions evicted")
			}
		}
	}
}
