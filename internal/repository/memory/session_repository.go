package memory

import (
	"time"

	"ticket-intel-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository builds the in-memory session store. The TTL stands in
// for the browser session lifetime; expired sessions are purged every 10
// minutes and a reviewer coming back after eviction simply starts over.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.ReviewSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.ReviewSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ReviewSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
