package memory

import (
	"time"

	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds live sessions in process memory. The cache TTL is
// a backstop; the authoritative inactivity check compares LastActivity in
// the session middleware. Saving a session slides its TTL.
type SessionRepository struct {
	cache   *cache.Cache
	timeout time.Duration
}

func NewSessionRepository(timeout time.Duration) *SessionRepository {
	c := cache.New(timeout, 10*time.Minute)
	return &SessionRepository{
		cache:   c,
		timeout: timeout,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
