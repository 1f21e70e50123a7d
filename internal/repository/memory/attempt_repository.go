package memory

import (
	"math"
	"time"

	"github.com/patrickmn/go-cache"
)

// AttemptRepository tracks failed login attempts per username with a rolling
// window. It lives in process memory only: a soft deterrent, not a security
// boundary.
type AttemptRepository struct {
	cache       *cache.Cache
	window      time.Duration
	maxAttempts int

	now func() time.Time
}

type attemptInfo struct {
	Count       int
	WindowStart time.Time
}

func NewAttemptRepository(window time.Duration, maxAttempts int) *AttemptRepository {
	return &AttemptRepository{
		cache:       cache.New(window, 10*time.Minute),
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Check reports whether username may attempt a login. When rejected it also
// returns the whole minutes left until the window reopens, rounded up so the
// reported wait is always positive.
func (r *AttemptRepository) Check(username string) (bool, int) {
	x, found := r.cache.Get(username)
	if !found {
		return true, 0
	}
	info := x.(*attemptInfo)

	elapsed := r.now().Sub(info.WindowStart)
	if elapsed > r.window {
		r.cache.Delete(username)
		return true, 0
	}
	if info.Count >= r.maxAttempts {
		minutes := int(math.Ceil((r.window - elapsed).Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return false, minutes
	}
	return true, 0
}

// RecordFailure counts one failed attempt, restarting the window stamp.
func (r *AttemptRepository) RecordFailure(username string) {
	now := r.now()
	if x, found := r.cache.Get(username); found {
		info := x.(*attemptInfo)
		info.Count++
		info.WindowStart = now
		r.cache.Set(username, info, r.window)
		return
	}
	r.cache.Set(username, &attemptInfo{Count: 1, WindowStart: now}, r.window)
}

// Reset clears the counter after a successful login.
func (r *AttemptRepository) Reset(username string) {
	r.cache.Delete(username)
}
