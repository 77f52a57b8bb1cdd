package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CursorRepository remembers which chat session each client is looking at.
// Entries are browser-tab scoped state and expire on their own.
type CursorRepository struct {
	cache *cache.Cache
}

func NewCursorRepository() *CursorRepository {
	return NewCursorRepositoryWithTTL(1*time.Hour, 10*time.Minute)
}

func NewCursorRepositoryWithTTL(ttl, cleanupInterval time.Duration) *CursorRepository {
	return &CursorRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *CursorRepository) Save(clientId string, sessionId uuid.UUID) {
	if clientId == "" {
		return
	}
	r.cache.Set(clientId, sessionId, cache.DefaultExpiration)
}

func (r *CursorRepository) Get(clientId string) (uuid.UUID, bool) {
	if clientId == "" {
		return uuid.Nil, false
	}
	if x, found := r.cache.Get(clientId); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *CursorRepository) Delete(clientId string) {
	r.cache.Delete(clientId)
}

// Forget drops every cursor pointing at sessionId, e.g. after the session was deleted.
func (r *CursorRepository) Forget(sessionId uuid.UUID) {
	for key, item := range r.cache.Items() {
		if id, ok := item.Object.(uuid.UUID); ok && id == sessionId {
			r.cache.Delete(key)
		}
	}
}

// Flush drops all cursors.
func (r *CursorRepository) Flush() {
	r.cache.Flush()
}
