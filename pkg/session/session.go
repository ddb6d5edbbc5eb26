// Package session keeps the server-side registry of live tokens. A token
// is usable only while its entry is present here; logout removes the
// entry and kills the token before its signature expires.
package session

import (
	"time"

	"debttracker/pkg/cache"
)

// TTL is the validity window shared by the token signature and the
// session entry.
const TTL = time.Hour

type Identity struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

type Store interface {
	Register(token string, identity Identity, ttl time.Duration)
	Lookup(token string) (Identity, bool)
	Revoke(token string)
}

// CacheStore backs the registry with an in-process expiring cache,
// keyed by the token string itself.
type CacheStore struct {
	cache *cache.Cache[Identity]
}

func NewCacheStore() *CacheStore {
	return &CacheStore{cache: cache.New[Identity]()}
}

func (s *CacheStore) Register(token string, identity Identity, ttl time.Duration) {
	s.cache.Set(token, identity, ttl)
}

func (s *CacheStore) Lookup(token string) (Identity, bool) {
	return s.cache.Get(token)
}

func (s *CacheStore) Revoke(token string) {
	s.cache.Delete(token)
}
