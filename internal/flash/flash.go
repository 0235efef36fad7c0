// Package flash carries one-shot notifications across a redirect. Messages
// are keyed by session id and read at most once.
package flash

import (
	"time"

	"github.com/yourorg/sanctuaryconsole/pkg/cache"
)

// Kind classifies how a message renders.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Message is a single flash notification.
type Message struct {
	Kind Kind
	Text string
}

// Store keeps pending flash messages in memory. A message not read within
// the TTL is dropped silently.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{cache: cache.New(), ttl: ttl}
}

// Put replaces the pending message for the session.
func (s *Store) Put(sid string, kind Kind, text string) {
	if sid == "" {
		return
	}
	s.cache.Set(key(sid), Message{Kind: kind, Text: text}, s.ttl)
}

// Pop returns the pending message and removes it, so a reload after the
// redirect renders the page clean.
func (s *Store) Pop(sid string) (Message, bool) {
	if sid == "" {
		return Message{}, false
	}
	v, ok := s.cache.Take(key(sid))
	if !ok {
		return Message{}, false
	}
	msg, ok := v.(Message)
	return msg, ok
}

func key(sid string) string {
	return "flash:" + sid
}
