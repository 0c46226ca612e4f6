// Package cache keeps per-resource read caches consistent across views
// without a push channel from the backend. Reads go through named entries
// that are refetched when absent or stale; mutations declare the set of
// keys they may have affected and mark them stale.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Key names one logical cached resource.
type Key string

const (
	KeyStats            Key = "stats"
	KeyConnectionStatus Key = "connection-status"
	KeyProcessedEmails  Key = "processed-emails"
	KeySkills           Key = "skills"
	KeyLearnedSkills    Key = "learned-skills"
	KeyResumes          Key = "resumes"
	KeyDrafts           Key = "drafts"
)

// FetchFunc produces a fresh value for a key via the gateway.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	stale     bool
	fetchedAt time.Time
}

// Store is the keyed staleness store. Values are written only by fetch
// completions; concurrent reads of one key are coalesced into a single
// in-flight fetch. Entry fields are read and written only under mu.
type Store struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	fetchers map[Key]FetchFunc

	// gens counts invalidations per key. A fetch records the generation it
	// started under; if it changed by completion, an invalidation landed
	// mid-flight and the fetched value is already suspect.
	gens map[Key]uint64

	group singleflight.Group
	log   zerolog.Logger

	// Optional observation hooks, used for metrics.
	OnHit     func(Key)
	OnRefetch func(Key)
}

// New returns an empty store.
func New(log zerolog.Logger) *Store {
	return &Store{
		entries:  make(map[Key]*entry),
		fetchers: make(map[Key]FetchFunc),
		gens:     make(map[Key]uint64),
		log:      log,
	}
}

// Register binds a key to its fetcher. Must be called before Get for that
// key; registration is construction-time wiring, not runtime mutation.
func (s *Store) Register(key Key, fetch FetchFunc) {
	s.mu.Lock()
	s.fetchers[key] = fetch
	s.mu.Unlock()
}

// Get returns the cached value for key, fetching it first when the entry
// is absent or stale. Concurrent callers for the same key share one fetch.
func (s *Store) Get(ctx context.Context, key Key) (any, error) {
	s.mu.Lock()
	fetch, registered := s.fetchers[key]
	if e, ok := s.entries[key]; ok && !e.stale {
		v := e.value
		s.mu.Unlock()
		if s.OnHit != nil {
			s.OnHit(key)
		}
		return v, nil
	}
	s.mu.Unlock()

	if !registered {
		return nil, &UnknownKeyError{Key: key}
	}

	v, err, _ := s.group.Do(string(key), func() (any, error) {
		// Re-check under the flight: a fetch that completed between the
		// caller's staleness check and this call already refreshed us.
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && !e.stale {
			v := e.value
			s.mu.Unlock()
			return v, nil
		}
		startGen := s.gens[key]
		s.mu.Unlock()

		if s.OnRefetch != nil {
			s.OnRefetch(key)
		}
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		// An invalidation that landed while the fetch was in flight must
		// not be clobbered: store the value already stale so the next read
		// refetches.
		s.entries[key] = &entry{
			value:     val,
			stale:     s.gens[key] != startGen,
			fetchedAt: time.Now(),
		}
		s.mu.Unlock()
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate marks the given keys stale. Unknown or never-fetched keys are
// a no-op; their first read fetches anyway.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	for _, k := range keys {
		s.gens[k]++
		if e, ok := s.entries[k]; ok {
			e.stale = true
		}
	}
	s.mu.Unlock()
	s.log.Debug().Interface("keys", keys).Msg("cache entries invalidated")
}

// Clear drops every entry. Used on session teardown so nothing cached
// under one identity leaks into the next; in-flight fetches started under
// the old identity land stale.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[Key]*entry)
	for k := range s.fetchers {
		s.gens[k]++
	}
	s.mu.Unlock()
}

// Stale reports whether key currently holds a stale value. Absent entries
// are not stale, merely unfetched.
func (s *Store) Stale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return ok && e.stale
}

// UnknownKeyError reports a Get for a key with no registered fetcher.
type UnknownKeyError struct {
	Key Key
}

func (e *UnknownKeyError) Error() string {
	return "cache: no fetcher registered for key " + string(e.Key)
}
