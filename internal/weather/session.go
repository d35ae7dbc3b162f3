package weather

import (
	"strings"
	"sync"
)

// MaxRecentSearches bounds the remembered search list.
const MaxRecentSearches = 5

// Session owns the state that lives for one user session: the last result
// applied for display, and the bounded recent-search list. It is created at
// session start and handed to the Service explicitly, so tests inject a
// fresh one instead of sharing an ambient singleton.
//
// Overlapping lookups race on displayed state. Each lookup draws a sequence
// number from the session; a completed lookup is applied only if its number
// is still the latest issued, so a slow early request can never overwrite a
// later one.
type Session struct {
	mu sync.RWMutex

	seq uint64

	displayed *FetchResult
	recent    []string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// nextSeq issues the sequence number for a new lookup.
func (s *Session) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// apply records the outcome of lookup seq as displayed state, unless a newer
// lookup has been issued since. A failure clears any previously displayed
// result rather than leaving stale data beside the error. Returns whether
// the outcome was applied.
func (s *Session) apply(seq uint64, res *FetchResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// A newer lookup is in flight or already landed; discard.
		return false
	}

	if err != nil {
		s.displayed = nil
		return true
	}
	s.displayed = res
	return true
}

// Displayed returns the currently displayed result, or nil after a failure
// or before the first lookup.
func (s *Session) Displayed() *FetchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayed
}

// RememberSearch prepends query to the recent-search list, deduplicating
// case-insensitively and keeping at most MaxRecentSearches entries.
func (s *Session) RememberSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folded := strings.ToLower(query)
	next := make([]string, 0, MaxRecentSearches)
	next = append(next, query)
	for _, q := range s.recent {
		if strings.ToLower(q) == folded {
			continue
		}
		next = append(next, q)
		if len(next) == MaxRecentSearches {
			break
		}
	}
	s.recent = next
}

// RecentSearches returns the remembered queries, most recent first.
func (s *Session) RecentSearches() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}

// Clear resets the session to its initial state, for session end.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = nil
	s.recent = nil
}
