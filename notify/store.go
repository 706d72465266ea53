package notify

import "sync"

// Store remembers which condition identities were surfaced on the previous
// evaluation cycle. Each sweep REPLACES the stored set with the current one;
// identities are never merged across cycles.
type Store struct {
	mu   sync.Mutex
	seen map[Identity]struct{}
}

func NewStore() *Store {
	return &Store{seen: make(map[Identity]struct{})}
}

// Sweep takes the full identity set of the current cycle and returns the
// identities not present last cycle, in input order. The stored set is then
// overwritten with the current one.
func (s *Store) Sweep(current []Identity) []Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]Identity, 0, len(current))
	next := make(map[Identity]struct{}, len(current))
	for _, id := range current {
		if _, dup := next[id]; dup {
			continue
		}
		next[id] = struct{}{}
		if _, ok := s.seen[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	s.seen = next
	return fresh
}

// Len reports the size of the stored set. Test helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
