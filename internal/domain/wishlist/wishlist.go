// Package wishlist holds the shopper's saved-product collection. The server
// owns the canonical list; this package only models the snapshot the client
// caches between fetches.
package wishlist

// Snapshot is an immutable view of the wishlist: productIDs in server
// response order plus a set for O(1) membership tests (the heart icon on
// every product card checks membership).
type Snapshot struct {
	productIDs []string
	members    map[string]struct{}
}

// NewSnapshot builds a snapshot from productIDs, dropping duplicates while
// preserving first-seen order.
func NewSnapshot(productIDs []string) Snapshot {
	s := Snapshot{
		productIDs: make([]string, 0, len(productIDs)),
		members:    make(map[string]struct{}, len(productIDs)),
	}
	for _, id := range productIDs {
		if _, ok := s.members[id]; ok {
			continue
		}
		s.members[id] = struct{}{}
		s.productIDs = append(s.productIDs, id)
	}
	return s
}

// Empty returns a snapshot with no entries. Guests always see this: the
// wishlist has no guest-mode equivalent.
func Empty() Snapshot {
	return NewSnapshot(nil)
}

// Contains reports whether productID is in the wishlist.
func (s Snapshot) Contains(productID string) bool {
	_, ok := s.members[productID]
	return ok
}

// ProductIDs returns the member productIDs in server order. The returned
// slice is a copy; callers may not mutate snapshot state.
func (s Snapshot) ProductIDs() []string {
	out := make([]string, len(s.productIDs))
	copy(out, s.productIDs)
	return out
}

// Len returns the number of entries (the wishlist badge count).
func (s Snapshot) Len() int {
	return len(s.productIDs)
}

// With returns a snapshot with productID added. Adding an existing member
// returns an equivalent snapshot.
func (s Snapshot) With(productID string) Snapshot {
	if s.Contains(productID) {
		return s
	}
	return NewSnapshot(append(s.ProductIDs(), productID))
}

// Without returns a snapshot with productID removed.
func (s Snapshot) Without(productID string) Snapshot {
	if !s.Contains(productID) {
		return s
	}
	ids := make([]string, 0, len(s.productIDs)-1)
	for _, id := range s.productIDs {
		if id != productID {
			ids = append(ids, id)
		}
	}
	return NewSnapshot(ids)
}
