package depgraph

import "maps"

// Set is an unordered collection of unique nodes.
// The zero value (a nil map) is a usable empty set for reads;
// use NewSet or make to create one that accepts insertions.
type Set[N comparable] map[N]struct{}

// NewSet creates a set containing the given nodes.
func NewSet[N comparable](nodes ...N) Set[N] {
	s := make(Set[N], len(nodes))
	for _, n := range nodes {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether n is a member of the set.
func (s Set[N]) Contains(n N) bool {
	_, ok := s[n]
	return ok
}

// Len returns the number of members.
func (s Set[N]) Len() int { return len(s) }

// Slice returns the members as a slice in unspecified order.
// Returns an empty slice for a nil or empty set.
func (s Set[N]) Slice() []N {
	out := make([]N, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

// clone returns an independent copy of the set.
// Cloning a nil set yields an empty, writable set.
func (s Set[N]) clone() Set[N] {
	out := make(Set[N], len(s))
	maps.Copy(out, s)
	return out
}

// with returns a copy of the set that also contains n.
// The receiver is never modified.
func (s Set[N]) with(n N) Set[N] {
	out := s.clone()
	out[n] = struct{}{}
	return out
}

// without returns a copy of the set with n removed.
// The receiver is never modified.
func (s Set[N]) without(n N) Set[N] {
	out := s.clone()
	delete(out, n)
	return out
}
