package domain

// Route is a visiting order over locations 0..N-1. Each index appears
// exactly once and index 0 (the start location) is always first. A Route
// is the output of a routing strategy and carries no side effects.
type Route []int

// IdentityRoute returns the route [0, 1, ..., n-1], the conventional seed
// for local-search refinement.
func IdentityRoute(n int) Route {
	r := make(Route, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// Clone returns an independent copy. Strategies clone before mutating so
// caller-owned routes are never modified in place.
func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// IsPermutation reports whether the route visits each of 0..N-1 exactly
// once, starting at 0.
func (r Route) IsPermutation() bool {
	if len(r) == 0 || r[0] != 0 {
		return false
	}

	seen := make([]bool, len(r))
	for _, idx := range r {
		if idx < 0 || idx >= len(r) || seen[idx] {
			return false
		}
		seen[idx] = true
	}

	return true
}
