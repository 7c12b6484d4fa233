package domain

import (
	"errors"
	"math"
	"testing"
)

func TestMatrixValidate(t *testing.T) {
	cases := []struct {
		name    string
		matrix  Matrix
		wantErr bool
	}{
		{
			name:    "valid",
			matrix:  Matrix{{0, 2, 9}, {2, 0, 5}, {9, 5, 0}},
			wantErr: false,
		},
		{
			name:    "valid with unreachable entries",
			matrix:  Matrix{{0, Unreachable}, {Unreachable, 0}},
			wantErr: false,
		},
		{
			name:    "too small",
			matrix:  Matrix{{0}},
			wantErr: true,
		},
		{
			name:    "empty",
			matrix:  Matrix{},
			wantErr: true,
		},
		{
			name:    "non-square",
			matrix:  Matrix{{0, 1}, {1, 0, 2}},
			wantErr: true,
		},
		{
			name:    "negative entry",
			matrix:  Matrix{{0, -1}, {1, 0}},
			wantErr: true,
		},
		{
			name:    "NaN entry",
			matrix:  Matrix{{0, math.NaN()}, {1, 0}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.matrix.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr && !errors.Is(err, ErrInvalidMatrix) {
				t.Fatalf("error %v is not ErrInvalidMatrix", err)
			}
		})
	}
}

func TestMatrixPathCost(t *testing.T) {
	m := Matrix{{0, 2, 9}, {2, 0, 5}, {9, 5, 0}}

	if got := m.PathCost(Route{0, 1, 2}); got != 7 {
		t.Fatalf("PathCost([0,1,2]) = %v, want 7", got)
	}
	if got := m.PathCost(Route{0, 2, 1}); got != 14 {
		t.Fatalf("PathCost([0,2,1]) = %v, want 14", got)
	}

	// No return leg: a two-stop route costs exactly one edge.
	if got := m.PathCost(Route{0, 1}); got != 2 {
		t.Fatalf("PathCost([0,1]) = %v, want 2", got)
	}
}

func TestMatrixPathCostPropagatesUnreachable(t *testing.T) {
	m := Matrix{
		{0, Unreachable, 3},
		{1, 0, 2},
		{3, 2, 0},
	}

	if got := m.PathCost(Route{0, 1, 2}); !math.IsInf(got, 1) {
		t.Fatalf("PathCost over unreachable edge = %v, want +Inf", got)
	}

	// An alternative order avoiding the missing edge stays finite.
	if got := m.PathCost(Route{0, 2, 1}); got != 5 {
		t.Fatalf("PathCost([0,2,1]) = %v, want 5", got)
	}
}

func TestRouteIsPermutation(t *testing.T) {
	cases := []struct {
		name  string
		route Route
		want  bool
	}{
		{"identity", Route{0, 1, 2, 3}, true},
		{"shuffled", Route{0, 3, 1, 2}, true},
		{"empty", Route{}, false},
		{"start not zero", Route{1, 0, 2}, false},
		{"duplicate", Route{0, 1, 1}, false},
		{"out of range", Route{0, 1, 5}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.route.IsPermutation(); got != tc.want {
				t.Fatalf("IsPermutation(%v) = %v, want %v", tc.route, got, tc.want)
			}
		})
	}
}

func TestRouteClone(t *testing.T) {
	r := IdentityRoute(4)
	c := r.Clone()
	c[1], c[2] = c[2], c[1]

	if r[1] != 1 || r[2] != 2 {
		t.Fatalf("clone mutation leaked into original: %v", r)
	}
}
