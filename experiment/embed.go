// Package experiment measures how far the diagonal-window heuristic for
// minimal subgraph extension is from the exact optimum.
//
// Given a pattern graph g with n1 vertices and a host graph h with n2 >= n1
// vertices, both as weight matrices, an extension places every vertex of g
// on a distinct vertex of h and raises each edge weight of h that is smaller
// than the corresponding edge of g. Its cost is the total weight added.
package experiment

import (
	"github.com/YuminosukeSato/errbound/matrix"
	"github.com/YuminosukeSato/errbound/pkg/errors"
)

// Placement is a solution to the extension problem.
type Placement struct {
	// Cost is the total weight added to h.
	Cost int
	// Mapping[i] is the vertex of h that vertex i of g is placed on.
	Mapping []int
	// Extension is an n2×n2 matrix holding the weight added to each edge of h.
	Extension matrix.Matrix
}

func validatePair(op string, g, h matrix.Matrix) error {
	if g.Size() == 0 {
		return errors.NewValueError(op, "pattern graph is empty")
	}
	if g.Size() > h.Size() {
		return errors.NewValidationError("n1", "pattern graph must not be larger than host graph",
			[2]int{g.Size(), h.Size()})
	}
	for _, m := range []matrix.Matrix{g, h} {
		for _, row := range m {
			if len(row) != m.Size() {
				return errors.NewDimensionError(op, m.Size(), len(row), 1)
			}
		}
	}
	return nil
}

// Exact returns a minimum-cost placement of g into h, searching every
// injective mapping with branch and bound.
func Exact(g, h matrix.Matrix) (Placement, error) {
	if err := validatePair("Exact", g, h); err != nil {
		return Placement{}, err
	}

	n1, n2 := g.Size(), h.Size()
	s := &search{
		g:       g,
		h:       h,
		mapping: make([]int, n1),
		used:    make([]bool, n2),
		best:    -1,
	}
	s.place(0, 0)

	return newPlacement(g, h, s.bestMapping, s.best), nil
}

type search struct {
	g, h        matrix.Matrix
	mapping     []int
	used        []bool
	best        int
	bestMapping []int
}

// place assigns vertex i of g given the cost of the vertices placed so far.
func (s *search) place(i, cost int) {
	if s.best >= 0 && cost >= s.best {
		return
	}
	if i == len(s.mapping) {
		s.best = cost
		s.bestMapping = append(s.bestMapping[:0], s.mapping...)
		return
	}

	for v := range s.used {
		if s.used[v] {
			continue
		}
		s.mapping[i] = v
		s.used[v] = true
		s.place(i+1, cost+s.added(i))
		s.used[v] = false
	}
}

// added is the cost contributed by edges between vertex i and the vertices
// placed before it, including the self loop at i.
func (s *search) added(i int) int {
	pi := s.mapping[i]
	c := deficit(s.g[i][i], s.h[pi][pi])
	for j := 0; j < i; j++ {
		pj := s.mapping[j]
		c += deficit(s.g[i][j], s.h[pi][pj])
		c += deficit(s.g[j][i], s.h[pj][pi])
	}
	return c
}

// Approximate returns the cheapest placement among the contiguous diagonal
// windows p(i) = offset + i for offset in [0, n2-n1]. Ties keep the
// smallest offset.
func Approximate(g, h matrix.Matrix) (Placement, error) {
	if err := validatePair("Approximate", g, h); err != nil {
		return Placement{}, err
	}

	n1, n2 := g.Size(), h.Size()
	best := -1
	var bestMapping []int
	mapping := make([]int, n1)
	for offset := 0; offset <= n2-n1; offset++ {
		for i := range mapping {
			mapping[i] = offset + i
		}
		if c := cost(g, h, mapping); best < 0 || c < best {
			best = c
			bestMapping = append(bestMapping[:0], mapping...)
		}
	}

	return newPlacement(g, h, bestMapping, best), nil
}

// Cost returns the weight that must be added to h so that g embeds under
// mapping.
func Cost(g, h matrix.Matrix, mapping []int) (int, error) {
	if err := validatePair("Cost", g, h); err != nil {
		return 0, err
	}
	if len(mapping) != g.Size() {
		return 0, errors.NewDimensionError("Cost", g.Size(), len(mapping), 0)
	}
	seen := make([]bool, h.Size())
	for _, v := range mapping {
		if v < 0 || v >= h.Size() || seen[v] {
			return 0, errors.NewValidationError("mapping", "must be injective into host vertices", mapping)
		}
		seen[v] = true
	}
	return cost(g, h, mapping), nil
}

func cost(g, h matrix.Matrix, mapping []int) int {
	c := 0
	for i, pi := range mapping {
		for j, pj := range mapping {
			c += deficit(g[i][j], h[pi][pj])
		}
	}
	return c
}

func newPlacement(g, h matrix.Matrix, mapping []int, c int) Placement {
	ext := matrix.New(h.Size())
	for i, pi := range mapping {
		for j, pj := range mapping {
			ext[pi][pj] = deficit(g[i][j], h[pi][pj])
		}
	}
	return Placement{Cost: c, Mapping: mapping, Extension: ext}
}

func deficit(want, have int) int {
	if want > have {
		return want - have
	}
	return 0
}
