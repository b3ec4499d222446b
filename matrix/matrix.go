// Package matrix reads, writes and generates the square integer weight
// matrices used as graph inputs by the experiment harness.
//
// The text format is a sequence of blocks. Each block is a line holding the
// size n followed by n lines of n space-separated integers:
//
//	3
//	0 4 1
//	7 0 2
//	5 9 0
package matrix

import (
	"bufio"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/YuminosukeSato/errbound/pkg/errors"
)

// DefaultMaxValue is the largest weight Random produces by default.
const DefaultMaxValue = 9

// Matrix is a square matrix of non-negative integer edge weights. Entry
// [i][j] is the weight of the edge from vertex i to vertex j.
type Matrix [][]int

// New returns an n×n matrix of zeros.
func New(n int) Matrix {
	m := make(Matrix, n)
	cells := make([]int, n*n)
	for i := range m {
		m[i] = cells[i*n : (i+1)*n : (i+1)*n]
	}
	return m
}

// Size returns the number of vertices.
func (m Matrix) Size() int { return len(m) }

// ZeroDiagonal removes self loops in place.
func (m Matrix) ZeroDiagonal() {
	for i := range m {
		m[i][i] = 0
	}
}

// Sum returns the total weight of all edges.
func (m Matrix) Sum() int {
	s := 0
	for _, row := range m {
		for _, v := range row {
			s += v
		}
	}
	return s
}

// Random returns an n×n matrix with entries drawn uniformly from [0, maxValue].
func Random(rng *rand.Rand, n, maxValue int) Matrix {
	m := New(n)
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.IntN(maxValue + 1)
		}
	}
	return m
}

// Write writes each matrix as a size line followed by its rows.
func Write(w io.Writer, ms ...Matrix) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, m := range ms {
		buf = strconv.AppendInt(buf[:0], int64(m.Size()), 10)
		buf = append(buf, '\n')
		for _, row := range m {
			for j, v := range row {
				if j > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendInt(buf, int64(v), 10)
			}
			buf = append(buf, '\n')
		}
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrap(err, "write matrix")
		}
	}
	return errors.WithStack(bw.Flush())
}

// Read parses every matrix block in r until EOF.
func Read(r io.Reader) ([]Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	token := 0
	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, errors.Wrap(err, "read matrix")
			}
			return 0, io.EOF
		}
		token++
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, errors.NewValueError("matrix.Read",
				"token "+strconv.Itoa(token)+": invalid "+what+" "+strconv.Quote(sc.Text()))
		}
		return v, nil
	}

	var out []Matrix
	for {
		n, err := next("size")
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, errors.NewValidationError("size", "must be positive", n)
		}

		// Allocation follows the entries actually read, not the declared size.
		var entries []int
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, err := next("entry")
				if err == io.EOF {
					return nil, errors.NewValueError("matrix.Read",
						"truncated "+strconv.Itoa(n)+"x"+strconv.Itoa(n)+" matrix")
				}
				if err != nil {
					return nil, err
				}
				entries = append(entries, v)
			}
		}

		m := make(Matrix, n)
		for i := range m {
			m[i] = entries[i*n : (i+1)*n : (i+1)*n]
		}
		out = append(out, m)
	}
}
