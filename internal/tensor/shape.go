package tensor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Shape describes the dimensionality of a tensor together with its batch size.
//
// Trailing dimensions of size 1 are never stored: NewShape([]int{5,1,1}, 1)
// and ShapeOf(5) are the same shape with depth 1. Indexing past the stored
// depth always yields 1. The zero value is the scalar shape ([]x1).
//
// Examples:
//
//	Shape{}                   scalar
//	ShapeOf(n)                row vector
//	ShapeOf(n, m)             matrix
//	NewShape([]int{n, m}, k)  k-parallelized mini-batch
type Shape struct {
	dims      []int
	batch     int // 0 in the zero value, reads as 1
	perSample int // cached product of dims, 0 in the zero value, reads as 1
}

// NewShape creates a shape from a dimension list and a batch size.
// Degenerate shapes are rejected: every dimension and the batch size must be
// positive. Trailing dimensions of size 1 are stripped.
func NewShape(dims []int, batch int) (Shape, error) {
	if batch <= 0 {
		return Shape{}, errors.Errorf("tensor: invalid batch size %d (must be > 0)", batch)
	}
	for i, d := range dims {
		if d <= 0 {
			return Shape{}, errors.Errorf("tensor: invalid dimension %d at axis %d (must be > 0)", d, i)
		}
	}
	s := Shape{batch: batch}
	s.setDims(dims)
	return s, nil
}

// ShapeOf creates a shape with batch size 1 from a dimension list.
// Panics on non-positive dimensions; intended for literal shapes in code.
func ShapeOf(dims ...int) Shape {
	s, err := NewShape(dims, 1)
	if err != nil {
		panic(err)
	}
	return s
}

// setDims stores a normalized copy of dims and refreshes the cached product.
func (s *Shape) setDims(dims []int) {
	depth := len(dims)
	for depth > 0 && dims[depth-1] == 1 {
		depth--
	}
	s.dims = append([]int(nil), dims[:depth]...)
	s.perSample = 1
	for _, d := range s.dims {
		s.perSample *= d
	}
}

// Depth returns the number of stored (non-trivial) dimensions.
func (s Shape) Depth() int {
	return len(s.dims)
}

// Dim returns the size of axis i, or 1 past the stored depth.
func (s Shape) Dim(i int) int {
	if i < 0 || i >= len(s.dims) {
		return 1
	}
	return s.dims[i]
}

// Dims returns a copy of the stored dimension list.
func (s Shape) Dims() []int {
	return append([]int(nil), s.dims...)
}

// BatchSize returns the batch size k.
func (s Shape) BatchSize() int {
	if s.batch == 0 {
		return 1
	}
	return s.batch
}

// NumElementsPerSample returns the number of elements in one sample,
// the product of all dimensions.
func (s Shape) NumElementsPerSample() int {
	if s.perSample == 0 {
		return 1
	}
	return s.perSample
}

// NumElementsUnderRank returns dim(0) * dim(1) * ... * dim(rank-1).
func (s Shape) NumElementsUnderRank(rank int) int {
	n := 1
	for i := 0; i < rank && i < len(s.dims); i++ {
		n *= s.dims[i]
	}
	return n
}

// NumTotalElements returns the element count over the whole mini-batch,
// BatchSize() * NumElementsPerSample().
func (s Shape) NumTotalElements() int {
	return s.BatchSize() * s.NumElementsPerSample()
}

// String encodes the shape as "[n,m]xk".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s.dims {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", d)
	}
	fmt.Fprintf(&b, "]x%d", s.BatchSize())
	return b.String()
}

// Equal reports whether both dimension lists and batch sizes match exactly.
func (s Shape) Equal(rhs Shape) bool {
	return s.HasSameDims(rhs) && s.BatchSize() == rhs.BatchSize()
}

// HasSameDims reports whether both shapes have identical dimension lists,
// ignoring batch sizes.
func (s Shape) HasSameDims(rhs Shape) bool {
	if len(s.dims) != len(rhs.dims) {
		return false
	}
	for i := range s.dims {
		if s.dims[i] != rhs.dims[i] {
			return false
		}
	}
	return true
}

// HasSameDimsLOO reports whether both shapes have the same dimensions when
// axis dim is left out of the comparison. Used by concatenation-like
// operations.
func (s Shape) HasSameDimsLOO(rhs Shape, dim int) bool {
	depth := len(s.dims)
	if len(rhs.dims) > depth {
		depth = len(rhs.dims)
	}
	for i := 0; i < depth; i++ {
		if i == dim {
			continue
		}
		if s.Dim(i) != rhs.Dim(i) {
			return false
		}
	}
	return true
}

// HasCompatibleBatch reports whether the two batch sizes are broadcastable:
// equal, or either one is 1.
func (s Shape) HasCompatibleBatch(rhs Shape) bool {
	return s.BatchSize() == rhs.BatchSize() || s.BatchSize() == 1 || rhs.BatchSize() == 1
}

// ResizeDim returns a copy of the shape with axis dim resized to m.
func (s Shape) ResizeDim(dim, m int) Shape {
	out := s.clone()
	out.UpdateDim(dim, m)
	return out
}

// ResizeBatch returns a copy of the shape with batch size k.
func (s Shape) ResizeBatch(k int) Shape {
	out := s.clone()
	out.UpdateBatch(k)
	return out
}

// UpdateDim resizes axis dim to m in place. Only for incremental shape
// construction; shapes recorded in a graph are never mutated.
func (s *Shape) UpdateDim(dim, m int) {
	if m <= 0 {
		panic(fmt.Sprintf("tensor: invalid dimension %d (must be > 0)", m))
	}
	dims := s.Dims()
	for len(dims) <= dim {
		dims = append(dims, 1)
	}
	dims[dim] = m
	s.setDims(dims)
}

// UpdateBatch resizes the batch size to k in place. Only for incremental
// shape construction.
func (s *Shape) UpdateBatch(k int) {
	if k <= 0 {
		panic(fmt.Sprintf("tensor: invalid batch size %d (must be > 0)", k))
	}
	s.batch = k
}

func (s Shape) clone() Shape {
	out := s
	out.dims = append([]int(nil), s.dims...)
	out.batch = s.BatchSize()
	out.perSample = s.NumElementsPerSample()
	return out
}
