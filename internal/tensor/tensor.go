package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tensor is a batched float32 value with a shape and an owning device.
//
// The zero value is the invalid tensor: a queryable "not yet computed"
// marker used for graph value and gradient slots. All arithmetic goes
// through the owning Device; the data itself is always host-visible.
type Tensor struct {
	shape  Shape
	data   []float32
	device Device
}

// New creates a zero-filled tensor on the given device.
func New(shape Shape, device Device) Tensor {
	return Tensor{
		shape:  shape,
		data:   make([]float32, shape.NumTotalElements()),
		device: device,
	}
}

// FromSlice creates a tensor initialized from data. The slice is copied.
func FromSlice(shape Shape, data []float32, device Device) (Tensor, error) {
	if len(data) != shape.NumTotalElements() {
		return Tensor{}, errors.Errorf(
			"tensor: shape %s requires %d elements, got %d",
			shape, shape.NumTotalElements(), len(data))
	}
	t := New(shape, device)
	copy(t.data, data)
	return t, nil
}

// Valid reports whether the tensor holds data. Graph value and gradient
// slots start out invalid and become valid exactly once.
func (t Tensor) Valid() bool {
	return t.data != nil
}

// Shape returns the tensor's shape.
func (t Tensor) Shape() Shape {
	return t.shape
}

// Device returns the owning device.
func (t Tensor) Device() Device {
	return t.device
}

// Data returns the flat backing slice, sample-major. Mutations are visible
// to every copy of the tensor sharing the slice.
func (t Tensor) Data() []float32 {
	return t.data
}

// Sample returns the sub-slice holding sample b of the mini-batch.
func (t Tensor) Sample(b int) []float32 {
	n := t.shape.NumElementsPerSample()
	return t.data[b*n : (b+1)*n]
}

// Scalar returns the single element of a scalar tensor.
// Panics if the tensor is not a valid scalar.
func (t Tensor) Scalar() float32 {
	if !t.Valid() || t.shape.NumTotalElements() != 1 {
		panic(fmt.Sprintf("tensor: Scalar() requires a valid scalar tensor, have %s", t.shape))
	}
	return t.data[0]
}

// Clone returns a deep copy of the tensor.
func (t Tensor) Clone() Tensor {
	if !t.Valid() {
		return Tensor{}
	}
	out := New(t.shape, t.device)
	copy(out.data, t.data)
	return out
}

// String returns a short description of the tensor.
func (t Tensor) String() string {
	if !t.Valid() {
		return "Tensor(invalid)"
	}
	return fmt.Sprintf("Tensor%s on %s", t.shape, t.device.Name())
}
