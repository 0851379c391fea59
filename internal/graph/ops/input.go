package ops

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Input is a graph leaf supplying an externally provided tensor.
//
// The tensor is copied into the graph on forward evaluation, so later
// mutation of the caller's data does not disturb memoized values. Input has
// no arguments and contributes nothing on the backward pass.
type Input struct {
	value tensor.Tensor
}

// NewInput creates an input operation holding t.
func NewInput(t tensor.Tensor) *Input {
	return &Input{value: t}
}

// InferShape returns the held tensor's shape.
func (op *Input) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	if len(args) != 0 {
		return tensor.Shape{}, errors.Wrapf(ErrIncompatibleShapes, "Input: expected no arguments, got %d", len(args))
	}
	return op.value.Shape(), nil
}

// Forward returns a copy of the held tensor.
func (op *Input) Forward(args []*tensor.Tensor) tensor.Tensor {
	return op.value.Clone()
}

// Backward is a no-op: inputs are leaves.
func (op *Input) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
}

// Name returns the operation name.
func (op *Input) Name() string {
	return "Input"
}
