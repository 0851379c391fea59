package ops

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// ParameterInput is a graph leaf bound to a trainable parameter.
//
// Forward supplies the parameter's current value; the backward pass
// accumulates the node's gradient into the parameter, where an optimizer
// picks it up.
type ParameterInput struct {
	param *nn.Parameter
}

// NewParameterInput creates a leaf bound to p.
func NewParameterInput(p *nn.Parameter) *ParameterInput {
	return &ParameterInput{param: p}
}

// InferShape returns the parameter's shape.
func (op *ParameterInput) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	if len(args) != 0 {
		return tensor.Shape{}, errors.Wrapf(ErrIncompatibleShapes, "ParameterInput: expected no arguments, got %d", len(args))
	}
	return op.param.Shape(), nil
}

// Forward returns a copy of the parameter's current value.
func (op *ParameterInput) Forward(args []*tensor.Tensor) tensor.Tensor {
	return op.param.Value().Clone()
}

// Backward accumulates the node's gradient into the parameter.
func (op *ParameterInput) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	op.param.AddGradient(*outGrad)
}

// Name returns the operation name.
func (op *ParameterInput) Name() string {
	return "ParameterInput"
}
