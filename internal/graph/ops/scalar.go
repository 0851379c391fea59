package ops

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// AddConst adds a constant to every element: out = x + k.
type AddConst struct {
	k float32
}

// NewAddConst creates an add-constant operation.
func NewAddConst(k float32) *AddConst {
	return &AddConst{k: k}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *AddConst) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary(op.Name(), args)
}

// Forward computes x + k.
func (op *AddConst) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().AddConst(*args[0], op.k)
}

// Backward: d(x+k)/dx = 1.
func (op *AddConst) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	outGrad.Device().AddAssign(*argGrads[0], *outGrad)
}

// Name returns the operation name including the constant.
func (op *AddConst) Name() string {
	return fmt.Sprintf("AddConst(%g)", op.k)
}

// MulConst multiplies every element by a constant: out = x * k.
type MulConst struct {
	k float32
}

// NewMulConst creates a multiply-by-constant operation.
func NewMulConst(k float32) *MulConst {
	return &MulConst{k: k}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *MulConst) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary(op.Name(), args)
}

// Forward computes x * k.
func (op *MulConst) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().MulConst(*args[0], op.k)
}

// Backward: d(x*k)/dx = k.
func (op *MulConst) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], dev.MulConst(*outGrad, op.k))
}

// Name returns the operation name including the constant.
func (op *MulConst) Name() string {
	return fmt.Sprintf("MulConst(%g)", op.k)
}
