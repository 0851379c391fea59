package ops

import "github.com/ember-ml/ember/internal/tensor"

// Mul is element-wise multiplication with batch broadcasting: out = a * b.
//
// Backward: d(a*b)/da = b and d(a*b)/db = a.
type Mul struct{}

// NewMul creates a multiplication operation.
func NewMul() *Mul {
	return &Mul{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Mul) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferElementwise("Mul", args)
}

// Forward computes a * b.
func (op *Mul) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Mul(*args[0], *args[1])
}

// Backward accumulates grad*b into a's gradient and grad*a into b's.
func (op *Mul) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], dev.Mul(*outGrad, *argValues[1]))
	dev.AddAssign(*argGrads[1], dev.Mul(*outGrad, *argValues[0]))
}

// Name returns the operation name.
func (op *Mul) Name() string {
	return "Mul"
}
