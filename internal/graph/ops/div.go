package ops

import "github.com/ember-ml/ember/internal/tensor"

// Div is element-wise division with batch broadcasting: out = a / b.
//
// Backward: d(a/b)/da = 1/b and d(a/b)/db = -a/b^2 = -out/b.
type Div struct{}

// NewDiv creates a division operation.
func NewDiv() *Div {
	return &Div{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Div) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferElementwise("Div", args)
}

// Forward computes a / b.
func (op *Div) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Div(*args[0], *args[1])
}

// Backward accumulates grad/b into a's gradient and -grad*out/b into b's.
func (op *Div) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	b := *argValues[1]
	dev.AddAssign(*argGrads[0], dev.Div(*outGrad, b))
	dev.AddAssign(*argGrads[1], dev.Neg(dev.Div(dev.Mul(*outGrad, *out), b)))
}

// Name returns the operation name.
func (op *Div) Name() string {
	return "Div"
}
