package ops

import "github.com/ember-ml/ember/internal/tensor"

// Sub is element-wise subtraction with batch broadcasting: out = a - b.
type Sub struct{}

// NewSub creates a subtraction operation.
func NewSub() *Sub {
	return &Sub{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Sub) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferElementwise("Sub", args)
}

// Forward computes a - b.
func (op *Sub) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Sub(*args[0], *args[1])
}

// Backward: d(a-b)/da = 1, d(a-b)/db = -1.
func (op *Sub) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], *outGrad)
	dev.AddAssign(*argGrads[1], dev.Neg(*outGrad))
}

// Name returns the operation name.
func (op *Sub) Name() string {
	return "Sub"
}
