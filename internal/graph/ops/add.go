package ops

import "github.com/ember-ml/ember/internal/tensor"

// Add is element-wise addition with batch broadcasting: out = a + b.
//
// Backward: d(a+b)/da = d(a+b)/db = 1, so the output gradient flows to both
// arguments unchanged; a batch-1 argument receives the gradient summed over
// the mini-batch.
type Add struct{}

// NewAdd creates an addition operation.
func NewAdd() *Add {
	return &Add{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Add) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferElementwise("Add", args)
}

// Forward computes a + b.
func (op *Add) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Add(*args[0], *args[1])
}

// Backward accumulates the output gradient into both argument gradients.
func (op *Add) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], *outGrad)
	dev.AddAssign(*argGrads[1], *outGrad)
}

// Name returns the operation name.
func (op *Add) Name() string {
	return "Add"
}
