package ops

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Transpose swaps the first two axes per sample: [n,m]xk -> [m,n]xk.
type Transpose struct{}

// NewTranspose creates a transpose operation.
func NewTranspose() *Transpose {
	return &Transpose{}
}

// InferShape validates that the argument is at most rank 2.
func (op *Transpose) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	if err := checkArity("Transpose", args, 1); err != nil {
		return tensor.Shape{}, err
	}
	x := args[0]
	if x.Depth() > 2 {
		return tensor.Shape{}, errors.Wrapf(ErrIncompatibleShapes, "Transpose: %s", x)
	}
	return tensor.NewShape([]int{x.Dim(1), x.Dim(0)}, x.BatchSize())
}

// Forward computes x^T.
func (op *Transpose) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Transpose(*args[0])
}

// Backward: the gradient of a transpose is the transposed gradient.
func (op *Transpose) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], dev.Transpose(*outGrad))
}

// Name returns the operation name.
func (op *Transpose) Name() string {
	return "Transpose"
}
