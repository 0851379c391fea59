package ops

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// MatMul is per-sample matrix multiplication with batch broadcasting:
// [n,m]xk @ [m,p]xk -> [n,p]xk.
//
// Backward: d(A@B)/dA = grad @ B^T and d(A@B)/dB = A^T @ grad. A batch-1
// argument receives its gradient summed over the mini-batch.
type MatMul struct{}

// NewMatMul creates a matrix multiplication operation.
func NewMatMul() *MatMul {
	return &MatMul{}
}

// InferShape validates that both arguments are at most rank 2, the inner
// dimensions agree, and the batch sizes are compatible.
func (op *MatMul) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	if err := checkArity("MatMul", args, 2); err != nil {
		return tensor.Shape{}, err
	}
	a, b := args[0], args[1]
	if a.Depth() > 2 || b.Depth() > 2 || a.Dim(1) != b.Dim(0) || !a.HasCompatibleBatch(b) {
		return tensor.Shape{}, errors.Wrapf(ErrIncompatibleShapes, "MatMul: %s and %s", a, b)
	}
	k := a.BatchSize()
	if b.BatchSize() > k {
		k = b.BatchSize()
	}
	return tensor.NewShape([]int{a.Dim(0), b.Dim(1)}, k)
}

// Forward computes a @ b.
func (op *MatMul) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().MatMul(*args[0], *args[1])
}

// Backward accumulates grad @ b^T into a's gradient and a^T @ grad into b's.
func (op *MatMul) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	a, b := *argValues[0], *argValues[1]
	dev.AddAssign(*argGrads[0], dev.MatMul(*outGrad, dev.Transpose(b)))
	dev.AddAssign(*argGrads[1], dev.MatMul(dev.Transpose(a), *outGrad))
}

// Name returns the operation name.
func (op *MatMul) Name() string {
	return "MatMul"
}
