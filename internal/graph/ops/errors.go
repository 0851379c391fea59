package ops

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// ErrIncompatibleShapes is returned by shape inference when an operation
// rejects its argument shapes. Test with errors.Is.
var ErrIncompatibleShapes = errors.New("ops: incompatible argument shapes")

// checkArity validates the argument count during shape inference.
func checkArity(name string, args []tensor.Shape, want int) error {
	if len(args) != want {
		return errors.Wrapf(ErrIncompatibleShapes, "%s: expected %d arguments, got %d", name, want, len(args))
	}
	return nil
}

// inferElementwise validates a two-argument element-wise operation and
// returns the result shape: the common dimensions with the broader batch.
func inferElementwise(name string, args []tensor.Shape) (tensor.Shape, error) {
	if err := checkArity(name, args, 2); err != nil {
		return tensor.Shape{}, err
	}
	a, b := args[0], args[1]
	if !a.HasSameDims(b) || !a.HasCompatibleBatch(b) {
		return tensor.Shape{}, errors.Wrapf(ErrIncompatibleShapes, "%s: %s and %s", name, a, b)
	}
	k := a.BatchSize()
	if b.BatchSize() > k {
		k = b.BatchSize()
	}
	return a.ResizeBatch(k), nil
}

// inferUnary validates a one-argument element-wise operation.
func inferUnary(name string, args []tensor.Shape) (tensor.Shape, error) {
	if err := checkArity(name, args, 1); err != nil {
		return tensor.Shape{}, err
	}
	return args[0], nil
}
