package graph

import "github.com/ember-ml/ember/internal/tensor"

// Operation is the pluggable unit of computation recorded at each node.
// The graph engine never knows how a result is shaped or differentiated;
// it only orchestrates calls into this contract.
//
// Concrete operations live in the ops subpackage. Once passed to
// Graph.AddFunction, an operation is owned by that graph for its remaining
// lifetime and must not be shared across graphs.
type Operation interface {
	// InferShape computes the result shape from the argument shapes.
	// Returning an error rejects the construction; the error propagates
	// unmodified out of AddFunction and the graph is left unchanged.
	InferShape(args []tensor.Shape) (tensor.Shape, error)

	// Forward computes the result value from the argument values. The
	// returned tensor is stored in the node's value slot; argument values
	// were produced by earlier Forward calls and must not be mutated.
	Forward(args []*tensor.Tensor) tensor.Tensor

	// Backward accumulates this node's contribution into its argument
	// gradients, given the node's value and gradient. It is invoked exactly
	// once per node during a backward pass, with the complete argument
	// value and gradient lists; implementations add into argGrads in place
	// and never overwrite.
	Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor)

	// Name identifies the operation in diagnostics.
	Name() string
}
