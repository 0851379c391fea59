package graph

import "github.com/pkg/errors"

// Recoverable usage errors. The graph's state is unchanged when any of these
// is returned; test with errors.Is.
var (
	// ErrMismatchedGraph is returned when a Node is used with a Graph other
	// than the one that created it.
	ErrMismatchedGraph = errors.New("graph: node belongs to a different graph")

	// ErrNotComputed is returned by Backward when the seed node's value was
	// never computed in a forward pass.
	ErrNotComputed = errors.New("graph: node is not computed in the forward path")

	// ErrGradientExists is returned by Backward when the seed node already
	// holds a gradient; each node may seed at most one backward pass.
	ErrGradientExists = errors.New("graph: node already has a gradient")
)
