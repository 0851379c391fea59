package graph

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// record is the per-node bookkeeping owned by the graph.
//
// args hold indices strictly less than the node's own index, so index order
// is a topological order of the DAG. value and grad each transition from
// invalid to valid at most once per graph lifetime.
type record struct {
	shape tensor.Shape
	op    Operation
	value tensor.Tensor
	grad  tensor.Tensor
	args  []int
	sinks []int
}

// Graph owns an append-only table of node records and every operation
// instance registered through AddFunction. It is not safe for concurrent
// use; callers serialize all construction and evaluation.
type Graph struct {
	nodes []*record
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// NumNodes returns the number of nodes added so far.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// checkNode validates a handle against this graph. A handle from another
// graph is a recoverable caller error. An out-of-range index cannot be
// produced by correct engine code, so it panics: the Node/Graph invariant is
// already broken and continuing risks corrupted results.
func (g *Graph) checkNode(n Node) error {
	if n.graph != g {
		return errors.Wrapf(ErrMismatchedGraph, "node graph %p, this graph %p", n.graph, g)
	}
	if n.id < 0 || n.id >= len(g.nodes) {
		panic(fmt.Sprintf(
			"graph: invalid node id %d with %d nodes; this is a bug in the engine",
			n.id, len(g.nodes)))
	}
	return nil
}

// AddFunction records a new node computing op over the argument nodes and
// returns its handle. The result shape is inferred by the operation; if the
// operation rejects the argument shapes the error is propagated unmodified
// and the graph is left unchanged. On success the graph takes ownership of
// op.
func (g *Graph) AddFunction(op Operation, args ...Node) (Node, error) {
	argIDs := make([]int, len(args))
	argShapes := make([]tensor.Shape, len(args))
	for i, arg := range args {
		if err := g.checkNode(arg); err != nil {
			return Node{}, err
		}
		argIDs[i] = arg.id
		argShapes[i] = g.nodes[arg.id].shape
	}

	shape, err := op.InferShape(argShapes)
	if err != nil {
		return Node{}, err
	}

	id := len(g.nodes)
	for _, argID := range argIDs {
		g.nodes[argID].sinks = append(g.nodes[argID].sinks, id)
	}
	g.nodes = append(g.nodes, &record{
		shape: shape,
		op:    op,
		args:  argIDs,
	})
	return Node{graph: g, id: id}, nil
}

// Forward returns the node's computed value, evaluating it and any
// not-yet-evaluated ancestors first. Values are memoized: each node's
// operation runs at most once per graph lifetime, and the returned
// reference stays valid as long as the graph does.
func (g *Graph) Forward(n Node) (*tensor.Tensor, error) {
	if err := g.checkNode(n); err != nil {
		return nil, err
	}
	g.forward(n.id)
	return &g.nodes[n.id].value, nil
}

// forward evaluates node id depth-first. Arguments always have lower
// indices, so the recursion cannot cycle.
func (g *Graph) forward(id int) {
	rec := g.nodes[id]
	if rec.value.Valid() {
		return
	}
	args := make([]*tensor.Tensor, len(rec.args))
	for i, argID := range rec.args {
		g.forward(argID)
		args[i] = &g.nodes[argID].value
	}
	rec.value = rec.op.Forward(args)
}

// Backward runs reverse-mode differentiation seeded at n. The node's
// gradient is seeded with ones (dL/dL = 1 element-wise); then every node
// index from n down to 0 with a computed value is visited once, its
// operation accumulating gradient contributions into its arguments.
// Argument gradients are zero-seeded lazily on first touch.
//
// Fails with ErrNotComputed if n was never evaluated, and with
// ErrGradientExists if n already seeded a backward pass.
func (g *Graph) Backward(n Node) error {
	if err := g.checkNode(n); err != nil {
		return err
	}

	last := g.nodes[n.id]
	if !last.value.Valid() {
		return errors.Wrapf(ErrNotComputed, "node %d", n.id)
	}
	if last.grad.Valid() {
		return errors.Wrapf(ErrGradientExists, "node %d", n.id)
	}

	// Identity gradient at the seed node.
	last.grad = last.value.Device().Constant(last.shape, 1)

	// Node indices are the topological order, so the descending walk visits
	// every node after all of its sinks.
	for id := n.id; id >= 0; id-- {
		cur := g.nodes[id]
		if !cur.value.Valid() {
			// Not on any path evaluated by forward.
			continue
		}
		if !cur.grad.Valid() {
			// Evaluated, but no sink above propagated a gradient here.
			continue
		}
		argValues := make([]*tensor.Tensor, len(cur.args))
		argGrads := make([]*tensor.Tensor, len(cur.args))
		for i, argID := range cur.args {
			arg := g.nodes[argID]
			if !arg.grad.Valid() {
				arg.grad = arg.value.Device().Constant(arg.shape, 0)
			}
			argValues[i] = &arg.value
			argGrads[i] = &arg.grad
		}
		cur.op.Backward(&cur.value, &cur.grad, argValues, argGrads)
	}
	return nil
}

// Value returns the node's stored value slot. An invalid tensor means the
// node has not been evaluated; callers check with Tensor.Valid rather than
// receiving an error.
func (g *Graph) Value(n Node) (*tensor.Tensor, error) {
	if err := g.checkNode(n); err != nil {
		return nil, err
	}
	return &g.nodes[n.id].value, nil
}

// Gradient returns the node's stored gradient slot. An invalid tensor means
// no backward pass has reached the node.
func (g *Graph) Gradient(n Node) (*tensor.Tensor, error) {
	if err := g.checkNode(n); err != nil {
		return nil, err
	}
	return &g.nodes[n.id].grad, nil
}

// Shape returns the inferred shape recorded for the node.
func (g *Graph) Shape(n Node) (tensor.Shape, error) {
	if err := g.checkNode(n); err != nil {
		return tensor.Shape{}, err
	}
	return g.nodes[n.id].shape, nil
}

// Dump writes a creation-order listing of every node's shape, operation
// name, arguments and sinks. Diagnostic only; graph state is untouched.
func (g *Graph) Dump(w io.Writer) {
	fmt.Fprintln(w, "Computation graph:")
	for i, rec := range g.nodes {
		fmt.Fprintf(w, "  [%d]: shape=%s, func=%s, args=%v, sinks=%v\n",
			i, rec.shape, rec.op.Name(), rec.args, rec.sinks)
	}
}
