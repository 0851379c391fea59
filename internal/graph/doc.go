// Package graph implements the dynamic computation graph with reverse-mode
// automatic differentiation.
//
// A Graph is built incrementally: AddFunction appends one node per call, so
// node indices form a topological order by construction and no separate sort
// or cycle detection is ever needed. Forward evaluates a node with memoized
// depth-first recursion; Backward walks node indices in descending order from
// the seed, accumulating gradients into every transitive argument.
//
// Usage:
//
//	dev := cpu.New()
//	g := graph.New()
//	x, _ := g.AddFunction(ops.NewInput(xs))
//	w, _ := g.AddFunction(ops.NewParameterInput(p))
//	y, _ := g.AddFunction(ops.NewMatMul(), w, x)
//	if _, err := g.Forward(y); err != nil { ... }
//	if err := g.Backward(y); err != nil { ... }
package graph
