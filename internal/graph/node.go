package graph

// Node is a handle to one entry in a Graph's computation record, identifying
// an operation's output. It carries no data: all behavior lives in the Graph.
//
// A Node is valid only against the exact Graph that created it; handles are
// cheap to copy and compare with ==.
type Node struct {
	graph *Graph
	id    int
}

// Graph returns the owning graph.
func (n Node) Graph() *Graph {
	return n.graph
}

// ID returns the node's index in its graph's creation order.
func (n Node) ID() int {
	return n.id
}
