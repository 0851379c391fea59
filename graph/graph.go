// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for the Ember computation graph.
//
// A Graph records operations as they are added and evaluates them on demand:
// Forward computes a node's value, memoizing every intermediate, and
// Backward runs reverse-mode differentiation from a seed node.
//
// Example:
//
//	dev := cpu.New()
//	g := graph.New()
//
//	x, _ := tensor.FromSlice(tensor.ShapeOf(2), []float32{1, 2}, dev)
//	a, _ := g.AddFunction(ops.NewInput(x))
//	b, _ := g.AddFunction(ops.NewTanh(), a)
//
//	y, _ := g.Forward(b)
//	_ = g.Backward(b)
//	grad, _ := g.Gradient(a)
package graph

import (
	"github.com/ember-ml/ember/internal/graph"
)

// Graph owns an append-only table of operation nodes. It is not safe for
// concurrent use.
type Graph = graph.Graph

// Node is a cheap handle to one node of a Graph, comparable with ==.
type Node = graph.Node

// Operation is the contract every graph operation implements: shape
// inference, a forward kernel, and a backward kernel invoked once per node.
type Operation = graph.Operation

// Sentinel errors, testable with errors.Is.
var (
	// ErrMismatchedGraph reports a Node handle used against a Graph that did
	// not create it.
	ErrMismatchedGraph = graph.ErrMismatchedGraph

	// ErrNotComputed reports a Backward seed whose value was never computed.
	ErrNotComputed = graph.ErrNotComputed

	// ErrGradientExists reports a repeated Backward seed.
	ErrGradientExists = graph.ErrGradientExists
)

// New creates an empty graph.
func New() *Graph {
	return graph.New()
}
