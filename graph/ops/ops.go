// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides the public API for the built-in graph operations.
//
// Example:
//
//	a, _ := g.AddFunction(ops.NewInput(x))
//	w, _ := g.AddFunction(ops.NewParameterInput(param))
//	h, _ := g.AddFunction(ops.NewMatMul(), w, a)
//	y, _ := g.AddFunction(ops.NewTanh(), h)
package ops

import (
	internalops "github.com/ember-ml/ember/internal/graph/ops"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// ErrIncompatibleShapes is returned by shape inference when an operation
// rejects its argument shapes. Test with errors.Is.
var ErrIncompatibleShapes = internalops.ErrIncompatibleShapes

// NewInput creates a graph leaf supplying an externally provided tensor.
func NewInput(t tensor.Tensor) *internalops.Input {
	return internalops.NewInput(t)
}

// NewParameterInput creates a graph leaf bound to a trainable parameter.
func NewParameterInput(p *nn.Parameter) *internalops.ParameterInput {
	return internalops.NewParameterInput(p)
}

// NewAdd creates an element-wise addition operation.
func NewAdd() *internalops.Add { return internalops.NewAdd() }

// NewSub creates an element-wise subtraction operation.
func NewSub() *internalops.Sub { return internalops.NewSub() }

// NewMul creates an element-wise multiplication operation.
func NewMul() *internalops.Mul { return internalops.NewMul() }

// NewDiv creates an element-wise division operation.
func NewDiv() *internalops.Div { return internalops.NewDiv() }

// NewAddConst creates an operation adding the constant k to every element.
func NewAddConst(k float32) *internalops.AddConst { return internalops.NewAddConst(k) }

// NewMulConst creates an operation multiplying every element by k.
func NewMulConst(k float32) *internalops.MulConst { return internalops.NewMulConst(k) }

// NewNeg creates an element-wise negation operation.
func NewNeg() *internalops.Neg { return internalops.NewNeg() }

// NewExp creates an element-wise exponential operation.
func NewExp() *internalops.Exp { return internalops.NewExp() }

// NewTanh creates an element-wise hyperbolic tangent operation.
func NewTanh() *internalops.Tanh { return internalops.NewTanh() }

// NewSigmoid creates an element-wise logistic operation.
func NewSigmoid() *internalops.Sigmoid { return internalops.NewSigmoid() }

// NewReLU creates an element-wise rectifier operation.
func NewReLU() *internalops.ReLU { return internalops.NewReLU() }

// NewMatMul creates a per-sample matrix multiplication operation.
func NewMatMul() *internalops.MatMul { return internalops.NewMatMul() }

// NewTranspose creates a per-sample transpose operation.
func NewTranspose() *internalops.Transpose { return internalops.NewTranspose() }
