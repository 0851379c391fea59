// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for trainable parameters and their
// initializers.
//
// Example:
//
//	w, _ := nn.NewParameter(tensor.ShapeOf(8, 2), dev)
//	w.ResetValue(nn.XavierUniform{FanIn: 2, FanOut: 8})
package nn

import (
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter manages a trainable tensor: its value and accumulated gradient.
type Parameter = nn.Parameter

// Initializer sets all values of a tensor using a specific criterion.
type Initializer = nn.Initializer

// Constant fills the tensor with a fixed value.
type Constant = nn.Constant

// Uniform fills the tensor with values drawn from U(Lower, Upper).
type Uniform = nn.Uniform

// XavierUniform implements Xavier (Glorot) initialization.
type XavierUniform = nn.XavierUniform

// NewParameter creates a parameter with zero value and gradient.
// The shape must have batch size 1.
func NewParameter(shape tensor.Shape, device tensor.Device) (*Parameter, error) {
	return nn.NewParameter(shape, device)
}
