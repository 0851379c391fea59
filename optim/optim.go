// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for the Ember optimizers.
//
// Example:
//
//	opt := optim.NewAdam(optim.AdamConfig{})
//	opt.AddParameter(w)
//
//	for step := 0; step < steps; step++ {
//	    opt.ResetGradients()
//	    // ... Forward, Backward ...
//	    opt.Update(1)
//	}
package optim

import (
	"github.com/ember-ml/ember/internal/optim"
)

// Optimizer is the base contract for all optimization algorithms.
type Optimizer = optim.Optimizer

// SGD implements plain stochastic gradient descent.
type SGD = optim.SGD

// SGDConfig holds configuration for SGD.
type SGDConfig = optim.SGDConfig

// Adam implements the Adam optimizer.
type Adam = optim.Adam

// AdamConfig holds configuration for Adam.
type AdamConfig = optim.AdamConfig

// Compile-time checks that the implementations satisfy Optimizer.
var (
	_ Optimizer = (*SGD)(nil)
	_ Optimizer = (*Adam)(nil)
)

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
