// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go compute device.
package cpu

import (
	internalcpu "github.com/ember-ml/ember/internal/device/cpu"
	"github.com/ember-ml/ember/tensor"
)

// Device is the CPU device implementation. Kernels parallelize across the
// mini-batch using worker goroutines.
type Device = internalcpu.Device

// Compile-time check that Device implements tensor.Device.
var _ tensor.Device = (*Device)(nil)

// New creates a new CPU device with default parallelism.
//
// Example:
//
//	dev := cpu.New()
//	g := graph.New()
//	x, _ := tensor.FromSlice(tensor.ShapeOf(2), []float32{1, 2}, dev)
func New() *Device {
	return internalcpu.New()
}
