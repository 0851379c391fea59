// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensors in the Ember framework.
//
// The package defines the core value types shared by every other package:
//   - Shape: dimension list plus mini-batch size
//   - Tensor: batched float32 data owned by a device
//   - Device: interface for device-specific compute kernels
//
// Example:
//
//	dev := cpu.New()
//	s, _ := tensor.NewShape([]int{2, 3}, 8)  // [2,3]x8 mini-batch
//	x := dev.NewTensor(s)
package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Shape describes the dimensionality of a tensor together with its batch
// size. Trailing dimensions of size 1 are never stored, and the zero value
// is the scalar shape.
type Shape = tensor.Shape

// Tensor is a batched float32 value with a shape and an owning device.
// The zero value is the invalid "not yet computed" marker.
type Tensor = tensor.Tensor

// Device is the compute contract implemented by cpu and webgpu devices.
type Device = tensor.Device

// NewShape creates a shape from a dimension list and a batch size.
func NewShape(dims []int, batch int) (Shape, error) {
	return tensor.NewShape(dims, batch)
}

// ShapeOf creates a batch-1 shape from a dimension list, panicking on
// non-positive dimensions. Intended for literal shapes in code.
func ShapeOf(dims ...int) Shape {
	return tensor.ShapeOf(dims...)
}

// New creates a zero-filled tensor on the given device.
func New(shape Shape, device Device) Tensor {
	return tensor.New(shape, device)
}

// FromSlice creates a tensor initialized from data. The slice is copied.
func FromSlice(shape Shape, data []float32, device Device) (Tensor, error) {
	return tensor.FromSlice(shape, data, device)
}
