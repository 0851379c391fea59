//go:build windows

// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU compute device backed by WebGPU.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	g := graph.New()
//	x, _ := tensor.FromSlice(shape, data, gpu)
package webgpu

import (
	internalwebgpu "github.com/ember-ml/ember/internal/device/webgpu"
	"github.com/ember-ml/ember/tensor"
)

// Device is the WebGPU device implementation. Kernels run as WGSL compute
// shaders; results are read back into host-visible tensors.
type Device = internalwebgpu.Device

// Compile-time check that Device implements tensor.Device.
var _ tensor.Device = (*Device)(nil)

// New creates a new WebGPU device. Call Release when done to free GPU
// resources.
//
// Returns an error if WebGPU initialization fails, e.g. no compatible GPU.
func New() (*Device, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU can be initialized on the current system.
// Useful for graceful fallback to the CPU device:
//
//	var dev tensor.Device = cpu.New()
//	if webgpu.IsAvailable() {
//	    dev, _ = webgpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
