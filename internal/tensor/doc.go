// Package tensor provides the shape, tensor, and device types shared by the
// Ember graph engine and its operations.
//
// Shapes follow a batched model: a shape is an ordered list of positive
// dimensions plus a batch size k, with trailing size-1 dimensions stripped.
// Tensors are float32 values owned by a Device, which supplies all kernels.
package tensor
