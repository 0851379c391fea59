package nn

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// Parameter manages a trainable tensor: its value and its accumulated
// gradient, both on a fixed device. Parameters live outside any graph;
// the ParameterInput operation bridges a parameter into a computation and
// backward passes accumulate into its gradient.
type Parameter struct {
	shape  tensor.Shape
	device tensor.Device
	value  tensor.Tensor
	grad   tensor.Tensor
}

// NewParameter creates a parameter with zero value and gradient.
// The shape must have batch size 1: a parameter is one set of weights, not
// a mini-batch.
func NewParameter(shape tensor.Shape, device tensor.Device) (*Parameter, error) {
	if shape.BatchSize() != 1 {
		return nil, errors.Errorf("nn: parameter shape %s must have batch size 1", shape)
	}
	return &Parameter{
		shape:  shape,
		device: device,
		value:  device.NewTensor(shape),
		grad:   device.NewTensor(shape),
	}, nil
}

// Shape returns the parameter's shape.
func (p *Parameter) Shape() tensor.Shape {
	return p.shape
}

// Device returns the device managing the parameter's memory.
func (p *Parameter) Device() tensor.Device {
	return p.device
}

// Value returns the parameter's value tensor.
func (p *Parameter) Value() *tensor.Tensor {
	return &p.value
}

// Gradient returns the parameter's accumulated gradient tensor.
func (p *Parameter) Gradient() *tensor.Tensor {
	return &p.grad
}

// ResetValue sets all values using the given initializer.
func (p *Parameter) ResetValue(init Initializer) {
	init.Apply(p.value)
}

// ResetGradient sets all gradients to 0. Call between training steps so
// AddGradient accumulation starts fresh.
func (p *Parameter) ResetGradient() {
	data := p.grad.Data()
	for i := range data {
		data[i] = 0
	}
}

// AddValue performs value += diff.
func (p *Parameter) AddValue(diff tensor.Tensor) {
	p.device.AddAssign(p.value, diff)
}

// AddGradient performs grad += diff.
func (p *Parameter) AddGradient(diff tensor.Tensor) {
	p.device.AddAssign(p.grad, diff)
}
