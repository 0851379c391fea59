package nn

import (
	"math"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Initializer sets all values of a tensor using a specific criterion.
type Initializer interface {
	Apply(t tensor.Tensor)
}

// Constant fills the tensor with a fixed value.
type Constant struct {
	Value float32
}

// Apply implements Initializer.
func (c Constant) Apply(t tensor.Tensor) {
	data := t.Data()
	for i := range data {
		data[i] = c.Value
	}
}

// Uniform fills the tensor with values drawn from U(Lower, Upper).
type Uniform struct {
	Lower float32
	Upper float32
}

// Apply implements Initializer.
func (u Uniform) Apply(t tensor.Tensor) {
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand is intentional for weight initialization
		data[i] = u.Lower + rand.Float32()*(u.Upper-u.Lower)
	}
}

// XavierUniform implements Xavier (Glorot) initialization: values drawn from
// U(-b, b) with b = sqrt(6 / (fan_in + fan_out)). Helps maintain activation
// variance across layers.
type XavierUniform struct {
	FanIn  int
	FanOut int
}

// Apply implements Initializer.
func (x XavierUniform) Apply(t tensor.Tensor) {
	bound := float32(math.Sqrt(6.0 / float64(x.FanIn+x.FanOut)))
	Uniform{Lower: -bound, Upper: bound}.Apply(t)
}
