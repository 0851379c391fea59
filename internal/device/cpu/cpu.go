// Package cpu implements the pure Go compute device.
package cpu

import (
	"fmt"
	"math"

	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// Device implements tensor.Device with pure Go kernels.
// Kernels parallelize across the mini-batch using the parallel helper.
type Device struct {
	cfg parallel.Config
}

// New creates a new CPU device with default parallelism.
func New() *Device {
	return &Device{cfg: parallel.DefaultConfig()}
}

// Name returns the device name.
func (d *Device) Name() string {
	return "CPU"
}

// NewTensor allocates a zero-filled tensor.
func (d *Device) NewTensor(shape tensor.Shape) tensor.Tensor {
	return tensor.New(shape, d)
}

// Constant returns a tensor filled with k.
func (d *Device) Constant(shape tensor.Shape, k float32) tensor.Tensor {
	t := tensor.New(shape, d)
	data := t.Data()
	for i := range data {
		data[i] = k
	}
	return t
}

// checkBinary validates operand shapes for an element-wise binary kernel.
// Shape inference has already accepted the operation, so a violation here is
// an engine bug.
func checkBinary(op string, a, b tensor.Tensor) {
	if !a.Shape().HasSameDims(b.Shape()) || !a.Shape().HasCompatibleBatch(b.Shape()) {
		panic(fmt.Sprintf("cpu: %s kernel on incompatible shapes %s and %s", op, a.Shape(), b.Shape()))
	}
}

// binary applies f element-wise with batch broadcasting.
func (d *Device) binary(op string, a, b tensor.Tensor, f func(x, y float32) float32) tensor.Tensor {
	checkBinary(op, a, b)

	k := a.Shape().BatchSize()
	if b.Shape().BatchSize() > k {
		k = b.Shape().BatchSize()
	}
	out := tensor.New(a.Shape().ResizeBatch(k), d)
	n := out.Shape().NumElementsPerSample()

	parallel.ForSamples(k, n, func(s int) {
		src := a.Sample(s % a.Shape().BatchSize())
		other := b.Sample(s % b.Shape().BatchSize())
		dst := out.Sample(s)
		for i := range dst {
			dst[i] = f(src[i], other[i])
		}
	}, d.cfg)
	return out
}

// unary applies f element-wise.
func (d *Device) unary(x tensor.Tensor, f func(v float32) float32) tensor.Tensor {
	out := tensor.New(x.Shape(), d)
	src := x.Data()
	dst := out.Data()
	parallel.For(len(dst), func(i int) {
		dst[i] = f(src[i])
	}, d.cfg)
	return out
}

// Add performs element-wise addition.
func (d *Device) Add(a, b tensor.Tensor) tensor.Tensor {
	return d.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction.
func (d *Device) Sub(a, b tensor.Tensor) tensor.Tensor {
	return d.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication.
func (d *Device) Mul(a, b tensor.Tensor) tensor.Tensor {
	return d.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division.
func (d *Device) Div(a, b tensor.Tensor) tensor.Tensor {
	return d.binary("div", a, b, func(x, y float32) float32 { return x / y })
}

// Neg negates every element.
func (d *Device) Neg(x tensor.Tensor) tensor.Tensor {
	return d.unary(x, func(v float32) float32 { return -v })
}

// Exp computes the element-wise exponential.
func (d *Device) Exp(x tensor.Tensor) tensor.Tensor {
	return d.unary(x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
}

// Tanh computes the element-wise hyperbolic tangent.
func (d *Device) Tanh(x tensor.Tensor) tensor.Tensor {
	return d.unary(x, func(v float32) float32 { return float32(math.Tanh(float64(v))) })
}

// Sigmoid computes the element-wise logistic function.
func (d *Device) Sigmoid(x tensor.Tensor) tensor.Tensor {
	return d.unary(x, func(v float32) float32 {
		return float32(1.0 / (1.0 + math.Exp(float64(-v))))
	})
}

// ReLU computes element-wise max(0, x).
func (d *Device) ReLU(x tensor.Tensor) tensor.Tensor {
	return d.unary(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// AddConst adds k to every element.
func (d *Device) AddConst(x tensor.Tensor, k float32) tensor.Tensor {
	return d.unary(x, func(v float32) float32 { return v + k })
}

// MulConst multiplies every element by k.
func (d *Device) MulConst(x tensor.Tensor, k float32) tensor.Tensor {
	return d.unary(x, func(v float32) float32 { return v * k })
}

// MatMul multiplies matrices per sample with batch broadcasting.
// a is [n,m]xka, b is [m,p]xkb; the result is [n,p]xmax(ka,kb).
func (d *Device) MatMul(a, b tensor.Tensor) tensor.Tensor {
	n := a.Shape().Dim(0)
	m := a.Shape().Dim(1)
	p := b.Shape().Dim(1)
	if b.Shape().Dim(0) != m || !a.Shape().HasCompatibleBatch(b.Shape()) {
		panic(fmt.Sprintf("cpu: matmul kernel on incompatible shapes %s and %s", a.Shape(), b.Shape()))
	}

	k := a.Shape().BatchSize()
	if b.Shape().BatchSize() > k {
		k = b.Shape().BatchSize()
	}
	outShape, err := tensor.NewShape([]int{n, p}, k)
	if err != nil {
		panic(err)
	}
	out := tensor.New(outShape, d)

	parallel.ForSamples(k, n*m*p, func(s int) {
		lhs := a.Sample(s % a.Shape().BatchSize())
		rhs := b.Sample(s % b.Shape().BatchSize())
		dst := out.Sample(s)
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				var sum float32
				for l := 0; l < m; l++ {
					sum += lhs[i*m+l] * rhs[l*p+j]
				}
				dst[i*p+j] = sum
			}
		}
	}, d.cfg)
	return out
}

// Transpose swaps the first two axes per sample: [n,m]xk -> [m,n]xk.
func (d *Device) Transpose(x tensor.Tensor) tensor.Tensor {
	n := x.Shape().Dim(0)
	m := x.Shape().Dim(1)
	k := x.Shape().BatchSize()
	outShape, err := tensor.NewShape([]int{m, n}, k)
	if err != nil {
		panic(err)
	}
	out := tensor.New(outShape, d)

	parallel.ForSamples(k, n*m, func(s int) {
		src := x.Sample(s)
		dst := out.Sample(s)
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				dst[j*n+i] = src[i*m+j]
			}
		}
	}, d.cfg)
	return out
}

// AddAssign accumulates src into dst in place. A batch-1 destination folds
// the samples of src by summation; a batch-1 source is broadcast.
func (d *Device) AddAssign(dst tensor.Tensor, src tensor.Tensor) {
	checkBinary("add-assign", dst, src)

	dk := dst.Shape().BatchSize()
	sk := src.Shape().BatchSize()
	switch {
	case dk == sk:
		a := dst.Data()
		b := src.Data()
		parallel.For(len(a), func(i int) {
			a[i] += b[i]
		}, d.cfg)
	case dk == 1:
		// Fold the mini-batch into the single destination sample.
		a := dst.Sample(0)
		for s := 0; s < sk; s++ {
			b := src.Sample(s)
			for i := range a {
				a[i] += b[i]
			}
		}
	default: // sk == 1
		b := src.Sample(0)
		parallel.ForSamples(dk, len(b), func(s int) {
			a := dst.Sample(s)
			for i := range a {
				a[i] += b[i]
			}
		}, d.cfg)
	}
}
