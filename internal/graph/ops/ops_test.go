package ops_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/device/cpu"
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/graph/ops"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// Every operation must satisfy the graph contract.
var (
	_ graph.Operation = (*ops.Input)(nil)
	_ graph.Operation = (*ops.ParameterInput)(nil)
	_ graph.Operation = (*ops.Add)(nil)
	_ graph.Operation = (*ops.Sub)(nil)
	_ graph.Operation = (*ops.Mul)(nil)
	_ graph.Operation = (*ops.Div)(nil)
	_ graph.Operation = (*ops.AddConst)(nil)
	_ graph.Operation = (*ops.MulConst)(nil)
	_ graph.Operation = (*ops.Neg)(nil)
	_ graph.Operation = (*ops.Exp)(nil)
	_ graph.Operation = (*ops.Tanh)(nil)
	_ graph.Operation = (*ops.Sigmoid)(nil)
	_ graph.Operation = (*ops.ReLU)(nil)
	_ graph.Operation = (*ops.MatMul)(nil)
	_ graph.Operation = (*ops.Transpose)(nil)
)

type env struct {
	dev *cpu.Device
	g   *graph.Graph
}

func newEnv() *env {
	return &env{dev: cpu.New(), g: graph.New()}
}

func (e *env) input(t *testing.T, shape tensor.Shape, data []float32) graph.Node {
	t.Helper()
	x, err := tensor.FromSlice(shape, data, e.dev)
	require.NoError(t, err)
	n, err := e.g.AddFunction(ops.NewInput(x))
	require.NoError(t, err)
	return n
}

// value evaluates n and returns its data.
func (e *env) value(t *testing.T, n graph.Node) []float32 {
	t.Helper()
	v, err := e.g.Forward(n)
	require.NoError(t, err)
	return v.Data()
}

// grad runs a backward pass from seed and returns the gradient at n.
func (e *env) grad(t *testing.T, seed, n graph.Node) []float32 {
	t.Helper()
	_, err := e.g.Forward(seed)
	require.NoError(t, err)
	require.NoError(t, e.g.Backward(seed))
	g, err := e.g.Gradient(n)
	require.NoError(t, err)
	return g.Data()
}

func batched(t *testing.T, dims []int, k int) tensor.Shape {
	t.Helper()
	s, err := tensor.NewShape(dims, k)
	require.NoError(t, err)
	return s
}

// TestInput_RoundTrip tests that inputs reproduce their data and isolate the
// graph from later mutation of the source tensor.
func TestInput_RoundTrip(t *testing.T) {
	e := newEnv()
	src, err := tensor.FromSlice(tensor.ShapeOf(3), []float32{1, 2, 3}, e.dev)
	require.NoError(t, err)

	n, err := e.g.AddFunction(ops.NewInput(src))
	require.NoError(t, err)

	src.Data()[0] = 99
	assert.Equal(t, []float32{1, 2, 3}, e.value(t, n))
}

// TestInput_RejectsArguments tests that leaves refuse arguments.
func TestInput_RejectsArguments(t *testing.T) {
	e := newEnv()
	a := e.input(t, tensor.ShapeOf(2), []float32{1, 2})

	x, err := tensor.FromSlice(tensor.ShapeOf(2), []float32{1, 2}, e.dev)
	require.NoError(t, err)
	_, err = e.g.AddFunction(ops.NewInput(x), a)
	assert.True(t, errors.Is(err, ops.ErrIncompatibleShapes))
}

// TestParameterInput_GradientFlow tests that backward passes accumulate into
// the bound parameter across several graphs.
func TestParameterInput_GradientFlow(t *testing.T) {
	dev := cpu.New()
	p, err := nn.NewParameter(tensor.ShapeOf(2), dev)
	require.NoError(t, err)
	p.ResetValue(nn.Constant{Value: 2})

	for pass := 0; pass < 2; pass++ {
		g := graph.New()
		w, err := g.AddFunction(ops.NewParameterInput(p))
		require.NoError(t, err)
		y, err := g.AddFunction(ops.NewMulConst(3), w)
		require.NoError(t, err)

		v, err := g.Forward(y)
		require.NoError(t, err)
		assert.Equal(t, []float32{6, 6}, v.Data())
		require.NoError(t, g.Backward(y))
	}

	// Two passes, each contributing dL/dw = 3.
	assert.Equal(t, []float32{6, 6}, p.Gradient().Data())
}

// TestElementwise_ForwardBackward tests the four arithmetic operations and
// their gradients on the same operands.
func TestElementwise_ForwardBackward(t *testing.T) {
	tests := []struct {
		name  string
		op    func() graph.Operation
		out   []float32
		gradA []float32
		gradB []float32
	}{
		{"Add", func() graph.Operation { return ops.NewAdd() }, []float32{6, 8}, []float32{1, 1}, []float32{1, 1}},
		{"Sub", func() graph.Operation { return ops.NewSub() }, []float32{-4, -4}, []float32{1, 1}, []float32{-1, -1}},
		{"Mul", func() graph.Operation { return ops.NewMul() }, []float32{5, 12}, []float32{5, 6}, []float32{1, 2}},
		{"Div", func() graph.Operation { return ops.NewDiv() }, []float32{0.2, 2.0 / 6.0}, []float32{0.2, 1.0 / 6.0}, []float32{-0.04, -2.0 / 36.0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			a := e.input(t, tensor.ShapeOf(2), []float32{1, 2})
			b := e.input(t, tensor.ShapeOf(2), []float32{5, 6})
			c, err := e.g.AddFunction(tc.op(), a, b)
			require.NoError(t, err)

			out := e.value(t, c)
			for i := range tc.out {
				assert.InDelta(t, tc.out[i], out[i], 1e-6)
			}

			require.NoError(t, e.g.Backward(c))
			gradA, err := e.g.Gradient(a)
			require.NoError(t, err)
			gradB, err := e.g.Gradient(b)
			require.NoError(t, err)
			for i := range tc.gradA {
				assert.InDelta(t, tc.gradA[i], gradA.Data()[i], 1e-6)
				assert.InDelta(t, tc.gradB[i], gradB.Data()[i], 1e-6)
			}
		})
	}
}

// TestElementwise_BatchBroadcastGradient tests that the gradient of a
// batch-1 argument is summed over the mini-batch.
func TestElementwise_BatchBroadcastGradient(t *testing.T) {
	e := newEnv()
	bias := e.input(t, tensor.ShapeOf(2), []float32{1, 1})
	x := e.input(t, batched(t, []int{2}, 3), []float32{1, 2, 3, 4, 5, 6})

	sum, err := e.g.AddFunction(ops.NewAdd(), x, bias)
	require.NoError(t, err)

	s, err := e.g.Shape(sum)
	require.NoError(t, err)
	assert.Equal(t, 3, s.BatchSize())

	// Each of the 3 samples contributes a ones-gradient to the bias.
	assert.Equal(t, []float32{3, 3}, e.grad(t, sum, bias))
}

// TestScalarOps tests AddConst and MulConst forward, backward and naming.
func TestScalarOps(t *testing.T) {
	e := newEnv()
	x := e.input(t, tensor.ShapeOf(2), []float32{1, 2})

	plus, err := e.g.AddFunction(ops.NewAddConst(10), x)
	require.NoError(t, err)
	assert.Equal(t, []float32{11, 12}, e.value(t, plus))

	e2 := newEnv()
	y := e2.input(t, tensor.ShapeOf(2), []float32{1, 2})
	times, err := e2.g.AddFunction(ops.NewMulConst(-2.5), y)
	require.NoError(t, err)
	assert.Equal(t, []float32{-2.5, -5}, e2.value(t, times))
	assert.Equal(t, []float32{-2.5, -2.5}, e2.grad(t, times, y))

	assert.Equal(t, "AddConst(10)", ops.NewAddConst(10).Name())
	assert.Equal(t, "MulConst(-2.5)", ops.NewMulConst(-2.5).Name())
}

// TestUnaryOps_Gradients tests the nonlinearities against their analytic
// derivatives.
func TestUnaryOps_Gradients(t *testing.T) {
	tests := []struct {
		name string
		op   func() graph.Operation
		in   []float32
		out  []float32
		grad []float32
	}{
		{"Neg", func() graph.Operation { return ops.NewNeg() },
			[]float32{1, -2}, []float32{-1, 2}, []float32{-1, -1}},
		{"Exp", func() graph.Operation { return ops.NewExp() },
			[]float32{0, 1}, []float32{1, 2.71828}, []float32{1, 2.71828}},
		{"Tanh", func() graph.Operation { return ops.NewTanh() },
			[]float32{0, 1}, []float32{0, 0.76159}, []float32{1, 0.41997}},
		{"Sigmoid", func() graph.Operation { return ops.NewSigmoid() },
			[]float32{0, 2}, []float32{0.5, 0.88080}, []float32{0.25, 0.10499}},
		{"ReLU", func() graph.Operation { return ops.NewReLU() },
			[]float32{-1, 3}, []float32{0, 3}, []float32{0, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			x := e.input(t, tensor.ShapeOf(len(tc.in)), tc.in)
			y, err := e.g.AddFunction(tc.op(), x)
			require.NoError(t, err)

			out := e.value(t, y)
			for i := range tc.out {
				assert.InDelta(t, tc.out[i], out[i], 1e-4)
			}

			require.NoError(t, e.g.Backward(y))
			grad, err := e.g.Gradient(x)
			require.NoError(t, err)
			for i := range tc.grad {
				assert.InDelta(t, tc.grad[i], grad.Data()[i], 1e-4)
			}
		})
	}
}

// TestMatMul_ForwardBackward tests the matrix product and both argument
// gradients.
func TestMatMul_ForwardBackward(t *testing.T) {
	e := newEnv()
	a := e.input(t, tensor.ShapeOf(2, 3), []float32{1, 2, 3, 4, 5, 6})
	b := e.input(t, tensor.ShapeOf(3, 2), []float32{7, 8, 9, 10, 11, 12})
	c, err := e.g.AddFunction(ops.NewMatMul(), a, b)
	require.NoError(t, err)

	assert.Equal(t, []float32{58, 64, 139, 154}, e.value(t, c))

	require.NoError(t, e.g.Backward(c))

	// dC/dA = ones @ B^T: each row is the column sums of B^T's columns.
	gradA, err := e.g.Gradient(a)
	require.NoError(t, err)
	assert.Equal(t, []float32{15, 19, 23, 15, 19, 23}, gradA.Data())

	// dC/dB = A^T @ ones: each column is the row sums of A^T.
	gradB, err := e.g.Gradient(b)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 5, 7, 7, 9, 9}, gradB.Data())
}

// TestMatMul_ShapeErrors tests inner-dimension and rank validation.
func TestMatMul_ShapeErrors(t *testing.T) {
	e := newEnv()
	a := e.input(t, tensor.ShapeOf(2, 3), make([]float32, 6))
	bad := e.input(t, tensor.ShapeOf(2, 2), make([]float32, 4))
	_, err := e.g.AddFunction(ops.NewMatMul(), a, bad)
	assert.True(t, errors.Is(err, ops.ErrIncompatibleShapes))

	cube := e.input(t, tensor.ShapeOf(2, 2, 2), make([]float32, 8))
	_, err = e.g.AddFunction(ops.NewMatMul(), cube, bad)
	assert.True(t, errors.Is(err, ops.ErrIncompatibleShapes))
}

// TestMatMul_BatchWeightGradient tests a batch-1 weight multiplied against a
// mini-batch: the weight's gradient folds all samples.
func TestMatMul_BatchWeightGradient(t *testing.T) {
	e := newEnv()
	w := e.input(t, tensor.ShapeOf(1, 2), []float32{1, 1})
	x := e.input(t, batched(t, []int{2, 1}, 2), []float32{1, 2, 3, 4})

	y, err := e.g.AddFunction(ops.NewMatMul(), w, x)
	require.NoError(t, err)

	s, err := e.g.Shape(y)
	require.NoError(t, err)
	assert.Equal(t, 2, s.BatchSize())
	assert.Equal(t, 1, s.NumElementsPerSample())

	// dY/dW per sample is x^T; folded over the batch: {1+3, 2+4}.
	assert.Equal(t, []float32{4, 6}, e.grad(t, y, w))
}

// TestTranspose_ForwardBackward tests transpose and its gradient.
func TestTranspose_ForwardBackward(t *testing.T) {
	e := newEnv()
	x := e.input(t, tensor.ShapeOf(2, 3), []float32{1, 2, 3, 4, 5, 6})
	y, err := e.g.AddFunction(ops.NewTranspose(), x)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, e.value(t, y))
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, e.grad(t, y, x))
}

// TestOps_ArityValidation tests that wrong argument counts are rejected
// during shape inference.
func TestOps_ArityValidation(t *testing.T) {
	e := newEnv()
	a := e.input(t, tensor.ShapeOf(2), []float32{1, 2})

	_, err := e.g.AddFunction(ops.NewAdd(), a)
	assert.True(t, errors.Is(err, ops.ErrIncompatibleShapes))

	_, err = e.g.AddFunction(ops.NewNeg(), a, a)
	assert.True(t, errors.Is(err, ops.ErrIncompatibleShapes))
}
