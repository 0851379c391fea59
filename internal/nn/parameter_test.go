package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/device/cpu"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// TestNewParameter tests construction and the batch-size restriction.
func TestNewParameter(t *testing.T) {
	dev := cpu.New()

	p, err := nn.NewParameter(tensor.ShapeOf(2, 3), dev)
	require.NoError(t, err)
	assert.True(t, p.Shape().Equal(tensor.ShapeOf(2, 3)))
	assert.Equal(t, dev, p.Device())
	assert.Len(t, p.Value().Data(), 6)
	assert.Len(t, p.Gradient().Data(), 6)

	batchShape, err := tensor.NewShape([]int{2}, 4)
	require.NoError(t, err)
	_, err = nn.NewParameter(batchShape, dev)
	assert.Error(t, err)
}

// TestParameter_ResetValue tests initializer application.
func TestParameter_ResetValue(t *testing.T) {
	dev := cpu.New()
	p, err := nn.NewParameter(tensor.ShapeOf(3), dev)
	require.NoError(t, err)

	p.ResetValue(nn.Constant{Value: 0.5})
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, p.Value().Data())
}

// TestParameter_GradientAccumulation tests AddGradient and ResetGradient.
func TestParameter_GradientAccumulation(t *testing.T) {
	dev := cpu.New()
	p, err := nn.NewParameter(tensor.ShapeOf(2), dev)
	require.NoError(t, err)

	diff, err := tensor.FromSlice(tensor.ShapeOf(2), []float32{1, 2}, dev)
	require.NoError(t, err)
	p.AddGradient(diff)
	p.AddGradient(diff)
	assert.Equal(t, []float32{2, 4}, p.Gradient().Data())

	p.ResetGradient()
	assert.Equal(t, []float32{0, 0}, p.Gradient().Data())
}

// TestParameter_AddGradientFoldsBatch tests that a mini-batch gradient folds
// into the single parameter sample.
func TestParameter_AddGradientFoldsBatch(t *testing.T) {
	dev := cpu.New()
	p, err := nn.NewParameter(tensor.ShapeOf(2), dev)
	require.NoError(t, err)

	shape, err := tensor.NewShape([]int{2}, 2)
	require.NoError(t, err)
	diff, err := tensor.FromSlice(shape, []float32{1, 2, 3, 4}, dev)
	require.NoError(t, err)

	p.AddGradient(diff)
	assert.Equal(t, []float32{4, 6}, p.Gradient().Data())
}

// TestParameter_AddValue tests in-place value updates.
func TestParameter_AddValue(t *testing.T) {
	dev := cpu.New()
	p, err := nn.NewParameter(tensor.ShapeOf(2), dev)
	require.NoError(t, err)
	p.ResetValue(nn.Constant{Value: 1})

	diff, err := tensor.FromSlice(tensor.ShapeOf(2), []float32{0.5, -0.5}, dev)
	require.NoError(t, err)
	p.AddValue(diff)
	assert.Equal(t, []float32{1.5, 0.5}, p.Value().Data())
}
