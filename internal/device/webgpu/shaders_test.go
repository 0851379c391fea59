//go:build windows

package webgpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBinaryShader tests operator substitution into the binary template.
func TestBinaryShader(t *testing.T) {
	for _, op := range []string{"+", "-", "*", "/"} {
		code := binaryShader(op)
		assert.Contains(t, code, "a[idx] "+op+" b[idx]")
		assert.Contains(t, code, "@workgroup_size(256)")
		assert.False(t, strings.Contains(code, "%s"))
	}
}

// TestUnaryShader tests expression substitution into the unary template.
func TestUnaryShader(t *testing.T) {
	code := unaryShader("exp(x)")
	assert.Contains(t, code, "exp(x)")
	assert.False(t, strings.Contains(code, "%s"))

	// The scalar parameter stays addressable for AddConst/MulConst kernels.
	code = unaryShader("x * params.k")
	assert.Contains(t, code, "params.k")
}

// TestMatrixShaders tests that the fixed shaders declare their parameters.
func TestMatrixShaders(t *testing.T) {
	assert.Contains(t, matmulShader, "@workgroup_size(16, 16)")
	assert.Contains(t, transposeShader, "@workgroup_size(16, 16)")
}
