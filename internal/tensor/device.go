package tensor

// Device is the compute capability consumed by tensors and the graph engine.
// A device allocates tensors and supplies the value-semantics kernels the
// operations are built from.
//
// Binary kernels require both operands to have identical dimensions and
// compatible batch sizes (equal, or either 1); an operand with batch size 1
// is broadcast across the other's mini-batch. All kernels return freshly
// allocated tensors except AddAssign, which accumulates in place.
//
// Implementations:
//   - cpu: pure Go kernels, parallelized across the mini-batch
//   - webgpu: WGSL compute shaders via go-webgpu (Windows)
type Device interface {
	// NewTensor allocates a zero-filled tensor.
	NewTensor(shape Shape) Tensor

	// Constant returns a tensor filled with k. Used by the graph engine to
	// seed gradients with ones and zeros.
	Constant(shape Shape, k float32) Tensor

	// Element-wise binary kernels with batch broadcasting.
	Add(a, b Tensor) Tensor
	Sub(a, b Tensor) Tensor
	Mul(a, b Tensor) Tensor
	Div(a, b Tensor) Tensor

	// Element-wise unary kernels.
	Neg(x Tensor) Tensor
	Exp(x Tensor) Tensor
	Tanh(x Tensor) Tensor
	Sigmoid(x Tensor) Tensor
	ReLU(x Tensor) Tensor

	// Scalar kernels.
	AddConst(x Tensor, k float32) Tensor
	MulConst(x Tensor, k float32) Tensor

	// MatMul multiplies matrices per sample: [n,m]xk @ [m,p]xk -> [n,p]xk,
	// with batch broadcasting between the operands.
	MatMul(a, b Tensor) Tensor

	// Transpose swaps the first two axes per sample: [n,m]xk -> [m,n]xk.
	Transpose(x Tensor) Tensor

	// AddAssign accumulates src into dst in place. When dst has batch size 1
	// and src does not, the samples of src are summed into dst; this is the
	// accumulation rule for gradients flowing into broadcast arguments.
	AddAssign(dst Tensor, src Tensor)

	// Name identifies the device in diagnostics.
	Name() string
}
