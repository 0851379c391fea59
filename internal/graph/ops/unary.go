package ops

import "github.com/ember-ml/ember/internal/tensor"

// Neg is element-wise negation: out = -x.
type Neg struct{}

// NewNeg creates a negation operation.
func NewNeg() *Neg {
	return &Neg{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Neg) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary("Neg", args)
}

// Forward computes -x.
func (op *Neg) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Neg(*args[0])
}

// Backward: d(-x)/dx = -1.
func (op *Neg) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], dev.Neg(*outGrad))
}

// Name returns the operation name.
func (op *Neg) Name() string {
	return "Neg"
}

// Exp is the element-wise exponential: out = exp(x).
type Exp struct{}

// NewExp creates an exponential operation.
func NewExp() *Exp {
	return &Exp{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Exp) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary("Exp", args)
}

// Forward computes exp(x).
func (op *Exp) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Exp(*args[0])
}

// Backward: d(exp(x))/dx = exp(x) = out.
func (op *Exp) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	dev.AddAssign(*argGrads[0], dev.Mul(*outGrad, *out))
}

// Name returns the operation name.
func (op *Exp) Name() string {
	return "Exp"
}

// Tanh is the element-wise hyperbolic tangent.
type Tanh struct{}

// NewTanh creates a tanh operation.
func NewTanh() *Tanh {
	return &Tanh{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Tanh) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary("Tanh", args)
}

// Forward computes tanh(x).
func (op *Tanh) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Tanh(*args[0])
}

// Backward: d(tanh(x))/dx = 1 - tanh(x)^2 = 1 - out^2.
func (op *Tanh) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	one := dev.AddConst(dev.Neg(dev.Mul(*out, *out)), 1)
	dev.AddAssign(*argGrads[0], dev.Mul(*outGrad, one))
}

// Name returns the operation name.
func (op *Tanh) Name() string {
	return "Tanh"
}

// Sigmoid is the element-wise logistic function: out = 1 / (1 + exp(-x)).
type Sigmoid struct{}

// NewSigmoid creates a sigmoid operation.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *Sigmoid) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary("Sigmoid", args)
}

// Forward computes sigmoid(x).
func (op *Sigmoid) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().Sigmoid(*args[0])
}

// Backward: d(sigmoid(x))/dx = out * (1 - out).
func (op *Sigmoid) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	oneMinus := dev.AddConst(dev.Neg(*out), 1)
	dev.AddAssign(*argGrads[0], dev.Mul(*outGrad, dev.Mul(*out, oneMinus)))
}

// Name returns the operation name.
func (op *Sigmoid) Name() string {
	return "Sigmoid"
}

// ReLU is the element-wise rectifier: out = max(0, x).
type ReLU struct{}

// NewReLU creates a ReLU operation.
func NewReLU() *ReLU {
	return &ReLU{}
}

// InferShape validates the argument shapes and returns the result shape.
func (op *ReLU) InferShape(args []tensor.Shape) (tensor.Shape, error) {
	return inferUnary("ReLU", args)
}

// Forward computes max(0, x).
func (op *ReLU) Forward(args []*tensor.Tensor) tensor.Tensor {
	return args[0].Device().ReLU(*args[0])
}

// Backward: the gradient flows only where the input was positive.
func (op *ReLU) Backward(out, outGrad *tensor.Tensor, argValues, argGrads []*tensor.Tensor) {
	dev := outGrad.Device()
	masked := dev.NewTensor(outGrad.Shape())
	x := argValues[0].Data()
	g := outGrad.Data()
	dst := masked.Data()
	for i := range dst {
		if x[i] > 0 {
			dst[i] = g[i]
		}
	}
	dev.AddAssign(*argGrads[0], masked)
}

// Name returns the operation name.
func (op *ReLU) Name() string {
	return "ReLU"
}
