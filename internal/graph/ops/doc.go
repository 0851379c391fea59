// Package ops provides the built-in operations for the Ember graph engine.
//
// Each operation implements the graph.Operation contract: shape inference at
// construction time, a forward kernel over argument values, and a backward
// kernel that accumulates into argument gradients.
//
// Supported operations:
//   - Input, ParameterInput: graph leaves supplying external data and
//     trainable parameters
//   - Add, Sub, Mul, Div: element-wise arithmetic with batch broadcasting
//   - AddConst, MulConst, Neg: scalar arithmetic
//   - Exp, Tanh, Sigmoid, ReLU: element-wise nonlinearities
//   - MatMul, Transpose: matrix operations
package ops
