//go:build windows

// Package webgpu implements the GPU compute device on WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/ember-ml/ember/internal/tensor"
)

// Device implements tensor.Device with WGSL compute shaders. Element-wise
// kernels run over whole mini-batch buffers; matrix kernels dispatch per
// sample. Results are read back into host memory, so tensors stay
// host-visible like on the CPU device.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex
}

// New creates a new WebGPU device.
// Returns an error if WebGPU is not available or initialization fails.
func New() (dev *Device, err error) {
	// Recover from panic if the wgpu native library is not found.
	defer func() {
		if r := recover(); r != nil {
			dev = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Device{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

// IsAvailable checks if WebGPU can be initialized on the current system.
func IsAvailable() bool {
	d, err := New()
	if err != nil {
		return false
	}
	d.Release()
	return true
}

// Release frees all GPU resources held by the device.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.pipelines {
		p.Release()
	}
	for _, s := range d.shaders {
		s.Release()
	}
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}

// Name returns the device name.
func (d *Device) Name() string {
	return "WebGPU"
}

// NewTensor allocates a zero-filled tensor.
func (d *Device) NewTensor(shape tensor.Shape) tensor.Tensor {
	return tensor.New(shape, d)
}

// Constant returns a tensor filled with k. Filling is cheaper on the host
// than a dispatch plus readback.
func (d *Device) Constant(shape tensor.Shape, k float32) tensor.Tensor {
	t := tensor.New(shape, d)
	data := t.Data()
	for i := range data {
		data[i] = k
	}
	return t
}

// compileShader compiles WGSL shader code into a ShaderModule, cached by name.
func (d *Device) compileShader(name, code string) *wgpu.ShaderModule {
	d.mu.RLock()
	if shader, exists := d.shaders[name]; exists {
		d.mu.RUnlock()
		return shader
	}
	d.mu.RUnlock()

	shader := d.device.CreateShaderModuleWGSL(code)

	d.mu.Lock()
	d.shaders[name] = shader
	d.mu.Unlock()
	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates one.
func (d *Device) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	d.mu.RLock()
	if pipeline, exists := d.pipelines[name]; exists {
		d.mu.RUnlock()
		return pipeline
	}
	d.mu.RUnlock()

	pipeline := d.device.CreateComputePipelineSimple(nil, shader, "main")

	d.mu.Lock()
	d.pipelines[name] = pipeline
	d.mu.Unlock()
	return pipeline
}

// createBuffer creates a storage buffer initialized with data.
func (d *Device) createBuffer(data []float32, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data) * 4)
	buffer := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, size)
	mapped := unsafe.Slice((*float32)(mappedPtr), len(data))
	copy(mapped, data)
	buffer.Unmap()
	return buffer
}

// createUniformBuffer creates a 16-byte-aligned uniform buffer.
func (d *Device) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15
	buffer := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	mapped := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mapped, data)
	buffer.Unmap()
	return buffer
}

// readBuffer reads a result buffer back into dst via a staging buffer.
func (d *Device) readBuffer(src *wgpu.Buffer, dst []float32) {
	size := uint64(len(dst) * 4)
	staging := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := d.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	d.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(d.device, wgpu.MapModeRead, 0, size); err != nil {
		panic(fmt.Sprintf("webgpu: failed to map staging buffer: %v", err))
	}
	mappedPtr := staging.GetMappedRange(0, size)
	mapped := unsafe.Slice((*float32)(mappedPtr), len(dst))
	copy(dst, mapped)
	staging.Unmap()
}

// dispatch runs a compiled pipeline over the given bind group entries.
func (d *Device) dispatch(pipeline *wgpu.ComputePipeline, entries []wgpu.BindGroupEntry, x, y uint32) {
	layout := pipeline.GetBindGroupLayout(0)
	bindGroup := d.device.CreateBindGroupSimple(layout, entries)
	defer bindGroup.Release()

	encoder := d.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(x, y, 1)
	pass.End()
	d.queue.Submit(encoder.Finish(nil))
}

// expandBatch repeats a batch-1 tensor k times so binary kernels can run
// over equally sized buffers.
func (d *Device) expandBatch(t tensor.Tensor, k int) tensor.Tensor {
	if t.Shape().BatchSize() == k {
		return t
	}
	out := tensor.New(t.Shape().ResizeBatch(k), d)
	src := t.Sample(0)
	for s := 0; s < k; s++ {
		copy(out.Sample(s), src)
	}
	return out
}

// runBinary executes an element-wise binary kernel over whole buffers.
func (d *Device) runBinary(name, opSym string, a, b tensor.Tensor) tensor.Tensor {
	if !a.Shape().HasSameDims(b.Shape()) || !a.Shape().HasCompatibleBatch(b.Shape()) {
		panic(fmt.Sprintf("webgpu: %s kernel on incompatible shapes %s and %s", name, a.Shape(), b.Shape()))
	}
	k := a.Shape().BatchSize()
	if b.Shape().BatchSize() > k {
		k = b.Shape().BatchSize()
	}
	a = d.expandBatch(a, k)
	b = d.expandBatch(b, k)

	shader := d.compileShader(name, binaryShader(opSym))
	pipeline := d.getOrCreatePipeline(name, shader)

	out := tensor.New(a.Shape(), d)
	n := len(out.Data())
	size := uint64(n * 4)

	bufA := d.createBuffer(a.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()
	bufB := d.createBuffer(b.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()
	bufOut := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer bufOut.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	bufParams := d.createUniformBuffer(params)
	defer bufParams.Release()

	workgroups := uint32((n + workgroupSize - 1) / workgroupSize)
	d.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufA, 0, size),
		wgpu.BufferBindingEntry(1, bufB, 0, size),
		wgpu.BufferBindingEntry(2, bufOut, 0, size),
		wgpu.BufferBindingEntry(3, bufParams, 0, 16),
	}, workgroups, 1)

	d.readBuffer(bufOut, out.Data())
	return out
}

// runUnary executes an element-wise unary kernel; k is passed to the shader
// as the optional scalar parameter.
func (d *Device) runUnary(name, expr string, x tensor.Tensor, k float32) tensor.Tensor {
	shader := d.compileShader(name, unaryShader(expr))
	pipeline := d.getOrCreatePipeline(name, shader)

	out := tensor.New(x.Shape(), d)
	n := len(out.Data())
	size := uint64(n * 4)

	bufIn := d.createBuffer(x.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufIn.Release()
	bufOut := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer bufOut.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(k))
	bufParams := d.createUniformBuffer(params)
	defer bufParams.Release()

	workgroups := uint32((n + workgroupSize - 1) / workgroupSize)
	d.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufIn, 0, size),
		wgpu.BufferBindingEntry(1, bufOut, 0, size),
		wgpu.BufferBindingEntry(2, bufParams, 0, 16),
	}, workgroups, 1)

	d.readBuffer(bufOut, out.Data())
	return out
}

// Add performs element-wise addition.
func (d *Device) Add(a, b tensor.Tensor) tensor.Tensor {
	return d.runBinary("add", "+", a, b)
}

// Sub performs element-wise subtraction.
func (d *Device) Sub(a, b tensor.Tensor) tensor.Tensor {
	return d.runBinary("sub", "-", a, b)
}

// Mul performs element-wise multiplication.
func (d *Device) Mul(a, b tensor.Tensor) tensor.Tensor {
	return d.runBinary("mul", "*", a, b)
}

// Div performs element-wise division.
func (d *Device) Div(a, b tensor.Tensor) tensor.Tensor {
	return d.runBinary("div", "/", a, b)
}

// Neg negates every element.
func (d *Device) Neg(x tensor.Tensor) tensor.Tensor {
	return d.runUnary("neg", "-x", x, 0)
}

// Exp computes the element-wise exponential.
func (d *Device) Exp(x tensor.Tensor) tensor.Tensor {
	return d.runUnary("exp", "exp(x)", x, 0)
}

// Tanh computes the element-wise hyperbolic tangent.
func (d *Device) Tanh(x tensor.Tensor) tensor.Tensor {
	return d.runUnary("tanh", "tanh(x)", x, 0)
}

// Sigmoid computes the element-wise logistic function.
func (d *Device) Sigmoid(x tensor.Tensor) tensor.Tensor {
	return d.runUnary("sigmoid", "1.0 / (1.0 + exp(-x))", x, 0)
}

// ReLU computes element-wise max(0, x).
func (d *Device) ReLU(x tensor.Tensor) tensor.Tensor {
	return d.runUnary("relu", "max(x, 0.0)", x, 0)
}

// AddConst adds k to every element.
func (d *Device) AddConst(x tensor.Tensor, k float32) tensor.Tensor {
	return d.runUnary("addconst", "x + params.k", x, k)
}

// MulConst multiplies every element by k.
func (d *Device) MulConst(x tensor.Tensor, k float32) tensor.Tensor {
	return d.runUnary("mulconst", "x * params.k", x, k)
}

// MatMul multiplies matrices per sample with batch broadcasting.
func (d *Device) MatMul(a, b tensor.Tensor) tensor.Tensor {
	m := a.Shape().Dim(0)
	inner := a.Shape().Dim(1)
	n := b.Shape().Dim(1)
	if b.Shape().Dim(0) != inner || !a.Shape().HasCompatibleBatch(b.Shape()) {
		panic(fmt.Sprintf("webgpu: matmul kernel on incompatible shapes %s and %s", a.Shape(), b.Shape()))
	}
	k := a.Shape().BatchSize()
	if b.Shape().BatchSize() > k {
		k = b.Shape().BatchSize()
	}

	outShape, err := tensor.NewShape([]int{m, n}, k)
	if err != nil {
		panic(err)
	}
	out := tensor.New(outShape, d)

	shader := d.compileShader("matmul", matmulShader)
	pipeline := d.getOrCreatePipeline("matmul", shader)

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(m))
	binary.LittleEndian.PutUint32(params[4:8], uint32(inner))
	binary.LittleEndian.PutUint32(params[8:12], uint32(n))

	for s := 0; s < k; s++ {
		lhs := a.Sample(s % a.Shape().BatchSize())
		rhs := b.Sample(s % b.Shape().BatchSize())

		bufA := d.createBuffer(lhs, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		bufB := d.createBuffer(rhs, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		resultSize := uint64(m * n * 4)
		bufOut := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
			Size:  resultSize,
		})
		bufParams := d.createUniformBuffer(params)

		d.dispatch(pipeline, []wgpu.BindGroupEntry{
			wgpu.BufferBindingEntry(0, bufA, 0, uint64(len(lhs)*4)),
			wgpu.BufferBindingEntry(1, bufB, 0, uint64(len(rhs)*4)),
			wgpu.BufferBindingEntry(2, bufOut, 0, resultSize),
			wgpu.BufferBindingEntry(3, bufParams, 0, 16),
		}, uint32((n+15)/16), uint32((m+15)/16))

		d.readBuffer(bufOut, out.Sample(s))

		bufParams.Release()
		bufOut.Release()
		bufB.Release()
		bufA.Release()
	}
	return out
}

// Transpose swaps the first two axes per sample.
func (d *Device) Transpose(x tensor.Tensor) tensor.Tensor {
	rows := x.Shape().Dim(0)
	cols := x.Shape().Dim(1)
	k := x.Shape().BatchSize()
	outShape, err := tensor.NewShape([]int{cols, rows}, k)
	if err != nil {
		panic(err)
	}
	out := tensor.New(outShape, d)

	shader := d.compileShader("transpose", transposeShader)
	pipeline := d.getOrCreatePipeline("transpose", shader)

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(rows))
	binary.LittleEndian.PutUint32(params[4:8], uint32(cols))

	size := uint64(rows * cols * 4)
	for s := 0; s < k; s++ {
		bufIn := d.createBuffer(x.Sample(s), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		bufOut := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
			Size:  size,
		})
		bufParams := d.createUniformBuffer(params)

		d.dispatch(pipeline, []wgpu.BindGroupEntry{
			wgpu.BufferBindingEntry(0, bufIn, 0, size),
			wgpu.BufferBindingEntry(1, bufOut, 0, size),
			wgpu.BufferBindingEntry(2, bufParams, 0, 16),
		}, uint32((cols+15)/16), uint32((rows+15)/16))

		d.readBuffer(bufOut, out.Sample(s))

		bufParams.Release()
		bufOut.Release()
		bufIn.Release()
	}
	return out
}

// AddAssign accumulates src into dst in place; tensors are host-visible so
// accumulation stays on the CPU. A batch-1 destination folds the samples of
// src by summation; a batch-1 source is broadcast.
func (d *Device) AddAssign(dst tensor.Tensor, src tensor.Tensor) {
	if !dst.Shape().HasSameDims(src.Shape()) || !dst.Shape().HasCompatibleBatch(src.Shape()) {
		panic(fmt.Sprintf("webgpu: add-assign kernel on incompatible shapes %s and %s", dst.Shape(), src.Shape()))
	}
	dk := dst.Shape().BatchSize()
	sk := src.Shape().BatchSize()
	switch {
	case dk == sk:
		a := dst.Data()
		b := src.Data()
		for i := range a {
			a[i] += b[i]
		}
	case dk == 1:
		a := dst.Sample(0)
		for s := 0; s < sk; s++ {
			b := src.Sample(s)
			for i := range a {
				a[i] += b[i]
			}
		}
	default: // sk == 1
		b := src.Sample(0)
		for s := 0; s < dk; s++ {
			a := dst.Sample(s)
			for i := range a {
				a[i] += b[i]
			}
		}
	}
}
