package optim

import (
	"math"

	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/internal/tensor"
)

// Adam implements the Adam optimizer (https://arxiv.org/abs/1412.6980):
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g^2
//	value -= scale * alpha * mhat / (sqrt(vhat) + eps)
//
// with mhat and vhat the bias-corrected moments for the current epoch.
type Adam struct {
	base
	alpha float32
	beta1 float32
	beta2 float32
	eps   float32
	epoch int

	m map[*nn.Parameter]tensor.Tensor // momentum history
	v map[*nn.Parameter]tensor.Tensor // power history
}

// AdamConfig holds configuration for Adam.
type AdamConfig struct {
	Alpha float32 // Learning rate (default: 0.001)
	Beta1 float32 // Decay factor of momentum history (default: 0.9)
	Beta2 float32 // Decay factor of power history (default: 0.999)
	Eps   float32 // Bias of power (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	if config.Alpha == 0 {
		config.Alpha = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		alpha: config.Alpha,
		beta1: config.Beta1,
		beta2: config.Beta2,
		eps:   config.Eps,
		epoch: 1,
		m:     make(map[*nn.Parameter]tensor.Tensor),
		v:     make(map[*nn.Parameter]tensor.Tensor),
	}
}

// Alpha returns the learning rate.
func (a *Adam) Alpha() float32 { return a.alpha }

// Beta1 returns the momentum decay factor.
func (a *Adam) Beta1() float32 { return a.beta1 }

// Beta2 returns the power decay factor.
func (a *Adam) Beta2() float32 { return a.beta2 }

// Eps returns the power bias.
func (a *Adam) Eps() float32 { return a.eps }

// Epoch returns the current epoch.
func (a *Adam) Epoch() int { return a.epoch }

// AddParameter registers a parameter and allocates its moment state.
func (a *Adam) AddParameter(p *nn.Parameter) {
	a.base.AddParameter(p)
	a.m[p] = p.Device().NewTensor(p.Shape())
	a.v[p] = p.Device().NewTensor(p.Shape())
}

// Update applies one Adam step to all registered parameters.
func (a *Adam) Update(scale float32) {
	corr1 := 1 - float32(math.Pow(float64(a.beta1), float64(a.epoch)))
	corr2 := 1 - float32(math.Pow(float64(a.beta2), float64(a.epoch)))

	for _, p := range a.params {
		value := p.Value().Data()
		grad := p.Gradient().Data()
		m := a.m[p].Data()
		v := a.v[p].Data()
		for i, g := range grad {
			m[i] = a.beta1*m[i] + (1-a.beta1)*g
			v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
			mhat := m[i] / corr1
			vhat := v[i] / corr2
			value[i] -= scale * a.alpha * mhat / (float32(math.Sqrt(float64(vhat))) + a.eps)
		}
	}
}

// UpdateEpoch advances the bias-correction epoch.
func (a *Adam) UpdateEpoch() {
	a.epoch++
}
