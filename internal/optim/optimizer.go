// Package optim implements optimization algorithms over Ember parameters.
//
// Optimizers consume the gradients that backward passes accumulate into
// nn.Parameter values:
//
//	opt := optim.NewSGD(optim.SGDConfig{Eta: 0.1})
//	opt.AddParameter(w)
//	opt.AddParameter(b)
//
//	for step := 0; step < steps; step++ {
//	    opt.ResetGradients()
//	    // ... build graph, Forward, Backward ...
//	    opt.Update(1)
//	}
//	opt.UpdateEpoch()
package optim

import "github.com/ember-ml/ember/internal/nn"

// Optimizer is the base contract for all optimization algorithms.
type Optimizer interface {
	// AddParameter registers a parameter and allocates any per-parameter
	// state the algorithm needs.
	AddParameter(p *nn.Parameter)

	// Update applies one optimization step to every registered parameter,
	// consuming the gradients currently accumulated in them. scale uniformly
	// scales the step, e.g. to average over a mini-batch.
	Update(scale float32)

	// UpdateEpoch advances epoch-dependent state such as bias correction.
	UpdateEpoch()

	// ResetGradients zeroes the gradients of all registered parameters.
	// Call before each backward pass to prevent stale accumulation.
	ResetGradients()
}

// base holds the registered parameter list shared by the implementations.
type base struct {
	params []*nn.Parameter
}

func (b *base) AddParameter(p *nn.Parameter) {
	b.params = append(b.params, p)
}

func (b *base) ResetGradients() {
	for _, p := range b.params {
		p.ResetGradient()
	}
}
