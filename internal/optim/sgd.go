package optim

// SGD implements plain stochastic gradient descent:
//
//	value -= scale * eta * gradient
type SGD struct {
	base
	eta float32
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	Eta float32 // Learning rate (default: 0.1)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.Eta == 0 {
		config.Eta = 0.1
	}
	return &SGD{eta: config.Eta}
}

// Eta returns the learning rate.
func (s *SGD) Eta() float32 {
	return s.eta
}

// Update applies one gradient descent step to all registered parameters.
func (s *SGD) Update(scale float32) {
	for _, p := range s.params {
		dev := p.Device()
		p.AddValue(dev.MulConst(*p.Gradient(), -scale*s.eta))
	}
}

// UpdateEpoch is a no-op: SGD has no epoch-dependent state.
func (s *SGD) UpdateEpoch() {
}
