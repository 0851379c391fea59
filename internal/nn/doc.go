// Package nn provides trainable parameters and weight initializers for
// models built on the Ember graph engine.
package nn
