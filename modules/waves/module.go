// Package waves registers periodic signal targets: plain, damped and beating sine waves.
package waves

import (
	"math"

	"github.com/specialistvlad/sweepkit/internal/registry"
)

// Name is the module name used in configuration files.
const Name = "waves"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Sine returns amplitude * sin(2*pi*frequency*t + phase).
func Sine(t, frequency, amplitude, phase float64) float64 {
	return amplitude * math.Sin(2*math.Pi*frequency*t+phase)
}

// DampedSine returns a sine wave with an exponentially decaying envelope.
func DampedSine(t, frequency, damping, amplitude float64) float64 {
	return amplitude * math.Exp(-damping*t) * math.Sin(2*math.Pi*frequency*t)
}

// Beat returns the superposition of two sine waves of equal amplitude.
func Beat(t, f1, f2, amplitude float64) float64 {
	return amplitude * (math.Sin(2*math.Pi*f1*t) + math.Sin(2*math.Pi*f2*t))
}

// Register registers the wave targets.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Target{
		Module:      Name,
		Name:        "sine",
		Description: "amplitude * sin(2*pi*frequency*t + phase)",
		Params: []registry.Param{
			registry.Number("t"),
			registry.NumberDefault("frequency", 1),
			registry.NumberDefault("amplitude", 1),
			registry.NumberDefault("phase", 0),
		},
		Fn: registry.NumberFn(func(a []float64) (float64, bool) {
			return Sine(a[0], a[1], a[2], a[3]), true
		}),
	})

	r.Register(&registry.Target{
		Module:      Name,
		Name:        "damped_sine",
		Description: "amplitude * exp(-damping*t) * sin(2*pi*frequency*t)",
		Params: []registry.Param{
			registry.Number("t"),
			registry.NumberDefault("frequency", 1),
			registry.NumberDefault("damping", 0.1),
			registry.NumberDefault("amplitude", 1),
		},
		Fn: registry.NumberFn(func(a []float64) (float64, bool) {
			return DampedSine(a[0], a[1], a[2], a[3]), true
		}),
	})

	r.Register(&registry.Target{
		Module:      Name,
		Name:        "beat",
		Description: "sum of two sine waves at f1 and f2",
		Params: []registry.Param{
			registry.Number("t"),
			registry.NumberDefault("f1", 1),
			registry.NumberDefault("f2", 1.1),
			registry.NumberDefault("amplitude", 1),
		},
		Fn: registry.NumberFn(func(a []float64) (float64, bool) {
			return Beat(a[0], a[1], a[2], a[3]), true
		}),
	})
}
