// Package circuits registers targets from basic circuit analysis: RC filter
// response, LC resonance and the efficiency of a two-coil resonant
// wireless power link.
package circuits

import (
	"fmt"
	"math"

	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the module name used in configuration files.
const Name = "circuits"

// Module implements the registry.Module interface for this package.
type Module struct{}

// RCLowpassGain returns the magnitude of a first-order RC low-pass response.
func RCLowpassGain(frequency, resistance, capacitance float64) float64 {
	wrc := 2 * math.Pi * frequency * resistance * capacitance
	return 1 / math.Sqrt(1+wrc*wrc)
}

// LCResonance returns the resonant frequency in Hz. ok is false for
// non-positive components.
func LCResonance(inductance, capacitance float64) (float64, bool) {
	if inductance <= 0 || capacitance <= 0 {
		return 0, false
	}
	return 1 / (2 * math.Pi * math.Sqrt(inductance*capacitance)), true
}

// WPTEfficiency returns the link efficiency of two magnetically coupled
// resonators with coupling k, unloaded quality factors q1 and q2, and a load
// equal to loadRatio times the receiver coil resistance.
func WPTEfficiency(k, q1, q2, loadRatio float64) (float64, bool) {
	if k < 0 || k > 1 || q1 <= 0 || q2 <= 0 || loadRatio <= 0 {
		return 0, false
	}
	fom := k * k * q1 * q2
	a := loadRatio
	return fom * a / ((1 + a) * (1 + a + fom)), true
}

// OptimalLoadRatio returns the load ratio that maximizes WPTEfficiency.
func OptimalLoadRatio(k, q1, q2 float64) (float64, bool) {
	if k < 0 || k > 1 || q1 <= 0 || q2 <= 0 {
		return 0, false
	}
	return math.Sqrt(1 + k*k*q1*q2), true
}

// Register registers the circuit targets.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Target{
		Module:      Name,
		Name:        "rc_lowpass_gain",
		Description: "|H(f)| of an RC low-pass filter, linear or in dB",
		Params: []registry.Param{
			registry.Number("frequency"),
			registry.NumberDefault("resistance", 1000),
			registry.NumberDefault("capacitance", 1e-6),
			registry.StringDefault("unit", "linear"),
		},
		Fn: rcLowpassGain,
	})

	r.Register(&registry.Target{
		Module:      Name,
		Name:        "lc_resonance",
		Description: "1 / (2*pi*sqrt(L*C))",
		Params: []registry.Param{
			registry.Number("inductance"),
			registry.Number("capacitance"),
		},
		Fn: registry.NumberFn(func(a []float64) (float64, bool) {
			return LCResonance(a[0], a[1])
		}),
	})

	r.Register(&registry.Target{
		Module:      Name,
		Name:        "wpt_efficiency",
		Description: "two-coil resonant link efficiency",
		Params: []registry.Param{
			registry.Number("coupling"),
			registry.NumberDefault("q1", 100),
			registry.NumberDefault("q2", 100),
			registry.NumberDefault("load_ratio", 1),
		},
		Fn: registry.NumberFn(func(a []float64) (float64, bool) {
			return WPTEfficiency(a[0], a[1], a[2], a[3])
		}),
	})

	r.Register(&registry.Target{
		Module:      Name,
		Name:        "optimal_load_ratio",
		Description: "load ratio that maximizes wpt_efficiency, sqrt(1 + k^2*Q1*Q2)",
		Params: []registry.Param{
			registry.Number("coupling"),
			registry.NumberDefault("q1", 100),
			registry.NumberDefault("q2", 100),
		},
		Fn: registry.NumberFn(func(a []float64) (float64, bool) {
			return OptimalLoadRatio(a[0], a[1], a[2])
		}),
	})
}

func rcLowpassGain(args []cty.Value) (cty.Value, error) {
	unit := args[3]
	if unit.IsNull() || unit.Type() != cty.String {
		return cty.NilVal, fmt.Errorf("unit must be a string")
	}

	gain := registry.NumberFn(func(a []float64) (float64, bool) {
		return RCLowpassGain(a[0], a[1], a[2]), true
	})
	out, err := gain(args[:3])
	if err != nil || out.IsNull() {
		return out, err
	}

	switch unit.AsString() {
	case "linear":
		return out, nil
	case "db":
		f, _ := out.AsBigFloat().Float64()
		return cty.NumberFloatVal(20 * math.Log10(f)), nil
	default:
		return cty.NilVal, fmt.Errorf("unknown unit %q (want linear or db)", unit.AsString())
	}
}
