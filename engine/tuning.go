package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/pulsefield/parameter"
)

// Tuning holds the numeric knobs of the simulation
type Tuning struct {
	SpotRadius       float64       // starting ring radius
	RadiusBoost      float64       // growth factor
	InitialOpacity   float64       // ring opacity at emission
	Decrement        float64       // per-tick opacity and weight loss
	OpacityThreshold float64       // removal threshold
	Cooldown         time.Duration // minimum gap between pulses of one spot
	SoundStrength    float64       // strength to volume scale
	PlaceClearance   float64       // squared distance
}

// DefaultTuning returns the stock parameters
func DefaultTuning() Tuning {
	return Tuning{
		SpotRadius:       parameter.SpotRadius,
		RadiusBoost:      parameter.RadiusBoost,
		InitialOpacity:   parameter.PulseInitialOpacity,
		Decrement:        parameter.PulseDecrement,
		OpacityThreshold: parameter.OpacityThreshold,
		Cooldown:         parameter.SpotCooldown,
		SoundStrength:    parameter.SoundStrength,
		PlaceClearance:   parameter.PlaceClearance,
	}
}

// Validate rejects values that would stall or invert the decay
func (t Tuning) Validate() error {
	switch {
	case t.SpotRadius <= 0:
		return fmt.Errorf("spot radius must be positive, got %g", t.SpotRadius)
	case t.RadiusBoost < 0:
		return fmt.Errorf("radius boost must be non-negative, got %g", t.RadiusBoost)
	case t.InitialOpacity <= t.OpacityThreshold:
		return fmt.Errorf("initial opacity %g must exceed threshold %g", t.InitialOpacity, t.OpacityThreshold)
	case t.Decrement <= 0:
		return fmt.Errorf("decrement must be positive, got %g", t.Decrement)
	case t.Cooldown < 0:
		return fmt.Errorf("cooldown must be non-negative, got %v", t.Cooldown)
	case t.SoundStrength < 0 || t.SoundStrength > 1:
		return fmt.Errorf("sound strength must be in [0, 1], got %g", t.SoundStrength)
	case t.PlaceClearance < 0:
		return fmt.Errorf("place clearance must be non-negative, got %g", t.PlaceClearance)
	}
	return nil
}

// Lifetime is the number of Step calls from spawn to removal
// A pulse decays for ceil((opacity-threshold)/decrement) steps, the next one removes it
func (t Tuning) Lifetime() int {
	n := 0
	for t.opacityAt(n) > t.OpacityThreshold {
		n++
	}
	return n + 1
}

func (t Tuning) opacityAt(age int) float64 {
	return t.InitialOpacity - float64(age)*t.Decrement
}

func (t Tuning) weightAt(strength float64, age int) float64 {
	return max(0, strength-float64(age)*t.Decrement)
}
