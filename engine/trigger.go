package engine

import "github.com/lixenwraith/pulsefield/spatial"

// CooldownChecker answers whether a spot may fire again
type CooldownChecker interface {
	CooldownElapsed(id SpotID) bool
}

// TriggerPolicy picks which swept spot a pulse fires next
//
// The farthest in-range spot wins (the leading edge of the ring), not the nearest.
// Points at distance zero never qualify. If the farthest untriggered candidate is
// still cooling down nothing fires this tick; the pulse re-evaluates once more
// spots enter its radius
type TriggerPolicy struct {
	cooldown CooldownChecker
}

// NewTriggerPolicy binds the policy to a cooldown source
func NewTriggerPolicy(cooldown CooldownChecker) TriggerPolicy {
	return TriggerPolicy{cooldown: cooldown}
}

// Select returns the spot p should fire given the spots currently inside its radius
func (tp TriggerPolicy) Select(p *Pulse, points []spatial.Neighbor[SpotID]) (SpotID, bool) {
	var (
		best    SpotID
		bestD   float64
		hasBest bool
	)
	for _, n := range points {
		if p.HasTriggered(n.Payload) {
			continue
		}
		if n.DistSq > bestD {
			best, bestD, hasBest = n.Payload, n.DistSq, true
		}
	}

	if !hasBest || !tp.cooldown.CooldownElapsed(best) {
		return 0, false
	}
	return best, true
}
