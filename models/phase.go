package models

import "fmt"

// Phase is the discrete flight-software state reported in FSW_State.
// The numeric order is the only order in which a flight may progress.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAscent
	PhaseCoast
	PhaseDescent
	PhaseLanded
)

var phaseNames = [...]string{"IDLE", "ASCENT", "COAST", "DESCENT", "LANDED"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "UNKNOWN"
}

// Terminal reports whether no further transition can leave p.
func (p Phase) Terminal() bool { return p == PhaseLanded }

// ParsePhase maps an FSW_State label back to its Phase.
func ParsePhase(s string) (Phase, error) {
	for i, n := range phaseNames {
		if n == s {
			return Phase(i), nil
		}
	}
	return PhaseIdle, fmt.Errorf("unknown flight phase %q", s)
}
