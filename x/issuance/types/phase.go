package types

import (
	"fmt"
	"strings"
)

// Phase is a named issuance channel with its own time window and rules.
type Phase int32

const (
	PhaseGiveaway Phase = iota
	PhaseAllowlistA
	PhaseAllowlistB
	PhasePublic
	PhaseRedemption
)

var phaseNames = map[Phase]string{
	PhaseGiveaway:   "giveaway",
	PhaseAllowlistA: "allowlist_a",
	PhaseAllowlistB: "allowlist_b",
	PhasePublic:     "public",
	PhaseRedemption: "redemption",
}

func AllPhases() []Phase {
	return []Phase{PhaseGiveaway, PhaseAllowlistA, PhaseAllowlistB, PhasePublic, PhaseRedemption}
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

func (p Phase) IsValid() bool {
	_, ok := phaseNames[p]
	return ok
}

// IsSigned reports whether issuance in p is gated by an off-chain signature.
func (p Phase) IsSigned() bool {
	return p == PhaseAllowlistA || p == PhaseAllowlistB
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("unknown phase %d", int32(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase accepts the canonical names plus a few operator-friendly aliases.
func ParsePhase(raw string) (Phase, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "-", "_")
	switch name {
	case "allowlista", "rpf", "holders":
		return PhaseAllowlistA, nil
	case "allowlistb", "whitelist":
		return PhaseAllowlistB, nil
	case "ticket", "burn":
		return PhaseRedemption, nil
	}
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", raw)
}

// PhaseWindow is the inclusive [Start, End] interval, in unix seconds, in
// which a phase accepts issuance. Start == 0 means the phase is unset.
type PhaseWindow struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func (w PhaseWindow) Validate() error {
	if w.Start < 0 || w.End < 0 {
		return fmt.Errorf("phase window must not be negative")
	}
	if w.Start > w.End {
		return fmt.Errorf("phase start %d after end %d", w.Start, w.End)
	}
	return nil
}

func (w PhaseWindow) IsSet() bool { return w.Start != 0 }

// IsActive is true iff the window is set and Start <= now <= End.
func (w PhaseWindow) IsActive(now int64) bool {
	return w.Start != 0 && w.Start <= now && now <= w.End
}
