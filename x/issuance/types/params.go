package types

import "fmt"

const (
	DefaultMaxSupply          uint64 = 2000
	DefaultAllowlistACeiling  uint64 = 900
	DefaultAllowlistBCeiling  uint64 = 1800
	DefaultPublicCeiling      uint64 = 1800
	DefaultPublicPerCallLimit uint64 = 10

	DefaultTicketMaxSupply     uint64 = 3000
	DefaultRedemptionBurnCount uint64 = 1
	DefaultRedemptionOutput    uint64 = 1

	DefaultRoyaltyBps uint32 = 650

	MaxRoyaltyBps uint32 = 10_000
)

// AssetClass selects which issued counter a supply tier is measured against.
type AssetClass string

const (
	ClassFrens  AssetClass = "frens"
	ClassTicket AssetClass = "ticket"
)

// Params holds the issuance ceilings. Tier ceilings apply to the global
// frens counter; the public per-call limit applies to a single request.
type Params struct {
	MaxSupply          uint64 `json:"max_supply"`
	GiveawayCeiling    uint64 `json:"giveaway_ceiling"`
	AllowlistACeiling  uint64 `json:"allowlist_a_ceiling"`
	AllowlistBCeiling  uint64 `json:"allowlist_b_ceiling"`
	PublicCeiling      uint64 `json:"public_ceiling"`
	PublicPerCallLimit uint64 `json:"public_per_call_limit"`

	TicketMaxSupply     uint64 `json:"ticket_max_supply"`
	RedemptionBurnCount uint64 `json:"redemption_burn_count"`
	RedemptionOutput    uint64 `json:"redemption_output"`
}

func NewParams(
	maxSupply uint64,
	giveawayCeiling uint64,
	allowlistACeiling uint64,
	allowlistBCeiling uint64,
	publicCeiling uint64,
	publicPerCallLimit uint64,
	ticketMaxSupply uint64,
	redemptionBurnCount uint64,
	redemptionOutput uint64,
) Params {
	return Params{
		MaxSupply:           maxSupply,
		GiveawayCeiling:     giveawayCeiling,
		AllowlistACeiling:   allowlistACeiling,
		AllowlistBCeiling:   allowlistBCeiling,
		PublicCeiling:       publicCeiling,
		PublicPerCallLimit:  publicPerCallLimit,
		TicketMaxSupply:     ticketMaxSupply,
		RedemptionBurnCount: redemptionBurnCount,
		RedemptionOutput:    redemptionOutput,
	}
}

func DefaultParams() Params {
	return NewParams(
		DefaultMaxSupply,           // MaxSupply
		DefaultMaxSupply,           // GiveawayCeiling
		DefaultAllowlistACeiling,   // AllowlistACeiling
		DefaultAllowlistBCeiling,   // AllowlistBCeiling
		DefaultPublicCeiling,       // PublicCeiling
		DefaultPublicPerCallLimit,  // PublicPerCallLimit
		DefaultTicketMaxSupply,     // TicketMaxSupply
		DefaultRedemptionBurnCount, // RedemptionBurnCount
		DefaultRedemptionOutput,    // RedemptionOutput
	)
}

func (p Params) Validate() error {
	if p.MaxSupply == 0 {
		return fmt.Errorf("max_supply must be > 0")
	}
	tiers := map[string]uint64{
		"giveaway_ceiling":    p.GiveawayCeiling,
		"allowlist_a_ceiling": p.AllowlistACeiling,
		"allowlist_b_ceiling": p.AllowlistBCeiling,
		"public_ceiling":      p.PublicCeiling,
	}
	for name, ceiling := range tiers {
		if ceiling > p.MaxSupply {
			return fmt.Errorf("%s %d exceeds max_supply %d", name, ceiling, p.MaxSupply)
		}
	}
	if p.PublicPerCallLimit == 0 {
		return fmt.Errorf("public_per_call_limit must be > 0")
	}
	if p.RedemptionBurnCount == 0 {
		return fmt.Errorf("redemption_burn_count must be > 0")
	}
	if p.RedemptionOutput == 0 {
		return fmt.Errorf("redemption_output must be > 0")
	}
	if p.RedemptionOutput > p.TicketMaxSupply {
		return fmt.Errorf("redemption_output exceeds ticket_max_supply")
	}
	return nil
}

// SupplyTier is one (scope, ceiling) bound. PerCall tiers bound the request
// amount; all others bound the class counter after the request.
type SupplyTier struct {
	Scope   string
	Ceiling uint64
	PerCall bool
}

// SupplyTiers returns the bounds that apply to frens issued in phase,
// narrowest scope first.
func (p Params) SupplyTiers(phase Phase) []SupplyTier {
	tiers := make([]SupplyTier, 0, 3)
	switch phase {
	case PhaseGiveaway:
		tiers = append(tiers, SupplyTier{Scope: "giveaway", Ceiling: p.GiveawayCeiling})
	case PhaseAllowlistA:
		tiers = append(tiers, SupplyTier{Scope: "allowlist_a", Ceiling: p.AllowlistACeiling})
	case PhaseAllowlistB:
		tiers = append(tiers, SupplyTier{Scope: "allowlist_b", Ceiling: p.AllowlistBCeiling})
	case PhasePublic:
		tiers = append(tiers,
			SupplyTier{Scope: "public_per_call", Ceiling: p.PublicPerCallLimit, PerCall: true},
			SupplyTier{Scope: "public", Ceiling: p.PublicCeiling},
		)
	}
	return append(tiers, SupplyTier{Scope: "max_supply", Ceiling: p.MaxSupply})
}

// RevealTiers bounds frens carried over from the legacy collection, which
// count against max supply only.
func (p Params) RevealTiers() []SupplyTier {
	return []SupplyTier{{Scope: "max_supply", Ceiling: p.MaxSupply}}
}

// TicketTiers bounds the ticket class, used by redemption and ticket giveaways.
func (p Params) TicketTiers() []SupplyTier {
	return []SupplyTier{{Scope: "ticket_max_supply", Ceiling: p.TicketMaxSupply}}
}
