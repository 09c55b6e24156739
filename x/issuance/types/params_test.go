package types

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
}

func TestParamsValidateRejectsTierAboveMax(t *testing.T) {
	p := DefaultParams()
	p.PublicCeiling = p.MaxSupply + 1
	require.Error(t, p.Validate())

	p = DefaultParams()
	p.PublicPerCallLimit = 0
	require.Error(t, p.Validate())

	p = DefaultParams()
	p.RedemptionBurnCount = 0
	require.Error(t, p.Validate())

	p = DefaultParams()
	p.MaxSupply = 0
	require.Error(t, p.Validate())
}

func TestSupplyTiersNarrowestFirst(t *testing.T) {
	p := DefaultParams()

	tiers := p.SupplyTiers(PhasePublic)
	require.Len(t, tiers, 3)
	require.True(t, tiers[0].PerCall)
	require.Equal(t, DefaultPublicPerCallLimit, tiers[0].Ceiling)
	require.Equal(t, "public", tiers[1].Scope)
	require.Equal(t, "max_supply", tiers[2].Scope)

	tiers = p.SupplyTiers(PhaseAllowlistA)
	require.Equal(t, []SupplyTier{
		{Scope: "allowlist_a", Ceiling: DefaultAllowlistACeiling},
		{Scope: "max_supply", Ceiling: DefaultMaxSupply},
	}, tiers)

	require.Equal(t, DefaultTicketMaxSupply, p.TicketTiers()[0].Ceiling)
}

func TestRoyaltyAmount(t *testing.T) {
	oneEther := sdkmath.NewIntWithDecimal(1, 18)

	r := RoyaltyInfo{Bps: DefaultRoyaltyBps}
	require.Equal(t, sdkmath.NewIntWithDecimal(65, 15), r.Amount(oneEther))

	r.Bps = 9999
	require.Equal(t, sdkmath.NewIntWithDecimal(9999, 14), r.Amount(oneEther))

	r.Bps = 0
	require.True(t, r.Amount(oneEther).IsZero())

	require.Error(t, RoyaltyInfo{Bps: MaxRoyaltyBps + 1}.Validate())
}
