package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"frensledger/x/issuance/types"
)

// SupplyGuard holds one issued counter per asset class and admits requests
// against an ordered list of tiers.
type SupplyGuard struct {
	Issued collections.Map[string, uint64]
}

func NewSupplyGuard(sb *collections.SchemaBuilder) SupplyGuard {
	return SupplyGuard{
		Issued: collections.NewMap(sb, types.SupplyKey, "supply", collections.StringKey, collections.Uint64Value),
	}
}

func (s SupplyGuard) Count(ctx context.Context, class types.AssetClass) (uint64, error) {
	v, err := s.Issued.Get(ctx, string(class))
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return v, err
}

// Check reports the first tier that amount would violate, in the order the
// tiers are given.
func (s SupplyGuard) Check(ctx context.Context, class types.AssetClass, tiers []types.SupplyTier, amount uint64) error {
	issued, err := s.Count(ctx, class)
	if err != nil {
		return err
	}
	after := issued + amount
	if after < issued {
		return types.ErrOverflow
	}
	for _, tier := range tiers {
		if tier.PerCall {
			if amount > tier.Ceiling {
				return errorsmod.Wrapf(types.ErrExceedAmount, "%s: %d > %d", tier.Scope, amount, tier.Ceiling)
			}
			continue
		}
		if after > tier.Ceiling {
			return errorsmod.Wrapf(types.ErrExceedAmount, "%s: %d + %d > %d", tier.Scope, issued, amount, tier.Ceiling)
		}
	}
	return nil
}

// Admit checks amount against tiers and, on success, increments the counter.
func (s SupplyGuard) Admit(ctx context.Context, class types.AssetClass, tiers []types.SupplyTier, amount uint64) error {
	if err := s.Check(ctx, class, tiers, amount); err != nil {
		return err
	}
	issued, err := s.Count(ctx, class)
	if err != nil {
		return err
	}
	return s.Issued.Set(ctx, string(class), issued+amount)
}
