package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// QuotaLedger keeps the cumulative amount issued per (recipient, phase).
// Ceilings are supplied per call and never stored.
type QuotaLedger struct {
	Minted collections.Map[collections.Pair[sdk.AccAddress, string], uint64]
}

func NewQuotaLedger(sb *collections.SchemaBuilder) QuotaLedger {
	return QuotaLedger{
		Minted: collections.NewMap(sb, types.QuotaKey, "quota",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey), collections.Uint64Value),
	}
}

func (q QuotaLedger) Cumulative(ctx context.Context, recipient sdk.AccAddress, phase types.Phase) (uint64, error) {
	v, err := q.Minted.Get(ctx, collections.Join(recipient, phase.String()))
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return v, err
}

// Reserve adds amount to the recipient's running total if the result stays
// within ceiling.
func (q QuotaLedger) Reserve(ctx context.Context, recipient sdk.AccAddress, phase types.Phase, amount, ceiling uint64) error {
	cur, err := q.Cumulative(ctx, recipient, phase)
	if err != nil {
		return err
	}
	next := cur + amount
	if next < cur || next > ceiling {
		return errorsmod.Wrapf(types.ErrNotEnoughQuota, "minted %d + %d exceeds cap %d", cur, amount, ceiling)
	}
	return q.Minted.Set(ctx, collections.Join(recipient, phase.String()), next)
}

func (k Keeper) Minted(ctx context.Context, recipient sdk.AccAddress, phase types.Phase) (uint64, error) {
	return k.Quota.Cumulative(ctx, recipient, phase)
}
