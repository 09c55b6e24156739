package keeper

import (
	"context"
	"errors"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// RedeemExternal burns the caller's run of external ids starting at startID
// and credits tickets. Each account may redeem once.
func (k Keeper) RedeemExternal(ctx context.Context, caller sdk.AccAddress, startID uint64) (uint64, error) {
	if k.external == nil {
		return 0, errorsmod.Wrap(types.ErrInvalidInput, "external registry not configured")
	}
	if err := k.Phases.RequireActive(ctx, types.PhaseRedemption, k.nowUnix(ctx)); err != nil {
		return 0, err
	}
	used, err := k.Redeemed.Has(ctx, caller)
	if err != nil {
		return 0, err
	}
	if used {
		return 0, errorsmod.Wrapf(types.ErrAlreadyRedeemed, "%s", k.accountString(caller))
	}

	params := k.GetParams(ctx)
	end := startID + params.RedemptionBurnCount
	if end < startID {
		return 0, types.ErrOverflow
	}
	for id := startID; id < end; id++ {
		owner, err := k.external.OwnerOf(ctx, id)
		if err != nil && !errors.Is(err, types.ErrTokenNotExist) {
			return 0, err
		}
		if err != nil || !owner.Equals(caller) {
			return 0, errorsmod.Wrapf(types.ErrInvalidAddress, "caller does not own external token %d", id)
		}
	}

	if err := k.Supply.Admit(ctx, types.ClassTicket, params.TicketTiers(), params.RedemptionOutput); err != nil {
		return 0, err
	}
	for id := startID; id < end; id++ {
		if err := k.external.Burn(ctx, id); err != nil {
			return 0, err
		}
	}
	if err := k.creditTickets(ctx, caller, params.RedemptionOutput); err != nil {
		return 0, err
	}
	if err := k.Redeemed.Set(ctx, caller); err != nil {
		return 0, err
	}

	k.Logger(ctx).Info("external tokens redeemed", "account", k.accountString(caller), "start_id", startID, "burned", params.RedemptionBurnCount)
	k.emit(ctx, types.EventTypeRedeem,
		sdk.NewAttribute(types.AttributeKeyRecipient, k.accountString(caller)),
		sdk.NewAttribute(types.AttributeKeyFirstID, strconv.FormatUint(startID, 10)),
		sdk.NewAttribute(types.AttributeKeyBurned, strconv.FormatUint(params.RedemptionBurnCount, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(params.RedemptionOutput, 10)),
	)
	return params.RedemptionOutput, nil
}

func (k Keeper) HasRedeemed(ctx context.Context, account sdk.AccAddress) (bool, error) {
	return k.Redeemed.Has(ctx, account)
}
