package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// IssueGiveaway mints amount frens to recipient outside any phase window.
// Owner or authorizer.
func (k Keeper) IssueGiveaway(ctx context.Context, caller, recipient sdk.AccAddress, amount uint64) (uint64, error) {
	if err := k.requireOwnerOrAuthorizer(ctx, caller); err != nil {
		return 0, err
	}
	if err := requireAccount(recipient, "recipient"); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, errorsmod.Wrap(types.ErrInvalidInput, "amount must be positive")
	}

	params := k.GetParams(ctx)
	if err := k.Supply.Admit(ctx, types.ClassFrens, params.SupplyTiers(types.PhaseGiveaway), amount); err != nil {
		return 0, err
	}
	return k.issue(ctx, types.PhaseGiveaway, recipient, amount)
}

// IssueViaSignature mints amount frens to caller in a signed allowlist
// phase. ceiling and sig must match what the phase signer signed for caller.
func (k Keeper) IssueViaSignature(ctx context.Context, caller sdk.AccAddress, phase types.Phase, amount, ceiling uint64, sig []byte) (uint64, error) {
	if !phase.IsSigned() {
		return 0, errorsmod.Wrapf(types.ErrInvalidInput, "%s is not a signed phase", phase)
	}
	if amount == 0 {
		return 0, errorsmod.Wrap(types.ErrInvalidInput, "amount must be positive")
	}
	if err := k.Phases.RequireActive(ctx, phase, k.nowUnix(ctx)); err != nil {
		return 0, err
	}
	limit, err := k.VerifyAllowance(ctx, phase, caller, ceiling, sig)
	if err != nil {
		return 0, err
	}

	// supply is reported ahead of quota when both are exhausted
	tiers := k.GetParams(ctx).SupplyTiers(phase)
	if err := k.Supply.Check(ctx, types.ClassFrens, tiers, amount); err != nil {
		return 0, err
	}
	if err := k.Quota.Reserve(ctx, caller, phase, amount, limit); err != nil {
		return 0, err
	}
	if err := k.Supply.Admit(ctx, types.ClassFrens, tiers, amount); err != nil {
		return 0, err
	}
	return k.issue(ctx, phase, caller, amount)
}

// IssuePublic mints amount frens to caller while the public phase is open.
func (k Keeper) IssuePublic(ctx context.Context, caller sdk.AccAddress, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errorsmod.Wrap(types.ErrInvalidInput, "amount must be positive")
	}
	if err := k.Phases.RequireActive(ctx, types.PhasePublic, k.nowUnix(ctx)); err != nil {
		return 0, err
	}
	params := k.GetParams(ctx)
	if err := k.Supply.Admit(ctx, types.ClassFrens, params.SupplyTiers(types.PhasePublic), amount); err != nil {
		return 0, err
	}
	return k.issue(ctx, types.PhasePublic, caller, amount)
}

func (k Keeper) issue(ctx context.Context, phase types.Phase, recipient sdk.AccAddress, amount uint64) (uint64, error) {
	first, err := k.Assets.Issue(ctx, recipient, amount)
	if err != nil {
		return 0, err
	}
	now := k.nowUnix(ctx)
	for id := first; id < first+amount; id++ {
		if err := k.Accrual.OnIssue(ctx, id, now); err != nil {
			return 0, err
		}
	}

	k.Logger(ctx).Debug("issued", "phase", phase.String(), "recipient", k.accountString(recipient), "first_id", first, "amount", amount)
	k.emit(ctx, types.EventTypeIssue,
		sdk.NewAttribute(types.AttributeKeyPhase, phase.String()),
		sdk.NewAttribute(types.AttributeKeyClass, string(types.ClassFrens)),
		sdk.NewAttribute(types.AttributeKeyRecipient, k.accountString(recipient)),
		sdk.NewAttribute(types.AttributeKeyFirstID, strconv.FormatUint(first, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
	)
	return first, nil
}

// Transfer moves one asset. Accrual resets unless the custodian is on either
// side of the transfer.
func (k Keeper) Transfer(ctx context.Context, caller, from, to sdk.AccAddress, id uint64) error {
	if err := k.Assets.Transfer(ctx, caller, from, to, id); err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeTransfer,
		sdk.NewAttribute(types.AttributeKeyTokenID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(types.AttributeKeyFrom, k.accountString(from)),
		sdk.NewAttribute(types.AttributeKeyTo, k.accountString(to)),
	)
	return nil
}

// SetApprovalForAll lets operator transfer any asset of caller.
func (k Keeper) SetApprovalForAll(ctx context.Context, caller, operator sdk.AccAddress, approved bool) error {
	if err := k.Assets.SetApprovalForAll(ctx, caller, operator, approved); err != nil {
		return err
	}
	k.emit(ctx, types.EventTypeApproval,
		sdk.NewAttribute(types.AttributeKeyAccount, k.accountString(caller)),
		sdk.NewAttribute(types.AttributeKeyTo, k.accountString(operator)),
		sdk.NewAttribute(types.AttributeKeyEnabled, strconv.FormatBool(approved)),
	)
	return nil
}

// SetAssetValidity marks an asset valid or invalid; invalid assets cannot
// be transferred. Owner only.
func (k Keeper) SetAssetValidity(ctx context.Context, caller sdk.AccAddress, id uint64, valid bool) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := k.Assets.SetValidity(ctx, id, valid); err != nil {
		return err
	}

	k.Logger(ctx).Info("asset validity changed", "token_id", id, "valid", valid)
	k.emit(ctx, types.EventTypeValidity,
		sdk.NewAttribute(types.AttributeKeyTokenID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(types.AttributeKeyValid, strconv.FormatBool(valid)),
	)
	return nil
}
