package keeper

import (
	"context"
	"errors"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// Reveal burns the caller's legacy units and issues frens under the same
// ids. Every id is checked before anything is written.
func (k Keeper) Reveal(ctx context.Context, caller sdk.AccAddress, ids []uint64) error {
	if k.legacy == nil {
		return errorsmod.Wrap(types.ErrInvalidInput, "legacy registry not configured")
	}
	if err := requireAccount(caller, "caller"); err != nil {
		return err
	}
	if len(ids) == 0 {
		return errorsmod.Wrap(types.ErrInvalidInput, "no ids to reveal")
	}

	params := k.GetParams(ctx)
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return errorsmod.Wrapf(types.ErrInvalidInput, "duplicated id %d", id)
		}
		seen[id] = struct{}{}
		if id >= params.MaxSupply {
			return errorsmod.Wrapf(types.ErrInvalidInput, "id %d beyond max supply %d", id, params.MaxSupply)
		}
		exists, err := k.Assets.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return errorsmod.Wrapf(types.ErrInvalidInput, "token %d already exists", id)
		}
		owner, err := k.legacy.OwnerOf(ctx, id)
		if err != nil && !errors.Is(err, types.ErrTokenNotExist) {
			return err
		}
		if err != nil || !owner.Equals(caller) {
			return errorsmod.Wrapf(types.ErrInvalidAddress, "caller does not own legacy token %d", id)
		}
	}

	if err := k.Supply.Admit(ctx, types.ClassFrens, params.RevealTiers(), uint64(len(ids))); err != nil {
		return err
	}
	now := k.nowUnix(ctx)
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		if err := k.legacy.Burn(ctx, id); err != nil {
			return err
		}
		if err := k.Assets.Mint(ctx, id, caller); err != nil {
			return err
		}
		if err := k.Accrual.OnIssue(ctx, id, now); err != nil {
			return err
		}
		strIDs[i] = strconv.FormatUint(id, 10)
	}

	k.Logger(ctx).Info("legacy tokens revealed", "account", k.accountString(caller), "count", len(ids))
	k.emit(ctx, types.EventTypeReveal,
		sdk.NewAttribute(types.AttributeKeyClass, string(types.ClassFrens)),
		sdk.NewAttribute(types.AttributeKeyRecipient, k.accountString(caller)),
		sdk.NewAttribute(types.AttributeKeyIDs, strings.Join(strIDs, ",")),
		sdk.NewAttribute(types.AttributeKeyAmount, strconv.Itoa(len(ids))),
	)
	return nil
}
