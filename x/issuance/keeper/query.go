package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

func (k Keeper) BalanceOf(ctx context.Context, owner sdk.AccAddress) (uint64, error) {
	if err := requireAccount(owner, "owner"); err != nil {
		return 0, err
	}
	return k.Assets.BalanceOf(ctx, owner)
}

// TotalIssued is the number of frens issued so far.
func (k Keeper) TotalIssued(ctx context.Context) (uint64, error) {
	return k.Supply.Count(ctx, types.ClassFrens)
}

func (k Keeper) OwnerOf(ctx context.Context, id uint64) (sdk.AccAddress, error) {
	return k.Assets.OwnerOf(ctx, id)
}

// TokensOfOwner pages through the ids held by owner in issuance order.
func (k Keeper) TokensOfOwner(ctx context.Context, owner sdk.AccAddress, start, count uint64) ([]uint64, error) {
	return k.Assets.Enumerate(ctx, owner, start, count)
}

func (k Keeper) IsValid(ctx context.Context, id uint64) (bool, error) {
	return k.Assets.IsValid(ctx, id)
}

func (k Keeper) IsApprovedForAll(ctx context.Context, owner, operator sdk.AccAddress) (bool, error) {
	return k.Assets.IsApprovedForAll(ctx, owner, operator)
}
