package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// AccessPolicy answers the role checks made at the top of every mutating
// entry point.
type AccessPolicy interface {
	IsOwner(ctx context.Context, account sdk.AccAddress) (bool, error)
	IsAuthorizer(ctx context.Context, account sdk.AccAddress) (bool, error)
}

type storePolicy struct {
	owner       collections.Item[[]byte]
	authorizers collections.KeySet[sdk.AccAddress]
}

func (p storePolicy) IsOwner(ctx context.Context, account sdk.AccAddress) (bool, error) {
	owner, err := getOrZero(ctx, p.owner)
	if err != nil {
		return false, err
	}
	return len(owner) > 0 && sdk.AccAddress(owner).Equals(account), nil
}

func (p storePolicy) IsAuthorizer(ctx context.Context, account sdk.AccAddress) (bool, error) {
	if len(account) == 0 {
		return false, nil
	}
	return p.authorizers.Has(ctx, account)
}

func (k Keeper) requireOwner(ctx context.Context, caller sdk.AccAddress) error {
	ok, err := k.policy.IsOwner(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrap(types.ErrUnauthorized, "caller is not the owner")
	}
	return nil
}

func (k Keeper) requireOwnerOrAuthorizer(ctx context.Context, caller sdk.AccAddress) error {
	ok, err := k.policy.IsOwner(ctx, caller)
	if err != nil || ok {
		return err
	}
	ok, err = k.policy.IsAuthorizer(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrap(types.ErrUnauthorized, "caller is neither owner nor authorizer")
	}
	return nil
}

// SetAuthorizer grants or revokes the authorizer role. Owner only.
func (k Keeper) SetAuthorizer(ctx context.Context, caller, account sdk.AccAddress, enabled bool) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := requireAccount(account, "authorizer"); err != nil {
		return err
	}
	var err error
	if enabled {
		err = k.Authorizers.Set(ctx, account)
	} else {
		err = k.Authorizers.Remove(ctx, account)
	}
	if err != nil {
		return err
	}

	k.Logger(ctx).Info("authorizer updated", "account", k.accountString(account), "enabled", enabled)
	k.emit(ctx, types.EventTypeAuthorizer,
		sdk.NewAttribute(types.AttributeKeyAccount, k.accountString(account)),
		sdk.NewAttribute(types.AttributeKeyEnabled, strconv.FormatBool(enabled)),
	)
	return nil
}

// TransferOwnership hands every owner-only right to newOwner.
func (k Keeper) TransferOwnership(ctx context.Context, caller, newOwner sdk.AccAddress) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := requireAccount(newOwner, "new owner"); err != nil {
		return err
	}
	if err := k.Owner.Set(ctx, newOwner); err != nil {
		return err
	}

	k.Logger(ctx).Info("ownership transferred", "from", k.accountString(caller), "to", k.accountString(newOwner))
	k.emit(ctx, types.EventTypeOwnership,
		sdk.NewAttribute(types.AttributeKeyFrom, k.accountString(caller)),
		sdk.NewAttribute(types.AttributeKeyTo, k.accountString(newOwner)),
	)
	return nil
}

func (k Keeper) GetOwner(ctx context.Context) (sdk.AccAddress, error) {
	bz, err := getOrZero(ctx, k.Owner)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

func (k Keeper) IsAuthorizer(ctx context.Context, account sdk.AccAddress) (bool, error) {
	return k.policy.IsAuthorizer(ctx, account)
}
