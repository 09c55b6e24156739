package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// RoyaltyTable is a default royalty plus per-id overrides for one asset
// class. Overrides may name ids that do not exist yet.
type RoyaltyTable struct {
	Class   types.AssetClass
	Default collections.Item[types.RoyaltyInfo]
	Tokens  collections.Map[uint64, types.RoyaltyInfo]
}

func NewRoyaltyTable(sb *collections.SchemaBuilder, class types.AssetClass, defaultKey, tokenKey collections.Prefix) RoyaltyTable {
	name := string(class) + "_"
	return RoyaltyTable{
		Class:   class,
		Default: collections.NewItem(sb, defaultKey, name+"default_royalty", types.JSONValue[types.RoyaltyInfo]("royalty")),
		Tokens:  collections.NewMap(sb, tokenKey, name+"token_royalties", collections.Uint64Key, types.JSONValue[types.RoyaltyInfo]("royalty")),
	}
}

// Info resolves the royalty of id, falling back to the default.
func (t RoyaltyTable) Info(ctx context.Context, id uint64) (types.RoyaltyInfo, error) {
	info, err := t.Tokens.Get(ctx, id)
	if errors.Is(err, collections.ErrNotFound) {
		return getOrZero(ctx, t.Default)
	}
	return info, err
}

// Amount returns the receiver and amount owed on a sale of id at salePrice.
func (t RoyaltyTable) Amount(ctx context.Context, id uint64, salePrice sdkmath.Int) (sdk.AccAddress, sdkmath.Int, error) {
	info, err := t.Info(ctx, id)
	if err != nil {
		return nil, sdkmath.ZeroInt(), err
	}
	if info.Receiver == "" {
		return nil, sdkmath.ZeroInt(), nil
	}
	receiver, err := types.AccountFromHex(info.Receiver)
	if err != nil {
		return nil, sdkmath.ZeroInt(), err
	}
	return receiver, info.Amount(salePrice), nil
}

func (t RoyaltyTable) Export(ctx context.Context) (types.RoyaltyInfo, []types.TokenRoyalty, error) {
	def, err := getOrZero(ctx, t.Default)
	if err != nil {
		return types.RoyaltyInfo{}, nil, err
	}
	tokens := []types.TokenRoyalty{}
	err = t.Tokens.Walk(ctx, nil, func(id uint64, info types.RoyaltyInfo) (bool, error) {
		tokens = append(tokens, types.TokenRoyalty{TokenID: id, Royalty: info})
		return false, nil
	})
	return def, tokens, err
}

// Import loads genesis royalties. An empty default receiver becomes owner.
func (t RoyaltyTable) Import(ctx context.Context, owner sdk.AccAddress, def types.RoyaltyInfo, tokens []types.TokenRoyalty) error {
	if def.Receiver == "" {
		def.Receiver = types.AccountHex(owner)
	}
	if err := t.Default.Set(ctx, def); err != nil {
		return err
	}
	for _, tr := range tokens {
		if err := t.Tokens.Set(ctx, tr.TokenID, tr.Royalty); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) newRoyalty(receiver sdk.AccAddress, bps uint32) (types.RoyaltyInfo, error) {
	if err := requireAccount(receiver, "royalty receiver"); err != nil {
		return types.RoyaltyInfo{}, err
	}
	info := types.RoyaltyInfo{Receiver: types.AccountHex(receiver), Bps: bps}
	if err := info.Validate(); err != nil {
		return types.RoyaltyInfo{}, errorsmod.Wrap(types.ErrInvalidInput, err.Error())
	}
	return info, nil
}

func (k Keeper) setDefaultRoyalty(ctx context.Context, t RoyaltyTable, caller, receiver sdk.AccAddress, bps uint32) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	info, err := k.newRoyalty(receiver, bps)
	if err != nil {
		return err
	}
	if err := t.Default.Set(ctx, info); err != nil {
		return err
	}

	k.Logger(ctx).Info("default royalty set", "class", string(t.Class), "receiver", info.Receiver, "bps", bps)
	k.emit(ctx, types.EventTypeRoyalty,
		sdk.NewAttribute(types.AttributeKeyClass, string(t.Class)),
		sdk.NewAttribute(types.AttributeKeyAccount, info.Receiver),
		sdk.NewAttribute(types.AttributeKeyBps, strconv.FormatUint(uint64(bps), 10)),
	)
	return nil
}

func (k Keeper) setTokenRoyalty(ctx context.Context, t RoyaltyTable, caller sdk.AccAddress, id uint64, receiver sdk.AccAddress, bps uint32) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	info, err := k.newRoyalty(receiver, bps)
	if err != nil {
		return err
	}
	if err := t.Tokens.Set(ctx, id, info); err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeRoyalty,
		sdk.NewAttribute(types.AttributeKeyClass, string(t.Class)),
		sdk.NewAttribute(types.AttributeKeyTokenID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(types.AttributeKeyAccount, info.Receiver),
		sdk.NewAttribute(types.AttributeKeyBps, strconv.FormatUint(uint64(bps), 10)),
	)
	return nil
}

// SetDefaultRoyalty sets the royalty applied to every asset without an
// override. Owner only.
func (k Keeper) SetDefaultRoyalty(ctx context.Context, caller, receiver sdk.AccAddress, bps uint32) error {
	return k.setDefaultRoyalty(ctx, k.Royalty, caller, receiver, bps)
}

// SetTokenRoyalty overrides the royalty of one asset id, issued or not.
// Owner only.
func (k Keeper) SetTokenRoyalty(ctx context.Context, caller sdk.AccAddress, id uint64, receiver sdk.AccAddress, bps uint32) error {
	return k.setTokenRoyalty(ctx, k.Royalty, caller, id, receiver, bps)
}

// RoyaltyInfo returns the receiver and amount owed on a sale of id at
// salePrice. Assets without an override use the default royalty.
func (k Keeper) RoyaltyInfo(ctx context.Context, id uint64, salePrice sdkmath.Int) (sdk.AccAddress, sdkmath.Int, error) {
	return k.Royalty.Amount(ctx, id, salePrice)
}

func (k Keeper) SetTicketDefaultRoyalty(ctx context.Context, caller, receiver sdk.AccAddress, bps uint32) error {
	return k.setDefaultRoyalty(ctx, k.TicketRoyalty, caller, receiver, bps)
}

func (k Keeper) SetTicketTokenRoyalty(ctx context.Context, caller sdk.AccAddress, id uint64, receiver sdk.AccAddress, bps uint32) error {
	return k.setTokenRoyalty(ctx, k.TicketRoyalty, caller, id, receiver, bps)
}

// TicketRoyaltyInfo is RoyaltyInfo for the ticket class.
func (k Keeper) TicketRoyaltyInfo(ctx context.Context, id uint64, salePrice sdkmath.Int) (sdk.AccAddress, sdkmath.Int, error) {
	return k.TicketRoyalty.Amount(ctx, id, salePrice)
}
