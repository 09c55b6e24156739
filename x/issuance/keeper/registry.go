package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// OwnershipRegistry maps asset ids to owners and keeps a per-owner index in
// ascending id order, which is also issuance order.
type OwnershipRegistry struct {
	Owners    collections.Map[uint64, []byte]
	Balances  collections.Map[sdk.AccAddress, uint64]
	Owned     collections.KeySet[collections.Pair[sdk.AccAddress, uint64]]
	Invalid   collections.KeySet[uint64]
	Operators collections.KeySet[collections.Pair[sdk.AccAddress, sdk.AccAddress]]
	NextID    collections.Sequence

	hooks types.TransferHooks
}

var _ types.ExternalRegistry = (*OwnershipRegistry)(nil)

func NewOwnershipRegistry(sb *collections.SchemaBuilder, p types.RegistryPrefixes) *OwnershipRegistry {
	name := func(s string) string { return p.Namespace + "_" + s }
	return &OwnershipRegistry{
		Owners:    collections.NewMap(sb, p.Owner, name("owners"), collections.Uint64Key, collections.BytesValue),
		Balances:  collections.NewMap(sb, p.Balance, name("balances"), sdk.AccAddressKey, collections.Uint64Value),
		Owned:     collections.NewKeySet(sb, p.Owned, name("owned"), collections.PairKeyCodec(sdk.AccAddressKey, collections.Uint64Key)),
		Invalid:   collections.NewKeySet(sb, p.Invalid, name("invalid"), collections.Uint64Key),
		Operators: collections.NewKeySet(sb, p.Operator, name("operators"), collections.PairKeyCodec(sdk.AccAddressKey, sdk.AccAddressKey)),
		NextID:    collections.NewSequence(sb, p.NextID, name("next_id")),
	}
}

// NewExternalRegistry builds a standalone registry over its own store, used
// for the collection burned by redemption.
func NewExternalRegistry(sb *collections.SchemaBuilder) *OwnershipRegistry {
	return NewOwnershipRegistry(sb, types.ExternalRegistryPrefixes)
}

// NewLegacyRegistry builds the registry of the earlier collection whose ids
// are carried over by Reveal.
func NewLegacyRegistry(sb *collections.SchemaBuilder) *OwnershipRegistry {
	return NewOwnershipRegistry(sb, types.LegacyRegistryPrefixes)
}

func (r *OwnershipRegistry) SetHooks(h types.TransferHooks) {
	if r.hooks != nil {
		panic("cannot set registry hooks twice")
	}
	r.hooks = h
}

// Issue allocates count sequential ids to owner and returns the first one.
func (r *OwnershipRegistry) Issue(ctx context.Context, owner sdk.AccAddress, count uint64) (uint64, error) {
	if count == 0 {
		return 0, errorsmod.Wrap(types.ErrInvalidInput, "issue count must be positive")
	}
	first, err := r.NextID.Peek(ctx)
	if err != nil {
		return 0, err
	}
	last := first + count
	if last < first {
		return 0, types.ErrOverflow
	}
	for id := first; id < last; id++ {
		if err := r.assign(ctx, id, owner); err != nil {
			return 0, err
		}
	}
	if err := r.NextID.Set(ctx, last); err != nil {
		return 0, err
	}
	if err := r.addBalance(ctx, owner, count); err != nil {
		return 0, err
	}
	return first, nil
}

// Mint places a specific id. The id must be unused. Sequential issuance
// resumes after the highest id ever placed.
func (r *OwnershipRegistry) Mint(ctx context.Context, id uint64, owner sdk.AccAddress) error {
	exists, err := r.Owners.Has(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(types.ErrInvalidInput, "token %d already exists", id)
	}
	if err := r.assign(ctx, id, owner); err != nil {
		return err
	}
	next, err := r.NextID.Peek(ctx)
	if err != nil {
		return err
	}
	if id >= next {
		if err := r.NextID.Set(ctx, id+1); err != nil {
			return err
		}
	}
	return r.addBalance(ctx, owner, 1)
}

func (r *OwnershipRegistry) assign(ctx context.Context, id uint64, owner sdk.AccAddress) error {
	if err := r.Owners.Set(ctx, id, owner); err != nil {
		return err
	}
	return r.Owned.Set(ctx, collections.Join(owner, id))
}

func (r *OwnershipRegistry) addBalance(ctx context.Context, owner sdk.AccAddress, n uint64) error {
	bal, err := r.BalanceOf(ctx, owner)
	if err != nil {
		return err
	}
	if bal+n < bal {
		return types.ErrOverflow
	}
	return r.Balances.Set(ctx, owner, bal+n)
}

func (r *OwnershipRegistry) subBalance(ctx context.Context, owner sdk.AccAddress, n uint64) error {
	bal, err := r.BalanceOf(ctx, owner)
	if err != nil {
		return err
	}
	if bal < n {
		return errorsmod.Wrapf(types.ErrOverflow, "balance underflow for %s", owner)
	}
	if bal == n {
		return r.Balances.Remove(ctx, owner)
	}
	return r.Balances.Set(ctx, owner, bal-n)
}

func (r *OwnershipRegistry) Exists(ctx context.Context, id uint64) (bool, error) {
	return r.Owners.Has(ctx, id)
}

func (r *OwnershipRegistry) OwnerOf(ctx context.Context, id uint64) (sdk.AccAddress, error) {
	bz, err := r.Owners.Get(ctx, id)
	if errors.Is(err, collections.ErrNotFound) {
		return nil, errorsmod.Wrapf(types.ErrTokenNotExist, "token %d", id)
	}
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

func (r *OwnershipRegistry) BalanceOf(ctx context.Context, owner sdk.AccAddress) (uint64, error) {
	bal, err := r.Balances.Get(ctx, owner)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return bal, err
}

// TotalIssued counts every id ever allocated; burned ids are not reused.
func (r *OwnershipRegistry) TotalIssued(ctx context.Context) (uint64, error) {
	return r.NextID.Peek(ctx)
}

func (r *OwnershipRegistry) IsValid(ctx context.Context, id uint64) (bool, error) {
	if _, err := r.OwnerOf(ctx, id); err != nil {
		return false, err
	}
	invalid, err := r.Invalid.Has(ctx, id)
	if err != nil {
		return false, err
	}
	return !invalid, nil
}

func (r *OwnershipRegistry) SetValidity(ctx context.Context, id uint64, valid bool) error {
	if _, err := r.OwnerOf(ctx, id); err != nil {
		return err
	}
	if valid {
		return r.Invalid.Remove(ctx, id)
	}
	return r.Invalid.Set(ctx, id)
}

func (r *OwnershipRegistry) IsApprovedForAll(ctx context.Context, owner, operator sdk.AccAddress) (bool, error) {
	return r.Operators.Has(ctx, collections.Join(owner, operator))
}

func (r *OwnershipRegistry) SetApprovalForAll(ctx context.Context, owner, operator sdk.AccAddress, approved bool) error {
	if err := requireAccount(operator, "operator"); err != nil {
		return err
	}
	if owner.Equals(operator) {
		return errorsmod.Wrap(types.ErrInvalidInput, "cannot approve self as operator")
	}
	key := collections.Join(owner, operator)
	if approved {
		return r.Operators.Set(ctx, key)
	}
	return r.Operators.Remove(ctx, key)
}

// Transfer moves id from -> to on behalf of caller, who must be from or one
// of its operators. Hooks run after the ownership change is written.
func (r *OwnershipRegistry) Transfer(ctx context.Context, caller, from, to sdk.AccAddress, id uint64) error {
	owner, err := r.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	invalid, err := r.Invalid.Has(ctx, id)
	if err != nil {
		return err
	}
	if invalid {
		return errorsmod.Wrapf(types.ErrInvalidToken, "token %d", id)
	}
	if !owner.Equals(from) {
		return errorsmod.Wrapf(types.ErrIncorrectOwner, "token %d", id)
	}
	if err := requireAccount(to, "to"); err != nil {
		return err
	}
	if !caller.Equals(from) {
		approved, err := r.IsApprovedForAll(ctx, from, caller)
		if err != nil {
			return err
		}
		if !approved {
			return errorsmod.Wrap(types.ErrUnauthorized, "caller is not owner nor approved")
		}
	}

	if err := r.Owned.Remove(ctx, collections.Join(from, id)); err != nil {
		return err
	}
	if err := r.subBalance(ctx, from, 1); err != nil {
		return err
	}
	if err := r.assign(ctx, id, to); err != nil {
		return err
	}
	if err := r.addBalance(ctx, to, 1); err != nil {
		return err
	}

	if r.hooks != nil {
		return r.hooks.AfterAssetTransfer(ctx, id, from, to)
	}
	return nil
}

// Burn removes id from the registry entirely.
func (r *OwnershipRegistry) Burn(ctx context.Context, id uint64) error {
	owner, err := r.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	if err := r.Owners.Remove(ctx, id); err != nil {
		return err
	}
	if err := r.Owned.Remove(ctx, collections.Join(owner, id)); err != nil {
		return err
	}
	if err := r.Invalid.Remove(ctx, id); err != nil {
		return err
	}
	return r.subBalance(ctx, owner, 1)
}

// Enumerate returns up to count ids of owner starting at index start of the
// owner's list. Out-of-range input yields an empty list.
func (r *OwnershipRegistry) Enumerate(ctx context.Context, owner sdk.AccAddress, start, count uint64) ([]uint64, error) {
	out := []uint64{}
	if count == 0 {
		return out, nil
	}
	var idx uint64
	rng := collections.NewPrefixedPairRange[sdk.AccAddress, uint64](owner)
	err := r.Owned.Walk(ctx, rng, func(key collections.Pair[sdk.AccAddress, uint64]) (bool, error) {
		if idx >= start {
			out = append(out, key.K2())
		}
		idx++
		return uint64(len(out)) >= count, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WalkAssets visits every live asset in id order.
func (r *OwnershipRegistry) WalkAssets(ctx context.Context, fn func(id uint64, owner sdk.AccAddress) error) error {
	return r.Owners.Walk(ctx, nil, func(id uint64, bz []byte) (bool, error) {
		if err := fn(id, sdk.AccAddress(bz)); err != nil {
			return true, err
		}
		return false, nil
	})
}
