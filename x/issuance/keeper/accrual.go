package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// AccrualTracker measures how long each asset has stayed with its holder.
// An epoch of 0 disables accrual entirely.
type AccrualTracker struct {
	Epoch     collections.Item[int64]
	Custodian collections.Item[[]byte]
	LastReset collections.Map[uint64, int64]
}

func NewAccrualTracker(sb *collections.SchemaBuilder) AccrualTracker {
	return AccrualTracker{
		Epoch:     collections.NewItem(sb, types.AccrualEpochKey, "accrual_epoch", collections.Int64Value),
		Custodian: collections.NewItem(sb, types.CustodianKey, "custodian", collections.BytesValue),
		LastReset: collections.NewMap(sb, types.LastResetKey, "last_reset", collections.Uint64Key, collections.Int64Value),
	}
}

// AccruedDuration is now - max(epoch, lastReset), clamped at zero.
func AccruedDuration(epoch, lastReset, now int64) int64 {
	if epoch == 0 {
		return 0
	}
	start := epoch
	if lastReset > start {
		start = lastReset
	}
	if now <= start {
		return 0
	}
	return now - start
}

func (a AccrualTracker) OnIssue(ctx context.Context, id uint64, now int64) error {
	return a.LastReset.Set(ctx, id, now)
}

// OnTransfer restarts accrual for id unless the transfer touched the
// custodian.
func (a AccrualTracker) OnTransfer(ctx context.Context, id uint64, now int64, exempt bool) error {
	if exempt {
		return nil
	}
	return a.LastReset.Set(ctx, id, now)
}

func (a AccrualTracker) IsCustodian(ctx context.Context, account sdk.AccAddress) (bool, error) {
	custodian, err := getOrZero(ctx, a.Custodian)
	if err != nil {
		return false, err
	}
	return len(custodian) > 0 && sdk.AccAddress(custodian).Equals(account), nil
}

func (a AccrualTracker) AccruedAt(ctx context.Context, id uint64, now int64) (int64, error) {
	epoch, err := getOrZero(ctx, a.Epoch)
	if err != nil || epoch == 0 {
		return 0, err
	}
	last, err := a.LastReset.Get(ctx, id)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return 0, err
	}
	return AccruedDuration(epoch, last, now), nil
}

type accrualHooks struct {
	k Keeper
}

var _ types.TransferHooks = accrualHooks{}

func (h accrualHooks) AfterAssetTransfer(ctx context.Context, id uint64, from, to sdk.AccAddress) error {
	fromCustodian, err := h.k.Accrual.IsCustodian(ctx, from)
	if err != nil {
		return err
	}
	toCustodian, err := h.k.Accrual.IsCustodian(ctx, to)
	if err != nil {
		return err
	}
	return h.k.Accrual.OnTransfer(ctx, id, h.k.nowUnix(ctx), fromCustodian || toCustodian)
}

// AccruedAt reports the accrued duration of id at now.
func (k Keeper) AccruedAt(ctx context.Context, id uint64, now int64) (int64, error) {
	if _, err := k.Assets.OwnerOf(ctx, id); err != nil {
		return 0, err
	}
	return k.Accrual.AccruedAt(ctx, id, now)
}

// Accrued reports the accrued duration of id at the current block time.
func (k Keeper) Accrued(ctx context.Context, id uint64) (int64, error) {
	return k.AccruedAt(ctx, id, k.nowUnix(ctx))
}

// AccruedByOwner returns the accrued duration of every asset owner holds, in
// enumeration order.
func (k Keeper) AccruedByOwner(ctx context.Context, owner sdk.AccAddress, now int64) ([]int64, error) {
	bal, err := k.Assets.BalanceOf(ctx, owner)
	if err != nil {
		return nil, err
	}
	ids, err := k.Assets.Enumerate(ctx, owner, 0, bal)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		v, err := k.Accrual.AccruedAt(ctx, id, now)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SetAccrualEpoch sets the global accrual start; 0 disables accrual. Owner only.
func (k Keeper) SetAccrualEpoch(ctx context.Context, caller sdk.AccAddress, epoch int64) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if epoch < 0 {
		return errorsmod.Wrap(types.ErrInvalidInput, "accrual epoch must not be negative")
	}
	if err := k.Accrual.Epoch.Set(ctx, epoch); err != nil {
		return err
	}

	k.Logger(ctx).Info("accrual epoch set", "epoch", epoch)
	k.emit(ctx, types.EventTypeAccrual, sdk.NewAttribute(types.AttributeKeyEpoch, strconv.FormatInt(epoch, 10)))
	return nil
}

// SetCustodian names the account whose transfers never reset accrual. Owner only.
func (k Keeper) SetCustodian(ctx context.Context, caller, account sdk.AccAddress) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := requireAccount(account, "custodian"); err != nil {
		return err
	}
	if err := k.Accrual.Custodian.Set(ctx, account); err != nil {
		return err
	}

	k.Logger(ctx).Info("custodian set", "custodian", k.accountString(account))
	k.emit(ctx, types.EventTypeAccrual, sdk.NewAttribute(types.AttributeKeyAccount, k.accountString(account)))
	return nil
}

func (k Keeper) AccrualEpoch(ctx context.Context) (int64, error) {
	return getOrZero(ctx, k.Accrual.Epoch)
}

func (k Keeper) GetCustodian(ctx context.Context) (sdk.AccAddress, error) {
	bz, err := getOrZero(ctx, k.Accrual.Custodian)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}
