package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec

	Schema collections.Schema
	Params collections.Item[types.Params]

	Owner       collections.Item[[]byte]
	Authorizers collections.KeySet[sdk.AccAddress]

	Phases  PhaseController
	Signers collections.Map[string, []byte]
	Quota   QuotaLedger
	Supply  SupplyGuard
	Assets  *OwnershipRegistry
	Accrual AccrualTracker

	BaseURI        collections.Item[string]
	TicketURI      collections.Item[string]
	TicketBalances collections.Map[sdk.AccAddress, uint64]
	Redeemed       collections.KeySet[sdk.AccAddress]
	Royalty        RoyaltyTable
	TicketRoyalty  RoyaltyTable

	policy   AccessPolicy
	external types.ExternalRegistry
	legacy   types.ExternalRegistry
}

func NewKeeper(
	storeService corestore.KVStoreService,
	addressCodec address.Codec,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,

		Params:      collections.NewItem(sb, types.ParamsKey, "params", types.JSONValue[types.Params]("params")),
		Owner:       collections.NewItem(sb, types.OwnerKey, "owner", collections.BytesValue),
		Authorizers: collections.NewKeySet(sb, types.AuthorizerKey, "authorizers", sdk.AccAddressKey),
		Signers:     collections.NewMap(sb, types.SignerKey, "signers", collections.StringKey, collections.BytesValue),

		Phases:  NewPhaseController(sb),
		Quota:   NewQuotaLedger(sb),
		Supply:  NewSupplyGuard(sb),
		Assets:  NewOwnershipRegistry(sb, types.AssetRegistryPrefixes),
		Accrual: NewAccrualTracker(sb),

		BaseURI:        collections.NewItem(sb, types.BaseURIKey, "base_uri", collections.StringValue),
		TicketURI:      collections.NewItem(sb, types.TicketURIKey, "ticket_uri", collections.StringValue),
		TicketBalances: collections.NewMap(sb, types.TicketBalanceKey, "ticket_balances", sdk.AccAddressKey, collections.Uint64Value),
		Redeemed:       collections.NewKeySet(sb, types.RedeemedKey, "redeemed", sdk.AccAddressKey),
		Royalty:        NewRoyaltyTable(sb, types.ClassFrens, types.DefaultRoyaltyKey, types.TokenRoyaltyKey),
		TicketRoyalty:  NewRoyaltyTable(sb, types.ClassTicket, types.TicketDefaultRoyaltyKey, types.TicketTokenRoyaltyKey),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	k.policy = storePolicy{owner: k.Owner, authorizers: k.Authorizers}
	k.Assets.SetHooks(accrualHooks{k: k})

	return k
}

func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

func (k Keeper) GetParams(ctx context.Context) types.Params {
	p, err := k.Params.Get(ctx)
	if err != nil {
		return types.DefaultParams()
	}
	return p
}

func (k Keeper) SetParams(ctx context.Context, p types.Params) error {
	if err := p.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidInput, err.Error())
	}
	return k.Params.Set(ctx, p)
}

// SetExternalRegistry wires the collection consumed by redemption.
func (k *Keeper) SetExternalRegistry(r types.ExternalRegistry) { k.external = r }

// SetLegacyRegistry wires the earlier collection whose ids Reveal carries over.
func (k *Keeper) SetLegacyRegistry(r types.ExternalRegistry) { k.legacy = r }

// SetAccessPolicy replaces the store-backed owner/authorizer policy.
func (k *Keeper) SetAccessPolicy(p AccessPolicy) { k.policy = p }

func (k Keeper) AddressCodec() address.Codec { return k.addressCodec }

func (k Keeper) nowUnix(ctx context.Context) int64 {
	return sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
}

func (k Keeper) accountString(addr sdk.AccAddress) string {
	s, err := k.addressCodec.BytesToString(addr)
	if err != nil {
		return addr.String()
	}
	return s
}

func (k Keeper) emit(ctx context.Context, eventType string, attrs ...sdk.Attribute) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(eventType, attrs...))
}

func getOrZero[V any](ctx context.Context, item collections.Item[V]) (V, error) {
	v, err := item.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		var zero V
		return zero, nil
	}
	return v, err
}

func requireAccount(addr sdk.AccAddress, field string) error {
	if types.IsZeroAccount(addr) {
		return errorsmod.Wrap(types.ErrZeroAddress, field)
	}
	return nil
}
