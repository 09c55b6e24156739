package keeper_test

import (
	"crypto/ecdsa"
	"testing"
	"time"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"frensledger/x/issuance/keeper"
	"frensledger/x/issuance/signing"
	"frensledger/x/issuance/types"
)

const genesisTime int64 = 1_700_000_000

type fixture struct {
	t        *testing.T
	ctx      sdk.Context
	keeper   keeper.Keeper
	external *keeper.OwnershipRegistry
	legacy   *keeper.OwnershipRegistry

	owner      sdk.AccAddress
	authorizer sdk.AccAddress
	custodian  sdk.AccAddress

	signerA *ecdsa.PrivateKey
	signerB *ecdsa.PrivateKey
}

func initFixture(t *testing.T) *fixture {
	t.Helper()

	f := newFixture(t)
	gs := types.DefaultGenesis()
	gs.Owner = types.AccountHex(f.owner)
	gs.Authorizers = []string{types.AccountHex(f.authorizer)}
	gs.Custodian = types.AccountHex(f.custodian)
	gs.Signers = []types.SignerEntry{
		{Phase: types.PhaseAllowlistA, Account: crypto.PubkeyToAddress(f.signerA.PublicKey).Hex()},
		{Phase: types.PhaseAllowlistB, Account: crypto.PubkeyToAddress(f.signerB.PublicKey).Hex()},
	}
	require.NoError(t, f.keeper.InitGenesis(f.ctx, *gs))
	return f
}

// newFixture returns a keeper over empty stores.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	keys := storetypes.NewKVStoreKeys(types.StoreKey, types.ExternalStoreKey, types.LegacyStoreKey)
	ctx := testutil.DefaultContextWithKeys(keys, nil, nil)
	ctx = ctx.WithBlockTime(time.Unix(genesisTime, 0)).WithEventManager(sdk.NewEventManager())

	k := keeper.NewKeeper(runtime.NewKVStoreService(keys[types.StoreKey]), types.HexAddressCodec{})

	sb := collections.NewSchemaBuilder(runtime.NewKVStoreService(keys[types.ExternalStoreKey]))
	external := keeper.NewExternalRegistry(sb)
	_, err := sb.Build()
	require.NoError(t, err)
	k.SetExternalRegistry(external)

	sb = collections.NewSchemaBuilder(runtime.NewKVStoreService(keys[types.LegacyStoreKey]))
	legacy := keeper.NewLegacyRegistry(sb)
	_, err = sb.Build()
	require.NoError(t, err)
	k.SetLegacyRegistry(legacy)

	return &fixture{
		t:          t,
		ctx:        ctx,
		keeper:     k,
		external:   external,
		legacy:     legacy,
		owner:      newAccount(t),
		authorizer: newAccount(t),
		custodian:  newAccount(t),
		signerA:    newKey(t),
		signerB:    newKey(t),
	}
}

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func newAccount(t *testing.T) sdk.AccAddress {
	t.Helper()
	return types.AccountFromCommon(crypto.PubkeyToAddress(newKey(t).PublicKey))
}

func (f *fixture) withBlockTime(unix int64) {
	f.ctx = f.ctx.WithBlockTime(time.Unix(unix, 0))
}

func (f *fixture) resetEvents() {
	f.ctx = f.ctx.WithEventManager(sdk.NewEventManager())
}

// openPhase starts phase now and keeps it open for a day.
func (f *fixture) openPhase(phase types.Phase) {
	f.t.Helper()
	now := f.ctx.BlockTime().Unix()
	require.NoError(f.t, f.keeper.ConfigurePhase(f.ctx, f.owner, phase, now, now+86_400))
}

func (f *fixture) allowance(key *ecdsa.PrivateKey, recipient sdk.AccAddress, ceiling uint64) []byte {
	f.t.Helper()
	sig, err := signing.SignAllowance(key, types.AccountToCommon(recipient), ceiling)
	require.NoError(f.t, err)
	return sig
}

func (f *fixture) giveaway(recipient sdk.AccAddress, amount uint64) uint64 {
	f.t.Helper()
	first, err := f.keeper.IssueGiveaway(f.ctx, f.owner, recipient, amount)
	require.NoError(f.t, err)
	return first
}

func (f *fixture) hasEvent(eventType string) bool {
	for _, ev := range f.ctx.EventManager().Events() {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}

func TestNewKeeperDefaults(t *testing.T) {
	f := initFixture(t)

	require.Equal(t, types.DefaultParams(), f.keeper.GetParams(f.ctx))

	owner, err := f.keeper.GetOwner(f.ctx)
	require.NoError(t, err)
	require.Equal(t, f.owner, owner)

	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Zero(t, total)

	ok, err := f.keeper.IsAuthorizer(f.ctx, f.authorizer)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSetParamsRejectsInvalid(t *testing.T) {
	f := initFixture(t)

	params := types.DefaultParams()
	params.PublicCeiling = params.MaxSupply + 1
	err := f.keeper.SetParams(f.ctx, params)
	require.ErrorIs(t, err, types.ErrInvalidInput)
	require.Equal(t, types.DefaultParams(), f.keeper.GetParams(f.ctx))
}
