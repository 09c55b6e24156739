package keeper_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"frensledger/x/issuance/types"
)

func smallParams() types.Params {
	return types.NewParams(
		20, // MaxSupply
		20, // GiveawayCeiling
		10, // AllowlistACeiling
		15, // AllowlistBCeiling
		15, // PublicCeiling
		10, // PublicPerCallLimit
		5,  // TicketMaxSupply
		1,  // RedemptionBurnCount
		1,  // RedemptionOutput
	)
}

func TestIssueGiveaway(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)

	f.resetEvents()
	first, err := f.keeper.IssueGiveaway(f.ctx, f.owner, alice, 3)
	require.NoError(t, err)
	require.Zero(t, first)
	require.True(t, f.hasEvent(types.EventTypeIssue))

	first, err = f.keeper.IssueGiveaway(f.ctx, f.authorizer, alice, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), first)

	bal, err := f.keeper.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(5), bal)

	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(5), total)
}

func TestIssueGiveawayRejects(t *testing.T) {
	f := initFixture(t)
	require.NoError(t, f.keeper.SetParams(f.ctx, smallParams()))
	alice := newAccount(t)

	_, err := f.keeper.IssueGiveaway(f.ctx, alice, alice, 1)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.keeper.IssueGiveaway(f.ctx, f.owner, alice, 0)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.keeper.IssueGiveaway(f.ctx, f.owner, make([]byte, 20), 1)
	require.ErrorIs(t, err, types.ErrZeroAddress)

	_, err = f.keeper.IssueGiveaway(f.ctx, f.owner, alice, 21)
	require.ErrorIs(t, err, types.ErrExceedAmount)

	require.NoError(t, f.keeper.SetAuthorizer(f.ctx, f.owner, f.authorizer, false))
	_, err = f.keeper.IssueGiveaway(f.ctx, f.authorizer, alice, 1)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestIssueViaSignatureQuota(t *testing.T) {
	f := initFixture(t)
	f.openPhase(types.PhaseAllowlistA)
	alice := newAccount(t)
	sig := f.allowance(f.signerA, alice, 10)

	_, err := f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 9, 10, sig)
	require.NoError(t, err)

	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 1, 10, sig)
	require.NoError(t, err)

	minted, err := f.keeper.Minted(f.ctx, alice, types.PhaseAllowlistA)
	require.NoError(t, err)
	require.Equal(t, uint64(10), minted)

	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 1, 10, sig)
	require.ErrorIs(t, err, types.ErrNotEnoughQuota)

	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(10), total)
}

func TestIssueViaSignatureQuotaIsPerPhase(t *testing.T) {
	f := initFixture(t)
	f.openPhase(types.PhaseAllowlistA)
	f.openPhase(types.PhaseAllowlistB)
	alice := newAccount(t)

	_, err := f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 2, 2, f.allowance(f.signerA, alice, 2))
	require.NoError(t, err)
	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistB, 2, 2, f.allowance(f.signerB, alice, 2))
	require.NoError(t, err)

	bal, err := f.keeper.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(4), bal)
}

func TestIssueViaSignatureSupplyReportedBeforeQuota(t *testing.T) {
	f := initFixture(t)
	require.NoError(t, f.keeper.SetParams(f.ctx, smallParams()))
	f.openPhase(types.PhaseAllowlistA)
	alice := newAccount(t)
	sig := f.allowance(f.signerA, alice, 10)

	_, err := f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 10, 10, sig)
	require.NoError(t, err)

	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 1, 10, sig)
	require.ErrorIs(t, err, types.ErrExceedAmount)
}

func TestGiveawayConsumesSharedTier(t *testing.T) {
	f := initFixture(t)
	require.NoError(t, f.keeper.SetParams(f.ctx, smallParams()))
	f.openPhase(types.PhaseAllowlistA)
	alice, bob := newAccount(t), newAccount(t)

	f.giveaway(bob, 10)

	// allowlist_a is bounded by the global counter, so the giveaway leaves
	// nothing for a fresh signed recipient
	_, err := f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 1, 5, f.allowance(f.signerA, alice, 5))
	require.ErrorIs(t, err, types.ErrExceedAmount)

	minted, err := f.keeper.Minted(f.ctx, alice, types.PhaseAllowlistA)
	require.NoError(t, err)
	require.Zero(t, minted)
}

func TestIssueViaSignatureRejectsBadAuthorization(t *testing.T) {
	f := initFixture(t)
	f.openPhase(types.PhaseAllowlistA)
	alice := newAccount(t)
	bob := newAccount(t)

	cases := []struct {
		name    string
		caller  []byte
		ceiling uint64
		sig     []byte
	}{
		{"wrong signer", alice, 5, f.allowance(f.signerB, alice, 5)},
		{"inflated ceiling", alice, 50, f.allowance(f.signerA, alice, 5)},
		{"other recipient", bob, 5, f.allowance(f.signerA, alice, 5)},
		{"malformed", alice, 5, []byte{0x01, 0x02}},
		{"empty", alice, 5, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.keeper.IssueViaSignature(f.ctx, tc.caller, types.PhaseAllowlistA, 1, tc.ceiling, tc.sig)
			require.ErrorIs(t, err, types.ErrInvalidSignature)
		})
	}

	minted, err := f.keeper.Minted(f.ctx, alice, types.PhaseAllowlistA)
	require.NoError(t, err)
	require.Zero(t, minted)
}

func TestIssueViaSignatureRejectsUnsignedPhase(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)

	_, err := f.keeper.IssueViaSignature(f.ctx, alice, types.PhasePublic, 1, 5, f.allowance(f.signerA, alice, 5))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	f.openPhase(types.PhaseAllowlistA)
	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 0, 5, f.allowance(f.signerA, alice, 5))
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestSignerRotation(t *testing.T) {
	f := initFixture(t)
	f.openPhase(types.PhaseAllowlistA)
	alice := newAccount(t)
	oldSig := f.allowance(f.signerA, alice, 5)

	rotated := newKey(t)
	rotatedAddr := types.AccountFromCommon(crypto.PubkeyToAddress(rotated.PublicKey))

	require.ErrorIs(t, f.keeper.SetSigner(f.ctx, alice, types.PhaseAllowlistA, rotatedAddr), types.ErrUnauthorized)
	require.ErrorIs(t, f.keeper.SetSigner(f.ctx, f.owner, types.PhasePublic, rotatedAddr), types.ErrInvalidInput)
	require.ErrorIs(t, f.keeper.SetSigner(f.ctx, f.owner, types.PhaseAllowlistA, nil), types.ErrZeroAddress)
	require.NoError(t, f.keeper.SetSigner(f.ctx, f.owner, types.PhaseAllowlistA, rotatedAddr))

	signer, err := f.keeper.Signer(f.ctx, types.PhaseAllowlistA)
	require.NoError(t, err)
	require.Equal(t, rotatedAddr, signer)

	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 1, 5, oldSig)
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	_, err = f.keeper.IssueViaSignature(f.ctx, alice, types.PhaseAllowlistA, 1, 5, f.allowance(rotated, alice, 5))
	require.NoError(t, err)
}

func TestVerifyAllowanceWritesNothing(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)

	ceiling, err := f.keeper.VerifyAllowance(f.ctx, types.PhaseAllowlistA, alice, 7, f.allowance(f.signerA, alice, 7))
	require.NoError(t, err)
	require.Equal(t, uint64(7), ceiling)

	minted, err := f.keeper.Minted(f.ctx, alice, types.PhaseAllowlistA)
	require.NoError(t, err)
	require.Zero(t, minted)
}

func TestIssuePublicTierBoundary(t *testing.T) {
	f := initFixture(t)
	require.NoError(t, f.keeper.SetParams(f.ctx, smallParams()))
	alice := newAccount(t)
	f.giveaway(alice, 14)
	f.openPhase(types.PhasePublic)

	_, err := f.keeper.IssuePublic(f.ctx, alice, 2)
	require.ErrorIs(t, err, types.ErrExceedAmount)

	first, err := f.keeper.IssuePublic(f.ctx, alice, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(14), first)

	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(15), total)

	_, err = f.keeper.IssuePublic(f.ctx, alice, 1)
	require.ErrorIs(t, err, types.ErrExceedAmount)
}

func TestIssuePublicPerCallLimit(t *testing.T) {
	f := initFixture(t)
	f.openPhase(types.PhasePublic)
	alice := newAccount(t)

	_, err := f.keeper.IssuePublic(f.ctx, alice, types.DefaultPublicPerCallLimit+1)
	require.ErrorIs(t, err, types.ErrExceedAmount)

	_, err = f.keeper.IssuePublic(f.ctx, alice, types.DefaultPublicPerCallLimit)
	require.NoError(t, err)
	_, err = f.keeper.IssuePublic(f.ctx, alice, types.DefaultPublicPerCallLimit)
	require.NoError(t, err)

	bal, err := f.keeper.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, 2*types.DefaultPublicPerCallLimit, bal)
}

func TestPhaseWindowBoundaries(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)
	start, end := genesisTime+10, genesisTime+20

	_, err := f.keeper.IssuePublic(f.ctx, alice, 1)
	require.ErrorIs(t, err, types.ErrInvalidTime)

	require.ErrorIs(t, f.keeper.ConfigurePhase(f.ctx, alice, types.PhasePublic, start, end), types.ErrUnauthorized)
	require.ErrorIs(t, f.keeper.ConfigurePhase(f.ctx, f.owner, types.PhasePublic, end, start), types.ErrInvalidInput)
	require.NoError(t, f.keeper.ConfigurePhase(f.ctx, f.authorizer, types.PhasePublic, start, end))

	w, err := f.keeper.Phase(f.ctx, types.PhasePublic)
	require.NoError(t, err)
	require.Equal(t, types.PhaseWindow{Start: start, End: end}, w)

	for _, tc := range []struct {
		now    int64
		active bool
	}{
		{start - 1, false},
		{start, true},
		{end, true},
		{end + 1, false},
	} {
		f.withBlockTime(tc.now)
		active, err := f.keeper.IsPhaseActive(f.ctx, types.PhasePublic)
		require.NoError(t, err)
		require.Equal(t, tc.active, active, "now=%d", tc.now)

		_, err = f.keeper.IssuePublic(f.ctx, alice, 1)
		if tc.active {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, types.ErrInvalidTime)
		}
	}
}

func TestIssuedNeverExceedsMaxSupply(t *testing.T) {
	f := initFixture(t)
	require.NoError(t, f.keeper.SetParams(f.ctx, smallParams()))
	f.openPhase(types.PhasePublic)
	alice := newAccount(t)

	var expected uint64
	for _, amount := range []uint64{7, 6, 5, 4, 3, 2, 1} {
		before, err := f.keeper.TotalIssued(f.ctx)
		require.NoError(t, err)
		_, err = f.keeper.IssueGiveaway(f.ctx, f.owner, alice, amount)
		after, terr := f.keeper.TotalIssued(f.ctx)
		require.NoError(t, terr)
		if err != nil {
			require.ErrorIs(t, err, types.ErrExceedAmount)
			require.Equal(t, before, after)
			continue
		}
		expected += amount
		require.Equal(t, before+amount, after)
		require.LessOrEqual(t, after, smallParams().MaxSupply)
	}
	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Equal(t, expected, total)
}
