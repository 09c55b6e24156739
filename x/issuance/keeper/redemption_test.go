package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"frensledger/x/issuance/types"
)

func TestRedeemExternal(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)
	start, err := f.external.Issue(f.ctx, alice, 2)
	require.NoError(t, err)

	_, err = f.keeper.RedeemExternal(f.ctx, alice, start)
	require.ErrorIs(t, err, types.ErrInvalidTime)

	f.openPhase(types.PhaseRedemption)
	f.resetEvents()
	credited, err := f.keeper.RedeemExternal(f.ctx, alice, start)
	require.NoError(t, err)
	require.Equal(t, types.DefaultRedemptionOutput, credited)
	require.True(t, f.hasEvent(types.EventTypeRedeem))

	_, err = f.external.OwnerOf(f.ctx, start)
	require.ErrorIs(t, err, types.ErrTokenNotExist)

	bal, err := f.keeper.TicketBalance(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, types.DefaultRedemptionOutput, bal)

	issued, err := f.keeper.TicketsIssued(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultRedemptionOutput, issued)

	redeemed, err := f.keeper.HasRedeemed(f.ctx, alice)
	require.NoError(t, err)
	require.True(t, redeemed)

	_, err = f.keeper.RedeemExternal(f.ctx, alice, start+1)
	require.ErrorIs(t, err, types.ErrAlreadyRedeemed)

	owner, err := f.external.OwnerOf(f.ctx, start+1)
	require.NoError(t, err)
	require.Equal(t, alice, owner)
}

func TestRedeemExternalRequiresOwnership(t *testing.T) {
	f := initFixture(t)
	alice, bob := newAccount(t), newAccount(t)
	start, err := f.external.Issue(f.ctx, alice, 1)
	require.NoError(t, err)
	f.openPhase(types.PhaseRedemption)

	_, err = f.keeper.RedeemExternal(f.ctx, bob, start)
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = f.keeper.RedeemExternal(f.ctx, bob, start+10)
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	redeemed, err := f.keeper.HasRedeemed(f.ctx, bob)
	require.NoError(t, err)
	require.False(t, redeemed)
}

func TestRedeemExternalBurnsWholeRun(t *testing.T) {
	f := initFixture(t)
	params := smallParams()
	params.RedemptionBurnCount = 3
	params.RedemptionOutput = 2
	require.NoError(t, f.keeper.SetParams(f.ctx, params))
	f.openPhase(types.PhaseRedemption)

	alice, bob := newAccount(t), newAccount(t)
	start, err := f.external.Issue(f.ctx, alice, 2)
	require.NoError(t, err)
	_, err = f.external.Issue(f.ctx, bob, 1)
	require.NoError(t, err)

	// the third id of the run belongs to bob
	_, err = f.keeper.RedeemExternal(f.ctx, alice, start)
	require.ErrorIs(t, err, types.ErrInvalidAddress)
	bal, err := f.external.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(2), bal)

	require.NoError(t, f.external.Transfer(f.ctx, bob, bob, alice, start+2))
	credited, err := f.keeper.RedeemExternal(f.ctx, alice, start)
	require.NoError(t, err)
	require.Equal(t, uint64(2), credited)

	bal, err = f.external.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	require.Zero(t, bal)
}

func TestRedeemExternalTicketCeiling(t *testing.T) {
	f := initFixture(t)
	params := smallParams()
	require.NoError(t, f.keeper.SetParams(f.ctx, params))
	f.openPhase(types.PhaseRedemption)

	require.NoError(t, f.keeper.IssueTicketGiveaway(f.ctx, f.owner, f.owner, params.TicketMaxSupply))

	alice := newAccount(t)
	start, err := f.external.Issue(f.ctx, alice, 1)
	require.NoError(t, err)
	_, err = f.keeper.RedeemExternal(f.ctx, alice, start)
	require.ErrorIs(t, err, types.ErrExceedAmount)
}

func TestIssueTicketGiveaway(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)

	require.ErrorIs(t, f.keeper.IssueTicketGiveaway(f.ctx, alice, alice, 1), types.ErrUnauthorized)
	require.ErrorIs(t, f.keeper.IssueTicketGiveaway(f.ctx, f.owner, alice, 0), types.ErrInvalidInput)
	require.ErrorIs(t, f.keeper.IssueTicketGiveaway(f.ctx, f.owner, nil, 1), types.ErrZeroAddress)
	require.ErrorIs(t, f.keeper.IssueTicketGiveaway(f.ctx, f.owner, alice, types.DefaultTicketMaxSupply+1), types.ErrExceedAmount)

	require.NoError(t, f.keeper.IssueTicketGiveaway(f.ctx, f.authorizer, alice, 4))
	bal, err := f.keeper.TicketBalance(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(4), bal)

	// tickets never count toward the frens supply
	total, err := f.keeper.TotalIssued(f.ctx)
	require.NoError(t, err)
	require.Zero(t, total)
}
