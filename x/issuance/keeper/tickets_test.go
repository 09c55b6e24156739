package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"frensledger/x/issuance/types"
)

func TestTransferTickets(t *testing.T) {
	f := initFixture(t)
	alice, bob, carol := newAccount(t), newAccount(t), newAccount(t)
	require.NoError(t, f.keeper.IssueTicketGiveaway(f.ctx, f.owner, alice, 4))

	require.ErrorIs(t, f.keeper.TransferTickets(f.ctx, alice, alice, bob, 0), types.ErrInvalidInput)
	require.ErrorIs(t, f.keeper.TransferTickets(f.ctx, alice, alice, nil, 1), types.ErrZeroAddress)
	require.ErrorIs(t, f.keeper.TransferTickets(f.ctx, alice, alice, bob, 5), types.ErrInsufficientBalance)
	require.ErrorIs(t, f.keeper.TransferTickets(f.ctx, carol, alice, bob, 1), types.ErrUnauthorized)

	f.resetEvents()
	require.NoError(t, f.keeper.TransferTickets(f.ctx, alice, alice, bob, 3))
	require.True(t, f.hasEvent(types.EventTypeTransfer))

	// operator approval covers tickets too
	require.NoError(t, f.keeper.SetApprovalForAll(f.ctx, alice, carol, true))
	require.NoError(t, f.keeper.TransferTickets(f.ctx, carol, alice, carol, 1))

	for _, tc := range []struct {
		account sdk.AccAddress
		want    uint64
	}{{alice, 0}, {bob, 3}, {carol, 1}} {
		bal, err := f.keeper.TicketBalance(f.ctx, tc.account)
		require.NoError(t, err)
		require.Equal(t, tc.want, bal)
	}

	// transfers move balances without changing the issued count
	issued, err := f.keeper.TicketsIssued(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(4), issued)

	exported, err := f.keeper.ExportGenesis(f.ctx)
	require.NoError(t, err)
	require.Len(t, exported.TicketBalances, 2)
}

func TestTransferTicketsToSelf(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)
	require.NoError(t, f.keeper.IssueTicketGiveaway(f.ctx, f.owner, alice, 2))

	require.NoError(t, f.keeper.TransferTickets(f.ctx, alice, alice, alice, 2))
	bal, err := f.keeper.TicketBalance(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(2), bal)
}
