package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"frensledger/x/issuance/types"
)

func TestTransfer(t *testing.T) {
	f := initFixture(t)
	alice, bob := newAccount(t), newAccount(t)
	first := f.giveaway(alice, 2)

	f.resetEvents()
	require.NoError(t, f.keeper.Transfer(f.ctx, alice, alice, bob, first))
	require.True(t, f.hasEvent(types.EventTypeTransfer))

	owner, err := f.keeper.OwnerOf(f.ctx, first)
	require.NoError(t, err)
	require.Equal(t, bob, owner)

	aliceBal, err := f.keeper.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	bobBal, err := f.keeper.BalanceOf(f.ctx, bob)
	require.NoError(t, err)
	require.Equal(t, uint64(1), aliceBal)
	require.Equal(t, uint64(1), bobBal)
}

func TestTransferStaleFromFails(t *testing.T) {
	f := initFixture(t)
	alice, bob := newAccount(t), newAccount(t)
	id := f.giveaway(alice, 1)

	require.NoError(t, f.keeper.Transfer(f.ctx, alice, alice, bob, id))
	err := f.keeper.Transfer(f.ctx, alice, alice, bob, id)
	require.ErrorIs(t, err, types.ErrIncorrectOwner)

	require.NoError(t, f.keeper.Transfer(f.ctx, bob, bob, alice, id))
}

func TestTransferRejects(t *testing.T) {
	f := initFixture(t)
	alice, bob, eve := newAccount(t), newAccount(t), newAccount(t)
	id := f.giveaway(alice, 1)

	require.ErrorIs(t, f.keeper.Transfer(f.ctx, alice, alice, bob, 99), types.ErrTokenNotExist)
	require.ErrorIs(t, f.keeper.Transfer(f.ctx, alice, alice, nil, id), types.ErrZeroAddress)
	require.ErrorIs(t, f.keeper.Transfer(f.ctx, eve, alice, bob, id), types.ErrUnauthorized)

	require.ErrorIs(t, f.keeper.SetAssetValidity(f.ctx, alice, id, false), types.ErrUnauthorized)
	require.NoError(t, f.keeper.SetAssetValidity(f.ctx, f.owner, id, false))
	valid, err := f.keeper.IsValid(f.ctx, id)
	require.NoError(t, err)
	require.False(t, valid)
	require.ErrorIs(t, f.keeper.Transfer(f.ctx, alice, alice, bob, id), types.ErrInvalidToken)

	require.NoError(t, f.keeper.SetAssetValidity(f.ctx, f.owner, id, true))
	require.NoError(t, f.keeper.Transfer(f.ctx, alice, alice, bob, id))

	require.ErrorIs(t, f.keeper.SetAssetValidity(f.ctx, f.owner, 99, false), types.ErrTokenNotExist)
}

func TestTransferByOperator(t *testing.T) {
	f := initFixture(t)
	alice, bob, market := newAccount(t), newAccount(t), newAccount(t)
	id := f.giveaway(alice, 1)

	require.ErrorIs(t, f.keeper.SetApprovalForAll(f.ctx, alice, alice, true), types.ErrInvalidInput)
	require.NoError(t, f.keeper.SetApprovalForAll(f.ctx, alice, market, true))
	approved, err := f.keeper.IsApprovedForAll(f.ctx, alice, market)
	require.NoError(t, err)
	require.True(t, approved)

	require.NoError(t, f.keeper.Transfer(f.ctx, market, alice, bob, id))

	require.NoError(t, f.keeper.SetApprovalForAll(f.ctx, bob, market, true))
	require.NoError(t, f.keeper.SetApprovalForAll(f.ctx, bob, market, false))
	require.ErrorIs(t, f.keeper.Transfer(f.ctx, market, bob, alice, id), types.ErrUnauthorized)
}

func TestTokensOfOwner(t *testing.T) {
	f := initFixture(t)
	alice, bob := newAccount(t), newAccount(t)
	f.giveaway(alice, 3) // 0, 1, 2
	f.giveaway(bob, 2)   // 3, 4
	f.giveaway(alice, 2) // 5, 6

	require.NoError(t, f.keeper.Transfer(f.ctx, bob, bob, alice, 3))

	all, err := f.keeper.TokensOfOwner(f.ctx, alice, 0, 100)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 1, 2, 3, 5, 6}, all)

	page, err := f.keeper.TokensOfOwner(f.ctx, alice, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3, 5}, page)

	empty, err := f.keeper.TokensOfOwner(f.ctx, alice, 0, 0)
	require.NoError(t, err)
	require.Empty(t, empty)

	empty, err = f.keeper.TokensOfOwner(f.ctx, alice, 6, 10)
	require.NoError(t, err)
	require.Empty(t, empty)

	none, err := f.keeper.TokensOfOwner(f.ctx, newAccount(t), 0, 10)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestOwnerOfUnissued(t *testing.T) {
	f := initFixture(t)

	_, err := f.keeper.OwnerOf(f.ctx, 0)
	require.ErrorIs(t, err, types.ErrTokenNotExist)

	_, err = f.keeper.IsValid(f.ctx, 0)
	require.ErrorIs(t, err, types.ErrTokenNotExist)

	_, err = f.keeper.BalanceOf(f.ctx, nil)
	require.ErrorIs(t, err, types.ErrZeroAddress)
}

func TestExternalRegistryBurn(t *testing.T) {
	f := initFixture(t)
	alice := newAccount(t)

	first, err := f.external.Issue(f.ctx, alice, 2)
	require.NoError(t, err)
	require.NoError(t, f.external.Burn(f.ctx, first))

	_, err = f.external.OwnerOf(f.ctx, first)
	require.ErrorIs(t, err, types.ErrTokenNotExist)
	bal, err := f.external.BalanceOf(f.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1), bal)

	// burned ids are never reallocated
	next, err := f.external.Issue(f.ctx, alice, 1)
	require.NoError(t, err)
	require.Equal(t, first+2, next)

	require.ErrorIs(t, f.external.Burn(f.ctx, first), types.ErrTokenNotExist)
}
