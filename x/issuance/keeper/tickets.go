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

// IssueTicketGiveaway credits tickets directly. Owner or authorizer.
func (k Keeper) IssueTicketGiveaway(ctx context.Context, caller, recipient sdk.AccAddress, amount uint64) error {
	if err := k.requireOwnerOrAuthorizer(ctx, caller); err != nil {
		return err
	}
	if err := requireAccount(recipient, "recipient"); err != nil {
		return err
	}
	if amount == 0 {
		return errorsmod.Wrap(types.ErrInvalidInput, "amount must be positive")
	}
	if err := k.Supply.Admit(ctx, types.ClassTicket, k.GetParams(ctx).TicketTiers(), amount); err != nil {
		return err
	}
	if err := k.creditTickets(ctx, recipient, amount); err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeIssue,
		sdk.NewAttribute(types.AttributeKeyPhase, types.PhaseGiveaway.String()),
		sdk.NewAttribute(types.AttributeKeyClass, string(types.ClassTicket)),
		sdk.NewAttribute(types.AttributeKeyRecipient, k.accountString(recipient)),
		sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
	)
	return nil
}

func (k Keeper) creditTickets(ctx context.Context, account sdk.AccAddress, amount uint64) error {
	bal, err := k.TicketBalance(ctx, account)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return types.ErrOverflow
	}
	return k.TicketBalances.Set(ctx, account, bal+amount)
}

func (k Keeper) TicketBalance(ctx context.Context, account sdk.AccAddress) (uint64, error) {
	bal, err := k.TicketBalances.Get(ctx, account)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return bal, err
}

func (k Keeper) TicketsIssued(ctx context.Context) (uint64, error) {
	return k.Supply.Count(ctx, types.ClassTicket)
}

// TransferTickets moves amount tickets from -> to on behalf of caller, who
// must be from or one of its approved operators.
func (k Keeper) TransferTickets(ctx context.Context, caller, from, to sdk.AccAddress, amount uint64) error {
	if amount == 0 {
		return errorsmod.Wrap(types.ErrInvalidInput, "amount must be positive")
	}
	if err := requireAccount(from, "from"); err != nil {
		return err
	}
	if err := requireAccount(to, "to"); err != nil {
		return err
	}
	if !caller.Equals(from) {
		approved, err := k.Assets.IsApprovedForAll(ctx, from, caller)
		if err != nil {
			return err
		}
		if !approved {
			return errorsmod.Wrap(types.ErrUnauthorized, "caller is not owner nor approved")
		}
	}

	bal, err := k.TicketBalance(ctx, from)
	if err != nil {
		return err
	}
	if bal < amount {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%d < %d", bal, amount)
	}
	if bal == amount {
		err = k.TicketBalances.Remove(ctx, from)
	} else {
		err = k.TicketBalances.Set(ctx, from, bal-amount)
	}
	if err != nil {
		return err
	}
	if err := k.creditTickets(ctx, to, amount); err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeTransfer,
		sdk.NewAttribute(types.AttributeKeyClass, string(types.ClassTicket)),
		sdk.NewAttribute(types.AttributeKeyFrom, k.accountString(from)),
		sdk.NewAttribute(types.AttributeKeyTo, k.accountString(to)),
		sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
	)
	return nil
}
