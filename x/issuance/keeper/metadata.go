package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// SetBaseURI sets the prefix of every frens metadata URI. Owner only.
func (k Keeper) SetBaseURI(ctx context.Context, caller sdk.AccAddress, uri string) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := k.BaseURI.Set(ctx, uri); err != nil {
		return err
	}
	k.emit(ctx, types.EventTypeMetadata,
		sdk.NewAttribute(types.AttributeKeyClass, string(types.ClassFrens)),
		sdk.NewAttribute(types.AttributeKeyURI, uri),
	)
	return nil
}

// SetTicketURI sets the single metadata URI shared by all tickets. Owner only.
func (k Keeper) SetTicketURI(ctx context.Context, caller sdk.AccAddress, uri string) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := k.TicketURI.Set(ctx, uri); err != nil {
		return err
	}
	k.emit(ctx, types.EventTypeMetadata,
		sdk.NewAttribute(types.AttributeKeyClass, string(types.ClassTicket)),
		sdk.NewAttribute(types.AttributeKeyURI, uri),
	)
	return nil
}

// TokenURI is the base URI followed by the decimal id. An unset base URI
// yields an empty string.
func (k Keeper) TokenURI(ctx context.Context, id uint64) (string, error) {
	if _, err := k.Assets.OwnerOf(ctx, id); err != nil {
		return "", err
	}
	base, err := getOrZero(ctx, k.BaseURI)
	if err != nil || base == "" {
		return "", err
	}
	return base + strconv.FormatUint(id, 10), nil
}

func (k Keeper) GetTicketURI(ctx context.Context) (string, error) {
	return getOrZero(ctx, k.TicketURI)
}
