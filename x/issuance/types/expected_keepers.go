package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExternalRegistry is the collection whose units are consumed by redemption.
type ExternalRegistry interface {
	OwnerOf(ctx context.Context, id uint64) (sdk.AccAddress, error)
	Burn(ctx context.Context, id uint64) error
}

// TransferHooks observe ownership changes after they are written.
type TransferHooks interface {
	AfterAssetTransfer(ctx context.Context, id uint64, from, to sdk.AccAddress) error
}
