package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/signing"
	"frensledger/x/issuance/types"
)

// VerifyAllowance checks that sig was produced by the signer designated for
// phase over (recipient, ceiling) and returns ceiling as the recipient's
// lifetime cap. It reads the signer table and writes nothing.
func (k Keeper) VerifyAllowance(ctx context.Context, phase types.Phase, recipient sdk.AccAddress, ceiling uint64, sig []byte) (uint64, error) {
	if !phase.IsSigned() {
		return 0, errorsmod.Wrapf(types.ErrInvalidInput, "%s is not a signed phase", phase)
	}
	signer, err := k.Signer(ctx, phase)
	if err != nil {
		return 0, err
	}
	if types.IsZeroAccount(signer) {
		return 0, errorsmod.Wrapf(types.ErrInvalidSignature, "no signer set for %s", phase)
	}

	recovered, err := signing.RecoverSigner(types.AccountToCommon(recipient), ceiling, sig)
	if err != nil {
		return 0, errorsmod.Wrap(types.ErrInvalidSignature, err.Error())
	}
	if recovered != types.AccountToCommon(signer) {
		return 0, errorsmod.Wrapf(types.ErrInvalidSignature, "recovered %s", recovered.Hex())
	}
	return ceiling, nil
}

func (k Keeper) Signer(ctx context.Context, phase types.Phase) (sdk.AccAddress, error) {
	bz, err := k.Signers.Get(ctx, phase.String())
	if errors.Is(err, collections.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

// SetSigner designates the account whose signatures open phase. Owner only.
func (k Keeper) SetSigner(ctx context.Context, caller sdk.AccAddress, phase types.Phase, account sdk.AccAddress) error {
	if err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if err := requireAccount(account, "signer"); err != nil {
		return err
	}
	if !phase.IsSigned() {
		return errorsmod.Wrapf(types.ErrInvalidInput, "%s is not a signed phase", phase)
	}
	if err := k.Signers.Set(ctx, phase.String(), account); err != nil {
		return err
	}

	k.Logger(ctx).Info("signer updated", "phase", phase.String(), "signer", k.accountString(account))
	k.emit(ctx, types.EventTypeSigner,
		sdk.NewAttribute(types.AttributeKeyPhase, phase.String()),
		sdk.NewAttribute(types.AttributeKeyAccount, k.accountString(account)),
	)
	return nil
}
