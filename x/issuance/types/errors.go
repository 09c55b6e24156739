package types

import errorsmod "cosmossdk.io/errors"

var (
	ErrUnauthorized     = errorsmod.Register(ModuleName, 1101, "unauthorized")
	ErrInvalidInput     = errorsmod.Register(ModuleName, 1102, "invalid input")
	ErrInvalidTime      = errorsmod.Register(ModuleName, 1103, "invalid time")
	ErrInvalidSignature = errorsmod.Register(ModuleName, 1104, "invalid signature")
	ErrNotEnoughQuota   = errorsmod.Register(ModuleName, 1105, "not enough quota")
	ErrExceedAmount     = errorsmod.Register(ModuleName, 1106, "exceed amount")
	ErrInvalidToken     = errorsmod.Register(ModuleName, 1107, "invalid token")
	ErrTokenNotExist    = errorsmod.Register(ModuleName, 1108, "token does not exist")
	ErrZeroAddress      = errorsmod.Register(ModuleName, 1109, "zero address")
	ErrInvalidAddress   = errorsmod.Register(ModuleName, 1110, "invalid address")

	ErrAlreadyRedeemed = errorsmod.Register(ModuleName, 1111, "redemption already used")
	ErrIncorrectOwner  = errorsmod.Register(ModuleName, 1112, "from is not the token owner")
	ErrOverflow        = errorsmod.Register(ModuleName, 1113, "overflow")

	ErrInsufficientBalance = errorsmod.Register(ModuleName, 1114, "insufficient balance")
)
