package app

import (
	errorsmod "cosmossdk.io/errors"
)

const (
	errNotInitialized     uint32 = 2
	errAlreadyInitialized uint32 = 3
)

var (
	ErrNotInitialized     = errorsmod.Register(Name, errNotInitialized, "ledger has no genesis")
	ErrAlreadyInitialized = errorsmod.Register(Name, errAlreadyInitialized, "ledger already initialized")
)
