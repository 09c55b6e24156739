package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/core/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

// HexAddressCodec renders accounts as 0x-prefixed, checksummed hex so that
// accounts recovered from allowance signatures read the same everywhere.
type HexAddressCodec struct{}

var _ address.Codec = HexAddressCodec{}

func (HexAddressCodec) StringToBytes(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if !common.IsHexAddress(text) {
		return nil, fmt.Errorf("invalid hex address %q", text)
	}
	return common.HexToAddress(text).Bytes(), nil
}

func (HexAddressCodec) BytesToString(bz []byte) (string, error) {
	if len(bz) == 0 {
		return "", nil
	}
	if len(bz) != common.AddressLength {
		return "", fmt.Errorf("invalid address length %d", len(bz))
	}
	return common.BytesToAddress(bz).Hex(), nil
}

// IsZeroAccount is true for an empty or all-zero account.
func IsZeroAccount(addr sdk.AccAddress) bool {
	if len(addr) == 0 {
		return true
	}
	for _, b := range addr {
		if b != 0 {
			return false
		}
	}
	return true
}

func AccountFromHex(hex string) (sdk.AccAddress, error) {
	bz, err := HexAddressCodec{}.StringToBytes(hex)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

func AccountHex(addr sdk.AccAddress) string {
	if len(addr) == 0 {
		return ""
	}
	return common.BytesToAddress(addr).Hex()
}

func AccountFromCommon(addr common.Address) sdk.AccAddress {
	return sdk.AccAddress(addr.Bytes())
}

func AccountToCommon(addr sdk.AccAddress) common.Address {
	return common.BytesToAddress(addr)
}
