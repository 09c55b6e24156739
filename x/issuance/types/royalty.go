package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// RoyaltyInfo names the receiver of secondary-sale royalties and the rate in
// basis points.
type RoyaltyInfo struct {
	Receiver string `json:"receiver"`
	Bps      uint32 `json:"bps"`
}

func (r RoyaltyInfo) Validate() error {
	if r.Bps > MaxRoyaltyBps {
		return fmt.Errorf("royalty bps %d exceeds %d", r.Bps, MaxRoyaltyBps)
	}
	if r.Receiver == "" {
		return nil
	}
	if _, err := AccountFromHex(r.Receiver); err != nil {
		return err
	}
	return nil
}

// Amount is salePrice * bps / 10000, rounded down.
func (r RoyaltyInfo) Amount(salePrice sdkmath.Int) sdkmath.Int {
	if r.Bps == 0 || salePrice.IsNil() || !salePrice.IsPositive() {
		return sdkmath.ZeroInt()
	}
	return salePrice.MulRaw(int64(r.Bps)).QuoRaw(int64(MaxRoyaltyBps))
}
