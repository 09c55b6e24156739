package signing

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the [R || S || V] wire size.
const SignatureLength = crypto.SignatureLength

var ErrMalformedSignature = errors.New("malformed allowance signature")

// AllowanceDigest is keccak256(recipient || uint256(ceiling)), the packed
// encoding an allowlist signer commits to.
func AllowanceDigest(recipient common.Address, ceiling uint64) []byte {
	packed := make([]byte, 0, common.AddressLength+32)
	packed = append(packed, recipient.Bytes()...)
	packed = append(packed, math.U256Bytes(new(big.Int).SetUint64(ceiling))...)
	return crypto.Keccak256(packed)
}

// SignBytes wraps the digest in the personal-message prefix that wallets
// apply when signing raw bytes.
func SignBytes(recipient common.Address, ceiling uint64) []byte {
	return accounts.TextHash(AllowanceDigest(recipient, ceiling))
}

// SignAllowance returns a 65 byte signature with V in {27, 28}.
func SignAllowance(key *ecdsa.PrivateKey, recipient common.Address, ceiling uint64) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("signing key cannot be nil")
	}
	sig, err := crypto.Sign(SignBytes(recipient, ceiling), key)
	if err != nil {
		return nil, fmt.Errorf("sign allowance: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverSigner returns the account that produced sig over
// (recipient, ceiling). V may be {0, 1} or {27, 28}.
func RecoverSigner(recipient common.Address, ceiling uint64, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, fmt.Errorf("%w: length %d", ErrMalformedSignature, len(sig))
	}
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if v := normalized[crypto.RecoveryIDOffset]; v >= 27 {
		normalized[crypto.RecoveryIDOffset] = v - 27
	}
	if normalized[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("%w: recovery id %d", ErrMalformedSignature, sig[crypto.RecoveryIDOffset])
	}

	pub, err := crypto.SigToPub(SignBytes(recipient, ceiling), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
