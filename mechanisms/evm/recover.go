package evm

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// RecoverAddress recovers the Ethereum address that produced sig over the
// personal_sign preimage of body ‖ suffix.
//
// This function uses secp256k1 public key recovery rather than verification
// against a known key: the on-ledger account identity and the off-chain
// Ethereum signing identity are distinct, and the recovered address is the
// datum of interest. It handles the Ethereum-specific v value adjustment
// (27/28 → 0/1 for recovery).
//
// Args:
//
//	sig: The 65-byte recoverable signature (r: 32 bytes, s: 32 bytes, v: 1 byte)
//	body: The first segment of the signed payload (the account encoding)
//	suffix: The second segment of the signed payload (the message bytes)
//
// Returns:
//
//	The recovered address and true on success
//	A zero address and false if the recovery id is out of range, the
//	signature is malformed, or the point is not on the curve — cryptographic
//	failure is an expected outcome here, never a panic
//
// Identical inputs always yield identical results; there are no side effects.
func RecoverAddress(sig types.Signature, body, suffix []byte) (types.EthereumAddress, bool) {
	digest := HashMessage(body, suffix)

	// Work on a copy so the caller's signature is never modified.
	raw := make([]byte, types.SignatureLength)
	copy(raw, sig[:])

	// Ethereum wallets emit v = 27 or 28, but crypto.SigToPub expects v = 0 or 1.
	if raw[64] >= 27 {
		raw[64] -= 27
	}

	pubKey, err := crypto.SigToPub(digest, raw)
	if err != nil {
		return types.EthereumAddress{}, false
	}

	// The address is the last 20 bytes of the Keccak-256 hash of the
	// uncompressed public key.
	return types.EthereumAddress(crypto.PubkeyToAddress(*pubKey)), true
}
