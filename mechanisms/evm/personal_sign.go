// Package evm implements the Ethereum-compatible cryptographic core:
// personal_sign preimage construction, Keccak-256 digesting, and secp256k1
// public-key recovery to a 20-byte address. Everything here is pure
// computation — no state, no I/O — so callers may invoke it speculatively
// (for example during mempool admission checks) without committing anything.
package evm

import (
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
)

// signedMessagePrefix is the literal prefix Ethereum's personal_sign and
// eth_sign RPCs prepend before hashing. The byte layout that follows it is
// binding: decimal payload length, then the payload itself.
const signedMessagePrefix = "\x19Ethereum Signed Message:\n"

// SignableMessage builds the preimage that an Ethereum wallet signs for
// body ‖ suffix: the personal_sign prefix, the combined byte length of
// body and suffix as decimal ASCII digits with no leading zeros (a length
// of zero renders as "0"), then body, then suffix.
//
// Any deviation from this layout breaks interoperability with
// Ethereum-ecosystem signers.
func SignableMessage(body, suffix []byte) []byte {
	n := strconv.Itoa(len(body) + len(suffix))

	out := make([]byte, 0, len(signedMessagePrefix)+len(n)+len(body)+len(suffix))
	out = append(out, signedMessagePrefix...)
	out = append(out, n...)
	out = append(out, body...)
	out = append(out, suffix...)
	return out
}

// HashMessage returns the Keccak-256 digest of the personal_sign preimage
// of body ‖ suffix. This is the 32-byte hash the signature is taken over.
//
// Keccak-256 here is the pre-standardization variant used by Ethereum,
// not NIST SHA3-256.
func HashMessage(body, suffix []byte) []byte {
	return crypto.Keccak256(SignableMessage(body, suffix))
}
