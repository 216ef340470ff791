package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SignatureLength is the byte length of a recoverable ECDSA signature:
// 32 bytes r, 32 bytes s, 1 byte recovery id.
const SignatureLength = 65

// ErrInvalidSignatureLength is returned when a signature does not decode
// to exactly 65 bytes.
var ErrInvalidSignatureLength = errors.New("invalid signature length")

// Signature is a 65-byte secp256k1 recoverable signature (r ‖ s ‖ v).
// It is opaque to this package; only the recovery primitive interprets
// its contents. Equality is byte-wise.
type Signature [SignatureLength]byte

// SignatureFromBytes copies b into a Signature, rejecting any length
// other than 65 bytes.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignatureLength, SignatureLength, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// ParseSignature decodes a signature from 130 hex characters with an
// optional "0x" prefix.
func ParseSignature(s string) (Signature, error) {
	var sig Signature

	h := strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(h)
	if err != nil {
		return sig, fmt.Errorf("invalid signature hex: %w", err)
	}

	return SignatureFromBytes(raw)
}

// Bytes returns the signature as a byte slice.
func (s Signature) Bytes() []byte {
	return s[:]
}

// String formats the raw signature bytes for diagnostics.
func (s Signature) String() string {
	return fmt.Sprintf("Signature(%v)", s[:])
}

// Hex formats the signature as 0x-prefixed lowercase hex.
func (s Signature) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

// MarshalJSON encodes the signature as its 0x-prefixed hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Hex())
}

// UnmarshalJSON decodes the signature from a JSON hex string, enforcing
// the fixed 65-byte length.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSignature(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
