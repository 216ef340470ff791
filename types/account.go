package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// AccountIDLength is the byte length of a ledger account identifier.
const AccountIDLength = 32

// ErrInvalidAccountIDLength is returned when an account identifier does
// not decode to exactly 32 bytes.
var ErrInvalidAccountIDLength = errors.New("invalid account id length")

// AccountID is the 32-byte on-ledger account identity a verification
// request claims. The Ethereum signing identity is distinct: the signer
// commits to the account by signing over its canonical encoding, which
// ties each signature to one account and blocks cross-account replay.
type AccountID [AccountIDLength]byte

// AccountIDFromBytes copies b into an AccountID, rejecting any length
// other than 32 bytes.
func AccountIDFromBytes(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != AccountIDLength {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAccountIDLength, AccountIDLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ParseAccountID decodes an account identifier from 64 hex characters
// with an optional "0x" prefix.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID

	h := strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(h)
	if err != nil {
		return id, fmt.Errorf("invalid account id hex: %w", err)
	}

	return AccountIDFromBytes(raw)
}

// Encode returns the canonical byte encoding of the account identity.
// This is the exact byte string an off-chain signer must include as the
// body of the signed preimage.
func (id AccountID) Encode() []byte {
	return id[:]
}

// String formats the account identifier as 0x-prefixed lowercase hex.
func (id AccountID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// MarshalJSON encodes the account identifier as its 0x-prefixed hex string.
func (id AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes the account identifier from a JSON hex string,
// enforcing the fixed 32-byte length.
func (id *AccountID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccountID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
