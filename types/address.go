// Package types defines the fixed-size wire values exchanged with the
// verification service: Ethereum addresses, recoverable signatures, the
// 256-byte message payload, and ledger account identifiers. Every value is
// length-validated at the deserialization boundary; once constructed it is
// immutable and compared byte-wise.
package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// AddressLength is the byte length of an Ethereum address.
const AddressLength = 20

var (
	// ErrInvalidAddressLength is returned when a textual address does not
	// decode to exactly 20 bytes.
	ErrInvalidAddressLength = errors.New("invalid ethereum address length")

	// ErrInvalidHexDigit is returned when a textual address contains a
	// character outside [0-9a-fA-F].
	ErrInvalidHexDigit = errors.New("invalid hex digit in ethereum address")
)

// EthereumAddress is a 20-byte Ethereum address.
type EthereumAddress [AddressLength]byte

// ParseAddress decodes an address from its textual form: 40 hex characters
// with an optional "0x" prefix.
//
// Returns:
//
//	The decoded address
//	ErrInvalidAddressLength if the hex portion is not 40 characters
//	ErrInvalidHexDigit if any character is not valid hex
func ParseAddress(s string) (EthereumAddress, error) {
	var addr EthereumAddress

	h := strings.TrimPrefix(s, "0x")
	if len(h) != AddressLength*2 {
		return addr, fmt.Errorf("%w: expected %d hex characters, got %d",
			ErrInvalidAddressLength, AddressLength*2, len(h))
	}

	raw, err := hex.DecodeString(h)
	if err != nil {
		return addr, fmt.Errorf("%w: %s", ErrInvalidHexDigit, h)
	}

	copy(addr[:], raw)
	return addr, nil
}

// Bytes returns the address as a byte slice.
func (a EthereumAddress) Bytes() []byte {
	return a[:]
}

// String formats the address as "0x" followed by 40 lowercase hex characters.
// ParseAddress(a.String()) == a for every address a.
func (a EthereumAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalJSON encodes the address as its 0x-prefixed hex string.
func (a EthereumAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the address from a JSON hex string, enforcing the
// same length and digit checks as ParseAddress.
func (a *EthereumAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
