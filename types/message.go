package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MessageLength is the byte length of a verifiable message payload.
const MessageLength = 256

// ErrInvalidMessageLength is returned when a message does not decode to
// exactly 256 bytes.
var ErrInvalidMessageLength = errors.New("invalid message length")

// Message is a fixed 256-byte opaque payload. It carries no internal
// structure: it is the input the off-chain signer committed to, and the
// deduplication key for the at-most-once verification guarantee. Two
// messages are equal iff all 256 bytes match.
type Message [MessageLength]byte

// MessageFromBytes copies b into a Message, rejecting any length other
// than 256 bytes.
func MessageFromBytes(b []byte) (Message, error) {
	var m Message
	if len(b) != MessageLength {
		return m, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidMessageLength, MessageLength, len(b))
	}
	copy(m[:], b)
	return m, nil
}

// ParseMessage decodes a message from 512 hex characters with an optional
// "0x" prefix.
func ParseMessage(s string) (Message, error) {
	var m Message

	h := strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(h)
	if err != nil {
		return m, fmt.Errorf("invalid message hex: %w", err)
	}

	return MessageFromBytes(raw)
}

// Bytes returns the message payload as a byte slice.
func (m Message) Bytes() []byte {
	return m[:]
}

// String formats the message as 0x-prefixed lowercase hex.
func (m Message) String() string {
	return "0x" + hex.EncodeToString(m[:])
}

// MarshalJSON encodes the message as its 0x-prefixed hex string.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the message from a JSON hex string, enforcing the
// fixed 256-byte length.
func (m *Message) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMessage(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
