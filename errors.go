package bridgeoracle

import (
	"errors"
	"fmt"
)

// Error codes reported by the verification service.
const (
	CodeUnauthorized     = "unauthorized"
	CodeAlreadyVerified  = "message_already_verified"
	CodeInvalidSignature = "invalid_signature"
	CodeInvalidSigner    = "invalid_signer"
)

// VerifyError is a verification failure with a stable machine-readable
// code and an optional underlying cause.
type VerifyError struct {
	Code string
	Err  error
}

// NewVerifyError creates a VerifyError with the given code and cause.
func NewVerifyError(code string, err error) *VerifyError {
	return &VerifyError{Code: code, Err: err}
}

// Error implements the error interface.
func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

// Unwrap returns the underlying cause, if any.
func (e *VerifyError) Unwrap() error {
	return e.Err
}

// Is matches any VerifyError carrying the same code, so wrapped instances
// compare equal to the sentinels below under errors.Is.
func (e *VerifyError) Is(target error) bool {
	t, ok := target.(*VerifyError)
	return ok && t.Code == e.Code
}

// Sentinel failures of the verification service.
var (
	// ErrUnauthorized: the caller lacks the required origin class. Fatal to
	// the request; never retried.
	ErrUnauthorized = NewVerifyError(CodeUnauthorized, nil)

	// ErrAlreadyVerified: the message was committed by an earlier call.
	// Permanent for that exact message.
	ErrAlreadyVerified = NewVerifyError(CodeAlreadyVerified, nil)

	// ErrInvalidSignature: cryptographic recovery failed or the signature
	// is malformed. Retriable with a corrected signature.
	ErrInvalidSignature = NewVerifyError(CodeInvalidSignature, nil)

	// ErrInvalidSigner: the recovered address does not satisfy the
	// configured signer policy.
	ErrInvalidSigner = NewVerifyError(CodeInvalidSigner, nil)
)

// ValidityError is the numeric rejection code reported on the admission
// path. The values are part of the wire contract with peers and must not
// be reordered.
type ValidityError uint8

const (
	// ValidityInvalidSignature: the signature failed recovery.
	ValidityInvalidSignature ValidityError = iota
	// ValidityInvalidSigner: the recovered signer was rejected by policy.
	ValidityInvalidSigner
	// ValidityAlreadyValidated: the message has already been verified.
	ValidityAlreadyValidated
)

// ValidityCode maps a verification failure to its numeric admission
// rejection code. The second result is false for errors that have no
// admission-path representation (storage faults, authorization failures).
func ValidityCode(err error) (ValidityError, bool) {
	var ve *VerifyError
	if !errors.As(err, &ve) {
		return 0, false
	}
	switch ve.Code {
	case CodeInvalidSignature:
		return ValidityInvalidSignature, true
	case CodeInvalidSigner:
		return ValidityInvalidSigner, true
	case CodeAlreadyVerified:
		return ValidityAlreadyValidated, true
	default:
		return 0, false
	}
}
