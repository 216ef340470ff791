package bridgeoracle

import (
	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// OriginKind classifies the source of a request the way the hosting
// ledger's dispatch layer does.
type OriginKind int

const (
	// OriginNone is the unsigned-extrinsic origin class: the request
	// arrived without an on-ledger signature, carried only by its own
	// Ethereum proof.
	OriginNone OriginKind = iota
	// OriginSigned is a request dispatched under an on-ledger account
	// signature.
	OriginSigned
	// OriginRoot is the ledger's privileged origin.
	OriginRoot
)

// Origin identifies a request source. Account is set only for OriginSigned.
type Origin struct {
	Kind    OriginKind
	Account types.AccountID
}

// NoneOrigin returns the unsigned-extrinsic origin.
func NoneOrigin() Origin {
	return Origin{Kind: OriginNone}
}

// SignedOrigin returns an origin signed by the given account.
func SignedOrigin(account types.AccountID) Origin {
	return Origin{Kind: OriginSigned, Account: account}
}

// RootOrigin returns the privileged origin.
func RootOrigin() Origin {
	return Origin{Kind: OriginRoot}
}

// Authorizer decides whether a request origin may reach the verification
// entry point. It runs before any cryptographic work.
type Authorizer interface {
	Authorize(origin Origin) error
}

// UnsignedOnly admits only the none (unsigned-extrinsic) origin class,
// matching the hosting ledger's contract for verify-message submissions.
type UnsignedOnly struct{}

// Authorize returns ErrUnauthorized for any origin other than OriginNone.
func (UnsignedOnly) Authorize(origin Origin) error {
	if origin.Kind != OriginNone {
		return ErrUnauthorized
	}
	return nil
}
