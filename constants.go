// Package bridgeoracle bridges off-chain Ethereum-signed attestations into
// ledger state. A caller presents a 256-byte message with a recoverable
// ECDSA signature over it; the service recovers the signer's Ethereum
// address and accepts each distinct message at most once.
package bridgeoracle

import "math"

const (
	// Version is the module version.
	Version = "1.0.0"

	// AdmissionPriority is the fixed priority assigned to every admitted
	// verify-message submission in the pending pool.
	AdmissionPriority uint64 = 100

	// AdmissionLongevity is the retention bound for admitted submissions:
	// they never expire from the pending pool.
	AdmissionLongevity uint64 = math.MaxUint64

	// providesTagLabel prefixes the recovered signer address in the
	// capability tag an admitted submission provides.
	providesTagLabel = "claims"
)
