// Package registry tracks, per distinct message, whether it has already
// been verified. The registry itself is thin bookkeeping over an injected
// keyed-storage capability: the hosting ledger owns and persists the state,
// the registry only defines its meaning.
package registry

import (
	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// Store is the persistent keyed-storage capability backing the registry.
//
// Get reports the stored flag for msg and whether msg was present at all.
// Put inserts or overwrites the flag for msg. Implementations must be safe
// for concurrent readers; writes are serialized by the hosting ledger's
// execution model, not by the store.
type Store interface {
	Get(msg types.Message) (verified bool, present bool, err error)
	Put(msg types.Message, verified bool) error
}

// Registry answers whether a message has been verified and records
// successful verifications. An entry, once present, is terminal: the
// verification service checks IsVerified before calling MarkVerified, and
// MarkVerified does not re-check — the at-most-once guarantee is the
// caller's protocol, enforced one level up.
type Registry struct {
	store Store
}

// New creates a Registry over the given store.
func New(store Store) *Registry {
	return &Registry{store: store}
}

// IsVerified reports whether msg has been successfully verified. Absence
// means false; failed verification attempts leave no trace.
func (r *Registry) IsVerified(msg types.Message) (bool, error) {
	verified, present, err := r.store.Get(msg)
	if err != nil {
		return false, err
	}
	return present && verified, nil
}

// MarkVerified records a successful verification of msg.
func (r *Registry) MarkVerified(msg types.Message) error {
	return r.store.Put(msg, true)
}

// State returns the raw stored flag for msg and whether an entry exists,
// for read accessors that need to distinguish "absent" from "false".
func (r *Registry) State(msg types.Message) (verified bool, present bool, err error) {
	return r.store.Get(msg)
}
