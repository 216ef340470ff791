package bridgeoracle

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bridgeoracle/bridgeoracle-go/mechanisms/evm"
	"github.com/bridgeoracle/bridgeoracle-go/registry"
	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// SignerPolicy decides whether a recovered signer address is acceptable
// for the claiming account. The reference ledger behavior computes the
// recovered address but compares it against nothing; which address should
// be expected is deployment policy, so the check is injected rather than
// hard-coded.
type SignerPolicy interface {
	Check(recovered types.EthereumAddress, account types.AccountID) error
}

// AcceptAnySigner accepts every recovered address. This reproduces the
// reference behavior: any structurally valid signature verifies.
type AcceptAnySigner struct{}

// Check implements SignerPolicy.
func (AcceptAnySigner) Check(types.EthereumAddress, types.AccountID) error {
	return nil
}

// ExpectedSigner accepts only signatures that recover to one configured
// address.
type ExpectedSigner struct {
	Address types.EthereumAddress
}

// Check implements SignerPolicy.
func (p ExpectedSigner) Check(recovered types.EthereumAddress, _ types.AccountID) error {
	if recovered != p.Address {
		return NewVerifyError(CodeInvalidSigner,
			fmt.Errorf("recovered %s, expected %s", recovered, p.Address))
	}
	return nil
}

// AdmissionTicket is the decision object handed to the pending-pool
// admission layer for an accepted submission.
type AdmissionTicket struct {
	// Priority orders the submission among pending peers.
	Priority uint64 `json:"priority"`
	// Requires lists capability tags that must be provided by other
	// submissions first. Verify-message submissions depend on nothing.
	Requires [][]byte `json:"requires"`
	// Provides lists the capability tags this submission provides; the
	// admission layer deduplicates concurrent submissions by tag. A
	// verify-message submission provides one tag derived from the
	// recovered signer.
	Provides [][]byte `json:"provides"`
	// Longevity bounds how long the submission may be retained.
	Longevity uint64 `json:"longevity"`
	// Propagate permits rebroadcasting the submission to peers.
	Propagate bool `json:"propagate"`
}

// ProvidesTag returns the capability tag a verify-message submission
// provides: the "claims" label followed by the recovered signer address.
func ProvidesTag(signer types.EthereumAddress) []byte {
	tag := make([]byte, 0, len(providesTagLabel)+types.AddressLength)
	tag = append(tag, providesTagLabel...)
	tag = append(tag, signer[:]...)
	return tag
}

// Service orchestrates signature recovery and the message registry to
// answer whether an (account, message, signature) triple is acceptable.
// It is the single entry point for both the state-mutating verification
// operation and the admission-control check for unsigned submissions.
//
// Calls run synchronously to completion against a consistent registry
// snapshot; the service holds no locks of its own. Commits are serialized
// by the hosting ledger, admission checks may run concurrently.
type Service struct {
	registry *registry.Registry
	auth     Authorizer
	events   EventSink
	policy   SignerPolicy
	log      *zap.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithAuthorizer replaces the origin authorization check.
func WithAuthorizer(auth Authorizer) ServiceOption {
	return func(s *Service) { s.auth = auth }
}

// WithEventSink replaces the event sink.
func WithEventSink(sink EventSink) ServiceOption {
	return func(s *Service) { s.events = sink }
}

// WithSignerPolicy replaces the signer-match policy.
func WithSignerPolicy(policy SignerPolicy) ServiceOption {
	return func(s *Service) { s.policy = policy }
}

// WithLogger replaces the service logger.
func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService creates a verification service over the given registry.
// Defaults: unsigned-only authorization, accept-any signer policy, no
// event sink, no logging.
func NewService(reg *registry.Registry, opts ...ServiceOption) *Service {
	s := &Service{
		registry: reg,
		auth:     UnsignedOnly{},
		events:   NopSink{},
		policy:   AcceptAnySigner{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VerifyMessage is the sole state-mutating entry point. It authorizes the
// origin, rejects messages that already verified, recovers the signer from
// the signature over account ‖ message, applies the signer policy, and on
// success marks the message verified and emits a MessageVerified event.
//
// Failure modes, in check order: ErrUnauthorized, ErrAlreadyVerified,
// ErrInvalidSignature, ErrInvalidSigner. A failed call leaves the registry
// untouched, so the same message may be retried with a corrected
// signature — but never after a success.
func (s *Service) VerifyMessage(
	ctx context.Context,
	origin Origin,
	account types.AccountID,
	message types.Message,
	signature types.Signature,
) error {
	if err := s.auth.Authorize(origin); err != nil {
		return err
	}

	recovered, err := s.check(account, message, signature)
	if err != nil {
		s.log.Debug("verification rejected",
			zap.Stringer("account", account),
			zap.Error(err),
		)
		return err
	}

	if err := s.registry.MarkVerified(message); err != nil {
		return fmt.Errorf("failed to record verification: %w", err)
	}
	s.events.Emit(Event{Account: account, Message: message, Verified: true})

	s.log.Info("message verified",
		zap.Stringer("account", account),
		zap.Stringer("signer", recovered),
	)
	return nil
}

// CheckAdmission decides whether an unsigned verify-message submission is
// well-formed enough to hold in the pending pool and propagate to peers.
// It runs the same authorization, deduplication, and recovery checks as
// VerifyMessage but never mutates the registry and never emits an event:
// it is safe to call concurrently and repeatedly with identical results.
//
// On acceptance it returns a ticket carrying the fixed admission priority,
// no prerequisites, a provides tag for the recovered signer (so the pool
// can deduplicate submissions claiming the same signer), unbounded
// retention, and permission to rebroadcast.
func (s *Service) CheckAdmission(
	ctx context.Context,
	account types.AccountID,
	message types.Message,
	signature types.Signature,
) (*AdmissionTicket, error) {
	// Admission candidates arrive from the unsigned pipeline by
	// construction; the authorizer still gets its say.
	if err := s.auth.Authorize(NoneOrigin()); err != nil {
		return nil, err
	}

	recovered, err := s.check(account, message, signature)
	if err != nil {
		return nil, err
	}

	return &AdmissionTicket{
		Priority:  AdmissionPriority,
		Requires:  nil,
		Provides:  [][]byte{ProvidesTag(recovered)},
		Longevity: AdmissionLongevity,
		Propagate: true,
	}, nil
}

// MessageState returns the stored verification flag for message, and
// whether any entry exists.
func (s *Service) MessageState(message types.Message) (verified bool, present bool, err error) {
	return s.registry.State(message)
}

// check runs the shared, side-effect-free portion of both entry points:
// deduplication, recovery, and the signer policy.
func (s *Service) check(
	account types.AccountID,
	message types.Message,
	signature types.Signature,
) (types.EthereumAddress, error) {
	verified, err := s.registry.IsVerified(message)
	if err != nil {
		return types.EthereumAddress{}, fmt.Errorf("registry lookup: %w", err)
	}
	if verified {
		return types.EthereumAddress{}, ErrAlreadyVerified
	}

	recovered, ok := evm.RecoverAddress(signature, account.Encode(), message.Bytes())
	if !ok {
		return types.EthereumAddress{}, ErrInvalidSignature
	}

	if err := s.policy.Check(recovered, account); err != nil {
		return types.EthereumAddress{}, err
	}

	return recovered, nil
}
