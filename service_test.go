package bridgeoracle_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bridgeoracle "github.com/bridgeoracle/bridgeoracle-go"
	"github.com/bridgeoracle/bridgeoracle-go/mechanisms/evm"
	"github.com/bridgeoracle/bridgeoracle-go/registry"
	"github.com/bridgeoracle/bridgeoracle-go/types"
)

const testKeyHex = "0123456789012345678901234567890123456789012345678901234567890123"

// recordingSink captures emitted events for assertions.
type recordingSink struct {
	events []bridgeoracle.Event
}

func (s *recordingSink) Emit(e bridgeoracle.Event) {
	s.events = append(s.events, e)
}

type fixture struct {
	store   *registry.MemoryStore
	sink    *recordingSink
	svc     *bridgeoracle.Service
	account types.AccountID
	message types.Message
	sig     types.Signature
	signer  types.EthereumAddress
}

func newFixture(t *testing.T, opts ...bridgeoracle.ServiceOption) *fixture {
	t.Helper()

	store := registry.NewMemoryStore()
	sink := &recordingSink{}

	account, err := types.AccountIDFromBytes(bytes.Repeat([]byte{0x11}, types.AccountIDLength))
	require.NoError(t, err)
	message, err := types.MessageFromBytes(bytes.Repeat([]byte{0x22}, types.MessageLength))
	require.NoError(t, err)

	key, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)
	raw, err := crypto.Sign(evm.HashMessage(account.Encode(), message.Bytes()), key)
	require.NoError(t, err)
	sig, err := types.SignatureFromBytes(raw)
	require.NoError(t, err)

	opts = append([]bridgeoracle.ServiceOption{bridgeoracle.WithEventSink(sink)}, opts...)
	return &fixture{
		store:   store,
		sink:    sink,
		svc:     bridgeoracle.NewService(registry.New(store), opts...),
		account: account,
		message: message,
		sig:     sig,
		signer:  types.EthereumAddress(crypto.PubkeyToAddress(key.PublicKey)),
	}
}

func TestVerifyMessageSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig)
	require.NoError(t, err)

	verified, present, err := f.svc.MessageState(f.message)
	require.NoError(t, err)
	assert.True(t, present)
	assert.True(t, verified)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, f.account, f.sink.events[0].Account)
	assert.Equal(t, f.message, f.sink.events[0].Message)
	assert.True(t, f.sink.events[0].Verified)
}

func TestVerifyMessageAtMostOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig))

	// The same message must never verify twice, regardless of the account
	// or signature supplied on the retry.
	err := f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig)
	assert.ErrorIs(t, err, bridgeoracle.ErrAlreadyVerified)

	otherAccount, _ := types.AccountIDFromBytes(bytes.Repeat([]byte{0x99}, types.AccountIDLength))
	err = f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), otherAccount, f.message, f.sig)
	assert.ErrorIs(t, err, bridgeoracle.ErrAlreadyVerified)

	assert.Len(t, f.sink.events, 1, "replays must not emit events")
}

func TestVerifyMessageUnauthorized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, origin := range []bridgeoracle.Origin{
		bridgeoracle.SignedOrigin(f.account),
		bridgeoracle.RootOrigin(),
	} {
		err := f.svc.VerifyMessage(ctx, origin, f.account, f.message, f.sig)
		assert.ErrorIs(t, err, bridgeoracle.ErrUnauthorized)
	}

	// Authorization fails before any cryptographic or storage work.
	assert.Equal(t, 0, f.store.Len())
	assert.Empty(t, f.sink.events)
}

func TestVerifyMessageInvalidSignature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := f.sig
	bad[64] = 5

	err := f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, bad)
	assert.ErrorIs(t, err, bridgeoracle.ErrInvalidSignature)

	// A failed attempt leaves no trace, so the message stays retriable.
	assert.Equal(t, 0, f.store.Len())
	assert.Empty(t, f.sink.events)

	require.NoError(t, f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig))
}

func TestVerifyMessageCrossAccountReplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The signature commits to the account encoding; replaying it under a
	// different account recovers a different (unintended) signer. With an
	// expected-signer policy in force that replay must fail.
	svc := bridgeoracle.NewService(registry.New(registry.NewMemoryStore()),
		bridgeoracle.WithSignerPolicy(bridgeoracle.ExpectedSigner{Address: f.signer}))

	require.NoError(t, svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig))

	otherAccount, _ := types.AccountIDFromBytes(bytes.Repeat([]byte{0x99}, types.AccountIDLength))
	otherMessage, _ := types.MessageFromBytes(bytes.Repeat([]byte{0x33}, types.MessageLength))
	err := svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), otherAccount, otherMessage, f.sig)
	assert.ErrorIs(t, err, bridgeoracle.ErrInvalidSigner)
}

func TestExpectedSignerPolicy(t *testing.T) {
	f := newFixture(t, bridgeoracle.WithSignerPolicy(bridgeoracle.ExpectedSigner{
		Address: f2Address(t),
	}))
	ctx := context.Background()

	err := f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig)
	assert.ErrorIs(t, err, bridgeoracle.ErrInvalidSigner)
	assert.Equal(t, 0, f.store.Len())
}

func f2Address(t *testing.T) types.EthereumAddress {
	t.Helper()
	addr, err := types.ParseAddress("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	return addr
}

func TestCheckAdmissionTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ticket, err := f.svc.CheckAdmission(ctx, f.account, f.message, f.sig)
	require.NoError(t, err)

	assert.Equal(t, bridgeoracle.AdmissionPriority, ticket.Priority)
	assert.Empty(t, ticket.Requires)
	assert.Equal(t, [][]byte{bridgeoracle.ProvidesTag(f.signer)}, ticket.Provides)
	assert.Equal(t, bridgeoracle.AdmissionLongevity, ticket.Longevity)
	assert.True(t, ticket.Propagate)
}

func TestCheckAdmissionIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CheckAdmission(ctx, f.account, f.message, f.sig)
	require.NoError(t, err)
	second, err := f.svc.CheckAdmission(ctx, f.account, f.message, f.sig)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, f.store.Len(), "admission checks must not mutate the registry")
	assert.Empty(t, f.sink.events, "admission checks must not emit events")
}

func TestCheckAdmissionRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := f.sig
	bad[0] ^= 0xff
	bad[64] = 9
	_, err := f.svc.CheckAdmission(ctx, f.account, f.message, bad)
	assert.ErrorIs(t, err, bridgeoracle.ErrInvalidSignature)

	code, ok := bridgeoracle.ValidityCode(err)
	require.True(t, ok)
	assert.Equal(t, bridgeoracle.ValidityInvalidSignature, code)

	// Once the message commits, admission rejects it too.
	require.NoError(t, f.svc.VerifyMessage(ctx, bridgeoracle.NoneOrigin(), f.account, f.message, f.sig))
	_, err = f.svc.CheckAdmission(ctx, f.account, f.message, f.sig)
	assert.ErrorIs(t, err, bridgeoracle.ErrAlreadyVerified)

	code, ok = bridgeoracle.ValidityCode(err)
	require.True(t, ok)
	assert.Equal(t, bridgeoracle.ValidityAlreadyValidated, code)
}

func TestCheckAdmissionConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := f.svc.CheckAdmission(ctx, f.account, f.message, f.sig)
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
	assert.Equal(t, 0, f.store.Len())
}

func TestProvidesTag(t *testing.T) {
	f := newFixture(t)

	tag := bridgeoracle.ProvidesTag(f.signer)
	assert.Equal(t, append([]byte("claims"), f.signer[:]...), tag)
}
