// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/state"
)

type Rules interface {
	GetChainID() ids.ID
	GetValidityWindow() int64 // in milliseconds
	GetMaxActionsPerTx() uint8

	// Charged for every successful transaction.
	GetBaseFee() uint64

	// Invariants:
	// * Creating a new key involves first allocating and then writing
	// * Keys are only charged once per transaction (even if used multiple times)
	GetStorageKeyAllocateFee() uint64
	GetStorageValueAllocateFee() uint64 // per chunk
	GetStorageKeyWriteFee() uint64
	GetStorageValueWriteFee() uint64 // per chunk

	// GetEnforceCounterOwnership requires that only the owner of a counter
	// mutates it.
	GetEnforceCounterOwnership() bool
}

type BalanceHandler interface {
	// SponsorStateKeys is a full enumeration of all database keys that could be touched during fee payment
	// by [addr].
	//
	// All keys specified must be suffixed with the number of chunks that could ever be read from that
	// key (formatted as a big-endian uint16). This is used to automatically calculate storage usage.
	SponsorStateKeys(addr codec.Address) state.Keys
	// CanDeduct returns an error if [amount] cannot be paid by [addr].
	CanDeduct(ctx context.Context, addr codec.Address, im state.Immutable, amount uint64) error
	// Deduct removes [amount] from [addr] during transaction execution to pay fees.
	Deduct(ctx context.Context, addr codec.Address, mu state.Mutable, amount uint64) error
	// AddBalance adds [amount] to [addr].
	AddBalance(ctx context.Context, addr codec.Address, mu state.Mutable, amount uint64) error
	// GetBalance returns the balance of [addr].
	// If [addr] does not exist, this should return 0 and no error.
	GetBalance(ctx context.Context, addr codec.Address, im state.Immutable) (uint64, error)
}

type Action interface {
	codec.Typed

	// Size is the number of bytes it takes to represent this [Action]. This is used to preallocate
	// memory during encoding.
	Size() int
	Marshal(p *codec.Packer)

	// StateKeys is a full enumeration of all database keys that could be touched during execution
	// of an [Action]. All keys must carry a chunk suffix.
	StateKeys(actor codec.Address, actionID ids.ID) state.Keys

	// Execute actually runs the [Action]. Any state changes that the [Action] performs should
	// be done here.
	//
	// If any keys are touched during [Execute] that are not specified in [StateKeys], the transaction
	// will revert.
	//
	// An error fails the whole transaction and none of its changes are kept.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		actionID ids.ID,
	) (codec.Typed, error)
}

type Auth interface {
	codec.Typed

	Size() int
	Marshal(p *codec.Packer)

	// Verify returns an error if the signatures of [Auth] do not cover [msg].
	Verify(ctx context.Context, msg []byte) error

	// Actor is the subject of the [Action] signed.
	//
	// To avoid collisions with other [Auth] modules, this must be prefixed
	// by the [TypeID].
	Actor() codec.Address

	// Sponsor is the fee payer of the transaction signed.
	Sponsor() codec.Address
}

// BatchAuth is implemented by [Auth] whose signatures can be checked in an
// ed25519 batch.
type BatchAuth interface {
	Auth

	AddToBatch(b *ed25519.Batch, msg []byte)
	Signatures() int
}

type AuthFactory interface {
	// Sign is used by helpers, auth object should store internally to be ready for marshaling
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}
