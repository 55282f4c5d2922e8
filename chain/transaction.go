// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type (
	ActionRegistry = *codec.TypeParser[Action]
	AuthRegistry   = *codec.TypeParser[Auth]
)

type Transaction struct {
	Base *Base `json:"base"`

	Actions []Action `json:"actions"`
	Auth    Auth     `json:"auth"`

	digest    []byte
	bytes     []byte
	size      int
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, actions []Action) *Transaction {
	return &Transaction{
		Base:    base,
		Actions: actions,
	}
}

// Digest returns the bytes covered by the signatures of [Auth].
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.ByteLen
	for _, action := range t.Actions {
		size += consts.ByteLen + action.Size()
	}
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.marshalUnsigned(p)
	return p.Bytes(), p.Err()
}

func (t *Transaction) Sign(
	factory AuthFactory,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	// Ensure transaction is fully initialized and correct by reloading it from
	// bytes
	size := len(msg) + consts.ByteLen + t.Auth.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	p = codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
	return UnmarshalTx(p, actionRegistry, authRegistry)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

func (t *Transaction) MaxFee() uint64 { return t.Base.MaxFee }

// Sponsor is the [codec.Address] that pays fees for this transaction.
func (t *Transaction) Sponsor() codec.Address { return t.Auth.Sponsor() }

// Verify checks the signatures of [Auth] against the digest.
func (t *Transaction) Verify(ctx context.Context) error {
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	return t.Auth.Verify(ctx, msg)
}

func (t *Transaction) StateKeys(bh BalanceHandler) (state.Keys, error) {
	if t.stateKeys != nil {
		return t.stateKeys, nil
	}
	stateKeys := make(state.Keys)

	// Verify the formatting of state keys passed by the actions
	for i, action := range t.Actions {
		actionKeys := action.StateKeys(t.Auth.Actor(), CreateActionID(t.id, uint8(i)))
		for k, v := range actionKeys {
			if !keys.Valid([]byte(k)) {
				return nil, ErrInvalidKeyValue
			}
			// [Add] will take the union of key permissions
			stateKeys.Add(k, v)
		}
	}
	for k, v := range bh.SponsorStateKeys(t.Auth.Sponsor()) {
		if !keys.Valid([]byte(k)) {
			return nil, ErrInvalidKeyValue
		}
		stateKeys.Add(k, v)
	}

	// Cache keys if called again
	t.stateKeys = stateKeys
	return stateKeys, nil
}

// Execute runs every action on [ts] and charges the sponsor. If any step
// fails, [ts] is rolled back to where it started and the error is returned.
func (t *Transaction) Execute(
	ctx context.Context,
	r Rules,
	bh BalanceHandler,
	ts *tstate.TStateView,
	timestamp int64,
) (*Result, error) {
	if err := t.Base.Execute(r, timestamp); err != nil {
		return nil, err
	}
	if len(t.Actions) > int(r.GetMaxActionsPerTx()) {
		return nil, ErrTooManyActions
	}

	start := ts.OpIndex()
	result, err := t.execute(ctx, r, bh, ts, timestamp)
	if err != nil {
		ts.Rollback(ctx, start)
		return nil, err
	}
	return result, nil
}

func (t *Transaction) execute(
	ctx context.Context,
	r Rules,
	bh BalanceHandler,
	ts *tstate.TStateView,
	timestamp int64,
) (*Result, error) {
	outputs := make([]codec.Typed, 0, len(t.Actions))
	for i, action := range t.Actions {
		output, err := action.Execute(ctx, r, ts, timestamp, t.Auth.Actor(), CreateActionID(t.id, uint8(i)))
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		outputs = append(outputs, output)
	}

	fee, err := t.Fee(r, bh, ts)
	if err != nil {
		return nil, err
	}
	if fee > t.Base.MaxFee {
		return nil, fmt.Errorf("%w: fee=%d max=%d", ErrMaxFeeExceeded, fee, t.Base.MaxFee)
	}
	if err := bh.Deduct(ctx, t.Auth.Sponsor(), ts, fee); err != nil {
		return nil, err
	}
	return &Result{
		TxID:    t.id,
		Success: true,
		Outputs: outputs,
		Fee:     fee,
	}, nil
}

// Fee prices the storage touched by [ts] so far. Sponsor keys are always
// charged as written at their max chunks because paying the fee writes them.
func (t *Transaction) Fee(r Rules, bh BalanceHandler, ts *tstate.TStateView) (uint64, error) {
	allocates, writes := ts.KeyOperations()
	fee := r.GetBaseFee()
	var err error
	for _, chunks := range allocates {
		fee, err = addStorageFee(fee, r.GetStorageKeyAllocateFee(), r.GetStorageValueAllocateFee(), chunks)
		if err != nil {
			return 0, err
		}
	}
	sponsorKeys := bh.SponsorStateKeys(t.Auth.Sponsor())
	for k, chunks := range writes {
		if _, ok := sponsorKeys[k]; ok {
			continue
		}
		fee, err = addStorageFee(fee, r.GetStorageKeyWriteFee(), r.GetStorageValueWriteFee(), chunks)
		if err != nil {
			return 0, err
		}
	}
	for k := range sponsorKeys {
		maxChunks, ok := keys.MaxChunks([]byte(k))
		if !ok {
			return 0, ErrInvalidKeyValue
		}
		fee, err = addStorageFee(fee, r.GetStorageKeyWriteFee(), r.GetStorageValueWriteFee(), maxChunks)
		if err != nil {
			return 0, err
		}
	}
	return fee, nil
}

func addStorageFee(fee, keyFee, chunkFee uint64, chunks uint16) (uint64, error) {
	valueFee, err := smath.Mul64(uint64(chunks), chunkFee)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFeeOverflow, err)
	}
	fee, err = smath.Add64(fee, keyFee)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFeeOverflow, err)
	}
	fee, err = smath.Add64(fee, valueFee)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFeeOverflow, err)
	}
	return fee, nil
}

func (t *Transaction) marshalUnsigned(p *codec.Packer) {
	t.Base.Marshal(p)
	p.PackByte(uint8(len(t.Actions)))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	t.marshalUnsigned(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func UnmarshalTx(
	p *codec.Packer,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	actions, err := unmarshalActions(p, actionRegistry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal actions", err)
	}
	digest := p.Offset()
	authType := p.UnpackByte()
	unmarshalAuth, ok := authRegistry.LookupIndex(authType)
	if !ok {
		return nil, fmt.Errorf("%w: %d is unknown auth type", ErrInvalidObject, authType)
	}
	auth, err := unmarshalAuth(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	var tx Transaction
	tx.Base = base
	tx.Actions = actions
	tx.Auth = auth
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}

// ParseTx decodes a single transaction that must span all of [b].
func ParseTx(b []byte, actionRegistry ActionRegistry, authRegistry AuthRegistry) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, actionRegistry, authRegistry)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: trailing bytes", ErrInvalidObject)
	}
	return tx, nil
}

func unmarshalActions(p *codec.Packer, actionRegistry ActionRegistry) ([]Action, error) {
	actionCount := p.UnpackByte()
	if err := p.Err(); err != nil {
		return nil, err
	}
	if actionCount == 0 {
		return nil, ErrNoActions
	}
	actions := make([]Action, 0, actionCount)
	for i := uint8(0); i < actionCount; i++ {
		actionType := p.UnpackByte()
		unmarshalAction, ok := actionRegistry.LookupIndex(actionType)
		if !ok {
			return nil, fmt.Errorf("%w: %d is unknown action type", ErrInvalidObject, actionType)
		}
		action, err := unmarshalAction(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal action", err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// CreateActionID derives the ID of the action at [idx] in transaction [txID].
func CreateActionID(txID ids.ID, idx uint8) ids.ID {
	return txID.Prefix(uint64(idx))
}
