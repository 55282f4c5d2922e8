// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

const defaultOps = 4

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool

	// chunk accounting for [k] before the op
	pastAllocation maybe.Maybe[uint16]
	pastWrite      maybe.Maybe[uint16]
}

type TStateView struct {
	ts                 *TState
	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on [TState]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op

	scope        state.Keys
	scopeStorage map[string][]byte

	// Store which keys are modified and how large their values were.
	allocations map[string]uint16
	writes      map[string]uint16
}

// NewView returns a view limited to [scope]. [storage] holds the on-disk
// value of every key in [scope] that exists.
func (ts *TState) NewView(scope state.Keys, storage map[string][]byte) *TStateView {
	return &TStateView{
		ts:                 ts,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], len(scope)),

		ops: make([]*op, 0, defaultOps),

		scope:        scope,
		scopeStorage: storage,

		allocations: make(map[string]uint16, len(scope)),
		writes:      make(map[string]uint16, len(scope)),
	}
}

// Rollback restores the TStateView to the ts.op[restorePoint] operation.
func (ts *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]
		restoreChunks(ts.allocations, op.k, op.pastAllocation)
		restoreChunks(ts.writes, op.k, op.pastWrite)

		switch {
		case !op.pastChanged:
			// The key was untouched before this op, so drop it from the view.
			delete(ts.pendingChangedKeys, op.k)
		case !op.pastExists:
			// The key was removed earlier in the view (or by a prior view).
			ts.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
		default:
			ts.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
		}
	}
	ts.ops = ts.ops[:restorePoint]
}

func restoreChunks(m map[string]uint16, k string, past maybe.Maybe[uint16]) {
	if past.IsNothing() {
		delete(m, k)
		return
	}
	m[k] = past.Value()
}

func snapshotChunks(m map[string]uint16, k string) maybe.Maybe[uint16] {
	if v, ok := m[k]; ok {
		return maybe.Some(v)
	}
	return maybe.Nothing[uint16]()
}

// OpIndex returns the number of operations done on ts.
func (ts *TStateView) OpIndex() int {
	return len(ts.ops)
}

// KeyOperations returns the keys allocated and written by this view and the
// number of chunks each one holds.
func (ts *TStateView) KeyOperations() (map[string]uint16, map[string]uint16) {
	return ts.allocations, ts.writes
}

// checkScope returns whether [k] is in scope with [perm].
func (ts *TStateView) checkScope(_ context.Context, k []byte, perm state.Permissions) bool {
	return ts.scope[string(k)].Has(perm)
}

// GetValue returns the value associated with [key]. If [key] is not readable
// in the scope an error is returned.
func (ts *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if !ts.checkScope(ctx, key, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	v, _, exists := ts.getValue(ctx, string(key))
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (ts *TStateView) getValue(ctx context.Context, key string) ([]byte, bool, bool) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	if v, changed, exists := ts.ts.getChangedValue(ctx, key); changed {
		return v, true, exists
	}
	if v, ok := ts.scopeStorage[key]; ok {
		return v, false, true
	}
	return nil, false, false
}

// Insert allocates or updates [key]. Creating a key requires
// [state.Allocate] and updating one requires [state.Write].
//
// Any bytes passed into [Insert] will be consumed by [TState] and should
// not be modified/referenced after this call.
func (ts *TStateView) Insert(ctx context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	valueChunks, ok := keys.NumChunks(value)
	if !ok {
		return ErrInvalidKeyValue
	}
	k := string(key)
	past, changed, exists := ts.getValue(ctx, k)
	o := &op{
		k: k,

		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,

		pastAllocation: snapshotChunks(ts.allocations, k),
		pastWrite:      snapshotChunks(ts.writes, k),
	}
	if exists {
		if !ts.checkScope(ctx, key, state.Write) {
			return ErrInvalidKeyOrPermission
		}
		ts.writes[k] = valueChunks
	} else {
		if !ts.checkScope(ctx, key, state.Allocate) {
			return ErrInvalidKeyOrPermission
		}
		ts.allocations[k] = valueChunks
		ts.writes[k] = valueChunks
	}
	ts.pendingChangedKeys[k] = maybe.Some(value)
	ts.ops = append(ts.ops, o)
	return nil
}

// Remove deletes a key-value pair from ts.storage.
func (ts *TStateView) Remove(ctx context.Context, key []byte) error {
	if !ts.checkScope(ctx, key, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	k := string(key)
	past, changed, exists := ts.getValue(ctx, k)
	if !exists {
		// We do not update writes if the key does not exist.
		return nil
	}
	o := &op{
		k: k,

		pastExists:  true,
		pastV:       past,
		pastChanged: changed,

		pastAllocation: snapshotChunks(ts.allocations, k),
		pastWrite:      snapshotChunks(ts.writes, k),
	}
	delete(ts.allocations, k)
	ts.writes[k] = 0
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	ts.ops = append(ts.ops, o)
	return nil
}

// PendingChanges returns the number of keys changed by this view.
func (ts *TStateView) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Commit makes the changes of this view visible to later views of the same
// [TState].
func (ts *TStateView) Commit() {
	ts.ts.l.Lock()
	defer ts.ts.l.Unlock()

	for k, v := range ts.pendingChangedKeys {
		ts.ts.changedKeys[k] = v
	}
	ts.ts.ops += len(ts.ops)
}
