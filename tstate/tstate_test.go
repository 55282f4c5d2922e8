// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
)

var (
	testVal = []byte("value")

	key1    = keys.EncodeChunks([]byte("key1"), 1)
	key1str = string(key1)
	key2    = keys.EncodeChunks([]byte("key2"), 2)
	key2str = string(key2)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, key1, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, key1), ErrInvalidKeyOrPermission)
}

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.Read}, map[string][]byte{key1str: testVal})
	val, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)

	tsv = ts.NewView(state.Keys{key1str: state.Read}, map[string][]byte{})
	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertPermissions(t *testing.T) {
	tests := []struct {
		name     string
		perm     state.Permissions
		existing bool
		err      error
	}{
		{name: "allocate new key", perm: state.Allocate},
		{name: "allocate without permission", perm: state.Write, err: ErrInvalidKeyOrPermission},
		{name: "write existing key", perm: state.Write, existing: true},
		{name: "write without permission", perm: state.Allocate, existing: true, err: ErrInvalidKeyOrPermission},
		{name: "read only", perm: state.Read, existing: true, err: ErrInvalidKeyOrPermission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.TODO()
			storage := map[string][]byte{}
			if tt.existing {
				storage[key1str] = []byte("old")
			}
			tsv := New(1).NewView(state.Keys{key1str: tt.perm}, storage)
			require.ErrorIs(tsv.Insert(ctx, key1, testVal), tt.err)
		})
	}
}

func TestInsertInvalidValue(t *testing.T) {
	require := require.New(t)
	tsv := New(1).NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(context.TODO(), key1, make([]byte, 128)), ErrInvalidKeyValue)
}

func TestKeyOperations(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.All},
		map[string][]byte{key2str: []byte("old")},
	)
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Insert(ctx, key2, testVal))

	allocates, writes := tsv.KeyOperations()
	require.Equal(map[string]uint16{key1str: 1}, allocates)
	require.Equal(map[string]uint16{key1str: 1, key2str: 1}, writes)
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.All},
		map[string][]byte{key2str: []byte("old")},
	)
	require.NoError(tsv.Insert(ctx, key1, testVal))
	restorePoint := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, key2, testVal))
	require.NoError(tsv.Insert(ctx, key2, []byte("newer")))
	require.NoError(tsv.Remove(ctx, key1))
	require.Equal(4, tsv.OpIndex())

	tsv.Rollback(ctx, restorePoint)
	require.Equal(restorePoint, tsv.OpIndex())

	val, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
	val, err = tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal([]byte("old"), val)

	tsv.Rollback(ctx, 0)
	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(tsv.PendingChanges())
	allocates, writes := tsv.KeyOperations()
	require.Empty(allocates)
	require.Empty(writes)
}

func TestCommitVisibility(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	scope := state.Keys{key1str: state.All}

	tsv := ts.NewView(scope, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, key1, testVal))

	// Uncommitted changes are not visible to other views.
	other := ts.NewView(scope, map[string][]byte{})
	_, err := other.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	tsv.Commit()
	require.Equal(1, ts.PendingChanges())
	require.Equal(1, ts.OpIndex())

	other = ts.NewView(scope, map[string][]byte{})
	val, err := other.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)

	require.NoError(other.Remove(ctx, key1))
	other.Commit()

	last := ts.NewView(scope, map[string][]byte{key1str: []byte("disk")})
	_, err = last.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	db := memdb.New()
	require.NoError(db.Put(key2, []byte("old")))

	ts := New(10)
	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.All},
		map[string][]byte{key2str: []byte("old")},
	)
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()

	tracer, err := trace.New(&trace.Config{Enabled: false})
	require.NoError(err)

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(ctx, tracer, batch))
	require.NoError(batch.Write())

	val, err := db.Get(key1)
	require.NoError(err)
	require.Equal(testVal, val)
	has, err := db.Has(key2)
	require.NoError(err)
	require.False(has)
}
