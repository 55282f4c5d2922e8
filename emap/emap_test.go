// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emap

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

type TestTx struct {
	id ids.ID
	t  int64
}

func (tx *TestTx) ID() ids.ID    { return tx.id }
func (tx *TestTx) Expiry() int64 { return tx.t }

func newTestTx(t int64) *TestTx {
	return &TestTx{id: ids.GenerateTestID(), t: t}
}

func TestEmapAdd(t *testing.T) {
	require := require.New(t)
	e := NewEMap[*TestTx]()
	tx := newTestTx(1_000)

	require.True(e.Add(tx))
	require.False(e.Add(tx))
	require.True(e.Contains(tx))
	require.Equal(1, e.Len())

	// Same bucket
	require.True(e.Add(newTestTx(1_000)))
	require.Len(e.times, 1)
	require.Equal(1, e.bh.Len())
}

func TestEmapSetMin(t *testing.T) {
	require := require.New(t)
	e := NewEMap[*TestTx]()
	txs := []*TestTx{newTestTx(3_000), newTestTx(1_000), newTestTx(2_000), newTestTx(2_000)}
	for _, tx := range txs {
		require.True(e.Add(tx))
	}

	require.Empty(e.SetMin(1_000))
	require.Equal([]ids.ID{txs[1].ID()}, e.SetMin(2_000))
	require.ElementsMatch([]ids.ID{txs[2].ID(), txs[3].ID()}, e.SetMin(3_000))
	require.Equal(1, e.Len())
	require.True(e.Contains(txs[0]))

	// Expired items can be added again.
	require.True(e.Add(txs[1]))
}

func TestEmapRemove(t *testing.T) {
	require := require.New(t)
	e := NewEMap[*TestTx]()
	tx := newTestTx(1_000)
	require.True(e.Add(tx))

	e.Remove(tx)
	require.False(e.Contains(tx))
	require.Empty(e.SetMin(2_000))
	require.Zero(e.bh.Len())

	require.True(e.Add(tx))
	require.Equal([]ids.ID{tx.ID()}, e.SetMin(2_000))
}
