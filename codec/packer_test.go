// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/stretchr/testify/require"
)

func TestPackerID(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()

	wp := NewWriter(ids.IDLen, ids.IDLen)
	wp.PackID(id)
	require.NoError(wp.Err())

	// Exceeds the limit of the writer.
	wp.PackID(id)
	require.ErrorIs(wp.Err(), wrappers.ErrInsufficientLength)

	rp := NewReader(wp.Bytes(), ids.IDLen)
	var unpacked ids.ID
	rp.UnpackID(true, &unpacked)
	require.NoError(rp.Err())
	require.Equal(id, unpacked)
	require.True(rp.Empty())
}

func TestPackerRequiredUnpack(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(AddressLen+8, AddressLen+8)
	wp.PackAddress(EmptyAddress)
	wp.PackUint64(0)

	rp := NewReader(wp.Bytes(), AddressLen+8)
	var addr Address
	rp.UnpackAddress(true, &addr)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerUnpackBytes(t *testing.T) {
	require := require.New(t)
	b := []byte("counter")

	wp := NewWriter(64, 64)
	wp.PackBytes(b)
	wp.PackInt64(-5)
	wp.PackBool(true)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 64)
	var unpacked []byte
	rp.UnpackBytes(len(b), true, &unpacked)
	require.Equal(b, unpacked)
	require.Equal(int64(-5), rp.UnpackInt64(true))
	require.True(rp.UnpackBool())
	require.NoError(rp.Err())
	require.True(rp.Empty())
}

func TestPackerUnpackBytesLimit(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(64, 64)
	wp.PackBytes([]byte("too long"))

	rp := NewReader(wp.Bytes(), 64)
	var unpacked []byte
	rp.UnpackBytes(2, false, &unpacked)
	require.Error(rp.Err())
}
