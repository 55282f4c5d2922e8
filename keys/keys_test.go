// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeChunks(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte{0x1, 0x2}, 3)
	require.True(Valid(k))
	chunks, ok := MaxChunks(k)
	require.True(ok)
	require.Equal(uint16(3), chunks)

	_, ok = MaxChunks([]byte{0x1})
	require.False(ok)
}

func TestNumChunks(t *testing.T) {
	tests := []struct {
		name   string
		length int
		chunks uint16
	}{
		{name: "empty", length: 0, chunks: 0},
		{name: "one byte", length: 1, chunks: 1},
		{name: "just below chunk", length: chunkSize - 1, chunks: 1},
		{name: "full chunk", length: chunkSize, chunks: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, ok := NumChunks(make([]byte, tt.length))
			require.True(t, ok)
			require.Equal(t, tt.chunks, chunks)
		})
	}
}

func TestVerifyValue(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte("counter"), 1)
	require.True(VerifyValue(k, make([]byte, 17)))
	require.False(VerifyValue(k, make([]byte, chunkSize)))
	require.False(VerifyValue([]byte{0x1}, nil))
}
