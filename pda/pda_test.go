// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pda

import (
	"bytes"
	"testing"

	"filippo.io/edwards25519"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

func TestFindProgramAddressDeterministic(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	seeds := [][]byte{[]byte("counter"), []byte("owner")}

	addr, bump, err := FindProgramAddress(seeds, programID)
	require.NoError(err)
	require.Equal(consts.DerivedID, addr[0])

	again, againBump, err := FindProgramAddress(seeds, programID)
	require.NoError(err)
	require.Equal(addr, again)
	require.Equal(bump, againBump)

	require.NoError(VerifyProgramAddress(seeds, bump, programID, addr))

	// Derived addresses are never valid curve points.
	_, err = new(edwards25519.Point).SetBytes(addr[1:])
	require.Error(err)
}

func TestFindProgramAddressDistinct(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()

	a, _, err := FindProgramAddress([][]byte{[]byte("counter"), []byte("alice")}, programID)
	require.NoError(err)
	b, _, err := FindProgramAddress([][]byte{[]byte("counter"), []byte("bob")}, programID)
	require.NoError(err)
	require.NotEqual(a, b)

	c, _, err := FindProgramAddress([][]byte{[]byte("counter"), []byte("alice")}, ids.GenerateTestID())
	require.NoError(err)
	require.NotEqual(a, c)
}

func TestVerifyProgramAddress(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	seeds := [][]byte{[]byte("counter"), []byte("owner")}

	addr, bump, err := FindProgramAddress(seeds, programID)
	require.NoError(err)

	// A different owner never re-derives to the same address.
	require.Error(VerifyProgramAddress([][]byte{[]byte("counter"), []byte("other")}, bump, programID, addr))

	wrongType := addr
	wrongType[0] = consts.ED25519ID
	require.ErrorIs(VerifyProgramAddress(seeds, bump, programID, wrongType), ErrUnexpectedAddressID)
}

func TestCreateProgramAddressLimits(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()

	_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLen+1)}, programID)
	require.ErrorIs(err, ErrMaxSeedLenExceeded)

	seeds := make([][]byte, MaxSeeds+1)
	_, err = CreateProgramAddress(seeds, programID)
	require.ErrorIs(err, ErrMaxSeedsExceeded)
}

func TestPublicKeysAreOnCurve(t *testing.T) {
	require := require.New(t)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PublicKey()
	require.True(onCurve(pub[:]))
}

func TestNonCanonicalEncodingsAreOnCurve(t *testing.T) {
	identity := edwards25519.NewIdentityPoint().Bytes()
	tests := []struct {
		name string
		b    func() []byte
	}{
		{
			name: "canonical identity",
			b:    func() []byte { return bytes.Clone(identity) },
		},
		{
			// y = 2^255-18, which reduces to 1
			name: "unreduced y",
			b: func() []byte {
				b := bytes.Repeat([]byte{0xff}, 32)
				b[0] = 0xee
				b[31] = 0x7f
				return b
			},
		},
		{
			name: "negative zero x",
			b: func() []byte {
				b := bytes.Clone(identity)
				b[31] |= 0x80
				return b
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, onCurve(tt.b()))
		})
	}
}
