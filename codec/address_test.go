// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	typeID := byte(0)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(typeID, addrID)
	require.Equal(addrID, addr.ID())
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressString(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())

	originalAddr, err := StringToAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, originalAddr)

	_, err = StringToAddress("0x0102")
	require.ErrorIs(err, ErrInvalidSize)
}

func TestToAddress(t *testing.T) {
	require := require.New(t)

	_, err := ToAddress(make([]byte, AddressLen-1))
	require.ErrorIs(err, ErrInvalidSize)

	b := make([]byte, AddressLen)
	b[0] = 7
	addr, err := ToAddress(b)
	require.NoError(err)
	require.Equal(byte(7), addr[0])
}

func TestAddressBech32(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(3, ids.GenerateTestID())

	s, err := AddressBech32("counter", addr)
	require.NoError(err)

	parsed, err := ParseAddressBech32("counter", s)
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = ParseAddressBech32("other", s)
	require.ErrorIs(err, ErrIncorrectHRP)
}
