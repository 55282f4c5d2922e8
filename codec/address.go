// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const AddressLen = 33

// Address represents the 33 byte address of an account or a derived record.
// The first byte is the type of the module that produced it.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// ToAddress returns the [Address] held in b or an error if b is not exactly
// [AddressLen] bytes.
func ToAddress(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: %d != %d", ErrInvalidSize, len(b), AddressLen)
	}
	return Address(b), nil
}

// StringToAddress parses the hex form produced by [Address.String].
func StringToAddress(s string) (Address, error) {
	b, err := LoadHex(s, AddressLen)
	if err != nil {
		return EmptyAddress, err
	}
	return Address(b), nil
}

// ID returns the 32 bytes following the type byte.
func (a Address) ID() ids.ID {
	return ids.ID(a[1:])
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AddressBech32 returns a human-readable form of [p] using [hrp].
func AddressBech32(hrp string, p Address) (string, error) {
	conv, err := bech32.ConvertBits(p[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, conv)
}

// ParseAddressBech32 is the inverse of [AddressBech32].
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, p, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	// The parsed data is 5-bit groups, so we convert back to 8-bit bytes.
	b, err := bech32.ConvertBits(p, 5, 8, false)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) != AddressLen {
		return EmptyAddress, ErrInvalidAddress
	}
	return Address(b), nil
}
