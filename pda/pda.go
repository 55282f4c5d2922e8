// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pda derives program addresses: storage locations that are a pure
// function of a program ID and a list of seeds, and that no private key can
// sign for.
package pda

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const (
	MaxSeeds   = 16
	MaxSeedLen = 64

	marker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedsExceeded    = errors.New("max seeds exceeded")
	ErrMaxSeedLenExceeded  = errors.New("max seed length exceeded")
	ErrInvalidSeeds        = errors.New("seeds produce a point on the curve")
	ErrNoViableBump        = errors.New("unable to find a viable bump")
	ErrAddressMismatch     = errors.New("derived address mismatch")
	ErrUnexpectedAddressID = errors.New("unexpected address type")
)

// CreateProgramAddress hashes [seeds] with [programID] and returns the
// resulting address. It fails if the digest is a valid ed25519 point, as
// decided by [onCurve].
func CreateProgramAddress(seeds [][]byte, programID ids.ID) (codec.Address, error) {
	if len(seeds) > MaxSeeds {
		return codec.EmptyAddress, ErrMaxSeedsExceeded
	}
	size := ids.IDLen + len(marker)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return codec.EmptyAddress, fmt.Errorf("%w: %d > %d", ErrMaxSeedLenExceeded, len(seed), MaxSeedLen)
		}
		size += len(seed)
	}
	buf := make([]byte, 0, size)
	for _, seed := range seeds {
		buf = append(buf, seed...)
	}
	buf = append(buf, programID[:]...)
	buf = append(buf, marker...)

	digest := hashing.ComputeHash256Array(buf)
	if onCurve(digest[:]) {
		return codec.EmptyAddress, ErrInvalidSeeds
	}
	return codec.CreateAddress(consts.DerivedID, digest), nil
}

// FindProgramAddress searches bumps from 255 down to 0 and returns the first
// address that [CreateProgramAddress] accepts for seeds || [bump].
func FindProgramAddress(seeds [][]byte, programID ids.ID) (codec.Address, uint8, error) {
	bumpSeed := []byte{consts.MaxUint8}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = bumpSeed
	for {
		addr, err := CreateProgramAddress(withBump, programID)
		switch {
		case err == nil:
			return addr, bumpSeed[0], nil
		case !errors.Is(err, ErrInvalidSeeds):
			return codec.EmptyAddress, 0, err
		}
		if bumpSeed[0] == 0 {
			return codec.EmptyAddress, 0, ErrNoViableBump
		}
		bumpSeed[0]--
	}
}

// VerifyProgramAddress re-derives the address for seeds || [bump] and checks
// that it equals [addr].
func VerifyProgramAddress(seeds [][]byte, bump uint8, programID ids.ID, addr codec.Address) error {
	if addr[0] != consts.DerivedID {
		return ErrUnexpectedAddressID
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = []byte{bump}
	derived, err := CreateProgramAddress(withBump, programID)
	if err != nil {
		return err
	}
	if derived != addr {
		return ErrAddressMismatch
	}
	return nil
}

// onCurve is the off-curve rule of this package: [b] is on the curve if
// edwards25519 decodes it to a point. Non-canonical encodings of valid points
// decode, so a y coordinate that is not reduced mod 2^255-19 or a zero x with
// the sign bit set still counts as on the curve.
func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
