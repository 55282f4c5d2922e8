// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// Encoded sizes
const (
	ByteLen   = 1
	IDLen     = 32
	Uint8Len  = 1
	Uint16Len = 2
	Uint64Len = 8
)

const (
	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)

	MillisecondsPerSecond = 1000

	// NetworkSizeLimit bounds any encoded transaction.
	NetworkSizeLimit = 2_044_723 // 1.95 MiB
)
