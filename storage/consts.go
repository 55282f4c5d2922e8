// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// State
// 0x0/ (counter) -> [derived address] => discriminator|borsh(count, bump)
// 0x1/ (balance) -> [address] => balance
// 0x2/ (genesis) => chain ID
const (
	counterPrefix byte = 0x0
	balancePrefix byte = 0x1
	genesisPrefix byte = 0x2
)

const (
	CounterChunks uint16 = 1
	BalanceChunks uint16 = 1
)

// CounterLabel is the fixed seed that scopes counter addresses.
const CounterLabel = "counter"
