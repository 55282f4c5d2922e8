// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys holds the name of each key a transaction may touch and its permission
// (Read/Allocate/Write). Use [Keys.Add] so that a key declared twice keeps the
// union of both permissions.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add unions [permission] into the permissions already held by [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Union adds every key of [other] to [k].
func (k Keys) Union(other Keys) {
	for name, permission := range other {
		k.Add(name, permission)
	}
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
