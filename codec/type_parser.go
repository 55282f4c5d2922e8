// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every object that is encoded behind a type byte.
type Typed interface {
	GetTypeID() uint8
}

// TypeParser maps a type byte to the decoder of that type.
type TypeParser[T any] struct {
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

func (p *TypeParser[T]) Register(typeID uint8, f func(*Packer) (T, error)) error {
	if _, ok := p.indexToDecoder[typeID]; ok {
		return ErrDuplicateItem
	}
	p.indexToDecoder[typeID] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(typeID uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[typeID]
	return f, ok
}
