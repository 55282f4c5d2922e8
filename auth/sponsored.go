// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"fmt"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

var _ chain.BatchAuth = (*Sponsored)(nil)

const SponsoredSize = 2 * ED25519Size

// Sponsored is signed by an owner, who acts, and a payer, who pays fees.
// Both sign the transaction digest followed by the payer key, so neither
// signature can be reused with another payer.
type Sponsored struct {
	Owner          ed25519.PublicKey `json:"owner"`
	OwnerSignature ed25519.Signature `json:"ownerSignature"`
	Payer          ed25519.PublicKey `json:"payer"`
	PayerSignature ed25519.Signature `json:"payerSignature"`
}

func sponsoredMsg(msg []byte, payer ed25519.PublicKey) []byte {
	m := make([]byte, 0, len(msg)+ed25519.PublicKeyLen)
	m = append(m, msg...)
	return append(m, payer[:]...)
}

func (*Sponsored) GetTypeID() uint8 {
	return consts.SponsoredID
}

func (s *Sponsored) Verify(_ context.Context, msg []byte) error {
	m := sponsoredMsg(msg, s.Payer)
	if !ed25519.Verify(m, s.Owner, s.OwnerSignature) {
		return fmt.Errorf("%w: owner", crypto.ErrInvalidSignature)
	}
	if !ed25519.Verify(m, s.Payer, s.PayerSignature) {
		return fmt.Errorf("%w: payer", crypto.ErrInvalidSignature)
	}
	return nil
}

func (s *Sponsored) AddToBatch(b *ed25519.Batch, msg []byte) {
	m := sponsoredMsg(msg, s.Payer)
	b.Add(m, s.Owner, s.OwnerSignature)
	b.Add(m, s.Payer, s.PayerSignature)
}

func (*Sponsored) Signatures() int {
	return 2
}

func (s *Sponsored) Actor() codec.Address {
	return NewED25519Address(s.Owner)
}

func (s *Sponsored) Sponsor() codec.Address {
	return NewED25519Address(s.Payer)
}

func (*Sponsored) Size() int {
	return SponsoredSize
}

func (s *Sponsored) Marshal(p *codec.Packer) {
	p.PackFixedBytes(s.Owner[:])
	p.PackFixedBytes(s.OwnerSignature[:])
	p.PackFixedBytes(s.Payer[:])
	p.PackFixedBytes(s.PayerSignature[:])
}

func UnmarshalSponsored(p *codec.Packer) (chain.Auth, error) {
	var (
		s   Sponsored
		buf []byte
	)
	p.UnpackFixedBytes(ed25519.PublicKeyLen, &buf)
	copy(s.Owner[:], buf)
	p.UnpackFixedBytes(ed25519.SignatureLen, &buf)
	copy(s.OwnerSignature[:], buf)
	p.UnpackFixedBytes(ed25519.PublicKeyLen, &buf)
	copy(s.Payer[:], buf)
	p.UnpackFixedBytes(ed25519.SignatureLen, &buf)
	copy(s.PayerSignature[:], buf)
	return &s, p.Err()
}

var _ chain.AuthFactory = (*SponsoredFactory)(nil)

func NewSponsoredFactory(owner ed25519.PrivateKey, payer ed25519.PrivateKey) *SponsoredFactory {
	return &SponsoredFactory{owner: owner, payer: payer}
}

type SponsoredFactory struct {
	owner ed25519.PrivateKey
	payer ed25519.PrivateKey
}

func (f *SponsoredFactory) Sign(msg []byte) (chain.Auth, error) {
	payer := f.payer.PublicKey()
	m := sponsoredMsg(msg, payer)
	return &Sponsored{
		Owner:          f.owner.PublicKey(),
		OwnerSignature: ed25519.Sign(m, f.owner),
		Payer:          payer,
		PayerSignature: ed25519.Sign(m, f.payer),
	}, nil
}

// Address is the owner of the transactions signed by this factory.
func (f *SponsoredFactory) Address() codec.Address {
	return NewED25519Address(f.owner.PublicKey())
}
