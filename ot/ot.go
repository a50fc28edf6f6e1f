//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package ot

import (
	"encoding/binary"
	"math/big"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/label"
)

// Sender runs the sending (message-holding) side of a batch of 1-out-of-2
// OT transfers. Per spec.md §4.3, OT instances for different wires must
// use fresh randomness to avoid cross-wire correlation, so Send draws a
// fresh exponent a and A0 = g^a for every wire, matching ot/co.go's
// COSender.NewTransfer drawing a fresh a on every call rather than once
// per batch.
type Sender struct {
	group *Group
	io    IO
}

// NewSender creates an OT sender bound to io.
func NewSender(io IO) *Sender {
	return &Sender{group: NewGroup(), io: io}
}

// Send transfers, for every wire, exactly one of its two labels to the
// receiver, without learning which one the receiver chose and without the
// receiver learning the other.
func (s *Sender) Send(wires []label.Wire) error {
	for i, w := range wires {
		a, err := s.group.RandomExponent()
		if err != nil {
			return errors.Wrapf(err, "ot: wire %d: sender exponent", i)
		}
		a0 := s.group.Pow(s.group.G, a)
		invA0 := s.group.Inv(a0)

		if err := s.io.SendData(a0.Bytes()); err != nil {
			return err
		}
		if err := s.io.Flush(); err != nil {
			return err
		}

		raw, err := s.io.ReceiveData()
		if err != nil {
			return err
		}
		b0 := new(big.Int).SetBytes(raw)
		if !s.group.Contains(b0) {
			return errors.Mark(errors.Newf("ot: wire %d: B0 not in group", i), ErrGroup)
		}

		k0 := s.group.Pow(b0, a)
		k1 := s.group.Pow(s.group.Mul(b0, invA0), a)

		var d0, d1 label.Data
		w.L0.GetData(&d0)
		w.L1.GetData(&d1)
		xorMask(&d0, kdf(k0, i, 0))
		xorMask(&d1, kdf(k1, i, 1))

		if err := s.io.SendData(d0[:]); err != nil {
			return err
		}
		if err := s.io.SendData(d1[:]); err != nil {
			return err
		}
		if err := s.io.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Receiver runs the receiving (choice-holding) side of a batch of
// 1-out-of-2 OT transfers.
type Receiver struct {
	group *Group
	io    IO
}

// NewReceiver creates an OT receiver bound to io.
func NewReceiver(io IO) *Receiver {
	return &Receiver{group: NewGroup(), io: io}
}

// Receive obtains, for every entry in choices, the label the sender
// assigned to that choice bit on the corresponding wire. It draws a fresh
// exponent b per wire, mirroring Send's fresh-a-per-wire discipline.
func (r *Receiver) Receive(choices []bool) ([]label.Label, error) {
	result := make([]label.Label, len(choices))
	for i, c := range choices {
		raw, err := r.io.ReceiveData()
		if err != nil {
			return nil, err
		}
		a0 := new(big.Int).SetBytes(raw)
		if !r.group.Contains(a0) {
			return nil, errors.Mark(errors.Newf("ot: wire %d: A0 not in group", i), ErrGroup)
		}

		b, err := r.group.RandomExponent()
		if err != nil {
			return nil, errors.Wrapf(err, "ot: wire %d: receiver exponent", i)
		}

		gb := r.group.Pow(r.group.G, b)
		b0 := gb
		if c {
			b0 = r.group.Mul(a0, gb)
		}
		if err := r.io.SendData(b0.Bytes()); err != nil {
			return nil, err
		}
		if err := r.io.Flush(); err != nil {
			return nil, err
		}

		d0, err := r.io.ReceiveData()
		if err != nil {
			return nil, err
		}
		d1, err := r.io.ReceiveData()
		if err != nil {
			return nil, err
		}

		secret := r.group.Pow(a0, b)
		which := 0
		chosen := d0
		if c {
			which = 1
			chosen = d1
		}

		var data label.Data
		copy(data[:], chosen)
		xorMask(&data, kdf(secret, i, which))

		var l label.Label
		l.SetData(&data)
		result[i] = l
	}
	return result, nil
}

func kdf(secret *big.Int, wireIndex, which int) label.Data {
	h, err := blake2b.New(label.Size, nil)
	if err != nil {
		panic(err)
	}
	h.Write(secret.Bytes())
	var tmp [5]byte
	binary.BigEndian.PutUint32(tmp[0:4], uint32(wireIndex))
	tmp[4] = byte(which)
	h.Write(tmp[:])
	var d label.Data
	copy(d[:], h.Sum(nil))
	return d
}

func xorMask(dst *label.Data, mask label.Data) {
	for i := range dst {
		dst[i] ^= mask[i]
	}
}
