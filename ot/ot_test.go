//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package ot

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"
	"testing"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/label"
)

// pipeIO is a minimal length-framed IO over an io.Pipe pair, used only to
// exercise the Sender/Receiver protocol in isolation from the transport
// package.
type pipeIO struct {
	w  io.WriteCloser
	r  io.ReadCloser
	mu sync.Mutex
}

func newPipePair() (*pipeIO, *pipeIO) {
	ar, bw := io.Pipe()
	br, aw := io.Pipe()
	return &pipeIO{w: aw, r: ar}, &pipeIO{w: bw, r: br}
}

func (p *pipeIO) SendData(data []byte) error {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(data)))
	if _, err := p.w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := p.w.Write(data)
	return err
}

func (p *pipeIO) Flush() error { return nil }

func (p *pipeIO) ReceiveData() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(p.r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(p.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func TestOTTransfersChosenLabels(t *testing.T) {
	const n = 8
	wires := make([]label.Wire, n)
	choices := make([]bool, n)
	for i := range wires {
		w, err := label.NewWire(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		wires[i] = w
		choices[i] = i%3 == 0
	}

	senderIO, receiverIO := newPipePair()

	errCh := make(chan error, 1)
	go func() {
		errCh <- NewSender(senderIO).Send(wires)
	}()

	got, err := NewReceiver(receiverIO).Receive(choices)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Send: %v", err)
	}

	for i, c := range choices {
		bit := 0
		if c {
			bit = 1
		}
		want := wires[i].ForBit(bit)
		if !got[i].Equal(want) {
			t.Errorf("wire %d: got %s, want %s", i, got[i], want)
		}
	}
}

func TestOTRejectsOutOfGroupA0(t *testing.T) {
	senderIO, receiverIO := newPipePair()
	go func() {
		// Send a zero value in place of a valid A0.
		_ = senderIO.SendData([]byte{0})
	}()
	_, err := NewReceiver(receiverIO).Receive([]bool{false})
	if err == nil {
		t.Fatal("expected error for out-of-group A0")
	}
}
