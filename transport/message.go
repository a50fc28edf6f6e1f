//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package transport

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/circuit"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/garble"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/label"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/ot"
)

// Tag identifies a wire message's variant. Per SPEC_FULL.md's design
// notes, every frame on the wire carries one of these. ReceiveFrame returns
// the tag as read; each receiving method (ReceiveHandshake,
// ReceiveInputLabels, ReceiveOutputBits, OTChannel.ReceiveData) rejects any
// tag other than the one it expects.
type Tag byte

// The message variants of spec.md §6's wire table, in protocol order. OT
// frames ride the same tagged framing via OTChannel so that no byte on
// the wire is untagged, even though the OT subprotocol's own payload
// shape is opaque to this package.
const (
	TagHandshake Tag = 1
	TagInputLabels Tag = 2
	TagOT Tag = 3
	TagOutputBits Tag = 4
)

func (t Tag) String() string {
	switch t {
	case TagHandshake:
		return "Handshake"
	case TagInputLabels:
		return "InputLabels"
	case TagOT:
		return "OT"
	case TagOutputBits:
		return "OutputBits"
	default:
		return "Unknown"
	}
}

// SendFrame writes one tagged, length-framed message.
func (c *Conn) SendFrame(tag Tag, payload []byte) error {
	if err := c.SendByte(byte(tag)); err != nil {
		return err
	}
	if err := c.SendData(payload); err != nil {
		return err
	}
	return c.Flush()
}

// ReceiveFrame reads one tagged, length-framed message.
func (c *Conn) ReceiveFrame() (Tag, []byte, error) {
	b, err := c.ReceiveByte()
	if err != nil {
		return 0, nil, err
	}
	payload, err := c.ReceiveData()
	if err != nil {
		return 0, nil, err
	}
	return Tag(b), payload, nil
}

// OTChannel adapts a Conn into the ot.IO interface, tagging every frame it
// sends as TagOT and rejecting any frame it receives under a different
// tag.
type OTChannel struct {
	Conn *Conn
}

var _ ot.IO = &OTChannel{}

func (o *OTChannel) SendData(data []byte) error {
	return o.Conn.SendFrame(TagOT, data)
}

func (o *OTChannel) Flush() error {
	return o.Conn.Flush()
}

func (o *OTChannel) ReceiveData() ([]byte, error) {
	tag, payload, err := o.Conn.ReceiveFrame()
	if err != nil {
		return nil, err
	}
	if tag != TagOT {
		return nil, errors.Mark(errors.Newf("transport: expected OT frame, got tag %s", tag), ErrTransport)
	}
	return payload, nil
}

// Handshake is message #1 of spec.md §6: session parameters plus the
// garbled circuit the evaluator needs to run the rest of the protocol.
type Handshake struct {
	SessionID uuid.UUID
	Bits      int
	Scale     int
	Garbled   *garble.GarbledCircuit
}

// SendHandshake encodes and sends the handshake message.
func (c *Conn) SendHandshake(hs Handshake) error {
	var buf bytes.Buffer
	idBytes, err := hs.SessionID.MarshalBinary()
	if err != nil {
		return err
	}
	buf.Write(idBytes)
	writeUint32(&buf, uint32(hs.Bits))
	writeUint32(&buf, uint32(hs.Scale))
	if err := encodeGarbledCircuit(&buf, hs.Garbled); err != nil {
		return err
	}
	return c.SendFrame(TagHandshake, buf.Bytes())
}

// ReceiveHandshake receives and decodes the handshake message.
func (c *Conn) ReceiveHandshake() (Handshake, error) {
	tag, payload, err := c.ReceiveFrame()
	if err != nil {
		return Handshake{}, err
	}
	if tag != TagHandshake {
		return Handshake{}, errors.Mark(errors.Newf("transport: expected Handshake, got %s", tag), ErrTransport)
	}
	r := bytes.NewReader(payload)

	var idBytes [16]byte
	if _, err := io.ReadFull(r, idBytes[:]); err != nil {
		return Handshake{}, errors.Mark(err, ErrTransport)
	}
	var id uuid.UUID
	if err := id.UnmarshalBinary(idBytes[:]); err != nil {
		return Handshake{}, errors.Mark(err, ErrTransport)
	}

	bits, err := readUint32(r)
	if err != nil {
		return Handshake{}, err
	}
	scale, err := readUint32(r)
	if err != nil {
		return Handshake{}, err
	}
	gc, err := decodeGarbledCircuit(r)
	if err != nil {
		return Handshake{}, err
	}
	return Handshake{SessionID: id, Bits: int(bits), Scale: int(scale), Garbled: gc}, nil
}

// SendInputLabels sends message #2: the garbler's own input wire labels.
func (c *Conn) SendInputLabels(labels map[circuit.WireID]label.Label) error {
	var buf bytes.Buffer
	ids := sortedWireIDs(labels)
	writeUint32(&buf, uint32(len(ids)))
	for _, id := range ids {
		writeUint32(&buf, uint32(id))
		l := labels[id]
		buf.Write(l.Bytes())
	}
	return c.SendFrame(TagInputLabels, buf.Bytes())
}

// ReceiveInputLabels receives message #2.
func (c *Conn) ReceiveInputLabels() (map[circuit.WireID]label.Label, error) {
	tag, payload, err := c.ReceiveFrame()
	if err != nil {
		return nil, err
	}
	if tag != TagInputLabels {
		return nil, errors.Mark(errors.Newf("transport: expected InputLabels, got %s", tag), ErrTransport)
	}
	r := bytes.NewReader(payload)
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	result := make(map[circuit.WireID]label.Label, n)
	for i := uint32(0); i < n; i++ {
		wireID, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		var data [label.Size]byte
		if _, err := io.ReadFull(r, data[:]); err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
		l, err := label.FromBytes(data[:])
		if err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
		result[circuit.WireID(wireID)] = l
	}
	return result, nil
}

// SendOutputBits sends the final message: the evaluator's decoded output
// bits for each output wire.
func (c *Conn) SendOutputBits(bits map[circuit.WireID]int) error {
	var buf bytes.Buffer
	ids := sortedWireIDs(bits)
	writeUint32(&buf, uint32(len(ids)))
	for _, id := range ids {
		writeUint32(&buf, uint32(id))
		buf.WriteByte(byte(bits[id]))
	}
	return c.SendFrame(TagOutputBits, buf.Bytes())
}

// ReceiveOutputBits receives the final message.
func (c *Conn) ReceiveOutputBits() (map[circuit.WireID]int, error) {
	tag, payload, err := c.ReceiveFrame()
	if err != nil {
		return nil, err
	}
	if tag != TagOutputBits {
		return nil, errors.Mark(errors.Newf("transport: expected OutputBits, got %s", tag), ErrTransport)
	}
	r := bytes.NewReader(payload)
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	result := make(map[circuit.WireID]int, n)
	for i := uint32(0); i < n; i++ {
		wireID, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		b, err := r.ReadByte()
		if err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
		result[circuit.WireID(wireID)] = int(b)
	}
	return result, nil
}

func sortedWireIDs[V any](m map[circuit.WireID]V) []circuit.WireID {
	ids := make([]circuit.WireID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, errors.Mark(err, ErrTransport)
	}
	return binary.BigEndian.Uint32(tmp[:]), nil
}

func writeWireIDs(buf *bytes.Buffer, ids []circuit.WireID) {
	writeUint32(buf, uint32(len(ids)))
	for _, id := range ids {
		writeUint32(buf, uint32(id))
	}
}

func readWireIDs(r *bytes.Reader) ([]circuit.WireID, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	ids := make([]circuit.WireID, n)
	for i := range ids {
		v, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		ids[i] = circuit.WireID(v)
	}
	return ids, nil
}

func encodeCircuit(buf *bytes.Buffer, c *circuit.Circuit) error {
	name := []byte(c.Name)
	writeUint32(buf, uint32(len(name)))
	buf.Write(name)
	writeUint32(buf, uint32(c.NumWires))
	writeWireIDs(buf, c.AliceInputs)
	writeWireIDs(buf, c.BobInputs)
	writeWireIDs(buf, c.Outputs)

	writeUint32(buf, uint32(len(c.Gates)))
	for _, g := range c.Gates {
		writeUint32(buf, uint32(g.Output))
		buf.WriteByte(byte(g.Op))
		writeWireIDs(buf, g.Inputs)
	}
	return nil
}

func decodeCircuit(r *bytes.Reader) (*circuit.Circuit, error) {
	nameLen, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, errors.Mark(err, ErrTransport)
	}
	numWires, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	aliceInputs, err := readWireIDs(r)
	if err != nil {
		return nil, err
	}
	bobInputs, err := readWireIDs(r)
	if err != nil {
		return nil, err
	}
	outputs, err := readWireIDs(r)
	if err != nil {
		return nil, err
	}
	numGates, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	gates := make([]circuit.Gate, numGates)
	for i := range gates {
		out, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		opByte, err := r.ReadByte()
		if err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
		inputs, err := readWireIDs(r)
		if err != nil {
			return nil, err
		}
		gates[i] = circuit.Gate{Output: circuit.WireID(out), Op: circuit.Op(opByte), Inputs: inputs}
	}

	c := &circuit.Circuit{
		Name:        string(name),
		NumWires:    int(numWires),
		AliceInputs: aliceInputs,
		BobInputs:   bobInputs,
		Outputs:     outputs,
		Gates:       gates,
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Mark(err, ErrTransport)
	}
	return c, nil
}

func encodeGarbledCircuit(buf *bytes.Buffer, gc *garble.GarbledCircuit) error {
	if err := encodeCircuit(buf, gc.Circuit); err != nil {
		return err
	}
	writeUint32(buf, uint32(len(gc.Tables)))
	for _, table := range gc.Tables {
		if table == nil {
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte(1)
		writeUint32(buf, uint32(len(table)))
		for _, row := range table {
			writeUint32(buf, uint32(len(row)))
			buf.Write(row)
		}
	}
	writeUint32(buf, uint32(len(gc.Outputs)))
	for _, o := range gc.Outputs {
		buf.Write(o.H0[:])
		buf.Write(o.H1[:])
	}
	return nil
}

func decodeGarbledCircuit(r *bytes.Reader) (*garble.GarbledCircuit, error) {
	c, err := decodeCircuit(r)
	if err != nil {
		return nil, err
	}
	numTables, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	tables := make([]garble.Table, numTables)
	for i := range tables {
		present, err := r.ReadByte()
		if err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
		if present == 0 {
			continue
		}
		rows, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		table := make(garble.Table, rows)
		for j := range table {
			n, err := readUint32(r)
			if err != nil {
				return nil, err
			}
			row := make([]byte, n)
			if _, err := io.ReadFull(r, row); err != nil {
				return nil, errors.Mark(err, ErrTransport)
			}
			table[j] = row
		}
		tables[i] = table
	}

	numOutputs, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	outputs := make([]garble.OutputLabelHashes, numOutputs)
	for i := range outputs {
		if _, err := io.ReadFull(r, outputs[i].H0[:]); err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
		if _, err := io.ReadFull(r, outputs[i].H1[:]); err != nil {
			return nil, errors.Mark(err, ErrTransport)
		}
	}

	return &garble.GarbledCircuit{Circuit: c, Tables: tables, Outputs: outputs}, nil
}
