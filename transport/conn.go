//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Package transport implements the length-framed, tagged-union message
// protocol between garbler and evaluator described in spec.md §6. Conn's
// buffered-writer/fixed-size-read-buffer shape and its Send*/Receive* byte
// primitives are grounded on the teacher's p2p.Conn
// (p2p/protocol.go); the framing convention itself (4-byte big-endian
// length prefix, hand-rolled rather than a serialization library) is
// confirmed by both p2p/protocol.go and apps/garbled/protocol.go.
package transport

import (
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrTransport marks a connection-level failure: a closed socket, a
// framing violation, or a decode error.
var ErrTransport = errors.New("transport: connection error")

// ErrTimeout marks a per-message deadline violation.
var ErrTimeout = errors.New("transport: timeout")

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 256 * 1024
)

// DefaultMessageTimeout is the per-message deadline spec.md §5 calls for
// when the caller does not override it.
const DefaultMessageTimeout = 30 * time.Second

// IOStats tracks bytes moved over a Conn.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a fresh, zeroed IOStats.
func NewIOStats() IOStats {
	return IOStats{Sent: new(atomic.Uint64), Recvd: new(atomic.Uint64), Flushed: new(atomic.Uint64)}
}

// Conn is a length-framed connection over any io.ReadWriter. It implements
// ot.IO directly via SendData/Flush/ReceiveData, so the oblivious-transfer
// subprotocol can run straight over a Conn without an adapter.
type Conn struct {
	conn io.ReadWriter

	WriteBuf []byte
	WritePos int

	ReadBuf   []byte
	ReadStart int
	ReadEnd   int

	Stats   IOStats
	Timeout time.Duration

	fromWriter chan []byte
	toWriter   chan []byte
	writerErr  error
}

// NewConn wraps conn in a length-framed Conn with the default per-message
// timeout.
func NewConn(conn io.ReadWriter) *Conn {
	c := &Conn{
		conn:       conn,
		ReadBuf:    make([]byte, readBufSize),
		Stats:      NewIOStats(),
		Timeout:    DefaultMessageTimeout,
		fromWriter: make(chan []byte, numBuffers),
		toWriter:   make(chan []byte, numBuffers),
	}
	go c.writer()
	c.WriteBuf = <-c.fromWriter
	return c
}

func (c *Conn) writer() {
	for i := 0; i < numBuffers; i++ {
		c.fromWriter <- make([]byte, writeBufSize)
	}
	for buf := range c.toWriter {
		if _, err := c.conn.Write(buf); err != nil {
			c.writerErr = err
		}
		c.fromWriter <- buf[0:cap(buf)]
	}
	close(c.fromWriter)
}

// Flush pushes any buffered outgoing bytes to the underlying connection.
func (c *Conn) Flush() error {
	if c.WritePos == 0 {
		return nil
	}
	c.Stats.Sent.Add(uint64(c.WritePos))
	c.toWriter <- c.WriteBuf[0:c.WritePos]
	next := <-c.fromWriter
	if c.writerErr != nil {
		return errors.Mark(errors.Wrap(c.writerErr, "transport: write"), ErrTransport)
	}
	c.WriteBuf = next
	c.WritePos = 0
	c.Stats.Flushed.Add(1)
	return nil
}

func (c *Conn) deadline() {
	if c.Timeout <= 0 {
		return
	}
	if nc, ok := c.conn.(net.Conn); ok {
		_ = nc.SetReadDeadline(time.Now().Add(c.Timeout))
	}
}

// Fill ensures at least n unread bytes are available in ReadBuf, blocking
// on the underlying connection subject to Conn.Timeout.
func (c *Conn) Fill(n int) error {
	if c.ReadStart < c.ReadEnd {
		copy(c.ReadBuf[0:], c.ReadBuf[c.ReadStart:c.ReadEnd])
		c.ReadEnd -= c.ReadStart
		c.ReadStart = 0
	} else {
		c.ReadStart = 0
		c.ReadEnd = 0
	}
	for c.ReadStart+n > c.ReadEnd {
		if n > len(c.ReadBuf) {
			return errors.Mark(errors.Newf("transport: message of %d bytes exceeds read buffer", n), ErrTransport)
		}
		c.deadline()
		got, err := c.conn.Read(c.ReadBuf[c.ReadEnd:])
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return errors.Mark(errors.Wrap(err, "transport: read"), ErrTimeout)
			}
			return errors.Mark(errors.Wrap(err, "transport: read"), ErrTransport)
		}
		c.Stats.Recvd.Add(uint64(got))
		c.ReadEnd += got
	}
	return nil
}

// Close flushes pending output and closes the underlying connection if it
// supports closing.
func (c *Conn) Close() error {
	err := c.Flush()
	close(c.toWriter)
	for range c.fromWriter {
	}
	if closer, ok := c.conn.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// SendByte buffers a single byte.
func (c *Conn) SendByte(val byte) error {
	if c.WritePos+1 > len(c.WriteBuf) {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	c.WriteBuf[c.WritePos] = val
	c.WritePos++
	return nil
}

// SendUint32 buffers a big-endian uint32.
func (c *Conn) SendUint32(val uint32) error {
	if c.WritePos+4 > len(c.WriteBuf) {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	c.WriteBuf[c.WritePos+0] = byte(val >> 24)
	c.WriteBuf[c.WritePos+1] = byte(val >> 16)
	c.WriteBuf[c.WritePos+2] = byte(val >> 8)
	c.WriteBuf[c.WritePos+3] = byte(val)
	c.WritePos += 4
	return nil
}

// SendData buffers a length-prefixed byte blob.
func (c *Conn) SendData(val []byte) error {
	if err := c.SendUint32(uint32(len(val))); err != nil {
		return err
	}
	for written := 0; written < len(val); {
		if c.WritePos >= len(c.WriteBuf) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := copy(c.WriteBuf[c.WritePos:], val[written:])
		c.WritePos += n
		written += n
	}
	return nil
}

// ReceiveByte reads a single byte.
func (c *Conn) ReceiveByte() (byte, error) {
	if c.ReadStart+1 > c.ReadEnd {
		if err := c.Fill(1); err != nil {
			return 0, err
		}
	}
	val := c.ReadBuf[c.ReadStart]
	c.ReadStart++
	return val, nil
}

// ReceiveUint32 reads a big-endian uint32.
func (c *Conn) ReceiveUint32() (uint32, error) {
	if c.ReadStart+4 > c.ReadEnd {
		if err := c.Fill(4); err != nil {
			return 0, err
		}
	}
	val := uint32(c.ReadBuf[c.ReadStart+0])<<24 |
		uint32(c.ReadBuf[c.ReadStart+1])<<16 |
		uint32(c.ReadBuf[c.ReadStart+2])<<8 |
		uint32(c.ReadBuf[c.ReadStart+3])
	c.ReadStart += 4
	return val, nil
}

// ReceiveData reads a length-prefixed byte blob.
func (c *Conn) ReceiveData() ([]byte, error) {
	n, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	result := make([]byte, n)
	var read uint32
	for read < n {
		if c.ReadStart >= c.ReadEnd {
			want := int(n - read)
			if want > len(c.ReadBuf) {
				want = len(c.ReadBuf)
			}
			if err := c.Fill(want); err != nil {
				return nil, err
			}
		}
		chunk := copy(result[read:], c.ReadBuf[c.ReadStart:c.ReadEnd])
		c.ReadStart += chunk
		read += uint32(chunk)
	}
	return result, nil
}
