// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// protocol version passed to the wire codec, the variable length
// encodings do not depend on it
const protocolVersion = 0

// HashLength - bytes in a raw hash field
const HashLength = 32

// Writer - accumulate fields in chain stream serialisation
//
// all integers are little endian, variable length items are prefixed
// by a CompactSize count
type Writer struct {
	buffer bytes.Buffer
}

// Uint8 - single raw byte
func (w *Writer) Uint8(v uint8) *Writer {
	w.buffer.WriteByte(v)
	return w
}

// Int32 - 4 bytes little endian
func (w *Writer) Int32(v int32) *Writer {
	return w.Uint32(uint32(v))
}

// Uint32 - 4 bytes little endian
func (w *Writer) Uint32(v uint32) *Writer {
	b := [4]byte{}
	binary.LittleEndian.PutUint32(b[:], v)
	w.buffer.Write(b[:])
	return w
}

// Int64 - 8 bytes little endian
func (w *Writer) Int64(v int64) *Writer {
	b := [8]byte{}
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buffer.Write(b[:])
	return w
}

// Hash - 32 raw bytes
func (w *Writer) Hash(h [HashLength]byte) *Writer {
	w.buffer.Write(h[:])
	return w
}

// VarInt - CompactSize integer
func (w *Writer) VarInt(v uint64) *Writer {
	_ = wire.WriteVarInt(&w.buffer, protocolVersion, v)
	return w
}

// VarBytes - CompactSize length then the bytes
func (w *Writer) VarBytes(b []byte) *Writer {
	_ = wire.WriteVarBytes(&w.buffer, protocolVersion, b)
	return w
}

// VarString - CompactSize length then the bytes of the string
func (w *Writer) VarString(s string) *Writer {
	_ = wire.WriteVarString(&w.buffer, protocolVersion, s)
	return w
}

// Raw - bytes without a length prefix
func (w *Writer) Raw(b []byte) *Writer {
	w.buffer.Write(b)
	return w
}

// Bytes - the accumulated serialisation
func (w *Writer) Bytes() []byte {
	return w.buffer.Bytes()
}

// Reader - extract fields written by Writer
//
// the first failure is sticky: subsequent reads return zero values
// and Err reports the failure
type Reader struct {
	r   *bytes.Reader
	err error
}

// NewReader - read from a byte slice
func NewReader(b []byte) *Reader {
	return &Reader{
		r: bytes.NewReader(b),
	}
}

// Err - the first error seen
func (r *Reader) Err() error {
	return r.err
}

// Remaining - unread byte count
func (r *Reader) Remaining() int {
	return r.r.Len()
}

// Done - the first error seen, or an error if unread bytes remain
func (r *Reader) Done() error {
	if nil != r.err {
		return r.err
	}
	if 0 != r.r.Len() {
		return fault.TrailingData
	}
	return nil
}

func (r *Reader) fail(err error) {
	if nil == r.err {
		r.err = err
	}
}

func (r *Reader) full(b []byte) bool {
	if nil != r.err {
		return false
	}
	if _, err := io.ReadFull(r.r, b); nil != err {
		r.fail(fault.TruncatedRecord)
		return false
	}
	return true
}

// Uint8 - single raw byte
func (r *Reader) Uint8() uint8 {
	b := [1]byte{}
	if !r.full(b[:]) {
		return 0
	}
	return b[0]
}

// Int32 - 4 bytes little endian
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Uint32 - 4 bytes little endian
func (r *Reader) Uint32() uint32 {
	b := [4]byte{}
	if !r.full(b[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[:])
}

// Int64 - 8 bytes little endian
func (r *Reader) Int64() int64 {
	b := [8]byte{}
	if !r.full(b[:]) {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Hash - 32 raw bytes
func (r *Reader) Hash() [HashLength]byte {
	h := [HashLength]byte{}
	r.full(h[:])
	return h
}

// VarInt - CompactSize integer no greater than maximum
func (r *Reader) VarInt(maximum uint64) uint64 {
	if nil != r.err {
		return 0
	}
	v, err := wire.ReadVarInt(r.r, protocolVersion)
	if nil != err {
		r.fail(fault.TruncatedRecord)
		return 0
	}
	if v > maximum {
		r.fail(fault.RecordTooLong)
		return 0
	}
	return v
}

// VarBytes - CompactSize length then at most maximum bytes
func (r *Reader) VarBytes(maximum uint32, field string) []byte {
	if nil != r.err {
		return nil
	}
	b, err := wire.ReadVarBytes(r.r, protocolVersion, maximum, field)
	if nil != err {
		if _, ok := err.(*wire.MessageError); ok {
			r.fail(fault.RecordTooLong)
		} else {
			r.fail(fault.TruncatedRecord)
		}
		return nil
	}
	return b
}

// VarString - CompactSize length then at most maximum bytes
func (r *Reader) VarString(maximum uint32, field string) string {
	return string(r.VarBytes(maximum, field))
}
