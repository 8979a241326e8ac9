// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = chainhash.HashSize

// Digest - type for a digest
// stored as little endian byte array
// represented as big endian hex value for print and for JSON encoding
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a double SHA-256 digest from a byte slice
func NewDigest(record []byte) Digest {
	return Digest(chainhash.DoubleHashH(record))
}

// IsZero - true for the all-zero digest
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// Hash - convert to the chainhash form used by the wire package
func (digest Digest) Hash() chainhash.Hash {
	return chainhash.Hash(digest)
}

// internal function to return a reversed byte order copy of a digest
func reversed(d Digest) []byte {
	result := make([]byte, DigestLength)
	for i := 0; i < DigestLength; i += 1 {
		result[i] = d[DigestLength-1-i]
	}
	return result
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
//
// the stored version is in little endian, but the output string is big endian
func (digest Digest) String() string {
	return hex.EncodeToString(reversed(digest))
}

// GoString - convert a binary digest to big endian hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA256d:" + hex.EncodeToString(reversed(digest)) + ">"
}

// Scan - convert a big endian hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - convert digest to big endian hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, reversed(digest))
	return buffer, nil
}

// UnmarshalText - convert big endian hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(DigestLength) {
		return fault.InvalidHexString
	}
	buffer := make([]byte, DigestLength)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return fault.InvalidHexString
	}
	for i, v := range buffer {
		digest[DigestLength-1-i] = v
	}
	return nil
}

// DigestFromHex - parse a big endian hex string as displayed by a node
func DigestFromHex(s string) (Digest, error) {
	d := Digest{}
	err := d.UnmarshalText([]byte(s))
	return d, err
}

// DigestFromBytes - convert and validate little endian binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.TruncatedRecord
	}
	copy(digest[:], buffer)
	return nil
}
