// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"

	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
)

// key sizes
const (
	CompressedLength   = btcec.PubKeyBytesLenCompressed
	UncompressedLength = btcec.PubKeyBytesLenUncompressed
)

// PublicKey - a secp256k1 public key in serialised form
type PublicKey []byte

// ParsePublicKey - validate and copy a serialised public key
func ParsePublicKey(b []byte) (PublicKey, error) {
	if CompressedLength != len(b) && UncompressedLength != len(b) {
		return nil, fault.InvalidPublicKey
	}
	if _, err := btcec.ParsePubKey(b, btcec.S256()); nil != err {
		return nil, fault.InvalidPublicKey
	}
	pk := make(PublicKey, len(b))
	copy(pk, b)
	return pk, nil
}

// PublicKeyFromHex - parse a hex encoded public key
func PublicKeyFromHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.InvalidHexString
	}
	return ParsePublicKey(b)
}

// GatewaysPublicKey - the unspendable key owning all gateway custody outputs
func GatewaysPublicKey() PublicKey {
	pk, err := PublicKeyFromHex(constants.GatewaysUnspendableKey)
	fault.PanicIfError("gateways public key", err)
	return pk
}

// Equal - byte comparison
func (pk PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(pk, other)
}

// IsValid - true if the key lies on the curve
func (pk PublicKey) IsValid() bool {
	_, err := ParsePublicKey(pk)
	return nil == err
}

// Bytes - serialised form
func (pk PublicKey) Bytes() []byte {
	return []byte(pk)
}

// String - hex form
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk)
}

// MarshalText - hex form for JSON
func (pk PublicKey) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(pk))
	buffer := make([]byte, size)
	hex.Encode(buffer, pk)
	return buffer, nil
}

// UnmarshalText - parse hex from JSON, an empty string is no key
func (pk *PublicKey) UnmarshalText(s []byte) error {
	if 0 == len(s) {
		*pk = nil
		return nil
	}
	p, err := PublicKeyFromHex(string(s))
	if nil != err {
		return err
	}
	*pk = p
	return nil
}
