// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
)

// host chain address version
const addressVersion = constants.KomodoPubKeyPrefix

const hashLength = ripemd160.Size

// NormalAddress - the pay-to-public-key-hash address of a key
func NormalAddress(pk PublicKey) string {
	return base58.CheckEncode(hash160(pk), addressVersion)
}

// PoolAddress - the consensus-condition address of a key under an
// evaluation code
func PoolAddress(evalCode byte, pk PublicKey) string {
	b := make([]byte, 0, 1+len(pk))
	b = append(b, evalCode)
	b = append(b, pk...)
	return base58.CheckEncode(hash160(b), addressVersion)
}

// TokensPoolAddress - the token-holding consensus-condition address
// of a key under a contract evaluation code
func TokensPoolAddress(evalCode byte, pk PublicKey) string {
	b := make([]byte, 0, 2+len(pk))
	b = append(b, constants.EvalTokens, evalCode)
	b = append(b, pk...)
	return base58.CheckEncode(hash160(b), addressVersion)
}

// TxIdPublicKey - a pseudo key built from a transaction id, used as
// a registry entry for that id
func TxIdPublicKey(txId merkle.Digest) PublicKey {
	b := make(PublicKey, 0, CompressedLength)
	b = append(b, 0x02)
	b = append(b, txId[:]...)
	return b
}

// TxIdAddress - the normal address of the transaction id pseudo key
func TxIdAddress(txId merkle.Digest) string {
	return NormalAddress(TxIdPublicKey(txId))
}

// ValidateAddress - check base58 checksum and version of a host address
func ValidateAddress(address string) error {
	payload, version, err := base58.CheckDecode(address)
	if nil != err {
		return fault.InvalidAddress
	}
	if addressVersion != version || hashLength != len(payload) {
		return fault.InvalidAddress
	}
	return nil
}

func hash160(b []byte) []byte {
	s := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(s[:])
	return r.Sum(nil)
}
