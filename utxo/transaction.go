// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import (
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/util"
)

// limits for unpacking
const (
	maximumInputs        = 10000
	maximumOutputs       = 10000
	maximumAddressLength = 64
	maximumDataLength    = 65536
)

// Packed - serialised transaction
type Packed []byte

// Outpoint - reference to a previous output
type Outpoint struct {
	TxId  merkle.Digest `json:"txId"`
	Index uint32        `json:"index"`
}

// Input - spend of a previous output
//
// Pooled marks a consensus-condition spend
type Input struct {
	Previous Outpoint `json:"previous"`
	Pooled   bool     `json:"pooled"`
}

// Output - value sent to an address, or a data carrier
//
// a pooled output is locked by a consensus condition of EvalCode;
// a data output has no address and carries the memo
type Output struct {
	Value    int64  `json:"value"`
	Pooled   bool   `json:"pooled"`
	EvalCode byte   `json:"evalCode"`
	Address  string `json:"address"`
	Data     []byte `json:"data,omitempty"`
}

// Transaction - unsigned host chain transaction
type Transaction struct {
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// IndexEntry - address index item: an output and the height of the
// block containing it, zero if unconfirmed
type IndexEntry struct {
	Outpoint
	Value  int64  `json:"value"`
	Height uint64 `json:"height"`
}

// String - for debugging
func (o Outpoint) String() string {
	return fmt.Sprintf("%s/%d", o.TxId, o.Index)
}

// NormalOutput - pay to the public key hash of pk
func NormalOutput(value int64, pk account.PublicKey) Output {
	return Output{
		Value:   value,
		Address: account.NormalAddress(pk),
	}
}

// AddressOutput - pay to an already derived normal address
func AddressOutput(value int64, address string) Output {
	return Output{
		Value:   value,
		Address: address,
	}
}

// PoolOutput - consensus-condition output of an evaluation code for pk
func PoolOutput(evalCode byte, value int64, pk account.PublicKey) Output {
	return Output{
		Value:    value,
		Pooled:   true,
		EvalCode: evalCode,
		Address:  account.PoolAddress(evalCode, pk),
	}
}

// TokensPoolOutput - token output held under a contract evaluation code for pk
func TokensPoolOutput(evalCode byte, value int64, pk account.PublicKey) Output {
	return Output{
		Value:    value,
		Pooled:   true,
		EvalCode: constants.EvalTokens,
		Address:  account.TokensPoolAddress(evalCode, pk),
	}
}

// DataOutput - zero value memo carrier
func DataOutput(data []byte) Output {
	return Output{
		Data: data,
	}
}

// IsData - true for a memo carrier
func (o Output) IsData() bool {
	return 0 != len(o.Data)
}

// Memo - data of the last output, nil if there is none
func (tx *Transaction) Memo() []byte {
	if 0 == len(tx.Outputs) {
		return nil
	}
	return tx.Outputs[len(tx.Outputs)-1].Data
}

// Pack - serialise
func (tx *Transaction) Pack() Packed {
	w := util.Writer{}
	w.VarInt(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		w.Hash(in.Previous.TxId).
			Uint32(in.Previous.Index).
			Uint8(boolByte(in.Pooled))
	}
	w.VarInt(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		w.Int64(out.Value).
			Uint8(boolByte(out.Pooled)).
			Uint8(out.EvalCode).
			VarString(out.Address).
			VarBytes(out.Data)
	}
	return w.Bytes()
}

// TxId - double SHA-256 of the packed transaction
func (tx *Transaction) TxId() merkle.Digest {
	return merkle.NewDigest(tx.Pack())
}

// TotalOutput - sum of output values
func (tx *Transaction) TotalOutput() int64 {
	total := int64(0)
	for _, out := range tx.Outputs {
		total += out.Value
	}
	return total
}

// Unpack - deserialise a packed transaction
func (record Packed) Unpack() (*Transaction, error) {
	r := util.NewReader(record)

	tx := &Transaction{}
	n := r.VarInt(maximumInputs)
	for i := uint64(0); i < n && nil == r.Err(); i += 1 {
		in := Input{}
		in.Previous.TxId = r.Hash()
		in.Previous.Index = r.Uint32()
		pooled, err := byteBool(r.Uint8())
		if nil != err {
			return nil, err
		}
		in.Pooled = pooled
		tx.Inputs = append(tx.Inputs, in)
	}

	n = r.VarInt(maximumOutputs)
	for i := uint64(0); i < n && nil == r.Err(); i += 1 {
		out := Output{}
		out.Value = r.Int64()
		pooled, err := byteBool(r.Uint8())
		if nil != err {
			return nil, err
		}
		out.Pooled = pooled
		out.EvalCode = r.Uint8()
		out.Address = r.VarString(maximumAddressLength, "address")
		data := r.VarBytes(maximumDataLength, "data")
		if 0 != len(data) {
			out.Data = data
		}
		if out.Value < 0 {
			return nil, fault.InvalidAmount
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if err := r.Done(); nil != err {
		return nil, err
	}
	return tx, nil
}

// TransactionFromHex - parse the hex form of a packed transaction
func TransactionFromHex(s string) (*Transaction, error) {
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.InvalidHexString
	}
	return Packed(b).Unpack()
}

// String - hex of the packed form
func (record Packed) String() string {
	return hex.EncodeToString(record)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func byteBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fault.InvalidFlag
	}
}
