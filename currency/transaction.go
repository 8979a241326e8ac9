// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
)

// Transaction - a decoded external chain transaction
type Transaction struct {
	tx     *wire.MsgTx
	params Params
}

// DecodeTransaction - parse raw hex of an external transaction
func DecodeTransaction(p Params, rawHex string) (*Transaction, error) {
	b, err := hex.DecodeString(rawHex)
	if nil != err {
		return nil, fault.InvalidRawTransaction
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	r := bytes.NewReader(b)
	if err := tx.DeserializeNoWitness(r); nil != err {
		return nil, fault.InvalidRawTransaction
	}
	if 0 != r.Len() {
		return nil, fault.InvalidRawTransaction
	}
	return &Transaction{
		tx:     tx,
		params: p,
	}, nil
}

// TxId - double SHA-256 of the serialised transaction
func (t *Transaction) TxId() merkle.Digest {
	return merkle.Digest(t.tx.TxHash())
}

// OutputCount - number of outputs
func (t *Transaction) OutputCount() int {
	return len(t.tx.TxOut)
}

// Output - the single address paid by an output and its value
//
// an output with a non-standard or multi-address script yields an
// empty address
func (t *Transaction) Output(n int) (string, int64, error) {
	if n < 0 || n >= len(t.tx.TxOut) {
		return "", 0, fault.InvalidCount
	}
	out := t.tx.TxOut[n]
	_, addresses, _, err := txscript.ExtractPkScriptAddrs(out.PkScript, t.params.ChainParams())
	if nil != err || 1 != len(addresses) {
		return "", out.Value, nil
	}
	return addresses[0].EncodeAddress(), out.Value, nil
}
