// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Payment - a normal payment to pk spending the given inputs
func Payment(inputs []utxo.Input, pk account.PublicKey, value int64) *utxo.Transaction {
	return &utxo.Transaction{
		Inputs:  inputs,
		Outputs: []utxo.Output{utxo.NormalOutput(value, pk)},
	}
}

// Spend - pay value to pk from one normal output, with change
func Spend(txId merkle.Digest, index uint32, pk account.PublicKey, value int64, changePk account.PublicKey, change int64) *utxo.Transaction {
	return &utxo.Transaction{
		Inputs: []utxo.Input{
			{Previous: Outpoint(txId, index)},
		},
		Outputs: []utxo.Output{
			utxo.NormalOutput(value, pk),
			utxo.NormalOutput(change, changePk),
		},
	}
}

// Outpoint - shorthand
func Outpoint(txId merkle.Digest, index uint32) utxo.Outpoint {
	return utxo.Outpoint{TxId: txId, Index: index}
}

// Transactions - shorthand for a block body
func Transactions(txs ...*utxo.Transaction) []*utxo.Transaction {
	return txs
}
