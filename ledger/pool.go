// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/reservoir"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Pool - read view of the unconfirmed transactions in the reservoir
type Pool struct{}

// NewPool - reservoir must be initialised before use
func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Transactions() []*utxo.Transaction {
	return reservoir.Transactions()
}

func (p *Pool) GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	return reservoir.GetTransaction(txId)
}

func (p *Pool) AddressUsed(address string) bool {
	return reservoir.AddressUsed(address)
}

func (p *Pool) SpentInPool(outpoint utxo.Outpoint) bool {
	return reservoir.SpentInPool(outpoint)
}

// Store - add a transaction to the reservoir
func (p *Pool) Store(tx *utxo.Transaction) (merkle.Digest, bool, error) {
	return reservoir.Store(tx)
}
