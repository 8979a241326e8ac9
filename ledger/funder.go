// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Source - committed transactions and unspent outputs
type Source interface {
	GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool)
	Unspents(address string) []utxo.IndexEntry
}

// Unconfirmed - the parts of the pool a funder consults
type Unconfirmed interface {
	GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool)
	SpentInPool(outpoint utxo.Outpoint) bool
}

// Funder - selects normal inputs and completes transactions
type Funder struct {
	log    *logger.L
	source Source
	pool   Unconfirmed
}

// NewFunder - create a funder, pool may be nil
func NewFunder(source Source, pool Unconfirmed) *Funder {
	return &Funder{
		log:    logger.New("funder"),
		source: source,
		pool:   pool,
	}
}

// AddNormalInputs - append unspent normal outputs of pk until total
// is covered
//
// nothing is appended and zero returned if total cannot be reached
// within maxInputs inputs
func (f *Funder) AddNormalInputs(tx *utxo.Transaction, pk account.PublicKey, total int64, maxInputs int) int64 {
	inputs := []utxo.Input{}
	sum := int64(0)

	for _, entry := range f.source.Unspents(account.NormalAddress(pk)) {
		if maxInputs > 0 && len(inputs) >= maxInputs {
			break
		}
		if hasInput(tx, entry.Outpoint) {
			continue
		}
		if nil != f.pool && f.pool.SpentInPool(entry.Outpoint) {
			continue
		}
		prev, ok := f.source.GetTransaction(entry.TxId)
		if !ok || int(entry.Index) >= len(prev.Outputs) || prev.Outputs[entry.Index].Pooled {
			continue
		}
		inputs = append(inputs, utxo.Input{Previous: entry.Outpoint})
		sum += entry.Value
		if sum >= total {
			tx.Inputs = append(tx.Inputs, inputs...)
			return sum
		}
	}
	f.log.Debugf("normal inputs: %s  need: %d  found: %d", account.NormalAddress(pk), total, sum)
	return 0
}

// Finalize - add change to pk and the memo output
//
// change is the input value less the outputs and fee
func (f *Funder) Finalize(tx *utxo.Transaction, pk account.PublicKey, fee int64, memo []byte) error {
	inputs := int64(0)
	for _, in := range tx.Inputs {
		prev, ok := f.getTransaction(in.Previous.TxId)
		if !ok || int(in.Previous.Index) >= len(prev.Outputs) {
			return fault.TransactionNotFound
		}
		inputs += prev.Outputs[in.Previous.Index].Value
	}

	change := inputs - tx.TotalOutput() - fee
	if change < 0 {
		f.log.Debugf("finalize: inputs: %d  outputs: %d  fee: %d", inputs, tx.TotalOutput(), fee)
		return fault.InsufficientFunds
	}
	if change > 0 {
		tx.Outputs = append(tx.Outputs, utxo.NormalOutput(change, pk))
	}
	tx.Outputs = append(tx.Outputs, utxo.DataOutput(memo))
	return nil
}

func (f *Funder) getTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	if tx, ok := f.source.GetTransaction(txId); ok {
		return tx, true
	}
	if nil == f.pool {
		return nil, false
	}
	return f.pool.GetTransaction(txId)
}

func hasInput(tx *utxo.Transaction, outpoint utxo.Outpoint) bool {
	for _, in := range tx.Inputs {
		if in.Previous == outpoint {
			return true
		}
	}
	return false
}
