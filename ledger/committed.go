// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/storage"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Committed - read view of the host chain held in storage
type Committed struct {
	log *logger.L
}

// NewCommitted - storage must be initialised before use
func NewCommitted() *Committed {
	return &Committed{
		log: logger.New("committed"),
	}
}

// GetTransaction - a committed transaction
func (c *Committed) GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	tx, _, found := storage.GetTransaction(txId)
	return tx, found
}

// History - every output ever paid to address
func (c *Committed) History(address string) []utxo.IndexEntry {
	entries, err := storage.History(address)
	if nil != err {
		c.log.Errorf("history: %s  error: %s", address, err)
		return nil
	}
	return entries
}

// Unspents - outputs of address not yet spent on chain
func (c *Committed) Unspents(address string) []utxo.IndexEntry {
	entries, err := storage.Unspents(address)
	if nil != err {
		c.log.Errorf("unspents: %s  error: %s", address, err)
		return nil
	}
	return entries
}

// Balance - sum of the unspent outputs of address
func (c *Committed) Balance(address string) int64 {
	balance := int64(0)
	for _, entry := range c.Unspents(address) {
		balance += entry.Value
	}
	return balance
}

// Height - height of the last committed block
func (c *Committed) Height() uint64 {
	return storage.Height()
}

// HeightOf - block height of a committed transaction
func (c *Committed) HeightOf(txId merkle.Digest) (uint64, bool) {
	_, height, found := storage.GetTransaction(txId)
	return height, found
}
