// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Chain - in-memory committed chain plus unconfirmed pool for tests
//
// every committed transaction gets its own block height
type Chain struct {
	transactions map[merkle.Digest]*utxo.Transaction
	heights      map[merkle.Digest]uint64
	spent        map[utxo.Outpoint]bool
	order        []merkle.Digest
	height       uint64
	pool         []*utxo.Transaction
}

// PoolView - the unconfirmed part of a Chain
type PoolView struct {
	chain *Chain
}

// NewChain - empty chain
func NewChain() *Chain {
	return &Chain{
		transactions: make(map[merkle.Digest]*utxo.Transaction),
		heights:      make(map[merkle.Digest]uint64),
		spent:        make(map[utxo.Outpoint]bool),
	}
}

// Commit - add a transaction in a new block, returns its id
func (c *Chain) Commit(tx *utxo.Transaction) merkle.Digest {
	txId := tx.TxId()
	c.height += 1
	c.transactions[txId] = tx
	c.heights[txId] = c.height
	c.order = append(c.order, txId)
	for _, in := range tx.Inputs {
		c.spent[in.Previous] = true
	}
	return txId
}

// Submit - add a transaction to the unconfirmed pool, returns its id
func (c *Chain) Submit(tx *utxo.Transaction) merkle.Digest {
	c.pool = append(c.pool, tx)
	return tx.TxId()
}

// Height - current block height
func (c *Chain) Height() uint64 {
	return c.height
}

// HeightOf - block height of a committed transaction
func (c *Chain) HeightOf(txId merkle.Digest) (uint64, bool) {
	h, ok := c.heights[txId]
	return h, ok
}

// GetTransaction - a committed transaction
func (c *Chain) GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	tx, ok := c.transactions[txId]
	return tx, ok
}

// History - every committed output paying an address, oldest first
func (c *Chain) History(address string) []utxo.IndexEntry {
	return c.collect(address, false)
}

// Unspents - committed outputs paying an address that are not spent
// by a committed transaction
func (c *Chain) Unspents(address string) []utxo.IndexEntry {
	return c.collect(address, true)
}

// Balance - sum of unspent values at an address
func (c *Chain) Balance(address string) int64 {
	total := int64(0)
	for _, entry := range c.Unspents(address) {
		total += entry.Value
	}
	return total
}

// Pool - the unconfirmed view
func (c *Chain) Pool() *PoolView {
	return &PoolView{chain: c}
}

func (c *Chain) collect(address string, unspentOnly bool) []utxo.IndexEntry {
	entries := []utxo.IndexEntry{}
	for _, txId := range c.order {
		tx := c.transactions[txId]
		for i, out := range tx.Outputs {
			if out.Address != address || out.IsData() {
				continue
			}
			outpoint := utxo.Outpoint{TxId: txId, Index: uint32(i)}
			if unspentOnly && c.spent[outpoint] {
				continue
			}
			entries = append(entries, utxo.IndexEntry{
				Outpoint: outpoint,
				Value:    out.Value,
				Height:   c.heights[txId],
			})
		}
	}
	return entries
}

// Transactions - all unconfirmed transactions
func (p *PoolView) Transactions() []*utxo.Transaction {
	return p.chain.pool
}

// GetTransaction - an unconfirmed transaction
func (p *PoolView) GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	for _, tx := range p.chain.pool {
		if tx.TxId() == txId {
			return tx, true
		}
	}
	return nil, false
}

// AddressUsed - true if an unconfirmed output pays the address
func (p *PoolView) AddressUsed(address string) bool {
	for _, tx := range p.chain.pool {
		for _, out := range tx.Outputs {
			if out.Address == address {
				return true
			}
		}
	}
	return false
}

// SpentInPool - true if an unconfirmed transaction spends the outpoint
func (p *PoolView) SpentInPool(outpoint utxo.Outpoint) bool {
	for _, tx := range p.chain.pool {
		for _, in := range tx.Inputs {
			if in.Previous == outpoint {
				return true
			}
		}
	}
	return false
}
