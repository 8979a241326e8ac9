// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sort"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/storage"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Store - add a transaction to the pool
//
// returns the txId and true if the identical transaction was already
// pending; an input spent on chain or by another pending transaction
// is rejected
func Store(tx *utxo.Transaction) (merkle.Digest, bool, error) {
	if 0 == len(tx.Outputs) {
		return merkle.Digest{}, false, fault.NoVouts
	}
	txId := tx.TxId()

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.enabled {
		return merkle.Digest{}, false, fault.NotInitialised
	}

	if _, found := globalData.entries.Get(txId.String()); found {
		return txId, true, nil
	}
	if _, _, found := storage.GetTransaction(txId); found {
		return merkle.Digest{}, false, fault.TransactionAlreadyExists
	}
	if globalData.entries.ItemCount() >= globalData.maximum {
		return merkle.Digest{}, false, fault.PoolFull
	}

	for _, in := range tx.Inputs {
		if spender, ok := globalData.spends[in.Previous]; ok {
			if _, live := get(spender); live {
				return merkle.Digest{}, false, fault.DoubleSpend
			}
		}
		if storage.IsSpent(in.Previous) {
			return merkle.Digest{}, false, fault.DoubleSpend
		}
	}

	globalData.sequence += 1
	entry := &item{
		txId:        txId,
		transaction: tx,
		sequence:    globalData.sequence,
	}
	globalData.entries.Set(txId.String(), entry, cache.DefaultExpiration)

	for _, in := range tx.Inputs {
		globalData.spends[in.Previous] = txId
	}
	for _, out := range tx.Outputs {
		if out.IsData() || "" == out.Address {
			continue
		}
		globalData.addresses[out.Address] += 1
	}

	globalData.log.Infof("stored: %v", txId)
	return txId, false, nil
}

// Confirm - drop transactions included in a block, and any pending
// transaction that spends an output the block spent
func Confirm(txs []*utxo.Transaction) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.enabled {
		return
	}
	for _, tx := range txs {
		globalData.entries.Delete(tx.TxId().String())
		for _, in := range tx.Inputs {
			if spender, ok := globalData.spends[in.Previous]; ok {
				globalData.log.Warnf("conflict: %v  spends: %v", spender, in.Previous)
				globalData.entries.Delete(spender.String())
			}
		}
	}
}

// Transactions - all pending transactions, oldest first
func Transactions() []*utxo.Transaction {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.enabled {
		return nil
	}

	entries := make([]*item, 0, globalData.entries.ItemCount())
	for _, v := range globalData.entries.Items() {
		entries = append(entries, v.Object.(*item))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].sequence < entries[j].sequence
	})

	txs := make([]*utxo.Transaction, len(entries))
	for i, entry := range entries {
		txs[i] = entry.transaction
	}
	return txs
}

// GetTransaction - a pending transaction
func GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	globalData.RLock()
	defer globalData.RUnlock()
	return get(txId)
}

func get(txId merkle.Digest) (*utxo.Transaction, bool) {
	if !globalData.enabled {
		return nil, false
	}
	v, found := globalData.entries.Get(txId.String())
	if !found {
		return nil, false
	}
	return v.(*item).transaction, true
}

// SpentInPool - true if a pending transaction spends the outpoint
func SpentInPool(outpoint utxo.Outpoint) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.enabled {
		return false
	}
	spender, ok := globalData.spends[outpoint]
	if !ok {
		return false
	}
	_, live := get(spender)
	return live
}

// AddressUsed - true if a pending transaction pays the address
func AddressUsed(address string) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.enabled {
		return false
	}
	if 0 == globalData.addresses[address] {
		return false
	}

	// the count may include entries expired but not yet swept
	for _, v := range globalData.entries.Items() {
		for _, out := range v.Object.(*item).transaction.Outputs {
			if address == out.Address && !out.IsData() {
				return true
			}
		}
	}
	return false
}
