// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/reservoir"
	"github.com/bitmark-inc/gatewaysd/storage"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

type maker struct {
	log      *logger.L
	interval time.Duration
}

// Run - commit pending transactions at each tick
func (m *maker) Run(args interface{}, shutdown <-chan struct{}) {
	m.log.Infof("interval: %s", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			height, count, err := MakeBlock()
			if nil != err {
				m.log.Errorf("make block error: %s", err)
			} else if 0 != count {
				m.log.Infof("block: %d  transactions: %d", height, count)
			}
		}
	}
	m.log.Info("stopped")
}

// MakeBlock - commit every pending transaction that can be included
//
// returns the new height and the number of transactions; nothing is
// written when no transaction qualifies
func MakeBlock() (uint64, int, error) {
	txs := Candidates(reservoir.Transactions())
	if 0 == len(txs) {
		return storage.Height(), 0, nil
	}

	height := storage.Height() + 1
	if err := storage.StoreBlock(height, txs); nil != err {
		return 0, 0, err
	}
	reservoir.Confirm(txs)
	return height, len(txs), nil
}

// Candidates - pending transactions, in order, whose inputs all spend
// unspent outputs either committed or created by an earlier candidate
func Candidates(pending []*utxo.Transaction) []*utxo.Transaction {
	created := make(map[utxo.Outpoint]struct{})
	spent := make(map[utxo.Outpoint]struct{})

	selected := make([]*utxo.Transaction, 0, len(pending))

nextTransaction:
	for _, tx := range pending {
		if 0 == len(tx.Outputs) {
			continue
		}
		for _, in := range tx.Inputs {
			if _, ok := spent[in.Previous]; ok {
				continue nextTransaction
			}
			if _, ok := created[in.Previous]; ok {
				continue
			}
			if !committedUnspent(in.Previous) {
				continue nextTransaction
			}
		}

		txId := tx.TxId()
		if _, _, found := storage.GetTransaction(txId); found {
			continue
		}
		for _, in := range tx.Inputs {
			spent[in.Previous] = struct{}{}
			delete(created, in.Previous)
		}
		for i := range tx.Outputs {
			created[utxo.Outpoint{TxId: txId, Index: uint32(i)}] = struct{}{}
		}
		selected = append(selected, tx)
	}
	return selected
}

func committedUnspent(outpoint utxo.Outpoint) bool {
	previous, _, found := storage.GetTransaction(outpoint.TxId)
	if !found || int(outpoint.Index) >= len(previous.Outputs) {
		return false
	}
	return !storage.IsSpent(outpoint)
}
