// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// BindExists - true if any committed or unconfirmed binding names tokenId
func (g *Gateways) BindExists(tokenId merkle.Digest) bool {
	for _, entry := range g.chain.History(g.MarkerAddress()) {
		tx, ok := g.chain.GetTransaction(entry.TxId)
		if !ok {
			continue
		}
		bind, err := transactionrecord.UnpackBind(tx.Memo())
		if nil == err && bind.TokenId == tokenId {
			g.log.Debugf("bind exists: token: %v  bind: %v", tokenId, entry.TxId)
			return true
		}
	}

	if nil == g.pool {
		return false
	}
	for _, tx := range g.pool.Transactions() {
		if 0 == len(tx.Outputs) {
			continue
		}
		bind, err := transactionrecord.UnpackBind(tx.Memo())
		if nil == err && bind.TokenId == tokenId {
			g.log.Debugf("bind exists: token: %v  unconfirmed", tokenId)
			return true
		}
	}
	return false
}

// CointxidExists - true if a deposit has registered the external txid
//
// every deposit pays a marker to the address derived from its
// external txid so the registry is the history of that address
func (g *Gateways) CointxidExists(coinTxId merkle.Digest) bool {
	address := account.TxIdAddress(coinTxId)
	if 0 != len(g.chain.History(address)) {
		return true
	}
	return nil != g.pool && g.pool.AddressUsed(address)
}

// Depositval - amount of a deposit ticket if it names pk as claimant
func Depositval(tx *utxo.Transaction, pk account.PublicKey) int64 {
	if 0 == len(tx.Outputs) {
		return 0
	}
	deposit, err := transactionrecord.UnpackDeposit(tx.Memo())
	if nil != err || !deposit.DestPub.Equal(pk) {
		return 0
	}
	return deposit.Amount
}

// AddGatewaysInputs - append custody inputs of a binding to tx
//
// candidates are vout 0 of the bind and vout 1 of withdraws and
// claims of the same binding; outputs smaller than
// total/(maxInputs+1) are skipped; returns the sum added
func (g *Gateways) AddGatewaysInputs(tx *utxo.Transaction, bindTxId merkle.Digest, total int64, maxInputs int) int64 {
	if 0 == total || 0 == maxInputs {
		return 0
	}
	bindTx, ok := g.getTransaction(bindTxId)
	if !ok {
		g.log.Debugf("gateway inputs: cant find bind: %v", bindTxId)
		return 0
	}
	bind, err := transactionrecord.UnpackBind(bindTx.Memo())
	if nil != err {
		g.log.Debugf("gateway inputs: invalid bind: %v  error: %s", bindTxId, err)
		return 0
	}

	threshold := total / int64(maxInputs+1)
	sum := int64(0)
	n := 0

	for _, entry := range g.chain.Unspents(g.CustodyAddress()) {
		if entry.Value < threshold {
			continue
		}
		if hasInput(tx, entry.Outpoint) || g.spentInPool(entry.Outpoint) {
			continue
		}
		vinTx, ok := g.chain.GetTransaction(entry.TxId)
		if !ok || !isCustodyOutput(vinTx, entry.Index, entry.TxId, bindTxId, bind) {
			continue
		}

		tx.Inputs = append(tx.Inputs, utxo.Input{
			Previous: entry.Outpoint,
			Pooled:   true,
		})
		sum += entry.Value
		n += 1
		if (total > 0 && sum >= total) || (maxInputs > 0 && n >= maxInputs) {
			break
		}
	}
	return sum
}

// whether an output holds custody tokens of the binding
func isCustodyOutput(tx *utxo.Transaction, index uint32, txId merkle.Digest, bindTxId merkle.Digest, bind *transactionrecord.Bind) bool {
	record, err := transactionrecord.Unpack(tx.Memo())
	if nil != err {
		return false
	}
	switch r := record.(type) {
	case *transactionrecord.Bind:
		return 0 == index && txId == bindTxId
	case *transactionrecord.Withdraw:
		return 1 == index && r.BindTxId == bindTxId && r.Coin == bind.Coin && r.TokenId == bind.TokenId
	case *transactionrecord.Claim:
		return 1 == index && r.BindTxId == bindTxId && r.Coin == bind.Coin && r.TokenId == bind.TokenId
	default:
		return false
	}
}

func hasInput(tx *utxo.Transaction, outpoint utxo.Outpoint) bool {
	for _, in := range tx.Inputs {
		if in.Previous == outpoint {
			return true
		}
	}
	return false
}
