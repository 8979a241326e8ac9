// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokens

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Ledger - token supply, balance and input selection
type Ledger interface {
	FullSupply(tokenId merkle.Digest) int64
	Balance(address string, tokenId merkle.Digest) int64
	AddInputs(tx *utxo.Transaction, pk account.PublicKey, tokenId merkle.Digest, total int64, maxInputs int) int64
	PoolAddress(pk account.PublicKey) string
}

// Source - the committed chain data a ledger reads
type Source interface {
	GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool)
	Unspents(address string) []utxo.IndexEntry
}

// SpendChecker - reports outputs already spent by unconfirmed transactions
type SpendChecker interface {
	SpentInPool(outpoint utxo.Outpoint) bool
}

// ChainLedger - a ledger computed from chain state
type ChainLedger struct {
	log    *logger.L
	source Source
	pool   SpendChecker
}

// NewChainLedger - create a ledger over committed data, pool may be nil
func NewChainLedger(source Source, pool SpendChecker) *ChainLedger {
	return &ChainLedger{
		log:    logger.New("tokens"),
		source: source,
		pool:   pool,
	}
}

// PoolAddress - the token address of a key
func (l *ChainLedger) PoolAddress(pk account.PublicKey) string {
	return account.PoolAddress(constants.EvalTokens, pk)
}

// FullSupply - the quantity minted by the token creation transaction
//
// zero if tokenId is not a token creation
func (l *ChainLedger) FullSupply(tokenId merkle.Digest) int64 {
	tx, ok := l.source.GetTransaction(tokenId)
	if !ok {
		l.log.Debugf("full supply: token: %v not found", tokenId)
		return 0
	}
	if _, err := UnpackCreate(tx.Memo()); nil != err {
		l.log.Debugf("full supply: token: %v  error: %s", tokenId, err)
		return 0
	}
	if len(tx.Outputs) < 2 {
		return 0
	}
	return tx.Outputs[1].Value
}

// Balance - sum of the unspent token outputs of a token at an address
func (l *ChainLedger) Balance(address string, tokenId merkle.Digest) int64 {
	total := int64(0)
	for _, entry := range l.source.Unspents(address) {
		if value, ok := l.tokenValue(entry, tokenId); ok {
			total += value
		}
	}
	return total
}

// AddInputs - append unspent token outputs of pk until total is reached
//
// returns the sum of the added inputs
func (l *ChainLedger) AddInputs(tx *utxo.Transaction, pk account.PublicKey, tokenId merkle.Digest, total int64, maxInputs int) int64 {
	sum := int64(0)
	n := 0
	for _, entry := range l.source.Unspents(l.PoolAddress(pk)) {
		if hasInput(tx, entry.Outpoint) {
			continue
		}
		if nil != l.pool && l.pool.SpentInPool(entry.Outpoint) {
			continue
		}
		value, ok := l.tokenValue(entry, tokenId)
		if !ok {
			continue
		}
		tx.Inputs = append(tx.Inputs, utxo.Input{
			Previous: entry.Outpoint,
			Pooled:   true,
		})
		sum += value
		n += 1
		if sum >= total || (maxInputs > 0 && n >= maxInputs) {
			break
		}
	}
	return sum
}

// value of an indexed output if it holds the given token
func (l *ChainLedger) tokenValue(entry utxo.IndexEntry, tokenId merkle.Digest) (int64, bool) {
	tx, ok := l.source.GetTransaction(entry.TxId)
	if !ok || int(entry.Index) >= len(tx.Outputs) {
		return 0, false
	}
	out := tx.Outputs[entry.Index]
	if !out.Pooled || constants.EvalTokens != out.EvalCode {
		return 0, false
	}
	id, ok := TokenIdOf(entry.TxId, tx.Memo())
	if !ok || id != tokenId {
		return 0, false
	}
	return out.Value, true
}

func hasInput(tx *utxo.Transaction, outpoint utxo.Outpoint) bool {
	for _, in := range tx.Inputs {
		if in.Previous == outpoint {
			return true
		}
	}
	return false
}
