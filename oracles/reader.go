// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracles

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// Reader - oracle lookups
type Reader interface {
	Create(oracleTxId merkle.Digest) (*Create, error)
	Baton(oracleTxId merkle.Digest, publisher account.PublicKey) merkle.Digest
}

// Source - the committed chain data a reader uses
type Source interface {
	GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool)
	Unspents(address string) []utxo.IndexEntry
}

// ChainReader - oracle lookups over chain state
type ChainReader struct {
	log    *logger.L
	source Source
}

// NewChainReader - create a reader
func NewChainReader(source Source) *ChainReader {
	return &ChainReader{
		log:    logger.New("oracles"),
		source: source,
	}
}

// BatonAddress - where a publisher's latest publication leaves its marker
func BatonAddress(publisher account.PublicKey) string {
	return account.PoolAddress(constants.EvalOracles, publisher)
}

// Create - the creation record of an oracle
func (o *ChainReader) Create(oracleTxId merkle.Digest) (*Create, error) {
	tx, ok := o.source.GetTransaction(oracleTxId)
	if !ok || 0 == len(tx.Outputs) {
		return nil, fault.OracleNotFound
	}
	return UnpackCreate(tx.Memo())
}

// Baton - the most recent publication of a publisher to an oracle
//
// returns the zero digest if the publisher has never published
func (o *ChainReader) Baton(oracleTxId merkle.Digest, publisher account.PublicKey) merkle.Digest {
	baton := merkle.Digest{}
	height := uint64(0)
	for _, entry := range o.source.Unspents(BatonAddress(publisher)) {
		if 0 != entry.Index || entry.Height < height {
			continue
		}
		tx, ok := o.source.GetTransaction(entry.TxId)
		if !ok {
			continue
		}
		data, err := UnpackData(tx.Memo())
		if nil != err {
			continue
		}
		if data.OracleTxId != oracleTxId || !data.Publisher.Equal(publisher) {
			continue
		}
		baton = entry.TxId
		height = entry.Height
	}
	o.log.Debugf("baton: oracle: %v  publisher: %s  -> %v", oracleTxId, publisher, baton)
	return baton
}
