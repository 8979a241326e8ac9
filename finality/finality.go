// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package finality

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/merkle"
)

// Oracle - decides whether a transaction can no longer be reorganised away
type Oracle interface {
	IsFinalized(txId merkle.Digest) bool
}

// HeightSource - block heights of committed transactions
type HeightSource interface {
	Height() uint64
	HeightOf(txId merkle.Digest) (uint64, bool)
}

// Depth - final once buried under enough blocks
type Depth struct {
	log           *logger.L
	source        HeightSource
	confirmations uint64
}

// NewDepth - finality after a number of confirmations
//
// a transaction in the tip block has one confirmation
func NewDepth(source HeightSource, confirmations uint64) *Depth {
	if 0 == confirmations {
		confirmations = 1
	}
	return &Depth{
		log:           logger.New("finality"),
		source:        source,
		confirmations: confirmations,
	}
}

// IsFinalized - true if the transaction is committed deep enough
func (d *Depth) IsFinalized(txId merkle.Digest) bool {
	height, ok := d.source.HeightOf(txId)
	if !ok {
		d.log.Debugf("txid: %v  not committed", txId)
		return false
	}
	tip := d.source.Height()
	if height > tip {
		return false
	}
	return tip-height+1 >= d.confirmations
}

// Confirmations - the depth of a committed transaction, zero otherwise
func (d *Depth) Confirmations(txId merkle.Digest) uint64 {
	height, ok := d.source.HeightOf(txId)
	if !ok {
		return 0
	}
	tip := d.source.Height()
	if height > tip {
		return 0
	}
	return tip - height + 1
}
