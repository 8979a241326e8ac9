// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/finality"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
	"github.com/bitmark-inc/gatewaysd/tokens"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// ChainView - read access to committed host chain state
type ChainView interface {
	GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool)
	History(address string) []utxo.IndexEntry
	Unspents(address string) []utxo.IndexEntry
	Balance(address string) int64
}

// PoolView - read access to unconfirmed transactions
type PoolView interface {
	Transactions() []*utxo.Transaction
	GetTransaction(txId merkle.Digest) (*utxo.Transaction, bool)
	AddressUsed(address string) bool
	SpentInPool(outpoint utxo.Outpoint) bool
}

// Funder - normal input selection and transaction completion
type Funder interface {
	AddNormalInputs(tx *utxo.Transaction, pk account.PublicKey, total int64, maxInputs int) int64
	Finalize(tx *utxo.Transaction, pk account.PublicKey, fee int64, memo []byte) error
}

// Handles - the collaborators of the gateways contract
type Handles struct {
	Chain    ChainView
	Pool     PoolView
	Tokens   tokens.Ledger
	Oracles  oracles.Reader
	Finality finality.Oracle
	Funder   Funder
}

// Gateways - validator, builders and views of the gateways contract
type Gateways struct {
	log         *logger.L
	chain       ChainView
	pool        PoolView
	tokens      tokens.Ledger
	oracles     oracles.Reader
	finality    finality.Oracle
	funder      Funder
	fee         int64
	maximumHops int
	gatewaysPub account.PublicKey
}

// New - create a gateways contract instance
//
// a zero fee or hop count selects the default
func New(log *logger.L, handles Handles, fee int64, maximumHops int) *Gateways {
	if 0 >= fee {
		fee = constants.TxFee
	}
	if 0 >= maximumHops {
		maximumHops = constants.MaximumBatonHops
	}
	return &Gateways{
		log:         log,
		chain:       handles.Chain,
		pool:        handles.Pool,
		tokens:      handles.Tokens,
		oracles:     handles.Oracles,
		finality:    handles.Finality,
		funder:      handles.Funder,
		fee:         fee,
		maximumHops: maximumHops,
		gatewaysPub: account.GatewaysPublicKey(),
	}
}

// MarkerAddress - where workflow markers of the contract are held
func (g *Gateways) MarkerAddress() string {
	return account.PoolAddress(constants.EvalGateways, g.gatewaysPub)
}

// CustodyAddress - where tokens in custody of the contract are held
func (g *Gateways) CustodyAddress() string {
	return account.TokensPoolAddress(constants.EvalGateways, g.gatewaysPub)
}

// committed first, then unconfirmed
func (g *Gateways) getTransaction(txId merkle.Digest) (*utxo.Transaction, bool) {
	if tx, ok := g.chain.GetTransaction(txId); ok {
		return tx, true
	}
	if nil == g.pool {
		return nil, false
	}
	return g.pool.GetTransaction(txId)
}

func (g *Gateways) spentInPool(outpoint utxo.Outpoint) bool {
	return nil != g.pool && g.pool.SpentInPool(outpoint)
}
