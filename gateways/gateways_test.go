// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/finality"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/ledger"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
	"github.com/bitmark-inc/gatewaysd/tokens"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

const (
	coin         = "KMD"
	sampleHeight = int32(814000)
	totalSupply  = int64(100 * constants.CoinUnit)
)

var (
	owner    = account.PublicKey(fixtures.PublicKey(1))
	other    = account.PublicKey(fixtures.PublicKey(2))
	signer1  = account.PublicKey(fixtures.PublicKey(3))
	signer2  = account.PublicKey(fixtures.PublicKey(4))
	signer   = account.PublicKey(fixtures.MustHex(fixtures.DepositPublicKeyHex))
	claimant = account.PublicKey(fixtures.MustHex(fixtures.ClaimPublicKeyHex))
)

// a fixture chain with the real collaborators wired over it
type testChain struct {
	t       *testing.T
	chain   *fixtures.Chain
	g       *gateways.Gateways
	batons  map[string]merkle.Digest
	funding int64
}

func newTestChain(t *testing.T, maximumHops int) *testChain {
	chain := fixtures.NewChain()
	pool := chain.Pool()
	handles := gateways.Handles{
		Chain:    chain,
		Pool:     pool,
		Tokens:   tokens.NewChainLedger(chain, pool),
		Oracles:  oracles.NewChainReader(chain),
		Finality: finality.NewDepth(chain, constants.MinimumConfirmations),
		Funder:   ledger.NewFunder(chain, pool),
	}
	return &testChain{
		t:       t,
		chain:   chain,
		g:       gateways.New(logger.New(fixtures.LogCategory), handles, 0, maximumHops),
		batons:  make(map[string]merkle.Digest),
		funding: 0,
	}
}

// pay a normal output to pk, each call with a distinct value
func (c *testChain) fund(pk account.PublicKey, value int64) merkle.Digest {
	c.funding += 1
	return c.chain.Commit(&utxo.Transaction{
		Outputs: []utxo.Output{
			utxo.NormalOutput(value+c.funding, pk),
		},
	})
}

// create a token with the whole supply at the creator's token address
func (c *testChain) createToken(creator account.PublicKey, supply int64) merkle.Digest {
	create := &tokens.Create{
		OwnerPub:    creator,
		Name:        coin,
		Description: "KMD equivalent token",
	}
	memo, err := create.Pack()
	assert.Nil(c.t, err, "pack token create")
	return c.chain.Commit(&utxo.Transaction{
		Outputs: []utxo.Output{
			utxo.PoolOutput(constants.EvalTokens, constants.TxFee, account.GatewaysPublicKey()),
			utxo.PoolOutput(constants.EvalTokens, supply, creator),
			utxo.DataOutput(memo),
		},
	})
}

func (c *testChain) createOracle(name string, format string) merkle.Digest {
	create := &oracles.Create{
		Name:        name,
		Format:      format,
		Description: "merkle roots",
	}
	memo, err := create.Pack()
	assert.Nil(c.t, err, "pack oracle create")
	return c.chain.Commit(&utxo.Transaction{
		Outputs: []utxo.Output{
			utxo.PoolOutput(constants.EvalOracles, constants.TxFee, account.GatewaysPublicKey()),
			utxo.DataOutput(memo),
		},
	})
}

// publish a merkle root, spending the publisher's previous baton
func (c *testChain) publish(oracleTxId merkle.Digest, publisher account.PublicKey, height int32, root merkle.Digest) merkle.Digest {
	baton := c.batons[publisher.String()]
	sample := &oracles.MerkleSample{
		Height:     height,
		BlockHash:  merkle.NewDigest([]byte{byte(height), byte(height >> 8)}),
		MerkleRoot: root,
	}
	data := &oracles.Data{
		OracleTxId: oracleTxId,
		BatonTxId:  baton,
		Publisher:  publisher,
		Data:       sample.Pack(),
	}
	memo, err := data.Pack()
	assert.Nil(c.t, err, "pack oracle data")

	tx := &utxo.Transaction{
		Outputs: []utxo.Output{
			utxo.PoolOutput(constants.EvalOracles, constants.TxFee, publisher),
			utxo.DataOutput(memo),
		},
	}
	if !baton.IsZero() {
		tx.Inputs = []utxo.Input{{Previous: utxo.Outpoint{TxId: baton, Index: 0}, Pooled: true}}
	}
	txId := c.chain.Commit(tx)
	c.batons[publisher.String()] = txId
	return txId
}

func (c *testChain) commit(tx *utxo.Transaction, err error) merkle.Digest {
	if !assert.Nil(c.t, err, "build") {
		c.t.FailNow()
	}
	return c.chain.Commit(tx)
}

func mustDigest(s string) merkle.Digest {
	d, err := merkle.DigestFromHex(s)
	if nil != err {
		panic(err)
	}
	return d
}

func depositRoot() merkle.Digest {
	return mustDigest(fixtures.DepositMerkleRoot)
}
