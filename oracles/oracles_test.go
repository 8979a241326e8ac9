// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracles_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var publisher = account.PublicKey(fixtures.PublicKey(7))

func createOracle(t *testing.T, chain *fixtures.Chain, format string) merkle.Digest {
	create := &oracles.Create{
		Name:        "KMD",
		Format:      format,
		Description: "blockheaders",
	}
	memo, err := create.Pack()
	assert.Nil(t, err, "pack create")
	return chain.Commit(&utxo.Transaction{
		Outputs: []utxo.Output{
			utxo.PoolOutput(constants.EvalOracles, constants.TxFee, account.GatewaysPublicKey()),
			utxo.DataOutput(memo),
		},
	})
}

// publish a sample, spending the previous baton if there is one
func publish(t *testing.T, chain *fixtures.Chain, oracleTxId merkle.Digest, baton merkle.Digest, sample *oracles.MerkleSample) merkle.Digest {
	data := &oracles.Data{
		OracleTxId: oracleTxId,
		BatonTxId:  baton,
		Publisher:  publisher,
		Data:       sample.Pack(),
	}
	memo, err := data.Pack()
	assert.Nil(t, err, "pack data")

	tx := &utxo.Transaction{
		Outputs: []utxo.Output{
			utxo.PoolOutput(constants.EvalOracles, constants.TxFee, publisher),
			utxo.DataOutput(memo),
		},
	}
	if !baton.IsZero() {
		tx.Inputs = []utxo.Input{{Previous: utxo.Outpoint{TxId: baton, Index: 0}, Pooled: true}}
	}
	return chain.Commit(tx)
}

func TestCreateRecord(t *testing.T) {
	create := &oracles.Create{
		Name:        "KMD",
		Format:      oracles.MerkleRootFormat,
		Description: "merkle roots",
	}
	memo, err := create.Pack()
	assert.Nil(t, err, "pack")
	assert.Equal(t, []byte{0xec, 'C', 3, 'K', 'M', 'D', 3, 'I', 'h', 'h'}, memo[:10], "prefix")

	unpacked, err := oracles.UnpackCreate(memo)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, create, unpacked, "round trip")

	_, err = oracles.UnpackData(memo)
	assert.Equal(t, fault.NotOracleRecord, err, "not data")

	_, err = oracles.UnpackCreate(append(memo, 0))
	assert.Equal(t, fault.TrailingData, err, "trailing")
}

func TestDataRecord(t *testing.T) {
	data := &oracles.Data{
		OracleTxId: merkle.NewDigest([]byte("oracle")),
		BatonTxId:  merkle.NewDigest([]byte("baton")),
		Publisher:  publisher,
		Data:       []byte{1, 2, 3, 4},
	}
	memo, err := data.Pack()
	assert.Nil(t, err, "pack")

	unpacked, err := oracles.UnpackData(memo)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, data, unpacked, "round trip")

	_, err = oracles.UnpackData(memo[:40])
	assert.Equal(t, fault.TruncatedRecord, err, "truncated")

	data.Publisher = make(account.PublicKey, 66)
	_, err = data.Pack()
	assert.Equal(t, fault.InvalidPublicKey, err, "oversized key")
}

func TestMerkleSample(t *testing.T) {
	sample := &oracles.MerkleSample{
		Height:     814000,
		BlockHash:  merkle.NewDigest([]byte("block")),
		MerkleRoot: merkle.NewDigest([]byte("root")),
	}
	packed := sample.Pack()
	assert.Equal(t, 68, len(packed), "length")

	parsed, err := oracles.ParseMerkleSample(packed)
	assert.Nil(t, err, "parse")
	assert.Equal(t, sample, parsed, "round trip")

	parsed, err = oracles.ParseMerkleSample(append(packed, 1, 2, 3))
	assert.Nil(t, err, "extra bytes")
	assert.Equal(t, sample, parsed, "extra bytes ignored")

	_, err = oracles.ParseMerkleSample(packed[:40])
	assert.Equal(t, fault.InvalidMerkleSample, err, "short")

	height, ok := oracles.SampleHeight(packed[:4])
	assert.True(t, ok, "height only")
	assert.Equal(t, int32(814000), height, "height")

	_, ok = oracles.SampleHeight(packed[:3])
	assert.False(t, ok, "no height")
}

func TestCreateLookup(t *testing.T) {
	chain := fixtures.NewChain()
	reader := oracles.NewChainReader(chain)

	oracleTxId := createOracle(t, chain, oracles.MerkleRootFormat)
	create, err := reader.Create(oracleTxId)
	assert.Nil(t, err, "create")
	assert.Equal(t, "KMD", create.Name, "name")
	assert.Equal(t, oracles.MerkleRootFormat, create.Format, "format")

	_, err = reader.Create(merkle.NewDigest([]byte("missing")))
	assert.Equal(t, fault.OracleNotFound, err, "missing")

	dataTxId := publish(t, chain, oracleTxId, merkle.Digest{}, &oracles.MerkleSample{Height: 1})
	_, err = reader.Create(dataTxId)
	assert.Equal(t, fault.NotOracleRecord, err, "data is not a create")
}

func TestBaton(t *testing.T) {
	chain := fixtures.NewChain()
	reader := oracles.NewChainReader(chain)

	oracleTxId := createOracle(t, chain, oracles.MerkleRootFormat)
	otherOracle := createOracle(t, chain, "s")

	assert.True(t, reader.Baton(oracleTxId, publisher).IsZero(), "never published")

	first := publish(t, chain, oracleTxId, merkle.Digest{}, &oracles.MerkleSample{Height: 100})
	assert.Equal(t, first, reader.Baton(oracleTxId, publisher), "first")

	second := publish(t, chain, oracleTxId, first, &oracles.MerkleSample{Height: 101})
	assert.Equal(t, second, reader.Baton(oracleTxId, publisher), "second")

	// a publication to another oracle does not move the baton
	publish(t, chain, otherOracle, merkle.Digest{}, &oracles.MerkleSample{Height: 5})
	assert.Equal(t, second, reader.Baton(oracleTxId, publisher), "other oracle")

	other := account.PublicKey(fixtures.PublicKey(8))
	assert.True(t, reader.Baton(oracleTxId, other).IsZero(), "other publisher")
	assert.Equal(t, account.PoolAddress(constants.EvalOracles, publisher), oracles.BatonAddress(publisher), "address")
}
