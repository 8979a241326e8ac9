// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/gateways/mocks"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
)

func TestVerify(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	oracleTxId := merkle.NewDigest([]byte("oracle"))
	missingOracle := merkle.NewDigest([]byte("missing"))

	reader := mocks.NewMockReader(ctl)
	reader.EXPECT().Create(oracleTxId).Return(&oracles.Create{Name: coin, Format: oracles.MerkleRootFormat}, nil).AnyTimes()
	reader.EXPECT().Create(missingOracle).Return(nil, fault.OracleNotFound).AnyTimes()

	g := gateways.New(logger.New(fixtures.LogCategory), gateways.Handles{Oracles: reader}, 0, 0)

	proof := fixtures.MustHex(fixtures.DepositProofHex)
	coinTxId := mustDigest(fixtures.DepositTxId)

	tests := []struct {
		name       string
		address    string
		oracle     merkle.Digest
		claimVout  int32
		coin       string
		coinTxId   merkle.Digest
		depositHex string
		proof      []byte
		root       merkle.Digest
		destPub    account.PublicKey
		expected   int64
	}{
		{"valid", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, coin, coinTxId, fixtures.DepositRawHex, proof, depositRoot(), claimant, fixtures.DepositAmount},
		{"missing oracle", fixtures.DepositAddress, missingOracle, fixtures.ClaimVout, coin, coinTxId, fixtures.DepositRawHex, proof, depositRoot(), claimant, 0},
		{"oracle name", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, "BTC", coinTxId, fixtures.DepositRawHex, proof, depositRoot(), claimant, 0},
		{"corrupt proof", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, coin, coinTxId, fixtures.DepositRawHex, proof[:100], depositRoot(), claimant, 0},
		{"wrong root", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, coin, coinTxId, fixtures.DepositRawHex, proof, merkle.NewDigest([]byte("root")), claimant, 0},
		{"not in proof", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, coin, merkle.NewDigest([]byte("tx")), fixtures.DepositRawHex, proof, depositRoot(), claimant, 0},
		{"bad hex", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, coin, coinTxId, "00zz", proof, depositRoot(), claimant, 0},
		{"claim vout range", fixtures.DepositAddress, oracleTxId, 9, coin, coinTxId, fixtures.DepositRawHex, proof, depositRoot(), claimant, 0},
		{"claim address", fixtures.DepositAddress, oracleTxId, fixtures.ClaimVout, coin, coinTxId, fixtures.DepositRawHex, proof, depositRoot(), signer, 0},
		{"deposit address", fixtures.ClaimAddress + "x", oracleTxId, fixtures.ClaimVout, coin, coinTxId, fixtures.DepositRawHex, proof, depositRoot(), claimant, 0},
	}

	for _, item := range tests {
		value := g.Verify(item.address, item.oracle, item.claimVout, item.coin, item.coinTxId, item.depositHex, item.proof, item.root, item.destPub)
		assert.Equal(t, item.expected, value, item.name)
	}
}
