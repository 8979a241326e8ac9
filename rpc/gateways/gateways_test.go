// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways_test

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	contract "github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways/mocks"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

var (
	nodePk   = account.PublicKey(fixtures.PublicKey(1))
	callerPk = account.PublicKey(fixtures.PublicKey(2))
	bindTxId = merkle.NewDigest([]byte("bind"))

	invalidVin = fault.InvalidError("invalid CC vin")
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func sample() *utxo.Transaction {
	return fixtures.Spend(merkle.NewDigest([]byte("funding")), 0, callerPk, 5000, nodePk, 1000)
}

func setup(t *testing.T, pk account.PublicKey) (*gomock.Controller, *mocks.MockContract, *mocks.MockPool, *gateways.Gateways) {
	ctl := gomock.NewController(t)
	c := mocks.NewMockContract(ctl)
	p := mocks.NewMockPool(ctl)
	g := gateways.New(logger.New(fixtures.LogCategory), c, p, pk)
	return ctl, c, p, g
}

func TestCallerKey(t *testing.T) {
	ctl, c, _, g := setup(t, nil)
	defer ctl.Finish()

	var reply gateways.TransactionReply

	// no key configured and none given
	err := g.MarkDone(&gateways.MarkDoneArguments{Coin: "KMD"}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "missing key")

	err = g.MarkDone(&gateways.MarkDoneArguments{PubKey: account.PublicKey{0x02, 0x01}, Coin: "KMD"}, &reply)
	assert.Equal(t, fault.InvalidPublicKey, err, "invalid key")

	tx := sample()
	completeTxId := merkle.NewDigest([]byte("complete"))
	c.EXPECT().MarkDone(callerPk, completeTxId, "KMD").Return(tx, nil).Times(1)

	err = g.MarkDone(&gateways.MarkDoneArguments{PubKey: callerPk, CompleteTxId: completeTxId, Coin: "KMD"}, &reply)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.Pack().String(), reply.Hex, "hex")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")
}

func TestBind(t *testing.T) {
	ctl, c, _, g := setup(t, nodePk)
	defer ctl.Finish()

	tokenId := merkle.NewDigest([]byte("token"))
	oracleTxId := merkle.NewDigest([]byte("oracle"))
	tx := sample()

	c.EXPECT().Bind(nodePk, &contract.BindArguments{
		Coin:        "KMD",
		TokenId:     tokenId,
		TotalSupply: 100000000,
		OracleTxId:  oracleTxId,
		M:           1,
		N:           1,
		PubKeys:     []account.PublicKey{nodePk},
	}).Return(tx, nil).Times(1)

	var reply gateways.TransactionReply
	err := g.Bind(&gateways.BindArguments{
		Coin:        "KMD",
		TokenId:     tokenId,
		TotalSupply: 100000000,
		OracleTxId:  oracleTxId,
		M:           1,
		N:           1,
		PubKeys:     []account.PublicKey{nodePk},
	}, &reply)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")

	err = g.Bind(&gateways.BindArguments{}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "missing coin")
}

func TestBuilderErrorPassesThrough(t *testing.T) {
	ctl, c, _, g := setup(t, nodePk)
	defer ctl.Finish()

	c.EXPECT().Withdraw(nodePk, bindTxId, "KMD", callerPk, int64(300)).Return(nil, fault.InsufficientTokens).Times(1)

	var reply gateways.TransactionReply
	err := g.Withdraw(&gateways.WithdrawArguments{
		BindTxId:    bindTxId,
		Coin:        "KMD",
		WithdrawPub: callerPk,
		Amount:      300,
	}, &reply)
	assert.Equal(t, fault.InsufficientTokens, err, "wrong error")
	assert.Equal(t, "", reply.Hex, "reply filled on error")

	err = g.Withdraw(&gateways.WithdrawArguments{BindTxId: bindTxId, Coin: "KMD"}, &reply)
	assert.Equal(t, fault.InvalidAmount, err, "zero amount")
}

func TestDeposit(t *testing.T) {
	ctl, c, _, g := setup(t, nodePk)
	defer ctl.Finish()

	var reply gateways.TransactionReply

	arguments := gateways.DepositArguments{
		BindTxId:   bindTxId,
		Height:     1000,
		Coin:       "KMD",
		CoinTxId:   merkle.NewDigest([]byte("coin")),
		DepositHex: "0100",
		Proof:      "zz",
		DestPub:    callerPk,
		Amount:     5000,
	}
	err := g.Deposit(&arguments, &reply)
	assert.Equal(t, fault.InvalidHexString, err, "bad proof")

	arguments.Proof = hex.EncodeToString([]byte{1, 2, 3})
	tx := sample()
	c.EXPECT().Deposit(nodePk, gomock.Any()).DoAndReturn(
		func(pk account.PublicKey, a *contract.DepositArguments) (*utxo.Transaction, error) {
			assert.Equal(t, []byte{1, 2, 3}, a.Proof, "proof")
			assert.Equal(t, int32(1000), a.Height, "height")
			assert.Equal(t, callerPk, a.DestPub, "destpub")
			return tx, nil
		}).Times(1)

	err = g.Deposit(&arguments, &reply)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")
}

func TestViews(t *testing.T) {
	ctl, c, _, g := setup(t, nodePk)
	defer ctl.Finish()

	queue := gateways.QueueArguments{BindTxId: bindTxId, Coin: "KMD"}

	c.EXPECT().PendingWithdraws(nodePk, bindTxId, "KMD").Return(&contract.PendingWithdraws{Coin: "KMD", QueueFlag: 1}, nil).Times(1)
	var pending contract.PendingWithdraws
	err := g.Pending(&queue, &pending)
	assert.Nil(t, err, "pending")
	assert.Equal(t, 1, pending.QueueFlag, "queue flag")

	c.EXPECT().ProcessedWithdraws(nodePk, bindTxId, "KMD").Return(nil, fault.OracleNotFound).Times(1)
	var processed contract.ProcessedWithdraws
	err = g.Processed(&queue, &processed)
	assert.Equal(t, fault.OracleNotFound, err, "processed")

	c.EXPECT().PendingDeposits(nodePk, bindTxId, "KMD").Return(&contract.PendingDeposits{Coin: "KMD"}, nil).Times(1)
	var deposits contract.PendingDeposits
	err = g.PendingDeposits(&queue, &deposits)
	assert.Nil(t, err, "deposits")
	assert.Equal(t, "KMD", deposits.Coin, "coin")

	c.EXPECT().Info(bindTxId).Return(&contract.Info{Result: "success", Coin: "KMD"}, nil).Times(1)
	var info contract.Info
	err = g.Info(&gateways.InfoArguments{BindTxId: bindTxId}, &info)
	assert.Nil(t, err, "info")
	assert.Equal(t, "success", info.Result, "result")

	c.EXPECT().List().Return([]merkle.Digest{bindTxId}).Times(1)
	var list gateways.ListReply
	err = g.List(&gateways.ListArguments{}, &list)
	assert.Nil(t, err, "list")
	assert.Equal(t, []merkle.Digest{bindTxId}, list.Bindings, "bindings")
}

func TestValidate(t *testing.T) {
	ctl, c, _, g := setup(t, nodePk)
	defer ctl.Finish()

	tx := sample()
	arguments := gateways.HexArguments{Hex: tx.Pack().String()}

	gomock.InOrder(
		c.EXPECT().Governs(gomock.Any()).Return(true),
		c.EXPECT().Validate(gomock.Any()).Return(invalidVin),
		c.EXPECT().Governs(gomock.Any()).Return(false),
		c.EXPECT().Validate(gomock.Any()).Return(nil),
	)

	var reply gateways.ValidateReply
	err := g.Validate(&arguments, &reply)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")
	assert.True(t, reply.Governed, "governed")
	assert.False(t, reply.Valid, "valid")
	assert.Equal(t, invalidVin.Error(), reply.Reason, "reason")

	reply = gateways.ValidateReply{}
	err = g.Validate(&arguments, &reply)
	assert.Nil(t, err, "wrong error")
	assert.False(t, reply.Governed, "governed")
	assert.True(t, reply.Valid, "valid")
	assert.Equal(t, "", reply.Reason, "reason")

	err = g.Validate(&gateways.HexArguments{Hex: "xyz"}, &reply)
	assert.Equal(t, fault.InvalidHexString, err, "bad hex")
}

func TestSubmit(t *testing.T) {
	ctl, c, p, g := setup(t, nodePk)
	defer ctl.Finish()

	tx := sample()
	arguments := gateways.HexArguments{Hex: tx.Pack().String()}

	// rejected by the validator, never stored
	c.EXPECT().Governs(gomock.Any()).Return(true).Times(1)
	c.EXPECT().Validate(gomock.Any()).Return(invalidVin).Times(1)

	var reply gateways.SubmitReply
	err := g.Submit(&arguments, &reply)
	assert.Equal(t, invalidVin, err, "rejected")

	// not governed, straight to the pool
	c.EXPECT().Governs(gomock.Any()).Return(false).Times(2)
	gomock.InOrder(
		p.EXPECT().Store(gomock.Any()).Return(tx.TxId(), false, nil),
		p.EXPECT().Store(gomock.Any()).Return(tx.TxId(), true, nil),
	)

	err = g.Submit(&arguments, &reply)
	assert.Nil(t, err, "first submit")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")
	assert.False(t, reply.Duplicate, "duplicate")

	err = g.Submit(&arguments, &reply)
	assert.Nil(t, err, "second submit")
	assert.True(t, reply.Duplicate, "duplicate")
}
