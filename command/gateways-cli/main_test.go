// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"net"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/counter"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways/mocks"
	"github.com/bitmark-inc/gatewaysd/rpc/server"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

type status struct{}

func (status) Height() uint64           { return 7 }
func (status) Bindings() int            { return 1 }
func (status) PoolCounters() (int, int) { return 0, 0 }

var (
	callerPk = account.PublicKey(fixtures.PublicKey(2))
	signerPk = account.PublicKey(fixtures.PublicKey(3))
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func run(args ...string) (string, string, error) {
	w := &bytes.Buffer{}
	e := &bytes.Buffer{}
	app := newApp(w, e)
	err := app.Run(append([]string{"gateways-cli"}, args...))
	return w.String(), e.String(), err
}

// a node answering on a loopback port
func serve(t *testing.T, contract *mocks.MockContract, pool *mocks.MockPool) (string, func()) {
	count := counter.Counter(0)
	s := server.Create(logger.New(fixtures.LogCategory), "3.0", &count, &server.Services{
		Contract: contract,
		Pool:     pool,
		Status:   status{},
	})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err, "listen")

	go func() {
		for {
			conn, err := l.Accept()
			if nil != err {
				return
			}
			go s.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()
	return l.Addr().String(), func() { l.Close() }
}

func withMemo(record transactionrecord.Record) *utxo.Transaction {
	tx := fixtures.Spend(merkle.NewDigest([]byte("funding")), 0, callerPk, 5000, callerPk, 1000)
	packed, err := record.Pack()
	if nil != err {
		panic(err)
	}
	tx.Outputs = append(tx.Outputs, utxo.DataOutput(packed))
	return tx
}

func TestCheckSigners(t *testing.T) {
	tests := []struct {
		keys     []string
		m        int
		required uint8
		err      error
	}{
		{nil, 1, 0, ErrRequiredSigners},
		{[]string{callerPk.String()}, 0, 0, ErrInvalidRequirement},
		{[]string{callerPk.String()}, 2, 0, ErrInvalidRequirement},
		{[]string{callerPk.String(), signerPk.String()}, 2, 2, nil},
		{[]string{callerPk.String(), "02"}, 1, 0, fault.InvalidPublicKey},
	}

	for i, test := range tests {
		signers, required, err := checkSigners(test.keys, test.m)
		assert.Equal(t, test.err, err, "%d: error", i)
		assert.Equal(t, test.required, required, "%d: required", i)
		if nil == test.err {
			assert.Equal(t, len(test.keys), len(signers), "%d: signers", i)
		}
	}
}

func TestChecks(t *testing.T) {
	_, err := checkConnect("localhost")
	assert.Equal(t, ErrInvalidConnect, err, "no port")

	connect, err := checkConnect(" [::1]:2150 ")
	assert.Nil(t, err, "ipv6")
	assert.Equal(t, "[::1]:2150", connect, "trimmed")

	_, err = checkAmount("0")
	assert.Equal(t, ErrInvalidAmount, err, "zero amount")
	_, err = checkAmount("1x")
	assert.Equal(t, ErrInvalidAmount, err, "not a number")
	amount, err := checkAmount("0.00001")
	assert.Nil(t, err, "decimal amount")
	assert.Equal(t, int64(1000), amount, "base units")

	_, err = checkHex("")
	assert.Equal(t, ErrRequiredHex, err, "blank hex")
	_, err = checkHex("0g")
	assert.Equal(t, fault.InvalidHexString, err, "bad hex")

	_, err = checkTxId("")
	assert.Equal(t, ErrRequiredTxId, err, "blank txid")

	pk, err := checkOptionalPubKey("")
	assert.Nil(t, err, "blank key")
	assert.Nil(t, pk, "node key")
}

func TestDecodeMemo(t *testing.T) {
	done := &transactionrecord.MarkDone{
		WithdrawTxId: merkle.NewDigest([]byte("withdraw")),
		Coin:         "KMD",
		CompleteTxId: merkle.NewDigest([]byte("complete")),
	}
	tx := withMemo(done)

	decoded, err := decodeTransaction(tx.Pack().String())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.TxId(), decoded.TxId, "txId")
	assert.Equal(t, "markdone", decoded.Op, "op")
	assert.Equal(t, done, decoded.Record, "record")
	assert.Equal(t, "", decoded.RecordError, "record error")
}

func TestDecodeWithoutMemo(t *testing.T) {
	tx := fixtures.Spend(merkle.NewDigest([]byte("funding")), 0, callerPk, 5000, callerPk, 1000)

	stdout, _, err := run("decode", "-x", tx.Pack().String())
	assert.Nil(t, err, "wrong error")

	var reply map[string]interface{}
	err = json.Unmarshal([]byte(stdout), &reply)
	assert.Nil(t, err, "json output")
	assert.Equal(t, tx.TxId().String(), reply["txId"], "txId")
	_, hasOp := reply["op"]
	assert.False(t, hasOp, "no op")
}

func TestRejectsBadGlobals(t *testing.T) {
	_, _, err := run("-c", "nowhere", "list")
	assert.Equal(t, ErrInvalidConnect, err, "connect")

	_, _, err = run("-k", "0201", "list")
	assert.Equal(t, fault.InvalidPublicKey, err, "pubkey")
}

func TestCommandsOverRPC(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	contract := mocks.NewMockContract(ctl)
	pool := mocks.NewMockPool(ctl)
	address, stop := serve(t, contract, pool)
	defer stop()

	bindTxId := merkle.NewDigest([]byte("bind"))
	contract.EXPECT().List().Return([]merkle.Digest{bindTxId}).Times(1)

	stdout, _, err := run("-c", address, "list")
	assert.Nil(t, err, "list")
	var list struct {
		Bindings []merkle.Digest `json:"bindings"`
	}
	err = json.Unmarshal([]byte(stdout), &list)
	assert.Nil(t, err, "list json")
	assert.Equal(t, []merkle.Digest{bindTxId}, list.Bindings, "bindings")

	tx := fixtures.Spend(merkle.NewDigest([]byte("funding")), 0, callerPk, 5000, callerPk, 1000)
	contract.EXPECT().Withdraw(callerPk, bindTxId, "KMD", signerPk, int64(1000)).Return(tx, nil).Times(1)

	stdout, _, err = run("-c", address, "-k", callerPk.String(),
		"withdraw", "-b", bindTxId.String(), "-C", "KMD", "-w", signerPk.String(), "-a", "0.00001")
	assert.Nil(t, err, "withdraw")
	var reply struct {
		Hex  string        `json:"hex"`
		TxId merkle.Digest `json:"txId"`
	}
	err = json.Unmarshal([]byte(stdout), &reply)
	assert.Nil(t, err, "withdraw json")
	assert.Equal(t, tx.Pack().String(), reply.Hex, "hex")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")

	stdout, _, err = run("-c", address, "info")
	assert.Nil(t, err, "info")
	assert.Contains(t, stdout, `"height": 7`, "height")
}

func TestMissingArguments(t *testing.T) {
	_, _, err := run("withdraw", "-C", "KMD", "-a", "10")
	assert.Equal(t, ErrRequiredTxId, err, "no bind")

	_, _, err = run("markdone", "-l", merkle.NewDigest([]byte("x")).String())
	assert.Equal(t, ErrRequiredCoin, err, "no coin")

	_, _, err = run("deposit", "-b", merkle.NewDigest([]byte("x")).String(), "-C", "KMD", "-a", "5")
	assert.Equal(t, ErrRequiredTxId, err, "no cointxid")
}
