// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"net"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/counter"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	contract "github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways/mocks"
	"github.com/bitmark-inc/gatewaysd/rpc/server"
)

type status struct{}

func (status) Height() uint64           { return 42 }
func (status) Bindings() int            { return 0 }
func (status) PoolCounters() (int, int) { return 3, 1 }

var nodePk = account.PublicKey(fixtures.PublicKey(1))

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T, verbose bool, handle *bytes.Buffer) (*gomock.Controller, *mocks.MockContract, *mocks.MockPool, *Client) {
	ctl := gomock.NewController(t)
	c := mocks.NewMockContract(ctl)
	p := mocks.NewMockPool(ctl)

	count := counter.Counter(0)
	s := server.Create(logger.New(fixtures.LogCategory), "2.0", &count, &server.Services{
		Contract: c,
		Pool:     p,
		PubKey:   nodePk,
		Status:   status{},
	})

	local, remote := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(remote))

	return ctl, c, p, newClient(local, verbose, handle)
}

func TestGetNodeInfo(t *testing.T) {
	ctl, _, _, client := setup(t, false, nil)
	defer ctl.Finish()
	defer client.Close()

	info, err := client.GetNodeInfo()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, uint64(42), info.Height, "height")
	assert.Equal(t, 3, info.TransactionCounters.Pending, "pending")
	assert.Equal(t, "2.0", info.Version, "version")
}

func TestBuildersUseConfiguredKey(t *testing.T) {
	ctl, c, _, client := setup(t, false, nil)
	defer ctl.Finish()
	defer client.Close()

	tx := fixtures.Spend(merkle.NewDigest([]byte("funding")), 0, nodePk, 5000, nodePk, 1000)
	completeTxId := merkle.NewDigest([]byte("complete"))
	c.EXPECT().MarkDone(nodePk, completeTxId, "KMD").Return(tx, nil).Times(1)

	reply, err := client.MarkDone(&gateways.MarkDoneArguments{CompleteTxId: completeTxId, Coin: "KMD"})
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.Pack().String(), reply.Hex, "hex")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")
}

func TestViewsWithoutPubKey(t *testing.T) {
	ctl, c, _, client := setup(t, false, nil)
	defer ctl.Finish()
	defer client.Close()

	bindTxId := merkle.NewDigest([]byte("bind"))
	callerPk := account.PublicKey(fixtures.PublicKey(2))
	gomock.InOrder(
		c.EXPECT().PendingDeposits(nodePk, bindTxId, "KMD").Return(&contract.PendingDeposits{Coin: "KMD"}, nil).Times(1),
		c.EXPECT().PendingDeposits(callerPk, bindTxId, "KMD").Return(&contract.PendingDeposits{Coin: "BTC"}, nil).Times(1),
	)

	// the client sends "pubkey":"" when no key was given
	reply, err := client.PendingDeposits(&gateways.QueueArguments{BindTxId: bindTxId, Coin: "KMD"})
	assert.Nil(t, err, "node key")
	assert.Equal(t, "KMD", reply.Coin, "node key reply")

	reply, err = client.PendingDeposits(&gateways.QueueArguments{PubKey: callerPk, BindTxId: bindTxId, Coin: "KMD"})
	assert.Nil(t, err, "caller key")
	assert.Equal(t, "BTC", reply.Coin, "caller key reply")
}

func TestViews(t *testing.T) {
	ctl, c, _, client := setup(t, false, nil)
	defer ctl.Finish()
	defer client.Close()

	bindTxId := merkle.NewDigest([]byte("bind"))
	c.EXPECT().List().Return([]merkle.Digest{bindTxId}).Times(1)
	c.EXPECT().Info(bindTxId).Return(&contract.Info{
		Result:  "success",
		Name:    "Gateways",
		M:       1,
		N:       1,
		PubKeys: []account.PublicKey{nodePk},
		Coin:    "KMD",
	}, nil).Times(1)

	list, err := client.List()
	assert.Nil(t, err, "list")
	assert.Equal(t, []merkle.Digest{bindTxId}, list.Bindings, "bindings")

	info, err := client.Info(bindTxId)
	assert.Nil(t, err, "info")
	assert.Equal(t, "KMD", info.Coin, "coin")
	assert.Equal(t, []account.PublicKey{nodePk}, info.PubKeys, "pubkeys")
}

func TestSubmitVerbose(t *testing.T) {
	handle := &bytes.Buffer{}
	ctl, c, p, client := setup(t, true, handle)
	defer ctl.Finish()
	defer client.Close()

	tx := fixtures.Spend(merkle.NewDigest([]byte("funding")), 0, nodePk, 5000, nodePk, 1000)
	c.EXPECT().Governs(gomock.Any()).Return(false).Times(1)
	p.EXPECT().Store(gomock.Any()).Return(tx.TxId(), false, nil).Times(1)

	reply, err := client.Submit(tx.Pack().String())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, tx.TxId(), reply.TxId, "txId")
	assert.False(t, reply.Duplicate, "duplicate")

	assert.Contains(t, handle.String(), "Gateways.Submit request", "request logged")
	assert.Contains(t, handle.String(), "Gateways.Submit reply", "reply logged")
}

func TestRemoteError(t *testing.T) {
	ctl, _, _, client := setup(t, false, nil)
	defer ctl.Finish()
	defer client.Close()

	_, err := client.Validate("zz")
	assert.NotNil(t, err, "bad hex")
}
