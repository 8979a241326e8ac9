// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/chain"
	"github.com/bitmark-inc/gatewaysd/counter"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/mode"
	"github.com/bitmark-inc/gatewaysd/rpc/node"
)

type status struct{}

func (status) Height() uint64           { return 42 }
func (status) Bindings() int            { return 3 }
func (status) PoolCounters() (int, int) { return 7, 9 }

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	_ = mode.Initialise(chain.Local)
	rc := m.Run()
	_ = mode.Finalise()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestNodeInfo(t *testing.T) {
	ctr := counter.Counter(2)
	n := node.New(logger.New(fixtures.LogCategory), time.Now().Add(-time.Minute), "0.1", &ctr, status{})

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong error")

	assert.Equal(t, chain.Local, reply.Chain, "chain")
	assert.Equal(t, "Starting", reply.Mode, "mode")
	assert.Equal(t, uint64(42), reply.Height, "height")
	assert.Equal(t, 3, reply.Bindings, "bindings")
	assert.Equal(t, uint64(2), reply.RPCs, "rpcs")
	assert.Equal(t, 7, reply.TransactionCounters.Pending, "pending")
	assert.Equal(t, 9, reply.TransactionCounters.Spends, "spends")
	assert.Equal(t, "0.1", reply.Version, "version")
	assert.NotEqual(t, "", reply.Uptime, "uptime")
}
