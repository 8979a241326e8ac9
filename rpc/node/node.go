// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC status of the running daemon
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/counter"
	"github.com/bitmark-inc/gatewaysd/mode"
	"github.com/bitmark-inc/gatewaysd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Status - sources of the reported values
type Status interface {
	Height() uint64
	Bindings() int
	PoolCounters() (int, int)
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	status  Status
	counter *counter.Counter
}

// New - create the RPC service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, status Status) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		status:  status,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain               string   `json:"chain"`
	Mode                string   `json:"mode"`
	Height              uint64   `json:"height"`
	Bindings            int      `json:"bindings"`
	RPCs                uint64   `json:"rpcs"`
	TransactionCounters Counters `json:"transactionCounters"`
	Version             string   `json:"version"`
	Uptime              string   `json:"uptime"`
}

// Counters - unconfirmed pool counters
type Counters struct {
	Pending int `json:"pending"`
	Spends  int `json:"spends"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Height = node.status.Height()
	reply.Bindings = node.status.Bindings()
	reply.RPCs = node.counter.Uint64()
	reply.TransactionCounters.Pending, reply.TransactionCounters.Spends = node.status.PoolCounters()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
