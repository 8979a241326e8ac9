// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - assemble the RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/counter"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways"
	"github.com/bitmark-inc/gatewaysd/rpc/node"
)

// Services - collaborators of the registered services
type Services struct {
	Contract gateways.Contract
	Pool     gateways.Pool
	PubKey   account.PublicKey
	Status   node.Status
}

// Create - a server with Gateways and Node registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services *Services) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	err := server.Register(gateways.New(log, services.Contract, services.Pool, services.PubKey))
	logger.PanicIfError("register Gateways", err)

	err = server.Register(node.New(log, start, version, rpcCount, services.Status))
	logger.PanicIfError("register Node", err)

	return server
}
