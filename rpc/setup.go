// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - start and stop the JSON-RPC endpoints
package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/counter"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/rpc/listeners"
	"github.com/bitmark-inc/gatewaysd/rpc/server"
)

// globals
type rpcData struct {
	sync.RWMutex

	log      *logger.L
	listener listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connection count shared by all listen addresses
var connectionCountRPC counter.Counter

// Initialise - create the server and start listening
func Initialise(configuration *listeners.RPCConfiguration, version string, services *server.Services) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	listener, err := listeners.NewRPC(
		configuration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC, services),
	)
	if nil != err {
		return err
	}
	err = listener.Serve()
	if nil != err {
		listener.Stop()
		return err
	}
	globalData.listener = listener

	globalData.initialised = true

	return nil
}

// Addresses - bound listen addresses
func Addresses() []string {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil
	}
	return listeners.Addresses(globalData.listener)
}

// Finalise - stop accepting connections
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.listener.Stop()
	globalData.listener = nil

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
