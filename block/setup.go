// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/background"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/storage"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

const (
	defaultInterval = 10 * time.Second
	minimumInterval = 100 * time.Millisecond
)

// Allocation - a genesis payment
type Allocation struct {
	PubKey string `gluamapper:"pubkey" json:"pubkey"`
	Amount int64  `gluamapper:"amount" json:"amount"`
}

// Configuration - block maker settings
type Configuration struct {
	Interval string       `gluamapper:"interval" json:"interval"`
	Genesis  []Allocation `gluamapper:"genesis" json:"genesis"`
}

type blockData struct {
	sync.Mutex

	log        *logger.L
	background *background.T

	// set once during initialise
	initialised bool
}

var globalData blockData

// Initialise - seed an empty database and start the block maker
//
// storage and reservoir must already be initialised
func Initialise(configuration *Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("block")
	globalData.log = log
	log.Info("starting…")

	interval := defaultInterval
	if "" != configuration.Interval {
		d, err := time.ParseDuration(configuration.Interval)
		if nil != err || d < minimumInterval {
			log.Errorf("invalid interval: %q", configuration.Interval)
			return fault.InvalidInterval
		}
		interval = d
	}

	if 0 == storage.Height() && 0 != len(configuration.Genesis) {
		tx, err := genesisTransaction(configuration.Genesis)
		if nil != err {
			return err
		}
		err = storage.StoreBlock(1, []*utxo.Transaction{tx})
		if nil != err {
			log.Criticalf("genesis error: %s", err)
			return err
		}
		log.Infof("genesis: %v  outputs: %d", tx.TxId(), len(tx.Outputs))
	}

	globalData.background = background.Start(background.Processes{
		&maker{log: log, interval: interval},
	}, nil)

	globalData.initialised = true
	return nil
}

// Finalise - stop the block maker
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.background.Stop()
	globalData.background = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

func genesisTransaction(allocations []Allocation) (*utxo.Transaction, error) {
	tx := &utxo.Transaction{}
	for _, a := range allocations {
		pk, err := account.PublicKeyFromHex(a.PubKey)
		if nil != err {
			return nil, err
		}
		if a.Amount <= 0 {
			return nil, fault.InvalidAmount
		}
		tx.Outputs = append(tx.Outputs, utxo.NormalOutput(a.Amount, pk))
	}
	return tx, nil
}
