// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/background"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

const (
	defaultExpiry  = 2 * time.Hour
	defaultMaximum = 10000
	sweepInterval  = 5 * time.Minute
)

// a pending transaction
type item struct {
	txId        merkle.Digest
	transaction *utxo.Transaction
	sequence    uint64
}

// globals
type globalDataType struct {
	sync.RWMutex
	log     *logger.L
	enabled bool

	// txId string -> *item, each with its own expiry
	entries  *cache.Cache
	expiry   time.Duration
	maximum  int
	sequence uint64

	spends    map[utxo.Outpoint]merkle.Digest
	addresses map[string]int

	sweeper    sweeper
	background *background.T
}

// gobal storage
var globalData globalDataType

// Initialise - create the pool and start the expiry sweeper
//
// zero arguments select the defaults
func Initialise(expiry time.Duration, maximum int) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.enabled {
		return fault.AlreadyInitialised
	}

	if 0 >= expiry {
		expiry = defaultExpiry
	}
	if 0 >= maximum {
		maximum = defaultMaximum
	}

	globalData.log = logger.New("reservoir")
	globalData.log.Info("starting…")

	// no janitor, the sweeper holds the lock while expiring
	globalData.entries = cache.New(expiry, 0)
	globalData.entries.OnEvicted(evicted)
	globalData.expiry = expiry
	globalData.maximum = maximum
	globalData.sequence = 0
	globalData.spends = make(map[utxo.Outpoint]merkle.Digest)
	globalData.addresses = make(map[string]int)

	globalData.sweeper.log = logger.New("reservoir-expiry")
	globalData.sweeper.interval = sweepInterval

	globalData.enabled = true

	processes := background.Processes{
		&globalData.sweeper,
	}
	globalData.background = background.Start(processes, &globalData)

	return nil
}

// Finalise - stop the sweeper and drop all entries
func Finalise() {
	globalData.Lock()
	if !globalData.enabled {
		globalData.Unlock()
		return
	}
	globalData.log.Info("shutting down…")
	globalData.enabled = false
	bg := globalData.background
	globalData.Unlock()

	// sweeper needs the lock to finish
	bg.Stop()

	globalData.Lock()
	globalData.entries.Flush()
	globalData.spends = nil
	globalData.addresses = nil
	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.Unlock()
}

// ReadCounters - number of pending transactions and spent outpoints
func ReadCounters() (int, int) {
	globalData.RLock()
	defer globalData.RUnlock()
	if !globalData.enabled {
		return 0, 0
	}
	return globalData.entries.ItemCount(), len(globalData.spends)
}

// remove the indexes of an entry leaving the cache
//
// called by the cache with the global lock held
func evicted(key string, value interface{}) {
	entry := value.(*item)
	for _, in := range entry.transaction.Inputs {
		if spender, ok := globalData.spends[in.Previous]; ok && spender == entry.txId {
			delete(globalData.spends, in.Previous)
		}
	}
	for _, out := range entry.transaction.Outputs {
		if out.IsData() || "" == out.Address {
			continue
		}
		globalData.addresses[out.Address] -= 1
		if 0 >= globalData.addresses[out.Address] {
			delete(globalData.addresses, out.Address)
		}
	}
	if nil != globalData.log {
		globalData.log.Debugf("removed: %v", entry.txId)
	}
}
