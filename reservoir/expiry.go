// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// expiry background
type sweeper struct {
	log      *logger.L
	interval time.Duration
}

// Run - periodically drop expired entries
func (s *sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	globalData := args.(*globalDataType)

	s.log.Info("starting…")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-ticker.C:
			globalData.Lock()
			before := globalData.entries.ItemCount()
			globalData.entries.DeleteExpired()
			after := globalData.entries.ItemCount()
			globalData.Unlock()

			if before != after {
				s.log.Infof("expired: %d  remaining: %d", before-after, after)
			}
		}
	}
	s.log.Info("stopped")
}

// Sweep - drop expired entries now
func Sweep() {
	globalData.Lock()
	defer globalData.Unlock()
	if globalData.enabled {
		globalData.entries.DeleteExpired()
	}
}
