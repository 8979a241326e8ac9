// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttling shared by the RPC services
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// Limit - wait for one token
func Limit(limiter *rate.Limiter) error {
	return wait(limiter.Reserve())
}

// LimitN - wait for tokens in proportion to the work a call does
//
// cost is clamped to the range 1..maximumCost
func LimitN(limiter *rate.Limiter, cost int, maximumCost int) error {
	if cost < 1 {
		cost = 1
	}
	if cost > maximumCost {
		cost = maximumCost
	}
	return wait(limiter.ReserveN(time.Now(), cost))
}

func wait(r *rate.Reservation) error {
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
