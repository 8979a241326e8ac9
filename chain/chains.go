// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the host chains a node can serve
package chain

// names of all chains
const (
	Live    = "live"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Live, Testing, Local:
		return true
	default:
		return false
	}
}

// MinimumConfirmations - finality depth used when the configuration
// does not set one
func MinimumConfirmations(name string) uint64 {
	switch name {
	case Live:
		return 6
	default:
		return 1
	}
}
