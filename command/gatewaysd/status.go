// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/reservoir"
	"github.com/bitmark-inc/gatewaysd/storage"
)

// values reported by Node.Info
type nodeStatus struct {
	contract *gateways.Gateways
}

func (s nodeStatus) Height() uint64 {
	return storage.Height()
}

func (s nodeStatus) Bindings() int {
	return len(s.contract.List())
}

func (s nodeStatus) PoolCounters() (int, int) {
	return reservoir.ReadCounters()
}
