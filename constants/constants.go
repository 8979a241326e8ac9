// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// consensus-condition evaluation codes
const (
	EvalOracles  byte = 0xec
	EvalGateways byte = 0xf1
	EvalTokens   byte = 0xf2
)

// fixed amounts, in base units
const (
	CoinUnit    int64 = 100000000
	TxFee       int64 = 10000
	MarkerValue int64 = 10000
)

// the protocol-wide unspendable key of the gateways contract
const GatewaysUnspendableKey = "03ea9c062b9652d8eff34879b504eda0717895d27597aaeb60347d65eed96ccb40"

// limits
const (
	MaximumSigners   = 15
	MaximumBatonHops = 1000
	MaximumInputs    = 60
)

// external address encoding of the only supported deposit chain
const (
	KomodoTAddr        byte = 0
	KomodoPubKeyPrefix byte = 60
	KomodoScriptPrefix byte = 85
)

// the time for an unconfirmed transaction to expire
const (
	ReservoirTimeout = 24 * time.Hour
	ExpiryInterval   = time.Minute
)

// a transaction with fewer confirmations is not final
const MinimumConfirmations = 1
