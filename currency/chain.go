// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/gatewaysd/constants"
)

// Params - address encoding of an external chain as recorded in a binding
type Params struct {
	TAddr      byte `json:"taddr"`
	PubKeyHash byte `json:"prefix"`
	ScriptHash byte `json:"prefix2"`
}

// Komodo - the only external encoding for which deposit addresses
// can be generated
var Komodo = Params{
	TAddr:      constants.KomodoTAddr,
	PubKeyHash: constants.KomodoPubKeyPrefix,
	ScriptHash: constants.KomodoScriptPrefix,
}

var komodoMainNetParams = newParams("komodo", wire.BitcoinNet(0x8de4eef9), Komodo)

// IsSupported - true if deposit addresses can be derived for these
// parameters, which are then always encoded with Komodo versions
func (p Params) IsSupported() bool {
	return constants.KomodoPubKeyPrefix == p.PubKeyHash
}

// ChainParams - btcd chain parameters carrying these address versions
func (p Params) ChainParams() *chaincfg.Params {
	if p == Komodo {
		return komodoMainNetParams
	}
	name := fmt.Sprintf("external-%d-%d-%d", p.TAddr, p.PubKeyHash, p.ScriptHash)
	return newParams(name, wire.BitcoinNet(0), p)
}

// String - for debugging
func (p Params) String() string {
	return fmt.Sprintf("taddr:%d prefix:%d prefix2:%d", p.TAddr, p.PubKeyHash, p.ScriptHash)
}

// only address encoding fields are meaningful, the remainder are
// inherited from bitcoin mainnet
func newParams(name string, net wire.BitcoinNet, p Params) *chaincfg.Params {
	params := chaincfg.MainNetParams
	params.Name = name
	params.Net = net
	params.DNSSeeds = nil
	params.Checkpoints = nil
	params.PubKeyHashAddrID = p.PubKeyHash
	params.ScriptHashAddrID = p.ScriptHash
	params.PrivateKeyID = 0xbc
	params.Bech32HRPSegwit = ""
	return &params
}
