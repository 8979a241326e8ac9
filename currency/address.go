// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcutil"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
)

// DepositAddress - external address receiving deposits for a binding
//
// a single signer gets a pay-to-public-key-hash address, otherwise
// the pay-to-script-hash of an M-of-N multisig script
func DepositAddress(p Params, m int, pubkeys []account.PublicKey) (string, error) {
	if !p.IsSupported() {
		return "", fault.UnsupportedDepositPrefix
	}
	if 0 == len(pubkeys) || m < 1 || m > len(pubkeys) {
		return "", fault.InvalidMofN
	}
	params := Komodo.ChainParams()

	if 1 == len(pubkeys) {
		return NormalAddress(Komodo, pubkeys[0])
	}

	keys := make([]*btcutil.AddressPubKey, len(pubkeys))
	for i, pk := range pubkeys {
		a, err := btcutil.NewAddressPubKey(pk, params)
		if nil != err {
			return "", fault.InvalidPublicKey
		}
		keys[i] = a
	}
	script, err := txscript.MultiSigScript(keys, m)
	if nil != err {
		return "", err
	}
	a, err := btcutil.NewAddressScriptHash(script, params)
	if nil != err {
		return "", err
	}
	return a.EncodeAddress(), nil
}

// NormalAddress - external pay-to-public-key-hash address of a key
func NormalAddress(p Params, pk account.PublicKey) (string, error) {
	a, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pk), p.ChainParams())
	if nil != err {
		return "", fault.InvalidPublicKey
	}
	return a.EncodeAddress(), nil
}

// ValidateAddress - check that an address decodes for these parameters
func ValidateAddress(p Params, address string) error {
	params := p.ChainParams()
	a, err := btcutil.DecodeAddress(address, params)
	if nil != err {
		return fault.InvalidAddress
	}
	if !a.IsForNet(params) {
		return fault.InvalidAddress
	}
	return nil
}
