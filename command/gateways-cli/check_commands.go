// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"net"
	"strings"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/currency/satoshi"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidAmount      = fault.InvalidError("amount must be a positive decimal")
	ErrInvalidConnect     = fault.InvalidError("connect must be HOST:PORT")
	ErrInvalidHeight      = fault.InvalidError("height must be positive")
	ErrInvalidRequirement = fault.InvalidError("required signatures must be 1 to N")
	ErrRequiredCoin       = fault.InvalidError("coin is required")
	ErrRequiredHex        = fault.InvalidError("hex is required")
	ErrRequiredPublicKey  = fault.InvalidError("public key is required")
	ErrRequiredSigners    = fault.InvalidError("at least one signer is required")
	ErrRequiredTxId       = fault.InvalidError("transaction id is required")
	ErrTooManySigners     = fault.InvalidError("too many signers")
)

func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if _, _, err := net.SplitHostPort(connect); nil != err {
		return "", ErrInvalidConnect
	}
	return connect, nil
}

func checkCoin(coin string) (string, error) {
	if "" == coin {
		return "", ErrRequiredCoin
	}
	return coin, nil
}

func checkTxId(s string) (merkle.Digest, error) {
	if "" == s {
		return merkle.Digest{}, ErrRequiredTxId
	}
	return merkle.DigestFromHex(s)
}

func checkPubKey(s string) (account.PublicKey, error) {
	if "" == s {
		return nil, ErrRequiredPublicKey
	}
	return account.PublicKeyFromHex(s)
}

// blank selects the node's configured key
func checkOptionalPubKey(s string) (account.PublicKey, error) {
	if "" == s {
		return nil, nil
	}
	return account.PublicKeyFromHex(s)
}

func checkSigners(keys []string, m int) ([]account.PublicKey, uint8, error) {
	if 0 == len(keys) {
		return nil, 0, ErrRequiredSigners
	}
	if len(keys) > constants.MaximumSigners {
		return nil, 0, ErrTooManySigners
	}
	if m < 1 || m > len(keys) {
		return nil, 0, ErrInvalidRequirement
	}
	signers := make([]account.PublicKey, 0, len(keys))
	for _, s := range keys {
		pk, err := account.PublicKeyFromHex(s)
		if nil != err {
			return nil, 0, err
		}
		signers = append(signers, pk)
	}
	return signers, uint8(m), nil
}

// decimal coins to base units
func checkAmount(s string) (int64, error) {
	amount, ok := satoshi.Parse(s)
	if !ok || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

func checkHex(s string) (string, error) {
	if "" == s {
		return "", ErrRequiredHex
	}
	if _, err := hex.DecodeString(s); nil != err {
		return "", fault.InvalidHexString
	}
	return s, nil
}
