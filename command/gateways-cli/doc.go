// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// gateways-cli - command line client for gatewaysd
//
// each stage command asks the node to build an unsigned transaction
// and prints its hex and txid; after signing the result is sent back
// with submit
//
//	gateways-cli -c 127.0.0.1:2150 info
//	gateways-cli -c 127.0.0.1:2150 -k PUBKEY withdraw -b BINDTXID -C KMD -w PUBKEY -a 0.5
//	gateways-cli decode -x HEX
package main
