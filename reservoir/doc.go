// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - the pool of unconfirmed host transactions
//
// transactions enter through Store, leave when a block confirms them
// or one of their inputs, or when they expire
//
// indexes kept beside the entries:
//
//	spends    outpoint -> txId of the pending spender
//	addresses address  -> number of pending outputs paying it
package reservoir
