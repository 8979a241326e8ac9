// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - local host chain block production
//
// on the local and testing chains the node is its own host chain:
// pending transactions are moved from the reservoir into storage at
// a fixed interval so that finality depth advances.  An empty
// database is first seeded with a genesis block paying the
// configured keys.
package block
