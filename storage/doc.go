// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk copy of the committed host chain
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains two LevelDB databases split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. height       = big endian uint64 (8 bytes)
// 4. txId         = transaction digest, 32 bytes as stored
// 5. index        = output position, big endian uint32 (4 bytes)
// 6. address      = length byte ++ host address string
// 7. value        = big endian uint64 (8 bytes)
//
// Blocks:
//
//	B ++ height                - committed block
//	                             data: concatenated txIds
//
// Transactions:
//
//	T ++ txId                  - committed transactions
//	                             data: height ++ packed transaction
//
// Addresses:
//
//	H ++ address ++ height ++ txId ++ index
//	                           - every output ever paid to address
//	                             data: value
//	U ++ address ++ txId ++ index
//	                           - outputs of address not yet spent
//	                             data: value ++ height
//	S ++ txId ++ index         - spent outputs
//	                             data: spending txId
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
