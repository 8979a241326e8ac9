// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// Transaction - an atomic batch of writes across all pools
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	GetNB(*PoolHandle, []byte) (uint64, []byte)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

// TransactionData - a Transaction over the accesses of every database
type TransactionData struct {
	sync.Mutex
	inUse  bool
	access []Access
}

func newTransaction(access []Access) Transaction {
	return &TransactionData{
		inUse:  false,
		access: access,
	}
}

func (t *TransactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionInUse
	}
	for i, a := range t.access {
		if err := a.Begin(); nil != err {
			for _, started := range t.access[:i] {
				started.Abort()
			}
			return err
		}
	}
	t.inUse = true
	return nil
}

func (t *TransactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.put(key, value)
}

func (t *TransactionData) PutN(handle *PoolHandle, key []byte, value uint64) {
	handle.putN(key, value)
}

func (t *TransactionData) Delete(handle *PoolHandle, key []byte) {
	handle.remove(key)
}

func (t *TransactionData) Get(handle *PoolHandle, key []byte) []byte {
	return handle.Get(key)
}

func (t *TransactionData) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	return handle.GetN(key)
}

func (t *TransactionData) GetNB(handle *PoolHandle, key []byte) (uint64, []byte) {
	return handle.GetNB(key)
}

func (t *TransactionData) Has(handle *PoolHandle, key []byte) bool {
	return handle.Has(key)
}

// Commit - write every database batch
//
// the batches are independent so the first failure is returned after
// all have been attempted
func (t *TransactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	var result error
	for _, a := range t.access {
		if err := a.Commit(); nil != err && nil == result {
			result = err
		}
	}
	t.inUse = false
	return result
}

func (t *TransactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	for _, a := range t.access {
		a.Abort()
	}
	t.inUse = false
}
