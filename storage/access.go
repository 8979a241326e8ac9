// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// Access - one leveldb database with a single open write batch
type Access interface {
	Begin() error
	Put([]byte, []byte)
	Delete([]byte)
	Commit() error
	Abort()
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
}

type access struct {
	sync.Mutex
	open    bool
	db      *leveldb.DB
	batch   *leveldb.Batch
	pending *pendingWrites
}

func newAccess(db *leveldb.DB) Access {
	return &access{
		db:      db,
		batch:   new(leveldb.Batch),
		pending: newPendingWrites(),
	}
}

// Begin - claim the batch, only one writer at a time
func (a *access) Begin() error {
	a.Lock()
	defer a.Unlock()

	if a.open {
		return fault.TransactionInUse
	}
	a.open = true
	return nil
}

func (a *access) Put(key []byte, value []byte) {
	a.pending.put(key, value)
	a.batch.Put(key, value)
}

func (a *access) Delete(key []byte) {
	a.pending.delete(key)
	a.batch.Delete(key)
}

// Commit - write the batch and release it
func (a *access) Commit() error {
	a.Lock()
	defer a.Unlock()

	err := a.db.Write(a.batch, nil)
	a.release()
	return err
}

// Abort - drop the batch
func (a *access) Abort() {
	a.Lock()
	defer a.Unlock()

	a.release()
}

func (a *access) release() {
	a.batch.Reset()
	a.pending.clear()
	a.open = false
}

// Get - the open batch first, then the database
func (a *access) Get(key []byte) ([]byte, error) {
	if value, deleted, found := a.pending.lookup(key); found {
		if deleted {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return a.db.Get(key, nil)
}

func (a *access) Has(key []byte) (bool, error) {
	if _, deleted, found := a.pending.lookup(key); found {
		return !deleted, nil
	}
	return a.db.Has(key, nil)
}

// Iterator - committed data only
func (a *access) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return a.db.NewIterator(searchRange, nil)
}
