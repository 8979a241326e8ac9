// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/storage"
)

func TestInitialiseTwice(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")
}

func TestReopenReadOnly(t *testing.T) {
	setup(t)
	storage.Finalise()
	defer removeFiles()

	err := storage.Initialise(databaseFileName, storage.ReadOnly)
	assert.Nil(t, err, "read only reopen")
	storage.Finalise()
}

func TestReadOnlyMissing(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadOnly)
	assert.NotNil(t, err, "missing database")
}

func TestBatchPutDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.TransactionInUse, err, "second begin")

	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.PutN(pool, []byte("key-two"), 1234)
	assert.Equal(t, []byte("data-one"), trx.Get(pool, []byte("key-one")), "read own write")
	assert.True(t, trx.Has(pool, []byte("key-two")), "has own write")

	trx.Delete(pool, []byte("key-one"))
	assert.Nil(t, trx.Get(pool, []byte("key-one")), "read own delete")
	assert.False(t, trx.Has(pool, []byte("key-one")), "has own delete")

	assert.Nil(t, trx.Commit(), "commit")

	n, found := pool.GetN([]byte("key-two"))
	assert.True(t, found, "committed")
	assert.Equal(t, uint64(1234), n, "committed value")
	assert.False(t, pool.Has([]byte("key-one")), "deleted")
}

func TestBatchAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")
	trx.Put(pool, []byte("key"), []byte("data"))
	trx.Abort()

	assert.False(t, pool.Has([]byte("key")), "aborted write")

	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err, "begin after abort")
	trx.Abort()
}

func TestPrefixCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData
	trx, _ := storage.NewDBTransaction()
	for _, k := range []string{"a-1", "a-2", "ab-1", "b-1"} {
		trx.Put(pool, []byte(k), []byte("v:"+k))
	}
	assert.Nil(t, trx.Commit(), "commit")

	keys := []string{}
	err := pool.NewPrefixCursor([]byte("a-")).Map(func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		assert.Equal(t, "v:"+string(key), string(value), "value")
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, []string{"a-1", "a-2"}, keys, "prefix keys")

	cursor := pool.NewCursor()
	elements, err := cursor.Next(3)
	assert.Nil(t, err, "first page")
	assert.Equal(t, 3, len(elements), "first page size")
	assert.Equal(t, []byte("ab-1"), elements[2].Key, "first page end")

	elements, err = cursor.Next(3)
	assert.Nil(t, err, "second page")
	assert.Equal(t, 1, len(elements), "second page size")
	assert.Equal(t, []byte("b-1"), elements[0].Key, "second page")

	elements, err = cursor.Next(3)
	assert.Nil(t, err, "exhausted")
	assert.Equal(t, 0, len(elements), "nothing left")

	_, err = cursor.Next(0)
	assert.Equal(t, fault.InvalidCount, err, "count")

	last, found := pool.LastElement()
	assert.True(t, found, "last")
	assert.Equal(t, []byte("b-1"), last.Key, "last key")
}

func TestStoreBlock(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := account.PublicKey(fixtures.PublicKey(1))
	other := account.PublicKey(fixtures.PublicKey(2))
	ownerAddress := account.NormalAddress(owner)
	otherAddress := account.NormalAddress(other)

	assert.Equal(t, uint64(0), storage.Height(), "empty")

	funding := fixtures.Payment(nil, owner, 5000)
	spend := fixtures.Spend(funding.TxId(), 0, other, 3000, owner, 1990)

	assert.Equal(t, fault.InvalidBlockHeight, storage.StoreBlock(2, nil), "skipped height")
	assert.Nil(t, storage.StoreBlock(1, fixtures.Transactions(funding)), "block 1")
	assert.Nil(t, storage.StoreBlock(2, fixtures.Transactions(spend)), "block 2")
	assert.Equal(t, uint64(2), storage.Height(), "height")

	tx, height, found := storage.GetTransaction(spend.TxId())
	assert.True(t, found, "spend stored")
	assert.Equal(t, uint64(2), height, "spend height")
	assert.Equal(t, spend.TxId(), tx.TxId(), "round trip")

	assert.True(t, storage.IsSpent(fixtures.Outpoint(funding.TxId(), 0)), "funding spent")
	assert.False(t, storage.IsSpent(fixtures.Outpoint(spend.TxId(), 0)), "payment unspent")

	history, err := storage.History(ownerAddress)
	assert.Nil(t, err, "owner history")
	assert.Equal(t, 2, len(history), "funding and change")
	assert.Equal(t, uint64(1), history[0].Height, "oldest first")
	assert.Equal(t, int64(5000), history[0].Value, "funding value")

	unspents, err := storage.Unspents(ownerAddress)
	assert.Nil(t, err, "owner unspents")
	assert.Equal(t, 1, len(unspents), "only change")
	assert.Equal(t, int64(1990), unspents[0].Value, "change value")
	assert.Equal(t, uint32(1), unspents[0].Index, "change index")

	unspents, err = storage.Unspents(otherAddress)
	assert.Nil(t, err, "other unspents")
	assert.Equal(t, 1, len(unspents), "payment")
	assert.Equal(t, uint64(2), unspents[0].Height, "payment height")

	txIds, found := storage.BlockTransactions(2)
	assert.True(t, found, "block")
	assert.Equal(t, spend.TxId(), txIds[0], "block content")

	again := fixtures.Spend(funding.TxId(), 0, other, 2000, owner, 2990)
	assert.Equal(t, fault.DoubleSpend, storage.StoreBlock(3, fixtures.Transactions(again)), "double spend")
	assert.Equal(t, uint64(2), storage.Height(), "rejected block not stored")
	assert.Equal(t, fault.TransactionAlreadyExists, storage.StoreBlock(3, fixtures.Transactions(spend)), "duplicate")

	missing := fixtures.Spend(fixtures.Payment(nil, other, 7).TxId(), 0, owner, 1, owner, 1)
	assert.Equal(t, fault.TransactionNotFound, storage.StoreBlock(3, fixtures.Transactions(missing)), "unknown input")
}

func TestStoreBlockChained(t *testing.T) {
	setup(t)
	defer teardown(t)

	owner := account.PublicKey(fixtures.PublicKey(1))
	other := account.PublicKey(fixtures.PublicKey(2))

	funding := fixtures.Payment(nil, owner, 5000)
	spend := fixtures.Spend(funding.TxId(), 0, other, 3000, owner, 1990)

	assert.Nil(t, storage.StoreBlock(1, fixtures.Transactions(funding, spend)), "same block")

	unspents, err := storage.Unspents(account.NormalAddress(owner))
	assert.Nil(t, err, "owner unspents")
	assert.Equal(t, 1, len(unspents), "funding spent within block")
	assert.Equal(t, spend.TxId(), unspents[0].TxId, "change")
}
