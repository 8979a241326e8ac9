// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// Cursor - ordered scan over one pool, optionally restricted to
// keys sharing a prefix
type Cursor struct {
	pool     *PoolHandle
	keyRange util.Range
}

// NewCursor - cursor over every key of the pool
func (p *PoolHandle) NewCursor() *Cursor {
	return &Cursor{
		pool: p,
		keyRange: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// NewPrefixCursor - cursor over the keys starting with prefix,
// e.g. all index entries of one address
func (p *PoolHandle) NewPrefixCursor(prefix []byte) *Cursor {
	return &Cursor{
		pool:     p,
		keyRange: *util.BytesPrefix(p.prefixKey(prefix)),
	}
}

// Next - up to count elements, the cursor moves past the last one
func (cursor *Cursor) Next(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.scan(func(e Element) error {
		results = append(results, e)
		if len(results) >= count {
			return errStop
		}
		return nil
	})
	if 0 != len(results) {
		// smallest key above the last one returned
		last := cursor.pool.prefixKey(results[len(results)-1].Key)
		cursor.keyRange.Start = append(last, 0)
	}
	return results, err
}

// Map - run f on every element in key order, stopping at the first error
func (cursor *Cursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}
	return cursor.scan(func(e Element) error {
		return f(e.Key, e.Value)
	})
}

const errStop = fault.ProcessError("stop")

// iterator slices are only valid until the next step, so both key
// and value are copied; the pool prefix byte is stripped
func (cursor *Cursor) scan(f func(Element) error) error {
	if nil == cursor.pool.dataAccess {
		return nil
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.keyRange)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		e := Element{
			Key:   append([]byte{}, key[1:]...),
			Value: append([]byte{}, value...),
		}
		if err := f(e); nil != err {
			if errStop == err {
				return nil
			}
			return err
		}
	}
	return iter.Error()
}
