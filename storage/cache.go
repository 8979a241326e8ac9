// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// pendingWrites - the puts and deletes of the open batch, consulted
// before the database so a block's own writes are visible to later
// reads in the same batch
//
// entries never expire, Clear runs on every commit or abort
type pendingWrites struct {
	items *cache.Cache
}

type pendingItem struct {
	deleted bool
	value   []byte
}

func newPendingWrites() *pendingWrites {
	return &pendingWrites{
		items: cache.New(cache.NoExpiration, 0),
	}
}

// lookup - found is true when the batch touched the key, deleted
// tells whether that touch was a delete
func (p *pendingWrites) lookup(key []byte) (value []byte, deleted bool, found bool) {
	obj, found := p.items.Get(string(key))
	if !found {
		return nil, false, false
	}
	item := obj.(pendingItem)
	return item.value, item.deleted, true
}

func (p *pendingWrites) put(key []byte, value []byte) {
	p.items.Set(string(key), pendingItem{value: value}, cache.NoExpiration)
}

func (p *pendingWrites) delete(key []byte) {
	p.items.Set(string(key), pendingItem{deleted: true}, cache.NoExpiration)
}

func (p *pendingWrites) clear() {
	p.items.Flush()
}
