// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

const (
	heightLength   = 8
	indexLength    = 4
	valueLength    = 8
	outpointLength = merkle.DigestLength + indexLength
)

// Height - height of the last committed block, zero when empty
func Height() uint64 {
	if nil == Pool.Blocks {
		return 0
	}
	last, found := Pool.Blocks.LastElement()
	if !found || heightLength != len(last.Key) {
		return 0
	}
	return binary.BigEndian.Uint64(last.Key)
}

// StoreBlock - commit the transactions of the next host block
//
// every input must spend an unspent output of a committed transaction
// or of an earlier transaction in the same block
func StoreBlock(height uint64, txs []*utxo.Transaction) error {
	if height != Height()+1 {
		return fault.InvalidBlockHeight
	}

	trx, err := NewDBTransaction()
	if nil != err {
		return err
	}

	heightKey := encodeHeight(height)
	txIds := make([]byte, 0, len(txs)*merkle.DigestLength)

	for _, tx := range txs {
		txId := tx.TxId()
		if trx.Has(Pool.Transactions, txId[:]) {
			trx.Abort()
			return fault.TransactionAlreadyExists
		}
		if err := spendInputs(trx, txId, tx); nil != err {
			trx.Abort()
			return err
		}

		trx.Put(Pool.Transactions, txId[:], append(encodeHeight(height), tx.Pack()...))

		for i, out := range tx.Outputs {
			if out.IsData() || "" == out.Address {
				continue
			}
			outpoint := encodeOutpoint(utxo.Outpoint{TxId: txId, Index: uint32(i)})
			address := encodeAddress(out.Address)

			historyKey := make([]byte, 0, len(address)+heightLength+outpointLength)
			historyKey = append(append(append(historyKey, address...), heightKey...), outpoint...)
			trx.Put(Pool.History, historyKey, encodeValue(out.Value))

			unspentKey := append(append([]byte{}, address...), outpoint...)
			trx.Put(Pool.Unspents, unspentKey, append(encodeValue(out.Value), heightKey...))
		}
		txIds = append(txIds, txId[:]...)
	}

	trx.Put(Pool.Blocks, heightKey, txIds)
	return trx.Commit()
}

// move each previous output from unspent to spent
func spendInputs(trx Transaction, txId merkle.Digest, tx *utxo.Transaction) error {
	for _, in := range tx.Inputs {
		key := encodeOutpoint(in.Previous)
		if trx.Has(Pool.Spends, key) {
			return fault.DoubleSpend
		}
		_, packed := trx.GetNB(Pool.Transactions, in.Previous.TxId[:])
		if nil == packed {
			return fault.TransactionNotFound
		}
		previous, err := utxo.Packed(packed).Unpack()
		if nil != err {
			return err
		}
		if int(in.Previous.Index) >= len(previous.Outputs) {
			return fault.TransactionNotFound
		}
		out := previous.Outputs[in.Previous.Index]
		if !out.IsData() && "" != out.Address {
			trx.Delete(Pool.Unspents, append(encodeAddress(out.Address), key...))
		}
		trx.Put(Pool.Spends, key, txId[:])
	}
	return nil
}

// GetTransaction - a committed transaction and its block height
func GetTransaction(txId merkle.Digest) (*utxo.Transaction, uint64, bool) {
	if nil == Pool.Transactions {
		return nil, 0, false
	}
	height, packed := Pool.Transactions.GetNB(txId[:])
	if nil == packed {
		return nil, 0, false
	}
	tx, err := utxo.Packed(packed).Unpack()
	if nil != err {
		return nil, 0, false
	}
	return tx, height, true
}

// IsSpent - true if a committed transaction spends the outpoint
func IsSpent(outpoint utxo.Outpoint) bool {
	if nil == Pool.Spends {
		return false
	}
	return Pool.Spends.Has(encodeOutpoint(outpoint))
}

// History - every output paid to address, oldest first
func History(address string) ([]utxo.IndexEntry, error) {
	if nil == Pool.History {
		return nil, fault.NotInitialised
	}
	prefix := encodeAddress(address)
	entries := []utxo.IndexEntry{}
	err := Pool.History.NewPrefixCursor(prefix).Map(func(key []byte, value []byte) error {
		rest := key[len(prefix):]
		if heightLength+outpointLength != len(rest) || valueLength != len(value) {
			return fault.InvalidIndexRecord
		}
		entries = append(entries, utxo.IndexEntry{
			Outpoint: decodeOutpoint(rest[heightLength:]),
			Value:    int64(binary.BigEndian.Uint64(value)),
			Height:   binary.BigEndian.Uint64(rest[:heightLength]),
		})
		return nil
	})
	return entries, err
}

// Unspents - outputs of address not yet spent, in txid order
func Unspents(address string) ([]utxo.IndexEntry, error) {
	if nil == Pool.Unspents {
		return nil, fault.NotInitialised
	}
	prefix := encodeAddress(address)
	entries := []utxo.IndexEntry{}
	err := Pool.Unspents.NewPrefixCursor(prefix).Map(func(key []byte, value []byte) error {
		rest := key[len(prefix):]
		if outpointLength != len(rest) || valueLength+heightLength != len(value) {
			return fault.InvalidIndexRecord
		}
		entries = append(entries, utxo.IndexEntry{
			Outpoint: decodeOutpoint(rest),
			Value:    int64(binary.BigEndian.Uint64(value[:valueLength])),
			Height:   binary.BigEndian.Uint64(value[valueLength:]),
		})
		return nil
	})
	return entries, err
}

// BlockTransactions - ids of the transactions committed at height
func BlockTransactions(height uint64) ([]merkle.Digest, bool) {
	if nil == Pool.Blocks {
		return nil, false
	}
	data := Pool.Blocks.Get(encodeHeight(height))
	if nil == data || 0 != len(data)%merkle.DigestLength {
		return nil, false
	}
	txIds := make([]merkle.Digest, 0, len(data)/merkle.DigestLength)
	for r := bytes.NewReader(data); r.Len() > 0; {
		var d merkle.Digest
		_, _ = r.Read(d[:])
		txIds = append(txIds, d)
	}
	return txIds, true
}

func encodeHeight(height uint64) []byte {
	b := make([]byte, heightLength)
	binary.BigEndian.PutUint64(b, height)
	return b
}

func encodeValue(value int64) []byte {
	b := make([]byte, valueLength)
	binary.BigEndian.PutUint64(b, uint64(value))
	return b
}

// length prefix keeps one address from being a prefix of another
func encodeAddress(address string) []byte {
	b := make([]byte, 0, 1+len(address))
	return append(append(b, byte(len(address))), address...)
}

func encodeOutpoint(outpoint utxo.Outpoint) []byte {
	b := make([]byte, outpointLength)
	copy(b, outpoint.TxId[:])
	binary.BigEndian.PutUint32(b[merkle.DigestLength:], outpoint.Index)
	return b
}

func decodeOutpoint(b []byte) utxo.Outpoint {
	outpoint := utxo.Outpoint{
		Index: binary.BigEndian.Uint32(b[merkle.DigestLength:]),
	}
	copy(outpoint.TxId[:], b[:merkle.DigestLength])
	return outpoint
}
