// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

type decodedTransaction struct {
	TxId        merkle.Digest            `json:"txId"`
	Transaction *utxo.Transaction        `json:"transaction"`
	Op          string                   `json:"op,omitempty"`
	Record      transactionrecord.Record `json:"record,omitempty"`
	RecordError string                   `json:"recordError,omitempty"`
}

// no node connection needed
func decodeTransaction(h string) (*decodedTransaction, error) {
	tx, err := utxo.TransactionFromHex(h)
	if nil != err {
		return nil, err
	}
	decoded := &decodedTransaction{
		TxId:        tx.TxId(),
		Transaction: tx,
	}
	memo := tx.Memo()
	if nil == memo {
		return decoded, nil
	}
	record, err := transactionrecord.Unpack(memo)
	if nil != err {
		decoded.RecordError = err.Error()
		return decoded, nil
	}
	decoded.Op = record.Op().String()
	decoded.Record = record
	return decoded, nil
}

func runDecode(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	h, err := checkHex(c.String("hex"))
	if nil != err {
		return err
	}
	decoded, err := decodeTransaction(h)
	if nil != err {
		return err
	}
	return printJson(m.w, decoded)
}
