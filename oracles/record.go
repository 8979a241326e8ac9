// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracles

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/util"
)

// oracle record op codes
const (
	createOp = 'C'
	dataOp   = 'D'
)

// limits for unpacking
const (
	maxNameLength        = 64
	maxFormatLength      = 64
	maxDescriptionLength = 4096
	maxKeyLength         = 65
	maxDataLength        = 8192
)

// MerkleRootFormat - the data format of a block header feed
const MerkleRootFormat = "Ihh"

// Create - the memo of an oracle creation transaction
//
// the oracle id is the id of the creating transaction
type Create struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	Description string `json:"description"`
}

// Data - the memo of one publication
//
// BatonTxId links to the publisher's previous publication
type Data struct {
	OracleTxId merkle.Digest     `json:"oracleTxId"`
	BatonTxId  merkle.Digest     `json:"batonTxId"`
	Publisher  account.PublicKey `json:"publisher"`
	Data       []byte            `json:"data"`
}

// Pack - oracle creation memo
func (create *Create) Pack() ([]byte, error) {
	if len(create.Name) > maxNameLength || len(create.Format) > maxFormatLength {
		return nil, fault.RecordTooLong
	}
	w := &util.Writer{}
	w.Uint8(constants.EvalOracles).
		Uint8(createOp).
		VarString(create.Name).
		VarString(create.Format).
		VarString(create.Description)
	return w.Bytes(), nil
}

// Pack - publication memo
func (data *Data) Pack() ([]byte, error) {
	if len(data.Publisher) > maxKeyLength {
		return nil, fault.InvalidPublicKey
	}
	if len(data.Data) > maxDataLength {
		return nil, fault.RecordTooLong
	}
	w := &util.Writer{}
	w.Uint8(constants.EvalOracles).
		Uint8(dataOp).
		Hash(data.OracleTxId).
		Hash(data.BatonTxId).
		VarBytes(data.Publisher).
		VarBytes(data.Data)
	return w.Bytes(), nil
}

// UnpackCreate - decode an oracle creation memo
func UnpackCreate(memo []byte) (*Create, error) {
	r, err := reader(memo, createOp)
	if nil != err {
		return nil, err
	}
	create := &Create{
		Name:        r.VarString(maxNameLength, "name"),
		Format:      r.VarString(maxFormatLength, "format"),
		Description: r.VarString(maxDescriptionLength, "description"),
	}
	if err := r.Done(); nil != err {
		return nil, err
	}
	return create, nil
}

// UnpackData - decode a publication memo
func UnpackData(memo []byte) (*Data, error) {
	r, err := reader(memo, dataOp)
	if nil != err {
		return nil, err
	}
	data := &Data{
		OracleTxId: r.Hash(),
		BatonTxId:  r.Hash(),
		Publisher:  account.PublicKey(r.VarBytes(maxKeyLength, "pubkey")),
		Data:       r.VarBytes(maxDataLength, "data"),
	}
	if err := r.Done(); nil != err {
		return nil, err
	}
	return data, nil
}

func reader(memo []byte, op byte) (*util.Reader, error) {
	if len(memo) < 2 || constants.EvalOracles != memo[0] || op != memo[1] {
		return nil, fault.NotOracleRecord
	}
	return util.NewReader(memo[2:]), nil
}
