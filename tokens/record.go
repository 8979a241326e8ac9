// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokens

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/util"
)

// token record op codes
const (
	createOp   = 'c'
	transferOp = 't'
)

// limits for unpacking
const (
	maxNameLength        = 64
	maxDescriptionLength = 4096
	maxKeyLength         = 65
	maxPayloadLength     = 4 << 20
)

// Create - the memo of a token creation transaction
//
// the token id is the id of the creating transaction
type Create struct {
	OwnerPub    account.PublicKey `json:"owner"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

// Transfer - the envelope carried by every token movement
//
// Payload, if present, is the memo of the contract that holds the
// tokens
type Transfer struct {
	TokenId merkle.Digest       `json:"tokenId"`
	PubKeys []account.PublicKey `json:"pubkeys"`
	Payload []byte              `json:"payload,omitempty"`
}

// Pack - token creation memo
func (create *Create) Pack() ([]byte, error) {
	if len(create.OwnerPub) > maxKeyLength {
		return nil, fault.InvalidPublicKey
	}
	if len(create.Name) > maxNameLength {
		return nil, fault.RecordTooLong
	}
	w := &util.Writer{}
	w.Uint8(constants.EvalTokens).
		Uint8(createOp).
		VarBytes(create.OwnerPub).
		VarString(create.Name).
		VarString(create.Description)
	return w.Bytes(), nil
}

// Pack - token transfer envelope
func (transfer *Transfer) Pack() ([]byte, error) {
	if len(transfer.PubKeys) > 255 {
		return nil, fault.InvalidCount
	}
	w := &util.Writer{}
	w.Uint8(constants.EvalTokens).
		Uint8(transferOp).
		Hash(transfer.TokenId).
		Uint8(uint8(len(transfer.PubKeys)))
	for _, pk := range transfer.PubKeys {
		if len(pk) > maxKeyLength {
			return nil, fault.InvalidPublicKey
		}
		w.VarBytes(pk)
	}
	if 0 != len(transfer.Payload) {
		w.VarBytes(transfer.Payload)
	}
	return w.Bytes(), nil
}

// UnpackCreate - decode a token creation memo
func UnpackCreate(data []byte) (*Create, error) {
	if len(data) < 2 || constants.EvalTokens != data[0] || createOp != data[1] {
		return nil, fault.NotTokensRecord
	}
	r := util.NewReader(data[2:])
	create := &Create{
		OwnerPub:    account.PublicKey(r.VarBytes(maxKeyLength, "origpubkey")),
		Name:        r.VarString(maxNameLength, "name"),
		Description: r.VarString(maxDescriptionLength, "description"),
	}
	if err := r.Done(); nil != err {
		return nil, err
	}
	return create, nil
}

// UnpackTransfer - decode a token transfer envelope
func UnpackTransfer(data []byte) (*Transfer, error) {
	if len(data) < 2 || constants.EvalTokens != data[0] || transferOp != data[1] {
		return nil, fault.NotTokensRecord
	}
	r := util.NewReader(data[2:])
	transfer := &Transfer{
		TokenId: r.Hash(),
	}
	count := int(r.Uint8())
	for i := 0; i < count && nil == r.Err(); i += 1 {
		pk := r.VarBytes(maxKeyLength, "pubkey")
		transfer.PubKeys = append(transfer.PubKeys, account.PublicKey(pk))
	}
	if nil == r.Err() && 0 != r.Remaining() {
		transfer.Payload = r.VarBytes(maxPayloadLength, "payload")
	}
	if err := r.Done(); nil != err {
		return nil, err
	}
	return transfer, nil
}

// TokenIdOf - the token moved by a transaction, from its memo
//
// a creation transaction defines its own id
func TokenIdOf(txId merkle.Digest, memo []byte) (merkle.Digest, bool) {
	if _, err := UnpackCreate(memo); nil == err {
		return txId, true
	}
	if transfer, err := UnpackTransfer(memo); nil == err {
		return transfer.TokenId, true
	}
	return merkle.Digest{}, false
}
