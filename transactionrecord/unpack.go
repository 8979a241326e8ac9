// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/currency"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/tokens"
	"github.com/bitmark-inc/gatewaysd/util"
)

// Envelope - the token transfer wrapper of a record
type Envelope struct {
	TokenId merkle.Digest       `json:"tokenId"`
	PubKeys []account.PublicKey `json:"pubkeys"`
}

// PeekOp - the op code of a memo without decoding its fields
//
// returns OpNone if the memo is not a gateways record
func PeekOp(data []byte) Op {
	_, inner := unwrap(data)
	if len(inner) < minimumRecordLength || constants.EvalGateways != inner[0] {
		return OpNone
	}
	op := Op(inner[1])
	if !op.IsValid() {
		return OpNone
	}
	return op
}

// Unpack - turn a memo into a record
//
// must cast result to correct type
//
// e.g.
//
//	switch r := result.(type) {
//	case *transactionrecord.Bind:
func Unpack(data []byte) (Record, error) {
	envelope, inner := unwrap(data)

	if len(inner) < minimumRecordLength || constants.EvalGateways != inner[0] {
		return nil, fault.NotGatewaysRecord
	}

	r := util.NewReader(inner[2:])
	var record Record

	switch Op(inner[1]) {

	case OpBind:
		bind := &Bind{
			Coin:        r.VarString(maxCoinLength, "coin"),
			TotalSupply: r.Int64(),
			OracleTxId:  r.Hash(),
			M:           r.Uint8(),
			N:           r.Uint8(),
			PubKeys:     readKeys(r),
			Params: currency.Params{
				TAddr:      r.Uint8(),
				PubKeyHash: r.Uint8(),
				ScriptHash: r.Uint8(),
			},
		}
		if nil != envelope {
			bind.TokenId = envelope.TokenId
		}
		if nil == r.Err() {
			bind.DepositAddress = depositAddress(bind)
		}
		record = bind

	case OpDeposit:
		deposit := &Deposit{
			Coin:       r.VarString(maxCoinLength, "refcoin"),
			BindTxId:   r.Hash(),
			Publishers: readKeys(r),
			TxIds:      readHashes(r),
			Height:     r.Int32(),
			CoinTxId:   r.Hash(),
			ClaimVout:  r.Int32(),
			DepositHex: r.VarString(maxHexLength, "deposithex"),
			Proof:      r.VarBytes(maxProofLength, "proof"),
			DestPub:    readKey(r),
			Amount:     r.Int64(),
		}
		record = deposit

	case OpClaim:
		claim := &Claim{
			BindTxId:    r.Hash(),
			Coin:        r.VarString(maxCoinLength, "refcoin"),
			DepositTxId: r.Hash(),
			DestPub:     readKey(r),
			Amount:      r.Int64(),
		}
		if nil != envelope {
			claim.TokenId = envelope.TokenId
		}
		record = claim

	case OpWithdraw:
		withdraw := &Withdraw{
			BindTxId:    r.Hash(),
			Coin:        r.VarString(maxCoinLength, "refcoin"),
			WithdrawPub: readKey(r),
			Amount:      r.Int64(),
		}
		if nil != envelope {
			withdraw.TokenId = envelope.TokenId
		}
		record = withdraw

	case OpPartialSign:
		record = &PartialSign{
			WithdrawTxId: r.Hash(),
			Coin:         r.VarString(maxCoinLength, "refcoin"),
			K:            r.Uint8(),
			SignerPub:    readKey(r),
			Hex:          r.VarString(maxHexLength, "hex"),
		}

	case OpCompleteSigning:
		record = &CompleteSigning{
			WithdrawTxId: r.Hash(),
			Coin:         r.VarString(maxCoinLength, "refcoin"),
			K:            r.Uint8(),
			Hex:          r.VarString(maxHexLength, "hex"),
		}

	case OpMarkDone:
		record = &MarkDone{
			WithdrawTxId: r.Hash(),
			Coin:         r.VarString(maxCoinLength, "refcoin"),
			CompleteTxId: r.Hash(),
		}

	default:
		return nil, fault.NotGatewaysRecord
	}

	if err := r.Done(); nil != err {
		return nil, err
	}
	return record, nil
}

// UnpackEnvelope - the token envelope of a memo, if it has one
func UnpackEnvelope(data []byte) (*Envelope, bool) {
	envelope, _ := unwrap(data)
	return envelope, nil != envelope
}

// UnpackBind - decode a memo that must be a bind record
func UnpackBind(data []byte) (*Bind, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	bind, ok := r.(*Bind)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return bind, nil
}

// UnpackDeposit - decode a memo that must be a deposit record
func UnpackDeposit(data []byte) (*Deposit, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	deposit, ok := r.(*Deposit)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return deposit, nil
}

// UnpackClaim - decode a memo that must be a claim record
func UnpackClaim(data []byte) (*Claim, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	claim, ok := r.(*Claim)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return claim, nil
}

// UnpackWithdraw - decode a memo that must be a withdraw record
func UnpackWithdraw(data []byte) (*Withdraw, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	withdraw, ok := r.(*Withdraw)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return withdraw, nil
}

// UnpackPartialSign - decode a memo that must be a partial signature record
func UnpackPartialSign(data []byte) (*PartialSign, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	partial, ok := r.(*PartialSign)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return partial, nil
}

// UnpackCompleteSigning - decode a memo that must be a completed signing record
func UnpackCompleteSigning(data []byte) (*CompleteSigning, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	complete, ok := r.(*CompleteSigning)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return complete, nil
}

// UnpackMarkDone - decode a memo that must be a mark done record
func UnpackMarkDone(data []byte) (*MarkDone, error) {
	r, err := Unpack(data)
	if nil != err {
		return nil, err
	}
	done, ok := r.(*MarkDone)
	if !ok {
		return nil, fault.WrongRecordType
	}
	return done, nil
}

// split a memo into its token envelope, if any, and the inner record
//
// anything that does not parse as an envelope with a payload is
// returned unchanged as the inner record
func unwrap(data []byte) (*Envelope, []byte) {
	transfer, err := tokens.UnpackTransfer(data)
	if nil != err || 0 == len(transfer.Payload) {
		return nil, data
	}
	envelope := &Envelope{
		TokenId: transfer.TokenId,
		PubKeys: transfer.PubKeys,
	}
	return envelope, transfer.Payload
}

// read a CompactSize prefixed public key, the key itself is not validated
func readKey(r *util.Reader) account.PublicKey {
	b := r.VarBytes(maxKeyLength, "pubkey")
	if nil != r.Err() {
		return nil
	}
	return account.PublicKey(b)
}

// read a CompactSize counted vector of public keys
func readKeys(r *util.Reader) []account.PublicKey {
	n := r.VarInt(maxKeyCount)
	keys := make([]account.PublicKey, 0, n)
	for i := uint64(0); i < n && nil == r.Err(); i += 1 {
		keys = append(keys, readKey(r))
	}
	return keys
}

// read a CompactSize counted vector of hashes
func readHashes(r *util.Reader) []merkle.Digest {
	n := r.VarInt(maxKeyCount)
	hashes := make([]merkle.Digest, 0, n)
	for i := uint64(0); i < n && nil == r.Err(); i += 1 {
		hashes = append(hashes, r.Hash())
	}
	return hashes
}

// the external deposit address of a binding, empty if it cannot be derived
func depositAddress(bind *Bind) string {
	if 0 == len(bind.PubKeys) {
		return ""
	}
	m := int(bind.M)
	if bind.N <= 1 {
		m = 1
	}
	address, err := currency.DepositAddress(bind.Params, m, bind.PubKeys)
	if nil != err {
		return ""
	}
	return address
}
