// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/tokens"
	"github.com/bitmark-inc/gatewaysd/util"
)

// Pack - bind record, wrapped in a token envelope naming the gateways key
func (bind *Bind) Pack() (Packed, error) {
	w := header(OpBind)
	w.VarString(bind.Coin).
		Int64(bind.TotalSupply).
		Hash(bind.OracleTxId).
		Uint8(bind.M).
		Uint8(bind.N)
	if err := appendKeys(w, bind.PubKeys); nil != err {
		return nil, err
	}
	w.Uint8(bind.Params.TAddr).
		Uint8(bind.Params.PubKeyHash).
		Uint8(bind.Params.ScriptHash)

	return wrap(bind.TokenId, []account.PublicKey{account.GatewaysPublicKey()}, w.Bytes())
}

// Pack - deposit record, not wrapped
func (deposit *Deposit) Pack() (Packed, error) {
	w := header(OpDeposit)
	w.VarString(deposit.Coin).
		Hash(deposit.BindTxId)
	if err := appendKeys(w, deposit.Publishers); nil != err {
		return nil, err
	}
	if len(deposit.TxIds) > maxKeyCount {
		return nil, fault.InvalidCount
	}
	w.VarInt(uint64(len(deposit.TxIds)))
	for _, txId := range deposit.TxIds {
		w.Hash(txId)
	}
	w.Int32(deposit.Height).
		Hash(deposit.CoinTxId).
		Int32(deposit.ClaimVout).
		VarString(deposit.DepositHex).
		VarBytes(deposit.Proof)
	if err := appendKey(w, deposit.DestPub); nil != err {
		return nil, err
	}
	w.Int64(deposit.Amount)
	return w.Bytes(), nil
}

// Pack - claim record, wrapped in a token envelope naming the destination key
func (claim *Claim) Pack() (Packed, error) {
	w := header(OpClaim)
	w.Hash(claim.BindTxId).
		VarString(claim.Coin).
		Hash(claim.DepositTxId)
	if err := appendKey(w, claim.DestPub); nil != err {
		return nil, err
	}
	w.Int64(claim.Amount)
	return wrap(claim.TokenId, []account.PublicKey{claim.DestPub}, w.Bytes())
}

// Pack - withdraw record, wrapped in a token envelope naming the gateways key
func (withdraw *Withdraw) Pack() (Packed, error) {
	w := header(OpWithdraw)
	w.Hash(withdraw.BindTxId).
		VarString(withdraw.Coin)
	if err := appendKey(w, withdraw.WithdrawPub); nil != err {
		return nil, err
	}
	w.Int64(withdraw.Amount)
	return wrap(withdraw.TokenId, []account.PublicKey{account.GatewaysPublicKey()}, w.Bytes())
}

// Pack - partial signature record
func (partial *PartialSign) Pack() (Packed, error) {
	w := header(OpPartialSign)
	w.Hash(partial.WithdrawTxId).
		VarString(partial.Coin).
		Uint8(partial.K)
	if err := appendKey(w, partial.SignerPub); nil != err {
		return nil, err
	}
	w.VarString(partial.Hex)
	return w.Bytes(), nil
}

// Pack - completed signing record
func (complete *CompleteSigning) Pack() (Packed, error) {
	w := header(OpCompleteSigning)
	w.Hash(complete.WithdrawTxId).
		VarString(complete.Coin).
		Uint8(complete.K).
		VarString(complete.Hex)
	return w.Bytes(), nil
}

// Pack - mark done record
func (done *MarkDone) Pack() (Packed, error) {
	w := header(OpMarkDone)
	w.Hash(done.WithdrawTxId).
		VarString(done.Coin).
		Hash(done.CompleteTxId)
	return w.Bytes(), nil
}

// every gateways record starts with the evaluation code and op
func header(op Op) *util.Writer {
	w := &util.Writer{}
	w.Uint8(constants.EvalGateways).Uint8(byte(op))
	return w
}

// append a public key
//
// the field is prefixed by CompactSize(length)
func appendKey(w *util.Writer, pk account.PublicKey) error {
	if len(pk) > maxKeyLength {
		return fault.InvalidPublicKey
	}
	w.VarBytes(pk)
	return nil
}

// append a vector of public keys
//
// the field is prefixed by CompactSize(count)
func appendKeys(w *util.Writer, keys []account.PublicKey) error {
	if len(keys) > maxKeyCount {
		return fault.InvalidCount
	}
	w.VarInt(uint64(len(keys)))
	for _, pk := range keys {
		if err := appendKey(w, pk); nil != err {
			return err
		}
	}
	return nil
}

// wrap an inner record in a token transfer envelope
func wrap(tokenId merkle.Digest, keys []account.PublicKey, inner []byte) (Packed, error) {
	transfer := &tokens.Transfer{
		TokenId: tokenId,
		PubKeys: keys,
		Payload: inner,
	}
	packed, err := transfer.Pack()
	if nil != err {
		return nil, err
	}
	return Packed(packed), nil
}
