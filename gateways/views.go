// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// PendingDeposit - a deposit ticket not yet claimed
type PendingDeposit struct {
	CoinTxId                 merkle.Digest     `json:"cointxid"`
	DepositTxId              merkle.Digest     `json:"deposittxid"`
	DepositTxIdAddress       string            `json:"deposittxidaddr"`
	TokensDestinationAddress string            `json:"tokens_destination_address"`
	ClaimPubKey              account.PublicKey `json:"claim_pubkey"`
	Amount                   float64           `json:"amount"`
	Confirmed                bool              `json:"confirmed_or_notarized"`
}

// PendingDeposits - reply of the pending deposits view
type PendingDeposits struct {
	Coin    string           `json:"coin"`
	Pending []PendingDeposit `json:"pending"`
}

// PendingWithdraw - a withdraw waiting for signatures
type PendingWithdraw struct {
	WithdrawTxId        merkle.Digest  `json:"withdrawtxid"`
	WithdrawTxIdAddress string         `json:"withdrawtxidaddr"`
	WithdrawAddress     string         `json:"withdrawaddr"`
	Amount              string         `json:"amount"`
	Confirmed           bool           `json:"confirmed_or_notarized"`
	DepositAddress      string         `json:"depositaddr,omitempty"`
	SignerAddress       string         `json:"signeraddr,omitempty"`
	NumberOfSigns       *uint8         `json:"number_of_signs,omitempty"`
	LastTxId            *merkle.Digest `json:"last_txid,omitempty"`
	Hex                 string         `json:"hex,omitempty"`
}

// PendingWithdraws - reply of the pending withdraws view
type PendingWithdraws struct {
	Coin      string            `json:"coin"`
	Pending   []PendingWithdraw `json:"pending"`
	QueueFlag int               `json:"queueflag"`
}

// ProcessedWithdraw - a withdraw with a completed external signature
type ProcessedWithdraw struct {
	CompleteTxId        merkle.Digest `json:"completesigningtxid"`
	WithdrawTxId        merkle.Digest `json:"withdrawtxid"`
	WithdrawTxIdAddress string        `json:"withdrawtxidaddr"`
	WithdrawAddress     string        `json:"withdrawaddr"`
	Amount              string        `json:"amount"`
	Hex                 string        `json:"hex"`
}

// ProcessedWithdraws - reply of the processed withdraws view
type ProcessedWithdraws struct {
	Coin      string              `json:"coin"`
	Processed []ProcessedWithdraw `json:"processed"`
	QueueFlag int                 `json:"queueflag"`
}

// Info - summary of a binding
type Info struct {
	Result      string              `json:"result"`
	Name        string              `json:"name"`
	M           uint8               `json:"M,omitempty"`
	N           uint8               `json:"N,omitempty"`
	PubKeys     []account.PublicKey `json:"pubkeys,omitempty"`
	PubKey      account.PublicKey   `json:"pubkey,omitempty"`
	Coin        string              `json:"coin"`
	OracleTxId  merkle.Digest       `json:"oracletxid"`
	TAddr       uint8               `json:"taddr"`
	Prefix      uint8               `json:"prefix"`
	Prefix2     uint8               `json:"prefix2"`
	Deposit     string              `json:"deposit"`
	TokenId     merkle.Digest       `json:"tokenid"`
	TotalSupply string              `json:"totalsupply"`
	Remaining   string              `json:"remaining"`
	Issued      string              `json:"issued"`
}

// List - txids of every binding
func (g *Gateways) List() []merkle.Digest {
	list := []merkle.Digest{}
	for _, entry := range g.chain.History(g.MarkerAddress()) {
		tx, ok := g.chain.GetTransaction(entry.TxId)
		if !ok || 0 == len(tx.Outputs) {
			continue
		}
		if _, err := transactionrecord.UnpackBind(tx.Memo()); nil == err && !containsDigest(list, entry.TxId) {
			list = append(list, entry.TxId)
		}
	}
	return list
}

// Info - the parameters and custody balance of a binding
func (g *Gateways) Info(bindTxId merkle.Digest) (*Info, error) {
	bindTx, ok := g.getTransaction(bindTxId)
	if !ok || 0 == len(bindTx.Outputs) {
		return nil, errBindNotFound
	}
	bind, err := transactionrecord.UnpackBind(bindTx.Memo())
	if nil != err || bind.M > bind.N || 0 == bind.N || len(bind.PubKeys) < int(bind.N) {
		return nil, errBindRecord
	}

	remaining := g.tokens.Balance(g.CustodyAddress(), bind.TokenId)
	info := &Info{
		Result:      "success",
		Name:        "Gateways",
		Coin:        bind.Coin,
		OracleTxId:  bind.OracleTxId,
		TAddr:       bind.Params.TAddr,
		Prefix:      bind.Params.PubKeyHash,
		Prefix2:     bind.Params.ScriptHash,
		Deposit:     bind.DepositAddress,
		TokenId:     bind.TokenId,
		TotalSupply: coins(bind.TotalSupply),
		Remaining:   coins(remaining),
		Issued:      coins(bind.TotalSupply - remaining),
	}
	if bind.N > 1 {
		info.M = bind.M
		info.N = bind.N
		info.PubKeys = bind.PubKeys[:bind.N]
	} else {
		info.PubKey = bind.PubKeys[0]
	}
	return info, nil
}

// PendingDeposits - unclaimed deposit tickets payable to mypk
func (g *Gateways) PendingDeposits(mypk account.PublicKey, bindTxId merkle.Digest, coin string) (*PendingDeposits, error) {
	if _, err := g.resolveBind(bindTxId, coin); nil != err {
		return nil, err
	}

	result := &PendingDeposits{
		Coin:    coin,
		Pending: []PendingDeposit{},
	}
	for _, entry := range g.markers(account.PoolAddress(constants.EvalGateways, mypk)) {
		tx, _ := g.chain.GetTransaction(entry.TxId)
		deposit, err := transactionrecord.UnpackDeposit(tx.Memo())
		if nil != err || deposit.BindTxId != bindTxId || deposit.Coin != coin {
			continue
		}
		result.Pending = append(result.Pending, PendingDeposit{
			CoinTxId:                 deposit.CoinTxId,
			DepositTxId:              entry.TxId,
			DepositTxIdAddress:       account.TxIdAddress(entry.TxId),
			TokensDestinationAddress: account.PoolAddress(constants.EvalTokens, deposit.DestPub),
			ClaimPubKey:              deposit.DestPub,
			Amount:                   float64(deposit.Amount) / float64(constants.CoinUnit),
			Confirmed:                g.finality.IsFinalized(entry.TxId),
		})
	}
	return result, nil
}

// PendingWithdraws - withdraws of a binding still collecting signatures
//
// the queue flag is set when mypk is one of the binding's signers
func (g *Gateways) PendingWithdraws(mypk account.PublicKey, bindTxId merkle.Digest, coin string) (*PendingWithdraws, error) {
	bind, err := g.resolveBind(bindTxId, coin)
	if nil != err {
		return nil, err
	}

	result := &PendingWithdraws{
		Coin:      coin,
		Pending:   []PendingWithdraw{},
		QueueFlag: queueFlag(bind, mypk),
	}
	custody := g.CustodyAddress()

	for _, entry := range g.markers(g.MarkerAddress()) {
		tx, _ := g.chain.GetTransaction(entry.TxId)

		withdrawTx := tx
		withdrawTxId := entry.TxId
		k := uint8(0)
		hex := ""
		switch transactionrecord.PeekOp(tx.Memo()) {
		case transactionrecord.OpWithdraw:
		case transactionrecord.OpPartialSign:
			partial, err := transactionrecord.UnpackPartialSign(tx.Memo())
			if nil != err {
				continue
			}
			withdrawTxId = partial.WithdrawTxId
			k = partial.K
			hex = partial.Hex
			var ok bool
			if withdrawTx, ok = g.getTransaction(withdrawTxId); !ok || 0 == len(withdrawTx.Outputs) {
				continue
			}
		default:
			continue
		}

		withdraw, err := transactionrecord.UnpackWithdraw(withdrawTx.Memo())
		if nil != err || withdraw.Coin != coin || withdraw.TokenId != bind.TokenId || withdraw.BindTxId != bindTxId {
			continue
		}
		if len(withdrawTx.Outputs) < 2 || custody != withdrawTx.Outputs[1].Address {
			continue
		}

		pending := PendingWithdraw{
			WithdrawTxId:        withdrawTxId,
			WithdrawTxIdAddress: account.TxIdAddress(withdrawTxId),
			WithdrawAddress:     account.NormalAddress(withdraw.WithdrawPub),
			Amount:              coins(withdrawTx.Outputs[1].Value),
			Confirmed:           g.finality.IsFinalized(withdrawTxId),
		}
		if 0 != result.QueueFlag {
			pending.DepositAddress = bind.DepositAddress
			pending.SignerAddress = account.NormalAddress(mypk)
		}
		if bind.N > 1 {
			signs := k
			last := entry.TxId
			pending.NumberOfSigns = &signs
			pending.LastTxId = &last
			if k > 0 {
				pending.Hex = hex
			}
		}
		result.Pending = append(result.Pending, pending)
	}
	return result, nil
}

// ProcessedWithdraws - withdraws of a binding with a completed
// signature that are not yet marked done
func (g *Gateways) ProcessedWithdraws(mypk account.PublicKey, bindTxId merkle.Digest, coin string) (*ProcessedWithdraws, error) {
	bind, err := g.resolveBind(bindTxId, coin)
	if nil != err {
		return nil, err
	}

	result := &ProcessedWithdraws{
		Coin:      coin,
		Processed: []ProcessedWithdraw{},
		QueueFlag: queueFlag(bind, mypk),
	}
	for _, entry := range g.markers(g.MarkerAddress()) {
		tx, _ := g.chain.GetTransaction(entry.TxId)
		complete, err := transactionrecord.UnpackCompleteSigning(tx.Memo())
		if nil != err || complete.Coin != coin {
			continue
		}
		withdrawTx, ok := g.getTransaction(complete.WithdrawTxId)
		if !ok || len(withdrawTx.Outputs) < 2 {
			continue
		}
		withdraw, err := transactionrecord.UnpackWithdraw(withdrawTx.Memo())
		if nil != err || withdraw.TokenId != bind.TokenId || withdraw.BindTxId != bindTxId {
			continue
		}
		result.Processed = append(result.Processed, ProcessedWithdraw{
			CompleteTxId:        entry.TxId,
			WithdrawTxId:        complete.WithdrawTxId,
			WithdrawTxIdAddress: account.TxIdAddress(complete.WithdrawTxId),
			WithdrawAddress:     account.NormalAddress(withdraw.WithdrawPub),
			Amount:              coins(withdrawTx.Outputs[1].Value),
			Hex:                 complete.Hex,
		})
	}
	return result, nil
}

// unspent fee markers at vout 0 of an address that no unconfirmed
// transaction spends
func (g *Gateways) markers(address string) []utxo.IndexEntry {
	markers := []utxo.IndexEntry{}
	for _, entry := range g.chain.Unspents(address) {
		if 0 != entry.Index || g.fee != entry.Value || g.spentInPool(entry.Outpoint) {
			continue
		}
		tx, ok := g.chain.GetTransaction(entry.TxId)
		if !ok || 0 == len(tx.Outputs) {
			continue
		}
		markers = append(markers, entry)
	}
	return markers
}

func queueFlag(bind *transactionrecord.Bind, mypk account.PublicKey) int {
	for _, pk := range bind.PubKeys {
		if pk.Equal(mypk) {
			return 1
		}
	}
	return 0
}
