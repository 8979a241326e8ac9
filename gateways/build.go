// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/currency"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// input count limits used when funding
const (
	bindNormalInputs    = 3
	depositNormalInputs = 4
	tokenInputs         = 64

	// the validator expects exactly one normal input ahead of the
	// pooled inputs of a claim, withdraw or signing stage
	stageNormalInputs = 1
)

// BindArguments - the parameters of a new binding
type BindArguments struct {
	Coin        string
	TokenId     merkle.Digest
	TotalSupply int64
	OracleTxId  merkle.Digest
	M           uint8
	N           uint8
	PubKeys     []account.PublicKey
}

// Bind - move the full supply of a token into custody and tie it to
// an external coin, an oracle and a signer set
func (g *Gateways) Bind(mypk account.PublicKey, arguments *BindArguments) (*utxo.Transaction, error) {
	if 0 == arguments.N || arguments.N > constants.MaximumSigners || arguments.M > arguments.N {
		return nil, errIllegalMofN
	}
	if len(arguments.PubKeys) != int(arguments.N) {
		return nil, fault.PublicKeyCountMismatch
	}
	for i, pk := range arguments.PubKeys {
		if 0 == g.chain.Balance(account.NormalAddress(pk)) {
			g.log.Debugf("bind: M.%d N.%d but pubkeys[%d] has no balance", arguments.M, arguments.N, i)
			return nil, fault.SignerHasNoBalance
		}
	}

	if fullSupply := g.tokens.FullSupply(arguments.TokenId); fullSupply != arguments.TotalSupply {
		g.log.Debugf("bind: %s token: %v  totalsupply %s != fullsupply %s",
			arguments.Coin, arguments.TokenId, coins(arguments.TotalSupply), coins(fullSupply))
		return nil, fault.SupplyMismatch
	}
	if balance := g.tokens.Balance(g.tokens.PoolAddress(mypk), arguments.TokenId); balance != arguments.TotalSupply {
		g.log.Debugf("bind: token balance %s != %s", coins(balance), coins(arguments.TotalSupply))
		return nil, fault.TokenBalanceMismatch
	}

	bind := &transactionrecord.Bind{
		TokenId:     arguments.TokenId,
		Coin:        arguments.Coin,
		TotalSupply: arguments.TotalSupply,
		OracleTxId:  arguments.OracleTxId,
		M:           arguments.M,
		N:           arguments.N,
		PubKeys:     arguments.PubKeys,
		Params:      currency.Komodo,
	}
	if err := g.checkOracle(bind); nil != err {
		return nil, err
	}
	if g.BindExists(arguments.TokenId) {
		return nil, fault.DuplicateBind
	}

	tx := &utxo.Transaction{}
	if 0 >= g.funder.AddNormalInputs(tx, mypk, 2*g.fee, bindNormalInputs) {
		return nil, fault.InsufficientFunds
	}
	if 0 >= g.tokens.AddInputs(tx, mypk, arguments.TokenId, arguments.TotalSupply, tokenInputs) {
		return nil, fault.InsufficientFunds
	}
	tx.Outputs = append(tx.Outputs,
		utxo.TokensPoolOutput(constants.EvalGateways, arguments.TotalSupply, g.gatewaysPub),
		utxo.PoolOutput(constants.EvalGateways, g.fee, g.gatewaysPub),
	)
	return g.finalize(tx, mypk, bind)
}

// DepositArguments - the parameters of a deposit claim ticket
type DepositArguments struct {
	BindTxId   merkle.Digest
	Height     int32
	Coin       string
	CoinTxId   merkle.Digest
	ClaimVout  int32
	DepositHex string
	Proof      []byte
	DestPub    account.PublicKey
	Amount     int64
}

// Deposit - record a proven external payment as a ticket claimable by
// the destination key
func (g *Gateways) Deposit(mypk account.PublicKey, arguments *DepositArguments) (*utxo.Transaction, error) {
	bind, err := g.resolveBind(arguments.BindTxId, arguments.Coin)
	if nil != err {
		return nil, err
	}
	if arguments.Amount > bind.TotalSupply {
		return nil, errDepositOverSupply
	}

	tally, err := g.Tally(arguments.Height, bind.OracleTxId, bind.PubKeys)
	g.log.Debugf("deposit: cointxid: %v  m.%d of n.%d", arguments.CoinTxId, tally.Support, tally.Signers)
	if nil != err {
		return nil, err
	}
	if g.CointxidExists(arguments.CoinTxId) {
		return nil, fault.CoinTxIdExists
	}
	value := g.Verify(bind.DepositAddress, bind.OracleTxId, arguments.ClaimVout, bind.Coin, arguments.CoinTxId,
		arguments.DepositHex, arguments.Proof, tally.MerkleRoot, arguments.DestPub)
	if value != arguments.Amount {
		return nil, errDepositNotValidated
	}

	deposit := &transactionrecord.Deposit{
		Coin:       bind.Coin,
		BindTxId:   arguments.BindTxId,
		Publishers: tally.Publishers,
		TxIds:      tally.TxIds,
		Height:     arguments.Height,
		CoinTxId:   arguments.CoinTxId,
		ClaimVout:  arguments.ClaimVout,
		DepositHex: arguments.DepositHex,
		Proof:      arguments.Proof,
		DestPub:    arguments.DestPub,
		Amount:     arguments.Amount,
	}

	tx := &utxo.Transaction{}
	if 0 >= g.funder.AddNormalInputs(tx, mypk, 3*g.fee, depositNormalInputs) {
		return nil, fault.InsufficientFunds
	}
	tx.Outputs = append(tx.Outputs,
		utxo.PoolOutput(constants.EvalGateways, g.fee, arguments.DestPub),
		utxo.AddressOutput(g.fee, account.TxIdAddress(arguments.CoinTxId)),
	)
	return g.finalize(tx, mypk, deposit)
}

// Claim - spend a deposit ticket of mypk to release custody tokens to
// the destination key
func (g *Gateways) Claim(mypk account.PublicKey, bindTxId merkle.Digest, coin string, depositTxId merkle.Digest, destPub account.PublicKey, amount int64) (*utxo.Transaction, error) {
	bind, err := g.resolveBind(bindTxId, coin)
	if nil != err {
		return nil, err
	}

	depositTx, ok := g.getTransaction(depositTxId)
	if !ok || 0 == len(depositTx.Outputs) {
		return nil, errDepositNotFound
	}
	deposit, err := transactionrecord.UnpackDeposit(depositTx.Memo())
	if nil != err || deposit.Coin != coin {
		return nil, errInvalidDepositCoin
	}
	if !deposit.DestPub.Equal(destPub) {
		return nil, errDestinationMismatch
	}
	if depositAmount := Depositval(depositTx, mypk); depositAmount != amount {
		g.log.Debugf("claim: deposit: %v  %s != %s", depositTxId, coins(depositAmount), coins(amount))
		return nil, errClaimDepositAmount
	}

	tx := &utxo.Transaction{}
	if 0 >= g.funder.AddNormalInputs(tx, mypk, g.fee, stageNormalInputs) {
		return nil, fault.InsufficientGatewayFunds
	}
	inputs := g.AddGatewaysInputs(tx, bindTxId, amount, constants.MaximumInputs)
	if inputs < amount {
		return nil, fault.InsufficientGatewayFunds
	}
	tx.Inputs = append(tx.Inputs, utxo.Input{
		Previous: utxo.Outpoint{TxId: depositTxId, Index: 0},
		Pooled:   true,
	})
	tx.Outputs = append(tx.Outputs, utxo.PoolOutput(constants.EvalTokens, amount, destPub))
	if inputs > amount {
		tx.Outputs = append(tx.Outputs, utxo.TokensPoolOutput(constants.EvalGateways, inputs-amount, g.gatewaysPub))
	}

	claim := &transactionrecord.Claim{
		TokenId:     bind.TokenId,
		BindTxId:    bindTxId,
		Coin:        coin,
		DepositTxId: depositTxId,
		DestPub:     destPub,
		Amount:      amount,
	}
	return g.finalizeChecked(tx, mypk, claim)
}

// Withdraw - return tokens to custody and request an external payment
// to withdrawPub
func (g *Gateways) Withdraw(mypk account.PublicKey, bindTxId merkle.Digest, coin string, withdrawPub account.PublicKey, amount int64) (*utxo.Transaction, error) {
	bind, err := g.resolveBind(bindTxId, coin)
	if nil != err {
		return nil, err
	}
	if g.withdrawPending(bindTxId, bind) {
		return nil, fault.WithdrawPending
	}

	tx := &utxo.Transaction{}
	if 0 >= g.funder.AddNormalInputs(tx, mypk, 3*g.fee, stageNormalInputs) {
		return nil, errInsufficientNormal
	}
	inputs := g.tokens.AddInputs(tx, mypk, bind.TokenId, amount, constants.MaximumInputs)
	if inputs < amount {
		return nil, fault.InsufficientTokens
	}
	tx.Outputs = append(tx.Outputs,
		utxo.PoolOutput(constants.EvalGateways, g.fee, g.gatewaysPub),
		utxo.TokensPoolOutput(constants.EvalGateways, amount, g.gatewaysPub),
	)
	if inputs > amount {
		tx.Outputs = append(tx.Outputs, utxo.PoolOutput(constants.EvalTokens, inputs-amount, mypk))
	}

	withdraw := &transactionrecord.Withdraw{
		TokenId:     bind.TokenId,
		BindTxId:    bindTxId,
		Coin:        coin,
		WithdrawPub: withdrawPub,
		Amount:      amount,
	}
	return g.finalize(tx, mypk, withdraw)
}

// PartialSign - add the signature of mypk to a withdraw
//
// lastTxId is the withdraw itself or the latest partial signature
func (g *Gateways) PartialSign(mypk account.PublicKey, lastTxId merkle.Digest, coin string, hex string) (*utxo.Transaction, error) {
	withdrawTxId, k, bind, err := g.resolveLast(lastTxId, coin)
	if nil != err {
		return nil, err
	}
	if k+1 > bind.M {
		return nil, fault.InvalidNumberOfSigns
	}
	tx, err := g.signingStage(mypk, lastTxId)
	if nil != err {
		return nil, err
	}
	partial := &transactionrecord.PartialSign{
		WithdrawTxId: withdrawTxId,
		Coin:         coin,
		K:            k + 1,
		SignerPub:    mypk,
		Hex:          hex,
	}
	return g.finalizeChecked(tx, mypk, partial)
}

// CompleteSigning - publish the fully signed external transaction
func (g *Gateways) CompleteSigning(mypk account.PublicKey, lastTxId merkle.Digest, coin string, hex string) (*utxo.Transaction, error) {
	withdrawTxId, k, bind, err := g.resolveLast(lastTxId, coin)
	if nil != err {
		return nil, err
	}
	if k+1 != bind.M {
		return nil, fault.InvalidNumberOfSigns
	}
	tx, err := g.signingStage(mypk, lastTxId)
	if nil != err {
		return nil, err
	}
	complete := &transactionrecord.CompleteSigning{
		WithdrawTxId: withdrawTxId,
		Coin:         coin,
		K:            k + 1,
		Hex:          hex,
	}
	return g.finalizeChecked(tx, mypk, complete)
}

// MarkDone - close a withdraw once its external payment is broadcast
func (g *Gateways) MarkDone(mypk account.PublicKey, completeTxId merkle.Digest, coin string) (*utxo.Transaction, error) {
	completeTx, ok := g.getTransaction(completeTxId)
	if !ok || 0 == len(completeTx.Outputs) {
		return nil, errCompleteNotFound
	}
	complete, err := transactionrecord.UnpackCompleteSigning(completeTx.Memo())
	if nil != err || complete.Coin != coin {
		return nil, errInvalidWithdrawCoin
	}
	withdraw, err := g.resolveWithdraw(complete.WithdrawTxId, coin)
	if nil != err {
		return nil, err
	}
	if _, err := g.resolveSignerBind(withdraw, coin); nil != err {
		return nil, err
	}

	tx := &utxo.Transaction{
		Inputs: []utxo.Input{{
			Previous: utxo.Outpoint{TxId: completeTxId, Index: 0},
			Pooled:   true,
		}},
	}
	done := &transactionrecord.MarkDone{
		WithdrawTxId: complete.WithdrawTxId,
		Coin:         coin,
		CompleteTxId: completeTxId,
	}
	return g.finalizeChecked(tx, mypk, done)
}

// a binding of the coin
func (g *Gateways) resolveBind(bindTxId merkle.Digest, coin string) (*transactionrecord.Bind, error) {
	bindTx, ok := g.getTransaction(bindTxId)
	if !ok || 0 == len(bindTx.Outputs) {
		return nil, errBindNotFound
	}
	bind, err := transactionrecord.UnpackBind(bindTx.Memo())
	if nil != err || bind.Coin != coin {
		return nil, errInvalidBindCoin
	}
	return bind, nil
}

// a withdraw of the coin
func (g *Gateways) resolveWithdraw(withdrawTxId merkle.Digest, coin string) (*transactionrecord.Withdraw, error) {
	withdrawTx, ok := g.getTransaction(withdrawTxId)
	if !ok || 0 == len(withdrawTx.Outputs) {
		return nil, errWithdrawNotFound
	}
	withdraw, err := transactionrecord.UnpackWithdraw(withdrawTx.Memo())
	if nil != err || withdraw.Coin != coin {
		return nil, errInvalidWithdrawCoin
	}
	return withdraw, nil
}

// the binding a withdraw draws on
func (g *Gateways) resolveSignerBind(withdraw *transactionrecord.Withdraw, coin string) (*transactionrecord.Bind, error) {
	bindTx, ok := g.getTransaction(withdraw.BindTxId)
	if !ok || 0 == len(bindTx.Outputs) {
		return nil, errBindNotFound
	}
	bind, err := transactionrecord.UnpackBind(bindTx.Memo())
	if nil != err || bind.Coin != coin || bind.TokenId != withdraw.TokenId {
		return nil, errInvalidBindForSigner
	}
	return bind, nil
}

// the withdraw, signature count and binding behind the last signing
// stage, which is either a withdraw or a partial signature
func (g *Gateways) resolveLast(lastTxId merkle.Digest, coin string) (merkle.Digest, uint8, *transactionrecord.Bind, error) {
	lastTx, ok := g.getTransaction(lastTxId)
	if !ok || 0 == len(lastTx.Outputs) {
		return merkle.Digest{}, 0, nil, errLastTxId
	}

	withdrawTxId := lastTxId
	k := uint8(0)
	switch transactionrecord.PeekOp(lastTx.Memo()) {
	case transactionrecord.OpWithdraw:
	case transactionrecord.OpPartialSign:
		partial, err := transactionrecord.UnpackPartialSign(lastTx.Memo())
		if nil != err || partial.Coin != coin {
			return merkle.Digest{}, 0, nil, errLastTxId
		}
		withdrawTxId = partial.WithdrawTxId
		k = partial.K
	default:
		return merkle.Digest{}, 0, nil, errLastTxId
	}

	withdraw, err := g.resolveWithdraw(withdrawTxId, coin)
	if nil != err {
		return merkle.Digest{}, 0, nil, err
	}
	bind, err := g.resolveSignerBind(withdraw, coin)
	if nil != err {
		return merkle.Digest{}, 0, nil, err
	}
	return withdrawTxId, k, bind, nil
}

// one normal input then the marker of the last stage
func (g *Gateways) signingStage(mypk account.PublicKey, lastTxId merkle.Digest) (*utxo.Transaction, error) {
	tx := &utxo.Transaction{}
	if 0 >= g.funder.AddNormalInputs(tx, mypk, g.fee, stageNormalInputs) {
		return nil, errInsufficientNormal
	}
	tx.Inputs = append(tx.Inputs, utxo.Input{
		Previous: utxo.Outpoint{TxId: lastTxId, Index: 0},
		Pooled:   true,
	})
	tx.Outputs = append(tx.Outputs, utxo.PoolOutput(constants.EvalGateways, g.fee, g.gatewaysPub))
	return tx, nil
}

// true if an unspent withdraw or partial signature marker of the
// binding is still waiting to be completed
func (g *Gateways) withdrawPending(bindTxId merkle.Digest, bind *transactionrecord.Bind) bool {
	for _, entry := range g.chain.Unspents(g.MarkerAddress()) {
		if 0 != entry.Index || g.fee != entry.Value {
			continue
		}
		tx, ok := g.chain.GetTransaction(entry.TxId)
		if !ok || 0 == len(tx.Outputs) {
			continue
		}
		withdrawTx := tx
		switch transactionrecord.PeekOp(tx.Memo()) {
		case transactionrecord.OpWithdraw:
		case transactionrecord.OpPartialSign:
			partial, err := transactionrecord.UnpackPartialSign(tx.Memo())
			if nil != err {
				continue
			}
			withdrawTx, ok = g.getTransaction(partial.WithdrawTxId)
			if !ok || 0 == len(withdrawTx.Outputs) {
				continue
			}
		default:
			continue
		}
		withdraw, err := transactionrecord.UnpackWithdraw(withdrawTx.Memo())
		if nil == err && withdraw.Coin == bind.Coin && withdraw.TokenId == bind.TokenId && withdraw.BindTxId == bindTxId {
			g.log.Debugf("withdraw pending: %v", entry.TxId)
			return true
		}
	}
	return false
}

// pack the memo and complete the transaction
func (g *Gateways) finalize(tx *utxo.Transaction, mypk account.PublicKey, record transactionrecord.Record) (*utxo.Transaction, error) {
	memo, err := record.Pack()
	if nil != err {
		return nil, err
	}
	if err := g.funder.Finalize(tx, mypk, g.fee, memo); nil != err {
		return nil, err
	}
	g.log.Infof("built %s: %v", record.Op(), tx.TxId())
	return tx, nil
}

// as finalize, then run the validator over the result
func (g *Gateways) finalizeChecked(tx *utxo.Transaction, mypk account.PublicKey, record transactionrecord.Record) (*utxo.Transaction, error) {
	tx, err := g.finalize(tx, mypk, record)
	if nil != err {
		return nil, err
	}
	if err := g.Validate(tx); nil != err {
		return nil, err
	}
	return tx, nil
}
