// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"fmt"

	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/currency/satoshi"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// which input positions may spend pooled outputs
type inputRule func(index int) bool

func fromIndex(first int) inputRule {
	return func(index int) bool { return index >= first }
}

func atIndex(only int) inputRule {
	return func(index int) bool { return index == only }
}

// Governs - true if tx spends an output that only this contract
// may release: a gateways marker or tokens in gateways custody
func (g *Gateways) Governs(tx *utxo.Transaction) bool {
	custody := g.CustodyAddress()
	for _, in := range tx.Inputs {
		if !in.Pooled {
			continue
		}
		prev, ok := g.getTransaction(in.Previous.TxId)
		if !ok || int(in.Previous.Index) >= len(prev.Outputs) {
			continue
		}
		out := prev.Outputs[in.Previous.Index]
		if constants.EvalGateways == out.EvalCode || custody == out.Address {
			return true
		}
	}
	return false
}

// Validate - accept or reject a transaction spending contract outputs
//
// returns nil to accept; a rejection never changes any state
func (g *Gateways) Validate(tx *utxo.Transaction) error {
	if 0 == len(tx.Outputs) {
		return fault.NoVouts
	}

	var rule inputRule
	var err error

	switch transactionrecord.PeekOp(tx.Memo()) {
	case transactionrecord.OpBind:
		err = errUnexpectedBind
	case transactionrecord.OpDeposit:
		err = errUnexpectedDeposit
	case transactionrecord.OpWithdraw:
		err = errUnexpectedWithdraw
	case transactionrecord.OpClaim:
		err = g.validateClaim(tx)
		rule = fromIndex(1)
	case transactionrecord.OpPartialSign:
		err = g.validatePartialSign(tx)
		rule = atIndex(1)
	case transactionrecord.OpCompleteSigning:
		err = g.validateCompleteSigning(tx)
		rule = atIndex(1)
	case transactionrecord.OpMarkDone:
		err = g.validateMarkDone(tx)
		rule = atIndex(0)
	default:
	}

	if nil == err {
		err = exclusion(tx, rule)
	}
	if nil != err {
		g.log.Debugf("reject: %v  reason: %s", tx.TxId(), err)
		return err
	}
	g.log.Infof("accept: %v", tx.TxId())
	return nil
}

// no pooled input outside the positions the operation allows and no
// pooled output belonging to another contract
func exclusion(tx *utxo.Transaction, rule inputRule) error {
	for i, in := range tx.Inputs {
		if in.Pooled && (nil == rule || !rule(i)) {
			return errInvalidVin
		}
	}
	for _, out := range tx.Outputs {
		if out.Pooled && constants.EvalGateways != out.EvalCode && constants.EvalTokens != out.EvalCode {
			return errInvalidVout
		}
	}
	return nil
}

func (g *Gateways) validateClaim(tx *utxo.Transaction) error {
	claim, err := transactionrecord.UnpackClaim(tx.Memo())
	if nil != err {
		return errClaimRecord
	}
	if !normalInput(tx, 0) {
		return errNormalInput(0, stageClaim)
	}
	if !pooledInput(tx, 1) {
		return errPooledInput(1, stageClaim)
	}
	if !pooledInput(tx, 2) {
		return errPooledInput(2, stageClaim)
	}
	if !pooledOutput(tx, 0) {
		return errPooledOutput(0, stageClaim)
	}
	if !spendsTicket(tx, claim.DepositTxId) {
		return errClaimTicket
	}

	bind, err := g.checkBind(claim.BindTxId, claim.Coin, claim.TokenId)
	if nil != err {
		return err
	}
	if 0 == bind.N || bind.N > constants.MaximumSigners || bind.M > bind.N {
		return fault.InvalidMofN
	}
	if len(bind.PubKeys) != int(bind.N) {
		return fault.InvalidError(fmt.Sprintf("not enough pubkeys(%d) for N.%d gatewaysbind ", len(bind.PubKeys), bind.N))
	}
	if fullSupply := g.tokens.FullSupply(bind.TokenId); fullSupply != bind.TotalSupply {
		return fault.InvalidError(fmt.Sprintf("Gateway bind.%s (%v) globaladdr.%s totalsupply %s != fullsupply %s",
			bind.Coin, bind.TokenId, g.MarkerAddress(), coins(bind.TotalSupply), coins(fullSupply)))
	}
	if err := g.checkOracle(bind); nil != err {
		return err
	}
	if !g.finality.IsFinalized(claim.BindTxId) {
		return fault.BindNotFinal
	}

	depositTx, ok := g.getTransaction(claim.DepositTxId)
	if !ok {
		return errDepositTxId
	}
	deposit, err := transactionrecord.UnpackDeposit(depositTx.Memo())
	if nil != err {
		return errDepositRecord
	}
	if deposit.Coin != claim.Coin {
		return errDepositCoin
	}
	if deposit.BindTxId != claim.BindTxId {
		return errDepositBindTxId
	}
	if deposit.Amount > bind.TotalSupply {
		return errDepositOverSupply
	}
	if !g.finality.IsFinalized(claim.DepositTxId) {
		return fault.DepositNotFinal
	}
	if claim.Amount != deposit.Amount {
		return errClaimAmount
	}
	if tx.Outputs[0].Value != claim.Amount {
		return errClaimValue
	}
	if !claim.DestPub.Equal(deposit.DestPub) {
		return errClaimDestination
	}

	tally, err := g.Tally(deposit.Height, bind.OracleTxId, bind.PubKeys)
	if nil != err {
		return fault.ProofError(fmt.Sprintf("couldnt find merkleroot for ht.%d %s oracle.%v m.%d vs n.%d",
			deposit.Height, deposit.Coin, bind.OracleTxId, tally.Support, bind.N))
	}
	value := g.Verify(bind.DepositAddress, bind.OracleTxId, deposit.ClaimVout, deposit.Coin, deposit.CoinTxId,
		deposit.DepositHex, deposit.Proof, tally.MerkleRoot, claim.DestPub)
	if value != claim.Amount {
		return fault.DepositNotVerified
	}
	return nil
}

func (g *Gateways) validatePartialSign(tx *utxo.Transaction) error {
	partial, err := transactionrecord.UnpackPartialSign(tx.Memo())
	if nil != err {
		return errPartialRecord
	}
	bind, err := g.checkSigning(tx, stagePartialSign, partial.WithdrawTxId, partial.Coin)
	if nil != err {
		return err
	}
	if partial.K > bind.M {
		return fault.InvalidNumberOfSigns
	}
	return g.checkIncrement(tx, partial.WithdrawTxId, partial.K)
}

func (g *Gateways) validateCompleteSigning(tx *utxo.Transaction) error {
	complete, err := transactionrecord.UnpackCompleteSigning(tx.Memo())
	if nil != err {
		return errCompleteRecord
	}
	bind, err := g.checkSigning(tx, stageCompleteSigning, complete.WithdrawTxId, complete.Coin)
	if nil != err {
		return err
	}
	if complete.K != bind.M {
		return fault.InvalidNumberOfSigns
	}
	return g.checkIncrement(tx, complete.WithdrawTxId, complete.K)
}

func (g *Gateways) validateMarkDone(tx *utxo.Transaction) error {
	done, err := transactionrecord.UnpackMarkDone(tx.Memo())
	if nil != err {
		return errMarkDoneRecord
	}
	if !pooledInput(tx, 0) {
		return errPooledInput(0, stageMarkDone)
	}

	completeTx, ok := g.getTransaction(done.CompleteTxId)
	if !ok {
		return errCompleteTxId
	}
	complete, err := transactionrecord.UnpackCompleteSigning(completeTx.Memo())
	if nil != err {
		return errCompleteRecord
	}
	if complete.WithdrawTxId != done.WithdrawTxId {
		return errCompleteWithdraw
	}
	if err := checkShape(completeTx, stageCompleteSigning); nil != err {
		return err
	}

	_, bind, err := g.checkWithdraw(complete.WithdrawTxId, done.Coin)
	if nil != err {
		return err
	}
	if complete.K != bind.M {
		return fault.InvalidNumberOfSigns
	}
	return nil
}

// shape of a signing stage then the withdraw and bind it refers to
func (g *Gateways) checkSigning(tx *utxo.Transaction, stage string, withdrawTxId merkle.Digest, coin string) (*transactionrecord.Bind, error) {
	if err := checkShape(tx, stage); nil != err {
		return nil, err
	}
	_, bind, err := g.checkWithdraw(withdrawTxId, coin)
	return bind, err
}

// normal vin 0, pooled vin 1 and pooled vout 0
func checkShape(tx *utxo.Transaction, stage string) error {
	if !normalInput(tx, 0) {
		return errNormalInput(0, stage)
	}
	if !pooledInput(tx, 1) {
		return errPooledInput(1, stage)
	}
	if !pooledOutput(tx, 0) {
		return errPooledOutput(0, stage)
	}
	return nil
}

// a finalized withdraw of a finalized binding of the coin
func (g *Gateways) checkWithdraw(withdrawTxId merkle.Digest, coin string) (*transactionrecord.Withdraw, *transactionrecord.Bind, error) {
	withdrawTx, ok := g.getTransaction(withdrawTxId)
	if !ok {
		return nil, nil, errWithdrawTxId
	}
	withdraw, err := transactionrecord.UnpackWithdraw(withdrawTx.Memo())
	if nil != err {
		return nil, nil, errWithdrawRecord
	}
	if withdraw.Coin != coin {
		return nil, nil, errBindCoin
	}
	if err := checkShape(withdrawTx, stageWithdraw); nil != err {
		return nil, nil, err
	}
	if !pooledOutput(withdrawTx, 1) {
		return nil, nil, errPooledOutput(1, stageWithdraw)
	}
	if withdrawTx.Outputs[1].Value != withdraw.Amount {
		return nil, nil, errWithdrawValue
	}
	if !g.finality.IsFinalized(withdrawTxId) {
		return nil, nil, fault.WithdrawNotFinal
	}

	bind, err := g.checkBind(withdraw.BindTxId, coin, withdraw.TokenId)
	if nil != err {
		return nil, nil, err
	}
	if !g.finality.IsFinalized(withdraw.BindTxId) {
		return nil, nil, fault.BindNotFinal
	}
	return withdraw, bind, nil
}

// a binding record of the coin and token
func (g *Gateways) checkBind(bindTxId merkle.Digest, coin string, tokenId merkle.Digest) (*transactionrecord.Bind, error) {
	bindTx, ok := g.getTransaction(bindTxId)
	if !ok {
		return nil, errBindTxId
	}
	bind, err := transactionrecord.UnpackBind(bindTx.Memo())
	if nil != err {
		return nil, errBindRecord
	}
	if bind.Coin != coin {
		return nil, errBindCoin
	}
	if bind.TokenId != tokenId {
		return nil, errBindTokenId
	}
	return bind, nil
}

// the binding's oracle exists and publishes merkle roots
func (g *Gateways) checkOracle(bind *transactionrecord.Bind) error {
	create, err := g.oracles.Create(bind.OracleTxId)
	if fault.OracleNotFound == err {
		return fault.InvalidError(fmt.Sprintf("cant find oracletxid %v", bind.OracleTxId))
	}
	if fault.NotOracleRecord == err {
		return fault.InvalidError(fmt.Sprintf("%s != %s", fault.OracleNameMismatch, bind.Coin))
	}
	if nil != err {
		return fault.InvalidError(fmt.Sprintf("invalid oracletxid %v: %s", bind.OracleTxId, err))
	}
	if oracles.MerkleRootFormat != create.Format {
		return fault.InvalidError(fmt.Sprintf("illegal format %s != %s", create.Format, oracles.MerkleRootFormat))
	}
	return nil
}

// the pooled input 1 spends the previous signing stage: either the
// withdraw itself, making this the first signature, or a partial
// signature of the same withdraw with a count one lower
func (g *Gateways) checkIncrement(tx *utxo.Transaction, withdrawTxId merkle.Digest, k uint8) error {
	previous := tx.Inputs[1].Previous
	if 0 != previous.Index {
		return fault.InvalidNumberOfSigns
	}
	if previous.TxId == withdrawTxId {
		if 1 != k {
			return fault.InvalidNumberOfSigns
		}
		return nil
	}
	prevTx, ok := g.getTransaction(previous.TxId)
	if !ok {
		return fault.InvalidNumberOfSigns
	}
	partial, err := transactionrecord.UnpackPartialSign(prevTx.Memo())
	if nil != err || partial.WithdrawTxId != withdrawTxId || partial.K+1 != k {
		return fault.InvalidNumberOfSigns
	}
	return nil
}

// ExactAmounts - gateways marker value in equals value out plus fee
//
// inputs must be committed
func (g *Gateways) ExactAmounts(tx *utxo.Transaction) error {
	marker := g.MarkerAddress()
	inputs := int64(0)
	for _, in := range tx.Inputs {
		if !in.Pooled {
			continue
		}
		prev, ok := g.chain.GetTransaction(in.Previous.TxId)
		if !ok {
			if _, pending := g.getTransaction(in.Previous.TxId); pending {
				return errUnconfirmedVin
			}
			return errMissingInput
		}
		if int(in.Previous.Index) >= len(prev.Outputs) {
			return errMissingInput
		}
		out := prev.Outputs[in.Previous.Index]
		if out.Pooled && marker == out.Address {
			inputs += out.Value
		}
	}
	outputs := int64(0)
	for _, out := range tx.Outputs {
		if out.Pooled && marker == out.Address {
			outputs += out.Value
		}
	}
	if inputs != outputs+g.fee {
		g.log.Debugf("inputs: %d vs outputs: %d", inputs, outputs)
		return errExactAmounts
	}
	return nil
}

// a pooled input after vin.1 spends the deposit ticket at vout 0
func spendsTicket(tx *utxo.Transaction, depositTxId merkle.Digest) bool {
	ticket := utxo.Outpoint{TxId: depositTxId, Index: 0}
	for i := 2; i < len(tx.Inputs); i += 1 {
		if tx.Inputs[i].Pooled && ticket == tx.Inputs[i].Previous {
			return true
		}
	}
	return false
}

func normalInput(tx *utxo.Transaction, index int) bool {
	return index < len(tx.Inputs) && !tx.Inputs[index].Pooled
}

func pooledInput(tx *utxo.Transaction, index int) bool {
	return index < len(tx.Inputs) && tx.Inputs[index].Pooled
}

func pooledOutput(tx *utxo.Transaction, index int) bool {
	return index < len(tx.Outputs) && tx.Outputs[index].Pooled && !tx.Outputs[index].IsData()
}

// amount as a decimal coin value
func coins(amount int64) string {
	return satoshi.Format(amount)
}
