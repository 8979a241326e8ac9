// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/rpc/ratelimit"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

const (
	rateLimitGateways = 200
	rateBurstGateways = 100
)

// Contract - the gateways operations served over RPC
type Contract interface {
	Bind(account.PublicKey, *gateways.BindArguments) (*utxo.Transaction, error)
	Deposit(account.PublicKey, *gateways.DepositArguments) (*utxo.Transaction, error)
	Claim(account.PublicKey, merkle.Digest, string, merkle.Digest, account.PublicKey, int64) (*utxo.Transaction, error)
	Withdraw(account.PublicKey, merkle.Digest, string, account.PublicKey, int64) (*utxo.Transaction, error)
	PartialSign(account.PublicKey, merkle.Digest, string, string) (*utxo.Transaction, error)
	CompleteSigning(account.PublicKey, merkle.Digest, string, string) (*utxo.Transaction, error)
	MarkDone(account.PublicKey, merkle.Digest, string) (*utxo.Transaction, error)
	PendingDeposits(account.PublicKey, merkle.Digest, string) (*gateways.PendingDeposits, error)
	PendingWithdraws(account.PublicKey, merkle.Digest, string) (*gateways.PendingWithdraws, error)
	ProcessedWithdraws(account.PublicKey, merkle.Digest, string) (*gateways.ProcessedWithdraws, error)
	Info(merkle.Digest) (*gateways.Info, error)
	List() []merkle.Digest
	Governs(*utxo.Transaction) bool
	Validate(*utxo.Transaction) error
}

// Pool - where submitted transactions wait for a block
type Pool interface {
	Store(*utxo.Transaction) (merkle.Digest, bool, error)
}

// Gateways - type for RPC calls
type Gateways struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	contract Contract
	pool     Pool
	pubKey   account.PublicKey
}

// New - create the RPC service
//
// pubKey is used for calls that do not name a key, it may be nil
func New(log *logger.L, contract Contract, pool Pool, pubKey account.PublicKey) *Gateways {
	return &Gateways{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitGateways, rateBurstGateways),
		contract: contract,
		pool:     pool,
		pubKey:   pubKey,
	}
}

// TransactionReply - an unsigned host transaction
type TransactionReply struct {
	Hex  string        `json:"hex"`
	TxId merkle.Digest `json:"txId"`
}

// ---

// BindArguments - arguments for Bind
type BindArguments struct {
	PubKey      account.PublicKey   `json:"pubkey"`
	Coin        string              `json:"coin"`
	TokenId     merkle.Digest       `json:"tokenid"`
	TotalSupply int64               `json:"totalsupply,string"`
	OracleTxId  merkle.Digest       `json:"oracletxid"`
	M           uint8               `json:"M"`
	N           uint8               `json:"N"`
	PubKeys     []account.PublicKey `json:"pubkeys"`
}

// Bind - create a binding of a token to an external coin
func (g *Gateways) Bind(arguments *BindArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	if "" == arguments.Coin {
		return fault.MissingParameters
	}

	g.Log.Infof("bind: coin: %s  token: %v  M.%d N.%d", arguments.Coin, arguments.TokenId, arguments.M, arguments.N)
	tx, err := g.contract.Bind(mypk, &gateways.BindArguments{
		Coin:        arguments.Coin,
		TokenId:     arguments.TokenId,
		TotalSupply: arguments.TotalSupply,
		OracleTxId:  arguments.OracleTxId,
		M:           arguments.M,
		N:           arguments.N,
		PubKeys:     arguments.PubKeys,
	})
	return fill(reply, tx, err)
}

// ---

// DepositArguments - arguments for Deposit
type DepositArguments struct {
	PubKey     account.PublicKey `json:"pubkey"`
	BindTxId   merkle.Digest     `json:"bindtxid"`
	Height     int32             `json:"height"`
	Coin       string            `json:"coin"`
	CoinTxId   merkle.Digest     `json:"cointxid"`
	ClaimVout  int32             `json:"claimvout"`
	DepositHex string            `json:"deposithex"`
	Proof      string            `json:"proof"`
	DestPub    account.PublicKey `json:"destpub"`
	Amount     int64             `json:"amount,string"`
}

// Deposit - record a proven external payment
func (g *Gateways) Deposit(arguments *DepositArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	proof, err := hex.DecodeString(arguments.Proof)
	if nil != err || 0 == len(proof) {
		return fault.InvalidHexString
	}
	if 0 >= arguments.Amount {
		return fault.InvalidAmount
	}

	g.Log.Infof("deposit: coin: %s  cointxid: %v  height: %d", arguments.Coin, arguments.CoinTxId, arguments.Height)
	tx, err := g.contract.Deposit(mypk, &gateways.DepositArguments{
		BindTxId:   arguments.BindTxId,
		Height:     arguments.Height,
		Coin:       arguments.Coin,
		CoinTxId:   arguments.CoinTxId,
		ClaimVout:  arguments.ClaimVout,
		DepositHex: arguments.DepositHex,
		Proof:      proof,
		DestPub:    arguments.DestPub,
		Amount:     arguments.Amount,
	})
	return fill(reply, tx, err)
}

// ---

// ClaimArguments - arguments for Claim
type ClaimArguments struct {
	PubKey      account.PublicKey `json:"pubkey"`
	BindTxId    merkle.Digest     `json:"bindtxid"`
	Coin        string            `json:"coin"`
	DepositTxId merkle.Digest     `json:"deposittxid"`
	DestPub     account.PublicKey `json:"destpub"`
	Amount      int64             `json:"amount,string"`
}

// Claim - convert a deposit ticket into tokens
func (g *Gateways) Claim(arguments *ClaimArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	tx, err := g.contract.Claim(mypk, arguments.BindTxId, arguments.Coin, arguments.DepositTxId, arguments.DestPub, arguments.Amount)
	return fill(reply, tx, err)
}

// ---

// WithdrawArguments - arguments for Withdraw
type WithdrawArguments struct {
	PubKey      account.PublicKey `json:"pubkey"`
	BindTxId    merkle.Digest     `json:"bindtxid"`
	Coin        string            `json:"coin"`
	WithdrawPub account.PublicKey `json:"withdrawpub"`
	Amount      int64             `json:"amount,string"`
}

// Withdraw - return tokens to custody for an external payment
func (g *Gateways) Withdraw(arguments *WithdrawArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	if 0 >= arguments.Amount {
		return fault.InvalidAmount
	}
	tx, err := g.contract.Withdraw(mypk, arguments.BindTxId, arguments.Coin, arguments.WithdrawPub, arguments.Amount)
	return fill(reply, tx, err)
}

// ---

// SigningArguments - arguments for PartialSign and CompleteSigning
type SigningArguments struct {
	PubKey   account.PublicKey `json:"pubkey"`
	LastTxId merkle.Digest     `json:"txid"`
	Coin     string            `json:"coin"`
	Hex      string            `json:"hex"`
}

// PartialSign - add a signature to a withdraw
func (g *Gateways) PartialSign(arguments *SigningArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	tx, err := g.contract.PartialSign(mypk, arguments.LastTxId, arguments.Coin, arguments.Hex)
	return fill(reply, tx, err)
}

// CompleteSigning - publish the fully signed external transaction
func (g *Gateways) CompleteSigning(arguments *SigningArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	tx, err := g.contract.CompleteSigning(mypk, arguments.LastTxId, arguments.Coin, arguments.Hex)
	return fill(reply, tx, err)
}

// ---

// MarkDoneArguments - arguments for MarkDone
type MarkDoneArguments struct {
	PubKey       account.PublicKey `json:"pubkey"`
	CompleteTxId merkle.Digest     `json:"completetxid"`
	Coin         string            `json:"coin"`
}

// MarkDone - close a completed withdraw
func (g *Gateways) MarkDone(arguments *MarkDoneArguments, reply *TransactionReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	tx, err := g.contract.MarkDone(mypk, arguments.CompleteTxId, arguments.Coin)
	return fill(reply, tx, err)
}

// ---

// QueueArguments - arguments for the queue views of a binding
type QueueArguments struct {
	PubKey   account.PublicKey `json:"pubkey"`
	BindTxId merkle.Digest     `json:"bindtxid"`
	Coin     string            `json:"coin"`
}

// PendingDeposits - deposits not yet claimed
func (g *Gateways) PendingDeposits(arguments *QueueArguments, reply *gateways.PendingDeposits) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	result, err := g.contract.PendingDeposits(mypk, arguments.BindTxId, arguments.Coin)
	if nil != err {
		return err
	}
	*reply = *result
	return nil
}

// Pending - withdraws waiting for signatures
func (g *Gateways) Pending(arguments *QueueArguments, reply *gateways.PendingWithdraws) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	result, err := g.contract.PendingWithdraws(mypk, arguments.BindTxId, arguments.Coin)
	if nil != err {
		return err
	}
	*reply = *result
	return nil
}

// Processed - withdraws signed but not marked done
func (g *Gateways) Processed(arguments *QueueArguments, reply *gateways.ProcessedWithdraws) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	mypk, err := g.caller(arguments.PubKey)
	if nil != err {
		return err
	}
	result, err := g.contract.ProcessedWithdraws(mypk, arguments.BindTxId, arguments.Coin)
	if nil != err {
		return err
	}
	*reply = *result
	return nil
}

// ---

// InfoArguments - arguments for Info
type InfoArguments struct {
	BindTxId merkle.Digest `json:"bindtxid"`
}

// Info - summary of a binding
func (g *Gateways) Info(arguments *InfoArguments, reply *gateways.Info) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	result, err := g.contract.Info(arguments.BindTxId)
	if nil != err {
		return err
	}
	*reply = *result
	return nil
}

// ListArguments - empty arguments for List
type ListArguments struct{}

// ListReply - all bindings
type ListReply struct {
	Bindings []merkle.Digest `json:"bindings"`
}

// List - txids of every binding
func (g *Gateways) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	reply.Bindings = g.contract.List()
	return nil
}

// ---

// HexArguments - a packed host transaction
type HexArguments struct {
	Hex string `json:"hex"`
}

// ValidateReply - verdict of the validator
type ValidateReply struct {
	TxId     merkle.Digest `json:"txId"`
	Governed bool          `json:"governed"`
	Valid    bool          `json:"valid"`
	Reason   string        `json:"reason,omitempty"`
}

// Validate - run the validator over a transaction without storing it
func (g *Gateways) Validate(arguments *HexArguments, reply *ValidateReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	tx, err := utxo.TransactionFromHex(arguments.Hex)
	if nil != err {
		return err
	}

	reply.TxId = tx.TxId()
	reply.Governed = g.contract.Governs(tx)
	reply.Valid = true
	if err := g.contract.Validate(tx); nil != err {
		reply.Valid = false
		reply.Reason = err.Error()
	}
	return nil
}

// SubmitReply - result of Submit
type SubmitReply struct {
	TxId      merkle.Digest `json:"txId"`
	Duplicate bool          `json:"duplicate"`
}

// Submit - validate a transaction then add it to the unconfirmed pool
//
// a transaction that spends no contract output skips the validator
func (g *Gateways) Submit(arguments *HexArguments, reply *SubmitReply) error {
	if err := ratelimit.Limit(g.Limiter); nil != err {
		return err
	}
	tx, err := utxo.TransactionFromHex(arguments.Hex)
	if nil != err {
		return err
	}
	if g.contract.Governs(tx) {
		if err := g.contract.Validate(tx); nil != err {
			g.Log.Infof("submit rejected: %v  reason: %s", tx.TxId(), err)
			return err
		}
	}
	txId, duplicate, err := g.pool.Store(tx)
	if nil != err {
		return err
	}
	reply.TxId = txId
	reply.Duplicate = duplicate
	return nil
}

// the key a call acts for
func (g *Gateways) caller(pk account.PublicKey) (account.PublicKey, error) {
	if 0 != len(pk) {
		if !pk.IsValid() {
			return nil, fault.InvalidPublicKey
		}
		return pk, nil
	}
	if 0 == len(g.pubKey) {
		return nil, fault.MissingParameters
	}
	return g.pubKey, nil
}

func fill(reply *TransactionReply, tx *utxo.Transaction, err error) error {
	if nil != err {
		return err
	}
	reply.Hex = tx.Pack().String()
	reply.TxId = tx.TxId()
	return nil
}
