// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/currency"
	"github.com/bitmark-inc/gatewaysd/merkle"
)

// Op - operation code, the second byte of every gateways memo
type Op byte

// enumerate the possible record types
const (
	// null: not a gateways record
	OpNone            = Op(0)
	OpBind            = Op('B')
	OpDeposit         = Op('D')
	OpClaim           = Op('C')
	OpWithdraw        = Op('W')
	OpPartialSign     = Op('P')
	OpCompleteSigning = Op('S')
	OpMarkDone        = Op('M')
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic gateways memo
type Record interface {
	Op() Op
	Pack() (Packed, error)
}

// byte sizes for various fields
const (
	minimumRecordLength = 3
	maxCoinLength       = 64
	maxKeyLength        = account.UncompressedLength
	maxKeyCount         = 255
	maxHexLength        = 1 << 20
	maxProofLength      = 1 << 20
)

// Bind - ties a token to an external coin, an oracle and a signer set
type Bind struct {
	TokenId        merkle.Digest       `json:"tokenId"`
	Coin           string              `json:"coin"`
	TotalSupply    int64               `json:"totalSupply"`
	OracleTxId     merkle.Digest       `json:"oracleTxId"`
	M              uint8               `json:"M"`
	N              uint8               `json:"N"`
	PubKeys        []account.PublicKey `json:"pubkeys"`
	Params         currency.Params     `json:"params"`
	DepositAddress string              `json:"depositAddress"` // derived, not packed
}

// Deposit - claim ticket for an external payment to the deposit address
type Deposit struct {
	Coin       string              `json:"coin"`
	BindTxId   merkle.Digest       `json:"bindTxId"`
	Publishers []account.PublicKey `json:"publishers"`
	TxIds      []merkle.Digest     `json:"txIds"`
	Height     int32               `json:"height"`
	CoinTxId   merkle.Digest       `json:"coinTxId"`
	ClaimVout  int32               `json:"claimVout"`
	DepositHex string              `json:"depositHex"`
	Proof      []byte              `json:"proof"`
	DestPub    account.PublicKey   `json:"destPub"`
	Amount     int64               `json:"amount"`
}

// Claim - spends a deposit ticket to release custody tokens
type Claim struct {
	TokenId     merkle.Digest     `json:"tokenId"`
	BindTxId    merkle.Digest     `json:"bindTxId"`
	Coin        string            `json:"coin"`
	DepositTxId merkle.Digest     `json:"depositTxId"`
	DestPub     account.PublicKey `json:"destPub"`
	Amount      int64             `json:"amount"`
}

// Withdraw - request to pay tokens out on the external chain
type Withdraw struct {
	TokenId     merkle.Digest     `json:"tokenId"`
	BindTxId    merkle.Digest     `json:"bindTxId"`
	Coin        string            `json:"coin"`
	WithdrawPub account.PublicKey `json:"withdrawPub"`
	Amount      int64             `json:"amount"`
}

// PartialSign - one signer's contribution, K is the running count
type PartialSign struct {
	WithdrawTxId merkle.Digest     `json:"withdrawTxId"`
	Coin         string            `json:"coin"`
	K            uint8             `json:"K"`
	SignerPub    account.PublicKey `json:"signerPub"`
	Hex          string            `json:"hex"`
}

// CompleteSigning - the fully signed external transaction
type CompleteSigning struct {
	WithdrawTxId merkle.Digest `json:"withdrawTxId"`
	Coin         string        `json:"coin"`
	K            uint8         `json:"K"`
	Hex          string        `json:"hex"`
}

// MarkDone - closes a withdraw
type MarkDone struct {
	WithdrawTxId merkle.Digest `json:"withdrawTxId"`
	Coin         string        `json:"coin"`
	CompleteTxId merkle.Digest `json:"completeTxId"`
}

// Op - record type
func (*Bind) Op() Op            { return OpBind }
func (*Deposit) Op() Op         { return OpDeposit }
func (*Claim) Op() Op           { return OpClaim }
func (*Withdraw) Op() Op        { return OpWithdraw }
func (*PartialSign) Op() Op     { return OpPartialSign }
func (*CompleteSigning) Op() Op { return OpCompleteSigning }
func (*MarkDone) Op() Op        { return OpMarkDone }

// String - name of an op code
func (op Op) String() string {
	switch op {
	case OpBind:
		return "bind"
	case OpDeposit:
		return "deposit"
	case OpClaim:
		return "claim"
	case OpWithdraw:
		return "withdraw"
	case OpPartialSign:
		return "partialsign"
	case OpCompleteSigning:
		return "completesigning"
	case OpMarkDone:
		return "markdone"
	default:
		return "none"
	}
}

// IsValid - one of the seven gateways operations
func (op Op) IsValid() bool {
	switch op {
	case OpBind, OpDeposit, OpClaim, OpWithdraw, OpPartialSign, OpCompleteSigning, OpMarkDone:
		return true
	default:
		return false
	}
}

// String - hex of the packed record
func (record Packed) String() string {
	return hex.EncodeToString(record)
}
