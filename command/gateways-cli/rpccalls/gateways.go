// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	contract "github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways"
)

// the stage builders all return an unsigned transaction
func (client *Client) build(method string, arguments interface{}) (*gateways.TransactionReply, error) {
	var reply gateways.TransactionReply
	if err := client.call(method, arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Bind - create a binding
func (client *Client) Bind(arguments *gateways.BindArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.Bind", arguments)
}

// Deposit - record an external deposit
func (client *Client) Deposit(arguments *gateways.DepositArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.Deposit", arguments)
}

// Claim - release tokens for a deposit
func (client *Client) Claim(arguments *gateways.ClaimArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.Claim", arguments)
}

// Withdraw - return tokens for an external payout
func (client *Client) Withdraw(arguments *gateways.WithdrawArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.Withdraw", arguments)
}

// PartialSign - add one signature to a withdraw payout
func (client *Client) PartialSign(arguments *gateways.SigningArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.PartialSign", arguments)
}

// CompleteSigning - publish the fully signed payout
func (client *Client) CompleteSigning(arguments *gateways.SigningArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.CompleteSigning", arguments)
}

// MarkDone - close a withdraw
func (client *Client) MarkDone(arguments *gateways.MarkDoneArguments) (*gateways.TransactionReply, error) {
	return client.build("Gateways.MarkDone", arguments)
}

// PendingDeposits - deposits not yet claimed
func (client *Client) PendingDeposits(arguments *gateways.QueueArguments) (*contract.PendingDeposits, error) {
	var reply contract.PendingDeposits
	if err := client.call("Gateways.PendingDeposits", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Pending - withdraws awaiting signatures
func (client *Client) Pending(arguments *gateways.QueueArguments) (*contract.PendingWithdraws, error) {
	var reply contract.PendingWithdraws
	if err := client.call("Gateways.Pending", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Processed - withdraws signed but not marked done
func (client *Client) Processed(arguments *gateways.QueueArguments) (*contract.ProcessedWithdraws, error) {
	var reply contract.ProcessedWithdraws
	if err := client.call("Gateways.Processed", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Info - one binding's state
func (client *Client) Info(bindTxId merkle.Digest) (*contract.Info, error) {
	var reply contract.Info
	if err := client.call("Gateways.Info", &gateways.InfoArguments{BindTxId: bindTxId}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// List - all binding ids
func (client *Client) List() (*gateways.ListReply, error) {
	var reply gateways.ListReply
	if err := client.call("Gateways.List", &gateways.ListArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Validate - check a signed transaction against the contract rules
func (client *Client) Validate(hex string) (*gateways.ValidateReply, error) {
	var reply gateways.ValidateReply
	if err := client.call("Gateways.Validate", &gateways.HexArguments{Hex: hex}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Submit - send a signed transaction to the pool
func (client *Client) Submit(hex string) (*gateways.SubmitReply, error) {
	var reply gateways.SubmitReply
	if err := client.call("Gateways.Submit", &gateways.HexArguments{Hex: hex}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
