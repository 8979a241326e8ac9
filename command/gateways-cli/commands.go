// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewaysd/command/gateways-cli/rpccalls"
	"github.com/bitmark-inc/gatewaysd/rpc/gateways"
)

func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}

func runNodeInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetNodeInfo()
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List()
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runBindInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bindTxId, err := checkTxId(c.String("bind"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Info(bindTxId)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runBind(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return err
	}
	tokenId, err := checkTxId(c.String("token"))
	if nil != err {
		return err
	}
	supply, err := checkAmount(c.String("supply"))
	if nil != err {
		return err
	}
	oracleTxId, err := checkTxId(c.String("oracle"))
	if nil != err {
		return err
	}
	signers, required, err := checkSigners(c.StringSlice("signer"), c.Int("required"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Bind(&gateways.BindArguments{
		PubKey:      m.pubKey,
		Coin:        coin,
		TokenId:     tokenId,
		TotalSupply: supply,
		OracleTxId:  oracleTxId,
		M:           required,
		N:           uint8(len(signers)),
		PubKeys:     signers,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runDeposit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bindTxId, err := checkTxId(c.String("bind"))
	if nil != err {
		return err
	}
	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}
	coinTxId, err := checkTxId(c.String("cointxid"))
	if nil != err {
		return err
	}
	depositHex, err := checkHex(c.String("deposithex"))
	if nil != err {
		return err
	}
	proof, err := checkHex(c.String("proof"))
	if nil != err {
		return err
	}
	destPub, err := checkPubKey(c.String("destination"))
	if nil != err {
		return err
	}
	height := c.Int("height")
	if height <= 0 {
		return ErrInvalidHeight
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Deposit(&gateways.DepositArguments{
		PubKey:     m.pubKey,
		BindTxId:   bindTxId,
		Height:     int32(height),
		Coin:       coin,
		CoinTxId:   coinTxId,
		ClaimVout:  int32(c.Int("vout")),
		DepositHex: depositHex,
		Proof:      proof,
		DestPub:    destPub,
		Amount:     amount,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runClaim(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bindTxId, err := checkTxId(c.String("bind"))
	if nil != err {
		return err
	}
	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}
	depositTxId, err := checkTxId(c.String("deposit"))
	if nil != err {
		return err
	}
	destPub, err := checkPubKey(c.String("destination"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Claim(&gateways.ClaimArguments{
		PubKey:      m.pubKey,
		BindTxId:    bindTxId,
		Coin:        coin,
		DepositTxId: depositTxId,
		DestPub:     destPub,
		Amount:      amount,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runWithdraw(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bindTxId, err := checkTxId(c.String("bind"))
	if nil != err {
		return err
	}
	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}
	withdrawPub, err := checkPubKey(c.String("withdrawpub"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Withdraw(&gateways.WithdrawArguments{
		PubKey:      m.pubKey,
		BindTxId:    bindTxId,
		Coin:        coin,
		WithdrawPub: withdrawPub,
		Amount:      amount,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

// partial and complete signing take the same arguments
func signingArguments(c *cli.Context, m *metadata) (*gateways.SigningArguments, error) {
	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return nil, err
	}
	lastTxId, err := checkTxId(c.String("last"))
	if nil != err {
		return nil, err
	}
	// external transactions are opaque, only require hex
	h, err := checkHex(c.String("hex"))
	if nil != err {
		return nil, err
	}
	return &gateways.SigningArguments{
		PubKey:   m.pubKey,
		LastTxId: lastTxId,
		Coin:     coin,
		Hex:      h,
	}, nil
}

func runPartialSign(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := signingArguments(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.PartialSign(arguments)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runCompleteSigning(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := signingArguments(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CompleteSigning(arguments)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runMarkDone(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return err
	}
	completeTxId, err := checkTxId(c.String("complete"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.MarkDone(&gateways.MarkDoneArguments{
		PubKey:       m.pubKey,
		CompleteTxId: completeTxId,
		Coin:         coin,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func queueArguments(c *cli.Context, m *metadata) (*gateways.QueueArguments, error) {
	bindTxId, err := checkTxId(c.String("bind"))
	if nil != err {
		return nil, err
	}
	coin, err := checkCoin(c.String("coin"))
	if nil != err {
		return nil, err
	}
	return &gateways.QueueArguments{
		PubKey:   m.pubKey,
		BindTxId: bindTxId,
		Coin:     coin,
	}, nil
}

func runPendingDeposits(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := queueArguments(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.PendingDeposits(arguments)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runPending(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := queueArguments(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Pending(arguments)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runProcessed(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := queueArguments(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Processed(arguments)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runValidate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	h, err := checkHex(c.String("hex"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Validate(h)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runSubmit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	h, err := checkHex(c.String("hex"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Submit(h)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}
