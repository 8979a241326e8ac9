// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/gatewaysd/account"
)

type metadata struct {
	connect string
	pubKey  account.PublicKey
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2150"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "gateways-cli"
	app.Usage = "drive a gatewaysd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	bindFlag := cli.StringFlag{
		Name:  "bind, b",
		Value: "",
		Usage: "*bind transaction `TXID`",
	}
	coinFlag := cli.StringFlag{
		Name:  "coin, C",
		Value: "",
		Usage: "*external coin `SYMBOL`",
	}
	amountFlag := cli.StringFlag{
		Name:  "amount, a",
		Value: "",
		Usage: "*decimal coin amount `AMOUNT`",
	}
	hexFlag := cli.StringFlag{
		Name:  "hex, x",
		Value: "",
		Usage: "*transaction `HEX`",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: defaultConnect,
			Usage: " gatewaysd RPC `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "pubkey, k",
			Value: "",
			Usage: " caller public key `HEX` [node key]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "version",
			Usage:  "display gateways-cli version",
			Action: runVersion,
		},
		{
			Name:   "info",
			Usage:  "display gatewaysd status",
			Action: runNodeInfo,
		},
		{
			Name:   "list",
			Usage:  "list all bindings",
			Action: runList,
		},
		{
			Name:      "bindinfo",
			Usage:     "display one binding",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{bindFlag},
			Action:    runBindInfo,
		},
		{
			Name:      "bind",
			Usage:     "bind a token to an external coin",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				coinFlag,
				cli.StringFlag{
					Name:  "token, t",
					Value: "",
					Usage: "*token creation `TXID`",
				},
				cli.StringFlag{
					Name:  "supply, s",
					Value: "",
					Usage: "*total token supply `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "oracle, o",
					Value: "",
					Usage: "*oracle creation `TXID`",
				},
				cli.IntFlag{
					Name:  "required, M",
					Value: 1,
					Usage: " signatures required `M`",
				},
				cli.StringSliceFlag{
					Name:  "signer, S",
					Usage: "*signer public key `HEX`, repeat for each of N",
				},
			},
			Action: runBind,
		},
		{
			Name:      "deposit",
			Usage:     "record an external deposit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				bindFlag,
				coinFlag,
				amountFlag,
				cli.IntFlag{
					Name:  "height, H",
					Value: 0,
					Usage: "*external block `HEIGHT`",
				},
				cli.StringFlag{
					Name:  "cointxid, i",
					Value: "",
					Usage: "*external deposit `TXID`",
				},
				cli.IntFlag{
					Name:  "vout, n",
					Value: 0,
					Usage: " claim output `INDEX`",
				},
				cli.StringFlag{
					Name:  "deposithex, d",
					Value: "",
					Usage: "*external deposit transaction `HEX`",
				},
				cli.StringFlag{
					Name:  "proof, p",
					Value: "",
					Usage: "*merkle block proof `HEX`",
				},
				cli.StringFlag{
					Name:  "destination, D",
					Value: "",
					Usage: "*claim public key `HEX`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "claim",
			Usage:     "claim tokens for a deposit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				bindFlag,
				coinFlag,
				amountFlag,
				cli.StringFlag{
					Name:  "deposit, d",
					Value: "",
					Usage: "*deposit `TXID`",
				},
				cli.StringFlag{
					Name:  "destination, D",
					Value: "",
					Usage: "*token destination public key `HEX`",
				},
			},
			Action: runClaim,
		},
		{
			Name:      "withdraw",
			Usage:     "return tokens for an external payout",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				bindFlag,
				coinFlag,
				amountFlag,
				cli.StringFlag{
					Name:  "withdrawpub, w",
					Value: "",
					Usage: "*external payout public key `HEX`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:      "partialsign",
			Usage:     "add a signature to a withdraw payout",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				coinFlag,
				hexFlag,
				cli.StringFlag{
					Name:  "last, l",
					Value: "",
					Usage: "*withdraw or last partial sign `TXID`",
				},
			},
			Action: runPartialSign,
		},
		{
			Name:      "completesigning",
			Usage:     "publish the fully signed payout",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				coinFlag,
				hexFlag,
				cli.StringFlag{
					Name:  "last, l",
					Value: "",
					Usage: "*withdraw or last partial sign `TXID`",
				},
			},
			Action: runCompleteSigning,
		},
		{
			Name:      "markdone",
			Usage:     "close a completed withdraw",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				coinFlag,
				cli.StringFlag{
					Name:  "complete, l",
					Value: "",
					Usage: "*complete signing `TXID`",
				},
			},
			Action: runMarkDone,
		},
		{
			Name:      "pendingdeposits",
			Usage:     "list deposits not yet claimed",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{bindFlag, coinFlag},
			Action:    runPendingDeposits,
		},
		{
			Name:      "pending",
			Usage:     "list withdraws awaiting signatures",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{bindFlag, coinFlag},
			Action:    runPending,
		},
		{
			Name:      "processed",
			Usage:     "list signed withdraws not marked done",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{bindFlag, coinFlag},
			Action:    runProcessed,
		},
		{
			Name:      "validate",
			Usage:     "check a signed transaction against the contract",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{hexFlag},
			Action:    runValidate,
		},
		{
			Name:      "submit",
			Usage:     "send a signed transaction to the node",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{hexFlag},
			Action:    runSubmit,
		},
		{
			Name:      "decode",
			Usage:     "decode a transaction and its memo locally",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{hexFlag},
			Action:    runDecode,
		},
	}

	app.Before = func(c *cli.Context) error {
		pubKey, err := checkOptionalPubKey(c.GlobalString("pubkey"))
		if nil != err {
			return err
		}
		connect, err := checkConnect(c.GlobalString("connect"))
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			connect: connect,
			pubKey:  pubKey,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
