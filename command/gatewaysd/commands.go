// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/storage"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

// setup command handler
//
// commands that need neither the configuration nor the database
func processSetupCommand(program string, arguments []string) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "height", "tx", "block", "b":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  height                              - display the committed host chain height\n")
		fmt.Printf("\n")

		fmt.Printf("  tx TXID                             - dump a committed transaction and its memo as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  block NUMBER               (b)      - list the transaction ids of a committed block\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		if err := printJSON(os.Stdout, options); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	default: // unknown commands fall through to data command
		return false
	}

	return true
}

// data command handler
// storage is open so these commands can read the committed chain
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {
	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "height":
		fmt.Printf("%d\n", storage.Height())

	case "tx":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing txid argument")
		}
		txId, err := merkle.DigestFromHex(arguments[0])
		if nil != err {
			exitwithstatus.Message("txid: %q error: %s", arguments[0], err)
		}
		dump, err := dumpTransaction(txId)
		if nil != err {
			exitwithstatus.Message("txid: %v error: %s", txId, err)
		}
		if err := printJSON(os.Stdout, dump); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}
		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("block number: %q error: %s", arguments[0], err)
		}
		txIds, found := storage.BlockTransactions(n)
		if !found {
			exitwithstatus.Message("block: %d not found", n)
		}
		if err := printJSON(os.Stdout, txIds); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	default:
		log.Errorf("unrecognised command: %q", command)
		exitwithstatus.Message("unrecognised command: %q", command)
	}

	return true
}

// transactionDump - a committed transaction with its decoded memo
type transactionDump struct {
	TxId        merkle.Digest            `json:"txId"`
	Height      uint64                   `json:"height"`
	Transaction *utxo.Transaction        `json:"transaction"`
	Record      transactionrecord.Record `json:"record,omitempty"`
	RecordError string                   `json:"recordError,omitempty"`
}

func dumpTransaction(txId merkle.Digest) (*transactionDump, error) {
	tx, height, found := storage.GetTransaction(txId)
	if !found {
		return nil, fault.TransactionNotFound
	}
	dump := &transactionDump{
		TxId:        txId,
		Height:      height,
		Transaction: tx,
	}
	if memo := tx.Memo(); nil != memo {
		record, err := transactionrecord.Unpack(memo)
		if nil != err {
			dump.RecordError = err.Error()
		} else {
			dump.Record = record
		}
	}
	return dump, nil
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
