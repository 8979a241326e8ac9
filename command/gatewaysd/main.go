// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/background"
	"github.com/bitmark-inc/gatewaysd/block"
	"github.com/bitmark-inc/gatewaysd/chain"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/finality"
	"github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/ledger"
	"github.com/bitmark-inc/gatewaysd/mode"
	"github.com/bitmark-inc/gatewaysd/oracles"
	"github.com/bitmark-inc/gatewaysd/reservoir"
	"github.com/bitmark-inc/gatewaysd/rpc"
	"github.com/bitmark-inc/gatewaysd/rpc/server"
	"github.com/bitmark-inc/gatewaysd/storage"
	"github.com/bitmark-inc/gatewaysd/tokens"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// verbose copies log output to the console
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database.Name)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
		return
	}

	// start the reservoir (unconfirmed transaction pool)
	log.Info("initialise reservoir")
	err = reservoir.Initialise(theConfiguration.expiry, theConfiguration.Reservoir.Maximum)
	if nil != err {
		log.Criticalf("reservoir initialise error: %s", err)
		exitwithstatus.Message("reservoir initialise error: %s", err)
	}
	defer reservoir.Finalise()

	// the node produces its own blocks except on the live chain
	if chain.Live != theConfiguration.Chain {
		log.Info("initialise block")
		err = block.Initialise(&theConfiguration.Block)
		if nil != err {
			log.Criticalf("block initialise error: %s", err)
			exitwithstatus.Message("block initialise error: %s", err)
		}
		defer block.Finalise()
	}

	contract := newContract(theConfiguration)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, &server.Services{
		Contract: contract,
		Pool:     ledger.NewPool(),
		PubKey:   theConfiguration.pubKey,
		Status:   nodeStatus{contract: contract},
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// configuration changes are reported, not applied
	watcher, err := newConfigurationWatcher(configurationFile, logger.New("watcher"), nil)
	if nil != err {
		log.Warnf("configuration watcher error: %s", err)
	} else {
		watch := background.Start(background.Processes{watcher}, nil)
		defer watch.Stop()
	}

	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}

// wire the contract to storage and the reservoir
func newContract(configuration *Configuration) *gateways.Gateways {
	committed := ledger.NewCommitted()
	pool := ledger.NewPool()

	handles := gateways.Handles{
		Chain:    committed,
		Pool:     pool,
		Tokens:   tokens.NewChainLedger(committed, pool),
		Oracles:  oracles.NewChainReader(committed),
		Finality: finality.NewDepth(committed, configuration.Gateways.MinimumConfirmations),
		Funder:   ledger.NewFunder(committed, pool),
	}
	return gateways.New(
		logger.New("gateways"),
		handles,
		configuration.Gateways.TxFee,
		configuration.Gateways.MaximumBatonHops,
	)
}
