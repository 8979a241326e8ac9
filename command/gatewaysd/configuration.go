// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/block"
	"github.com/bitmark-inc/gatewaysd/chain"
	"github.com/bitmark-inc/gatewaysd/configuration"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/rpc/listeners"
	"github.com/bitmark-inc/gatewaysd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "gatewaysd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	defaultReservoirExpiry  = "2h"
	defaultReservoirMaximum = 10000
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - leveldb location, name is a prefix for the two
// database directories
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// GatewaysType - contract parameters
type GatewaysType struct {
	TxFee                int64  `gluamapper:"txfee" json:"txfee"`
	MinimumConfirmations uint64 `gluamapper:"minimum_confirmations" json:"minimum_confirmations"`
	MaximumBatonHops     int    `gluamapper:"maximum_baton_hops" json:"maximum_baton_hops"`
	PubKey               string `gluamapper:"pubkey" json:"pubkey"`
}

// ReservoirType - unconfirmed pool limits
type ReservoirType struct {
	Expiry  string `gluamapper:"expiry" json:"expiry"`
	Maximum int    `gluamapper:"maximum" json:"maximum"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"rpc" json:"rpc"`
	Gateways  GatewaysType               `gluamapper:"gateways" json:"gateways"`
	Reservoir ReservoirType              `gluamapper:"reservoir" json:"reservoir"`
	Block     block.Configuration        `gluamapper:"block" json:"block"`
	Logging   logger.Configuration       `gluamapper:"logging" json:"logging"`

	// derived values
	expiry time.Duration
	pubKey account.PublicKey
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}
	if !util.EnsureFileExists(configurationFileName) {
		return nil, fmt.Errorf("configuration file: %q does not exist", configurationFileName)
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Local,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "",
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Gateways: GatewaysType{
			TxFee:            constants.TxFee,
			MaximumBatonHops: constants.MaximumBatonHops,
		},

		Reservoir: ReservoirType{
			Expiry:  defaultReservoirExpiry,
			Maximum: defaultReservoirMaximum,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    make(map[string]string),
		},
	}

	// the file's levels are merged over a private copy
	for tag, level := range defaultLogLevels {
		options.Logging.Levels[tag] = level
	}

	variables := map[string]string{
		"config_directory": dataDirectory,
	}
	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	// database default follows the chain
	if "" == options.Database.Name {
		options.Database.Name = options.Chain
	}

	if 0 == options.Gateways.MinimumConfirmations {
		options.Gateways.MinimumConfirmations = chain.MinimumConfirmations(options.Chain)
	}
	if options.Gateways.TxFee <= 0 {
		return nil, fmt.Errorf("txfee: %d must be positive", options.Gateways.TxFee)
	}

	if "" != options.Gateways.PubKey {
		pk, err := account.PublicKeyFromHex(options.Gateways.PubKey)
		if nil != err {
			return nil, fmt.Errorf("pubkey: %q error: %s", options.Gateways.PubKey, err)
		}
		options.pubKey = pk
	}

	options.expiry, err = time.ParseDuration(options.Reservoir.Expiry)
	if nil != err || options.expiry <= 0 {
		return nil, fmt.Errorf("reservoir expiry: %q is not a valid duration", options.Reservoir.Expiry)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// must be simple file names, the directory is added after
	// the directory itself is made absolute
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}
	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	return options, nil
}
