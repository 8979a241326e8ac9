// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewaysd/chain"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/mode"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestInvalidChain(t *testing.T) {
	err := mode.Initialise("mainnet")
	assert.Equal(t, fault.InvalidChain, err, "wrong error")
	assert.Equal(t, fault.NotInitialised, mode.Finalise(), "finalise")
}

func TestLifecycle(t *testing.T) {
	err := mode.Initialise(chain.Testing)
	assert.Nil(t, err, "initialise")
	defer mode.Finalise()

	assert.Equal(t, fault.AlreadyInitialised, mode.Initialise(chain.Live), "second initialise")

	assert.True(t, mode.IsTesting(), "testing")
	assert.Equal(t, chain.Testing, mode.ChainName(), "chain")
	assert.True(t, mode.Is(mode.Starting), "starting")

	mode.Set(mode.Normal)
	assert.True(t, mode.Is(mode.Normal), "normal")
	assert.Equal(t, "Normal", mode.String(), "string")

	mode.Set(mode.Mode(99))
	assert.True(t, mode.Is(mode.Normal), "invalid set changed mode")
}
