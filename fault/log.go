// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/logger"
)

// channel for the last message before a panic, nil until Initialise
var log *logger.L

// Initialise - open the panic channel, the logger must be running
func Initialise() error {
	if nil != log {
		return AlreadyInitialised
	}
	log = logger.New("PANIC")
	return nil
}

// Finalise - flush and close the panic channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Panic - log at critical then panic
func Panic(message string) {
	if nil == log {
		fmt.Fprintf(os.Stderr, "*** %s\n", message)
	} else {
		log.Critical(message)
		log.Flush()
	}
	time.Sleep(100 * time.Millisecond) // let the log writer finish
	panic(message)
}

// PanicIfError - panic only for a non-nil error
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	Panic(fmt.Sprintf("%s failed with error: %v", message, err))
}
