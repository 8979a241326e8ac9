// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/gatewaysd/fault"
)

var (
	errExistsOne   = fault.ExistsError("exists one")
	errInvalidOne  = fault.InvalidError("invalid one")
	errLengthOne   = fault.LengthError("length one")
	errNotFoundOne = fault.NotFoundError("not found one")
	errPendingOne  = fault.PendingError("pending one")
	errProcessOne  = fault.ProcessError("process one")
	errProofOne    = fault.ProofError("proof one")
	errRecordOne   = fault.RecordError("record one")
)

// test that the various classes of error can be distinguished
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		pending  bool
		process  bool
		proof    bool
		record   bool
	}{
		{errExistsOne, true, false, false, false, false, false, false, false},
		{fault.DuplicateBind, true, false, false, false, false, false, false, false},
		{errInvalidOne, false, true, false, false, false, false, false, false},
		{fault.InvalidNumberOfSigns, false, true, false, false, false, false, false, false},
		{errLengthOne, false, false, true, false, false, false, false, false},
		{errNotFoundOne, false, false, false, true, false, false, false, false},
		{fault.TransactionNotFound, false, false, false, true, false, false, false, false},
		{errPendingOne, false, false, false, false, true, false, false, false},
		{fault.BindNotFinal, false, false, false, false, true, false, false, false},
		{errProcessOne, false, false, false, false, false, true, false, false},
		{fault.InsufficientFunds, false, false, false, false, false, true, false, false},
		{errProofOne, false, false, false, false, false, false, true, false},
		{fault.MerkleRootNotFound, false, false, false, false, false, false, true, false},
		{errRecordOne, false, false, false, false, false, false, false, true},
		{fault.NotGatewaysRecord, false, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPending(err) != e.pending {
			t.Errorf("%d: expected 'pending' == %v for err = %v", i, e.pending, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrProof(err) != e.proof {
			t.Errorf("%d: expected 'proof' == %v for err = %v", i, e.proof, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}

// dynamic diagnostics keep their class
func TestFormattedInvalid(t *testing.T) {
	err := error(fault.InvalidError("not enough pubkeys(2) for N.3 gatewaysbind"))
	if !fault.IsErrInvalid(err) {
		t.Errorf("expected invalid class for: %v", err)
	}
	if "not enough pubkeys(2) for N.3 gatewaysbind" != err.Error() {
		t.Errorf("message changed: %q", err.Error())
	}
}

func TestPanicIfError(t *testing.T) {
	fault.PanicIfError("nothing", nil)

	defer func() {
		r := recover()
		if "store failed with error: invalid one" != r {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	fault.PanicIfError("store", errInvalidOne)
	t.Error("expected a panic")
}
