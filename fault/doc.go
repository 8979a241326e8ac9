// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Validator diagnostics are built at run time as one of the classes
// below so that callers can tell a permanent rejection (InvalidError,
// ProofError) from one that may succeed later (PendingError).
package fault
