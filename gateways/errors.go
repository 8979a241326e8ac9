// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"fmt"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// validator diagnostics
var (
	errUnexpectedBind     = fault.InvalidError("unexpected GatewaysValidate for gatewaysbind!")
	errUnexpectedDeposit  = fault.InvalidError("unexpected GatewaysValidate for gatewaysdeposit!")
	errUnexpectedWithdraw = fault.InvalidError("unexpected GatewaysValidate for gatewaysWithdraw!")

	errClaimRecord       = fault.InvalidError("invalid gatewaysClaim OP_RETURN data!")
	errBindTxId          = fault.InvalidError("invalid gatewaysbind txid!")
	errBindRecord        = fault.InvalidError("invalid gatewaysbind OP_RETURN data!")
	errBindCoin          = fault.InvalidError("refcoin different than in bind tx")
	errBindTokenId       = fault.InvalidError("tokenid does not match tokenid from gatewaysbind")
	errDepositTxId       = fault.InvalidError("invalid gatewaysdeposittxid!")
	errDepositRecord     = fault.InvalidError("invalid gatewaysdeposit OP_RETURN data!")
	errDepositCoin       = fault.InvalidError("refcoin different than in deposit tx")
	errDepositBindTxId   = fault.InvalidError("bindtxid does not match to bindtxid from gatewaysdeposit")
	errDepositOverSupply = fault.InvalidError("deposit amount greater then bind total supply")
	errClaimAmount       = fault.InvalidError("claimed amount different then deposit amount")
	errClaimValue        = fault.InvalidError("claim amount not matching amount in opret")
	errClaimDestination  = fault.InvalidError("claim destination pubkey different than in deposit tx")
	errClaimTicket       = fault.InvalidError("vin.2 does not spend gatewaysdeposit vout.0")

	errWithdrawTxId     = fault.InvalidError("invalid withdraw txid!")
	errWithdrawRecord   = fault.InvalidError("invalid gatewayswithdraw OP_RETURN data!")
	errWithdrawValue    = fault.InvalidError("amount in opret not matching tx tokens amount!")
	errPartialRecord    = fault.InvalidError("invalid gatewaysPartialSign OP_RETURN data!")
	errCompleteRecord   = fault.InvalidError("invalid gatewayscompletesigning OP_RETURN data!")
	errCompleteTxId     = fault.InvalidError("invalid gatewaygatewayscompletesigning txid!")
	errCompleteWithdraw = fault.InvalidError("withdrawtxid different than in completesigning tx")
	errMarkDoneRecord   = fault.InvalidError("invalid gatewaysmarkdone OP_RETURN data!")

	errInvalidVin  = fault.InvalidError("invalid CC vin")
	errInvalidVout = fault.InvalidError("invalid CC vout")

	errMissingInput   = fault.InvalidError("cant find vinTx")
	errUnconfirmedVin = fault.InvalidError("cant Gateways from mempool")
	errExactAmounts   = fault.InvalidError("mismatched inputs != outputs + txfee")
)

// builder diagnostics
var (
	errIllegalMofN          = fault.InvalidError("illegal M or N")
	errBindNotFound         = fault.NotFoundError("cant find bindtxid")
	errInvalidBindCoin      = fault.InvalidError("invalid coin - bindtxid")
	errDepositNotFound      = fault.NotFoundError("cant find deposittxid")
	errInvalidDepositCoin   = fault.InvalidError("invalid coin - deposittxid")
	errDestinationMismatch  = fault.InvalidError("different destination pubkey from deposittxid")
	errClaimDepositAmount   = fault.InvalidError("claimed amount different from deposit amount")
	errDepositNotValidated  = fault.ProofError("deposittxid didnt validate")
	errLastTxId             = fault.InvalidError("invalid last txid")
	errCompleteNotFound     = fault.NotFoundError("invalid completesigning txid")
	errInsufficientNormal   = fault.ProcessError("cant find enough normal inputs")
	errWithdrawNotFound     = fault.NotFoundError("cant find withdraw tx")
	errInvalidWithdrawCoin  = fault.InvalidError("invalid withdraw tx")
	errInvalidBindForSigner = fault.InvalidError("invalid bind tx")
)

// name of each signing stage as it appears in diagnostics
const (
	stageClaim           = "gatewaysClaim"
	stageWithdraw        = "gatewaysWithdraw"
	stagePartialSign     = "gatewaysPartialSign"
	stageCompleteSigning = "gatewayscompletesigning"
	stageMarkDone        = "gatewaysmarkdone"
)

func errNormalInput(index int, stage string) error {
	return fault.InvalidError(fmt.Sprintf("vin.%d is normal for %s!", index, stage))
}

func errPooledInput(index int, stage string) error {
	return fault.InvalidError(fmt.Sprintf("vin.%d is CC for %s!", index, stage))
}

func errPooledOutput(index int, stage string) error {
	return fault.InvalidError(fmt.Sprintf("vout.%d is CC for %s!", index, stage))
}
