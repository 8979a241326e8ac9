// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PendingError GenericError
type ProcessError GenericError
type ProofError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ExistsError("already initialised")
	BindNotFinal              = PendingError("gatewaysbind tx is not yet confirmed(notarised)!")
	CoinTxIdExists            = ExistsError("cointxid already exists")
	ConfigurationFileChanged  = ProcessError("configuration file changed")
	ConnectionLimit           = ProcessError("connection limit reached")
	DepositNotFinal           = PendingError("gatewaysdeposit tx is not yet confirmed(notarised)!")
	DepositNotVerified        = ProofError("external deposit not verified")
	DoubleSpend               = ExistsError("output already spent")
	DuplicateBind             = ExistsError("duplicate bind")
	InsufficientFunds         = ProcessError("cant find enough inputs")
	InsufficientGatewayFunds  = ProcessError("cant find enough inputs or mismatched total")
	InsufficientTokens        = ProcessError("not enough balance of tokens for withdraw")
	InvalidAddress            = InvalidError("invalid address")
	InvalidAmount             = InvalidError("invalid amount")
	InvalidBlockHeight        = InvalidError("invalid block height")
	InvalidChain              = InvalidError("invalid chain")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidFlag               = RecordError("invalid flag byte")
	InvalidHexString          = InvalidError("invalid hex string")
	InvalidIndexRecord        = RecordError("invalid index record")
	InvalidInterval           = InvalidError("invalid interval")
	InvalidIpAddress          = InvalidError("invalid IP address")
	InvalidMerkleSample       = RecordError("invalid merkle sample")
	InvalidMofN               = InvalidError("invalid MofN in gatewaysbind")
	InvalidNumberOfSigns      = InvalidError("invalid number of signs!")
	InvalidProof              = ProofError("invalid merkle block proof")
	InvalidPublicKey          = InvalidError("invalid public key")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	InvalidRawTransaction     = ProofError("invalid raw external transaction")
	MerkleRootNotFound        = ProofError("couldnt find merkleroot")
	MissingConfigurationTable = InvalidError("configuration file must return a table")
	MissingListener           = InvalidError("missing listener")
	MissingParameters         = InvalidError("missing parameters")
	NoVouts                   = InvalidError("no vouts")
	NotGatewaysRecord         = RecordError("not a gateways record")
	NotInitialised            = NotFoundError("not initialised")
	NotOracleRecord           = RecordError("not an oracles record")
	NotTokensRecord           = RecordError("not a tokens record")
	OracleNameMismatch        = ProofError("mismatched oracle name")
	OracleNotFound            = NotFoundError("cant find oracletxid")
	PoolFull                  = ProcessError("unconfirmed pool is full")
	PublicKeyCountMismatch    = InvalidError("public key count does not match N")
	RateLimiting              = ProcessError("rate limiting")
	RecordTooLong             = RecordError("record field too long")
	SignerHasNoBalance        = InvalidError("signer pubkey has no balance")
	SupplyMismatch            = InvalidError("totalsupply != fullsupply")
	TokenBalanceMismatch      = InvalidError("token balance != totalsupply")
	TrailingData              = RecordError("trailing data after record")
	TransactionAlreadyExists  = ExistsError("transaction already exists")
	TransactionInUse          = ProcessError("transaction already in use")
	TransactionNotFound       = NotFoundError("transaction not found")
	TruncatedRecord           = RecordError("truncated record")
	UnsupportedDepositPrefix  = InvalidError("need to generate non-KMD addresses")
	WithdrawNotFinal          = PendingError("gatewayswithdraw tx is not yet confirmed(notarised)!")
	WithdrawPending           = ExistsError("unable to create withdraw, another withdraw pending")
	WrongRecordType           = RecordError("wrong record type")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e PendingError) Error() string  { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e ProofError) Error() string    { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrPending(e error) bool  { _, ok := e.(PendingError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrProof(e error) bool    { _, ok := e.(ProofError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
