// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/constants"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/finality"
	"github.com/bitmark-inc/gatewaysd/fixtures"
	"github.com/bitmark-inc/gatewaysd/gateways"
	"github.com/bitmark-inc/gatewaysd/gateways/mocks"
	"github.com/bitmark-inc/gatewaysd/ledger"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
	"github.com/bitmark-inc/gatewaysd/tokens"
	"github.com/bitmark-inc/gatewaysd/transactionrecord"
	"github.com/bitmark-inc/gatewaysd/utxo"
)

var normalSpend = utxo.Input{
	Previous: utxo.Outpoint{TxId: merkle.NewDigest([]byte("normal")), Index: 0},
}

// a signing stage spending vout 0 of previous
func stageTx(t *testing.T, previous merkle.Digest, record transactionrecord.Record, extraInputs []utxo.Input, extraOutputs []utxo.Output) *utxo.Transaction {
	memo, err := record.Pack()
	assert.Nil(t, err, "pack")

	tx := &utxo.Transaction{
		Inputs: []utxo.Input{
			normalSpend,
			{Previous: utxo.Outpoint{TxId: previous, Index: 0}, Pooled: true},
		},
		Outputs: []utxo.Output{
			utxo.PoolOutput(constants.EvalGateways, constants.TxFee, account.GatewaysPublicKey()),
		},
	}
	tx.Inputs = append(tx.Inputs, extraInputs...)
	tx.Outputs = append(tx.Outputs, extraOutputs...)
	tx.Outputs = append(tx.Outputs, utxo.DataOutput(memo))
	return tx
}

func TestValidateNoOutputs(t *testing.T) {
	c := newTestChain(t, 0)
	assert.Equal(t, fault.NoVouts, c.g.Validate(&utxo.Transaction{}), "no vouts")
}

func TestValidateUnexpected(t *testing.T) {
	w := newWithdrawChain(t)

	bindTx, _ := w.chain.GetTransaction(w.bindTxId)
	err := w.g.Validate(bindTx)
	assert.Equal(t, fault.InvalidError("unexpected GatewaysValidate for gatewaysbind!"), err, "bind")

	withdrawTx, _ := w.chain.GetTransaction(w.withdrawTxId)
	err = w.g.Validate(withdrawTx)
	assert.Equal(t, fault.InvalidError("unexpected GatewaysValidate for gatewaysWithdraw!"), err, "withdraw")

	deposit := &transactionrecord.Deposit{
		Coin:       coin,
		BindTxId:   w.bindTxId,
		CoinTxId:   mustDigest(fixtures.DepositTxId),
		DepositHex: fixtures.DepositRawHex,
		DestPub:    other,
		Amount:     1,
	}
	memo, err := deposit.Pack()
	assert.Nil(t, err, "pack deposit")
	depositTx := &utxo.Transaction{
		Inputs:  []utxo.Input{normalSpend},
		Outputs: []utxo.Output{utxo.DataOutput(memo)},
	}
	err = w.g.Validate(depositTx)
	assert.Equal(t, fault.InvalidError("unexpected GatewaysValidate for gatewaysdeposit!"), err, "deposit")
}

func TestValidateForeignSpend(t *testing.T) {
	c := newTestChain(t, 0)
	c.fund(owner, constants.CoinUnit)
	c.fund(signer1, constants.CoinUnit)
	c.fund(signer2, constants.CoinUnit)
	tokenId := c.createToken(owner, totalSupply)
	oracleTxId := c.createOracle(coin, oracles.MerkleRootFormat)
	bindTxId := c.commit(c.g.Bind(owner, &gateways.BindArguments{
		Coin:        coin,
		TokenId:     tokenId,
		TotalSupply: totalSupply,
		OracleTxId:  oracleTxId,
		M:           1,
		N:           2,
		PubKeys:     []account.PublicKey{signer1, signer2},
	}))

	// custody released with no gateways record
	releaseTxId := releaseTokens(c, bindTxId, tokenId, other, released)
	releaseTx, _ := c.chain.GetTransaction(releaseTxId)
	assert.True(t, c.g.Governs(releaseTx), "custody spend is governed")
	assert.Equal(t, fault.InvalidError("invalid CC vin"), c.g.Validate(releaseTx), "release")

	// a plain payment is neither governed nor rejected
	plain := &utxo.Transaction{
		Inputs:  []utxo.Input{normalSpend},
		Outputs: []utxo.Output{utxo.NormalOutput(1000, other)},
	}
	assert.False(t, c.g.Governs(plain), "plain")
	assert.Nil(t, c.g.Validate(plain), "plain accepted")
}

func TestValidateSigningStages(t *testing.T) {
	w := newWithdrawChain(t)

	partial := func(withdrawTxId merkle.Digest, k uint8, coin string) *transactionrecord.PartialSign {
		return &transactionrecord.PartialSign{
			WithdrawTxId: withdrawTxId,
			Coin:         coin,
			K:            k,
			SignerPub:    signer1,
			Hex:          "aa",
		}
	}

	firstTx := stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 1, coin), nil, nil)
	assert.Nil(t, w.g.Validate(firstTx), "first partial")
	firstTxId := w.chain.Commit(firstTx)

	notPooled := stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 1, coin), nil, nil)
	notPooled.Inputs[1].Pooled = false

	pooledFirst := stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 1, coin), nil, nil)
	pooledFirst.Inputs[0].Pooled = true

	testItems := []struct {
		name string
		tx   *utxo.Transaction
		err  error
	}{
		{
			name: "second partial",
			tx:   stageTx(t, firstTxId, partial(w.withdrawTxId, 2, coin), nil, nil),
			err:  nil,
		},
		{
			name: "complete after partial",
			tx: stageTx(t, firstTxId, &transactionrecord.CompleteSigning{
				WithdrawTxId: w.withdrawTxId,
				Coin:         coin,
				K:            2,
				Hex:          "aabb",
			}, nil, nil),
			err: nil,
		},
		{
			name: "skipped count",
			tx:   stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 2, coin), nil, nil),
			err:  fault.InvalidNumberOfSigns,
		},
		{
			name: "repeated count",
			tx:   stageTx(t, firstTxId, partial(w.withdrawTxId, 1, coin), nil, nil),
			err:  fault.InvalidNumberOfSigns,
		},
		{
			name: "beyond M",
			tx:   stageTx(t, firstTxId, partial(w.withdrawTxId, 3, coin), nil, nil),
			err:  fault.InvalidNumberOfSigns,
		},
		{
			name: "complete short of M",
			tx: stageTx(t, w.withdrawTxId, &transactionrecord.CompleteSigning{
				WithdrawTxId: w.withdrawTxId,
				Coin:         coin,
				K:            1,
				Hex:          "aa",
			}, nil, nil),
			err: fault.InvalidNumberOfSigns,
		},
		{
			name: "other coin",
			tx:   stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 1, "BTC"), nil, nil),
			err:  fault.InvalidError("refcoin different than in bind tx"),
		},
		{
			name: "not a withdraw",
			tx:   stageTx(t, w.withdrawTxId, partial(w.bindTxId, 1, coin), nil, nil),
			err:  fault.InvalidError("invalid gatewayswithdraw OP_RETURN data!"),
		},
		{
			name: "unknown withdraw",
			tx:   stageTx(t, w.withdrawTxId, partial(merkle.NewDigest([]byte("none")), 1, coin), nil, nil),
			err:  fault.InvalidError("invalid withdraw txid!"),
		},
		{
			name: "marker not pooled",
			tx:   notPooled,
			err:  fault.InvalidError("vin.1 is CC for gatewaysPartialSign!"),
		},
		{
			name: "pooled funding",
			tx:   pooledFirst,
			err:  fault.InvalidError("vin.0 is normal for gatewaysPartialSign!"),
		},
		{
			name: "extra pooled input",
			tx: stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 1, coin), []utxo.Input{
				{Previous: utxo.Outpoint{TxId: w.bindTxId, Index: 1}, Pooled: true},
			}, nil),
			err: fault.InvalidError("invalid CC vin"),
		},
		{
			name: "foreign pooled output",
			tx: stageTx(t, w.withdrawTxId, partial(w.withdrawTxId, 1, coin), nil, []utxo.Output{
				utxo.PoolOutput(constants.EvalOracles, constants.TxFee, other),
			}),
			err: fault.InvalidError("invalid CC vout"),
		},
	}

	for _, item := range testItems {
		assert.Equal(t, item.err, w.g.Validate(item.tx), item.name)
	}
}

func TestValidateWithdrawFinality(t *testing.T) {
	w := newWithdrawChain(t)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mockFinality := mocks.NewMockOracle(ctl)
	pool := w.chain.Pool()
	g := gateways.New(logger.New(fixtures.LogCategory), gateways.Handles{
		Chain:    w.chain,
		Pool:     pool,
		Tokens:   tokens.NewChainLedger(w.chain, pool),
		Oracles:  oracles.NewChainReader(w.chain),
		Finality: mockFinality,
		Funder:   ledger.NewFunder(w.chain, pool),
	}, 0, 0)

	tx := stageTx(t, w.withdrawTxId, &transactionrecord.PartialSign{
		WithdrawTxId: w.withdrawTxId,
		Coin:         coin,
		K:            1,
		SignerPub:    signer1,
		Hex:          "aa",
	}, nil, nil)

	gomock.InOrder(
		mockFinality.EXPECT().IsFinalized(w.withdrawTxId).Return(false).Times(1),
		mockFinality.EXPECT().IsFinalized(w.withdrawTxId).Return(true).Times(1),
		mockFinality.EXPECT().IsFinalized(w.bindTxId).Return(false).Times(1),
		mockFinality.EXPECT().IsFinalized(w.withdrawTxId).Return(true).Times(1),
		mockFinality.EXPECT().IsFinalized(w.bindTxId).Return(true).Times(1),
	)

	assert.Equal(t, fault.WithdrawNotFinal, g.Validate(tx), "withdraw not final")
	assert.Equal(t, fault.BindNotFinal, g.Validate(tx), "bind not final")
	assert.Nil(t, g.Validate(tx), "both final")
}

func TestValidateMarkDone(t *testing.T) {
	w := newWithdrawChain(t)

	partialTxId := w.commit(w.g.PartialSign(signer1, w.withdrawTxId, coin, "aa"))
	completeTxId := w.commit(w.g.CompleteSigning(signer2, partialTxId, coin, "aabb"))

	doneTx, err := w.g.MarkDone(signer1, completeTxId, coin)
	assert.Nil(t, err, "mark done")
	assert.Equal(t, completeTxId, doneTx.Inputs[0].Previous.TxId, "spends complete marker")
	assert.True(t, doneTx.Inputs[0].Pooled, "pooled")

	done := func(withdrawTxId merkle.Digest) []byte {
		record := &transactionrecord.MarkDone{
			WithdrawTxId: withdrawTxId,
			Coin:         coin,
			CompleteTxId: completeTxId,
		}
		memo, err := record.Pack()
		assert.Nil(t, err, "pack")
		return memo
	}
	marker := utxo.Input{Previous: utxo.Outpoint{TxId: completeTxId, Index: 0}, Pooled: true}

	testItems := []struct {
		name string
		tx   *utxo.Transaction
		err  error
	}{
		{
			name: "valid",
			tx: &utxo.Transaction{
				Inputs:  []utxo.Input{marker},
				Outputs: []utxo.Output{utxo.DataOutput(done(w.withdrawTxId))},
			},
			err: nil,
		},
		{
			name: "other withdraw",
			tx: &utxo.Transaction{
				Inputs:  []utxo.Input{marker},
				Outputs: []utxo.Output{utxo.DataOutput(done(partialTxId))},
			},
			err: fault.InvalidError("withdrawtxid different than in completesigning tx"),
		},
		{
			name: "marker not first",
			tx: &utxo.Transaction{
				Inputs:  []utxo.Input{normalSpend, marker},
				Outputs: []utxo.Output{utxo.DataOutput(done(w.withdrawTxId))},
			},
			err: fault.InvalidError("vin.0 is CC for gatewaysmarkdone!"),
		},
		{
			name: "second pooled input",
			tx: &utxo.Transaction{
				Inputs: []utxo.Input{
					marker,
					{Previous: utxo.Outpoint{TxId: partialTxId, Index: 0}, Pooled: true},
				},
				Outputs: []utxo.Output{utxo.DataOutput(done(w.withdrawTxId))},
			},
			err: fault.InvalidError("invalid CC vin"),
		},
	}

	for _, item := range testItems {
		assert.Equal(t, item.err, w.g.Validate(item.tx), item.name)
	}
}

func TestBindExists(t *testing.T) {
	for _, committed := range []bool{false, true} {
		c := newTestChain(t, 0)
		c.fund(owner, constants.CoinUnit)
		c.fund(signer1, constants.CoinUnit)
		tokenId := c.createToken(owner, totalSupply)
		oracleTxId := c.createOracle(coin, oracles.MerkleRootFormat)

		assert.False(t, c.g.BindExists(tokenId), "before bind")

		tx, err := c.g.Bind(owner, &gateways.BindArguments{
			Coin:        coin,
			TokenId:     tokenId,
			TotalSupply: totalSupply,
			OracleTxId:  oracleTxId,
			M:           1,
			N:           1,
			PubKeys:     []account.PublicKey{signer1},
		})
		assert.Nil(t, err, "bind")
		if committed {
			c.chain.Commit(tx)
		} else {
			c.chain.Submit(tx)
		}

		assert.True(t, c.g.BindExists(tokenId), "after bind: committed: %t", committed)
		assert.False(t, c.g.BindExists(oracleTxId), "other token: committed: %t", committed)
	}
}

func TestCointxidExists(t *testing.T) {
	coinTxId := mustDigest(fixtures.DepositTxId)

	for _, committed := range []bool{false, true} {
		b := newBoundChain(t)
		assert.False(t, b.g.CointxidExists(coinTxId), "before deposit")

		tx, err := b.g.Deposit(claimant, b.depositArguments())
		assert.Nil(t, err, "deposit")
		if committed {
			b.chain.Commit(tx)
		} else {
			b.chain.Submit(tx)
		}
		assert.True(t, b.g.CointxidExists(coinTxId), "after deposit: committed: %t", committed)
		assert.False(t, b.g.CointxidExists(b.bindTxId), "other txid: committed: %t", committed)

		_, err = b.g.Deposit(claimant, b.depositArguments())
		assert.Equal(t, fault.CoinTxIdExists, err, "second deposit: committed: %t", committed)
	}
}

func TestExactAmounts(t *testing.T) {
	c := newTestChain(t, 0)
	gw := account.GatewaysPublicKey()
	fee := constants.TxFee

	markerTxId := c.chain.Commit(&utxo.Transaction{
		Outputs: []utxo.Output{utxo.PoolOutput(constants.EvalGateways, 3*fee, gw)},
	})
	pendingTxId := c.chain.Submit(&utxo.Transaction{
		Outputs: []utxo.Output{utxo.PoolOutput(constants.EvalGateways, 2*fee, gw)},
	})

	spend := func(txId merkle.Digest, value int64) *utxo.Transaction {
		return &utxo.Transaction{
			Inputs: []utxo.Input{
				normalSpend,
				{Previous: utxo.Outpoint{TxId: txId, Index: 0}, Pooled: true},
			},
			Outputs: []utxo.Output{
				utxo.PoolOutput(constants.EvalGateways, value, gw),
				utxo.NormalOutput(5*fee, other),
			},
		}
	}

	testItems := []struct {
		name string
		tx   *utxo.Transaction
		err  error
	}{
		{"balanced", spend(markerTxId, 2*fee), nil},
		{"no fee", spend(markerTxId, 3*fee), fault.InvalidError("mismatched inputs != outputs + txfee")},
		{"unconfirmed", spend(pendingTxId, fee), fault.InvalidError("cant Gateways from mempool")},
		{"missing", spend(merkle.NewDigest([]byte("none")), fee), fault.InvalidError("cant find vinTx")},
	}
	for _, item := range testItems {
		assert.Equal(t, item.err, c.g.ExactAmounts(item.tx), item.name)
	}
}

// the depth oracle counts the tip as one confirmation
func TestDepthFinality(t *testing.T) {
	chain := fixtures.NewChain()
	depth := finality.NewDepth(chain, 2)

	txId := chain.Commit(&utxo.Transaction{Outputs: []utxo.Output{utxo.NormalOutput(1, other)}})
	assert.False(t, depth.IsFinalized(txId), "tip only")
	chain.Commit(&utxo.Transaction{Outputs: []utxo.Output{utxo.NormalOutput(2, other)}})
	assert.True(t, depth.IsFinalized(txId), "one above")
	assert.False(t, depth.IsFinalized(merkle.NewDigest([]byte("none"))), "unknown")
}

func TestValidateClaim(t *testing.T) {
	b := newBoundChain(t)

	depositTx, err := b.g.Deposit(claimant, b.depositArguments())
	assert.Nil(t, err, "deposit")
	depositTxId := b.chain.Commit(depositTx)

	claimTx, err := b.g.Claim(claimant, b.bindTxId, coin, depositTxId, claimant, fixtures.DepositAmount)
	assert.Nil(t, err, "claim")
	assert.Nil(t, b.g.Validate(claimTx), "valid claim")
	ticket := len(claimTx.Inputs) - 1

	// a copy of the claim with an altered memo, spending the ticket of
	// whichever deposit the memo names
	alter := func(modify func(*transactionrecord.Claim)) *utxo.Transaction {
		tx := cloneTx(claimTx)
		claim, err := transactionrecord.UnpackClaim(tx.Memo())
		assert.Nil(t, err, "unpack claim")
		modify(claim)
		memo, err := claim.Pack()
		assert.Nil(t, err, "pack claim")
		tx.Outputs[len(tx.Outputs)-1] = utxo.DataOutput(memo)
		tx.Inputs[ticket].Previous.TxId = claim.DepositTxId
		return tx
	}

	// a committed deposit ticket with an altered memo
	commitDeposit := func(modify func(*transactionrecord.Deposit)) merkle.Digest {
		deposit, err := transactionrecord.UnpackDeposit(depositTx.Memo())
		assert.Nil(t, err, "unpack deposit")
		modify(deposit)
		memo, err := deposit.Pack()
		assert.Nil(t, err, "pack deposit")
		return b.chain.Commit(&utxo.Transaction{
			Inputs: []utxo.Input{normalSpend},
			Outputs: []utxo.Output{
				utxo.PoolOutput(constants.EvalGateways, constants.TxFee, claimant),
				utxo.DataOutput(memo),
			},
		})
	}

	// a committed binding record naming another oracle
	commitBind := func(oracleTxId merkle.Digest) merkle.Digest {
		bindTx, _ := b.chain.GetTransaction(b.bindTxId)
		bind, err := transactionrecord.UnpackBind(bindTx.Memo())
		assert.Nil(t, err, "unpack bind")
		bind.OracleTxId = oracleTxId
		memo, err := bind.Pack()
		assert.Nil(t, err, "pack bind")
		return b.chain.Commit(&utxo.Transaction{
			Inputs:  []utxo.Input{normalSpend},
			Outputs: []utxo.Output{utxo.DataOutput(memo)},
		})
	}

	overSupply := commitDeposit(func(d *transactionrecord.Deposit) { d.Amount = totalSupply + 1 })
	unpublished := commitDeposit(func(d *transactionrecord.Deposit) { d.Height = sampleHeight + 1 })
	badFormat := commitBind(b.createOracle(coin, "s"))
	notOracle := commitBind(b.tokenId)
	truncatedOracle := b.chain.Commit(&utxo.Transaction{
		Outputs: []utxo.Output{utxo.DataOutput([]byte{constants.EvalOracles, 'C'})},
	})
	truncated := commitBind(truncatedOracle)

	lowValue := cloneTx(claimTx)
	lowValue.Outputs[0].Value -= 1

	otherTicket := cloneTx(claimTx)
	otherTicket.Inputs[ticket].Previous.Index = 1

	testItems := []struct {
		name string
		tx   *utxo.Transaction
		err  error
	}{
		{
			name: "half the deposit",
			tx:   alter(func(c *transactionrecord.Claim) { c.Amount /= 2 }),
			err:  fault.InvalidError("claimed amount different then deposit amount"),
		},
		{
			name: "output value",
			tx:   lowValue,
			err:  fault.InvalidError("claim amount not matching amount in opret"),
		},
		{
			name: "destination",
			tx:   alter(func(c *transactionrecord.Claim) { c.DestPub = other }),
			err:  fault.InvalidError("claim destination pubkey different than in deposit tx"),
		},
		{
			name: "token id",
			tx:   alter(func(c *transactionrecord.Claim) { c.TokenId = b.oracleTxId }),
			err:  fault.InvalidError("tokenid does not match tokenid from gatewaysbind"),
		},
		{
			name: "deposit over supply",
			tx:   alter(func(c *transactionrecord.Claim) { c.DepositTxId = overSupply }),
			err:  fault.InvalidError("deposit amount greater then bind total supply"),
		},
		{
			name: "oracle format",
			tx:   alter(func(c *transactionrecord.Claim) { c.BindTxId = badFormat }),
			err:  fault.InvalidError("illegal format s != Ihh"),
		},
		{
			name: "not an oracle",
			tx:   alter(func(c *transactionrecord.Claim) { c.BindTxId = notOracle }),
			err:  fault.InvalidError("mismatched oracle name != KMD"),
		},
		{
			name: "truncated oracle",
			tx:   alter(func(c *transactionrecord.Claim) { c.BindTxId = truncated }),
			err:  fault.InvalidError(fmt.Sprintf("invalid oracletxid %v: %s", truncatedOracle, fault.TruncatedRecord)),
		},
		{
			name: "no merkle root",
			tx:   alter(func(c *transactionrecord.Claim) { c.DepositTxId = unpublished }),
			err: fault.ProofError(fmt.Sprintf("couldnt find merkleroot for ht.%d %s oracle.%v m.%d vs n.%d",
				sampleHeight+1, coin, b.oracleTxId, 0, 1)),
		},
		{
			name: "ticket not spent",
			tx:   otherTicket,
			err:  fault.InvalidError("vin.2 does not spend gatewaysdeposit vout.0"),
		},
	}

	for _, item := range testItems {
		assert.Equal(t, item.err, b.g.Validate(item.tx), item.name)
	}
}

func cloneTx(tx *utxo.Transaction) *utxo.Transaction {
	return &utxo.Transaction{
		Inputs:  append([]utxo.Input{}, tx.Inputs...),
		Outputs: append([]utxo.Output{}, tx.Outputs...),
	}
}
