// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/currency"
	"github.com/bitmark-inc/gatewaysd/merkle"
)

// Verify - check an external deposit against an oracle attested
// merkle root
//
// returns the value paid to depositAddress by the external
// transaction, or zero if any step fails
func (g *Gateways) Verify(depositAddress string, oracleTxId merkle.Digest, claimVout int32, refCoin string, coinTxId merkle.Digest, depositHex string, proof []byte, merkleRoot merkle.Digest, destPub account.PublicKey) int64 {

	create, err := g.oracles.Create(oracleTxId)
	if nil != err {
		g.log.Debugf("verify: cant find oracletxid: %v  error: %s", oracleTxId, err)
		return 0
	}
	if create.Name != refCoin {
		g.log.Debugf("verify: mismatched oracle name: %q != %q", create.Name, refCoin)
		return 0
	}

	block, err := merkle.ParseMerkleBlock(proof)
	if nil != err {
		g.log.Debugf("verify: proof error: %s", err)
		return 0
	}
	proofRoot, matches, err := block.Tree.ExtractMatches()
	if nil != err {
		g.log.Debugf("verify: proof tree error: %s", err)
		return 0
	}
	if proofRoot != merkleRoot {
		g.log.Debugf("verify: mismatched merkleroot: %v != %v", proofRoot, merkleRoot)
		return 0
	}
	if !containsDigest(matches, coinTxId) {
		g.log.Debugf("verify: cointxid: %v not matched by proof", coinTxId)
		return 0
	}

	tx, err := currency.DecodeTransaction(currency.Komodo, depositHex)
	if nil != err {
		g.log.Debugf("verify: deposit hex error: %s", err)
		return 0
	}

	claimAddress, _, err := tx.Output(int(claimVout))
	if nil != err {
		g.log.Debugf("verify: claim vout: %d  error: %s", claimVout, err)
		return 0
	}
	destAddress, err := currency.NormalAddress(currency.Komodo, destPub)
	if nil != err || claimAddress != destAddress {
		g.log.Debugf("verify: claimaddr: %q != destpubaddr: %q", claimAddress, destAddress)
		return 0
	}

	value := int64(0)
	found := false
	for i := 0; i < tx.OutputCount(); i += 1 {
		address, v, err := tx.Output(i)
		if nil == err && address == depositAddress {
			value = v
			found = true
			break
		}
	}
	if !found {
		g.log.Debugf("verify: no output pays: %q", depositAddress)
		return 0
	}

	if tx.TxId() != coinTxId {
		g.log.Debugf("verify: txid: %v != cointxid: %v", tx.TxId(), coinTxId)
		return 0
	}

	g.log.Infof("verified proof for cointxid: %v  value: %d", coinTxId, value)
	return value
}

func containsDigest(list []merkle.Digest, d merkle.Digest) bool {
	for _, item := range list {
		if item == d {
			return true
		}
	}
	return false
}
