// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateways

import (
	"github.com/bitmark-inc/gatewaysd/account"
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/oracles"
)

// Tally - the agreement of a signer set on the merkle root at one height
type Tally struct {
	MerkleRoot merkle.Digest       `json:"merkleRoot"`
	Support    int                 `json:"support"`
	Signers    int                 `json:"signers"`
	Publishers []account.PublicKey `json:"publishers"`
	TxIds      []merkle.Digest     `json:"txIds"`
}

// ReverseScan - follow a publisher's baton chain back to the
// publication for height
//
// returns the published merkle root and the publication txid, or two
// zero digests if the chain ends, leaves the oracle, loops, runs past
// the hop limit, or the matching publication has no usable root
func (g *Gateways) ReverseScan(height int32, oracleTxId merkle.Digest, baton merkle.Digest) (merkle.Digest, merkle.Digest) {
	visited := make(map[merkle.Digest]struct{})

	for hops := 0; hops < g.maximumHops; hops += 1 {
		if _, seen := visited[baton]; seen {
			g.log.Warnf("reverse scan: loop at: %v", baton)
			break
		}
		visited[baton] = struct{}{}

		tx, ok := g.getTransaction(baton)
		if !ok || 0 == len(tx.Outputs) {
			break
		}
		data, err := oracles.UnpackData(tx.Memo())
		if nil != err || data.OracleTxId != oracleTxId {
			break
		}

		if h, ok := oracles.SampleHeight(data.Data); ok && h == height {
			sample, err := oracles.ParseMerkleSample(data.Data)
			if nil != err || sample.MerkleRoot.IsZero() {
				g.log.Debugf("reverse scan: height: %d  txid: %v  missing hash", height, baton)
				return merkle.Digest{}, merkle.Digest{}
			}
			g.log.Debugf("reverse scan: height: %d  txid: %v  root: %v", height, baton, sample.MerkleRoot)
			return sample.MerkleRoot, baton
		}
		baton = data.BatonTxId
	}
	return merkle.Digest{}, merkle.Digest{}
}

// Tally - scan every signer's feed for height and count agreement
// with the first root found
//
// the tally is always returned; the error is set when there is no
// root or fewer than half the signers (integer division) support it
func (g *Gateways) Tally(height int32, oracleTxId merkle.Digest, signers []account.PublicKey) (*Tally, error) {
	tally := &Tally{
		Signers:    len(signers),
		Publishers: []account.PublicKey{},
		TxIds:      []merkle.Digest{},
	}
	for _, signer := range signers {
		baton := g.oracles.Baton(oracleTxId, signer)
		root, txId := g.ReverseScan(height, oracleTxId, baton)
		if root.IsZero() {
			continue
		}
		if tally.MerkleRoot.IsZero() {
			tally.MerkleRoot = root
			tally.Support = 1
		} else if root == tally.MerkleRoot {
			tally.Support += 1
		}
		tally.Publishers = append(tally.Publishers, signer)
		tally.TxIds = append(tally.TxIds, txId)
	}

	g.log.Debugf("tally: height: %d  oracle: %v  m: %d of n: %d", height, oracleTxId, tally.Support, tally.Signers)

	if tally.MerkleRoot.IsZero() || tally.Support < tally.Signers/2 {
		return tally, fault.MerkleRootNotFound
	}
	return tally, nil
}
