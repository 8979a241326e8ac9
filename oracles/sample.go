// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracles

import (
	"github.com/bitmark-inc/gatewaysd/fault"
	"github.com/bitmark-inc/gatewaysd/merkle"
	"github.com/bitmark-inc/gatewaysd/util"
)

// MerkleSample - one published external block: the "Ihh" format
type MerkleSample struct {
	Height     int32         `json:"height"`
	BlockHash  merkle.Digest `json:"blockHash"`
	MerkleRoot merkle.Digest `json:"merkleRoot"`
}

// ParseMerkleSample - decode a publication payload
//
// bytes beyond the three fields are ignored
func ParseMerkleSample(data []byte) (*MerkleSample, error) {
	r := util.NewReader(data)
	sample := &MerkleSample{
		Height:     r.Int32(),
		BlockHash:  r.Hash(),
		MerkleRoot: r.Hash(),
	}
	if nil != r.Err() {
		return nil, fault.InvalidMerkleSample
	}
	return sample, nil
}

// Pack - encode as a publication payload
func (sample *MerkleSample) Pack() []byte {
	w := &util.Writer{}
	w.Int32(sample.Height).
		Hash(sample.BlockHash).
		Hash(sample.MerkleRoot)
	return w.Bytes()
}

// SampleHeight - just the height field of a publication payload
func SampleHeight(data []byte) (int32, bool) {
	r := util.NewReader(data)
	height := r.Int32()
	return height, nil == r.Err()
}
