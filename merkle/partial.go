// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/gatewaysd/fault"
)

const (
	// an upper bound on transactions in one external block
	maximumTransactions = 4000000 / 60

	// Equihash solution for n=200,k=9 is 1344 bytes, allow some room
	maximumSolutionLength = 4096

	reservedLength = 32
	nonceLength    = 32
)

// BlockHeader - an external chain block header with an Equihash
// solution, as carried at the start of a merkle block proof
type BlockHeader struct {
	Version    int32
	PrevBlock  Digest
	MerkleRoot Digest
	Reserved   [reservedLength]byte
	Timestamp  uint32
	Bits       uint32
	Nonce      [nonceLength]byte
	Solution   []byte
}

// PartialMerkleTree - the pruned merkle tree proving inclusion of
// a subset of a block's transactions
type PartialMerkleTree struct {
	Transactions uint32
	Hashes       []Digest
	Flags        []byte
}

// MerkleBlock - header plus partial tree
type MerkleBlock struct {
	Header BlockHeader
	Tree   PartialMerkleTree
}

// ParseMerkleBlock - decode a serialised merkle block proof
func ParseMerkleBlock(proof []byte) (*MerkleBlock, error) {
	r := bytes.NewReader(proof)

	mb := &MerkleBlock{}
	h := &mb.Header

	if err := binary.Read(r, binary.LittleEndian, &h.Version); nil != err {
		return nil, fault.InvalidProof
	}
	if _, err := io.ReadFull(r, h.PrevBlock[:]); nil != err {
		return nil, fault.InvalidProof
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); nil != err {
		return nil, fault.InvalidProof
	}
	if _, err := io.ReadFull(r, h.Reserved[:]); nil != err {
		return nil, fault.InvalidProof
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Timestamp); nil != err {
		return nil, fault.InvalidProof
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Bits); nil != err {
		return nil, fault.InvalidProof
	}
	if _, err := io.ReadFull(r, h.Nonce[:]); nil != err {
		return nil, fault.InvalidProof
	}
	solution, err := wire.ReadVarBytes(r, 0, maximumSolutionLength, "solution")
	if nil != err {
		return nil, fault.InvalidProof
	}
	h.Solution = solution

	t := &mb.Tree
	if err := binary.Read(r, binary.LittleEndian, &t.Transactions); nil != err {
		return nil, fault.InvalidProof
	}
	count, err := wire.ReadVarInt(r, 0)
	if nil != err || count > maximumTransactions {
		return nil, fault.InvalidProof
	}
	t.Hashes = make([]Digest, count)
	for i := range t.Hashes {
		if _, err := io.ReadFull(r, t.Hashes[i][:]); nil != err {
			return nil, fault.InvalidProof
		}
	}
	flags, err := wire.ReadVarBytes(r, 0, maximumTransactions, "flags")
	if nil != err {
		return nil, fault.InvalidProof
	}
	t.Flags = flags

	if 0 != r.Len() {
		return nil, fault.InvalidProof
	}
	return mb, nil
}

// ExtractMatches - recompute the merkle root and collect the
// transaction ids flagged as matched
func (t *PartialMerkleTree) ExtractMatches() (Digest, []Digest, error) {
	if 0 == t.Transactions || t.Transactions > maximumTransactions {
		return Digest{}, nil, fault.InvalidProof
	}
	if uint32(len(t.Hashes)) > t.Transactions {
		return Digest{}, nil, fault.InvalidProof
	}
	if 8*len(t.Flags) < len(t.Hashes) {
		return Digest{}, nil, fault.InvalidProof
	}

	height := 0
	for t.width(height) > 1 {
		height += 1
	}

	x := extractor{
		tree: t,
	}
	root := x.traverse(height, 0)
	if x.bad {
		return Digest{}, nil, fault.InvalidProof
	}
	// all flag bytes and all hashes must be consumed
	if (x.bitsUsed+7)/8 != len(t.Flags) {
		return Digest{}, nil, fault.InvalidProof
	}
	if x.hashesUsed != len(t.Hashes) {
		return Digest{}, nil, fault.InvalidProof
	}
	return root, x.matches, nil
}

// number of nodes at a given height
func (t *PartialMerkleTree) width(height int) uint32 {
	return (t.Transactions + (1 << uint(height)) - 1) >> uint(height)
}

type extractor struct {
	tree       *PartialMerkleTree
	bitsUsed   int
	hashesUsed int
	matches    []Digest
	bad        bool
}

func (x *extractor) traverse(height int, position uint32) Digest {
	if x.bitsUsed >= 8*len(x.tree.Flags) {
		x.bad = true
		return Digest{}
	}
	flag := 0 != x.tree.Flags[x.bitsUsed/8]&(1<<uint(x.bitsUsed%8))
	x.bitsUsed += 1

	if 0 == height || !flag {
		if x.hashesUsed >= len(x.tree.Hashes) {
			x.bad = true
			return Digest{}
		}
		hash := x.tree.Hashes[x.hashesUsed]
		x.hashesUsed += 1
		if 0 == height && flag {
			x.matches = append(x.matches, hash)
		}
		return hash
	}

	left := x.traverse(height-1, position*2)
	right := left
	if position*2+1 < x.tree.width(height-1) {
		right = x.traverse(height-1, position*2+1)
		// identical siblings allow a forged tree
		if right == left {
			x.bad = true
		}
	}
	return hashPair(left, right)
}
