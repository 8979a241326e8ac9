// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// FullMerkleTree - compute the merkle tree from a set of transaction ids
//
// structure is:
//  1. N * transaction digests
//  2. level 1..m digests
//  3. merkle root digest (last element)
//
// an odd element at any level is paired with itself
func FullMerkleTree(txIds []Digest) []Digest {

	idCount := len(txIds)
	if 0 == idCount {
		return nil
	}

	totalLength := 1 // all ids + space for the final root
	for n := idCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	tree := make([]Digest, totalLength)
	copy(tree[:], txIds)

	n := idCount
	j := 0
	for workLength := idCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = hashPair(tree[j], tree[k])
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - the merkle root of a set of transaction ids
func Root(txIds []Digest) Digest {
	tree := FullMerkleTree(txIds)
	if 0 == len(tree) {
		return Digest{}
	}
	return tree[len(tree)-1]
}

// concatenate two digests and hash them
func hashPair(left Digest, right Digest) Digest {
	b := make([]byte, 0, 2*DigestLength)
	b = append(b, left[:]...)
	b = append(b, right[:]...)
	return NewDigest(b)
}
