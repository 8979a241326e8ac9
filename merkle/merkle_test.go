// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/gatewaysd/merkle"
)

func leaves(n int) []merkle.Digest {
	ids := make([]merkle.Digest, n)
	for i := range ids {
		ids[i] = merkle.NewDigest([]byte{byte(i)})
	}
	return ids
}

func mustDigest(t *testing.T, s string) merkle.Digest {
	d, err := merkle.DigestFromHex(s)
	if nil != err {
		t.Fatalf("digest from hex: %q error: %s", s, err)
	}
	return d
}

func TestRoot(t *testing.T) {
	items := []struct {
		count int
		root  string
	}{
		{1, "9a538906e6466ebd2617d321f71bc94e56056ce213d366773699e28158e00614"},
		{2, "55766b905b9b12c5b1ea831fa5ffb90e1cdf3941230d52c7bce2eb38bc83be4b"},
		{3, "d0c1e5f32d1d424371ac1018770af4446140436d5926d112c67f562fe0df29e1"},
	}

	for _, item := range items {
		root := merkle.Root(leaves(item.count))
		assert.Equal(t, mustDigest(t, item.root), root, "root of %d", item.count)
	}
}

func TestFullMerkleTree(t *testing.T) {
	assert.Nil(t, merkle.FullMerkleTree(nil), "empty")
	assert.True(t, merkle.Root(nil).IsZero(), "empty root")

	// 3 leaves + 2 + 1
	tree := merkle.FullMerkleTree(leaves(3))
	assert.Equal(t, 6, len(tree), "tree size")

	// 5 leaves + 3 + 2 + 1
	tree = merkle.FullMerkleTree(leaves(5))
	assert.Equal(t, 11, len(tree), "tree size")
}
