package hashlock

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHashLock_SecretCounts(t *testing.T) {
	for _, count := range []int{1, 2, 4, 7} {
		lock, err := BuildHashLock(count)
		require.NoError(t, err)
		assert.Len(t, lock.Secrets, count)
		assert.Len(t, lock.SecretHashes, count)
		assert.Len(t, lock.SecretHashesHex(), count)
	}
}

func TestBuildHashLock_RejectsInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		_, err := BuildHashLock(count)
		require.Error(t, err, "count %d must be rejected", count)
	}
}

func TestBuildHashLock_SingleFillLocksOnSecretHash(t *testing.T) {
	lock, err := BuildHashLock(1)
	require.NoError(t, err)

	// Degenerate case: the lock is the secret hash itself, no Merkle
	// layer involved.
	expected := crypto.Keccak256(lock.Secrets[0][:])
	assert.Equal(t, expected, lock.HashLock[:])
	assert.Equal(t, lock.SecretHashes[0], lock.HashLock)
}

func TestBuildHashLock_MultiFillDiffersFromAnySecretHash(t *testing.T) {
	lock, err := BuildHashLock(4)
	require.NoError(t, err)

	for i, h := range lock.SecretHashes {
		assert.NotEqual(t, h, lock.HashLock, "lock must not equal secret hash %d", i)
	}
}

func TestBuildHashLock_SecretsAreDistinct(t *testing.T) {
	lock, err := BuildHashLock(8)
	require.NoError(t, err)

	seen := make(map[Secret]bool)
	for _, s := range lock.Secrets {
		assert.False(t, seen[s], "duplicate secret generated")
		seen[s] = true
	}
}

func TestMerkleRoot_Deterministic(t *testing.T) {
	leaves := [][32]byte{
		{1}, {2}, {3}, {4}, {5},
	}
	first := merkleRoot(leaves)
	second := merkleRoot(leaves)
	assert.Equal(t, first, second)
}

func TestMerkleRoot_TwoLeaves(t *testing.T) {
	left := [32]byte{0xaa}
	right := [32]byte{0xbb}

	root := merkleRoot([][32]byte{left, right})

	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	var expected [32]byte
	copy(expected[:], crypto.Keccak256(buf[:]))
	assert.Equal(t, expected, root)
}

func TestMerkleRoot_OrderSensitive(t *testing.T) {
	a := [32]byte{1}
	b := [32]byte{2}
	assert.NotEqual(t, merkleRoot([][32]byte{a, b}), merkleRoot([][32]byte{b, a}))
}

func TestLeafHash_BindsIndex(t *testing.T) {
	h := [32]byte{9}
	assert.NotEqual(t, leafHash(0, h), leafHash(1, h))
}

func TestSecretHex(t *testing.T) {
	var s Secret
	s[0] = 0xff
	hex := s.Hex()
	assert.Equal(t, "0x", hex[:2])
	assert.Len(t, hex, 2+64)
}
