package hashlock

import "github.com/ethereum/go-ethereum/crypto"

// merkleRoot folds the leaves pairwise with keccak256(left || right)
// until one node remains. An odd node at any level is carried up
// unchanged. Callers guarantee at least one leaf.
func merkleRoot(leaves [][32]byte) [32]byte {
	level := make([][32]byte, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, nodeHash(level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
}

func nodeHash(left, right [32]byte) [32]byte {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	var h [32]byte
	copy(h[:], crypto.Keccak256(buf[:]))
	return h
}
