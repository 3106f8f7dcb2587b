package hashlock

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SecretLength is the byte length of every fill secret.
const SecretLength = 32

// Secret is client-side secret material. It must never leave process
// memory until the settlement watcher releases it for a ready fill.
type Secret [SecretLength]byte

// Hex returns the 0x-prefixed hex encoding used on the wire at
// disclosure time.
func (s Secret) Hex() string {
	return hexutil.Encode(s[:])
}

// Hash returns keccak256 of the secret, the per-fill hash committed in
// the submitted order.
func (s Secret) Hash() [32]byte {
	var h [32]byte
	copy(h[:], crypto.Keccak256(s[:]))
	return h
}

// Lock is the result of BuildHashLock: everything the order executor
// needs to bind an HTLC order, plus the secrets the watcher will release.
type Lock struct {
	Secrets      []Secret
	HashLock     [32]byte
	SecretHashes [][32]byte
}

// SecretHashesHex returns the committed per-fill hashes as 0x-prefixed
// hex, in fill-index order.
func (l *Lock) SecretHashesHex() []string {
	out := make([]string, len(l.SecretHashes))
	for i, h := range l.SecretHashes {
		out[i] = hexutil.Encode(h[:])
	}
	return out
}

// HashLockHex returns the hash lock as 0x-prefixed hex.
func (l *Lock) HashLockHex() string {
	return hexutil.Encode(l.HashLock[:])
}

// BuildHashLock generates secretsCount fresh secrets and derives the hash
// lock the settlement venue commits to. secretsCount comes from the
// venue preset at quote time; it is never chosen here.
//
// A single-fill order locks directly on keccak256(secret). A multi-fill
// order locks on the Merkle root over leaves binding each secret hash to
// its fill index, so a counterparty can verify one disclosed secret
// without learning the others.
func BuildHashLock(secretsCount int) (*Lock, error) {
	if secretsCount < 1 {
		return nil, fmt.Errorf("invalid secrets count %d: preset must allow at least one fill", secretsCount)
	}

	secrets := make([]Secret, secretsCount)
	hashes := make([][32]byte, secretsCount)
	for i := range secrets {
		if _, err := rand.Read(secrets[i][:]); err != nil {
			return nil, fmt.Errorf("generate secret %d: %w", i, err)
		}
		hashes[i] = secrets[i].Hash()
	}

	lock := &Lock{
		Secrets:      secrets,
		SecretHashes: hashes,
	}

	if secretsCount == 1 {
		lock.HashLock = hashes[0]
		return lock, nil
	}

	leaves := make([][32]byte, secretsCount)
	for i, h := range hashes {
		leaves[i] = leafHash(uint64(i), h)
	}
	lock.HashLock = merkleRoot(leaves)
	return lock, nil
}

// leafHash binds a secret hash to its fill index:
// keccak256(uint64_be(index) || secretHash).
func leafHash(index uint64, secretHash [32]byte) [32]byte {
	var buf [8 + 32]byte
	binary.BigEndian.PutUint64(buf[:8], index)
	copy(buf[8:], secretHash[:])
	var h [32]byte
	copy(h[:], crypto.Keccak256(buf[:]))
	return h
}
