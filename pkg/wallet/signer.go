// Package wallet provides ECDSA signing and same-chain transaction
// broadcast for the order executor. Key custody beyond an in-memory
// private key is out of scope.
package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// PrivateKeySigner signs payloads and transactions with a single ECDSA
// key held in process memory.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewPrivateKeySigner parses a hex-encoded private key, with or without
// the 0x prefix.
func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &PrivateKeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the 0x-prefixed wallet address derived from the key.
func (s *PrivateKeySigner) Address() string {
	return s.address.Hex()
}

// SignPayload signs keccak256(payload) and returns the signature as
// 0x-prefixed hex. Used for cross-chain order submission.
func (s *PrivateKeySigner) SignPayload(payload []byte) (string, error) {
	sig, err := crypto.Sign(crypto.Keccak256(payload), s.key)
	if err != nil {
		return "", fmt.Errorf("sign payload: %w", err)
	}
	return hexutil.Encode(sig), nil
}
