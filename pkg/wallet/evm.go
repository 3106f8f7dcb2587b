package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"fusion-swap/pkg/client"
)

// fallbackGasLimit covers venue swap payloads that omit a gas estimate.
const fallbackGasLimit = 350_000

// EVMSender broadcasts venue-built swap call data on the configured
// chains. Clients are established at construction so a missing RPC
// endpoint fails at startup rather than mid-order.
type EVMSender struct {
	clients map[int64]*ethclient.Client
	signer  *PrivateKeySigner
}

// NewEVMSender dials one RPC client per configured chain.
func NewEVMSender(rpcURLs map[int64]string, signer *PrivateKeySigner) (*EVMSender, error) {
	if signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	clients := make(map[int64]*ethclient.Client, len(rpcURLs))
	for chainID, rpcURL := range rpcURLs {
		if rpcURL == "" {
			return nil, fmt.Errorf("no RPC URL configured for chain %d", chainID)
		}
		ec, err := ethclient.Dial(rpcURL)
		if err != nil {
			return nil, fmt.Errorf("connect to chain %d RPC: %w", chainID, err)
		}
		clients[chainID] = ec
	}
	return &EVMSender{clients: clients, signer: signer}, nil
}

// SendCallData signs and broadcasts a venue-built transaction, returning
// the settlement transaction hash.
func (s *EVMSender) SendCallData(ctx context.Context, chainID int64, call *client.SwapCallData) (string, error) {
	ec, ok := s.clients[chainID]
	if !ok {
		return "", fmt.Errorf("no RPC client configured for chain %d", chainID)
	}
	if !common.IsHexAddress(call.To) {
		return "", fmt.Errorf("invalid transaction target address %q", call.To)
	}

	from := common.HexToAddress(s.signer.Address())
	nonce, err := ec.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("get nonce: %w", err)
	}
	gasPrice, err := ec.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("get gas price: %w", err)
	}

	value := new(big.Int)
	if call.Value != "" {
		parsed, err := hexutil.DecodeBig(call.Value)
		if err != nil {
			if _, ok := value.SetString(call.Value, 10); !ok {
				return "", fmt.Errorf("invalid transaction value %q", call.Value)
			}
		} else {
			value = parsed
		}
	}

	data, err := hexutil.Decode(call.Data)
	if err != nil {
		return "", fmt.Errorf("invalid transaction call data: %w", err)
	}

	gasLimit := call.GasLimit
	if gasLimit == 0 {
		gasLimit = fallbackGasLimit
	}

	to := common.HexToAddress(call.To)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(chainID)), s.signer.key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	if err := ec.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("broadcast transaction: %w", err)
	}
	return signedTx.Hash().Hex(), nil
}
