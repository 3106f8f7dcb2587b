package types

import "time"

// SwapRequest represents a user's swap intent before routing.
type SwapRequest struct {
	SourceToken   string // token contract address on the source chain
	DestToken     string // token contract address on the destination chain
	SourceChainID int64
	DestChainID   int64
	SourceAmount  string // positive integer string in the token's smallest unit
	WalletAddress string
}

// SwapRoute is derived solely from the chain ids of a request.
type SwapRoute string

const (
	RouteSameChain  SwapRoute = "same-chain"
	RouteCrossChain SwapRoute = "cross-chain"
)

// RouteFor computes the settlement route for a request. Pure function of
// the two chain ids.
func RouteFor(req *SwapRequest) SwapRoute {
	if req.SourceChainID == req.DestChainID {
		return RouteSameChain
	}
	return RouteCrossChain
}

// Quote is a venue's priced answer to a SwapRequest. Immutable once
// returned; a fresh Quote is always re-fetched before an order is built.
type Quote struct {
	SourceToken    string
	DestToken      string
	SourceChainID  int64
	DestChainID    int64
	SourceAmount   string
	DestAmount     string // estimated, in the destination token's smallest unit
	EstimatedGas   string
	PriceImpactBps int

	// SecretsCount is the number of partial fills the cross-chain venue's
	// preset allows. Zero for same-chain quotes.
	SecretsCount int
}

// OrderStatus is the order state machine:
// Created -> Submitted -> {Executed | Expired | Refunded}.
// Same-chain orders stop at Pending; the venue is authoritative past that.
type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusPending   OrderStatus = "pending"
	StatusSubmitted OrderStatus = "submitted"
	StatusExecuted  OrderStatus = "executed"
	StatusExpired   OrderStatus = "expired"
	StatusRefunded  OrderStatus = "refunded"
)

// IsTerminal reports whether no further transitions are expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusExecuted, StatusExpired, StatusRefunded:
		return true
	}
	return false
}

// Order is created once per user swap intent; immutable except for Status.
type Order struct {
	ID            string
	OrderHash     string // cross-chain venue order hash; empty on same-chain
	TxHash        string // same-chain settlement transaction id
	Route         SwapRoute
	HashLock      string   // hex, cross-chain only
	SecretHashes  []string // hex, cross-chain only
	WalletAddress string
	Status        OrderStatus
	CreatedAt     time.Time
}

// ReadyFill identifies a partial fill index that is ready to receive its
// secret.
type ReadyFill struct {
	Idx int `json:"idx"`
}
