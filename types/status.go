package types

import (
	"time"
)

type SolanaStatus struct {
	RPC          string `json:"rpc"`
	TokenAddress string `json:"tokenAddress"`
}

type HealthStatus struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Solana    SolanaStatus `json:"solana"`
}
