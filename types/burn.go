// Package types
package types

import (
	"time"
)

type BurnHistoryEntry struct {
	Signature string    `json:"signature"`
	Timestamp time.Time `json:"timestamp"`
	Amount    uint64    `json:"amount"`
}

type BurnStats struct {
	BurnedTokens string              `json:"burnedTokens"`
	History      []*BurnHistoryEntry `json:"history"`
}

// BurnRecord is the archived form of a burn transaction.
type BurnRecord struct {
	TxHash     string    `json:"txHash" bson:"txHash"`
	BurnAmount uint64    `json:"burnAmount" bson:"burnAmount"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	UpdatedAt  int64     `json:"updatedAt" bson:"updatedAt,omitempty"`
}
