// Package types
package types

import (
	"time"
)

// SignatureRecord references a transaction that touched an address.
type SignatureRecord struct {
	Signature string     `json:"signature"`
	Slot      uint64     `json:"slot"`
	BlockTime *time.Time `json:"blockTime,omitempty"`
}

// TransactionDetail keeps the parts of getTransaction we read.
type TransactionDetail struct {
	Signature    string     `json:"signature"`
	Slot         uint64     `json:"slot"`
	BlockTime    *time.Time `json:"blockTime,omitempty"`
	PreBalances  []uint64   `json:"preBalances"`
	PostBalances []uint64   `json:"postBalances"`
}
