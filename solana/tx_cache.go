// Package solana
package solana

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sobatoken/burn-backend/types"
)

// txCache keeps fetched transaction details. A transaction never changes once
// it is returned by getTransaction, so entries do not expire.
type txCache struct {
	store *lru.Cache[string, *types.TransactionDetail]
}

func newTxCache(maxEntries int) *txCache {
	if maxEntries <= 0 {
		return nil
	}
	store, err := lru.New[string, *types.TransactionDetail](maxEntries)
	if err != nil {
		return nil
	}
	return &txCache{store: store}
}

func (c *txCache) Get(signature string) (*types.TransactionDetail, bool) {
	if c == nil {
		return nil, false
	}
	return c.store.Get(signature)
}

func (c *txCache) Add(detail *types.TransactionDetail) {
	if c == nil || detail == nil {
		return
	}
	c.store.Add(detail.Signature, detail)
}

func (c *txCache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.Len()
}
