// Package types
package types

// TokenomicsView is the supply summary served on /api/tokenomics.
type TokenomicsView struct {
	TotalSupply       string  `json:"totalSupply"`
	CirculatingSupply string  `json:"circulatingSupply"`
	BurnedTokens      string  `json:"burnedTokens"`
	Holders           int64   `json:"holders"`
	MarketCap         float64 `json:"marketCap"`
	Price             float64 `json:"price"`
	Volume24h         float64 `json:"volume24h"`
}

// TokenMetadata is what the explorer knows about a mint.
type TokenMetadata struct {
	TotalSupply string  `json:"totalSupply"`
	HolderCount int64   `json:"holderCount"`
	MarketCap   float64 `json:"marketCap"`
	Price       float64 `json:"price"`
	Volume24h   float64 `json:"volume24h"`
}
