package types

// AccountToken is one row of the explorer's account token listing.
type AccountToken struct {
	TokenAccount  string  `json:"tokenAccount"`
	TokenAddress  string  `json:"tokenAddress"`
	TokenSymbol   string  `json:"tokenSymbol,omitempty"`
	TokenName     string  `json:"tokenName,omitempty"`
	TokenDecimals int64   `json:"tokenDecimals"`
	Amount        string  `json:"amount"`
	UIAmount      float64 `json:"uiAmount"`
}
