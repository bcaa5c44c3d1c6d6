package entity

// Fallback values used when an optional ERC-20 metadata read fails.
const (
	DefaultTokenDecimals uint8 = 18
	DefaultTokenSymbol         = "UNKNOWN"
	DefaultTokenName           = "Unknown Token"
)

// TokenInfo holds the details of a specific token.
type TokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// DefaultTokenInfo returns the metadata reported when none of the optional reads succeed.
func DefaultTokenInfo() TokenInfo {
	return TokenInfo{
		Name:     DefaultTokenName,
		Symbol:   DefaultTokenSymbol,
		Decimals: DefaultTokenDecimals,
	}
}
