package entity

import "math/big"

// BalanceResult is the outcome of a single successful balance query.
// It is owned by one request and never shared.
type BalanceResult struct {
	Token            TokenInfo
	ContractAddress  string
	WalletAddress    string
	RawBalance       *big.Int
	FormattedBalance string
	RawNativeBalance *big.Int
	NativeBalance    string
	Network          NetworkDefinition
}

// BalancePayload is the wire shape of a BalanceResult. Integers that may exceed
// 64 bits are carried as decimal strings.
type BalancePayload struct {
	ContractAddress  string            `json:"contractAddress"`
	WalletAddress    string            `json:"walletAddress"`
	TokenName        string            `json:"tokenName"`
	TokenSymbol      string            `json:"tokenSymbol"`
	TokenDecimals    uint8             `json:"tokenDecimals,string"`
	RawBalance       string            `json:"rawBalance"`
	FormattedBalance string            `json:"formattedBalance"`
	RawNativeBalance string            `json:"rawNativeBalance"`
	NativeBalance    string            `json:"nativeBalance"`
	NativeSymbol     string            `json:"nativeSymbol"`
	ExplorerURL      string            `json:"explorerUrl"`
	Network          NetworkDefinition `json:"network"`
}
