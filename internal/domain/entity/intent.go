package entity

// BalanceIntent is the classification of a single user message.
type BalanceIntent struct {
	Matched         bool
	ContractAddress string
	WalletAddress   string
}

// NoBalanceIntent is returned for messages that are not balance requests.
var NoBalanceIntent = BalanceIntent{}
