package service

import (
	"fmt"
	"math/big"
	"strings"

	"balance_assistant/internal/domain/entity"
)

// FormatSuccess renders a balance payload as the text block shown to the user.
func FormatSuccess(p entity.BalancePayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Token Balance for %s (%s)\n", p.TokenName, p.TokenSymbol)
	fmt.Fprintf(&b, "Balance: %s %s\n", p.FormattedBalance, p.TokenSymbol)
	fmt.Fprintf(&b, "Contract: %s\n", p.ContractAddress)
	fmt.Fprintf(&b, "Wallet: %s\n", p.WalletAddress)
	fmt.Fprintf(&b, "Native Balance: %s %s\n", p.NativeBalance, p.NativeSymbol)
	fmt.Fprintf(&b, "Network: %s (Chain ID %d)\n", p.Network.Name, p.Network.ChainID)
	fmt.Fprintf(&b, "View on Explorer: %s", p.ExplorerURL)
	return b.String()
}

// FormatError renders a failure as an error line followed by its hint, if any.
func FormatError(p entity.ErrorPayload) string {
	if p.Hint == "" {
		return "Error: " + p.Message
	}
	return fmt.Sprintf("Error: %s\nHint: %s", p.Message, p.Hint)
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
