package port

import (
	"context"
	"math/big"

	"balance_assistant/internal/domain/entity"
)

// TokenReader defines the reads the balance query needs from an EVM network.
// Addresses are passed in canonical 0x-prefixed form and are already validated.
// Errors wrap entity.ErrContractRead or entity.ErrTransport.
type TokenReader interface {
	// BalanceOf calls balanceOf(owner) on the token contract.
	BalanceOf(ctx context.Context, contractAddress, ownerAddress string) (*big.Int, error)

	Decimals(ctx context.Context, contractAddress string) (uint8, error)
	Symbol(ctx context.Context, contractAddress string) (string, error)
	Name(ctx context.Context, contractAddress string) (string, error)

	// NativeBalance fetches the native currency balance (e.g., ETH) for a wallet.
	NativeBalance(ctx context.Context, walletAddress string) (*big.Int, error)

	// Definition returns the network definition associated with this reader.
	Definition() entity.NetworkDefinition
}
