package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"balance_assistant/internal/domain/entity"
)

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:        1,
		Name:           "Ethereum Mainnet",
		Identifier:     "ethereum",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		RPCURL:         "https://ethereum-rpc.publicnode.com",
		ExplorerURL:    "https://etherscan.io",
	}
	Sepolia = entity.NetworkDefinition{
		ChainID:        11155111,
		Name:           "Sepolia Testnet",
		Identifier:     "sepolia",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		RPCURL:         "https://ethereum-sepolia-rpc.publicnode.com",
		ExplorerURL:    "https://sepolia.etherscan.io",
	}
	BSC = entity.NetworkDefinition{
		ChainID:        56,
		Name:           "BNB Smart Chain",
		Identifier:     "bsc",
		NativeSymbol:   "BNB",
		NativeDecimals: 18,
		RPCURL:         "https://bsc-rpc.publicnode.com",
		ExplorerURL:    "https://bscscan.com",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:        137,
		Name:           "Polygon PoS",
		Identifier:     "polygon",
		NativeSymbol:   "POL",
		NativeDecimals: 18,
		RPCURL:         "https://polygon-bor-rpc.publicnode.com",
		ExplorerURL:    "https://polygonscan.com",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:        42161,
		Name:           "Arbitrum One",
		Identifier:     "arbitrum",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		RPCURL:         "https://arbitrum-one-rpc.publicnode.com",
		ExplorerURL:    "https://arbiscan.io",
	}
	Base = entity.NetworkDefinition{
		ChainID:        8453,
		Name:           "Base",
		Identifier:     "base",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		RPCURL:         "https://base-rpc.publicnode.com",
		ExplorerURL:    "https://basescan.org",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:        10,
		Name:           "OP Mainnet",
		Identifier:     "optimism",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		RPCURL:         "https://optimism-rpc.publicnode.com",
		ExplorerURL:    "https://optimistic.etherscan.io",
	}
)

// DefaultIdentifier is used when the configuration does not name a network.
const DefaultIdentifier = "ethereum"

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{
	Ethereum.Identifier: Ethereum,
	Sepolia.Identifier:  Sepolia,
	BSC.Identifier:      BSC,
	Polygon.Identifier:  Polygon,
	Arbitrum.Identifier: Arbitrum,
	Base.Identifier:     Base,
	Optimism.Identifier: Optimism,
}

// Identifiers returns the known network identifiers in sorted order.
func Identifiers() []string {
	ids := make([]string, 0, len(allKnownDefinitions))
	for id := range allKnownDefinitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the compiled-in definition for identifier (case-insensitive).
func Lookup(identifier string) (entity.NetworkDefinition, bool) {
	def, ok := allKnownDefinitions[strings.ToLower(strings.TrimSpace(identifier))]
	return def, ok
}

// Resolve selects the network the process will serve. An empty identifier selects
// DefaultIdentifier; a non-empty rpcURLOverride replaces the compiled-in endpoint.
// The returned value is a copy and is never changed after startup.
func Resolve(identifier, rpcURLOverride string) (entity.NetworkDefinition, error) {
	if strings.TrimSpace(identifier) == "" {
		identifier = DefaultIdentifier
	}
	def, ok := Lookup(identifier)
	if !ok {
		return entity.NetworkDefinition{}, fmt.Errorf("unknown network %q (known: %s)", identifier, strings.Join(Identifiers(), ", "))
	}
	if override := strings.TrimSpace(rpcURLOverride); override != "" {
		def.RPCURL = override
	}
	def.ExplorerURL = strings.TrimRight(def.ExplorerURL, "/")
	return def, nil
}
