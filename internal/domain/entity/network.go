package entity

// NetworkDefinition holds the configuration for the blockchain network the service reads from.
// It is built once at startup and never mutated afterwards.
type NetworkDefinition struct {
	ChainID        uint64 `json:"chainId,string" yaml:"chainId"`
	Name           string `json:"name" yaml:"name"`
	Identifier     string `json:"identifier" yaml:"identifier"` // short id, e.g. "ethereum", "sepolia"
	NativeSymbol   string `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals uint8  `json:"nativeDecimals,string" yaml:"nativeDecimals"`
	RPCURL         string `json:"rpcUrl" yaml:"rpcUrl"`
	ExplorerURL    string `json:"explorerUrl" yaml:"explorerUrl"`
}

// AddressURL returns the block explorer page for the given address.
func (n NetworkDefinition) AddressURL(address string) string {
	return n.ExplorerURL + "/address/" + address
}
