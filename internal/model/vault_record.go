package model

// VaultRecord is the storage representation of a vault's current state.
type VaultRecord struct {
	Address            string   `json:"address"`
	SetupMaster        string   `json:"setup_master"`
	FeeAdministrator   string   `json:"fee_administrator"`
	Assets             []string `json:"assets"`
	Weights            []uint64 `json:"weights"`
	Balances           []string `json:"balances"`
	Amplification      uint64   `json:"amplification"`
	Name               string   `json:"name"`
	Symbol             string   `json:"symbol"`
	OnlyLocal          bool     `json:"only_local"`
	Ready              bool     `json:"ready"`
	VaultFee           uint64   `json:"vault_fee"`
	GovernanceFeeShare uint64   `json:"governance_fee_share"`
	ChainInterface     string   `json:"chain_interface,omitempty"`
}
