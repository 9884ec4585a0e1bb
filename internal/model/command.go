package model

import "encoding/json"

// Lifecycle command operations.
const (
	OpDeploy                = "deploy"
	OpFinishSetup           = "finish_setup"
	OpSetConnection         = "set_connection"
	OpSetVaultFee           = "set_vault_fee"
	OpSetGovernanceFeeShare = "set_governance_fee_share"
	OpSetFeeAdministrator   = "set_fee_administrator"
)

// Command is one serialized lifecycle call read from the input stream.
// Commands are applied in seq order; seq must be strictly increasing.
type Command struct {
	Seq       uint64          `json:"seq"`
	Op        string          `json:"op"`
	Sender    string          `json:"sender"`
	Vault     string          `json:"vault,omitempty"`
	Timestamp uint64          `json:"timestamp"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// DeployParams carries the configuration for a deploy command.
type DeployParams struct {
	Assets         []string `json:"assets"`
	Balances       []string `json:"balances"`
	Weights        []uint64 `json:"weights"`
	Amplification  uint64   `json:"amplification"`
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	OnlyLocal      bool     `json:"only_local"`
	ChainInterface string   `json:"chain_interface,omitempty"`
}

// ConnectionParams carries the arguments of a set_connection command.
type ConnectionParams struct {
	ChannelID   string `json:"channel_id"`
	RemoteVault string `json:"remote_vault"`
	State       bool   `json:"state"`
}

// FeeParams carries the unit-scaled fee value for fee commands.
type FeeParams struct {
	Fee uint64 `json:"fee"`
}

// FeeAdministratorParams carries the new administrator address.
type FeeAdministratorParams struct {
	Administrator string `json:"administrator"`
}
