package replay

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"vaultCore/internal/factory"
	"vaultCore/internal/model"
	"vaultCore/internal/vault"
)

// apply executes one command against the factory and vault registry and
// returns the journaled outcome plus the vault it touched (nil when the
// command was rejected before reaching a vault).
func (r *Runner) apply(cmd model.Command, appliedAt string) (model.LifecycleEvent, *vault.Vault) {
	event := model.LifecycleEvent{
		Seq:       cmd.Seq,
		Op:        cmd.Op,
		Sender:    cmd.Sender,
		Status:    model.StatusApplied,
		Timestamp: cmd.Timestamp,
		AppliedAt: appliedAt,
	}

	touched, err := r.dispatch(cmd, &event)
	if err != nil {
		event.Status = model.StatusRejected
		event.Error = err.Error()
		return event, nil
	}
	return event, touched
}

func (r *Runner) dispatch(cmd model.Command, event *model.LifecycleEvent) (*vault.Vault, error) {
	sender, err := parseAddress(cmd.Sender)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}

	if cmd.Op == model.OpDeploy {
		return r.applyDeploy(cmd, sender, event)
	}

	target, err := parseAddress(cmd.Vault)
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	v, ok := r.factory.Get(target)
	if !ok {
		return nil, fmt.Errorf("unknown vault %s", target.Hex())
	}
	event.VaultAddress = target.Hex()

	switch cmd.Op {
	case model.OpFinishSetup:
		return v, v.FinishSetup(sender)

	case model.OpSetConnection:
		var params model.ConnectionParams
		if err := json.Unmarshal(cmd.Params, &params); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		if params.RemoteVault == "" {
			return nil, fmt.Errorf("remote vault is required")
		}
		remote := common.HexToHash(params.RemoteVault)
		return v, v.SetVaultConnection(sender, params.ChannelID, remote, params.State)

	case model.OpSetVaultFee:
		var params model.FeeParams
		if err := json.Unmarshal(cmd.Params, &params); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return v, v.SetVaultFee(sender, params.Fee)

	case model.OpSetGovernanceFeeShare:
		var params model.FeeParams
		if err := json.Unmarshal(cmd.Params, &params); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return v, v.SetGovernanceFeeShare(sender, params.Fee)

	case model.OpSetFeeAdministrator:
		var params model.FeeAdministratorParams
		if err := json.Unmarshal(cmd.Params, &params); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		admin, err := parseAddress(params.Administrator)
		if err != nil {
			return nil, fmt.Errorf("administrator: %w", err)
		}
		return v, v.SetFeeAdministrator(sender, admin)

	default:
		return nil, fmt.Errorf("unknown op %q", cmd.Op)
	}
}

func (r *Runner) applyDeploy(cmd model.Command, sender common.Address, event *model.LifecycleEvent) (*vault.Vault, error) {
	var params model.DeployParams
	if err := json.Unmarshal(cmd.Params, &params); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}

	assets := make([]common.Address, 0, len(params.Assets))
	for i, raw := range params.Assets {
		asset, err := parseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		assets = append(assets, asset)
	}

	balances := make([]*big.Int, 0, len(params.Balances))
	for i, raw := range params.Balances {
		balance, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, fmt.Errorf("balance %d: invalid int %q", i, raw)
		}
		balances = append(balances, balance)
	}

	var chainInterface common.Address
	if params.ChainInterface != "" {
		parsed, err := parseAddress(params.ChainInterface)
		if err != nil {
			return nil, fmt.Errorf("chain interface: %w", err)
		}
		chainInterface = parsed
	}

	v, err := r.factory.Deploy(factory.DeployConfig{
		Assets:         assets,
		Balances:       balances,
		Weights:        params.Weights,
		Amplification:  params.Amplification,
		Name:           params.Name,
		Symbol:         params.Symbol,
		Deployer:       sender,
		OnlyLocal:      params.OnlyLocal,
		ChainInterface: chainInterface,
	})
	if err != nil {
		return nil, err
	}

	event.VaultAddress = v.Address().Hex()
	return v, nil
}

func parseAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid address %q", raw)
	}
	return common.HexToAddress(raw), nil
}
