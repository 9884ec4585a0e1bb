package factory

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"vaultCore/internal/vault"
)

// MaxVaultAssets is the maximum number of assets a vault may hold.
const MaxVaultAssets = 3

// AmplificationScale is the unit-scaled amplification value of a volatile
// vault; amplified vaults use values strictly below it.
const AmplificationScale uint64 = 1e18

// DeployConfig is the full configuration supplied to Deploy.
type DeployConfig struct {
	Assets         []common.Address
	Balances       []*big.Int
	Weights        []uint64
	Amplification  uint64
	Name           string
	Symbol         string
	Deployer       common.Address
	OnlyLocal      bool
	ChainInterface common.Address
}

// Factory deploys vaults and keeps a registry of the deployed instances.
type Factory struct {
	mu     sync.Mutex
	logger *zap.Logger
	nonce  uint64
	vaults map[common.Address]*vault.Vault
}

// New builds an empty factory.
func New(logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		logger: logger,
		vaults: make(map[common.Address]*vault.Vault),
	}
}

// Deploy validates the configuration and creates a vault in the unfinished
// state, with the deployer as setup master and the only-local flag fixed.
func (f *Factory) Deploy(cfg DeployConfig) (*vault.Vault, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	addr := deriveAddress(cfg.Deployer, f.nonce)
	f.nonce++

	v := vault.New(vault.Config{
		Address:        addr,
		Deployer:       cfg.Deployer,
		Assets:         cfg.Assets,
		Weights:        cfg.Weights,
		Balances:       cfg.Balances,
		Amplification:  cfg.Amplification,
		Name:           cfg.Name,
		Symbol:         cfg.Symbol,
		OnlyLocal:      cfg.OnlyLocal,
		ChainInterface: cfg.ChainInterface,
	})
	f.vaults[addr] = v

	f.logger.Info("vault deployed",
		zap.String("address", addr.Hex()),
		zap.String("deployer", cfg.Deployer.Hex()),
		zap.Int("assets", len(cfg.Assets)),
		zap.Bool("only_local", cfg.OnlyLocal),
	)
	return v, nil
}

// Get returns a deployed vault by address.
func (f *Factory) Get(addr common.Address) (*vault.Vault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vaults[addr]
	return v, ok
}

// List returns all deployed vaults.
func (f *Factory) List() []*vault.Vault {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*vault.Vault, 0, len(f.vaults))
	for _, v := range f.vaults {
		out = append(out, v)
	}
	return out
}

func validate(cfg DeployConfig) error {
	if cfg.Deployer == (common.Address{}) {
		return fmt.Errorf("deployer is required")
	}
	if len(cfg.Assets) == 0 {
		return fmt.Errorf("at least one asset is required")
	}
	if len(cfg.Assets) > MaxVaultAssets {
		return fmt.Errorf("too many assets: %d > %d", len(cfg.Assets), MaxVaultAssets)
	}
	if len(cfg.Weights) != len(cfg.Assets) {
		return fmt.Errorf("weights length %d does not match assets length %d", len(cfg.Weights), len(cfg.Assets))
	}
	if len(cfg.Balances) != len(cfg.Assets) {
		return fmt.Errorf("balances length %d does not match assets length %d", len(cfg.Balances), len(cfg.Assets))
	}

	seen := make(map[common.Address]struct{}, len(cfg.Assets))
	for i, asset := range cfg.Assets {
		if asset == (common.Address{}) {
			return fmt.Errorf("asset %d is the zero address", i)
		}
		if _, dup := seen[asset]; dup {
			return fmt.Errorf("duplicate asset %s", asset.Hex())
		}
		seen[asset] = struct{}{}

		if cfg.Weights[i] == 0 {
			return fmt.Errorf("weight for asset %s must be greater than zero", asset.Hex())
		}
		if cfg.Balances[i] == nil || cfg.Balances[i].Sign() <= 0 {
			return fmt.Errorf("balance for asset %s must be greater than zero", asset.Hex())
		}
	}

	if cfg.Amplification == 0 || cfg.Amplification > AmplificationScale {
		return fmt.Errorf("amplification must be in (0, %d], got %d", AmplificationScale, cfg.Amplification)
	}
	if cfg.OnlyLocal && cfg.ChainInterface != (common.Address{}) {
		return fmt.Errorf("local-only vault cannot have a chain interface")
	}
	return nil
}

// deriveAddress derives a deterministic vault address from the deployer and
// the factory nonce.
func deriveAddress(deployer common.Address, nonce uint64) common.Address {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)
	hash := crypto.Keccak256(deployer.Bytes(), buf[:])
	return common.BytesToAddress(hash[12:])
}
