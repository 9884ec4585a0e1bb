package vault

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"vaultCore/internal/model"
)

// FeeScale is the unit-scaled representation of 100%.
const FeeScale uint64 = 1e18

// MaxGovernanceFeeShare caps the governance fee share at 75%.
const MaxGovernanceFeeShare uint64 = 75e16

// Config carries the deployment-time configuration of a vault. The factory
// validates it before construction; New does not re-validate.
type Config struct {
	Address          common.Address
	Deployer         common.Address
	FeeAdministrator common.Address
	Assets           []common.Address
	Weights          []uint64
	Balances         []*big.Int
	Amplification    uint64
	Name             string
	Symbol           string
	OnlyLocal        bool
	ChainInterface   common.Address
}

type connectionKey struct {
	channelID string
	vault     common.Hash
}

// Vault holds the mutable state of a single vault instance. Every exported
// call is atomic: preconditions are checked before any mutation, so a failed
// call leaves the vault untouched.
type Vault struct {
	mu sync.Mutex

	address          common.Address
	setupMaster      common.Address
	feeAdministrator common.Address
	chainInterface   common.Address
	onlyLocal        bool
	finished         bool

	name          string
	symbol        string
	amplification uint64
	assets        []common.Address
	weights       map[common.Address]uint64
	balances      map[common.Address]*big.Int

	vaultFee           uint64
	governanceFeeShare uint64

	connections map[connectionKey]bool
}

// New constructs a vault in the unfinished state. The setup master is the
// deployer; the fee administrator defaults to the deployer when unset.
func New(cfg Config) *Vault {
	feeAdmin := cfg.FeeAdministrator
	if feeAdmin == (common.Address{}) {
		feeAdmin = cfg.Deployer
	}

	weights := make(map[common.Address]uint64, len(cfg.Assets))
	balances := make(map[common.Address]*big.Int, len(cfg.Assets))
	assets := make([]common.Address, len(cfg.Assets))
	for i, asset := range cfg.Assets {
		assets[i] = asset
		weights[asset] = cfg.Weights[i]
		balances[asset] = new(big.Int).Set(cfg.Balances[i])
	}

	return &Vault{
		address:          cfg.Address,
		setupMaster:      cfg.Deployer,
		feeAdministrator: feeAdmin,
		chainInterface:   cfg.ChainInterface,
		onlyLocal:        cfg.OnlyLocal,
		name:             cfg.Name,
		symbol:           cfg.Symbol,
		amplification:    cfg.Amplification,
		assets:           assets,
		weights:          weights,
		balances:         balances,
		connections:      make(map[connectionKey]bool),
	}
}

// FinishSetup finalizes the vault setup. Only the setup master may call it,
// and only once; the transition is irreversible.
func (v *Vault) FinishSetup(caller common.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.setupMaster {
		return ErrUnauthorized
	}
	if v.finished {
		return ErrSetupFinished
	}

	v.finished = true
	return nil
}

// Ready reports whether setup has been finalized.
func (v *Vault) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.finished
}

// OnlyLocal reports whether the vault was deployed in local-only mode. The
// value is fixed at deployment and never changes.
func (v *Vault) OnlyLocal() bool {
	return v.onlyLocal
}

// SetupMaster returns the account permitted to finalize setup.
func (v *Vault) SetupMaster() common.Address {
	return v.setupMaster
}

// Address returns the vault address assigned at deployment.
func (v *Vault) Address() common.Address {
	return v.address
}

// ChainInterface returns the cross-chain interface address, zero for
// local-only vaults.
func (v *Vault) ChainInterface() common.Address {
	return v.chainInterface
}

// Name returns the vault token name.
func (v *Vault) Name() string {
	return v.name
}

// Symbol returns the vault token symbol.
func (v *Vault) Symbol() string {
	return v.symbol
}

// Amplification returns the deployment-time amplification value.
func (v *Vault) Amplification() uint64 {
	return v.amplification
}

// Assets returns the vault assets in deployment order.
func (v *Vault) Assets() []common.Address {
	out := make([]common.Address, len(v.assets))
	copy(out, v.assets)
	return out
}

// Weight returns the weight of a held asset.
func (v *Vault) Weight(asset common.Address) (uint64, error) {
	weight, ok := v.weights[asset]
	if !ok {
		return 0, ErrUnknownAsset
	}
	return weight, nil
}

// Weights returns the weights of all assets in deployment order.
func (v *Vault) Weights() []uint64 {
	out := make([]uint64, len(v.assets))
	for i, asset := range v.assets {
		out[i] = v.weights[asset]
	}
	return out
}

// Balance returns the recorded balance of a held asset.
func (v *Vault) Balance(asset common.Address) (*big.Int, error) {
	balance, ok := v.balances[asset]
	if !ok {
		return nil, ErrUnknownAsset
	}
	return new(big.Int).Set(balance), nil
}

// Snapshot captures the current vault state as a storage record.
func (v *Vault) Snapshot() model.VaultRecord {
	v.mu.Lock()
	defer v.mu.Unlock()

	assets := make([]string, len(v.assets))
	weights := make([]uint64, len(v.assets))
	balances := make([]string, len(v.assets))
	for i, asset := range v.assets {
		assets[i] = asset.Hex()
		weights[i] = v.weights[asset]
		balances[i] = v.balances[asset].String()
	}

	record := model.VaultRecord{
		Address:            v.address.Hex(),
		SetupMaster:        v.setupMaster.Hex(),
		FeeAdministrator:   v.feeAdministrator.Hex(),
		Assets:             assets,
		Weights:            weights,
		Balances:           balances,
		Amplification:      v.amplification,
		Name:               v.name,
		Symbol:             v.symbol,
		OnlyLocal:          v.onlyLocal,
		Ready:              v.finished,
		VaultFee:           v.vaultFee,
		GovernanceFeeShare: v.governanceFeeShare,
	}
	if v.chainInterface != (common.Address{}) {
		record.ChainInterface = v.chainInterface.Hex()
	}
	return record
}
