package vault

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	deployer = common.HexToAddress("0x1000000000000000000000000000000000000001")
	molly    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	assetA   = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assetB   = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func newTestVault(t *testing.T, onlyLocal bool) *Vault {
	t.Helper()
	return New(Config{
		Address:       common.HexToAddress("0x3000000000000000000000000000000000000003"),
		Deployer:      deployer,
		Assets:        []common.Address{assetA, assetB},
		Weights:       []uint64{1, 1},
		Balances:      []*big.Int{big.NewInt(1e8), big.NewInt(1e8)},
		Amplification: 1e18,
		OnlyLocal:     onlyLocal,
	})
}

func TestFinishSetup(t *testing.T) {
	v := newTestVault(t, true)

	require.False(t, v.Ready())
	require.NoError(t, v.FinishSetup(deployer))
	require.True(t, v.Ready())
}

func TestFinishSetupUnauthorized(t *testing.T) {
	v := newTestVault(t, true)

	err := v.FinishSetup(molly)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.False(t, v.Ready())
}

func TestFinishSetupTwice(t *testing.T) {
	v := newTestVault(t, true)

	require.NoError(t, v.FinishSetup(deployer))

	err := v.FinishSetup(deployer)
	require.ErrorIs(t, err, ErrSetupFinished)
	require.True(t, v.Ready())
}

func TestFinishSetupOnlyLocal(t *testing.T) {
	v := newTestVault(t, true)

	require.NoError(t, v.FinishSetup(deployer))
	require.True(t, v.OnlyLocal())
}

func TestFinishSetupNotOnlyLocal(t *testing.T) {
	v := newTestVault(t, false)

	require.NoError(t, v.FinishSetup(deployer))
	require.False(t, v.OnlyLocal())
}

func TestSetupMasterFixedAtConstruction(t *testing.T) {
	v := newTestVault(t, true)

	require.Equal(t, deployer, v.SetupMaster())
	require.NoError(t, v.FinishSetup(deployer))
	require.Equal(t, deployer, v.SetupMaster())
}

func TestDeploymentConfigQueries(t *testing.T) {
	v := newTestVault(t, true)

	require.Equal(t, []common.Address{assetA, assetB}, v.Assets())
	require.Equal(t, []uint64{1, 1}, v.Weights())

	weight, err := v.Weight(assetA)
	require.NoError(t, err)
	require.Equal(t, uint64(1), weight)

	_, err = v.Weight(molly)
	require.ErrorIs(t, err, ErrUnknownAsset)

	balance, err := v.Balance(assetB)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1e8), balance)
}

func TestSetVaultConnection(t *testing.T) {
	v := newTestVault(t, false)
	remote := common.HexToHash("0x01")

	require.False(t, v.Connection("channel-0", remote))
	require.NoError(t, v.SetVaultConnection(deployer, "channel-0", remote, true))
	require.True(t, v.Connection("channel-0", remote))

	require.NoError(t, v.SetVaultConnection(deployer, "channel-0", remote, false))
	require.False(t, v.Connection("channel-0", remote))
}

func TestSetVaultConnectionUnauthorized(t *testing.T) {
	v := newTestVault(t, false)

	err := v.SetVaultConnection(molly, "channel-0", common.HexToHash("0x01"), true)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSetVaultConnectionAfterFinish(t *testing.T) {
	v := newTestVault(t, false)
	require.NoError(t, v.FinishSetup(deployer))

	err := v.SetVaultConnection(deployer, "channel-0", common.HexToHash("0x01"), true)
	require.ErrorIs(t, err, ErrSetupFinished)
}

func TestSetVaultConnectionOnlyLocal(t *testing.T) {
	v := newTestVault(t, true)

	err := v.SetVaultConnection(deployer, "channel-0", common.HexToHash("0x01"), true)
	require.ErrorIs(t, err, ErrOnlyLocal)
}

func TestSetVaultFee(t *testing.T) {
	v := newTestVault(t, true)

	require.NoError(t, v.SetVaultFee(deployer, 3e15))
	require.Equal(t, uint64(3e15), v.VaultFee())

	err := v.SetVaultFee(deployer, FeeScale+1)
	require.Error(t, err)
	require.Equal(t, uint64(3e15), v.VaultFee())

	require.ErrorIs(t, v.SetVaultFee(molly, 1), ErrUnauthorized)
}

func TestSetGovernanceFeeShare(t *testing.T) {
	v := newTestVault(t, true)

	require.NoError(t, v.SetGovernanceFeeShare(deployer, MaxGovernanceFeeShare))
	require.Equal(t, MaxGovernanceFeeShare, v.GovernanceFeeShare())

	err := v.SetGovernanceFeeShare(deployer, MaxGovernanceFeeShare+1)
	require.Error(t, err)
	require.Equal(t, MaxGovernanceFeeShare, v.GovernanceFeeShare())
}

func TestSetFeeAdministrator(t *testing.T) {
	v := newTestVault(t, true)

	require.Equal(t, deployer, v.FeeAdministrator())

	require.NoError(t, v.SetFeeAdministrator(deployer, molly))
	require.Equal(t, molly, v.FeeAdministrator())

	// Authority moved; the old administrator is locked out.
	require.ErrorIs(t, v.SetVaultFee(deployer, 1), ErrUnauthorized)
	require.NoError(t, v.SetVaultFee(molly, 1))

	require.ErrorIs(t, v.SetFeeAdministrator(deployer, deployer), ErrUnauthorized)
	require.Error(t, v.SetFeeAdministrator(molly, common.Address{}))
}

func TestSnapshot(t *testing.T) {
	v := newTestVault(t, true)
	require.NoError(t, v.SetVaultFee(deployer, 5e15))
	require.NoError(t, v.FinishSetup(deployer))

	snap := v.Snapshot()
	require.True(t, snap.Ready)
	require.True(t, snap.OnlyLocal)
	require.Equal(t, deployer.Hex(), snap.SetupMaster)
	require.Equal(t, []string{assetA.Hex(), assetB.Hex()}, snap.Assets)
	require.Equal(t, []uint64{1, 1}, snap.Weights)
	require.Equal(t, []string{"100000000", "100000000"}, snap.Balances)
	require.Equal(t, uint64(5e15), snap.VaultFee)
	require.Empty(t, snap.ChainInterface)
}
