package vault

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// SetVaultConnection records the connection state for a remote vault on a
// cross-chain channel. Only the setup master may call it, and only before
// setup has been finalized.
func (v *Vault) SetVaultConnection(caller common.Address, channelID string, remoteVault common.Hash, state bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.setupMaster {
		return ErrUnauthorized
	}
	if v.finished {
		return ErrSetupFinished
	}
	if v.onlyLocal {
		return ErrOnlyLocal
	}
	if channelID == "" {
		return fmt.Errorf("channel id is required")
	}

	key := connectionKey{channelID: channelID, vault: remoteVault}
	if state {
		v.connections[key] = true
	} else {
		delete(v.connections, key)
	}
	return nil
}

// Connection reports whether a remote vault is connected on a channel.
func (v *Vault) Connection(channelID string, remoteVault common.Hash) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.connections[connectionKey{channelID: channelID, vault: remoteVault}]
}

// Connections returns all active connections as channel/vault pairs.
func (v *Vault) Connections() map[string][]common.Hash {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make(map[string][]common.Hash)
	for key := range v.connections {
		out[key.channelID] = append(out[key.channelID], key.vault)
	}
	return out
}

// SetVaultFee updates the vault fee. Only the fee administrator may call it.
// The fee is unit-scaled: FeeScale corresponds to 100%.
func (v *Vault) SetVaultFee(caller common.Address, fee uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.feeAdministrator {
		return ErrUnauthorized
	}
	if fee > FeeScale {
		return fmt.Errorf("vault fee %d exceeds maximum %d", fee, FeeScale)
	}

	v.vaultFee = fee
	return nil
}

// SetGovernanceFeeShare updates the governance share of collected fees. Only
// the fee administrator may call it; the share is capped at 75%.
func (v *Vault) SetGovernanceFeeShare(caller common.Address, share uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.feeAdministrator {
		return ErrUnauthorized
	}
	if share > MaxGovernanceFeeShare {
		return fmt.Errorf("governance fee share %d exceeds maximum %d", share, MaxGovernanceFeeShare)
	}

	v.governanceFeeShare = share
	return nil
}

// SetFeeAdministrator transfers the fee administration authority. Only the
// current fee administrator may call it.
func (v *Vault) SetFeeAdministrator(caller, administrator common.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.feeAdministrator {
		return ErrUnauthorized
	}
	if administrator == (common.Address{}) {
		return fmt.Errorf("fee administrator cannot be the zero address")
	}

	v.feeAdministrator = administrator
	return nil
}

// VaultFee returns the current unit-scaled vault fee.
func (v *Vault) VaultFee() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vaultFee
}

// GovernanceFeeShare returns the current unit-scaled governance fee share.
func (v *Vault) GovernanceFeeShare() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.governanceFeeShare
}

// FeeAdministrator returns the current fee administration authority.
func (v *Vault) FeeAdministrator() common.Address {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.feeAdministrator
}
