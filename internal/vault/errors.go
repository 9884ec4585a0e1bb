package vault

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the required authority.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrSetupFinished is returned when a setup-phase operation is attempted
	// after setup has been finalized.
	ErrSetupFinished = errors.New("setup already finished")

	// ErrOnlyLocal is returned when a cross-chain operation is attempted on a
	// vault deployed in local-only mode.
	ErrOnlyLocal = errors.New("cross-chain operations disabled for local-only vault")

	// ErrUnknownAsset is returned when a queried asset is not held by the vault.
	ErrUnknownAsset = errors.New("asset not held by vault")
)
