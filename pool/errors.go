// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid pool configuration")
	ErrInvalidFee    = errors.New("fee is not between 0 and 100")

	ErrInvalidAmount      = errors.New("amount is zero or negative")
	ErrInvalidAsset       = errors.New("asset is not part of the pair")
	ErrTransferFailed     = errors.New("collaborator transfer failed")
	ErrInsufficientOutput = errors.New("insufficient swap output")
	ErrInsufficientShares = errors.New("insufficient shares")

	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")

	ErrPrecision = errors.New("asset precision exceeds internal precision")
)
