// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"math/big"

	"github.com/cfmm-labs/pairpool/consts"
)

var ten = big.NewInt(10)

// scalingFactor returns 10^(InternalDecimals-decimals), the multiplier
// between an asset's native precision and the pool's internal precision.
func scalingFactor(decimals uint8) (*big.Int, error) {
	if decimals > consts.InternalDecimals {
		return nil, ErrPrecision
	}
	exp := big.NewInt(int64(consts.InternalDecimals - uint64(decimals)))
	return new(big.Int).Exp(ten, exp, nil), nil
}

func normalize(amount *big.Int, decimals uint8) (*big.Int, error) {
	factor, err := scalingFactor(decimals)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Mul(amount, factor), nil
}

// denormalize truncates toward zero. The pool keeps any fractional
// remainder rather than overpay.
func denormalize(amount *big.Int, decimals uint8) (*big.Int, error) {
	factor, err := scalingFactor(decimals)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Quo(amount, factor), nil
}
