// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "math/big"

var _ Curve = (*ConstantProduct)(nil)

// ConstantProduct prices against x*y = k. The fee is withheld by the
// ledger before the curve is consulted, so the fee argument is unused
// here; stableswap-style curves need it for amplification bookkeeping.
type ConstantProduct struct{}

func NewConstantProduct() Curve {
	return &ConstantProduct{}
}

func (*ConstantProduct) SharesForDeposit(amountA, amountB, totalSupply, reserveA, reserveB *big.Int) (*big.Int, error) {
	if amountA.Sign() <= 0 || amountB.Sign() <= 0 {
		return nil, ErrZeroInput
	}
	if totalSupply.Sign() == 0 {
		// First deposit: the geometric mean of the two amounts sets the
		// pool's exchange-rate baseline.
		shares := new(big.Int).Mul(amountA, amountB)
		return shares.Sqrt(shares), nil
	}
	if reserveA.Sign() == 0 || reserveB.Sign() == 0 {
		return nil, ErrReservesZero
	}
	// Credit only the scarcer side of an imbalanced deposit; the surplus
	// of the other asset is absorbed into reserves without extra shares.
	byA := new(big.Int).Mul(amountA, totalSupply)
	byA.Quo(byA, reserveA)
	byB := new(big.Int).Mul(amountB, totalSupply)
	byB.Quo(byB, reserveB)
	if byA.Cmp(byB) < 0 {
		return byA, nil
	}
	return byB, nil
}

// Adopted from Uniswap v2:
// => https://github.com/Uniswap/v2-periphery/blob/master/contracts/libraries/UniswapV2Library.sol#L42-L49
func (*ConstantProduct) OutputForSwap(amountInAfterFee, reserveIn, reserveOut *big.Int, _ uint64) (*big.Int, error) {
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, ErrReservesZero
	}
	if amountInAfterFee.Sign() <= 0 {
		return nil, ErrZeroInput
	}
	// out = floor(in * reserveOut / (reserveIn + in)); strictly less than
	// reserveOut for any positive in, so one side can never be drained.
	numerator := new(big.Int).Mul(amountInAfterFee, reserveOut)
	denominator := new(big.Int).Add(reserveIn, amountInAfterFee)
	return numerator.Quo(numerator, denominator), nil
}
