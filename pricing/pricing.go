// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "math/big"

// IDs for pricing curves
const (
	InvalidCurveID uint8 = iota
	ConstantProductID
)

// Curve prices deposits and swaps for a two-asset pool. Implementations
// are pure: no state, no side effects, deterministic given inputs. The
// ledger owns all state and never inlines curve math.
type Curve interface {
	// SharesForDeposit returns the receipt tokens owed for a deposit of
	// (amountA, amountB), all values in internal precision. When
	// totalSupply is zero the curve defines the initial share count from
	// the two amounts alone.
	SharesForDeposit(amountA, amountB, totalSupply, reserveA, reserveB *big.Int) (*big.Int, error)

	// OutputForSwap returns the output-side amount for a fee-adjusted
	// input, in internal precision. Must hold 0 <= out < reserveOut.
	OutputForSwap(amountInAfterFee, reserveIn, reserveOut *big.Int, fee uint64) (*big.Int, error)
}

type NewCurve func() Curve

var Curves map[uint8]NewCurve

func init() {
	Curves = make(map[uint8]NewCurve)

	// Append any additional pricing curves here
	Curves[ConstantProductID] = NewConstantProduct
}
