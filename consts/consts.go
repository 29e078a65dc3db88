// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "fmt"

const (
	Name = "pairpool"

	// InternalDecimals is the fixed precision all reserve accounting is
	// denominated in. Assets more precise than this are rejected.
	InternalDecimals = 18

	// Swap fees are expressed over FeeScale: a fee of 3 withholds 0.3%
	// of the swap input.
	FeeScale   uint64 = 1000
	MaxFee     uint64 = 100
	DefaultFee uint64 = 3
)

// Receipt-token naming is derived from the pair symbols. Indexers key off
// this exact format, so it must not drift.
func LiquidityTokenSymbol(symbolA string, symbolB string) string {
	return fmt.Sprintf("%s/%s-LP", symbolA, symbolB)
}

func LiquidityTokenName(symbolA string, symbolB string) string {
	return fmt.Sprintf("%s/%s Liquidity Pool Token", symbolA, symbolB)
}

const LiquidityTokenMetadata = "A liquidity pool"

// TypeIDs for address generation
const (
	TokenID uint8 = iota
	PoolID
)

const Version = "0.0.1"
