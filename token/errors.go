// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import "errors"

var (
	ErrValueZero           = errors.New("value is zero")
	ErrNotOwner            = errors.New("actor is not token owner")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrNameEmpty           = errors.New("token name is empty")
	ErrSymbolEmpty         = errors.New("token symbol is empty")
	ErrDecimalsTooLarge    = errors.New("token decimals exceed maximum")
)
