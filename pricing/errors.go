// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrReservesZero = errors.New("reserves are zero")
	ErrZeroInput    = errors.New("zero input")
)
