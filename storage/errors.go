// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrCorrupt           = errors.New("corrupt persisted state")
	ErrUnknownCurve      = errors.New("persisted curve is not registered")
	ErrTokenDoesNotExist = errors.New("token does not exist")
)
