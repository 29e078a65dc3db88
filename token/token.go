// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"math/big"
	"sync"

	"github.com/cfmm-labs/pairpool/consts"
)

const (
	MaxNameSize   = 64
	MaxSymbolSize = 16
)

// Token is a supply-tracked balance ledger for one fungible asset.
// Mint and burn are restricted to the owner; transfers are unrestricted
// because authorization is the hosting runtime's concern.
type Token struct {
	name     string
	symbol   string
	metadata string
	decimals uint8
	owner    Address
	address  Address

	lock        sync.RWMutex
	totalSupply *big.Int
	balances    map[Address]*big.Int
}

func New(name string, symbol string, metadata string, decimals uint8, owner Address) (*Token, error) {
	if len(name) == 0 || len(name) > MaxNameSize {
		return nil, ErrNameEmpty
	}
	if len(symbol) == 0 || len(symbol) > MaxSymbolSize {
		return nil, ErrSymbolEmpty
	}
	if decimals > consts.InternalDecimals {
		return nil, ErrDecimalsTooLarge
	}
	v := make([]byte, 0, len(name)+len(symbol)+len(metadata))
	v = append(v, name...)
	v = append(v, symbol...)
	v = append(v, metadata...)
	return &Token{
		name:        name,
		symbol:      symbol,
		metadata:    metadata,
		decimals:    decimals,
		owner:       owner,
		address:     DeriveAddress(consts.TokenID, v),
		totalSupply: new(big.Int),
		balances:    make(map[Address]*big.Int),
	}, nil
}

// Load reconstructs a token ledger from persisted balances. Total supply
// is the sum of the balances; runtime mutation still only happens through
// Mint, Burn and Transfer.
func Load(name string, symbol string, metadata string, decimals uint8, owner Address, balances map[Address]*big.Int) (*Token, error) {
	t, err := New(name, symbol, metadata, decimals, owner)
	if err != nil {
		return nil, err
	}
	for account, balance := range balances {
		if balance == nil || balance.Sign() < 0 {
			return nil, ErrValueZero
		}
		if balance.Sign() == 0 {
			continue
		}
		t.balances[account] = new(big.Int).Set(balance)
		t.totalSupply.Add(t.totalSupply, balance)
	}
	return t, nil
}

// Balances returns a copy of every non-zero balance.
func (t *Token) Balances() map[Address]*big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	balances := make(map[Address]*big.Int, len(t.balances))
	for account, balance := range t.balances {
		if balance.Sign() == 0 {
			continue
		}
		balances[account] = new(big.Int).Set(balance)
	}
	return balances
}

func (t *Token) Name() string     { return t.name }
func (t *Token) Symbol() string   { return t.symbol }
func (t *Token) Metadata() string { return t.metadata }
func (t *Token) Decimals() uint8  { return t.decimals }
func (t *Token) Owner() Address   { return t.owner }
func (t *Token) Address() Address { return t.address }

func (t *Token) TotalSupply() *big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return new(big.Int).Set(t.totalSupply)
}

func (t *Token) BalanceOf(account Address) *big.Int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if balance, ok := t.balances[account]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}

func (t *Token) Mint(actor Address, to Address, value *big.Int) error {
	if actor != t.owner {
		return ErrNotOwner
	}
	if value == nil || value.Sign() <= 0 {
		return ErrValueZero
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.totalSupply.Add(t.totalSupply, value)
	t.credit(to, value)
	return nil
}

func (t *Token) Burn(actor Address, from Address, value *big.Int) error {
	if actor != t.owner {
		return ErrNotOwner
	}
	if value == nil || value.Sign() <= 0 {
		return ErrValueZero
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	balance, ok := t.balances[from]
	if !ok || balance.Cmp(value) < 0 {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, value)
	t.totalSupply.Sub(t.totalSupply, value)
	return nil
}

func (t *Token) Transfer(from Address, to Address, value *big.Int) error {
	if value == nil || value.Sign() <= 0 {
		return ErrValueZero
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	balance, ok := t.balances[from]
	if !ok || balance.Cmp(value) < 0 {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, value)
	t.credit(to, value)
	return nil
}

// CanTransfer reports whether a Transfer of value from the account would
// succeed. The pool uses it to validate collaborator transfers before any
// ledger mutation.
func (t *Token) CanTransfer(from Address, value *big.Int) bool {
	if value == nil || value.Sign() <= 0 {
		return false
	}
	t.lock.RLock()
	defer t.lock.RUnlock()
	balance, ok := t.balances[from]
	return ok && balance.Cmp(value) >= 0
}

// Assumes [t.lock] is held.
func (t *Token) credit(to Address, value *big.Int) {
	if balance, ok := t.balances[to]; ok {
		balance.Add(balance, value)
		return
	}
	t.balances[to] = new(big.Int).Set(value)
}
