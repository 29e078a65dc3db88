// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	TokenName     = "TestToken"
	TokenSymbol   = "TT"
	TokenMetadata = "a test token"
)

var (
	owner = Address("owner")
	alice = Address("alice")
	bob   = Address("bob")
)

func TestNewInvariants(t *testing.T) {
	req := require.New(t)

	_, err := New("", TokenSymbol, TokenMetadata, 9, owner)
	req.ErrorIs(err, ErrNameEmpty)

	_, err = New(strings.Repeat("n", MaxNameSize+1), TokenSymbol, TokenMetadata, 9, owner)
	req.ErrorIs(err, ErrNameEmpty)

	_, err = New(TokenName, "", TokenMetadata, 9, owner)
	req.ErrorIs(err, ErrSymbolEmpty)

	_, err = New(TokenName, TokenSymbol, TokenMetadata, 19, owner)
	req.ErrorIs(err, ErrDecimalsTooLarge)

	tok, err := New(TokenName, TokenSymbol, TokenMetadata, 9, owner)
	req.NoError(err)
	req.Equal(uint8(9), tok.Decimals())
	req.Equal(int64(0), tok.TotalSupply().Int64())
	req.NotEqual(EmptyAddress, tok.Address())
}

func TestAddressDeterministic(t *testing.T) {
	req := require.New(t)

	one, err := New(TokenName, TokenSymbol, TokenMetadata, 9, owner)
	req.NoError(err)
	two, err := New(TokenName, TokenSymbol, TokenMetadata, 9, owner)
	req.NoError(err)
	req.Equal(one.Address(), two.Address())

	other, err := New(TokenName, "OTHER", TokenMetadata, 9, owner)
	req.NoError(err)
	req.NotEqual(one.Address(), other.Address())
}

func TestMintRestrictedToOwner(t *testing.T) {
	req := require.New(t)

	tok, err := New(TokenName, TokenSymbol, TokenMetadata, 9, owner)
	req.NoError(err)

	req.ErrorIs(tok.Mint(alice, alice, big.NewInt(10)), ErrNotOwner)
	req.ErrorIs(tok.Mint(owner, alice, big.NewInt(0)), ErrValueZero)

	req.NoError(tok.Mint(owner, alice, big.NewInt(10)))
	req.Equal(int64(10), tok.TotalSupply().Int64())
	req.Equal(int64(10), tok.BalanceOf(alice).Int64())
}

func TestBurn(t *testing.T) {
	req := require.New(t)

	tok, err := New(TokenName, TokenSymbol, TokenMetadata, 9, owner)
	req.NoError(err)
	req.NoError(tok.Mint(owner, alice, big.NewInt(10)))

	req.ErrorIs(tok.Burn(alice, alice, big.NewInt(1)), ErrNotOwner)
	req.ErrorIs(tok.Burn(owner, alice, big.NewInt(11)), ErrInsufficientBalance)
	req.ErrorIs(tok.Burn(owner, bob, big.NewInt(1)), ErrInsufficientBalance)

	req.NoError(tok.Burn(owner, alice, big.NewInt(4)))
	req.Equal(int64(6), tok.TotalSupply().Int64())
	req.Equal(int64(6), tok.BalanceOf(alice).Int64())
}

func TestTransfer(t *testing.T) {
	req := require.New(t)

	tok, err := New(TokenName, TokenSymbol, TokenMetadata, 9, owner)
	req.NoError(err)
	req.NoError(tok.Mint(owner, alice, big.NewInt(10)))

	req.ErrorIs(tok.Transfer(alice, bob, big.NewInt(0)), ErrValueZero)
	req.ErrorIs(tok.Transfer(bob, alice, big.NewInt(1)), ErrInsufficientBalance)

	req.True(tok.CanTransfer(alice, big.NewInt(10)))
	req.False(tok.CanTransfer(alice, big.NewInt(11)))

	req.NoError(tok.Transfer(alice, bob, big.NewInt(7)))
	req.Equal(int64(3), tok.BalanceOf(alice).Int64())
	req.Equal(int64(7), tok.BalanceOf(bob).Int64())
	// Supply unchanged by transfers
	req.Equal(int64(10), tok.TotalSupply().Int64())
}
