// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/cfmm-labs/pairpool/consts"
	"github.com/cfmm-labs/pairpool/pool"
	"github.com/cfmm-labs/pairpool/pricing"
	"github.com/cfmm-labs/pairpool/token"
)

var (
	faucet = token.Address("faucet")
	alice  = token.Address("alice")
)

func units(n int64, decimals int64) *big.Int {
	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(decimals), nil)
	return exp.Mul(big.NewInt(n), exp)
}

func setupTest(t *testing.T) (*JSONRPCClient, *pool.Pool) {
	t.Helper()
	req := require.New(t)

	assetA, err := token.New("Token A", "TKA", "test asset A", 18, faucet)
	req.NoError(err)
	assetB, err := token.New("Token B", "TKB", "test asset B", 18, faucet)
	req.NoError(err)
	p, err := pool.New(assetA, assetB, "TKA", "TKB", 3, pricing.NewConstantProduct())
	req.NoError(err)

	req.NoError(assetA.Mint(faucet, alice, units(100, 18)))
	req.NoError(assetB.Mint(faucet, alice, units(100, 18)))

	handler, err := NewHandler(NewJSONRPCServer(p, logging.NoLog{}), consts.Name)
	req.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(Endpoint, handler)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return NewJSONRPCClient(ts.URL), p
}

func TestPing(t *testing.T) {
	req := require.New(t)
	cli, _ := setupTest(t)

	ok, err := cli.Ping(context.Background())
	req.NoError(err)
	req.True(ok)
}

func TestPoolInfo(t *testing.T) {
	req := require.New(t)
	cli, p := setupTest(t)

	info, err := cli.PoolInfo(context.Background())
	req.NoError(err)
	req.Equal(string(p.Address()), info.Address)
	req.Equal("TKA", info.SymbolA)
	req.Equal("TKB", info.SymbolB)
	req.Equal(uint64(3), info.Fee)
	req.Equal("0", info.ReserveA)
	req.Equal("TKA/TKB-LP", info.ReceiptSymbol)
	req.Equal("0", info.TotalSupply)
}

func TestDepositSwapWithdraw(t *testing.T) {
	req := require.New(t)
	cli, p := setupTest(t)
	ctx := context.Background()

	dep, err := cli.Deposit(ctx, string(alice), units(10, 18).String(), units(10, 18).String())
	req.NoError(err)
	req.Equal(units(10, 18).String(), dep.Shares)

	balance, err := cli.Balance(ctx, string(p.Receipt().Address()), string(alice))
	req.NoError(err)
	req.Equal(dep.Shares, balance.Amount)

	assetA := string(p.AssetA().Address())
	quote, err := cli.Quote(ctx, assetA, units(1, 18).String())
	req.NoError(err)

	swap, err := cli.Swap(ctx, string(alice), assetA, units(1, 18).String(), "")
	req.NoError(err)
	req.Equal(quote.AmountOut, swap.AmountOut)

	wd, err := cli.Withdraw(ctx, string(alice), dep.Shares)
	req.NoError(err)
	req.Equal(units(11, 18).String(), wd.AmountA)

	info, err := cli.PoolInfo(ctx)
	req.NoError(err)
	req.Equal("0", info.TotalSupply)
}

func TestErrorPropagation(t *testing.T) {
	req := require.New(t)
	cli, _ := setupTest(t)
	ctx := context.Background()

	_, err := cli.Deposit(ctx, string(alice), "0", "5")
	req.ErrorContains(err, pool.ErrInvalidAmount.Error())

	_, err = cli.Swap(ctx, string(alice), "unknown", "5", "")
	req.ErrorContains(err, pool.ErrInvalidAsset.Error())

	_, err = cli.Quote(ctx, "unknown", "not-a-number")
	req.ErrorContains(err, errInvalidNumber.Error())

	_, err = cli.Balance(ctx, "unknown", string(alice))
	req.ErrorContains(err, pool.ErrInvalidAsset.Error())
}
