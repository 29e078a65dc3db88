// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/cfmm-labs/pairpool/consts"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

// NewJSONRPCClient creates a new client object.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx, consts.Name+".ping", nil, resp)
	return resp.Success, err
}

func (cli *JSONRPCClient) PoolInfo(ctx context.Context) (*PoolInfoReply, error) {
	resp := new(PoolInfoReply)
	err := cli.requester.SendRequest(ctx, consts.Name+".poolInfo", nil, resp)
	return resp, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, asset string, account string) (*BalanceReply, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".balance",
		&BalanceArgs{
			Asset:   asset,
			Account: account,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Quote(ctx context.Context, inputAsset string, amount string) (*QuoteReply, error) {
	resp := new(QuoteReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".quote",
		&QuoteArgs{
			InputAsset: inputAsset,
			Amount:     amount,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Deposit(ctx context.Context, caller string, amountA string, amountB string) (*DepositReply, error) {
	resp := new(DepositReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".deposit",
		&DepositArgs{
			Caller:  caller,
			AmountA: amountA,
			AmountB: amountB,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Swap(ctx context.Context, caller string, inputAsset string, amount string, recipient string) (*SwapReply, error) {
	resp := new(SwapReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".swap",
		&SwapArgs{
			Caller:     caller,
			InputAsset: inputAsset,
			Amount:     amount,
			Recipient:  recipient,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Withdraw(ctx context.Context, caller string, shares string) (*WithdrawReply, error) {
	resp := new(WithdrawReply)
	err := cli.requester.SendRequest(
		ctx,
		consts.Name+".withdraw",
		&WithdrawArgs{
			Caller: caller,
			Shares: shares,
		},
		resp,
	)
	return resp, err
}
