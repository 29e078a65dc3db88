// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/cfmm-labs/pairpool/pool"
	"github.com/cfmm-labs/pairpool/token"
)

const Endpoint = "/poolapi"

var errInvalidNumber = errors.New("invalid number")

type JSONRPCServer struct {
	p   *pool.Pool
	log logging.Logger
}

func NewJSONRPCServer(p *pool.Pool, log logging.Logger) *JSONRPCServer {
	return &JSONRPCServer{p: p, log: log}
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errInvalidNumber
	}
	return v, nil
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type PoolInfoReply struct {
	Address        string `json:"address"`
	AssetA         string `json:"assetA"`
	AssetB         string `json:"assetB"`
	SymbolA        string `json:"symbolA"`
	SymbolB        string `json:"symbolB"`
	Fee            uint64 `json:"fee"`
	ReserveA       string `json:"reserveA"`
	ReserveB       string `json:"reserveB"`
	ReceiptAddress string `json:"receiptAddress"`
	ReceiptSymbol  string `json:"receiptSymbol"`
	TotalSupply    string `json:"totalSupply"`
}

func (j *JSONRPCServer) PoolInfo(_ *http.Request, _ *struct{}, reply *PoolInfoReply) error {
	reply.Address = string(j.p.Address())
	reply.AssetA = string(j.p.AssetA().Address())
	reply.AssetB = string(j.p.AssetB().Address())
	reply.SymbolA = j.p.SymbolA()
	reply.SymbolB = j.p.SymbolB()
	reply.Fee = j.p.Fee()
	reply.ReserveA = j.p.ReserveA().String()
	reply.ReserveB = j.p.ReserveB().String()
	reply.ReceiptAddress = string(j.p.Receipt().Address())
	reply.ReceiptSymbol = j.p.Receipt().Symbol()
	reply.TotalSupply = j.p.TotalSupply().String()
	return nil
}

type BalanceArgs struct {
	Asset   string `json:"asset"`
	Account string `json:"account"`
}

type BalanceReply struct {
	Amount string `json:"amount"`
}

func (j *JSONRPCServer) Balance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	var ledger *token.Token
	switch token.Address(args.Asset) {
	case j.p.AssetA().Address():
		ledger = j.p.AssetA()
	case j.p.AssetB().Address():
		ledger = j.p.AssetB()
	case j.p.Receipt().Address():
		ledger = j.p.Receipt()
	default:
		return pool.ErrInvalidAsset
	}
	reply.Amount = ledger.BalanceOf(token.Address(args.Account)).String()
	return nil
}

type QuoteArgs struct {
	InputAsset string `json:"inputAsset"`
	Amount     string `json:"amount"`
}

type QuoteReply struct {
	AmountOut string `json:"amountOut"`
}

func (j *JSONRPCServer) Quote(_ *http.Request, args *QuoteArgs, reply *QuoteReply) error {
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	out, err := j.p.Quote(token.Address(args.InputAsset), amount)
	if err != nil {
		return err
	}
	reply.AmountOut = out.String()
	return nil
}

type DepositArgs struct {
	Caller  string `json:"caller"`
	AmountA string `json:"amountA"`
	AmountB string `json:"amountB"`
}

type DepositReply struct {
	Shares string `json:"shares"`
}

func (j *JSONRPCServer) Deposit(_ *http.Request, args *DepositArgs, reply *DepositReply) error {
	amountA, err := parseAmount(args.AmountA)
	if err != nil {
		return err
	}
	amountB, err := parseAmount(args.AmountB)
	if err != nil {
		return err
	}
	shares, err := j.p.Deposit(token.Address(args.Caller), amountA, amountB)
	if err != nil {
		return err
	}
	j.log.Info("deposit",
		zap.String("caller", args.Caller),
		zap.String("shares", shares.String()),
	)
	reply.Shares = shares.String()
	return nil
}

type SwapArgs struct {
	Caller     string `json:"caller"`
	InputAsset string `json:"inputAsset"`
	Amount     string `json:"amount"`
	Recipient  string `json:"recipient,omitempty"`
}

type SwapReply struct {
	AmountOut string `json:"amountOut"`
}

func (j *JSONRPCServer) Swap(_ *http.Request, args *SwapArgs, reply *SwapReply) error {
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	out, err := j.p.SwapFor(
		token.Address(args.Caller),
		token.Address(args.InputAsset),
		amount,
		token.Address(args.Recipient),
	)
	if err != nil {
		return err
	}
	j.log.Info("swap",
		zap.String("caller", args.Caller),
		zap.String("inputAsset", args.InputAsset),
		zap.String("amountOut", out.String()),
	)
	reply.AmountOut = out.String()
	return nil
}

type WithdrawArgs struct {
	Caller string `json:"caller"`
	Shares string `json:"shares"`
}

type WithdrawReply struct {
	AmountA string `json:"amountA"`
	AmountB string `json:"amountB"`
}

func (j *JSONRPCServer) Withdraw(_ *http.Request, args *WithdrawArgs, reply *WithdrawReply) error {
	shares, err := parseAmount(args.Shares)
	if err != nil {
		return err
	}
	amountA, amountB, err := j.p.Withdraw(token.Address(args.Caller), shares)
	if err != nil {
		return err
	}
	j.log.Info("withdraw",
		zap.String("caller", args.Caller),
		zap.String("shares", shares.String()),
	)
	reply.AmountA = amountA.String()
	reply.AmountB = amountB.String()
	return nil
}
