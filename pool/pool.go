// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cfmm-labs/pairpool/consts"
	"github.com/cfmm-labs/pairpool/pricing"
	"github.com/cfmm-labs/pairpool/token"
)

// Pool is the reserve ledger for one asset pair. Reserves are a derived
// ledger in internal precision: they equal the sum of normalized deposits
// minus normalized withdrawals minus swap outputs, and are never read
// back from the asset ledgers. The pool owns its receipt token
// exclusively; no other party can mint or burn it.
type Pool struct {
	assetA  *token.Token
	assetB  *token.Token
	symbolA string
	symbolB string
	receipt *token.Token
	curve   pricing.Curve
	fee     uint64
	address token.Address

	// Serializes deposit/swap/withdraw; each operation is one
	// indivisible unit relative to all others on the same pool,
	// including the collaborator transfers it makes.
	lock     sync.Mutex
	reserveA *big.Int
	reserveB *big.Int

	metrics  *metrics
	registry *prometheus.Registry
}

// New creates an empty pool for the pair and its receipt token.
func New(assetA *token.Token, assetB *token.Token, symbolA string, symbolB string, fee uint64, curve pricing.Curve) (*Pool, error) {
	return Load(assetA, assetB, symbolA, symbolB, fee, curve, nil, new(big.Int), new(big.Int))
}

// Load reconstructs a pool from persisted state. A nil receipt creates a
// fresh receipt token; reserves must be consistent with its supply.
func Load(
	assetA *token.Token,
	assetB *token.Token,
	symbolA string,
	symbolB string,
	fee uint64,
	curve pricing.Curve,
	receipt *token.Token,
	reserveA *big.Int,
	reserveB *big.Int,
) (*Pool, error) {
	if assetA == nil || assetB == nil || curve == nil {
		return nil, ErrInvalidConfig
	}
	if assetA.Address() == assetB.Address() {
		return nil, ErrInvalidConfig
	}
	if fee > consts.MaxFee {
		return nil, ErrInvalidFee
	}
	if reserveA == nil || reserveB == nil || reserveA.Sign() < 0 || reserveB.Sign() < 0 {
		return nil, ErrInvalidConfig
	}

	v := make([]byte, 0, len(assetA.Address())+len(assetB.Address()))
	v = append(v, assetA.Address()...)
	v = append(v, assetB.Address()...)
	address := token.DeriveAddress(consts.PoolID, v)

	if receipt == nil {
		var err error
		receipt, err = token.New(
			consts.LiquidityTokenName(symbolA, symbolB),
			consts.LiquidityTokenSymbol(symbolA, symbolB),
			consts.LiquidityTokenMetadata,
			consts.InternalDecimals,
			address,
		)
		if err != nil {
			return nil, err
		}
	}
	if receipt.Owner() != address {
		return nil, ErrInvalidConfig
	}
	// Empty pool iff no outstanding shares
	empty := reserveA.Sign() == 0 && reserveB.Sign() == 0
	if empty != (receipt.TotalSupply().Sign() == 0) {
		return nil, ErrInvalidConfig
	}

	registry, m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	p := &Pool{
		assetA:   assetA,
		assetB:   assetB,
		symbolA:  symbolA,
		symbolB:  symbolB,
		receipt:  receipt,
		curve:    curve,
		fee:      fee,
		address:  address,
		reserveA: new(big.Int).Set(reserveA),
		reserveB: new(big.Int).Set(reserveB),
		metrics:  m,
		registry: registry,
	}
	m.observeReserves(p.reserveA, p.reserveB)
	return p, nil
}

func (p *Pool) Address() token.Address { return p.address }
func (p *Pool) AssetA() *token.Token   { return p.assetA }
func (p *Pool) AssetB() *token.Token   { return p.assetB }
func (p *Pool) SymbolA() string        { return p.symbolA }
func (p *Pool) SymbolB() string        { return p.symbolB }
func (p *Pool) Receipt() *token.Token  { return p.receipt }
func (p *Pool) Fee() uint64            { return p.fee }

func (p *Pool) MetricsRegistry() *prometheus.Registry { return p.registry }

func (p *Pool) ReserveA() *big.Int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return new(big.Int).Set(p.reserveA)
}

func (p *Pool) ReserveB() *big.Int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return new(big.Int).Set(p.reserveB)
}

func (p *Pool) TotalSupply() *big.Int {
	return p.receipt.TotalSupply()
}

// Deposit pulls amountA of asset A and amountB of asset B (native
// precision) from the caller and mints receipt tokens priced by the
// curve. Depositing off the reserve ratio is credited only for the
// scarcer side.
func (p *Pool) Deposit(caller token.Address, amountA *big.Int, amountB *big.Int) (*big.Int, error) {
	if amountA == nil || amountA.Sign() <= 0 || amountB == nil || amountB.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	normA, err := normalize(amountA, p.assetA.Decimals())
	if err != nil {
		return nil, err
	}
	normB, err := normalize(amountB, p.assetB.Decimals())
	if err != nil {
		return nil, err
	}

	// Validate both transfers before any state is touched so a failure
	// leaves the pre-image fully intact.
	if !p.assetA.CanTransfer(caller, amountA) || !p.assetB.CanTransfer(caller, amountB) {
		return nil, ErrTransferFailed
	}

	shares, err := p.curve.SharesForDeposit(normA, normB, p.receipt.TotalSupply(), p.reserveA, p.reserveB)
	if err != nil {
		return nil, err
	}
	if shares.Sign() <= 0 {
		return nil, ErrInsufficientLiquidityMinted
	}

	if err := p.assetA.Transfer(caller, p.address, amountA); err != nil {
		return nil, ErrTransferFailed
	}
	if err := p.assetB.Transfer(caller, p.address, amountB); err != nil {
		// Undo the first leg; both transfers were validated above.
		_ = p.assetA.Transfer(p.address, caller, amountA)
		return nil, ErrTransferFailed
	}

	p.reserveA.Add(p.reserveA, normA)
	p.reserveB.Add(p.reserveB, normB)

	if err := p.receipt.Mint(p.address, caller, shares); err != nil {
		return nil, err
	}

	p.metrics.deposits.Inc()
	p.metrics.observeReserves(p.reserveA, p.reserveB)
	return shares, nil
}

// Swap trades amount (native precision) of inputAsset for the other side
// of the pair, transferring the output to the caller.
func (p *Pool) Swap(caller token.Address, inputAsset token.Address, amount *big.Int) (*big.Int, error) {
	return p.SwapFor(caller, inputAsset, amount, caller)
}

// SwapFor is Swap with a distinct recipient. The full pre-fee input is
// pulled from the recipient, not the caller: the fee-bearing party, the
// token source and the output recipient are the same identity, which is
// what lets a third-party relayer submit the operation.
func (p *Pool) SwapFor(caller token.Address, inputAsset token.Address, amount *big.Int, recipient token.Address) (*big.Int, error) {
	if recipient == token.EmptyAddress {
		recipient = caller
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	var (
		tokenIn  *token.Token
		tokenOut *token.Token
	)
	switch inputAsset {
	case p.assetA.Address():
		tokenIn, tokenOut = p.assetA, p.assetB
	case p.assetB.Address():
		tokenIn, tokenOut = p.assetB, p.assetA
	default:
		return nil, ErrInvalidAsset
	}
	isA := tokenIn == p.assetA
	inputReserve, outputReserve := p.reserveA, p.reserveB
	if !isA {
		inputReserve, outputReserve = p.reserveB, p.reserveA
	}

	norm, err := normalize(amount, tokenIn.Decimals())
	if err != nil {
		return nil, err
	}
	// The fee is withheld from the tradable amount and stays in reserves,
	// raising the value of outstanding shares.
	afterFee := new(big.Int).Mul(norm, big.NewInt(int64(consts.FeeScale-p.fee)))
	afterFee.Quo(afterFee, big.NewInt(int64(consts.FeeScale)))
	if afterFee.Sign() == 0 {
		// The whole input was consumed by the fee
		return nil, ErrInsufficientOutput
	}

	output, err := p.curve.OutputForSwap(afterFee, inputReserve, outputReserve, p.fee)
	if err != nil {
		return nil, err
	}
	if output.Sign() <= 0 {
		return nil, ErrInsufficientOutput
	}
	if output.Cmp(outputReserve) >= 0 {
		// Curve contract violation; refuse to drain one side.
		return nil, ErrInsufficientOutput
	}

	nativeOut, err := denormalize(output, tokenOut.Decimals())
	if err != nil {
		return nil, err
	}

	if !tokenIn.CanTransfer(recipient, amount) {
		return nil, ErrTransferFailed
	}
	if err := tokenIn.Transfer(recipient, p.address, amount); err != nil {
		return nil, ErrTransferFailed
	}
	if nativeOut.Sign() > 0 {
		if err := tokenOut.Transfer(p.address, recipient, nativeOut); err != nil {
			_ = tokenIn.Transfer(p.address, recipient, amount)
			return nil, ErrTransferFailed
		}
	}

	// Input reserve grows by the pre-fee amount
	inputReserve.Add(inputReserve, norm)
	outputReserve.Sub(outputReserve, output)

	p.metrics.swaps.Inc()
	p.metrics.observeReserves(p.reserveA, p.reserveB)
	return nativeOut, nil
}

// Quote computes the native-precision output a swap of amount inputAsset
// would produce right now, without executing it.
func (p *Pool) Quote(inputAsset token.Address, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	var (
		tokenIn  *token.Token
		tokenOut *token.Token
	)
	switch inputAsset {
	case p.assetA.Address():
		tokenIn, tokenOut = p.assetA, p.assetB
	case p.assetB.Address():
		tokenIn, tokenOut = p.assetB, p.assetA
	default:
		return nil, ErrInvalidAsset
	}
	inputReserve, outputReserve := p.reserveA, p.reserveB
	if tokenIn != p.assetA {
		inputReserve, outputReserve = p.reserveB, p.reserveA
	}

	norm, err := normalize(amount, tokenIn.Decimals())
	if err != nil {
		return nil, err
	}
	afterFee := new(big.Int).Mul(norm, big.NewInt(int64(consts.FeeScale-p.fee)))
	afterFee.Quo(afterFee, big.NewInt(int64(consts.FeeScale)))
	if afterFee.Sign() == 0 {
		return nil, ErrInsufficientOutput
	}

	output, err := p.curve.OutputForSwap(afterFee, inputReserve, outputReserve, p.fee)
	if err != nil {
		return nil, err
	}
	return denormalize(output, tokenOut.Decimals())
}

// Withdraw burns shareAmount receipt tokens and pays out the caller's
// proportional claim on both reserves, truncating toward zero.
func (p *Pool) Withdraw(caller token.Address, shareAmount *big.Int) (*big.Int, *big.Int, error) {
	if shareAmount == nil || shareAmount.Sign() <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	totalSupply := p.receipt.TotalSupply()
	// Explicit division-by-zero guard; with zero supply any positive
	// request already exceeds the caller's holding.
	if totalSupply.Sign() == 0 {
		return nil, nil, ErrInsufficientShares
	}
	if p.receipt.BalanceOf(caller).Cmp(shareAmount) < 0 {
		return nil, nil, ErrInsufficientShares
	}

	normA := new(big.Int).Mul(p.reserveA, shareAmount)
	normA.Quo(normA, totalSupply)
	normB := new(big.Int).Mul(p.reserveB, shareAmount)
	normB.Quo(normB, totalSupply)

	if err := p.receipt.Burn(p.address, caller, shareAmount); err != nil {
		return nil, nil, ErrInsufficientShares
	}

	p.reserveA.Sub(p.reserveA, normA)
	p.reserveB.Sub(p.reserveB, normB)

	nativeA, err := denormalize(normA, p.assetA.Decimals())
	if err != nil {
		return nil, nil, err
	}
	nativeB, err := denormalize(normB, p.assetB.Decimals())
	if err != nil {
		return nil, nil, err
	}
	if nativeA.Sign() > 0 {
		if err := p.assetA.Transfer(p.address, caller, nativeA); err != nil {
			return nil, nil, ErrTransferFailed
		}
	}
	if nativeB.Sign() > 0 {
		if err := p.assetB.Transfer(p.address, caller, nativeB); err != nil {
			return nil, nil, ErrTransferFailed
		}
	}

	p.metrics.withdraws.Inc()
	p.metrics.observeReserves(p.reserveA, p.reserveB)
	return nativeA, nativeB, nil
}
