// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cfmm-labs/pairpool/api"
	"github.com/cfmm-labs/pairpool/consts"
	"github.com/cfmm-labs/pairpool/internal/config"
	"github.com/cfmm-labs/pairpool/pool"
	"github.com/cfmm-labs/pairpool/pricing"
	"github.com/cfmm-labs/pairpool/server"
	"github.com/cfmm-labs/pairpool/storage"
	"github.com/cfmm-labs/pairpool/token"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the pool daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	db, err := storage.NewDatabase(cfg.Database.Directory)
	if err != nil {
		return err
	}

	p, err := loadOrCreatePool(db, cfg.Pool, log)
	if err != nil {
		_ = db.Close()
		return err
	}

	listener, err := net.Listen("tcp", cfg.HTTP.ListenAddress)
	if err != nil {
		_ = db.Close()
		return err
	}

	srv := server.New(
		log,
		listener,
		server.HTTPConfig{
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
		cfg.HTTP.AllowedOrigins,
		cfg.HTTP.ShutdownTimeout,
	)

	handler, err := api.NewHandler(api.NewJSONRPCServer(p, log), consts.Name)
	if err != nil {
		_ = db.Close()
		return err
	}
	srv.AddRoute(api.Endpoint, handler)
	srv.AddRoute("/metrics", promhttp.HandlerFor(p.MetricsRegistry(), promhttp.HandlerOpts{}))

	notifyCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(notifyCtx)
	g.Go(func() error {
		log.Info("serving",
			zap.String("address", listener.Addr().String()),
		)
		if err := srv.Dispatch(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return srv.Shutdown()
	})
	serveErr := g.Wait()

	// Snapshot the pool before exit so the next run resumes from the
	// current reserves and balances.
	saveErr := storage.SavePool(db, p, pricing.ConstantProductID)
	if saveErr != nil {
		log.Error("failed to persist pool",
			zap.Error(saveErr),
		)
	}
	return errors.Join(serveErr, saveErr, db.Close())
}

// loadOrCreatePool reloads the persisted pool, or on first run creates it
// from the configured genesis and persists the initial state.
func loadOrCreatePool(db *storage.Database, cfg config.PoolConfig, log logging.Logger) (*pool.Pool, error) {
	p, err := storage.LoadPool(db)
	if err == nil {
		log.Info("loaded pool",
			zap.String("address", string(p.Address())),
			zap.String("reserveA", p.ReserveA().String()),
			zap.String("reserveB", p.ReserveB().String()),
		)
		return p, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	authority := token.Address(cfg.Authority)
	assetA, err := newAsset(cfg.AssetA, authority)
	if err != nil {
		return nil, err
	}
	assetB, err := newAsset(cfg.AssetB, authority)
	if err != nil {
		return nil, err
	}
	for _, alloc := range cfg.Allocations {
		if err := mintAllocation(assetA, authority, alloc.Account, alloc.AmountA); err != nil {
			return nil, err
		}
		if err := mintAllocation(assetB, authority, alloc.Account, alloc.AmountB); err != nil {
			return nil, err
		}
	}

	p, err = pool.New(assetA, assetB, cfg.AssetA.Symbol, cfg.AssetB.Symbol, cfg.Fee, pricing.NewConstantProduct())
	if err != nil {
		return nil, err
	}
	if err := storage.SavePool(db, p, pricing.ConstantProductID); err != nil {
		return nil, err
	}
	log.Info("created pool",
		zap.String("address", string(p.Address())),
		zap.String("symbolA", cfg.AssetA.Symbol),
		zap.String("symbolB", cfg.AssetB.Symbol),
		zap.Uint64("fee", cfg.Fee),
	)
	return p, nil
}

func newAsset(cfg config.AssetConfig, authority token.Address) (*token.Token, error) {
	t, err := token.New(cfg.Name, cfg.Symbol, cfg.Metadata, cfg.Decimals, authority)
	if err != nil {
		return nil, fmt.Errorf("creating asset %q: %w", cfg.Symbol, err)
	}
	return t, nil
}

func mintAllocation(t *token.Token, authority token.Address, account string, amount string) error {
	if amount == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("invalid allocation amount %q for account %q", amount, account)
	}
	if v.Sign() == 0 {
		return nil
	}
	return t.Mint(authority, token.Address(account), v)
}
