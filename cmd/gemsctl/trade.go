package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gemsfun/gemsfun-sdk/curve"
	"github.com/gemsfun/gemsfun-sdk/gemsfun"
	"github.com/gemsfun/gemsfun-sdk/internal/config"
	"github.com/gemsfun/gemsfun-sdk/internal/model"
	"github.com/gemsfun/gemsfun-sdk/internal/storage"
	"github.com/gemsfun/gemsfun-sdk/internal/storage/postgres"
)

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy tokens with a SOL spend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrade(cmd, curve.Buy)
		},
	}
	addTradeFlags(cmd)
	cmd.Flags().Uint64("spend", 0, "spend amount in lamports")
	return cmd
}

func newSellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell tokens for SOL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrade(cmd, curve.Sell)
		},
	}
	addTradeFlags(cmd)
	cmd.Flags().Uint64("amount", 0, "token amount in base units")
	return cmd
}

func addTradeFlags(cmd *cobra.Command) {
	cmd.Flags().String("mint", "", "token mint address")
	cmd.Flags().String("keypair", "", "path to the signer keypair file")
	cmd.Flags().Uint64("slippage-bps", 500, "slippage tolerance in basis points")
	cmd.Flags().Bool("simulate-only", false, "simulate without submitting")
	cmd.Flags().Bool("skip-simulation", false, "submit without preflight simulation")
	cmd.Flags().String("receipts", "", "JSONL receipt output path")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for receipt storage")
}

func runTrade(cmd *cobra.Command, direction curve.Direction) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	mint, err := mintFlag(cmd)
	if err != nil {
		return err
	}
	if cfg.KeypairPath == "" {
		return fmt.Errorf("keypair path is required")
	}
	user, err := solana.PrivateKeyFromSolanaKeygenFile(cfg.KeypairPath)
	if err != nil {
		return fmt.Errorf("load keypair: %w", err)
	}

	simulateOnly, _ := cmd.Flags().GetBool("simulate-only")
	skipSimulation, _ := cmd.Flags().GetBool("skip-simulation")
	tradeCfg := gemsfun.TradeConfig{
		SlippageBps:    cfg.SlippageBps,
		SimulateOnly:   simulateOnly,
		SkipSimulation: skipSimulation,
	}

	client := newClient(cfg, logger)

	var result *gemsfun.TradeResult
	switch direction {
	case curve.Buy:
		spend, _ := cmd.Flags().GetUint64("spend")
		if spend == 0 {
			return fmt.Errorf("spend amount is required")
		}
		result, err = client.Buy(cmd.Context(), user, mint, spend, tradeCfg)
	case curve.Sell:
		amount, _ := cmd.Flags().GetUint64("amount")
		if amount == 0 {
			return fmt.Errorf("token amount is required")
		}
		result, err = client.Sell(cmd.Context(), user, mint, amount, tradeCfg)
	}
	if err != nil {
		return err
	}

	if result.Signature.IsZero() {
		fmt.Printf("%s simulated: %s tokens for %s (bound %s)\n",
			result.Direction, formatTokens(result.TokenAmount), formatSol(result.Lamports), formatSol(result.Bound))
	} else {
		fmt.Printf("%s submitted: %s\n", result.Direction, result.Signature)
		fmt.Printf("tokens: %s, sol: %s, fee: %s\n",
			formatTokens(result.TokenAmount), formatSol(result.Lamports), formatSol(result.Fee))
	}

	return writeReceipts(cmd.Context(), cfg, logger, result)
}

func writeReceipts(ctx context.Context, cfg config.Config, logger *zap.Logger, result *gemsfun.TradeResult) error {
	sinks, cleanup, err := receiptSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	if len(sinks) == 0 {
		return nil
	}

	receipt := model.TradeReceipt{
		Signature:     result.Signature.String(),
		Mint:          result.Mint.String(),
		Side:          result.Direction.String(),
		TokenAmount:   result.TokenAmount,
		QuoteLamports: result.Lamports,
		FeeLamports:   result.Fee,
		BoundLamports: result.Bound,
		FeeBps:        result.FeeBps,
		SlippageBps:   result.SlippageBps,
		Simulated:     result.Simulated,
		Timestamp:     time.Now().Unix(),
	}
	if result.Signature.IsZero() {
		receipt.Signature = ""
	}

	for _, sink := range sinks {
		if err := sink.PutReceipts(ctx, []model.TradeReceipt{receipt}); err != nil {
			logger.Error("write receipt", zap.Error(err))
			return err
		}
	}
	return nil
}

func receiptSinks(ctx context.Context, cfg config.Config) ([]storage.Storage, func(), error) {
	var sinks []storage.Storage
	cleanup := func() {}

	if cfg.Receipts != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Receipts))
	}
	if cfg.PgDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, cleanup, fmt.Errorf("ensure schema: %w", err)
		}
		sinks = append(sinks, store)
		cleanup = store.Close
	}

	return sinks, cleanup, nil
}
