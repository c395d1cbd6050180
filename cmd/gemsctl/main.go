package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gemsfun/gemsfun-sdk/gemsfun"
	"github.com/gemsfun/gemsfun-sdk/internal/config"
)

const (
	solDecimals   = 9
	tokenDecimals = 6
)

func main() {
	root := &cobra.Command{
		Use:          "gemsctl",
		Short:        "gems.fun bonding-curve trading client",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "Solana RPC URL")
	root.PersistentFlags().String("commitment", "confirmed", "commitment level (processed, confirmed, finalized)")
	root.PersistentFlags().Int("max-retries", 3, "maximum retry attempts for transient RPC failures")
	root.PersistentFlags().Duration("retry-backoff", 250*time.Millisecond, "initial retry backoff")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newQuoteBuyCmd())
	root.AddCommand(newQuoteSellCmd())
	root.AddCommand(newBuyCmd())
	root.AddCommand(newSellCmd())
	root.AddCommand(newCurveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	if cfg.RPCURL == "" {
		return config.Config{}, fmt.Errorf("rpc url is required")
	}
	return cfg, nil
}

func newClient(cfg config.Config, logger *zap.Logger) *gemsfun.Client {
	return gemsfun.NewClient(cfg.RPCURL,
		gemsfun.WithLogger(logger),
		gemsfun.WithCommitment(rpc.CommitmentType(cfg.Commitment)),
		gemsfun.WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
	)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func formatSol(lamports uint64) string {
	return formatUnits(lamports, solDecimals) + " SOL"
}

func formatTokens(units uint64) string {
	return formatUnits(units, tokenDecimals)
}

func formatUnits(raw uint64, decimals int32) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -decimals).String()
}
