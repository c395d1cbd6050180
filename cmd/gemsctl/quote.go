package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gemsfun/gemsfun-sdk/gemsfun"
)

func newQuoteBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote-buy",
		Short: "Quote how many tokens a SOL spend buys",
		RunE:  runQuoteBuy,
	}
	cmd.Flags().String("mint", "", "token mint address")
	cmd.Flags().Uint64("spend", 0, "spend amount in lamports")
	cmd.Flags().Uint64("slippage-bps", 500, "slippage tolerance in basis points")
	return cmd
}

func runQuoteBuy(cmd *cobra.Command, _ []string) error {
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
	spend, _ := cmd.Flags().GetUint64("spend")
	if spend == 0 {
		return fmt.Errorf("spend amount is required")
	}

	quoter := gemsfun.NewQuoter(newClient(cfg, logger), gemsfun.WithQuoterLogger(logger))
	quote, err := quoter.BuildBuyQuote(cmd.Context(), mint, spend, gemsfun.WithSlippageBps(cfg.SlippageBps))
	if err != nil {
		return err
	}

	logger.Info("buy quote",
		zap.Stringer("mint", mint),
		zap.Uint64("spend", spend),
		zap.Uint64("token_amount", quote.TokenAmount),
		zap.Uint64("max_spend", quote.MaxSpend),
		zap.Uint64("fee", quote.Fee),
	)

	fmt.Printf("spend:      %s\n", formatSol(spend))
	fmt.Printf("tokens out: %s\n", formatTokens(quote.TokenAmount))
	fmt.Printf("fee:        %s (%d bps)\n", formatSol(quote.Fee), quote.FeeBps)
	fmt.Printf("max spend:  %s (%d bps slippage)\n", formatSol(quote.MaxSpend), quote.SlippageBps)
	return nil
}

func newQuoteSellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote-sell",
		Short: "Quote the SOL proceeds of a token sell",
		RunE:  runQuoteSell,
	}
	cmd.Flags().String("mint", "", "token mint address")
	cmd.Flags().Uint64("amount", 0, "token amount in base units")
	cmd.Flags().Uint64("slippage-bps", 500, "slippage tolerance in basis points")
	return cmd
}

func runQuoteSell(cmd *cobra.Command, _ []string) error {
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
	amount, _ := cmd.Flags().GetUint64("amount")
	if amount == 0 {
		return fmt.Errorf("token amount is required")
	}

	quoter := gemsfun.NewQuoter(newClient(cfg, logger), gemsfun.WithQuoterLogger(logger))
	quote, err := quoter.BuildSellQuote(cmd.Context(), mint, amount, gemsfun.WithSlippageBps(cfg.SlippageBps))
	if err != nil {
		return err
	}

	logger.Info("sell quote",
		zap.Stringer("mint", mint),
		zap.Uint64("amount", amount),
		zap.Uint64("proceeds", quote.Proceeds),
		zap.Uint64("min_proceeds", quote.MinProceeds),
		zap.Uint64("fee", quote.Fee),
	)

	fmt.Printf("tokens in:    %s\n", formatTokens(amount))
	fmt.Printf("proceeds:     %s\n", formatSol(quote.Proceeds))
	fmt.Printf("fee:          %s (%d bps)\n", formatSol(quote.Fee), quote.FeeBps)
	fmt.Printf("min proceeds: %s (%d bps slippage)\n", formatSol(quote.MinProceeds), quote.SlippageBps)
	return nil
}

func newCurveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Show the bonding curve state for a mint",
		RunE:  runCurve,
	}
	cmd.Flags().String("mint", "", "token mint address")
	return cmd
}

func runCurve(cmd *cobra.Command, _ []string) error {
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

	account, err := newClient(cfg, logger).FetchBondingCurve(cmd.Context(), mint)
	if err != nil {
		return err
	}

	curveAddr, err := gemsfun.BondingCurveAddress(mint)
	if err != nil {
		return err
	}

	fmt.Printf("curve:                  %s\n", curveAddr)
	fmt.Printf("virtual sol reserves:   %s\n", formatSol(account.VirtualSolReserves))
	fmt.Printf("virtual token reserves: %s\n", formatTokens(account.VirtualTokenReserves))
	fmt.Printf("real sol reserves:      %s\n", formatSol(account.RealSolReserves))
	fmt.Printf("real token reserves:    %s\n", formatTokens(account.RealTokenReserves))
	fmt.Printf("tier:                   %d\n", account.Tier)
	fmt.Printf("complete:               %t\n", account.Complete)
	fmt.Printf("creator:                %s\n", account.Creator)
	return nil
}

func mintFlag(cmd *cobra.Command) (solana.PublicKey, error) {
	raw, _ := cmd.Flags().GetString("mint")
	if raw == "" {
		return solana.PublicKey{}, fmt.Errorf("mint address is required")
	}
	mint, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid mint address: %w", err)
	}
	return mint, nil
}
