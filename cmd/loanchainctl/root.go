package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	redisrepo "loanchain-web/internal/adapter/repository/redis"
	"loanchain-web/internal/config"
	"loanchain-web/internal/infrastructure/cache"
	"loanchain-web/internal/infrastructure/chain"
	"loanchain-web/internal/usecase/connector"
)

// cliClient scopes the CLI's entry in the key/value store.
const cliClient = "loanchainctl"

var (
	jsonOut bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "loanchainctl",
	Short: "Inspect the LoanChain lending contract",
	Long: `loanchainctl reads the lending contract with the configured wallet,
using the same connector and aggregation as the web app.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "time limit for chain calls")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(loansCmd)
}

type env struct {
	cfg  *config.Config
	conn *connector.Conn
}

// connect loads the config and connects the configured wallet. The returned
// func releases the store connection.
func connect(ctx context.Context) (*env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	provider, err := chain.Open(cfg.WalletKeys)
	if err != nil {
		return nil, nil, fmt.Errorf("wallet: %w", err)
	}
	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	closeFn := func() { _ = rdb.Close() }

	c := connector.New(provider, redisrepo.NewKV(rdb), cfg.Network(), cfg.Contract())
	conn, err := c.Connect(ctx, cliClient)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return &env{cfg: cfg, conn: conn}, closeFn, nil
}

// withEnv runs fn under the --timeout deadline with a connected wallet.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	e, closeFn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, e)
}
