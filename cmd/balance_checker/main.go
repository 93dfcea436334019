package main

import (
	"fmt"
	"os"
	"strings"

	"balance_aggregator/internal/app/service"
	"balance_aggregator/internal/infrastructure/configloader"
	"balance_aggregator/internal/infrastructure/network/client"
	"balance_aggregator/internal/pkg/logger"
	"balance_aggregator/internal/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	addressFlag string
	chainFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "balance-checker",
	Short: "Query blockchain balances for multiple chains and tokens",
	Long: `balance-checker queries the native and token balances of an address
on a configured chain through the chain's JSON-RPC endpoint and prints them
in a human-readable table.

Examples:
  balance-checker --address 0x78697a9cfc48c1e9d1040172d51833ef78083b10
  balance-checker --address 8vJ1EEeJBSX8UZetuHY7d2SiGjdw2AhfamzfxokPsCF4 --chain solana-devnet`,
	RunE:          runBalances,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runBalances(cmd *cobra.Command, args []string) error {
	cfgPath := utils.GetEnv("CONFIG_PATH", "")

	var (
		cfg *configloader.Config
		err error
	)
	if cfgPath != "" {
		cfg, err = configloader.LoadFile(cfgPath)
	} else {
		cfg, err = configloader.Load()
	}
	if err != nil {
		return err
	}

	appLogger := logger.NewSlogAdapter()
	clientProvider := client.NewChainClientProvider(appLogger)
	balanceService := service.NewBalanceService(cfg, clientProvider, appLogger)

	fmt.Printf("Querying balances for address: %s\n\n", addressFlag)

	balances, err := balanceService.GetBalances(cmd.Context(), chainFlag, addressFlag)
	if err != nil {
		return err
	}

	separator := strings.Repeat("=", 60)
	fmt.Printf("Chain: %s\n", chainFlag)
	fmt.Println(separator)
	for _, balance := range balances {
		fmt.Printf("%-6s | %20s (raw: %s)\n", balance.Token, balance.Formatted, balance.Amount)
	}
	fmt.Println(separator)

	return nil
}

func main() {
	// zap writes to stderr, keeping stdout clean for the balance table.
	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger.InitZap(zapLogger, utils.GetEnv("LOG_LEVEL", "WARN"))

	rootCmd.Flags().StringVarP(&addressFlag, "address", "a", "", "the blockchain address to query")
	rootCmd.Flags().StringVarP(&chainFlag, "chain", "c", "sepolia", "chain to query (sepolia, solana-devnet, ...)")
	_ = rootCmd.MarkFlagRequired("address")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
