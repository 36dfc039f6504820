package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/rmdhfz/minimart/cart/cmd"
	"github.com/rmdhfz/minimart/internal/constants"
	"github.com/rmdhfz/minimart/internal/log"
	productCmd "github.com/rmdhfz/minimart/product/cmd"
	storeCmd "github.com/rmdhfz/minimart/store/cmd"
)

func Start() {
	logger := log.InitLogger("/var/log/minimart.log").
		With().
		Str(log.KeyAppName, constants.AppMainMinimart).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "product",
			Short: "Run product service",
			Run: func(cmd *cobra.Command, args []string) {
				productCmd.RunProductService(cmd.Context())
			},
		},
		{
			Use:   "store",
			Short: "Run store service",
			Run: func(cmd *cobra.Command, args []string) {
				storeCmd.RunStoreService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
