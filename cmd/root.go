package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/identity-service/internal/infrastructure/config"
	"github.com/99minutos/identity-service/pkg/logger"
)

const serviceName = "identity-service"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "identity",
	Short:        "Identity and access boundary of the 99minutos platform",
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and initialises the process logger.
func bootstrap(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return config.Config{}, err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})
	return cfg, nil
}
