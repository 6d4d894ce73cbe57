package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "facility-booking",
		Short:        "Сервис бронирования слотов площадок",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "путь к файлу конфигурации")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newReapCmd(&configPath))

	return root
}

// Execute запускает CLI
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
