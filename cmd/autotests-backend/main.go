package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/ronappleton/autotests-backend/internal/cli"
	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/generator"
	grpcserver "github.com/ronappleton/autotests-backend/internal/grpc"
	"github.com/ronappleton/autotests-backend/internal/httpserver"
	"github.com/ronappleton/autotests-backend/internal/logging"
	"github.com/ronappleton/autotests-backend/internal/provider"
	"github.com/ronappleton/autotests-backend/internal/telemetry"
	"github.com/ronappleton/autotests-backend/internal/workflow"
)

func main() {
	rootCmd := cli.NewRootCommand()

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		startServer(configPath)
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func startServer(configPath string) {
	app := fx.New(
		config.Module(configPath),
		logging.Module(),
		telemetry.Module(),
		generator.Module(),
		provider.Module(),
		workflow.Module(),
		grpcserver.Module(),
		httpserver.Module(),
	)

	app.Run()
}
