package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ronappleton/autotests-backend/internal/config"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "autotests-backend",
		Short:        "Provisions tracked automated tests from orders",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "config.yaml", "Path to config file")
	cmd.AddCommand(newConfigCommand())
	return cmd
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
