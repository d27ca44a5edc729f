package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhanlin/graphql-demo/internal/config"
	"github.com/rhanlin/graphql-demo/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Creates a graphql-demo.toml file with the default settings at the
path given by --config (graphql-demo.toml in the current directory by default).

An existing file is left alone unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}

		if err := config.Default().Save(configPath); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Success.Render("Created"), configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}
