package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/catalog"
	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/output"
)

// addListCmd initializes the list command
func addListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured repositories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := catalog.Load(cmd.Context())
			if err != nil {
				return err
			}

			output.Repositories(cmd.OutOrStdout(), registry.All())

			return nil
		},
	}
}

// addSettingsCmd initializes the settings command
func addSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Display the effective configuration",
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			viper := config.Viper(ctx)

			token := "not set"
			if viper.GetString(config.AuthToken) != "" {
				token = "set"
			}

			repoCount := 0
			if registry, err := catalog.Load(ctx); err == nil {
				repoCount = registry.Len()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base branch:   %s\n", viper.GetString(config.BaseBranch))
			fmt.Fprintf(out, "Head branch:   %s\n", viper.GetString(config.HeadBranch))
			fmt.Fprintf(out, "GitHub token:  %s\n", token)
			fmt.Fprintf(out, "Repositories:  %d\n", repoCount)
		},
	}
}
