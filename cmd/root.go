package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/cmd/actions"
	jiracmd "github.com/tiamat-cli/tiamat/cmd/jira"
	"github.com/tiamat-cli/tiamat/cmd/release"
	slackcmd "github.com/tiamat-cli/tiamat/cmd/slack"
	"github.com/tiamat-cli/tiamat/config"

	// Register the SCM providers
	_ "github.com/tiamat-cli/tiamat/scm/github"
)

const (
	configFlag         = "config"
	baseFlag           = "base"
	headFlag           = "head"
	syncFlag           = "sync"
	maxConcurrencyFlag = "max-concurrency"
)

// RootCmd configures the top-level root command along with all subcommands and flags
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tiamat",
		Short: "Release orchestration across a fleet of GitHub repositories",
		Long: `Release orchestration across a fleet of GitHub repositories

Tiamat compares branches, opens pull requests in bulk, cuts semantic-version
releases, and dispatches GitHub Actions workflows over the configured
repository set. Every bulk command reports one outcome per repository; a
single repository's failure never aborts the others.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper := config.Viper(cmd.Context())

			viper.BindPFlag(config.BaseBranch, cmd.Flags().Lookup(baseFlag))
			viper.BindPFlag(config.HeadBranch, cmd.Flags().Lookup(headFlag))
			viper.BindPFlag(config.MaxConcurrency, cmd.Flags().Lookup(maxConcurrencyFlag))

			// Allow the `--sync` flag to override max-concurrency to 1
			if sync, _ := cmd.Flags().GetBool(syncFlag); sync {
				viper.Set(config.MaxConcurrency, 1)
			}

			return nil
		},
		SilenceUsage: true,
		Version:      config.Version,
	}

	// Add all subcommands to the root
	rootCmd.AddCommand(
		addCheckCmd(),
		addCreatePRCmd(),
		addListCmd(),
		addSettingsCmd(),
		release.BumpCmd(),
		release.ListCmd(),
		actions.RunCmd(),
		actions.DeployCmd(),
		slackcmd.SendCmd(),
		jiracmd.SearchCmd(),
		jiracmd.ReportCmd(),
	)

	rootCmd.PersistentFlags().StringVar(&config.CfgFile, configFlag, "", "config file (default is tiamat.yaml)")
	rootCmd.PersistentFlags().String(baseFlag, "", "base branch for comparisons and pull requests")
	rootCmd.PersistentFlags().String(headFlag, "", "head branch for comparisons and pull requests")
	rootCmd.PersistentFlags().Bool(syncFlag, false, "execute operations sequentially (alias for --max-concurrency=1)")
	rootCmd.PersistentFlags().Int(maxConcurrencyFlag, 4, "maximum number of concurrent repository operations")

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
// An interrupt cancels the command context: bulk operations stop admitting
// new repositories, report what completed, and exit nonzero.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = config.Init(ctx)

	if err := RootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// splitSpecArg peels a leading comparison token ("base..head" or
// "base...head") off the argument list; remaining arguments name
// repositories.
func splitSpecArg(args []string) (string, []string) {
	if len(args) > 0 && strings.Contains(args[0], "..") {
		return args[0], args[1:]
	}

	return "", args
}
