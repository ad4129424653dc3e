package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/catalog"
	"github.com/tiamat-cli/tiamat/compare"
	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/output"
	"github.com/tiamat-cli/tiamat/scm"
)

// addCheckCmd initializes the check command
func addCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [base..head | base...head] [repository...]",
		Short: "Check for pending commits between branches",
		Long: `Check for pending commits between branches

The comparison spec may use three-dot (merge-base diff, the default) or
two-dot (direct diff) form. With no spec the configured base and head
branches are compared. With no repositories the whole configured set is
checked.

Examples:
  check main...release
  check main..release coralreef
  check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := config.Require(ctx, config.AuthToken); err != nil {
				return err
			}

			viper := config.Viper(ctx)

			token, args := splitSpecArg(args)

			spec, err := compare.ParseSpec(token, viper.GetString(config.BaseBranch), viper.GetString(config.HeadBranch))
			if err != nil {
				return err
			}

			registry, err := catalog.Load(ctx)
			if err != nil {
				return err
			}

			repos, err := registry.Resolve(args...)
			if err != nil {
				return err
			}

			comparator := compare.New(scm.Get(ctx, viper.GetString(config.Provider)))
			results := comparator.CompareAll(ctx, repos, spec, batch.Concurrency(ctx))

			output.Comparisons(cmd.OutOrStdout(), results, spec)

			if err := compare.Fatal(results); err != nil {
				return err
			}

			if failed := compare.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(results))
			}

			return nil
		},
	}
}
