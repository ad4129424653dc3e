package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/catalog"
	"github.com/tiamat-cli/tiamat/compare"
	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/output"
	"github.com/tiamat-cli/tiamat/pullreq"
	"github.com/tiamat-cli/tiamat/scm"
)

const (
	titleFlag       = "title"
	descriptionFlag = "description"
)

// addCreatePRCmd initializes the createpr command
func addCreatePRCmd() *cobra.Command {
	createprCmd := &cobra.Command{
		Use:   "createpr [base..head | base...head] [repository...]",
		Short: "Create pull requests between branches in bulk",
		Long: `Create pull requests between branches in bulk

One pull request is opened per repository. Repositories with an existing
open pull request for the same branches are reported as-is; repositories
with nothing to merge are skipped. A failure in one repository never stops
the others. The exit status is nonzero when any repository failed.

Examples:
  createpr main...release
  createpr main...release coralreef -t "Release 2026-08"`,
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

			title, _ := cmd.Flags().GetString(titleFlag)
			if title == "" {
				title = fmt.Sprintf("Merge %s into %s", spec.Head, spec.Base)
			}

			body, _ := cmd.Flags().GetString(descriptionFlag)

			orchestrator := pullreq.New(scm.Get(ctx, viper.GetString(config.Provider)))
			results := orchestrator.CreateAll(ctx, repos, spec, title, body, batch.Concurrency(ctx))

			output.PullRequests(cmd.OutOrStdout(), results)

			if err := pullreq.Fatal(results); err != nil {
				return err
			}

			if failed := pullreq.FailedCount(results); failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(results))
			}

			return nil
		},
	}

	createprCmd.Flags().StringP(titleFlag, "t", "", "pull request title")
	createprCmd.Flags().StringP(descriptionFlag, "d", "", "pull request description")

	return createprCmd
}
