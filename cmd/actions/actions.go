// Package actions provides the run and deploy commands for dispatching
// GitHub Actions workflows.
package actions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/catalog"
	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/output"
	"github.com/tiamat-cli/tiamat/scm"
	"github.com/tiamat-cli/tiamat/workflow"
)

const (
	branchFlag = "branch"
	inputFlag  = "input"
)

// RunCmd initializes the run command
func RunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <workflow> [repository...]",
		Short: "Run a GitHub Actions workflow",
		Long: `Run a GitHub Actions workflow

WORKFLOW is the workflow file name. Dispatch is asynchronous: an accepted
request means the run was queued, not that it started or succeeded.

Examples:
  run build.yml coralreef
  run deploy.yml coralreef -b develop -i version=1.0.0 -i stage=production`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := config.Require(ctx, config.AuthToken); err != nil {
				return err
			}

			viper := config.Viper(ctx)

			registry, err := catalog.Load(ctx)
			if err != nil {
				return err
			}

			repos, err := registry.Resolve(args[1:]...)
			if err != nil {
				return err
			}

			ref, _ := cmd.Flags().GetString(branchFlag)
			if ref == "" {
				ref = viper.GetString(config.BaseBranch)
			}

			rawInputs, _ := cmd.Flags().GetStringSlice(inputFlag)

			inputs, skipped := workflow.ParseInputs(rawInputs)
			for _, bad := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: ignoring invalid input %q (use key=value)\n", bad)
			}

			req := workflow.Request{Workflow: args[0], Ref: ref, Inputs: inputs}

			return dispatch(cmd, repos, req)
		},
	}

	runCmd.Flags().StringP(branchFlag, "b", "", "branch to run the workflow on (default: configured base branch)")
	runCmd.Flags().StringSliceP(inputFlag, "i", nil, "workflow inputs in key=value form")

	return runCmd
}

// DeployCmd initializes the deploy command
func DeployCmd() *cobra.Command {
	deployCmd := &cobra.Command{
		Use:   "deploy <environment> [repository...]",
		Short: "Dispatch a deployment workflow preset",
		Long: `Dispatch a deployment workflow preset

Each environment is bound in configuration to a workflow file, a ref, and
default inputs. Extra inputs merge over the preset defaults.

Examples:
  deploy staging coralreef
  deploy prod`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := config.Require(ctx, config.AuthToken); err != nil {
				return err
			}

			preset, err := workflow.Lookup(ctx, args[0])
			if err != nil {
				return err
			}

			registry, err := catalog.Load(ctx)
			if err != nil {
				return err
			}

			repos, err := registry.Resolve(args[1:]...)
			if err != nil {
				return err
			}

			ref, _ := cmd.Flags().GetString(branchFlag)
			rawInputs, _ := cmd.Flags().GetStringSlice(inputFlag)

			inputs, skipped := workflow.ParseInputs(rawInputs)
			for _, bad := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: ignoring invalid input %q (use key=value)\n", bad)
			}

			if preset.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", preset.Description, preset.Workflow)
			}

			return dispatch(cmd, repos, preset.Request(ref, inputs))
		},
	}

	deployCmd.Flags().StringP(branchFlag, "b", "", "override the preset ref")
	deployCmd.Flags().StringSliceP(inputFlag, "i", nil, "extra workflow inputs in key=value form")

	return deployCmd
}

func dispatch(cmd *cobra.Command, repos []scm.Repo, req workflow.Request) error {
	ctx := cmd.Context()
	viper := config.Viper(ctx)

	dispatcher := workflow.New(scm.Get(ctx, viper.GetString(config.Provider)))
	results := dispatcher.DispatchAll(ctx, repos, req, batch.Concurrency(ctx))

	output.Dispatches(cmd.OutOrStdout(), results)

	if err := workflow.Fatal(results); err != nil {
		return err
	}

	if failed := workflow.FailedCount(results); failed > 0 {
		return fmt.Errorf("%d of %d repositories failed", failed, len(results))
	}

	return nil
}
