// Package release provides the bump and releases commands.
package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/batch"
	"github.com/tiamat-cli/tiamat/catalog"
	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/notify"
	"github.com/tiamat-cli/tiamat/output"
	"github.com/tiamat-cli/tiamat/release"
	"github.com/tiamat-cli/tiamat/scm"
	"github.com/tiamat-cli/tiamat/version"
	"github.com/tiamat-cli/tiamat/workflow"
)

const (
	branchFlag     = "branch"
	nameFlag       = "name"
	bodyFlag       = "body"
	draftFlag      = "draft"
	prereleaseFlag = "prerelease"
	deployFlag     = "deploy"
	inputFlag      = "input"
)

// BumpCmd initializes the bump command
func BumpCmd() *cobra.Command {
	bumpCmd := &cobra.Command{
		Use:   "bump <major|minor|patch> [repository...]",
		Short: "Bump the version and cut a new release",
		Long: `Bump the version and cut a new release

The latest semantic-version tag of each repository is discovered, bumped
under the given policy, and published as a new release. A repository with
no parsable tag is treated as a first release starting from 0.0.0. An
existing tag is never overwritten.

With --deploy, the named deployment environment's workflow is dispatched
after each successful release; a dispatch failure is reported as a warning
and does not undo the release.

Examples:
  bump minor coralreef
  bump patch
  bump major coralreef --name "Big one" --deploy staging`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := config.Require(ctx, config.AuthToken); err != nil {
				return err
			}

			viper := config.Viper(ctx)

			policy, err := version.ParsePolicy(args[0])
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

			opts, err := buildOptions(ctx, cmd, policy)
			if err != nil {
				return err
			}

			manager := release.New(scm.Get(ctx, viper.GetString(config.Provider)))
			results := manager.ReleaseAll(ctx, repos, opts, batch.Concurrency(ctx))

			output.Releases(cmd.OutOrStdout(), results)
			announce(ctx, results)

			if err := release.Fatal(results); err != nil {
				return err
			}

			if failed := release.FailedCount(results); failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(results))
			}

			return nil
		},
	}

	bumpCmd.Flags().StringP(branchFlag, "b", "", "target branch for the release tag (default: configured base branch)")
	bumpCmd.Flags().StringP(nameFlag, "n", "", "release name (default: the new version)")
	bumpCmd.Flags().StringP(bodyFlag, "m", "", "release body text")
	bumpCmd.Flags().Bool(draftFlag, false, "create as draft release")
	bumpCmd.Flags().Bool(prereleaseFlag, false, "mark as pre-release")
	bumpCmd.Flags().String(deployFlag, "", "dispatch the named deployment environment after a successful release")
	bumpCmd.Flags().StringSliceP(inputFlag, "i", nil, "extra workflow inputs in key=value form (with --deploy)")

	return bumpCmd
}

func buildOptions(ctx context.Context, cmd *cobra.Command, policy version.Policy) (release.Options, error) {
	viper := config.Viper(ctx)

	target, _ := cmd.Flags().GetString(branchFlag)
	if target == "" {
		target = viper.GetString(config.BaseBranch)
	}

	name, _ := cmd.Flags().GetString(nameFlag)
	body, _ := cmd.Flags().GetString(bodyFlag)
	draft, _ := cmd.Flags().GetBool(draftFlag)
	prerelease, _ := cmd.Flags().GetBool(prereleaseFlag)

	opts := release.Options{
		Policy:     policy,
		Target:     target,
		Name:       name,
		Body:       body,
		Draft:      draft,
		Prerelease: prerelease,
		TagPrefix:  viper.GetString(config.TagPrefix),
	}

	if environment, _ := cmd.Flags().GetString(deployFlag); environment != "" {
		preset, err := workflow.Lookup(ctx, environment)
		if err != nil {
			return release.Options{}, err
		}

		rawInputs, _ := cmd.Flags().GetStringSlice(inputFlag)

		inputs, skipped := workflow.ParseInputs(rawInputs)
		for _, bad := range skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: ignoring invalid input %q (use key=value)\n", bad)
		}

		req := preset.Request("", inputs)
		opts.Workflow = &req
	}

	return opts, nil
}

// announce sends a fire-and-forget Slack summary of the created releases.
// Notification failure never fails the command.
func announce(ctx context.Context, results []release.Result) {
	notifier := notify.New(ctx)
	if !notifier.Configured() {
		return
	}

	lines := make([]string, 0, len(results))

	for _, res := range results {
		if res.TagCreated {
			lines = append(lines, fmt.Sprintf("%s: released %s", res.Repo, res.Tag))
		}
	}

	if len(lines) > 0 {
		notifier.Send(ctx, "", strings.Join(lines, "\n"))
	}
}

// ListCmd initializes the releases command
func ListCmd() *cobra.Command {
	releasesCmd := &cobra.Command{
		Use:   "releases [repository...]",
		Short: "List recent releases",
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

			repos, err := registry.Resolve(args...)
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = viper.GetInt(config.ReleasesLimit)
			}

			provider := scm.Get(ctx, viper.GetString(config.Provider))

			type listing struct {
				repo     scm.Repo
				releases []scm.Release
				err      error
			}

			listCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			results := batch.Run(listCtx, repos, batch.Concurrency(ctx), func(ctx context.Context, repo scm.Repo) listing {
				releases, err := provider.ListReleases(ctx, repo, limit)
				if scm.IsFatal(err) {
					cancel()
				}

				return listing{repo: repo, releases: releases, err: err}
			})

			var failed int

			for _, res := range results {
				if res.err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: %s: %v\n", res.repo, res.err)
					failed++

					continue
				}

				output.ReleaseList(cmd.OutOrStdout(), res.repo, res.releases)
			}

			for _, res := range results {
				if scm.IsFatal(res.err) {
					return res.err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(results))
			}

			return nil
		},
	}

	releasesCmd.Flags().IntP("limit", "n", 0, "number of releases to show per repository")

	return releasesCmd
}
