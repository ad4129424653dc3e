// Package jira provides the issue-tracker query commands.
package jira

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/config"
	"github.com/tiamat-cli/tiamat/output"
	"github.com/tiamat-cli/tiamat/tracker"
)

const (
	projectFlag = "project"
	limitFlag   = "limit"
	sprintFlag  = "sprint"
)

// SearchCmd initializes the jira command
func SearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "jira [query]",
		Short: "Search Jira issues",
		Long: `Search Jira issues

QUERY is either raw JQL or plain text. Plain text is matched against the
issue text fields. Results are scoped to the configured project unless the
query names one.

Examples:
  jira "payment timeout"
  jira 'status = "In Progress" AND assignee = currentUser()' -p CORAL`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := tracker.New(ctx)
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			project, _ := cmd.Flags().GetString(projectFlag)
			if project == "" {
				project = config.Viper(ctx).GetString(config.JiraProject)
			}

			if project == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: no project configured, searching across all projects")
			}

			limit, _ := cmd.Flags().GetInt(limitFlag)

			jql := tracker.BuildJQL(query, project)

			issues, total, err := client.Search(ctx, jql, limit)
			if err != nil {
				return err
			}

			output.Issues(cmd.OutOrStdout(), issues, total)

			return nil
		},
	}

	searchCmd.Flags().StringP(projectFlag, "p", "", "Jira project key (default: configured project)")
	searchCmd.Flags().IntP(limitFlag, "n", 20, "maximum number of issues to return")

	return searchCmd
}

// ReportCmd initializes the sprint-report command
func ReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "sprint-report",
		Short: "Summarize completed work for a sprint",
		Long: `Summarize completed work for a sprint

Counts issues and story points for everything the sprint finished, broken
down by issue type and by status.

Examples:
  sprint-report --sprint "Sprint 42"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := tracker.New(ctx)
			if err != nil {
				return err
			}

			sprint, _ := cmd.Flags().GetString(sprintFlag)

			issues, _, err := client.Search(ctx, tracker.SprintJQL(sprint), 200)
			if err != nil {
				return err
			}

			output.SprintReport(cmd.OutOrStdout(), tracker.BuildReport(issues))

			return nil
		},
	}

	reportCmd.Flags().String(sprintFlag, "", "sprint name (required)")
	_ = reportCmd.MarkFlagRequired(sprintFlag)

	return reportCmd
}
