// Package output renders per-repository outcome tables for bulk commands.
// Every bulk command prints one row per repository, including the failed
// ones; exit status is decided by the caller, not here.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tiamat-cli/tiamat/compare"
	"github.com/tiamat-cli/tiamat/pullreq"
	"github.com/tiamat-cli/tiamat/release"
	"github.com/tiamat-cli/tiamat/scm"
	"github.com/tiamat-cli/tiamat/workflow"
)

// Comparisons prints branch-divergence results, one block per repository.
func Comparisons(w io.Writer, results []compare.Result, spec scm.CompareSpec) {
	fmt.Fprintf(w, "Comparing %s\n", dimStyle.Render(spec.Range()))

	for _, res := range results {
		fmt.Fprintf(w, "\n------ %s ------\n", repoStyle.Render(res.Repo.String()))

		if res.Err != nil {
			fmt.Fprintf(w, "%s %v\n", errorStyle.Render("ERROR:"), res.Err)
			continue
		}

		cmp := res.Comparison
		if cmp.Ahead == 0 {
			fmt.Fprintln(w, successStyle.Render("up to date, nothing to merge"))
			continue
		}

		fmt.Fprintf(w, "%s ahead, %d behind\n", warnStyle.Render(fmt.Sprintf("%d commits", cmp.Ahead)), cmp.Behind)

		for _, commit := range cmp.Commits {
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(shortSHA(commit.SHA)), firstLine(commit.Message))
		}
	}
}

// PullRequests prints the outcome table of a bulk PR creation.
func PullRequests(w io.Writer, results []pullreq.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, res := range results {
		detail := res.URL

		if res.Err != nil {
			detail = res.Err.Error()
		} else if res.Status == pullreq.Skipped {
			detail = "nothing to merge"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", repoStyle.Render(res.Repo.String()), statusStyle(res.Status), detail)
	}

	tw.Flush()
}

// Releases prints the outcome table of a bulk version bump.
func Releases(w io.Writer, results []release.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%v\n", repoStyle.Render(res.Repo.String()), errorStyle.Render("failed"), res.Err)
			continue
		}

		prev := "none"
		if res.Previous != nil {
			prev = res.Previous.String()
		}

		line := fmt.Sprintf("%s -> %s", prev, res.Next)
		if res.Warning != nil {
			line += " " + warnStyle.Render(fmt.Sprintf("(workflow not triggered: %v)", res.Warning))
		} else if res.WorkflowTriggered {
			line += " " + dimStyle.Render("(workflow triggered)")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", repoStyle.Render(res.Repo.String()), successStyle.Render("released"), line)
	}

	tw.Flush()
}

// Dispatches prints the outcome table of a bulk workflow dispatch.
func Dispatches(w io.Writer, results []workflow.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, res := range results {
		if res.Accepted {
			fmt.Fprintf(tw, "%s\t%s\n", repoStyle.Render(res.Repo.String()), successStyle.Render("accepted"))
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%v\n", repoStyle.Render(res.Repo.String()), errorStyle.Render("failed"), res.Err)
		}
	}

	tw.Flush()
}

// ReleaseList prints recent releases of a single repository.
func ReleaseList(w io.Writer, repo scm.Repo, releases []scm.Release) {
	fmt.Fprintf(w, "\n------ %s ------\n", repoStyle.Render(repo.String()))

	if len(releases) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no releases"))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, rel := range releases {
		flags := make([]string, 0, 2)
		if rel.Draft {
			flags = append(flags, "draft")
		}
		if rel.Prerelease {
			flags = append(flags, "prerelease")
		}

		date := ""
		if !rel.PublishedAt.IsZero() {
			date = rel.PublishedAt.Format("2006-01-02")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rel.Tag, rel.Name, dimStyle.Render(date), warnStyle.Render(strings.Join(flags, ",")))
	}

	tw.Flush()
}

// Repositories prints the configured repository table.
func Repositories(w io.Writer, repos []scm.Repo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, repo := range repos {
		fmt.Fprintf(tw, "%s\t%s\n", dimStyle.Render(fmt.Sprint(i+1)), repoStyle.Render(repo.String()))
	}

	tw.Flush()
}

func statusStyle(status pullreq.Status) string {
	switch status {
	case pullreq.Created:
		return successStyle.Render(status.String())
	case pullreq.Exists, pullreq.Skipped:
		return warnStyle.Render(status.String())
	}

	return errorStyle.Render(status.String())
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}

	return sha
}

func firstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")

	return line
}
