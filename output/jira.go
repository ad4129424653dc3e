package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tiamat-cli/tiamat/tracker"
)

// Issues prints a tracker search result table with story-point totals.
func Issues(w io.Writer, issues []tracker.Issue, total int) {
	if len(issues) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no issues found"))
		return
	}

	var points float64

	var estimated int

	for _, issue := range issues {
		if issue.Estimated {
			points += issue.Points
			estimated++
		}
	}

	fmt.Fprintf(w, "%d issues (%.1f points, %d estimated)\n", total, points, estimated)

	if total > len(issues) {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("showing %d of %d", len(issues), total)))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, issue := range issues {
		pts := "-"
		if issue.Estimated {
			pts = fmt.Sprintf("%g", issue.Points)
		}

		assignee := issue.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}

		date := ""
		if !issue.Updated.IsZero() {
			date = issue.Updated.Format("2006-01-02")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			repoStyle.Render(issue.Key), pts, issue.Type, issue.Summary,
			warnStyle.Render(issue.Status), assignee, dimStyle.Render(date))
	}

	tw.Flush()
}

// SprintReport prints the aggregated sprint summary.
func SprintReport(w io.Writer, rep tracker.Report) {
	if rep.Issues == 0 {
		fmt.Fprintln(w, dimStyle.Render("no issues found"))
		return
	}

	fmt.Fprintf(w, "%d issues, %.1f points, %d estimated (%.0f%%)\n\n",
		rep.Issues, rep.Points, rep.Estimated, float64(rep.Estimated)/float64(rep.Issues)*100)

	fmt.Fprintln(w, repoStyle.Render("By type"))
	buckets(w, rep.ByType, rep.Issues)

	fmt.Fprintln(w, repoStyle.Render("By status"))
	buckets(w, rep.ByStatus, rep.Issues)
}

func buckets(w io.Writer, list []tracker.Bucket, total int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, b := range list {
		fmt.Fprintf(tw, "  %s\t%d\t%.1f\t%.0f%%\n",
			b.Name, b.Count, b.Points, float64(b.Count)/float64(total)*100)
	}

	tw.Flush()
	fmt.Fprintln(w)
}
