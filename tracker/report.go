package tracker

import (
	"sort"
	"strings"
)

// Bucket aggregates issue count and story points under one label.
type Bucket struct {
	Name   string
	Count  int
	Points float64
}

// Report summarizes a set of issues for a sprint report.
type Report struct {
	Issues    int
	Points    float64
	Estimated int

	ByType   []Bucket // most common type first
	ByStatus []Bucket // approximate workflow order
}

// statusOrder approximates a workflow; statuses containing one of these
// substrings sort in this order, unknown statuses last.
var statusOrder = []string{
	"backlog", "to do", "open", "in progress",
	"review", "testing", "done", "closed", "deployed", "resolved",
}

// BuildReport aggregates issues by type and by status with story-point
// totals.
func BuildReport(issues []Issue) Report {
	rep := Report{Issues: len(issues)}

	byType := make(map[string]*Bucket)
	byStatus := make(map[string]*Bucket)

	for _, issue := range issues {
		if issue.Estimated {
			rep.Points += issue.Points
			rep.Estimated++
		}

		add(byType, issue.Type, issue)
		add(byStatus, issue.Status, issue)
	}

	rep.ByType = collect(byType)
	sort.Slice(rep.ByType, func(i, j int) bool {
		if rep.ByType[i].Count != rep.ByType[j].Count {
			return rep.ByType[i].Count > rep.ByType[j].Count
		}

		return rep.ByType[i].Name < rep.ByType[j].Name
	})

	rep.ByStatus = collect(byStatus)
	sort.Slice(rep.ByStatus, func(i, j int) bool {
		ri, rj := statusRank(rep.ByStatus[i].Name), statusRank(rep.ByStatus[j].Name)
		if ri != rj {
			return ri < rj
		}

		return rep.ByStatus[i].Name < rep.ByStatus[j].Name
	})

	return rep
}

func add(buckets map[string]*Bucket, name string, issue Issue) {
	if name == "" {
		name = "Unknown"
	}

	bucket, ok := buckets[name]
	if !ok {
		bucket = &Bucket{Name: name}
		buckets[name] = bucket
	}

	bucket.Count++
	if issue.Estimated {
		bucket.Points += issue.Points
	}
}

func collect(buckets map[string]*Bucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}

	return out
}

func statusRank(name string) int {
	lower := strings.ToLower(name)

	for i, ordered := range statusOrder {
		if strings.Contains(lower, ordered) {
			return i
		}
	}

	return len(statusOrder)
}
