package tracker_test

import (
	"testing"

	"github.com/tiamat-cli/tiamat/tracker"
)

func TestBuildReport(t *testing.T) {
	issues := []tracker.Issue{
		{Key: "CORAL-1", Type: "Story", Status: "Done", Points: 3, Estimated: true},
		{Key: "CORAL-2", Type: "Story", Status: "Done", Points: 5, Estimated: true},
		{Key: "CORAL-3", Type: "Bug", Status: "Closed", Points: 1, Estimated: true},
		{Key: "CORAL-4", Type: "Story", Status: "Deployed"},
		{Key: "CORAL-5", Type: "", Status: ""},
	}

	rep := tracker.BuildReport(issues)

	if rep.Issues != 5 {
		t.Errorf("Issues = %d, want 5", rep.Issues)
	}

	if rep.Points != 9 {
		t.Errorf("Points = %v, want 9", rep.Points)
	}

	if rep.Estimated != 3 {
		t.Errorf("Estimated = %d, want 3", rep.Estimated)
	}

	// most common type first, missing types bucketed as Unknown
	wantTypes := []tracker.Bucket{
		{Name: "Story", Count: 3, Points: 8},
		{Name: "Bug", Count: 1, Points: 1},
		{Name: "Unknown", Count: 1},
	}

	if len(rep.ByType) != len(wantTypes) {
		t.Fatalf("ByType has %d buckets, want %d", len(rep.ByType), len(wantTypes))
	}

	for i, want := range wantTypes {
		if rep.ByType[i] != want {
			t.Errorf("ByType[%d] = %+v, want %+v", i, rep.ByType[i], want)
		}
	}

	// statuses follow workflow order; unknown statuses sort last
	wantStatuses := []string{"Done", "Closed", "Deployed", "Unknown"}

	if len(rep.ByStatus) != len(wantStatuses) {
		t.Fatalf("ByStatus has %d buckets, want %d", len(rep.ByStatus), len(wantStatuses))
	}

	for i, want := range wantStatuses {
		if rep.ByStatus[i].Name != want {
			t.Errorf("ByStatus[%d] = %q, want %q", i, rep.ByStatus[i].Name, want)
		}
	}
}

func TestBuildReportEmpty(t *testing.T) {
	rep := tracker.BuildReport(nil)

	if rep.Issues != 0 || rep.Points != 0 || len(rep.ByType) != 0 || len(rep.ByStatus) != 0 {
		t.Errorf("BuildReport(nil) = %+v, want zero report", rep)
	}
}
