package scm

import (
	"fmt"
	"strings"
	"time"
)

// Repo identifies a remote repository by owner organization and name.
// Values are parsed from configuration at startup and never mutated.
type Repo struct {
	Org  string `json:"org"`
	Name string `json:"name"`
}

// ParseRepo parses an "org/name" repository identifier.
func ParseRepo(s string) (Repo, error) {
	org, name, ok := strings.Cut(s, "/")
	if !ok || org == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository identifier %q (expected org/name)", s)
	}

	return Repo{Org: org, Name: name}, nil
}

func (r Repo) String() string {
	return r.Org + "/" + r.Name
}

// CompareMode selects the diff semantics for a branch comparison.
type CompareMode int

const (
	// ThreeDot compares head against the merge base with base (git default).
	ThreeDot CompareMode = iota
	// TwoDot compares head against base directly.
	TwoDot
)

func (m CompareMode) String() string {
	if m == TwoDot {
		return ".."
	}

	return "..."
}

// CompareSpec describes a branch comparison. It is parsed once from a
// user-supplied "base..head" or "base...head" token and passed through
// unchanged; the two modes are not interchangeable.
type CompareSpec struct {
	Base string
	Head string
	Mode CompareMode
}

// Range renders the spec in git range syntax, which is also the basehead
// path segment of the compare API.
func (s CompareSpec) Range() string {
	return s.Base + s.Mode.String() + s.Head
}

// Commit summarizes a single commit from a comparison.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
}

// Comparison holds the divergence between two branches of a repository.
// Commits are ordered newest-first, matching the upstream API.
type Comparison struct {
	Repo    Repo     `json:"repo"`
	Ahead   int      `json:"ahead"`
	Behind  int      `json:"behind"`
	Commits []Commit `json:"commits"`
}

// PullRequest describes an open pull request.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// Release describes a published release.
type Release struct {
	Tag         string    `json:"tag"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// ReleaseSpec describes a release to be created. Releases are append-only;
// providers must refuse to overwrite an existing tag.
type ReleaseSpec struct {
	Tag        string
	Name       string
	Body       string
	Target     string
	Draft      bool
	Prerelease bool
}
