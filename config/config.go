// Package config provides configuration handling backed by Viper. The
// effective configuration is assembled once at process start and carried
// through the command context; components never consult ambient globals.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// CfgFile may be set by the --config flag before Init runs.
	CfgFile string

	// Version is dynamically set at build time using the -X linker flag.
	// Default value is used for testing and development builds.
	Version = "dev"
)

const (
	AuthToken    = "auth-token"
	Repositories = "repositories"

	Provider   = "git.provider"
	BaseBranch = "git.base-branch"
	HeadBranch = "git.head-branch"

	MaxConcurrency = "max-concurrency"
	RetryAttempts  = "retry.attempts"
	RetryWait      = "retry.wait"

	TagPrefix     = "release.tag-prefix"
	ReleasesLimit = "release.list-limit"

	SlackToken      = "slack.token"
	SlackWebhookURL = "slack.webhook-url"
	SlackChannel    = "slack.channel"

	JiraURL         = "jira.url"
	JiraUser        = "jira.user"
	JiraToken       = "jira.token"
	JiraProject     = "jira.project"
	JiraPointsField = "jira.points-field"

	WorkflowPresets = "workflows.presets"
)

// Init builds the configuration, reading in the config file and matching
// environment variables, and returns a context carrying it.
func Init(ctx context.Context) context.Context {
	v := New()

	if CfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(CfgFile)
	} else {
		v.SetConfigName("tiamat")

		// Search in the working directory
		v.AddConfigPath(".")

		// Search in the user's config directory
		if usrConfig, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(usrConfig)
		}

		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config"))
		}
	}

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err == nil {
		fmt.Printf("Using config file: %v\n\n", v.ConfigFileUsed())
	}

	return SetViper(ctx, v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(Provider, "github")
	v.SetDefault(BaseBranch, "main")
	v.SetDefault(HeadBranch, "release")

	v.SetDefault(MaxConcurrency, 4)
	v.SetDefault(RetryAttempts, 2)
	v.SetDefault(RetryWait, "1s")

	v.SetDefault(TagPrefix, "v")
	v.SetDefault(ReleasesLimit, 5)

	// The story-points custom field varies per Jira site
	v.SetDefault(JiraPointsField, "customfield_10035")

	// deployment presets in the form `environment: {workflow, ref, inputs, description}`
	v.SetDefault(WorkflowPresets, map[string]any{
		"staging": map[string]any{
			"workflow":    "deploy.preview.manual.yml",
			"ref":         "release",
			"inputs":      map[string]string{"region": "eu-central-1", "stage": "staging"},
			"description": "Deploy to staging EU",
		},
		"prod": map[string]any{
			"workflow":    "deploy.live.manual.yml",
			"ref":         "main",
			"description": "Deploy to prod EU and US",
		},
		"demo": map[string]any{
			"workflow":    "deploy.preview.demo.yml",
			"ref":         "release",
			"description": "Deploy to demo EU and US",
		},
	})
}
