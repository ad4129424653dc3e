package config

import (
	"strings"

	"github.com/spf13/viper"
)

// New creates a new Viper instance with default configuration.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")))
	v.AutomaticEnv() // read in environment variables that match

	// GITHUB_TOKEN and REPOSITORIES are the conventional environment names
	v.BindEnv(AuthToken, "GITHUB_TOKEN")
	v.BindEnv(Repositories, "REPOSITORIES")
	v.BindEnv(SlackToken, "SLACK_BOT_TOKEN")
	v.BindEnv(SlackWebhookURL, "SLACK_WEBHOOK_URL")
	v.BindEnv(JiraURL, "JIRA_URL")
	v.BindEnv(JiraUser, "JIRA_USER")
	v.BindEnv(JiraToken, "JIRA_TOKEN")
	v.BindEnv(JiraProject, "JIRA_DEFAULT_PROJECT")

	setDefaults(v)

	return v
}
