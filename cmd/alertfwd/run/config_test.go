package run_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/secmon/alertfwd/cmd/alertfwd/run"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

// Ensure the configuration can be parsed.
func TestConfig_Parse(t *testing.T) {
	path := writeConfig(t, "alertfwd.conf", `
[logging]
file = "STDERR"
level = "DEBUG"

[httppost]
timeout = "3s"

[teams]
channel-url = "https://example.webhook.office.com/webhookb2/abc"
critical-level = 12

[jira]
project = "SEC"
excluded-groups = ["syscheck", "ossec"]
`)
	c, err := run.ParseConfig(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, "STDERR", c.Logging.File)
	require.Equal(t, "DEBUG", c.Logging.Level)
	require.Equal(t, "text", c.Logging.Encoding)
	require.Equal(t, 3*time.Second, time.Duration(c.HTTPPost.Timeout))
	require.Equal(t, "https://example.webhook.office.com/webhookb2/abc", c.Teams.ChannelURL)
	require.Equal(t, 12, c.Teams.CriticalLevel)
	require.True(t, c.Teams.Enabled)
	require.Equal(t, "SEC", c.Jira.Project)
	require.Equal(t, []string{"syscheck", "ossec"}, c.Jira.ExcludedGroups)
	require.Equal(t, "X-Automation-Webhook-Token", c.Jira.TokenHeader)
}

func TestConfig_Parse_YAML(t *testing.T) {
	path := writeConfig(t, "alertfwd.yaml", `
logging:
  encoding: logfmt
jira:
  issue-type: Bug
  excluded-groups:
  - web
`)
	c, err := run.ParseConfig(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, "logfmt", c.Logging.Encoding)
	require.Equal(t, "/var/ossec/logs/integrations.log", c.Logging.File)
	require.Equal(t, "Bug", c.Jira.IssueType)
	require.Equal(t, []string{"web"}, c.Jira.ExcludedGroups)
}

func TestConfig_Parse_Invalid(t *testing.T) {
	_, err := run.ParseConfig(writeConfig(t, "alertfwd.conf", `[teams`))
	require.Error(t, err)

	_, err = run.ParseConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

// Ensure the configuration can be overridden from the environment.
func TestConfig_Parse_EnvOverride(t *testing.T) {
	c, err := run.ParseConfig(writeConfig(t, "alertfwd.conf", `
[logging]
level = "DEBUG"
`))
	require.NoError(t, err)

	t.Setenv("ALERTFWD_LOGGING_LEVEL", "WARN")
	t.Setenv("ALERTFWD_HTTPPOST_TIMEOUT", "250ms")
	t.Setenv("ALERTFWD_TEAMS_ENABLED", "false")
	t.Setenv("ALERTFWD_TEAMS_CRITICAL_LEVEL", "7")
	t.Setenv("ALERTFWD_JIRA_EXCLUDED_GROUPS", "web, syscheck")
	t.Setenv("ALERTFWD_HTTPPOST_TLS_INSECURE_SKIP_VERIFY", "true")

	require.NoError(t, c.ApplyEnvOverrides())

	require.Equal(t, "WARN", c.Logging.Level)
	require.Equal(t, 250*time.Millisecond, time.Duration(c.HTTPPost.Timeout))
	require.False(t, c.Teams.Enabled)
	require.Equal(t, 7, c.Teams.CriticalLevel)
	require.Equal(t, []string{"web", "syscheck"}, c.Jira.ExcludedGroups)
	require.True(t, c.HTTPPost.TLS.InsecureSkipVerify)
}

func TestConfig_Parse_EnvOverride_Invalid(t *testing.T) {
	c := run.NewConfig()
	t.Setenv("ALERTFWD_TEAMS_CRITICAL_LEVEL", "high")
	require.Error(t, c.ApplyEnvOverrides())
}

func TestFindConfigPath(t *testing.T) {
	require.Equal(t, "/tmp/a.conf", run.FindConfigPath("/tmp/a.conf"))
	require.Equal(t, "", run.FindConfigPath(os.DevNull))

	t.Setenv("ALERTFWD_CONFIG_PATH", "/tmp/b.conf")
	require.Equal(t, "/tmp/b.conf", run.FindConfigPath(""))
}
