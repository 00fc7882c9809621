package diagnostic_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/services/diagnostic"
	"github.com/secmon/alertfwd/services/logging"
	"github.com/secmon/alertfwd/services/logging/loggingtest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestService_NamedWithContext(t *testing.T) {
	var stderr bytes.Buffer
	c := logging.NewConfig()
	c.File = "STDERR"
	c.Encoding = "logfmt"
	s := diagnostic.NewService(c, nil, &stderr)
	require.NoError(t, s.Open())

	d := s.Named("custom-teams").With(keyvalue.KV("invocation", "abc"))
	d.NewCmdHandler().Error("failed to load alert", errors.New("boom"))
	require.NoError(t, s.Close())

	line := strings.TrimSpace(stderr.String())
	require.Contains(t, line, "logger=custom-teams")
	require.Contains(t, line, "invocation=abc")
	require.Contains(t, line, "service=run")
	require.Contains(t, line, "error=boom")
}

func TestHandlers(t *testing.T) {
	ls := loggingtest.New()
	s := diagnostic.NewServiceWith(ls)

	j := s.NewJiraHandler().WithContext(keyvalue.KV("project", "SEC"))
	j.AlertGroups([]string{"sshd"}, []string{"web"})
	j.Skipped("sshd")
	j.Error("error sending webhook", errors.New("status 500"), []byte("oops"))

	require.Equal(t, []string{
		"alert groups",
		"excluded groups",
		"alert skipped: belongs to excluded group",
	}, ls.Messages(zapcore.InfoLevel))

	entries := ls.Logs.FilterMessage("error sending webhook").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	require.Equal(t, "SEC", ctx["project"])
	require.Equal(t, "jira", ctx["service"])
	require.Equal(t, "oops", ctx["response"])

	s.NewTeamsHandler().Delivered(200)
	require.Equal(t, 1, ls.Logs.FilterMessage("sent to Teams").Len())
}
