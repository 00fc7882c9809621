package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/secmon/alertfwd/services/logging"
	"github.com/stretchr/testify/require"
)

func TestService_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "integrations.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0640))

	c := logging.NewConfig()
	c.File = path
	s := logging.NewService(c, nil, nil)
	require.NoError(t, s.Open())

	l := s.Root().Named("custom-jira")
	l.Debug("hidden")
	l.Info("alert rule level")
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "existing line", lines[0])
	require.Contains(t, lines[1], "INFO")
	require.Contains(t, lines[1], "custom-jira")
	require.Contains(t, lines[1], "alert rule level")
}

func TestService_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.log")
	c := logging.NewConfig()
	c.File = path
	s := logging.NewService(c, nil, nil)
	require.NoError(t, s.Open())
	require.NoError(t, s.Close())
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestService_Encodings(t *testing.T) {
	testCases := []struct {
		encoding string
		check    func(t *testing.T, line string)
	}{
		{
			encoding: "json",
			check: func(t *testing.T, line string) {
				var m map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(line), &m))
				require.Equal(t, "hello", m["msg"])
				require.Equal(t, "warn", m["lvl"])
				require.Equal(t, "x", m["k"])
			},
		},
		{
			encoding: "logfmt",
			check: func(t *testing.T, line string) {
				require.Contains(t, line, "msg=hello")
				require.Contains(t, line, "lvl=warn")
				require.Contains(t, line, "k=x")
			},
		},
		{
			encoding: "text",
			check: func(t *testing.T, line string) {
				require.Contains(t, line, "WARN")
				require.Contains(t, line, "hello")
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.encoding, func(t *testing.T) {
			var stderr bytes.Buffer
			c := logging.NewConfig()
			c.File = "STDERR"
			c.Encoding = tc.encoding
			s := logging.NewService(c, nil, &stderr)
			require.NoError(t, s.Open())
			s.Root().Sugar().Warnw("hello", "k", "x")
			require.NoError(t, s.Close())
			tc.check(t, strings.TrimSpace(stderr.String()))
		})
	}
}

func TestService_SetLevel(t *testing.T) {
	var stdout bytes.Buffer
	c := logging.NewConfig()
	c.File = "STDOUT"
	s := logging.NewService(c, &stdout, nil)
	require.NoError(t, s.Open())
	require.NoError(t, s.SetLevel("error"))
	s.Root().Warn("dropped")
	require.Empty(t, stdout.String())
	require.Error(t, s.SetLevel("verbose"))
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, logging.NewConfig().Validate())

	c := logging.NewConfig()
	c.Level = "LOUD"
	require.Error(t, c.Validate())

	c = logging.NewConfig()
	c.Encoding = "xml"
	require.Error(t, c.Validate())

	c = logging.NewConfig()
	c.File = ""
	require.Error(t, c.Validate())
}
