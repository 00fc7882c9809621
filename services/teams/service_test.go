package teams_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/secmon/alertfwd/alert"
	"github.com/secmon/alertfwd/alert/alerttest"
	"github.com/secmon/alertfwd/services/diagnostic"
	"github.com/secmon/alertfwd/services/httppost"
	"github.com/secmon/alertfwd/services/httppost/httpposttest"
	"github.com/secmon/alertfwd/services/logging/loggingtest"
	"github.com/secmon/alertfwd/services/teams"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newService(t *testing.T, c teams.Config) (*teams.Service, *loggingtest.TestLogService) {
	t.Helper()
	ls := loggingtest.New()
	diag := diagnostic.NewServiceWith(ls)
	p, err := httppost.NewService(httppost.NewConfig(), diag.NewHTTPPostHandler())
	require.NoError(t, err)
	return teams.NewService(c, p, diag.NewTeamsHandler()), ls
}

func parse(t *testing.T, s string) *alert.Alert {
	t.Helper()
	a, err := alert.Parse([]byte(s))
	require.NoError(t, err)
	return a
}

func TestService_BuildCard(t *testing.T) {
	testCases := []struct {
		name  string
		alert string
		exp   *teams.Card
	}{
		{
			name:  "full alert",
			alert: alerttest.SSHBruteForce,
			exp: &teams.Card{
				CardType:   "MessageCard",
				Context:    "http://schema.org/extensions",
				ThemeColor: teams.ColorCritical,
				Summary:    "Wazuh Alert",
				Sections: []teams.Section{{
					ActivityTitle: "Wazuh Alert – Level 10",
					Facts: []teams.Fact{
						{Name: "Time", Value: "2024-05-02T10:11:12.000+0000"},
						{Name: "Agent", Value: "web-01 (ID: 001)"},
						{Name: "Rule", Value: "sshd: brute force trying to get access to the system."},
					},
					Markdown: true,
				}},
			},
		},
		{
			name:  "absent fields",
			alert: alerttest.Minimal,
			exp: &teams.Card{
				CardType:   "MessageCard",
				Context:    "http://schema.org/extensions",
				ThemeColor: teams.ColorNormal,
				Summary:    "Wazuh Alert",
				Sections: []teams.Section{{
					ActivityTitle: "Wazuh Alert – Level 0",
					Facts: []teams.Fact{
						{Name: "Time", Value: "N/A"},
						{Name: "Agent", Value: "N/A (ID: N/A)"},
						{Name: "Rule", Value: "N/A"},
					},
					Markdown: true,
				}},
			},
		},
		{
			name:  "below critical level",
			alert: `{"rule":{"level":9,"description":"noise"},"agent":{"name":"db"}}`,
			exp: &teams.Card{
				CardType:   "MessageCard",
				Context:    "http://schema.org/extensions",
				ThemeColor: teams.ColorNormal,
				Summary:    "Wazuh Alert",
				Sections: []teams.Section{{
					ActivityTitle: "Wazuh Alert – Level 9",
					Facts: []teams.Fact{
						{Name: "Time", Value: "N/A"},
						{Name: "Agent", Value: "db (ID: N/A)"},
						{Name: "Rule", Value: "noise"},
					},
					Markdown: true,
				}},
			},
		},
	}

	s, _ := newService(t, teams.NewConfig())
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := s.BuildCard(parse(t, tc.alert))
			if !cmp.Equal(tc.exp, got) {
				t.Errorf("unexpected card -want/+got:\n%s", cmp.Diff(tc.exp, got))
			}
		})
	}
}

func TestService_Alert(t *testing.T) {
	ts := httpposttest.NewServer(http.StatusOK, "1")
	defer ts.Close()

	s, ls := newService(t, teams.NewConfig())
	require.NoError(t, s.Alert(context.Background(), ts.URL, parse(t, alerttest.SSHBruteForce)))

	reqs := ts.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "application/json", reqs[0].Headers.Get("Content-Type"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(reqs[0].Raw, &got))
	require.Equal(t, "MessageCard", got["@type"])
	require.Equal(t, "FF0000", got["themeColor"])
	section := got["sections"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "Wazuh Alert – Level 10", section["activityTitle"])
	require.Equal(t, true, section["markdown"])

	require.Contains(t, ls.Messages(zapcore.InfoLevel), "sent to Teams")
}

func TestService_Alert_ConfiguredChannel(t *testing.T) {
	ts := httpposttest.NewServer(http.StatusOK, "1")
	defer ts.Close()

	c := teams.NewConfig()
	c.ChannelURL = ts.URL
	s, _ := newService(t, c)
	require.NoError(t, s.Alert(context.Background(), "", parse(t, alerttest.Minimal)))
	require.Len(t, ts.Requests(), 1)
}

func TestService_Alert_Errors(t *testing.T) {
	ts := httpposttest.NewServer(http.StatusBadRequest, "bad card")
	defer ts.Close()

	s, _ := newService(t, teams.NewConfig())
	err := s.Alert(context.Background(), ts.URL, parse(t, alerttest.Minimal))
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
	require.Len(t, ts.Requests(), 1)

	err = s.Alert(context.Background(), "", parse(t, alerttest.Minimal))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no Teams channel webhook URL")

	c := teams.NewConfig()
	c.Enabled = false
	s, _ = newService(t, c)
	require.Error(t, s.Alert(context.Background(), ts.URL, parse(t, alerttest.Minimal)))
	require.Len(t, ts.Requests(), 1)
}

func TestHandler_LogsFailure(t *testing.T) {
	ts := httpposttest.NewServer(http.StatusInternalServerError, "")
	defer ts.Close()

	s, ls := newService(t, teams.NewConfig())
	s.Handler(ts.URL).Handle(context.Background(), parse(t, alerttest.Minimal))

	require.Equal(t, []string{"send failed"}, ls.Messages(zapcore.ErrorLevel))
	require.Len(t, ts.Requests(), 1)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, teams.NewConfig().Validate())

	c := teams.NewConfig()
	c.ChannelURL = "http://[::1"
	require.Error(t, c.Validate())

	c = teams.NewConfig()
	c.CriticalLevel = -1
	require.Error(t, c.Validate())
}
