package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/alert"
	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/services/httppost"
)

const placeholder = "N/A"

type Diagnostic interface {
	WithContext(ctx ...keyvalue.T) Diagnostic
	AlertGroups(groups, excluded []string)
	Skipped(group string)
	NotExcluded()
	PreparedPayload(payload []byte)
	Delivered(status int, response []byte)
	Error(msg string, err error, response []byte)
}

// Poster sends one JSON request.
type Poster interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, v interface{}) (*httppost.Response, error)
}

// Result is the outcome of forwarding one alert.
type Result int

const (
	Delivered Result = iota
	Skipped
	Failed
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Target is where and how one alert is forwarded.
// Empty fields fall back to the service configuration.
type Target struct {
	URL            string
	Token          string
	Project        string
	ExcludedGroups []string
}

type Service struct {
	c      Config
	poster Poster
	diag   Diagnostic
}

func NewService(c Config, p Poster, d Diagnostic) *Service {
	return &Service{
		c:      c,
		poster: p,
		diag:   d,
	}
}

func (s *Service) Open() error {
	return nil
}

func (s *Service) Close() error {
	return nil
}

// Payload is the body expected by a Jira automation incoming webhook.
type Payload struct {
	Data Issue `json:"data"`
}

type Issue struct {
	Project     Project   `json:"project"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	IssueType   IssueType `json:"issuetype"`
}

type Project struct {
	Key string `json:"key"`
}

type IssueType struct {
	Name string `json:"name"`
}

// BuildPayload maps the alert onto a ticket, absent fields read N/A.
func (s *Service) BuildPayload(a *alert.Alert, project string) *Payload {
	groups := placeholder
	if g := a.Rule.Groups; g != nil {
		groups = strings.Join(*g, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Alert ID: %s\n", alert.StringOr(a.ID, placeholder))
	fmt.Fprintf(&b, "Agent ID: %s\n", alert.StringOr(a.Agent.ID, placeholder))
	fmt.Fprintf(&b, "Rule ID: %s\n", alert.StringOr(a.Rule.ID, placeholder))
	fmt.Fprintf(&b, "Rule Level: %s\n", a.LevelString(placeholder))
	fmt.Fprintf(&b, "Rule Description: %s\n", alert.StringOr(a.Rule.Description, placeholder))
	fmt.Fprintf(&b, "Groups: %s\n", groups)
	fmt.Fprintf(&b, "Data Title: %s\n", alert.StringOr(a.Data.Title, placeholder))
	fmt.Fprintf(&b, "Data File: %s\n", alert.StringOr(a.Data.File, placeholder))
	fmt.Fprintf(&b, "Details: %s", alert.StringOr(a.FullLog, DefaultDetails))

	return &Payload{
		Data: Issue{
			Project:     Project{Key: project},
			Summary:     s.c.SummaryPrefix + alert.StringOr(a.Rule.Description, DefaultSummary),
			Description: b.String(),
			IssueType:   IssueType{Name: s.c.IssueType},
		},
	}
}

// Alert forwards a unless one of its groups is excluded.
// A skipped alert makes no request.
func (s *Service) Alert(ctx context.Context, t Target, a *alert.Alert) (Result, error) {
	if !s.c.Enabled {
		err := errors.New("service is not enabled")
		s.diag.Error("cannot create Jira ticket", err, nil)
		return Failed, err
	}
	if t.URL == "" {
		t.URL = s.c.URL
	}
	if t.Project == "" {
		t.Project = s.c.Project
	}

	excluded := make([]string, 0, len(s.c.ExcludedGroups)+len(t.ExcludedGroups))
	excluded = append(excluded, s.c.ExcludedGroups...)
	excluded = append(excluded, t.ExcludedGroups...)
	s.diag.AlertGroups(a.Groups(), alert.NormalizeGroups(excluded))
	if g, ok := alert.Excluded(a.Groups(), excluded); ok {
		s.diag.Skipped(g)
		return Skipped, nil
	}
	s.diag.NotExcluded()

	if t.URL == "" {
		err := errors.New("no Jira webhook URL")
		s.diag.Error("cannot create Jira ticket", err, nil)
		return Failed, err
	}

	payload := s.BuildPayload(a, t.Project)
	if b, err := json.MarshalIndent(payload, "", "  "); err == nil {
		s.diag.PreparedPayload(b)
	}

	var headers map[string]string
	if t.Token != "" {
		headers = map[string]string{s.c.TokenHeader: t.Token}
	}
	resp, err := s.poster.PostJSON(ctx, t.URL, headers, payload)
	if err != nil {
		var body []byte
		if resp != nil {
			body = resp.Body
		}
		s.diag.Error("error sending webhook", err, body)
		return Failed, errors.Wrap(err, "failed to send webhook to Jira")
	}
	s.diag.Delivered(resp.StatusCode, resp.Body)
	return Delivered, nil
}

type handler struct {
	s *Service
	t Target
}

// Handler returns a handler forwarding every alert to t.
func (s *Service) Handler(t Target, ctx ...keyvalue.T) alert.Handler {
	return &handler{
		s: NewService(s.c, s.poster, s.diag.WithContext(ctx...)),
		t: t,
	}
}

func (h *handler) Handle(ctx context.Context, a *alert.Alert) {
	// Every error result is logged by the service.
	_, _ = h.s.Alert(ctx, h.t, a)
}
