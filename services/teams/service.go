package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/alert"
	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/services/httppost"
)

const (
	ColorNormal   = "0078D7"
	ColorCritical = "FF0000"

	placeholder = "N/A"
)

type Diagnostic interface {
	WithContext(ctx ...keyvalue.T) Diagnostic
	CardPrepared(card []byte)
	Delivered(status int)
	Error(msg string, err error)
}

// Poster sends one JSON request.
type Poster interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, v interface{}) (*httppost.Response, error)
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

// ChannelURL is the configured fallback webhook URL.
func (s *Service) ChannelURL() string {
	return s.c.ChannelURL
}

// Card is a Microsoft MessageCard structure.
// See https://docs.microsoft.com/en-us/outlook/actionable-messages/message-card-reference#card-fields.
type Card struct {
	CardType   string    `json:"@type"`
	Context    string    `json:"@context"`
	ThemeColor string    `json:"themeColor"`
	Summary    string    `json:"summary"`
	Sections   []Section `json:"sections"`
}

type Section struct {
	ActivityTitle string `json:"activityTitle"`
	Facts         []Fact `json:"facts"`
	Markdown      bool   `json:"markdown"`
}

type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BuildCard maps the alert onto a card, absent fields read N/A.
func (s *Service) BuildCard(a *alert.Alert) *Card {
	level := a.LevelOr(0)

	color := ColorNormal
	if level >= s.c.CriticalLevel {
		color = ColorCritical
	}

	agent := fmt.Sprintf("%s (ID: %s)",
		alert.StringOr(a.Agent.Name, placeholder),
		alert.StringOr(a.Agent.ID, placeholder),
	)

	return &Card{
		CardType:   "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: color,
		Summary:    s.c.Summary,
		Sections: []Section{{
			ActivityTitle: s.c.TitlePrefix + " " + strconv.Itoa(level),
			Facts: []Fact{
				{Name: "Time", Value: alert.StringOr(a.Timestamp, placeholder)},
				{Name: "Agent", Value: agent},
				{Name: "Rule", Value: alert.StringOr(a.Rule.Description, placeholder)},
			},
			Markdown: true,
		}},
	}
}

// Alert posts the card for a to channelURL, or to the configured channel
// when channelURL is empty.
func (s *Service) Alert(ctx context.Context, channelURL string, a *alert.Alert) error {
	if !s.c.Enabled {
		return errors.New("service is not enabled")
	}
	if channelURL == "" {
		channelURL = s.c.ChannelURL
	}
	if channelURL == "" {
		return errors.New("no Teams channel webhook URL")
	}

	card := s.BuildCard(a)
	if b, err := json.Marshal(card); err == nil {
		s.diag.CardPrepared(b)
	}

	resp, err := s.poster.PostJSON(ctx, channelURL, nil, card)
	if err != nil {
		return errors.Wrap(err, "failed to send card to Teams")
	}
	s.diag.Delivered(resp.StatusCode)
	return nil
}

type handler struct {
	s          *Service
	channelURL string
}

// Handler returns a handler posting to channelURL that logs failures
// instead of returning them.
func (s *Service) Handler(channelURL string, ctx ...keyvalue.T) alert.Handler {
	return &handler{
		s:          NewService(s.c, s.poster, s.diag.WithContext(ctx...)),
		channelURL: channelURL,
	}
}

func (h *handler) Handle(ctx context.Context, a *alert.Alert) {
	if err := h.s.Alert(ctx, h.channelURL, a); err != nil {
		h.s.diag.Error("send failed", err)
	}
}
