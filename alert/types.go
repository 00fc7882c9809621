package alert

import (
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Alert is one record emitted by the monitoring manager.
// Every field is a pointer so that an absent key can be told apart from an
// empty value.
type Alert struct {
	ID        *string `mapstructure:"id"`
	Timestamp *string `mapstructure:"timestamp"`
	FullLog   *string `mapstructure:"full_log"`
	Agent     Agent   `mapstructure:"agent"`
	Rule      Rule    `mapstructure:"rule"`
	Data      Data    `mapstructure:"data"`

	// Raw is the decoded JSON object the typed fields were read from.
	Raw map[string]interface{} `mapstructure:"-"`
}

type Agent struct {
	ID   *string `mapstructure:"id"`
	Name *string `mapstructure:"name"`
}

type Rule struct {
	ID          *string   `mapstructure:"id"`
	Level       *int      `mapstructure:"level"`
	Description *string   `mapstructure:"description"`
	Groups      *[]string `mapstructure:"groups"`
}

// Data holds the decoder specific part of the alert.
type Data struct {
	Title *string `mapstructure:"title"`
	File  *string `mapstructure:"file"`
}

// StringOr returns the value p points to or def when p is nil.
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// LevelOr returns the rule level or def when the alert carries none.
func (a *Alert) LevelOr(def int) int {
	if a.Rule.Level == nil {
		return def
	}
	return *a.Rule.Level
}

// LevelString formats the rule level, def is used when it is absent.
func (a *Alert) LevelString(def string) string {
	if a.Rule.Level == nil {
		return def
	}
	return strconv.Itoa(*a.Rule.Level)
}

// Groups returns the rule groups, nil if the alert has none.
func (a *Alert) Groups() []string {
	if a.Rule.Groups == nil {
		return nil
	}
	return *a.Rule.Groups
}

func decode(raw map[string]interface{}) (*Alert, error) {
	a := &Alert{Raw: raw}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           a,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "invalid alert fields")
	}
	return a, nil
}
