package diagnostic

import (
	"time"

	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/services/httppost"
	"github.com/secmon/alertfwd/services/jira"
	"github.com/secmon/alertfwd/services/teams"
	"go.uber.org/zap"
)

func Err(l *zap.Logger, msg string, err error, ctx []keyvalue.T) {
	if len(ctx) == 0 {
		l.Error(msg, zap.Error(err))
		return
	}

	fields := make([]zap.Field, len(ctx)+1) // +1 for error
	fields[0] = zap.Error(err)
	for i, kv := range ctx {
		fields[i+1] = zap.String(kv.Key, kv.Value)
	}

	l.Error(msg, fields...)
}

func logFieldsFromContext(ctx []keyvalue.T) []zap.Field {
	fields := make([]zap.Field, len(ctx))
	for i, kv := range ctx {
		fields[i] = zap.String(kv.Key, kv.Value)
	}

	return fields
}

// Cmd handler

type CmdHandler struct {
	l *zap.Logger
}

func (h *CmdHandler) Error(msg string, err error, ctx ...keyvalue.T) {
	Err(h.l, msg, err, ctx)
}

func (h *CmdHandler) Info(msg string, ctx ...keyvalue.T) {
	h.l.Info(msg, logFieldsFromContext(ctx)...)
}

func (h *CmdHandler) ReceivedArgs(alertFile string, count int) {
	h.l.Info("received arguments", zap.String("alert_file", alertFile), zap.Int("count", count))
}

func (h *CmdHandler) AlertLevel(level string) {
	h.l.Info("alert rule level", zap.String("level", level))
}

// HTTPPost handler

type HTTPPostHandler struct {
	l *zap.Logger
}

func (h *HTTPPostHandler) Error(msg string, err error, ctx ...keyvalue.T) {
	Err(h.l, msg, err, ctx)
}

func (h *HTTPPostHandler) Posted(host string, status int, elapsed time.Duration) {
	h.l.Debug("webhook answered", zap.String("host", host), zap.Int("status", status), zap.Duration("elapsed", elapsed))
}

func (h *HTTPPostHandler) WithContext(ctx ...keyvalue.T) httppost.Diagnostic {
	return &HTTPPostHandler{
		l: h.l.With(logFieldsFromContext(ctx)...),
	}
}

// Teams handler

type TeamsHandler struct {
	l *zap.Logger
}

func (h *TeamsHandler) CardPrepared(card []byte) {
	h.l.Debug("prepared card", zap.ByteString("card", card))
}

func (h *TeamsHandler) Delivered(status int) {
	h.l.Info("sent to Teams", zap.Int("status", status))
}

func (h *TeamsHandler) Error(msg string, err error) {
	h.l.Error(msg, zap.Error(err))
}

func (h *TeamsHandler) WithContext(ctx ...keyvalue.T) teams.Diagnostic {
	return &TeamsHandler{
		l: h.l.With(logFieldsFromContext(ctx)...),
	}
}

// Jira handler

type JiraHandler struct {
	l *zap.Logger
}

func (h *JiraHandler) AlertGroups(groups, excluded []string) {
	h.l.Info("alert groups", zap.Strings("groups", groups))
	h.l.Info("excluded groups", zap.Strings("excluded", excluded))
}

func (h *JiraHandler) Skipped(group string) {
	h.l.Info("alert skipped: belongs to excluded group", zap.String("group", group))
}

func (h *JiraHandler) NotExcluded() {
	h.l.Info("alert not excluded: proceeding to create Jira ticket")
}

func (h *JiraHandler) PreparedPayload(payload []byte) {
	h.l.Info("prepared payload", zap.ByteString("payload", payload))
}

func (h *JiraHandler) Delivered(status int, response []byte) {
	h.l.Info("webhook sent successfully", zap.Int("status", status), zap.ByteString("response", response))
}

func (h *JiraHandler) Error(msg string, err error, response []byte) {
	if len(response) == 0 {
		h.l.Error(msg, zap.Error(err))
		return
	}
	h.l.Error(msg, zap.Error(err), zap.ByteString("response", response))
}

func (h *JiraHandler) WithContext(ctx ...keyvalue.T) jira.Diagnostic {
	return &JiraHandler{
		l: h.l.With(logFieldsFromContext(ctx)...),
	}
}

// Flatten handler

type FlattenHandler struct {
	l *zap.Logger
}

func (h *FlattenHandler) Flattened(in, out string, records int) {
	h.l.Info("flattened records", zap.String("input", in), zap.String("output", out), zap.Int("records", records))
}

func (h *FlattenHandler) Error(msg string, err error) {
	h.l.Error(msg, zap.Error(err))
}
