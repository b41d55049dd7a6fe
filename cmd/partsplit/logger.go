package main

import (
	"github.com/vnykmshr/partsplit/internal/logging"
	"github.com/vnykmshr/partsplit/pkg/partsplit"
)

// cliLogger exposes the stderr logger through the public Logger interface.
type cliLogger struct {
	l logging.Logger
}

func newCLILogger(l logging.Logger) *cliLogger {
	return &cliLogger{l: l}
}

func (c *cliLogger) Debug(msg string, fields ...partsplit.LogField) { c.l.Debug(msg, toFields(fields)...) }
func (c *cliLogger) Info(msg string, fields ...partsplit.LogField)  { c.l.Info(msg, toFields(fields)...) }
func (c *cliLogger) Warn(msg string, fields ...partsplit.LogField)  { c.l.Warn(msg, toFields(fields)...) }
func (c *cliLogger) Error(msg string, fields ...partsplit.LogField) { c.l.Error(msg, toFields(fields)...) }

func toFields(fields []partsplit.LogField) []logging.Field {
	out := make([]logging.Field, len(fields))
	for i, f := range fields {
		out[i] = logging.F(f.Key, f.Value)
	}
	return out
}
