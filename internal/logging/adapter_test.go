package logging_test

import (
	"testing"

	"github.com/jonesrussell/ticket-triage/internal/logger"
	"github.com/jonesrussell/ticket-triage/internal/logging"
)

type captureLogger struct {
	lastMsg    string
	lastFields []logger.Field
}

func (c *captureLogger) Debug(msg string, fields ...logger.Field) { c.lastMsg, c.lastFields = msg, fields }
func (c *captureLogger) Info(msg string, fields ...logger.Field)  { c.lastMsg, c.lastFields = msg, fields }
func (c *captureLogger) Warn(msg string, fields ...logger.Field)  { c.lastMsg, c.lastFields = msg, fields }
func (c *captureLogger) Error(msg string, fields ...logger.Field) { c.lastMsg, c.lastFields = msg, fields }
func (c *captureLogger) Fatal(msg string, fields ...logger.Field) { c.lastMsg, c.lastFields = msg, fields }
func (c *captureLogger) With(...logger.Field) logger.Logger       { return c }
func (c *captureLogger) Sync() error                              { return nil }

func TestAdapter_ConvertsPairsToFields(t *testing.T) {
	capture := &captureLogger{}
	adapter := logging.NewAdapter(capture)

	adapter.Info("ticket processed", "ticket_id", "abc-123", "category", "Tecnico")

	if capture.lastMsg != "ticket processed" {
		t.Errorf("msg = %q, want %q", capture.lastMsg, "ticket processed")
	}
	if len(capture.lastFields) != 2 {
		t.Fatalf("got %d fields, want 2", len(capture.lastFields))
	}
	if capture.lastFields[0].Key != "ticket_id" {
		t.Errorf("first field key = %q, want ticket_id", capture.lastFields[0].Key)
	}
	if capture.lastFields[1].Key != "category" {
		t.Errorf("second field key = %q, want category", capture.lastFields[1].Key)
	}
}

func TestAdapter_SkipsMalformedPairs(t *testing.T) {
	capture := &captureLogger{}
	adapter := logging.NewAdapter(capture)

	// Non-string key and a trailing key without a value are both dropped.
	adapter.Warn("odd args", 42, "value", "dangling")

	if len(capture.lastFields) != 0 {
		t.Errorf("got %d fields, want 0", len(capture.lastFields))
	}
}
