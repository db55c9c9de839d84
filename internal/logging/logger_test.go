package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"stagecast/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestConsoleLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("transfer complete",
		logging.String(logging.FieldRemoteMediaID, "av1234"),
		logging.Int(logging.FieldAttempt, 2),
	)

	line := buf.String()
	if !strings.Contains(line, "transfer complete") {
		t.Errorf("line %q missing message", line)
	}
	if !strings.Contains(line, "remote_media_id=av1234") {
		t.Errorf("line %q missing attr", line)
	}
	if !strings.Contains(line, "attempt=2") {
		t.Errorf("line %q missing attempt", line)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestJSONLoggerEmitsStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Error("transfer failed", logging.Error(errors.New("chunk rejected")))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v (%q)", err, buf.String())
	}
	if record["msg"] != "transfer failed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["level"] != "error" {
		t.Errorf("level = %v", record["level"])
	}
	if record["error"] != "chunk rejected" {
		t.Errorf("error = %v", record["error"])
	}
}

func TestComponentLoggerCarriesComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logging.NewComponentLogger(logger, "captions").Info("caption track submitted")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record[logging.FieldComponent] != "captions" {
		t.Errorf("component = %v", record[logging.FieldComponent])
	}
}
