// audit_test.go - Test suite for the mason audit trail
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAuditLevelString(t *testing.T) {
	tests := map[AuditLevel]string{
		AuditInfo:      "INFO",
		AuditWarn:      "WARN",
		AuditCritical:  "CRITICAL",
		AuditLevel(99): "UNKNOWN",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("AuditLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestNewAuditLoggerValidation(t *testing.T) {
	if _, err := NewAuditLogger(AuditConfig{Enabled: true, BufferSize: -1}); !HasCode(err, ErrCodeInvalidAuditConfig) {
		t.Errorf("expected %s, got %v", ErrCodeInvalidAuditConfig, err)
	}
}

func TestDisabledAuditLogger(t *testing.T) {
	auditor, err := NewAuditLogger(AuditConfig{Enabled: false})
	if err != nil {
		t.Fatal(err)
	}

	auditor.LogCommand("build", []string{"build"})
	if err := auditor.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
	if _, err := auditor.Stats(); !HasCode(err, ErrCodeInvalidAuditConfig) {
		t.Errorf("Stats() on disabled logger: expected %s, got %v", ErrCodeInvalidAuditConfig, err)
	}
	if err := auditor.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNilAuditLogger(t *testing.T) {
	var auditor *AuditLogger
	auditor.LogConfigChange("cfg", nil, nil)
	if err := auditor.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
	if err := auditor.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestAuditLoggerJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	auditor, err := NewAuditLogger(AuditConfig{
		Enabled:    true,
		OutputFile: path,
		MinLevel:   AuditInfo,
		BufferSize: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	auditor.LogCommand("config", []string{"config", "-g", "makefile"})
	auditor.LogConfigChange("/ws/builder-config.txt",
		map[string]interface{}{"--generator": "msvc14"},
		map[string]interface{}{"--generator": "makefile"})

	if err := auditor.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", len(lines), data)
	}

	var event AuditEvent
	if err := json.Unmarshal([]byte(lines[1]), &event); err != nil {
		t.Fatal(err)
	}
	if event.Event != "config_written" || event.Level != AuditCritical {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Component != "mason" || event.Checksum == "" {
		t.Errorf("event missing metadata: %+v", event)
	}
	if event.FilePath != "/ws/builder-config.txt" {
		t.Errorf("FilePath = %q", event.FilePath)
	}
}

func TestAuditLoggerMinLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	auditor, err := NewAuditLogger(AuditConfig{Enabled: true, OutputFile: path, MinLevel: AuditCritical})
	if err != nil {
		t.Fatal(err)
	}
	auditor.LogCommand("build", nil)
	auditor.LogConfigChange("cfg", nil, map[string]interface{}{"--app_name": "demo"})

	stats, err := auditor.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalEvents != 1 || stats.EventsByName["config_written"] != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if err := auditor.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestAuditLoggerSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	auditor, err := NewAuditLogger(AuditConfig{Enabled: true, OutputFile: path, BufferSize: 2})
	if err != nil {
		t.Fatalf("NewAuditLogger() error = %v", err)
	}
	defer func() {
		if err := auditor.Close(); err != nil {
			t.Errorf("Failed to close auditor: %v", err)
		}
	}()

	auditor.LogCommand("build", []string{"build", "-v"})
	auditor.LogCommand("config", []string{"config", "--clear"})
	auditor.LogConfigChange("/ws/builder-config.txt",
		map[string]interface{}{"--lib_name": "core"}, map[string]interface{}{})

	stats, err := auditor.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", stats.TotalEvents)
	}
	if stats.EventsByName["command_invoked"] != 2 || stats.EventsByName["config_written"] != 1 {
		t.Errorf("EventsByName = %v", stats.EventsByName)
	}
	if stats.EventsByLevel["INFO"] != 2 || stats.EventsByLevel["CRITICAL"] != 1 {
		t.Errorf("EventsByLevel = %v", stats.EventsByLevel)
	}
	if stats.OldestEvent == nil || stats.NewestEvent == nil {
		t.Error("time range should be set")
	}
	if stats.Path != path {
		t.Errorf("Path = %q, want %q", stats.Path, path)
	}
}

func TestAuditLoggerFlushInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	auditor, err := NewAuditLogger(AuditConfig{
		Enabled:       true,
		OutputFile:    path,
		BufferSize:    100,
		FlushInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = auditor.Close() }()

	auditor.LogCommand("build", nil)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), "command_invoked") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("event was not flushed by the ticker")
}

func TestChecksumChangesWithContent(t *testing.T) {
	auditor := &AuditLogger{}
	base := AuditEvent{Event: "config_written", FilePath: "cfg", NewValue: "a"}
	other := base
	other.NewValue = "b"

	if auditor.generateChecksum(base) == auditor.generateChecksum(other) {
		t.Error("checksum must depend on the new value")
	}
	if auditor.generateChecksum(base) != auditor.generateChecksum(base) {
		t.Error("checksum must be deterministic")
	}
}
