// env_config.go: Environment variable overrides for mason settings
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agilira/go-errors"
)

// Environment variables read by LoadSettingsFromEnv.
const (
	EnvConfigFile         = "MASON_CONFIG_FILE"
	EnvPlatform           = "MASON_PLATFORM"
	EnvAuditEnabled       = "MASON_AUDIT_ENABLED"
	EnvAuditOutputFile    = "MASON_AUDIT_OUTPUT_FILE"
	EnvAuditMinLevel      = "MASON_AUDIT_MIN_LEVEL"
	EnvAuditBufferSize    = "MASON_AUDIT_BUFFER_SIZE"
	EnvAuditFlushInterval = "MASON_AUDIT_FLUSH_INTERVAL"
)

// LoadSettingsFromEnv returns settings for workspaceRoot with environment
// overrides applied on top of the defaults.
func LoadSettingsFromEnv(workspaceRoot string) (*Settings, error) {
	settings := &Settings{WorkspaceRoot: workspaceRoot}

	settings.ConfigFileName = os.Getenv(EnvConfigFile)

	// MASON_PLATFORM is "goos" or "goos/arch", e.g. "windows/386"
	if platform := os.Getenv(EnvPlatform); platform != "" {
		goos, arch, hasArch := strings.Cut(strings.ToLower(platform), "/")
		settings.Platform = goos
		settings.Arch64 = !hasArch || strings.HasSuffix(arch, "64")
	}

	if err := loadAuditSettings(&settings.Audit); err != nil {
		return nil, err
	}

	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// loadAuditSettings fills audit from MASON_AUDIT_* variables. Auditing stays
// off unless MASON_AUDIT_ENABLED or MASON_AUDIT_OUTPUT_FILE is set.
func loadAuditSettings(audit *AuditConfig) error {
	enabledStr := os.Getenv(EnvAuditEnabled)
	outputFile := os.Getenv(EnvAuditOutputFile)
	if enabledStr == "" && outputFile == "" {
		return nil
	}

	*audit = DefaultAuditConfig()
	if enabledStr != "" {
		audit.Enabled = parseBool(enabledStr)
	}
	audit.OutputFile = outputFile

	if levelStr := os.Getenv(EnvAuditMinLevel); levelStr != "" {
		level, err := parseAuditLevel(levelStr)
		if err != nil {
			return err
		}
		audit.MinLevel = level
	}

	if bufferStr := os.Getenv(EnvAuditBufferSize); bufferStr != "" {
		buffer, err := strconv.Atoi(bufferStr)
		if err != nil || buffer <= 0 {
			return errors.New(ErrCodeInvalidSettings, "invalid "+EnvAuditBufferSize+" value").
				WithContext("value", bufferStr)
		}
		audit.BufferSize = buffer
	}

	if flushStr := os.Getenv(EnvAuditFlushInterval); flushStr != "" {
		duration, err := time.ParseDuration(flushStr)
		if err != nil {
			return errors.Wrap(err, ErrCodeInvalidSettings, "invalid "+EnvAuditFlushInterval+" format").
				WithContext("value", flushStr)
		}
		audit.FlushInterval = duration
	}
	return nil
}

// parseAuditLevel parses audit level string to AuditLevel type
func parseAuditLevel(levelStr string) (AuditLevel, error) {
	switch strings.ToLower(levelStr) {
	case "info":
		return AuditInfo, nil
	case "warn", "warning":
		return AuditWarn, nil
	case "critical", "error":
		return AuditCritical, nil
	default:
		return AuditInfo, errors.New(ErrCodeInvalidSettings, "invalid audit level").
			WithContext("value", levelStr)
	}
}

// parseBool parses boolean values from environment variables
// Supports: true/false, 1/0, yes/no, on/off, enabled/disabled
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on", "enabled":
		return true
	default:
		return false
	}
}
