// settings.go: Invocation settings for mason
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"log"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/agilira/go-errors"
)

// DefaultConfigFileName is the persisted configuration file kept in the workspace root.
const DefaultConfigFileName = "builder-config.txt"

// WarningHandler receives non-fatal problems found while loading the persisted
// configuration, together with the file they were found in.
type WarningHandler func(err error, filePath string)

// Settings is built once per process and passed to every component.
type Settings struct {
	// WorkspaceRoot is the absolute project directory. Relative paths are
	// resolved against the current directory by Validate.
	WorkspaceRoot string

	// ConfigFileName is the persisted configuration file, relative to WorkspaceRoot.
	ConfigFileName string

	// Platform is the target platform in runtime.GOOS form (windows, linux, darwin).
	Platform string

	// Arch64 selects the 64-bit cmake generator variants on windows.
	Arch64 bool

	// WarningHandler is called for duplicate options in the config file.
	WarningHandler WarningHandler

	// Audit configures the optional audit trail for config writes.
	Audit AuditConfig
}

// WithDefaults applies sensible defaults to the settings
func (s *Settings) WithDefaults() *Settings {
	settings := *s

	if settings.ConfigFileName == "" {
		settings.ConfigFileName = DefaultConfigFileName
	}

	if settings.Platform == "" {
		settings.Platform = runtime.GOOS
		settings.Arch64 = strconv.IntSize == 64
	}

	if settings.WarningHandler == nil {
		settings.WarningHandler = func(err error, path string) {
			log.Printf("mason: warning in file %s: %v", path, err)
		}
	}

	return &settings
}

// Validate checks the settings and makes WorkspaceRoot absolute.
func (s *Settings) Validate() error {
	if s.WorkspaceRoot == "" {
		return errors.New(ErrCodeInvalidWorkspaceRoot, "workspace root cannot be empty")
	}
	abs, err := filepath.Abs(s.WorkspaceRoot)
	if err != nil {
		return errors.Wrap(err, ErrCodeInvalidWorkspaceRoot, "invalid workspace root").
			WithContext("workspace_root", s.WorkspaceRoot)
	}
	s.WorkspaceRoot = filepath.Clean(abs)
	return nil
}

// ConfigPath returns the absolute path of the persisted configuration file.
func (s Settings) ConfigPath() string {
	return filepath.Join(s.WorkspaceRoot, s.ConfigFileName)
}
