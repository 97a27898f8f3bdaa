// config_writer.go: Persisted configuration writer for mason
//
// Writes the resolved persisted options back to the workspace config file,
// one "name value" line per option in declaration order. The file is
// replaced atomically through a temporary file and a rename, so readers
// never observe a partial file.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// ConfigWriter serialises persisted options to the configuration file.
//
// Thread safety: writes are serialized
type ConfigWriter struct {
	filePath string
	registry *OptionRegistry

	// Optional audit integration
	auditLogger *AuditLogger

	mu sync.Mutex
}

// NewConfigWriter creates a writer for filePath. auditLogger may be nil.
func NewConfigWriter(filePath string, registry *OptionRegistry, auditLogger *AuditLogger) (*ConfigWriter, error) {
	if filePath == "" {
		return nil, errors.New(ErrCodeConfigWriterError, "filePath cannot be empty")
	}
	if registry == nil {
		return nil, errors.New(ErrCodeConfigWriterError, "option registry cannot be nil")
	}

	return &ConfigWriter{
		filePath:    filePath,
		registry:    registry,
		auditLogger: auditLogger,
	}, nil
}

// Path returns the target file path.
func (w *ConfigWriter) Path() string { return w.filePath }

// Resolve returns the values that Write would persist. Command-line values
// win; file values are kept only when clearExisting is false.
func (w *ConfigWriter) Resolve(fromCommandLine, fromFile Values, clearExisting bool) []Pair {
	if clearExisting {
		fromFile = nil
	}
	return MergeValues(w.registry, fromCommandLine, fromFile)
}

// Render serialises the values Write would persist.
func (w *ConfigWriter) Render(fromCommandLine, fromFile Values, clearExisting bool) []byte {
	var buf bytes.Buffer
	for _, pair := range w.Resolve(fromCommandLine, fromFile, clearExisting) {
		buf.WriteString(string(pair.Name))
		buf.WriteByte(' ')
		buf.WriteString(pair.Value)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write replaces the configuration file with the rendered values. With no
// values the file is truncated to empty, never removed.
func (w *ConfigWriter) Write(fromCommandLine, fromFile Values, clearExisting bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := w.Render(fromCommandLine, fromFile, clearExisting)
	if err := w.atomicWrite(data); err != nil {
		return errors.Wrap(err, ErrCodeIOError, "atomic write failed").
			WithContext("path", w.filePath)
	}

	if w.auditLogger != nil {
		w.auditLogger.LogConfigChange(w.filePath, pairsToMap(MergeValues(w.registry, nil, fromFile)),
			pairsToMap(w.Resolve(fromCommandLine, fromFile, clearExisting)))
	}

	return nil
}

// atomicWrite performs atomic file write using temporary file + rename.
func (w *ConfigWriter) atomicWrite(data []byte) error {
	dir := filepath.Dir(w.filePath)
	base := filepath.Base(w.filePath)

	// Same directory keeps the rename on one filesystem
	tempPath := filepath.Join(dir, "."+base+".tmp."+fmt.Sprintf("%d", timecache.CachedTimeNano()))

	if err := os.WriteFile(tempPath, data, 0644); err != nil { // #nosec G306 -- config file is meant to be shared
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, w.filePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			return fmt.Errorf("failed to rename temp file (cleanup error: %v): %w", removeErr, err)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func pairsToMap(pairs []Pair) map[string]interface{} {
	m := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		m[string(pair.Name)] = pair.Value
	}
	return m
}
