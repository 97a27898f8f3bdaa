// store_test.go: Tests for loading persisted option values
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordedWarning struct {
	err  error
	path string
}

func recordWarnings(t *testing.T) (WarningHandler, *[]recordedWarning) {
	t.Helper()
	var warnings []recordedWarning
	return func(err error, path string) {
		warnings = append(warnings, recordedWarning{err: err, path: path})
	}, &warnings
}

func TestLoadValues(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected Values
	}{
		{"empty file", "", Values{}},
		{"long names", "--generator makefile\n--app_name demo\n",
			Values{"--generator": "makefile", "--app_name": "demo"}},
		{"aliases resolve to names", "-g msvc15\n-u suite\n",
			Values{"--generator": "msvc15", "--unit_tests_name": "suite"}},
		{"unknown tokens are skipped", "stray --verbose --lib_name core\n",
			Values{"--lib_name": "core"}},
		{"value may look like an option", "--app_name --lib_name\n",
			Values{"--app_name": "--lib_name"}},
		{"comments are ignored", "# header\n--generator makefile # default\n",
			Values{"--generator": "makefile"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := LoadValues(Tokenize([]byte(tt.content)), newTestRegistry(), "cfg", nil)
			if err != nil {
				t.Fatalf("LoadValues() error = %v", err)
			}
			if !maps.Equal(values, tt.expected) {
				t.Errorf("LoadValues() = %v, want %v", values, tt.expected)
			}
		})
	}
}

func TestLoadValuesFirstSeenWins(t *testing.T) {
	warn, warnings := recordWarnings(t)

	content := "--generator msvc14\n-g makefile\n--generator msvc15\n"
	values, err := LoadValues(Tokenize([]byte(content)), newTestRegistry(), "/ws/builder-config.txt", warn)
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}

	if values["--generator"] != "msvc14" {
		t.Errorf("--generator = %q, want msvc14", values["--generator"])
	}
	if len(*warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(*warnings))
	}
	for _, w := range *warnings {
		if !HasCode(w.err, ErrCodeDuplicateOption) {
			t.Errorf("expected %s, got %v", ErrCodeDuplicateOption, w.err)
		}
		if w.path != "/ws/builder-config.txt" {
			t.Errorf("warning path = %q", w.path)
		}
	}
	if !strings.Contains((*warnings)[0].err.Error(), "makefile") {
		t.Errorf("warning should name the ignored value: %v", (*warnings)[0].err)
	}
}

func TestLoadValuesMalformed(t *testing.T) {
	_, err := LoadValues(Tokenize([]byte("--app_name demo\n--generator\n")), newTestRegistry(), "/ws/cfg", nil)
	if !HasCode(err, ErrCodeMalformedConfig) {
		t.Fatalf("expected %s, got %v", ErrCodeMalformedConfig, err)
	}
	if !strings.Contains(err.Error(), "in /ws/cfg expected one argument after --generator") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		result, err := LoadConfigFile(filepath.Join(t.TempDir(), DefaultConfigFileName), newTestRegistry(), nil)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		if result.Status != NoPersistedConfig {
			t.Errorf("Status = %v, want %v", result.Status, NoPersistedConfig)
		}
		if len(result.Values) != 0 {
			t.Errorf("Values = %v, want empty", result.Values)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		if err := os.WriteFile(path, []byte("--lib_name core\n"), 0644); err != nil {
			t.Fatal(err)
		}

		result, err := LoadConfigFile(path, newTestRegistry(), nil)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		if result.Status != LoadedFromFile {
			t.Errorf("Status = %v, want %v", result.Status, LoadedFromFile)
		}
		if result.Values["--lib_name"] != "core" {
			t.Errorf("Values = %v", result.Values)
		}
	})

	t.Run("empty file is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}

		result, err := LoadConfigFile(path, newTestRegistry(), nil)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		if result.Status != LoadedFromFile || len(result.Values) != 0 {
			t.Errorf("got %+v", result)
		}
	})

	t.Run("unreadable path", func(t *testing.T) {
		_, err := LoadConfigFile(t.TempDir(), newTestRegistry(), nil)
		if !HasCode(err, ErrCodeIOError) {
			t.Errorf("expected %s, got %v", ErrCodeIOError, err)
		}
	})
}

func TestLoadStatusString(t *testing.T) {
	if NoPersistedConfig.String() != "no persisted config" {
		t.Errorf("got %q", NoPersistedConfig.String())
	}
	if LoadedFromFile.String() != "loaded from file" {
		t.Errorf("got %q", LoadedFromFile.String())
	}
	if LoadStatus(42).String() != "unknown" {
		t.Errorf("got %q", LoadStatus(42).String())
	}
}
