// tokenizer_test.go: Tests for the config file tokenizer
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single pair", "--generator makefile\n", []string{"--generator", "makefile"}},
		{"trailing comment", "--generator makefile # default\n", []string{"--generator", "makefile"}},
		{"comment only line", "# nothing here\n--app_name demo\n", []string{"--app_name", "demo"}},
		{"comment glued to value", "--lib_name core#lib\n", []string{"--lib_name", "core"}},
		{"blank lines and tabs", "\n\t--app_name\t demo  \n\n   \n-l  core\n", []string{"--app_name", "demo", "-l", "core"}},
		{"several pairs on one line", "--app_name a --lib_name b", []string{"--app_name", "a", "--lib_name", "b"}},
		{"crlf line endings", "--app_name a\r\n--lib_name b\r\n", []string{"--app_name", "a", "--lib_name", "b"}},
		{"bare cr line endings", "--generator makefile # c\r--app_name x\r", []string{"--generator", "makefile", "--app_name", "x"}},
		{"mixed line endings", "-g makefile\r\r\n-a x # y\n-l z", []string{"-g", "makefile", "-a", "x", "-l", "z"}},
		{"quotes are not honoured", `--app_name "my # app"`, []string{"--app_name", `"my`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Tokenize([]byte(tt.input)))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeIsRestartable(t *testing.T) {
	seq := Tokenize([]byte("--app_name demo\n"))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second iteration = %q, want %q", second, first)
	}
}

func TestTokenizeStopsEarly(t *testing.T) {
	var got []string
	for token := range Tokenize([]byte("a b c\nd e\n")) {
		got = append(got, token)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %q", got)
	}
}

func TestTokenizeFile(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		if err := os.WriteFile(path, []byte("--generator makefile # default\n"), 0644); err != nil {
			t.Fatal(err)
		}

		seq, err := TokenizeFile(path)
		if err != nil {
			t.Fatalf("TokenizeFile() error = %v", err)
		}
		if got := slices.Collect(seq); !slices.Equal(got, []string{"--generator", "makefile"}) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := TokenizeFile(filepath.Join(t.TempDir(), "absent.txt"))
		if !HasCode(err, ErrCodeFileNotFound) {
			t.Errorf("expected %s, got %v", ErrCodeFileNotFound, err)
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		_, err := TokenizeFile(t.TempDir())
		if !HasCode(err, ErrCodeIOError) {
			t.Errorf("expected %s, got %v", ErrCodeIOError, err)
		}
	})
}
