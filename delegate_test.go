// delegate_test.go: Tests for the FlashFlags delegate grammar
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"slices"
	"strings"
	"testing"
)

func newTestGrammar() *FlagGrammar {
	return NewFlagGrammar("build", "test grammar").
		SetOutput(io.Discard).
		StringOption("--generator", "-g", "", "generator", "msvc14", "msvc15", "makefile").
		StringOption("--app_name", "-a", "", "application name").
		StringOption("--config", "-c", "release", "configuration", "debug", "release").
		BoolOption("--verbose", "-v", "verbose output").
		BoolOption("--clear", "", "clear")
}

func TestFlagGrammarParse(t *testing.T) {
	g := newTestGrammar()

	args, err := g.Parse([]string{"-v", "-c", "debug", "--generator", "makefile", "--app_name", "demo"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := args.String("--generator"); got != "makefile" {
		t.Errorf("--generator = %q", got)
	}
	if got := args.String("--app_name"); got != "demo" {
		t.Errorf("--app_name = %q", got)
	}
	if got := args.String("--config"); got != "debug" {
		t.Errorf("--config = %q", got)
	}
	if !args.Bool("--verbose") {
		t.Error("--verbose should be set")
	}
	if args.Bool("--clear") {
		t.Error("--clear should not be set")
	}
	if !args.Changed("--config") || args.Changed("--clear") {
		t.Error("Changed() does not reflect the token stream")
	}
	if len(args.Extra) != 0 {
		t.Errorf("Extra = %q", args.Extra)
	}
}

func TestFlagGrammarDefaults(t *testing.T) {
	args, err := newTestGrammar().Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := args.String("--config"); got != "release" {
		t.Errorf("--config default = %q, want release", got)
	}
	if got := args.String("--generator"); got != "" {
		t.Errorf("--generator default = %q, want empty", got)
	}
	if args.Bool("--verbose") {
		t.Error("--verbose default should be false")
	}
}

func TestFlagGrammarEscapeMarker(t *testing.T) {
	args, err := newTestGrammar().Parse([]string{"-v", "---", "--help", "unknown", "-c"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []string{"---", "--help", "unknown", "-c"}
	if !slices.Equal(args.Extra, want) {
		t.Errorf("Extra = %q, want %q", args.Extra, want)
	}
}

func TestFlagGrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		code    string
		message string
	}{
		{"unknown flag", []string{"--nope"}, ErrCodeInvalidArguments, "unrecognized arguments: --nope"},
		{"positional token", []string{"stray", "-v"}, ErrCodeInvalidArguments, "unrecognized arguments: stray"},
		{"missing value", []string{"-c"}, ErrCodeInvalidArguments, "argument --config/-c: expected one argument"},
		{"invalid choice", []string{"-g", "ninja"}, ErrCodeInvalidChoice,
			"argument --generator/-g: invalid choice: 'ninja' (choose from 'msvc14', 'msvc15', 'makefile')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGrammar().Parse(tt.tokens)
			if !HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestFlagGrammarHelp(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGrammar().SetOutput(&buf)

	// FlashFlags prints its part of the help on stdout
	stdout := os.Stdout
	devNull, err := os.Open(os.DevNull)
	if err == nil {
		os.Stdout = devNull
		defer func() {
			os.Stdout = stdout
			_ = devNull.Close()
		}()
	}

	_, err = g.Parse([]string{"-v", "--help"})
	if !IsHelpRequested(err) {
		t.Fatalf("expected help sentinel, got %v", err)
	}
	if !strings.Contains(buf.String(), "-g") || !strings.Contains(buf.String(), "--generator") {
		t.Errorf("alias table missing from help: %q", buf.String())
	}
}

func TestFlagGrammarOptions(t *testing.T) {
	want := []string{"--generator", "--app_name", "--config", "--verbose", "--clear"}
	if got := newTestGrammar().Options(); !slices.Equal(got, want) {
		t.Errorf("Options() = %q, want %q", got, want)
	}
}

func TestFlagGrammarDuplicateDeclaration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected duplicate declaration to panic")
		}
	}()
	newTestGrammar().BoolOption("--verbose", "", "again")
}

func TestFlagKey(t *testing.T) {
	tests := map[string]string{
		"--app_name": "app_name",
		"-v":         "v",
		"--config":   "config",
	}
	for in, want := range tests {
		if got := flagKey(in); got != want {
			t.Errorf("flagKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFlagGrammarKeepsValuesVerbatim(t *testing.T) {
	values := []string{
		"../out",
		"app%s",
		"$(x)",
		"com+1",
		"LPT1",
		"a/etc/b",
		"key=value",
		"-dash",
		"--double",
		"%PATH%",
		strings.Repeat("x", 150),
	}

	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			args, err := newTestGrammar().Parse([]string{"--app_name", value, "-v"})
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := args.String("--app_name"); got != value {
				t.Errorf("--app_name = %q, want %q", got, value)
			}
			if !args.Bool("--verbose") {
				t.Error("switch after the value was lost")
			}
		})
	}
}

func TestFlagGrammarLastValueWins(t *testing.T) {
	args, err := newTestGrammar().Parse([]string{"-a", "first", "--app_name", "second"})
	if err != nil {
		t.Fatal(err)
	}
	if got := args.String("--app_name"); got != "second" {
		t.Errorf("--app_name = %q, want second", got)
	}
}

func TestFlagGrammarHelpTokenAsValue(t *testing.T) {
	for _, value := range []string{"-h", "--help"} {
		args, err := newTestGrammar().Parse([]string{"--app_name", value})
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", value, err)
		}
		if got := args.String("--app_name"); got != value {
			t.Errorf("--app_name = %q, want %q", got, value)
		}
	}
}

func TestFlagGrammarReparseResetsSwitches(t *testing.T) {
	g := newTestGrammar()
	if _, err := g.Parse([]string{"-v"}); err != nil {
		t.Fatal(err)
	}
	args, err := g.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if args.Bool("--verbose") {
		t.Error("--verbose leaked from the previous parse")
	}
}

func TestFlagParseErrorKeepsReason(t *testing.T) {
	cause := stderrors.New("flag --verbose requires a value")
	err := flagParseError("build", cause)

	if !HasCode(err, ErrCodeInvalidArguments) {
		t.Errorf("expected %s, got %v", ErrCodeInvalidArguments, err)
	}
	if !strings.Contains(err.Error(), "flag --verbose requires a value") {
		t.Errorf("reason missing from %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause must stay in the chain")
	}
}
