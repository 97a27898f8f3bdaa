// Utility functions for the mason CLI
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/mason"
)

// commandNames lists the top-level commands offered by completion.
var commandNames = []string{"build", "config", "show", "audit", "info", "completion", "help"}

// CommandError reports a failure of the build or config command as
// "<command>: error: <message>".
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Command, errorMessage(e.Err))
}

func (e *CommandError) Unwrap() error { return e.Err }

func commandError(command string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: command, Err: err}
}

// errorMessage returns the error text without its "[CODE]" prefix.
func errorMessage(err error) string {
	msg := err.Error()
	coder, ok := err.(errors.ErrorCoder)
	if !ok {
		return msg
	}
	prefix := "[" + string(coder.ErrorCode()) + "]"
	if rest, found := strings.CutPrefix(msg, prefix); found {
		return strings.TrimLeft(rest, ": ")
	}
	return msg
}

func optionNames() []string {
	names := mason.PersistedRegistry().Names()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = string(name)
	}
	return out
}

func buildArgFields(args mason.BuildArgs) [][2]string {
	return [][2]string{
		{"generator", args.Generator},
		{"app_name", args.AppName},
		{"lib_name", args.LibName},
		{"unit_tests_name", args.UnitTestsName},
		{"config", args.Config},
		{"no_generate", fmt.Sprint(args.NoGenerate)},
		{"no_build", fmt.Sprint(args.NoBuild)},
		{"no_debug", fmt.Sprint(args.NoDebug)},
		{"rebuild", fmt.Sprint(args.Rebuild)},
		{"clean", fmt.Sprint(args.Clean)},
		{"verbose", fmt.Sprint(args.Verbose)},
		{"extra", strings.Join(args.Extra, " ")},
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
