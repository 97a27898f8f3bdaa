// merger.go: Merging command-line tokens with persisted values
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"fmt"

	"github.com/agilira/go-errors"
)

// EscapeMarker stops option processing. It and every token after it are
// forwarded untouched, e.g. as native build tool flags.
const EscapeMarker = "---"

// CommandLine is the command-line split by SplitCommandLine.
type CommandLine struct {
	// PassThrough holds tokens that are not persisted options, in order.
	PassThrough []string
	// Extra holds the escape marker and everything after it.
	Extra []string
	// Values holds the persisted options given on the command line.
	Values Values
}

// SplitCommandLine separates persisted options from the rest of argv.
// A recognized option takes exactly the following token as its value; the
// last occurrence wins.
func SplitCommandLine(argv []string, registry *OptionRegistry) (CommandLine, error) {
	result := CommandLine{
		PassThrough: make([]string, 0, len(argv)),
		Values:      make(Values),
	}

	for i := 0; i < len(argv); i++ {
		token := argv[i]
		if token == EscapeMarker {
			result.Extra = append([]string(nil), argv[i:]...)
			break
		}

		name, known := registry.Lookup(token)
		if !known {
			result.PassThrough = append(result.PassThrough, token)
			continue
		}

		if i+1 >= len(argv) || argv[i+1] == EscapeMarker {
			return CommandLine{}, errors.New(ErrCodeMissingValue,
				fmt.Sprintf("in command line arguments expected one argument after %s", token)).
				WithContext("option", string(name)).
				WithContext("token", token)
		}
		i++
		result.Values[name] = argv[i]
	}

	return result, nil
}

// MergeValues resolves every registered option in declaration order: the
// command-line value wins over the file value; options with neither are left out.
func MergeValues(registry *OptionRegistry, fromCommandLine, fromFile Values) []Pair {
	pairs := make([]Pair, 0, registry.Len())
	for _, name := range registry.order {
		if value, ok := fromCommandLine[name]; ok {
			pairs = append(pairs, Pair{Name: name, Value: value})
			continue
		}
		if value, ok := fromFile[name]; ok {
			pairs = append(pairs, Pair{Name: name, Value: value})
		}
	}
	return pairs
}

// Reassemble builds the token stream handed to the delegate parser:
// pass-through tokens, then the resolved pairs, then the extra tokens.
func Reassemble(passThrough []string, pairs []Pair, extra []string) []string {
	tokens := make([]string, 0, len(passThrough)+2*len(pairs)+len(extra))
	tokens = append(tokens, passThrough...)
	for _, pair := range pairs {
		tokens = append(tokens, string(pair.Name), pair.Value)
	}
	return append(tokens, extra...)
}
