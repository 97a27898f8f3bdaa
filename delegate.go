// delegate.go: Delegate parser built on FlashFlags
//
// The delegate receives the reassembled token stream and performs the final
// type and choice validation. Persisted options reach it in long form;
// pass-through tokens may still use aliases, which are resolved here. String
// values are recorded verbatim and only switches go through FlashFlags, whose
// value screening would reject paths and format characters.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	flashflags "github.com/agilira/flash-flags"
	"github.com/agilira/go-errors"
)

// Delegate validates a flat token stream and returns the parsed arguments.
type Delegate interface {
	Parse(tokens []string) (Arguments, error)
}

// Arguments is the validated result of a Delegate.
type Arguments struct {
	strings map[string]string
	bools   map[string]bool
	changed map[string]bool

	// Extra holds the escape marker and every token after it.
	Extra []string
}

// String returns the value of a string option, or its default.
func (a Arguments) String(name string) string { return a.strings[name] }

// Bool returns the value of a boolean option.
func (a Arguments) Bool(name string) bool { return a.bools[name] }

// Changed reports whether the option appeared in the token stream.
func (a Arguments) Changed(name string) bool { return a.changed[name] }

type grammarOption struct {
	name         string
	alias        string
	usage        string
	defaultValue string
	isBool       bool
	choices      []string
}

// FlagGrammar is a Delegate backed by a FlashFlags FlagSet.
type FlagGrammar struct {
	name    string
	flags   *flashflags.FlagSet
	options []*grammarOption
	byName  map[string]*grammarOption
	aliases map[string]string
	output  io.Writer
}

// NewFlagGrammar creates an empty grammar for command name.
func NewFlagGrammar(name, description string) *FlagGrammar {
	flags := flashflags.New(name)
	flags.SetDescription(description)

	return &FlagGrammar{
		name:    name,
		flags:   flags,
		byName:  make(map[string]*grammarOption),
		aliases: make(map[string]string),
		output:  os.Stdout,
	}
}

// SetOutput sets where help output is written.
func (g *FlagGrammar) SetOutput(w io.Writer) *FlagGrammar {
	g.output = w
	return g
}

// StringOption declares an option taking one value. When choices are given
// the value must be one of them.
func (g *FlagGrammar) StringOption(name, alias, defaultValue, usage string, choices ...string) *FlagGrammar {
	opt := &grammarOption{
		name:         name,
		alias:        alias,
		usage:        usage,
		defaultValue: defaultValue,
		choices:      choices,
	}
	g.add(opt)
	g.flags.String(flagKey(name), defaultValue, usage)
	return g
}

// BoolOption declares a switch that takes no value.
func (g *FlagGrammar) BoolOption(name, alias, usage string) *FlagGrammar {
	opt := &grammarOption{
		name:   name,
		alias:  alias,
		usage:  usage,
		isBool: true,
	}
	g.add(opt)
	g.flags.Bool(flagKey(name), false, usage)
	return g
}

func (g *FlagGrammar) add(opt *grammarOption) {
	if _, exists := g.byName[opt.name]; exists {
		panic(fmt.Sprintf("mason: %s: option %s declared twice", g.name, opt.name))
	}
	g.byName[opt.name] = opt
	if opt.alias != "" {
		g.aliases[opt.alias] = opt.name
	}
	g.options = append(g.options, opt)
}

// Parse validates tokens. Tokens from the escape marker onward are not
// interpreted and are returned in Arguments.Extra. String values are taken
// verbatim; only switches are handed to FlashFlags.
func (g *FlagGrammar) Parse(tokens []string) (Arguments, error) {
	head, extra := tokens, []string(nil)
	if i := slices.Index(tokens, EscapeMarker); i >= 0 {
		head, extra = tokens[:i], slices.Clone(tokens[i:])
	}

	parsed, err := g.normalize(head)
	if err != nil {
		return Arguments{}, err
	}
	if parsed.help {
		g.PrintHelp()
		return Arguments{}, errors.New(ErrCodeHelpRequested, "help requested")
	}

	g.flags.Reset()
	if err := g.flags.Parse(parsed.switches); err != nil {
		return Arguments{}, flagParseError(g.name, err)
	}

	args := Arguments{
		strings: make(map[string]string),
		bools:   make(map[string]bool),
		changed: parsed.changed,
		Extra:   extra,
	}
	for _, opt := range g.options {
		if opt.isBool {
			args.bools[opt.name] = g.flags.GetBool(flagKey(opt.name))
			continue
		}
		value, ok := parsed.values[opt.name]
		if !ok {
			value = opt.defaultValue
		}
		args.strings[opt.name] = value
	}
	return args, nil
}

// normalizedTokens is the outcome of resolving a token stream against the grammar.
type normalizedTokens struct {
	switches []string
	values   map[string]string
	changed  map[string]bool
	help     bool
}

// normalize resolves aliases, collects string values and rejects tokens the
// grammar does not know, missing values and values outside the declared
// choices. A help token counts only where it is not consumed as a value.
func (g *FlagGrammar) normalize(tokens []string) (normalizedTokens, error) {
	parsed := normalizedTokens{
		values:  make(map[string]string),
		changed: make(map[string]bool),
	}
	var unrecognized []string

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == "--help" || token == "-h" {
			parsed.help = true
			return parsed, nil
		}

		name := token
		if long, ok := g.aliases[token]; ok {
			name = long
		}

		opt, ok := g.byName[name]
		if !ok {
			unrecognized = append(unrecognized, token)
			continue
		}
		parsed.changed[opt.name] = true

		if opt.isBool {
			parsed.switches = append(parsed.switches, "--"+flagKey(opt.name))
			continue
		}

		if i+1 >= len(tokens) {
			return parsed, errors.New(ErrCodeInvalidArguments,
				fmt.Sprintf("argument %s: expected one argument", optionLabel(opt))).
				WithContext("command", g.name)
		}
		i++
		value := tokens[i]
		if len(opt.choices) > 0 && !slices.Contains(opt.choices, value) {
			return parsed, errors.New(ErrCodeInvalidChoice,
				fmt.Sprintf("argument %s: invalid choice: '%s' (choose from %s)",
					optionLabel(opt), value, quoteAll(opt.choices))).
				WithContext("command", g.name).
				WithContext("option", opt.name)
		}
		parsed.values[opt.name] = value
	}

	if len(unrecognized) > 0 {
		return parsed, errors.New(ErrCodeInvalidArguments,
			"unrecognized arguments: "+strings.Join(unrecognized, " ")).
			WithContext("command", g.name)
	}
	return parsed, nil
}

// flagParseError keeps the FlashFlags reason in the message.
func flagParseError(command string, err error) error {
	return errors.Wrap(err, ErrCodeInvalidArguments, "failed to parse command-line flags: "+err.Error()).
		WithContext("command", command)
}

// PrintHelp prints the FlashFlags help followed by the alias table.
func (g *FlagGrammar) PrintHelp() {
	g.flags.PrintHelp()

	if len(g.aliases) == 0 {
		return
	}
	_, _ = fmt.Fprintln(g.output, "\nAliases:")
	for _, opt := range g.options {
		if opt.alias == "" {
			continue
		}
		_, _ = fmt.Fprintf(g.output, "  %-6s %s\n", opt.alias, opt.name)
	}
}

// Options returns the declared long option names in declaration order.
func (g *FlagGrammar) Options() []string {
	names := make([]string, 0, len(g.options))
	for _, opt := range g.options {
		names = append(names, opt.name)
	}
	return names
}

// flagKey converts "--app_name" to the FlashFlags key "app_name".
func flagKey(name string) string {
	return strings.TrimLeft(name, "-")
}

func optionLabel(opt *grammarOption) string {
	if opt.alias == "" {
		return opt.name
	}
	return opt.name + "/" + opt.alias
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
