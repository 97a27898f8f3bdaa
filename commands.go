// commands.go: Option sets of the build and config commands
//
// Both commands share the persisted options; each one adds the switches
// that only make sense for a single invocation.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"fmt"

	"github.com/agilira/go-errors"
)

// Persisted options, stored in the workspace config file.
const (
	OptGenerator     OptionName = "--generator"
	OptAppName       OptionName = "--app_name"
	OptLibName       OptionName = "--lib_name"
	OptUnitTestsName OptionName = "--unit_tests_name"
)

// Per-invocation options.
const (
	OptConfig     = "--config"
	OptNoGenerate = "--no_generate"
	OptNoBuild    = "--no_build"
	OptNoDebug    = "--no_debug"
	OptRebuild    = "--rebuild"
	OptClean      = "--clean"
	OptVerbose    = "--verbose"
	OptClear      = "--clear"
)

// Generator short names accepted by --generator.
const (
	GeneratorMSVC14   = "msvc14"
	GeneratorMSVC15   = "msvc15"
	GeneratorMakefile = "makefile"
)

// Build configurations accepted by --config.
const (
	BuildConfigDebug   = "debug"
	BuildConfigRelease = "release"
)

// Names used when the persisted options are not set.
const (
	DefaultAppName       = "my_app"
	DefaultLibName       = "my_lib"
	DefaultUnitTestsName = "my_tests"
)

type persistedOption struct {
	name    OptionName
	alias   OptionAlias
	usage   string
	choices []string
}

var persistedOptions = []persistedOption{
	{OptGenerator, "-g", "CMake generator shortname among (msvc14 msvc15 makefile)",
		[]string{GeneratorMSVC14, GeneratorMSVC15, GeneratorMakefile}},
	{OptAppName, "-a", `The desired name of the application executable. default is "my_app"`, nil},
	{OptLibName, "-l", `The desired name of the library. default is "my_lib"`, nil},
	{OptUnitTestsName, "-u", `The desired name of the unit-tests executable. default is "my_tests"`, nil},
}

// BuildArgs is the resolved argument set of the build command.
type BuildArgs struct {
	Generator     string
	AppName       string
	LibName       string
	UnitTestsName string
	Config        string
	NoGenerate    bool
	NoBuild       bool
	NoDebug       bool
	Rebuild       bool
	Clean         bool
	Verbose       bool
	// Extra holds the escape marker and the tokens following it.
	Extra []string
}

// NativeArgs returns the tokens after the escape marker.
func (a BuildArgs) NativeArgs() []string {
	if len(a.Extra) <= 1 {
		return nil
	}
	return a.Extra[1:]
}

// ConfigArgs is the resolved argument set of the config command.
type ConfigArgs struct {
	Generator     string
	AppName       string
	LibName       string
	UnitTestsName string
	Clear         bool
	Verbose       bool
	Extra         []string
}

// Command couples the merging parser with the grammar of one subcommand.
type Command struct {
	name    string
	parser  *Parser
	grammar *FlagGrammar
}

func newCommand(name, description string, settings Settings) (*Command, error) {
	grammar := NewFlagGrammar(name, description)
	parser, err := NewParser(settings, grammar)
	if err != nil {
		return nil, err
	}

	for _, opt := range persistedOptions {
		parser.AddConfigOption(opt.name, opt.alias)
		grammar.StringOption(string(opt.name), string(opt.alias), "", opt.usage, opt.choices...)
	}

	return &Command{name: name, parser: parser, grammar: grammar}, nil
}

// Name returns the subcommand name.
func (c *Command) Name() string { return c.name }

// Parser returns the merging parser of the command.
func (c *Command) Parser() *Parser { return c.parser }

// Grammar returns the delegate grammar of the command.
func (c *Command) Grammar() *FlagGrammar { return c.grammar }

// BuildCommand generates and builds the workspace.
type BuildCommand struct {
	*Command
}

// NewBuildCommand declares the persisted options and the build switches.
func NewBuildCommand(settings Settings) (*BuildCommand, error) {
	cmd, err := newCommand("build", "run cmake to generate and build solution", settings)
	if err != nil {
		return nil, err
	}

	cmd.grammar.
		StringOption(OptConfig, "-c", BuildConfigRelease,
			"build configuration in debug or release (default is release)",
			BuildConfigDebug, BuildConfigRelease).
		BoolOption(OptNoGenerate, "-ng", "Prevent from generating the project files.").
		BoolOption(OptNoBuild, "-nb", "Prevent from building the project files.").
		BoolOption(OptNoDebug, "-nz", "Prevent debug information").
		BoolOption(OptRebuild, "-r", "Clean all output targets before build").
		BoolOption(OptClean, "-x", "Clean the build directory before running any build command").
		BoolOption(OptVerbose, "-v", "run the command in verbose")

	return &BuildCommand{Command: cmd}, nil
}

// Parse resolves argv into BuildArgs, applying the default names and
// letting --rebuild override --no_build.
func (c *BuildCommand) Parse(argv []string) (BuildArgs, error) {
	args, err := c.parser.ParseArgs(argv)
	if err != nil {
		return BuildArgs{}, err
	}

	build := BuildArgs{
		Generator:     args.String(string(OptGenerator)),
		AppName:       withDefault(args.String(string(OptAppName)), DefaultAppName),
		LibName:       withDefault(args.String(string(OptLibName)), DefaultLibName),
		UnitTestsName: withDefault(args.String(string(OptUnitTestsName)), DefaultUnitTestsName),
		Config:        withDefault(args.String(OptConfig), BuildConfigRelease),
		NoGenerate:    args.Bool(OptNoGenerate),
		NoBuild:       args.Bool(OptNoBuild),
		NoDebug:       args.Bool(OptNoDebug),
		Rebuild:       args.Bool(OptRebuild),
		Clean:         args.Bool(OptClean),
		Verbose:       args.Bool(OptVerbose),
		Extra:         args.Extra,
	}
	if build.Rebuild {
		build.NoBuild = false
	}
	return build, nil
}

// ConfigCommand writes the persisted options given on the command line.
type ConfigCommand struct {
	*Command
}

// NewConfigCommand declares the persisted options and the config switches.
func NewConfigCommand(settings Settings) (*ConfigCommand, error) {
	cmd, err := newCommand("config",
		"Create "+settings.WithDefaults().ConfigFileName+" to store options read by subsequent builder calls", settings)
	if err != nil {
		return nil, err
	}

	cmd.grammar.
		BoolOption(OptClear, "", "Clear the existing file and keep only the provided options instead of updating it").
		BoolOption(OptVerbose, "-v", "run the command in verbose")

	return &ConfigCommand{Command: cmd}, nil
}

// Parse resolves argv into ConfigArgs.
func (c *ConfigCommand) Parse(argv []string) (ConfigArgs, error) {
	args, err := c.parser.ParseArgs(argv)
	if err != nil {
		return ConfigArgs{}, err
	}

	return ConfigArgs{
		Generator:     args.String(string(OptGenerator)),
		AppName:       args.String(string(OptAppName)),
		LibName:       args.String(string(OptLibName)),
		UnitTestsName: args.String(string(OptUnitTestsName)),
		Clear:         args.Bool(OptClear),
		Verbose:       args.Bool(OptVerbose),
		Extra:         args.Extra,
	}, nil
}

// Write persists the command-line values of the last Parse. Without
// --clear at least one persisted option must have been given.
func (c *ConfigCommand) Write(args ConfigArgs) error {
	if !args.Clear && len(c.parser.FromCommandLine) == 0 {
		return errors.New(ErrCodeNothingToWrite,
			"no argument provided to the config command. In order to clear the config file, you can use the --clear option")
	}
	if err := c.parser.WriteConfigFile(args.Clear); err != nil {
		return err
	}
	return nil
}

// WrittenMessage is the confirmation printed after a successful Write.
func (c *ConfigCommand) WrittenMessage() string {
	return fmt.Sprintf("builder config written to: %s", c.parser.ConfigPath())
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
