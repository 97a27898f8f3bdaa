// Command handlers for the mason CLI
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/mason"
	term "github.com/agilira/mason/internal/cli"
	"github.com/agilira/orpheus/pkg/orpheus"
	"go.yaml.in/yaml/v3"
)

// runBuild resolves the build arguments and prints the build plan.
func (m *Manager) runBuild(commandArgv, argv []string) error {
	m.auditLogger.LogCommand("build", argv)

	cmd, err := mason.NewBuildCommand(m.settings)
	if err != nil {
		return commandError("build", err)
	}
	cmd.Parser().WithAudit(m.auditLogger)

	args, err := cmd.Parse(commandArgv)
	if err != nil {
		return commandError("build", err)
	}

	settings := cmd.Parser().Settings()
	if args.Verbose {
		m.printer.Command(settings.WorkspaceRoot, argv)
		m.printBuildArgs(args)
	}

	plan, err := mason.NewBuildPlan(settings, args)
	if err != nil {
		return commandError("build", err)
	}

	m.printPlan(plan)
	return nil
}

// runConfig writes the persisted options given on the command line.
func (m *Manager) runConfig(commandArgv, argv []string) error {
	m.auditLogger.LogCommand("config", argv)

	cmd, err := mason.NewConfigCommand(m.settings)
	if err != nil {
		return commandError("config", err)
	}
	cmd.Parser().WithAudit(m.auditLogger)

	args, err := cmd.Parse(commandArgv)
	if err != nil {
		return commandError("config", err)
	}

	if args.Verbose {
		m.printer.Command(cmd.Parser().Settings().WorkspaceRoot, argv)
	}

	if err := cmd.Write(args); err != nil {
		return commandError("config", err)
	}

	m.printer.Print("%s", cmd.WrittenMessage())
	return nil
}

// handleWorkspaceCommand is only reached when Orpheus routes build or
// config, which Run never lets it do.
func (m *Manager) handleWorkspaceCommand(ctx *orpheus.Context) error {
	return errors.New(mason.ErrCodeInvalidArguments, "build and config must be run through Manager.Run")
}

// handleShow prints the persisted options in declaration order.
func (m *Manager) handleShow(ctx *orpheus.Context) error {
	format := ctx.GetFlagString("format")

	data, status, err := mason.ShowConfig(m.settings, format)
	if err != nil {
		return err
	}

	if status == mason.NoPersistedConfig {
		m.printer.Warning("no config file found in %s", m.settings.WorkspaceRoot)
		return nil
	}

	_, _ = m.printer.Out.Write(data)
	return nil
}

// handleAuditStats prints the statistics of the audit trail.
func (m *Manager) handleAuditStats(ctx *orpheus.Context) error {
	if m.auditLogger == nil {
		return errors.New(mason.ErrCodeInvalidAuditConfig, "audit logging not enabled")
	}

	stats, err := m.auditLogger.Stats()
	if err != nil {
		return errors.Wrap(err, mason.ErrCodeAuditBackendError, "failed to read audit statistics")
	}

	switch strings.ToLower(ctx.GetFlagString("format")) {
	case mason.FormatYAML:
		data, err := yaml.Marshal(stats)
		if err != nil {
			return errors.Wrap(err, mason.ErrCodeSerializationError, "failed to encode audit statistics")
		}
		_, _ = m.printer.Out.Write(data)
	case "", mason.FormatText:
		m.printAuditStats(stats)
	default:
		return errors.New(mason.ErrCodeUnsupportedShowFormat, "unsupported format: "+ctx.GetFlagString("format"))
	}
	return nil
}

// handleInfo displays workspace and platform information.
func (m *Manager) handleInfo(ctx *orpheus.Context) error {
	settings := m.settings.WithDefaults()

	fmt.Fprintf(m.printer.Out, "mason build orchestrator\n")
	fmt.Fprintf(m.printer.Out, "Version: %s\n", Version)
	fmt.Fprintf(m.printer.Out, "Workspace: %s\n", settings.WorkspaceRoot)
	fmt.Fprintf(m.printer.Out, "Config file: %s\n", settings.ConfigPath())
	fmt.Fprintf(m.printer.Out, "Platform: %s (64-bit: %v)\n", settings.Platform, settings.Arch64)

	if ctx.GetFlagBool("verbose") {
		fmt.Fprintf(m.printer.Out, "\nDetails:\n")
		fmt.Fprintf(m.printer.Out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(m.printer.Out, "CPUs: %d\n", runtime.NumCPU())
		fmt.Fprintf(m.printer.Out, "Persisted options: %s\n", strings.Join(optionNames(), " "))
		fmt.Fprintf(m.printer.Out, "Audit logging: %v\n", m.auditLogger != nil)
	}

	return nil
}

// handleCompletion generates shell completion scripts.
func (m *Manager) handleCompletion(ctx *orpheus.Context) error {
	shell := ctx.GetArg(0)
	commands := strings.Join(commandNames, " ")
	out := m.printer.Out

	switch shell {
	case "bash":
		fmt.Fprintf(out, "# Bash completion for mason\n")
		fmt.Fprintf(out, "# Add to ~/.bashrc: source <(mason completion bash)\n")
		fmt.Fprintf(out, "_mason_completion() {\n")
		fmt.Fprintf(out, "  COMPREPLY=($(compgen -W '%s' -- \"${COMP_WORDS[COMP_CWORD]}\"))\n", commands)
		fmt.Fprintf(out, "}\n")
		fmt.Fprintf(out, "complete -F _mason_completion mason\n")
	case "zsh":
		fmt.Fprintf(out, "#compdef mason\n")
		fmt.Fprintf(out, "# Add to ~/.zshrc: source <(mason completion zsh)\n")
		fmt.Fprintf(out, "_mason() {\n")
		fmt.Fprintf(out, "  _arguments '1: :(%s)'\n", commands)
		fmt.Fprintf(out, "}\n")
	case "fish":
		fmt.Fprintf(out, "# Fish completion for mason\n")
		fmt.Fprintf(out, "complete -c mason -f -a '%s'\n", commands)
	default:
		return errors.New(mason.ErrCodeInvalidArguments, fmt.Sprintf("unsupported shell: %s", shell))
	}

	return nil
}

func (m *Manager) printPlan(plan *mason.BuildPlan) {
	m.printer.Print("generator: %s (%s)", plan.Generator, plan.CMakeGenerator)
	m.printer.Print("build directory: %s", plan.BuildDir)

	for _, step := range plan.Steps() {
		m.printer.Blank()
		switch step.Kind {
		case mason.StepClean:
			m.printer.Print("Cleaning directory : %s", step.Dir)
		case mason.StepGenerate:
			m.printer.Print("Initial cache : %s", plan.CachePath)
			for _, line := range strings.Split(strings.TrimRight(plan.CacheScript(), "\n"), "\n") {
				m.printer.Print("    %s", line)
			}
			m.printer.Print("Running command : %s", term.JoinQuoted(step.Command))
		case mason.StepBuild:
			m.printer.Print("Running command : %s", term.JoinQuoted(step.Command))
		}
	}
	m.printer.Blank()
}

func (m *Manager) printBuildArgs(args mason.BuildArgs) {
	m.printer.Separator()
	for _, field := range buildArgFields(args) {
		m.printer.Print("%-16s %s", field[0], field[1])
	}
	m.printer.Separator()
}

func (m *Manager) printAuditStats(stats *mason.AuditDatabaseStats) {
	fmt.Fprintf(m.printer.Out, "Audit trail: %s\n", stats.Path)
	fmt.Fprintf(m.printer.Out, "Total events: %d\n", stats.TotalEvents)
	for _, name := range sortedKeys(stats.EventsByName) {
		fmt.Fprintf(m.printer.Out, "  %-20s %d\n", name, stats.EventsByName[name])
	}
	for _, level := range sortedKeys(stats.EventsByLevel) {
		fmt.Fprintf(m.printer.Out, "  %-20s %d\n", level, stats.EventsByLevel[level])
	}
	if stats.OldestEvent != nil && stats.NewestEvent != nil {
		fmt.Fprintf(m.printer.Out, "Range: %s - %s\n",
			stats.OldestEvent.Format("2006-01-02 15:04:05"), stats.NewestEvent.Format("2006-01-02 15:04:05"))
	}
}
