// Package cli provides the command-line interface of the mason builder.
//
// The build and config commands take raw argv: their options merge with the
// persisted workspace configuration, accept short aliases and stop at the
// "---" escape marker, so they bypass Orpheus routing. Every other command
// is an Orpheus command.
//
// Architecture:
// - Manager: command routing and shared state
// - Handlers: one function per command
// - Utils: output formatting helpers
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/agilira/mason"
	term "github.com/agilira/mason/internal/cli"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// Version is reported by the info command and by Orpheus.
const Version = "1.0.0"

// Manager routes mason commands.
type Manager struct {
	app         *orpheus.App
	settings    mason.Settings
	printer     *term.Printer
	auditLogger *mason.AuditLogger // Optional audit integration
}

// NewManager creates the CLI manager for the workspace described by settings.
func NewManager(settings mason.Settings) *Manager {
	app := orpheus.New("mason").
		SetDescription("Generate and build CMake workspaces with persisted options").
		SetVersion(Version)

	manager := &Manager{
		app:      app,
		settings: settings,
		printer:  term.NewPrinter(),
	}

	manager.setupWorkspaceCommands()
	manager.setupUtilityCommands()

	return manager
}

// WithAudit enables audit logging of config writes and command invocations.
func (m *Manager) WithAudit(auditLogger *mason.AuditLogger) *Manager {
	m.auditLogger = auditLogger
	return m
}

// WithPrinter replaces the terminal printer.
func (m *Manager) WithPrinter(printer *term.Printer) *Manager {
	m.printer = printer
	return m
}

// Run executes the command named by args[0].
func (m *Manager) Run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "build":
			return m.runBuild(args[1:], args)
		case "config":
			return m.runConfig(args[1:], args)
		}
	}
	return m.app.Run(args)
}

// Command Setup Methods

// setupWorkspaceCommands registers build and config with Orpheus so they
// appear in help and completion. Run intercepts them before Orpheus parses.
func (m *Manager) setupWorkspaceCommands() {
	buildCmd := orpheus.NewCommand("build", "Generate/Build with CMake (see 'mason build --help')")
	buildCmd.SetHandler(m.handleWorkspaceCommand)
	m.app.AddCommand(buildCmd)

	configCmd := orpheus.NewCommand("config", "Store options in the workspace config file (see 'mason config --help')")
	configCmd.SetHandler(m.handleWorkspaceCommand)
	m.app.AddCommand(configCmd)

	// show [--format=text]
	showCmd := orpheus.NewCommand("show", "Print the persisted workspace options")
	showCmd.SetHandler(m.handleShow)
	showCmd.AddFlag("format", "f", mason.FormatText, "Output format (text|yaml)")
	m.app.AddCommand(showCmd)
}

// setupUtilityCommands configures diagnostics and maintenance commands.
func (m *Manager) setupUtilityCommands() {
	auditCmd := orpheus.NewCommand("audit", "Audit log management")
	statsCmd := auditCmd.Subcommand("stats", "Show audit trail statistics", m.handleAuditStats)
	statsCmd.AddFlag("format", "f", mason.FormatText, "Output format (text|yaml)")
	m.app.AddCommand(auditCmd)

	infoCmd := orpheus.NewCommand("info", "Workspace and platform information")
	infoCmd.SetHandler(m.handleInfo)
	infoCmd.AddBoolFlag("verbose", "v", false, "Verbose information")
	m.app.AddCommand(infoCmd)

	completionCmd := orpheus.NewCommand("completion", "Generate shell completion scripts")
	completionCmd.SetHandler(m.handleCompletion)
	m.app.AddCommand(completionCmd)
}
