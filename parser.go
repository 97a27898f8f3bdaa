// parser.go: Configuration-merging argument parser
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"github.com/agilira/go-errors"
)

// Parser reconciles the persisted configuration file, the command line and
// the delegate's defaults into one validated argument set.
type Parser struct {
	settings Settings
	registry *OptionRegistry
	delegate Delegate
	audit    *AuditLogger

	// FromFile holds the values loaded from the persisted configuration.
	FromFile Values
	// FromCommandLine holds the persisted options given on this command line.
	FromCommandLine Values
	// Status tells whether a configuration file was found.
	Status LoadStatus
}

// NewParser creates a parser for one command invocation.
func NewParser(settings Settings, delegate Delegate) (*Parser, error) {
	if delegate == nil {
		return nil, errors.New(ErrCodeInvalidArguments, "delegate parser cannot be nil")
	}
	s := settings.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Parser{
		settings:        *s,
		registry:        NewOptionRegistry(),
		delegate:        delegate,
		FromFile:        make(Values),
		FromCommandLine: make(Values),
	}, nil
}

// WithAudit enables audit logging of config writes.
func (p *Parser) WithAudit(auditLogger *AuditLogger) *Parser {
	p.audit = auditLogger
	return p
}

// AddConfigOption registers a persisted option. It must be called before ParseArgs.
func (p *Parser) AddConfigOption(name OptionName, alias OptionAlias) {
	p.registry.Register(name, alias)
}

// Registry returns the persisted option registry.
func (p *Parser) Registry() *OptionRegistry { return p.registry }

// Settings returns the settings the parser was built with, defaults applied.
func (p *Parser) Settings() Settings { return p.settings }

// ConfigPath returns the persisted configuration file path.
func (p *Parser) ConfigPath() string { return p.settings.ConfigPath() }

// LoadConfig reads the persisted configuration into FromFile.
func (p *Parser) LoadConfig() error {
	result, err := LoadConfigFile(p.ConfigPath(), p.registry, p.settings.WarningHandler)
	if err != nil {
		return err
	}
	p.FromFile = result.Values
	p.Status = result.Status
	return nil
}

// ParseArgs loads the persisted configuration, merges it with argv and
// hands the reassembled stream to the delegate. Command-line values win
// over file values. Every failure happens before anything is written.
func (p *Parser) ParseArgs(argv []string) (Arguments, error) {
	if err := p.LoadConfig(); err != nil {
		return Arguments{}, err
	}

	cmdLine, err := SplitCommandLine(argv, p.registry)
	if err != nil {
		return Arguments{}, err
	}
	p.FromCommandLine = cmdLine.Values

	tokens := Reassemble(cmdLine.PassThrough, p.Merged(), cmdLine.Extra)
	return p.delegate.Parse(tokens)
}

// Merged returns the resolved persisted options in declaration order.
func (p *Parser) Merged() []Pair {
	return MergeValues(p.registry, p.FromCommandLine, p.FromFile)
}

// WriteConfigFile persists the command-line values. Unless clearExisting
// is set, options only present in the file are kept.
func (p *Parser) WriteConfigFile(clearExisting bool) error {
	writer, err := NewConfigWriter(p.ConfigPath(), p.registry, p.audit)
	if err != nil {
		return err
	}
	return writer.Write(p.FromCommandLine, p.FromFile, clearExisting)
}
