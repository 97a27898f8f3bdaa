// Terminal output helpers shared by the mason commands
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Prefix starts every line printed by the builder.
const Prefix = "[builder]"

// Printer writes prefixed builder messages. Errors go to Err, everything
// else to Out.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter returns a Printer bound to stdout and stderr.
func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

// Print writes an informational line.
func (p *Printer) Print(format string, args ...interface{}) {
	p.line(p.Out, Prefix, format, args...)
}

// Warning writes a "[warning]" line.
func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(p.Out, Prefix+" [warning]", format, args...)
}

// Error writes an "[ERROR]" line to Err.
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.Err, Prefix+" [ERROR]", format, args...)
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	_, _ = fmt.Fprintln(p.Out)
}

// Separator writes a horizontal rule.
func (p *Printer) Separator() {
	p.Print("--------------------")
}

// Command echoes an invocation of the builder from workspaceRoot.
func (p *Printer) Command(workspaceRoot string, argv []string) {
	p.Print("######## builder")
	cmd := append([]string{workspaceRoot + "/builder"}, argv...)
	p.Print("=> %s", JoinQuoted(cmd))
}

func (p *Printer) line(w io.Writer, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		_, _ = fmt.Fprintln(w, prefix)
		return
	}
	_, _ = fmt.Fprintln(w, prefix, msg)
}

var needsQuoting = regexp.MustCompile(`\s|\$|%`)

// JoinQuoted joins a command line, quoting tokens that contain whitespace,
// '$' or '%'.
func JoinQuoted(cmd []string) string {
	quoted := make([]string, len(cmd))
	for i, arg := range cmd {
		if needsQuoting.MatchString(arg) {
			quoted[i] = `"` + arg + `"`
			continue
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
