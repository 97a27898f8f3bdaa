// mason: CMake workspace builder with persisted options
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/agilira/mason"
	"github.com/agilira/mason/cmd/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mason: %v\n", err)
		return 1
	}

	settings, err := mason.LoadSettingsFromEnv(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mason: %v\n", err)
		return 1
	}

	manager := cli.NewManager(*settings)

	if settings.Audit.Enabled {
		auditLogger, err := mason.NewAuditLogger(settings.Audit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mason: %v\n", err)
			return 1
		}
		defer func() {
			if err := auditLogger.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "mason: %v\n", err)
			}
		}()
		manager.WithAudit(auditLogger)
	}

	if err := manager.Run(args); err != nil {
		if mason.IsHelpRequested(err) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
