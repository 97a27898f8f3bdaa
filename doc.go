// Package mason is the configuration-merging argument parser behind the
// mason CMake builder.
//
// A workspace keeps its build defaults in a plain text file,
// builder-config.txt, holding one "name value" pair per line. Every
// invocation merges that file with the command line and the built-in
// defaults into one resolved, validated argument set.
//
// # Architecture Overview
//
// mason is made of five parts:
//  1. Tokenizer: splits the config file into tokens, dropping comments
//  2. Option registry and store: persisted option names, aliases and loading
//  3. Argument merger: splits argv, merges it over the file values
//  4. Config writer: atomic rewrite of the persisted file
//  5. Delegate parser: final validation on top of FlashFlags
//
// # Precedence
//
// For every persisted option the command-line value wins over the file
// value, which wins over the delegate's default:
//
//	settings := mason.Settings{WorkspaceRoot: "/work/project"}
//	cmd, err := mason.NewBuildCommand(settings)
//	if err != nil {
//		log.Fatal(err)
//	}
//	args, err := cmd.Parse([]string{"-g", "makefile", "-c", "debug"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(args.Generator, args.AppName) // makefile my_app
//
// Inside the file a repeated option keeps its first value and the
// WarningHandler is told about the second one. On the command line the
// last occurrence wins.
//
// # Escape Marker
//
// The token "---" stops option processing. It and everything after it
// reach the delegate untouched and come back in Arguments.Extra; the build
// command forwards them to the native build tool:
//
//	mason build -v --- -k
//
// # Persisting Options
//
// The config command stores the persisted options given on its command line.
// Options already in the file survive unless --clear is given:
//
//	cmd, _ := mason.NewConfigCommand(settings)
//	args, err := cmd.Parse([]string{"--generator", "msvc15"})
//	if err == nil {
//		err = cmd.Write(args)
//	}
//
// The file is written to a temporary file and renamed over the old one.
//
// # Comments
//
// A '#' starts a comment that runs to the end of the line. Quotes are not
// honoured, so a value cannot contain '#'.
//
// # Audit Trail
//
// When enabled, each write of the config file is recorded with the values
// before and after it. Events go to SQLite by default or to a JSON lines
// file when the output ends in ".jsonl":
//
//	auditLogger, err := mason.NewAuditLogger(mason.DefaultAuditConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer auditLogger.Close()
//	parser.WithAudit(auditLogger)
//
// # Environment
//
// LoadSettingsFromEnv reads MASON_CONFIG_FILE, MASON_PLATFORM and the
// MASON_AUDIT_* variables on top of the defaults.
//
// # Error Handling
//
// Errors are github.com/agilira/go-errors values carrying one of the
// ErrCode constants; HasCode checks them through the wrap chain.
package mason
