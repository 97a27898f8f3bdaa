// errors.go: Error codes for mason operations
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"github.com/agilira/go-errors"
)

// Error codes for mason operations
const (
	ErrCodeFileNotFound          = "MASON_FILE_NOT_FOUND"
	ErrCodeIOError               = "MASON_IO_ERROR"
	ErrCodeMalformedConfig       = "MASON_MALFORMED_CONFIG"
	ErrCodeMissingValue          = "MASON_MISSING_VALUE"
	ErrCodeDuplicateOption       = "MASON_DUPLICATE_OPTION"
	ErrCodeInvalidArguments      = "MASON_INVALID_ARGUMENTS"
	ErrCodeInvalidChoice         = "MASON_INVALID_CHOICE"
	ErrCodeHelpRequested         = "MASON_HELP_REQUESTED"
	ErrCodeNothingToWrite        = "MASON_NOTHING_TO_WRITE"
	ErrCodeUnsupportedGenerator  = "MASON_UNSUPPORTED_GENERATOR"
	ErrCodeUnsupportedPlatform   = "MASON_UNSUPPORTED_PLATFORM"
	ErrCodeConfigWriterError     = "MASON_CONFIG_WRITER_ERROR"
	ErrCodeInvalidAuditConfig    = "MASON_INVALID_AUDIT_CONFIG"
	ErrCodeAuditBackendError     = "MASON_AUDIT_BACKEND_ERROR"
	ErrCodeSerializationError    = "MASON_SERIALIZATION_ERROR"
	ErrCodeInvalidWorkspaceRoot  = "MASON_INVALID_WORKSPACE_ROOT"
	ErrCodeUnsupportedShowFormat = "MASON_UNSUPPORTED_SHOW_FORMAT"
	ErrCodeInvalidSettings       = "MASON_INVALID_SETTINGS"
)

// HasCode reports whether err, or an error it wraps, carries the given
// mason error code.
func HasCode(err error, code string) bool {
	return errors.HasCode(err, errors.ErrorCode(code))
}

// IsHelpRequested reports whether err is the sentinel returned after help was printed.
func IsHelpRequested(err error) bool {
	return HasCode(err, ErrCodeHelpRequested)
}
