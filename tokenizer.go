// tokenizer.go: Tokenizer for the persisted configuration format
//
// The persisted file holds whitespace separated tokens. A '#' starts a
// comment that runs to the end of the line; quoting is not honoured, so a
// '#' inside a value truncates it.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"bufio"
	"bytes"
	"iter"
	"os"
	"strings"

	"github.com/agilira/go-errors"
)

// CommentMarker starts a comment in the persisted configuration file.
const CommentMarker = '#'

// Tokenize returns the tokens of data, line by line, in file order.
// The sequence is lazy and can be ranged over any number of times.
func Tokenize(data []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 4096), len(data)+1)
		scanner.Split(scanLines)

		for scanner.Scan() {
			line := scanner.Text()
			if i := strings.IndexByte(line, CommentMarker); i >= 0 {
				line = line[:i]
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			for _, token := range strings.Fields(line) {
				if !yield(token) {
					return
				}
			}
		}
	}
}

// scanLines is bufio.ScanLines extended to treat a lone '\r' as a line break.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// TokenizeFile reads path and returns its token sequence.
// A missing file is reported with ErrCodeFileNotFound.
func TokenizeFile(path string) (iter.Seq[string], error) {
	// #nosec G304 -- path is the workspace config file chosen by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, ErrCodeFileNotFound, "configuration file does not exist").
				WithContext("path", path)
		}
		return nil, errors.Wrap(err, ErrCodeIOError, "failed to read configuration file").
			WithContext("path", path)
	}
	return Tokenize(data), nil
}
