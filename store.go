// store.go: Loading persisted option values
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"fmt"
	"iter"

	"github.com/agilira/go-errors"
)

// LoadStatus tells whether persisted values were actually read.
type LoadStatus int

const (
	// NoPersistedConfig means the config file does not exist; values are empty.
	NoPersistedConfig LoadStatus = iota
	// LoadedFromFile means the config file was read and parsed.
	LoadedFromFile
)

func (s LoadStatus) String() string {
	switch s {
	case NoPersistedConfig:
		return "no persisted config"
	case LoadedFromFile:
		return "loaded from file"
	default:
		return "unknown"
	}
}

// LoadResult holds the values read from the persisted configuration.
type LoadResult struct {
	Values Values
	Status LoadStatus
}

// LoadConfigFile reads the persisted options of registry from path.
// A missing file is not an error: it yields NoPersistedConfig.
func LoadConfigFile(path string, registry *OptionRegistry, warn WarningHandler) (LoadResult, error) {
	tokens, err := TokenizeFile(path)
	if err != nil {
		if HasCode(err, ErrCodeFileNotFound) {
			return LoadResult{Values: Values{}, Status: NoPersistedConfig}, nil
		}
		return LoadResult{}, err
	}

	values, err := LoadValues(tokens, registry, path, warn)
	if err != nil {
		return LoadResult{}, err
	}
	return LoadResult{Values: values, Status: LoadedFromFile}, nil
}

// LoadValues consumes a token sequence: every recognized option takes the
// next token as its value. Unknown tokens are skipped. When an option is
// repeated the first value wins and warn is notified.
func LoadValues(tokens iter.Seq[string], registry *OptionRegistry, path string, warn WarningHandler) (Values, error) {
	values := make(Values)

	next, stop := iter.Pull(tokens)
	defer stop()

	for {
		token, ok := next()
		if !ok {
			return values, nil
		}

		name, known := registry.Lookup(token)
		if !known {
			continue
		}

		value, ok := next()
		if !ok {
			return nil, errors.New(ErrCodeMalformedConfig,
				fmt.Sprintf("in %s expected one argument after %s", path, token)).
				WithContext("option", string(name)).
				WithContext("token", token).
				WithContext("path", path)
		}

		if kept, exists := values[name]; exists {
			if warn != nil {
				warn(errors.New(ErrCodeDuplicateOption,
					fmt.Sprintf("ignoring value %s for option %s, value %s was found first", value, name, kept)).
					WithContext("option", string(name)).
					WithContext("kept", kept).
					WithContext("ignored", value), path)
			}
			continue
		}
		values[name] = value
	}
}
