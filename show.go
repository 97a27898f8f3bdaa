// show.go: Export of the persisted configuration
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"bytes"
	"strings"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// Output formats accepted by Export.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// PersistedRegistry returns a registry holding every persisted option of
// the build and config commands.
func PersistedRegistry() *OptionRegistry {
	registry := NewOptionRegistry()
	for _, opt := range persistedOptions {
		registry.Register(opt.name, opt.alias)
	}
	return registry
}

// Export renders pairs as "name value" lines or as a YAML mapping keyed by
// the option name without dashes. Both keep declaration order.
func Export(pairs []Pair, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		var buf bytes.Buffer
		for _, pair := range pairs {
			buf.WriteString(string(pair.Name) + " " + pair.Value + "\n")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return exportYAML(pairs)
	default:
		return nil, errors.New(ErrCodeUnsupportedShowFormat, "unsupported format: "+format).
			WithContext("format", format)
	}
}

func exportYAML(pairs []Pair) ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, pair := range pairs {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: strings.TrimLeft(string(pair.Name), "-")},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Value},
		)
	}

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeSerializationError, "failed to encode configuration as yaml")
	}
	return data, nil
}

// ImportYAML reads a mapping produced by Export back into values. Keys
// that are not persisted options are ignored.
func ImportYAML(data []byte, registry *OptionRegistry) (Values, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, ErrCodeSerializationError, "failed to decode yaml configuration")
	}

	values := make(Values)
	for key, value := range raw {
		if name, ok := registry.Lookup("--" + key); ok {
			values[name] = value
		}
	}
	return values, nil
}

// ShowConfig loads the persisted configuration of settings and renders it.
func ShowConfig(settings Settings, format string) ([]byte, LoadStatus, error) {
	s := settings.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, NoPersistedConfig, err
	}

	registry := PersistedRegistry()
	result, err := LoadConfigFile(s.ConfigPath(), registry, s.WarningHandler)
	if err != nil {
		return nil, NoPersistedConfig, err
	}

	data, err := Export(MergeValues(registry, nil, result.Values), format)
	if err != nil {
		return nil, result.Status, err
	}
	return data, result.Status, nil
}
