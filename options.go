// options.go: Registry of persisted option names and their aliases
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mason

import (
	"fmt"
	"slices"
)

// OptionName is the canonical long form of a persisted option, e.g. "--generator".
type OptionName string

// OptionAlias is the short form of a persisted option, e.g. "-g".
type OptionAlias string

// Values maps persisted options to their string values.
type Values map[OptionName]string

// Pair is a resolved option with its value.
type Pair struct {
	Name  OptionName
	Value string
}

// OptionRegistry keeps the persisted options in declaration order.
// Canonical names and aliases are two separate relations; Lookup merges
// them, names first.
type OptionRegistry struct {
	order   []OptionName
	names   map[OptionName]struct{}
	aliases map[OptionAlias]OptionName
}

// NewOptionRegistry creates an empty registry.
func NewOptionRegistry() *OptionRegistry {
	return &OptionRegistry{
		names:   make(map[OptionName]struct{}),
		aliases: make(map[OptionAlias]OptionName),
	}
}

// Register appends name to the registry, with an optional alias.
// Registering a name twice, or an alias that collides with another name or
// alias, is a programming error and panics.
func (r *OptionRegistry) Register(name OptionName, alias OptionAlias) {
	if name == "" {
		panic("mason: option name cannot be empty")
	}
	if _, exists := r.names[name]; exists {
		panic(fmt.Sprintf("mason: option %s registered twice", name))
	}
	if _, exists := r.aliases[OptionAlias(name)]; exists {
		panic(fmt.Sprintf("mason: option %s collides with an alias", name))
	}
	if alias != "" {
		if _, exists := r.names[OptionName(alias)]; exists || OptionName(alias) == name {
			panic(fmt.Sprintf("mason: alias %s collides with an option name", alias))
		}
		if owner, exists := r.aliases[alias]; exists {
			panic(fmt.Sprintf("mason: alias %s already used by %s", alias, owner))
		}
		r.aliases[alias] = name
	}

	r.names[name] = struct{}{}
	r.order = append(r.order, name)
}

// Lookup resolves a token to its canonical option name.
func (r *OptionRegistry) Lookup(token string) (OptionName, bool) {
	if _, ok := r.names[OptionName(token)]; ok {
		return OptionName(token), true
	}
	name, ok := r.aliases[OptionAlias(token)]
	return name, ok
}

// Names returns the registered names in declaration order.
func (r *OptionRegistry) Names() []OptionName {
	return slices.Clone(r.order)
}

// Len returns the number of registered options.
func (r *OptionRegistry) Len() int {
	return len(r.order)
}
