// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/veercli/veer/pkg/convert"
)

// Manifest is a declarative command catalogue, decodable from TOML or YAML.
// Manifest commands carry their own name as the command handle; the host's
// Factory maps those names to executable instances.
type Manifest struct {
	// Requires is an optional semver constraint on the host application
	// version, checked before any definition is produced.
	Requires string            `toml:"requires" yaml:"requires"`
	Commands []ManifestCommand `toml:"command" yaml:"commands"`
}

// ManifestCommand mirrors Definition in serializable form.
type ManifestCommand struct {
	Name        string           `toml:"name" yaml:"name"`
	Description string           `toml:"description" yaml:"description"`
	Aliases     []string         `toml:"aliases" yaml:"aliases"`
	Parent      string           `toml:"parent" yaml:"parent"`
	DisableHelp bool             `toml:"disable_help" yaml:"disable_help"`
	Options     []ManifestOption `toml:"option" yaml:"options"`
	Args        []ManifestArg    `toml:"arg" yaml:"args"`
}

// ManifestOption mirrors Option. Type is a kind name ("string", "int",
// "bool", "float", "duration", ...); empty means string.
type ManifestOption struct {
	Name        string   `toml:"name" yaml:"name"`
	Short       string   `toml:"short" yaml:"short"`
	Description string   `toml:"description" yaml:"description"`
	Type        string   `toml:"type" yaml:"type"`
	Required    bool     `toml:"required" yaml:"required"`
	Default     string   `toml:"default" yaml:"default"`
	Repeatable  bool     `toml:"repeatable" yaml:"repeatable"`
	Enum        []string `toml:"enum" yaml:"enum"`
}

// ManifestArg mirrors Argument. Position is a pointer so an explicit
// position 0 is distinguishable from an omitted one; omitted positions
// default to the arg's index in the list.
type ManifestArg struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	Type        string `toml:"type" yaml:"type"`
	Required    bool   `toml:"required" yaml:"required"`
	Default     string `toml:"default" yaml:"default"`
	Position    *int   `toml:"position" yaml:"position"`
}

// DecodeManifestTOML decodes a TOML manifest and returns its definitions.
// appVersion is matched against the manifest's Requires constraint.
func DecodeManifestTOML(data []byte, appVersion string) ([]*Definition, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return m.definitions(appVersion)
}

// DecodeManifestYAML decodes a YAML manifest and returns its definitions.
func DecodeManifestYAML(data []byte, appVersion string) ([]*Definition, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return m.definitions(appVersion)
}

func (m *Manifest) definitions(appVersion string) ([]*Definition, error) {
	if m.Requires != "" {
		c, err := semver.NewConstraint(m.Requires)
		if err != nil {
			return nil, fmt.Errorf("manifest requires %q: %w", m.Requires, err)
		}
		v, err := semver.NewVersion(appVersion)
		if err != nil {
			return nil, fmt.Errorf("application version %q: %w", appVersion, err)
		}
		if !c.Check(v) {
			return nil, fmt.Errorf("manifest requires version %s, application is %s", m.Requires, appVersion)
		}
	}

	defs := make([]*Definition, 0, len(m.Commands))
	for _, mc := range m.Commands {
		if mc.Name == "" {
			return nil, fmt.Errorf("manifest command without a name")
		}
		def := &Definition{
			Name:        mc.Name,
			Description: mc.Description,
			Aliases:     mc.Aliases,
			Parent:      mc.Parent,
			DisableHelp: mc.DisableHelp,
			Handle:      mc.Name,
		}
		for _, mo := range mc.Options {
			kind := convert.String
			if mo.Type != "" {
				k, err := convert.KindOf(mo.Type)
				if err != nil {
					return nil, fmt.Errorf("command %q option %q: %w", mc.Name, mo.Name, err)
				}
				kind = k
			}
			def.Options = append(def.Options, Option{
				Name:        mo.Name,
				Short:       mo.Short,
				Description: mo.Description,
				Type:        kind,
				Required:    mo.Required,
				Default:     mo.Default,
				Repeatable:  mo.Repeatable,
				Enum:        mo.Enum,
			})
		}
		for i, ma := range mc.Args {
			kind := convert.String
			if ma.Type != "" {
				k, err := convert.KindOf(ma.Type)
				if err != nil {
					return nil, fmt.Errorf("command %q argument %q: %w", mc.Name, ma.Name, err)
				}
				kind = k
			}
			pos := i
			if ma.Position != nil {
				pos = *ma.Position
			}
			def.Args = append(def.Args, Argument{
				Name:        ma.Name,
				Description: ma.Description,
				Type:        kind,
				Required:    ma.Required,
				Default:     ma.Default,
				Position:    pos,
			})
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// RegisterManifestTOML decodes a TOML manifest and registers every definition.
func (r *Registry) RegisterManifestTOML(data []byte, appVersion string) error {
	defs, err := DecodeManifestTOML(data, appVersion)
	if err != nil {
		return err
	}
	return r.registerAll(defs)
}

// RegisterManifestYAML decodes a YAML manifest and registers every definition.
func (r *Registry) RegisterManifestYAML(data []byte, appVersion string) error {
	defs, err := DecodeManifestYAML(data, appVersion)
	if err != nil {
		return err
	}
	return r.registerAll(defs)
}

func (r *Registry) registerAll(defs []*Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}
