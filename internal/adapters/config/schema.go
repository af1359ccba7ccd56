package config

import (
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Reusefile represents the structure of the reuse.yaml configuration file.
type Reusefile struct {
	Version  string             `yaml:"version"`
	CacheDir string             `yaml:"cacheDir"`
	Units    map[string]UnitDTO `yaml:"units"`
}

// UnitDTO represents a unit definition in the configuration.
type UnitDTO struct {
	Environment string            `yaml:"environment"`
	Identity    IdentityDTO       `yaml:"identity"`
	Watch       WatchDTO          `yaml:"watch"`
	Entry       any               `yaml:"entry"`
	Cmd         []string          `yaml:"cmd"`
	WorkingDir  string            `yaml:"workingDir"`
	Env         map[string]string `yaml:"env"`
	Debug       bool              `yaml:"debug"`
	Extra       map[string]any    `yaml:"extra"`
}

// IdentityDTO accepts an integer or a string identity.
type IdentityDTO string

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *IdentityDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || (node.Tag != "!!int" && node.Tag != "!!str") {
		return zerr.With(zerr.With(domain.ErrInvalidIdentity, "line", node.Line), "value", node.Value)
	}
	*i = IdentityDTO(node.Value)
	return nil
}

// WatchDTO accepts either a list of paths, a single path, or a mapping with paths and sourceMethod.
type WatchDTO struct {
	Paths        []string `yaml:"paths"`
	SourceMethod string   `yaml:"sourceMethod"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *WatchDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var paths []string
		if err := node.Decode(&paths); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidWatch.Error()), "line", node.Line)
		}
		*w = WatchDTO{Paths: paths}
		return nil
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			break
		}
		*w = WatchDTO{Paths: []string{node.Value}}
		return nil
	case yaml.MappingNode:
		type plain WatchDTO
		var p plain
		if err := node.Decode(&p); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidWatch.Error()), "line", node.Line)
		}
		*w = WatchDTO(p)
		return nil
	}
	return zerr.With(domain.ErrInvalidWatch, "line", node.Line)
}
