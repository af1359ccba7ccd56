// Package config provides the configuration loader for reuse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration file at path.
// Relative paths in the file are resolved against the directory containing it.
func (l *Loader) Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Reusefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	project, err := build(filepath.Dir(path), &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.logger.Debug("loaded configuration", "path", path, "units", len(project.Units))
	return project, nil
}

func build(root string, file *Reusefile) (*domain.Project, error) {
	if len(file.Units) == 0 {
		return nil, domain.ErrNoUnits
	}

	cacheDir := file.CacheDir
	if cacheDir == "" {
		cacheDir = domain.DefaultCacheDir()
	}

	project := &domain.Project{
		CacheDir: resolve(root, cacheDir),
		Units:    make([]domain.Unit, 0, len(file.Units)),
	}

	owners := make(map[string]string, len(file.Units))
	for _, name := range sortedKeys(file.Units) {
		unit, err := buildUnit(root, name, file.Units[name])
		if err != nil {
			return nil, zerr.With(err, "unit", name)
		}

		prefix := unit.Config.Prefix()
		if other, ok := owners[prefix]; ok {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateIdentity, "units", other+", "+name), "prefix", prefix)
		}
		owners[prefix] = name

		project.Units = append(project.Units, unit)
	}

	return project, nil
}

func buildUnit(root, name string, dto UnitDTO) (domain.Unit, error) {
	method, err := domain.ParseSourceMethod(dto.Watch.SourceMethod)
	if err != nil {
		return domain.Unit{}, err
	}

	paths := make([]string, len(dto.Watch.Paths))
	for i, p := range dto.Watch.Paths {
		paths[i] = resolve(root, p)
	}

	cfg := domain.Configuration{
		Environment: dto.Environment,
		Identity:    domain.Identity(dto.Identity),
		Watch:       domain.Watch{Paths: paths, SourceMethod: method},
		Entry:       normalize(dto.Entry),
		Debug:       dto.Debug,
	}
	if len(dto.Extra) > 0 {
		cfg.Extra = make(map[string]any, len(dto.Extra))
		for k, v := range dto.Extra {
			cfg.Extra[k] = normalize(v)
		}
	}

	workingDir := dto.WorkingDir
	if workingDir == "" {
		workingDir = "."
	}
	workingDir = resolve(root, workingDir)

	cfg.Build = map[string]any{
		"cmd":        dto.Cmd,
		"env":        dto.Env,
		"workingDir": workingDir,
	}

	if err := cfg.Validate(); err != nil {
		return domain.Unit{}, err
	}
	for field, value := range map[string]string{"environment": cfg.Environment, "identity": cfg.Identity.String()} {
		if strings.ContainsAny(value, `/\`) || strings.HasPrefix(value, ".") {
			return domain.Unit{}, zerr.With(zerr.With(domain.ErrInvalidConfiguration, "field", field), "value", value)
		}
	}

	return domain.Unit{
		Name:       name,
		Config:     cfg,
		Command:    dto.Cmd,
		WorkingDir: workingDir,
		Env:        dto.Env,
	}, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// normalize converts the maps produced by yaml.v3 into JSON-serializable values.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
