package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reuse/internal/adapters/config"
	"go.trai.ch/reuse/internal/adapters/logger"
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reuse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader() *config.Loader {
	log := logger.New()
	log.SetOutput(io.Discard)
	return config.NewLoader(log)
}

func TestLoad_ListWatch(t *testing.T) {
	path := writeConfig(t, `
units:
  vendor:
    environment: development
    identity: 1
    watch:
      - ./src
      - ./package.json
    entry:
      main: ./src/index.js
    cmd: ["npm", "run", "build"]
`)
	root := filepath.Dir(path)

	project, err := newLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, project.Units, 1)

	unit := project.Units[0]
	assert.Equal(t, "vendor", unit.Name)
	assert.Equal(t, "development", unit.Config.Environment)
	assert.Equal(t, domain.IntIdentity(1), unit.Config.Identity)
	assert.Equal(t, []string{filepath.Join(root, "src"), filepath.Join(root, "package.json")}, unit.Config.Watch.Paths)
	assert.Equal(t, domain.SourceMethodMtime, unit.Config.Watch.SourceMethod)
	assert.Equal(t, map[string]any{"main": "./src/index.js"}, unit.Config.Entry)
	assert.Equal(t, []string{"npm", "run", "build"}, unit.Command)
	assert.Equal(t, root, unit.WorkingDir)
	assert.Equal(t, filepath.Join(root, domain.DefaultCacheDir()), project.CacheDir)
}

func TestLoad_StructuredWatch(t *testing.T) {
	path := writeConfig(t, `
cacheDir: /var/cache/reuse
units:
  app:
    environment: production
    identity: web
    watch:
      paths: [/opt/app/src]
      sourceMethod: checksum
    workingDir: frontend
    env:
      NODE_ENV: production
    debug: true
    extra:
      filename: bundle.js
`)
	root := filepath.Dir(path)

	project, err := newLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, project.Units, 1)

	unit := project.Units[0]
	assert.Equal(t, domain.Identity("web"), unit.Config.Identity)
	assert.Equal(t, []string{"/opt/app/src"}, unit.Config.Watch.Paths)
	assert.Equal(t, domain.SourceMethodChecksum, unit.Config.Watch.SourceMethod)
	assert.Equal(t, filepath.Join(root, "frontend"), unit.WorkingDir)
	assert.Equal(t, map[string]string{"NODE_ENV": "production"}, unit.Env)
	assert.True(t, unit.Config.Debug)
	assert.Equal(t, map[string]any{"filename": "bundle.js"}, unit.Config.Extra)
	assert.Equal(t, map[string]string{"NODE_ENV": "production"}, unit.Config.Build["env"])
	assert.Equal(t, filepath.Join(root, "frontend"), unit.Config.Build["workingDir"])
	assert.False(t, unit.Config.HasEntry())
	assert.Equal(t, "/var/cache/reuse", project.CacheDir)
}

func TestLoad_ScalarWatch(t *testing.T) {
	path := writeConfig(t, `
units:
  app:
    environment: development
    identity: 2
    watch: src
`)

	project, err := newLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(filepath.Dir(path), "src")}, project.Units[0].Config.Watch.Paths)
}

func TestLoad_UnitsSortedByName(t *testing.T) {
	path := writeConfig(t, `
units:
  zeta: {environment: development, identity: 3}
  alpha: {environment: development, identity: 1}
  mid: {environment: development, identity: 2}
`)

	project, err := newLoader().Load(path)
	require.NoError(t, err)

	names := make([]string, 0, len(project.Units))
	for _, u := range project.Units {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	unit, ok := project.Unit("mid")
	require.True(t, ok)
	assert.Equal(t, domain.IntIdentity(2), unit.Config.Identity)
}

func TestLoad_BuildSettingsChangeCanonical(t *testing.T) {
	base := `
units:
  app:
    environment: development
    identity: 1
    cmd: [make, vendor]
    env: {NODE_ENV: development}
    workingDir: frontend
`
	variants := map[string]string{
		"cmd": `
units:
  app:
    environment: development
    identity: 1
    cmd: [make, something-else]
    env: {NODE_ENV: development}
    workingDir: frontend
`,
		"env": `
units:
  app:
    environment: development
    identity: 1
    cmd: [make, vendor]
    env: {NODE_ENV: production}
    workingDir: frontend
`,
		"workingDir": `
units:
  app:
    environment: development
    identity: 1
    cmd: [make, vendor]
    env: {NODE_ENV: development}
    workingDir: backend
`,
	}

	dir := t.TempDir()
	load := func(content string) []byte {
		t.Helper()
		path := filepath.Join(dir, "reuse.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		project, err := newLoader().Load(path)
		require.NoError(t, err)
		data, err := project.Units[0].Config.Canonical()
		require.NoError(t, err)
		return data
	}

	baseData := load(base)
	for name, content := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, string(baseData), string(load(content)))
		})
	}
	assert.Equal(t, string(baseData), string(load(base)))
}

func TestLoad_CanonicalIsStable(t *testing.T) {
	content := `
units:
  app:
    environment: development
    identity: 1
    entry:
      b: 2
      a: [1, {y: 2, x: 1}]
`
	first, err := newLoader().Load(writeConfig(t, content))
	require.NoError(t, err)
	second, err := newLoader().Load(writeConfig(t, content))
	require.NoError(t, err)

	a, err := first.Units[0].Config.Canonical()
	require.NoError(t, err)
	b, err := second.Units[0].Config.Canonical()
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no units",
			content: "cacheDir: .cache\n",
			wantErr: domain.ErrNoUnits,
		},
		{
			name:    "missing environment",
			content: "units:\n  app:\n    identity: 1\n",
			wantErr: domain.ErrInvalidConfiguration,
		},
		{
			name:    "missing identity",
			content: "units:\n  app:\n    environment: development\n",
			wantErr: domain.ErrInvalidConfiguration,
		},
		{
			name:    "identity with separator",
			content: "units:\n  app:\n    environment: development\n    identity: a/b\n",
			wantErr: domain.ErrInvalidConfiguration,
		},
		{
			name:    "identity as mapping",
			content: "units:\n  app:\n    environment: development\n    identity: {a: 1}\n",
			wantErr: domain.ErrInvalidIdentity,
		},
		{
			name:    "identity as float",
			content: "units:\n  app:\n    environment: development\n    identity: 1.5\n",
			wantErr: domain.ErrInvalidIdentity,
		},
		{
			name:    "watch as number",
			content: "units:\n  app:\n    environment: development\n    identity: 1\n    watch: 3\n",
			wantErr: domain.ErrInvalidWatch,
		},
		{
			name:    "unknown source method",
			content: "units:\n  app:\n    environment: development\n    identity: 1\n    watch: {paths: [src], sourceMethod: sha1}\n",
			wantErr: domain.ErrInvalidSourceMethod,
		},
		{
			name: "duplicate identity",
			content: `
units:
  one: {environment: development, identity: 1}
  two: {environment: development, identity: "1"}
`,
			wantErr: domain.ErrDuplicateIdentity,
		},
		{
			name:    "environment with fingerprint separator",
			content: "units:\n  app:\n    environment: pre_production\n    identity: 1\n",
			wantErr: domain.ErrInvalidConfiguration,
		},
		{
			name:    "malformed yaml",
			content: "units: [",
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader().Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoad_SameIdentityDifferentEnvironment(t *testing.T) {
	path := writeConfig(t, `
units:
  dev: {environment: development, identity: 1}
  prod: {environment: production, identity: 1}
`)

	project, err := newLoader().Load(path)
	require.NoError(t, err)
	assert.Len(t, project.Units, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newLoader().Load(filepath.Join(t.TempDir(), "reuse.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_LogsLoadedConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("loaded configuration", "path", gomock.Any(), "units", 1)

	_, err := config.NewLoader(log).Load(writeConfig(t, "units:\n  app: {environment: development, identity: 1}\n"))
	require.NoError(t, err)
}
