package fs_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reuse/internal/adapters/fs"
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var fingerprintPattern = regexp.MustCompile(`^development_1_[0-9a-f]{64}$`)

func newConfig(paths ...string) domain.Configuration {
	return domain.Configuration{
		Environment: "development",
		Identity:    domain.IntIdentity(1),
		Watch:       domain.Watch{Paths: paths, SourceMethod: domain.SourceMethodMtime},
		Entry:       map[string]any{"vendor": []string{"react", "react-dom"}},
	}
}

func TestHasher_Fingerprint_Format(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.js"), "console.log(1)")

	hasher := fs.NewFactory(newQuietLogger(t)).New(filepath.Join(root, ".reuse", "cache"))
	fp, err := hasher.Fingerprint(context.Background(), newConfig(filepath.Join(root, "src")))
	require.NoError(t, err)

	assert.Regexp(t, fingerprintPattern, fp.String())
	assert.Equal(t, "development_1", fp.Prefix())
}

func TestHasher_Fingerprint_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.js"), "a")
	writeFile(t, filepath.Join(root, "src", "nested", "b.js"), "b")

	hasher := fs.NewHasher(fs.NewWalker("", newQuietLogger(t)))
	cfg := newConfig(filepath.Join(root, "src"))

	first, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)
	second, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHasher_Fingerprint_ContentSensitivity(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "src", "a.js")
	writeFile(t, path, "before")

	hasher := fs.NewHasher(fs.NewWalker("", newQuietLogger(t)))
	cfg := newConfig(filepath.Join(root, "src"))
	cfg.Watch.SourceMethod = domain.SourceMethodContent

	before, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	writeFile(t, path, "after")
	after, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	assert.Equal(t, before.Prefix(), after.Prefix())
}

func TestHasher_Fingerprint_MtimeTouch(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "src", "a.js")
	writeFile(t, path, "unchanged")
	stamp := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	hasher := fs.NewHasher(fs.NewWalker("", newQuietLogger(t)))
	cfg := newConfig(filepath.Join(root, "src"))

	before, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	touched := stamp.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, touched, touched))
	after, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestHasher_Fingerprint_CacheDirExclusion(t *testing.T) {
	root := t.TempDir()
	cacheDir := filepath.Join(root, ".reuse", "cache")
	writeFile(t, filepath.Join(root, "a.js"), "a")

	hasher := fs.NewFactory(newQuietLogger(t)).New(cacheDir)
	cfg := newConfig(root)
	cfg.Watch.SourceMethod = domain.SourceMethodContent

	before, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	writeFile(t, filepath.Join(cacheDir, before.String()), "{}")
	after, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestHasher_Fingerprint_ConfigurationSensitivity(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker("", newQuietLogger(t)))
	base := newConfig()

	baseFP, err := hasher.Fingerprint(context.Background(), base)
	require.NoError(t, err)

	changed := newConfig()
	changed.Extra = map[string]any{"filename": "[name].dll.js"}
	changedFP, err := hasher.Fingerprint(context.Background(), changed)
	require.NoError(t, err)

	assert.NotEqual(t, baseFP, changedFP)
}

func TestHasher_Fingerprint_SkipsEnumerationWithoutWatchPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	enumerator := mocks.NewMockSourceEnumerator(ctrl)
	enumerator.EXPECT().WriteSources(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	hasher := fs.NewHasher(enumerator)
	fp, err := hasher.Fingerprint(context.Background(), newConfig())
	require.NoError(t, err)

	assert.Regexp(t, fingerprintPattern, fp.String())
}

func TestHasher_Fingerprint_StreamsSourcesIntoDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	enumerator := mocks.NewMockSourceEnumerator(ctrl)

	hasher := fs.NewHasher(enumerator)
	cfg := newConfig("./src")

	enumerator.EXPECT().
		WriteSources(gomock.Any(), gomock.Any(), []string{"./src"}, domain.SourceMethodMtime).
		DoAndReturn(func(_ context.Context, w io.Writer, _ []string, _ domain.SourceMethod) error {
			_, err := io.WriteString(w, "one")
			return err
		})
	first, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	enumerator.EXPECT().
		WriteSources(gomock.Any(), gomock.Any(), []string{"./src"}, domain.SourceMethodMtime).
		DoAndReturn(func(_ context.Context, w io.Writer, _ []string, _ domain.SourceMethod) error {
			_, err := io.WriteString(w, "two")
			return err
		})
	second, err := hasher.Fingerprint(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_Fingerprint_Errors(t *testing.T) {
	t.Run("missing environment", func(t *testing.T) {
		cfg := newConfig()
		cfg.Environment = ""

		_, err := fs.NewHasher(nil).Fingerprint(context.Background(), cfg)
		require.ErrorContains(t, err, domain.ErrInvalidConfiguration.Error())
	})

	t.Run("missing identity", func(t *testing.T) {
		cfg := newConfig()
		cfg.Identity = ""

		_, err := fs.NewHasher(nil).Fingerprint(context.Background(), cfg)
		require.ErrorContains(t, err, domain.ErrInvalidConfiguration.Error())
	})

	t.Run("unserializable entry", func(t *testing.T) {
		cfg := newConfig()
		cfg.Entry = make(chan int)

		_, err := fs.NewHasher(nil).Fingerprint(context.Background(), cfg)
		require.ErrorContains(t, err, domain.ErrConfigSerializeFailed.Error())
	})

	t.Run("enumeration aborted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		enumerator := mocks.NewMockSourceEnumerator(ctrl)
		enumerator.EXPECT().
			WriteSources(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(context.Canceled)

		_, err := fs.NewHasher(enumerator).Fingerprint(context.Background(), newConfig("./src"))
		require.ErrorContains(t, err, domain.ErrFingerprintFailed.Error())
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
