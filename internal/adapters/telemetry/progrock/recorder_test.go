package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	adapter "go.trai.ch/reuse/internal/adapters/telemetry/progrock"
	"go.trai.ch/reuse/internal/core/domain"
)

// tape records every vertex state it is sent.
type tape struct {
	mu       sync.Mutex
	vertexes map[string]*progrock.Vertex
	closed   bool
}

func newTape() *tape {
	return &tape{vertexes: make(map[string]*progrock.Vertex)}
}

func (t *tape) WriteStatus(update *progrock.StatusUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range update.Vertexes {
		t.vertexes[v.Id] = v
	}
	return nil
}

func (t *tape) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *tape) byName(name string) []*progrock.Vertex {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*progrock.Vertex
	for _, v := range t.vertexes {
		if v.Name == name {
			out = append(out, v)
		}
	}
	return out
}

func TestRecorder_Complete(t *testing.T) {
	w := newTape()
	rec := adapter.NewRecorder(w)

	_, vertex := rec.Record(context.Background(), "vendor")
	_, err := vertex.Stdout().Write([]byte("compiling\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelDebug, "compile")
	vertex.Complete(nil)

	got := w.byName("vendor")
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Completed)
	assert.Nil(t, got[0].Error)
	assert.False(t, got[0].Cached)

	require.NoError(t, rec.Close())
	assert.True(t, w.closed)
}

func TestRecorder_Failed(t *testing.T) {
	w := newTape()
	rec := adapter.NewRecorder(w)

	_, vertex := rec.Record(context.Background(), "vendor")
	vertex.Complete(errors.New("boom"))

	got := w.byName("vendor")
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Error)
	assert.Equal(t, "boom", *got[0].Error)
}

func TestRecorder_Cached(t *testing.T) {
	w := newTape()
	rec := adapter.NewRecorder(w)

	_, vertex := rec.Record(context.Background(), "vendor")
	vertex.Cached()

	got := w.byName("vendor")
	require.Len(t, got, 1)
	assert.True(t, got[0].Cached)
	assert.NotNil(t, got[0].Completed)
}

func TestRecorder_SameNameYieldsDistinctVertices(t *testing.T) {
	w := newTape()
	rec := adapter.NewRecorder(w)

	_, first := rec.Record(context.Background(), "vendor")
	first.Complete(nil)
	_, second := rec.Record(context.Background(), "vendor")
	second.Complete(nil)

	assert.Len(t, w.byName("vendor"), 2)
}

func TestNew_PrintsFinishedVertices(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	rec := adapter.New(&buf)

	_, built := rec.Record(context.Background(), "vendor")
	built.Complete(nil)
	_, hit := rec.Record(context.Background(), "app")
	hit.Cached()
	_, broken := rec.Record(context.Background(), "lib")
	broken.Complete(errors.New("exit status 2"))
	require.NoError(t, rec.Close())

	assert.Equal(t, "✓ vendor\n~ app (cached)\n✗ lib: exit status 2\n", buf.String())
}
