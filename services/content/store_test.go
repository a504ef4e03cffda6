package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreReplace(t *testing.T) {
	first, err := LoadEmbedded()
	require.NoError(t, err)
	second, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	s := NewStore(first)
	assert.Equal(t, "File Bridge Global", s.Default().Brand.Name)

	s.Replace(second)
	assert.Equal(t, "Solo Tax", s.Default().Brand.Name)

	_, ok := s.Variant("filebridge")
	assert.False(t, ok)
}

func TestStoreReloadFileKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variants: {}\n"), 0o644))

	c, err := LoadEmbedded()
	require.NoError(t, err)
	s := NewStore(c)

	assert.Error(t, s.ReloadFile(path))
	assert.Equal(t, "File Bridge Global", s.Default().Brand.Name)
}

func TestStoreWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	s := NewStore(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, path) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	updated := strings.Replace(minimalYAML, "Solo Tax", "Solo Tax Advisors", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		return s.Default().Brand.Name == "Solo Tax Advisors"
	}, 3*time.Second, 20*time.Millisecond)

	// An invalid edit is ignored.
	require.NoError(t, os.WriteFile(path, []byte("variants: {}\n"), 0o644))
	time.Sleep(2 * reloadDebounce)
	assert.Equal(t, "Solo Tax Advisors", s.Default().Brand.Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestStoreForceDefaultSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, DefaultYAML(), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	s := NewStore(c)

	assert.Error(t, s.ForceDefault("missing"))
	require.NoError(t, s.ForceDefault("bridgeglobal"))
	assert.Equal(t, "Bridge Global Tax", s.Default().Brand.Name)

	require.NoError(t, s.ReloadFile(path))
	assert.Equal(t, "bridgeglobal", s.Catalog().DefaultVariant)

	// A reload that drops the forced variant is rejected
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))
	assert.Error(t, s.ReloadFile(path))
	assert.Equal(t, "Bridge Global Tax", s.Default().Brand.Name)
}
