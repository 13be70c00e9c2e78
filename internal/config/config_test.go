package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("COLLAGEBOARD_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, float32(0.2), cfg.Editor.MinScale)
	require.Equal(t, float32(5), cfg.Editor.MaxScale)
	require.Equal(t, 0, cfg.Editor.HistoryDepth)
	require.Len(t, cfg.Catalog.Images, 5)
	require.Empty(t, cfg.Catalog.Dir)
	require.Equal(t, ":8888", cfg.Bridge.Addr)
	require.False(t, cfg.Bridge.Advertise)
	require.Empty(t, cfg.Bridge.AllowedOrigins)

	opts := cfg.Editor.Options()
	require.Equal(t, float32(0.2), opts.MinScale)
	require.Equal(t, float32(5), opts.MaxScale)
}

func TestLoadFromFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "collage.toml")
	data := `
[editor]
max_scale = 3.0
history_depth = 50

[catalog]
images = ["beach", "forest"]

[bridge]
addr = "127.0.0.1:9000"
advertise = true
allowed_origins = ["http://studio.local:3000"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("COLLAGEBOARD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, float32(3), cfg.Editor.MaxScale)
	require.Equal(t, 50, cfg.Editor.HistoryDepth)
	require.Equal(t, []string{"beach", "forest"}, cfg.Catalog.Images)
	require.Equal(t, "127.0.0.1:9000", cfg.Bridge.Addr)
	require.Equal(t, []string{"http://studio.local:3000"}, cfg.Bridge.AllowedOrigins)
	require.True(t, cfg.Bridge.Advertise)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("COLLAGEBOARD_BRIDGE_ADDR", ":7000")
	t.Setenv("COLLAGEBOARD_CATALOG_DIR", "/srv/samples")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Bridge.Addr)
	require.Equal(t, "/srv/samples", cfg.Catalog.Dir)
}

func TestLoadRejectsBadScaleRange(t *testing.T) {
	isolate(t)
	t.Setenv("COLLAGEBOARD_EDITOR_MIN_SCALE", "4")
	t.Setenv("COLLAGEBOARD_EDITOR_MAX_SCALE", "2")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	home := isolate(t)
	t.Setenv("COLLAGEBOARD_CONFIG", filepath.Join(home, "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}
