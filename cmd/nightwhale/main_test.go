package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/nightwhale/config"
)

func smallConfig() config.Config {
	conf := config.Default()
	conf.Render.Width = 320
	conf.Render.Height = 200
	conf.Scene.Seed = 5
	return conf
}

func TestRenderSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "whale.png")
	files, err := renderSnapshot(smallConfig(), 10, out, false)
	require.NoError(t, err)
	require.Equal(t, []string{out}, files)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderSnapshotSequence(t *testing.T) {
	out := filepath.Join(t.TempDir(), "whale.png")
	files, err := renderSnapshot(smallConfig(), 3, out, true)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, strings.HasSuffix(files[2], "whale-0003.png"))
	for _, f := range files {
		_, err := os.Stat(f)
		require.NoError(t, err)
	}
}

func TestRenderSnapshotInitialFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "still.png")
	files, err := renderSnapshot(smallConfig(), 0, out, false)
	require.NoError(t, err)
	assert.Equal(t, []string{out}, files)
}

func TestRenderSnapshotBadPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "dir", "whale.png")
	_, err := renderSnapshot(smallConfig(), 1, out, false)
	require.Error(t, err)
}

func TestSequencePath(t *testing.T) {
	assert.Equal(t, "out/whale-0007.png", sequencePath("out/whale.png", 7))
	assert.Equal(t, "frame-0012", sequencePath("frame", 12))
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "nightwhale v"+version)
}

func TestConfigCommandPrintsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightwhale.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nfps = 24\n"), 0o644))

	cmd := rootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"config", "--config", path, "--stars.per_width", "0.05"})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "[scene]")
	assert.Contains(t, out, "fps = 24")
	assert.Contains(t, out, "per_width = 0.05")
	assert.Contains(t, out, "[[whale.segments]]")
}

func TestRunWatchNeedsConfig(t *testing.T) {
	cmd := rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--watch"})
	require.ErrorIs(t, cmd.Execute(), errWatchNeedsConfig)
}

func TestConfigCheckRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightwhale.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nfps = 0\n"), 0o644))

	cmd := rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "check", "--config", path})
	require.ErrorIs(t, cmd.Execute(), config.ErrInvalid)
}
