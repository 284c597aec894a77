package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/render/termcanvas"
	"github.com/lixenwraith/nightwhale/whale"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultValid(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.Validate())
	require.Len(t, conf.Whale.Segments, 9)
	assert.Equal(t, "head", conf.Whale.Segments[0].Kind)
	assert.Equal(t, "tail", conf.Whale.Segments[8].Kind)
	assert.Equal(t, "#041636", conf.Scene.Background.Hex())
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	conf, err := Load(nil, "")
	require.NoError(t, err)
	require.Equal(t, Default(), conf)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightwhale.toml")
	writeFile(t, path, `
[scene]
fps = 30
background = "#102030"

[whale]
speed = 80.0

[[whale.segments]]
kind = "head"
size = 20.0
front = 30.0
back = 20.0
margin = 5.0

[[whale.segments]]
kind = "fin"
size = 20.0
front = 20.0
back = 10.0
margin = 5.0
`)
	conf, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, 30, conf.Scene.FPS)
	assert.Equal(t, render.RGB{R: 0x10, G: 0x20, B: 0x30}, conf.Scene.Background)
	assert.Equal(t, 80.0, conf.Whale.Speed)
	require.Len(t, conf.Whale.Segments, 2)
	assert.Equal(t, Segment{Kind: "fin", Size: 20, Front: 20, Back: 10, Margin: 5}, conf.Whale.Segments[1])
	// untouched keys keep their defaults
	assert.Equal(t, Default().Stars, conf.Stars)
	assert.Equal(t, Default().Whale.TurnRate, conf.Whale.TurnRate)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightwhale.toml")
	writeFile(t, path, "[scene]\nfps = 30\nseed = 7\n")

	cmd := &cobra.Command{Use: "test"}
	DefineFlags(cmd)
	require.NoError(t, cmd.Flags().Set("scene.fps", "24"))
	require.NoError(t, cmd.Flags().Set("log.level", "debug"))

	conf, err := Load(cmd, path)
	require.NoError(t, err)
	assert.Equal(t, 24, conf.Scene.FPS)
	assert.Equal(t, int64(7), conf.Scene.Seed, "unchanged flag must not mask the file")
	assert.Equal(t, "debug", conf.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "[scene]\nbackground = \"not-a-colour\"\n")
	_, err = Load(nil, path)
	require.Error(t, err)

	writeFile(t, path, "[scene]\nfps = 0\n")
	_, err = Load(nil, path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Scene.FPS = 0 }},
		{"negative scale", func(c *Config) { c.Render.Scale = -1 }},
		{"zero snapshot width", func(c *Config) { c.Render.Width = 0 }},
		{"no segments", func(c *Config) { c.Whale.Segments = nil }},
		{"unknown kind", func(c *Config) { c.Whale.Segments[1].Kind = "flipper" }},
		{"no fin", func(c *Config) { c.Whale.Segments[7].Kind = "body" }},
		{"two fins", func(c *Config) { c.Whale.Segments[6].Kind = "fin" }},
		{"bad color mode", func(c *Config) { c.Render.Color = "16" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			conf.Whale.Segments = append([]Segment(nil), conf.Whale.Segments...)
			tt.mutate(&conf)
			require.ErrorIs(t, conf.Validate(), ErrInvalid)
		})
	}
}

func TestValidateAcceptsDegenerateGeometry(t *testing.T) {
	conf := Default()
	conf.Whale.Segments = append([]Segment(nil), conf.Whale.Segments...)
	conf.Whale.Segments[2].Front = -10
	conf.Whale.Segments[3].Margin = 0
	conf.Whale.Reach = 0
	require.NoError(t, conf.Validate())
}

func TestEncodeIsLoadable(t *testing.T) {
	conf := Default()
	conf.Scene.Seed = 42
	conf.Audio.Enabled = true

	b, err := conf.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(b), "#041636")

	path := filepath.Join(t.TempDir(), "dump.toml")
	writeFile(t, path, string(b))
	loaded, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, conf, loaded)
}

func TestColorMode(t *testing.T) {
	conf := Default()
	assert.Equal(t, termcanvas.ColorModeAuto, conf.ColorMode())
	conf.Render.Color = "256"
	assert.Equal(t, termcanvas.ColorMode256, conf.ColorMode())
}

func TestSceneConfig(t *testing.T) {
	conf := Default()
	conf.Scene.Seed = 9
	sc := conf.SceneConfig()

	assert.Equal(t, conf.Scene.Background, sc.Background)
	assert.Equal(t, int64(9), sc.Whale.Seed)
	assert.Equal(t, int64(9), sc.Stars.Seed)
	assert.Equal(t, conf.Scene.FPS, sc.Stars.FPS)
	assert.Equal(t, whale.DefaultShape(), sc.Whale.Shape)
	require.Len(t, sc.Whale.Profile, len(conf.Whale.Segments))
	assert.Equal(t, conf.Whale.Segments[7].Kind, sc.Whale.Profile[7].Kind)
	assert.Equal(t, conf.Whale.Segments[7].Front, sc.Whale.Profile[7].Front)
}

func TestWatcherReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "nightwhale.toml")
	writeFile(t, path, "[scene]\nfps = 30\n")

	var logBuf bytes.Buffer
	w, err := NewWatcher(path, func() (Config, error) { return Load(nil, path) }, zerolog.New(&logBuf))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	writeFile(t, path, "[scene]\nfps = 12\n")

	select {
	case conf := <-w.Updates():
		assert.Equal(t, 12, conf.Scene.FPS)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}

func TestWatcherSkipsInvalidReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "nightwhale.toml")
	writeFile(t, path, "[scene]\nfps = 30\n")

	var logBuf bytes.Buffer
	w, err := NewWatcher(path, func() (Config, error) { return Load(nil, path) }, zerolog.New(&logBuf))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeFile(t, path, "[scene]\nfps = -1\n")

	select {
	case conf := <-w.Updates():
		t.Fatalf("unexpected reload with fps %d", conf.Scene.FPS)
	case <-time.After(500 * time.Millisecond):
	}
	w.Stop()
}
