// Package config contains the nightwhale Config and the code to load it
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render"
	"github.com/lixenwraith/nightwhale/render/termcanvas"
	"github.com/lixenwraith/nightwhale/scene"
	"github.com/lixenwraith/nightwhale/starfield"
	"github.com/lixenwraith/nightwhale/whale"
)

// ErrInvalid marks configuration that loads but cannot drive a scene
var ErrInvalid = errors.New("invalid config")

type Config struct {
	// Scene holds frame rate, background and the seed for layout and path noise.
	Scene Scene `mapstructure:"scene" toml:"scene"`
	// Whale tunes head motion, segment constants and the body profile.
	Whale Whale `mapstructure:"whale" toml:"whale"`
	// Stars tunes star layout, drift and twinkle.
	Stars Stars `mapstructure:"stars" toml:"stars"`
	// Render configures terminal scale and snapshot size.
	Render Render `mapstructure:"render" toml:"render"`
	// Audio enables the ambient whale song.
	Audio Audio `mapstructure:"audio" toml:"audio"`
	// Log configures logging.
	Log Log `mapstructure:"log" toml:"log"`
	// Metrics configures the Prometheus endpoint.
	Metrics Metrics `mapstructure:"metrics" toml:"metrics"`
}

type Scene struct {
	FPS        int        `mapstructure:"fps" toml:"fps"`
	Background render.RGB `mapstructure:"background" toml:"background"`
	// Seed drives star layout and the whale path; 0 picks one at startup.
	Seed int64 `mapstructure:"seed" toml:"seed"`
}

type Whale struct {
	Speed          float64    `mapstructure:"speed" toml:"speed"`
	TurnRate       float64    `mapstructure:"turn_rate" toml:"turn_rate"`
	NoiseFrequency float64    `mapstructure:"noise_frequency" toml:"noise_frequency"`
	EdgeMargin     float64    `mapstructure:"edge_margin" toml:"edge_margin"`
	SteerRate      float64    `mapstructure:"steer_rate" toml:"steer_rate"`
	Reach          float64    `mapstructure:"reach" toml:"reach"`
	TailReach      float64    `mapstructure:"tail_reach" toml:"tail_reach"`
	TailShrink     float64    `mapstructure:"tail_shrink" toml:"tail_shrink"`
	FinSize        float64    `mapstructure:"fin_size" toml:"fin_size"`
	Tightness      float64    `mapstructure:"tightness" toml:"tightness"`
	Color          render.RGB `mapstructure:"color" toml:"color"`
	Segments       []Segment  `mapstructure:"segments" toml:"segments"`
}

// Segment is one chain link, listed head first.
type Segment struct {
	// Kind is one of head, body, fin, tail.
	Kind   string  `mapstructure:"kind" toml:"kind"`
	Size   float64 `mapstructure:"size" toml:"size"`
	Front  float64 `mapstructure:"front" toml:"front"`
	Back   float64 `mapstructure:"back" toml:"back"`
	Margin float64 `mapstructure:"margin" toml:"margin"`
}

type Stars struct {
	PerWidth        float64    `mapstructure:"per_width" toml:"per_width"`
	MinSize         float64    `mapstructure:"min_size" toml:"min_size"`
	MaxSize         float64    `mapstructure:"max_size" toml:"max_size"`
	Drift           float64    `mapstructure:"drift" toml:"drift"`
	Influence       float64    `mapstructure:"influence" toml:"influence"`
	MaxStep         float64    `mapstructure:"max_step" toml:"max_step"`
	SpringFrequency float64    `mapstructure:"spring_frequency" toml:"spring_frequency"`
	SpringDamping   float64    `mapstructure:"spring_damping" toml:"spring_damping"`
	TwinkleMinHz    float64    `mapstructure:"twinkle_min_hz" toml:"twinkle_min_hz"`
	TwinkleMaxHz    float64    `mapstructure:"twinkle_max_hz" toml:"twinkle_max_hz"`
	Dim             render.RGB `mapstructure:"dim" toml:"dim"`
	Bright          render.RGB `mapstructure:"bright" toml:"bright"`
}

type Render struct {
	// Scale is world units per terminal subpixel (half a cell vertically).
	Scale float64 `mapstructure:"scale" toml:"scale"`
	// Color is the terminal colour mode: auto, 256 or truecolor.
	Color string `mapstructure:"color" toml:"color"`
	// Width and Height size snapshot images in pixels.
	Width  int `mapstructure:"width" toml:"width"`
	Height int `mapstructure:"height" toml:"height"`
}

type Audio struct {
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
	Volume  float64 `mapstructure:"volume" toml:"volume"`
}

type Log struct {
	// Level is one of trace, debug, info, warn, error, none.
	Level string `mapstructure:"level" toml:"level"`
	// File overrides the log destination; empty means stderr, or logs/nightwhale.log while the terminal is owned.
	File string `mapstructure:"file" toml:"file"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Address string `mapstructure:"address" toml:"address"`
}

// Default returns the stock configuration
func Default() Config {
	segments := make([]Segment, len(parameter.DefaultWhaleProfile))
	for i, s := range parameter.DefaultWhaleProfile {
		segments[i] = Segment{Kind: s.Kind, Size: s.Size, Front: s.Front, Back: s.Back, Margin: s.Margin}
	}
	return Config{
		Scene: Scene{
			FPS:        parameter.FPS,
			Background: render.RGBNightSky,
		},
		Whale: Whale{
			Speed:          parameter.WhaleSpeed,
			TurnRate:       parameter.WhaleTurnRate,
			NoiseFrequency: parameter.WhaleNoiseFrequency,
			EdgeMargin:     parameter.WhaleEdgeMargin,
			SteerRate:      parameter.WhaleSteerRate,
			Reach:          parameter.SegmentReach,
			TailReach:      parameter.TailSegmentReach,
			TailShrink:     parameter.TailShrink,
			FinSize:        parameter.FinSize,
			Tightness:      parameter.CurveTightness,
			Color:          render.MustHex(parameter.BodyColor),
			Segments:       segments,
		},
		Stars: Stars{
			PerWidth:        parameter.StarsPerWidth,
			MinSize:         parameter.StarMinSize,
			MaxSize:         parameter.StarMaxSize,
			Drift:           parameter.StarDrift,
			Influence:       parameter.StarInfluence,
			MaxStep:         parameter.StarMaxStep,
			SpringFrequency: parameter.StarSpringFrequency,
			SpringDamping:   parameter.StarSpringDamping,
			TwinkleMinHz:    parameter.StarTwinkleMinHz,
			TwinkleMaxHz:    parameter.StarTwinkleMaxHz,
			Dim:             render.MustHex(parameter.StarColorDim),
			Bright:          render.MustHex(parameter.StarColorBright),
		},
		Render: Render{
			Scale:  parameter.TerminalScale,
			Color:  "auto",
			Width:  parameter.SnapshotWidth,
			Height: parameter.SnapshotHeight,
		},
		Audio: Audio{
			Volume: 0.5,
		},
		Log: Log{
			Level: "info",
		},
		Metrics: Metrics{
			Address: "127.0.0.1:9466",
		},
	}
}

// DefineFlags registers command line overrides, names match config keys
func DefineFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("scene.fps", "", parameter.FPS, "frames per second")
	cmd.Flags().Int64P("scene.seed", "", 0, "seed for star layout and whale path, 0 picks one")
	cmd.Flags().Float64P("render.scale", "", parameter.TerminalScale, "world units per terminal subpixel")
	cmd.Flags().StringP("render.color", "", "auto", "color mode: auto, truecolor or 256")
	cmd.Flags().Float64P("stars.per_width", "", parameter.StarsPerWidth, "stars per world unit of viewport width")
	cmd.Flags().BoolP("audio.enabled", "", false, "play the ambient whale song")
	cmd.Flags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error or none")
	cmd.Flags().StringP("log.file", "", "", "optional log file")
	cmd.Flags().BoolP("metrics.enabled", "", false, "enable Prometheus metrics endpoint")
	cmd.Flags().StringP("metrics.address", "", "127.0.0.1:9466", "metrics listen address")
}

var bindPFlags = []string{
	"scene.fps", "scene.seed", "render.scale", "render.color", "render.width", "render.height", "stars.per_width",
	"audio.enabled", "log.level", "log.file", "metrics.enabled", "metrics.address",
}

// Load layers defaults, the optional TOML file at path, then changed flags of cmd
func Load(cmd *cobra.Command, path string) (Config, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))

	defaults, err := toml.Marshal(Default())
	if err != nil {
		return Config{}, fmt.Errorf("error encoding defaults: %w", err)
	}
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("error reading defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if cmd != nil {
		for _, name := range bindPFlags {
			if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
				_ = v.BindPFlag(name, f)
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

var logLevels = map[string]struct{}{
	"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "none": {},
}

// Validate rejects configs the runtime cannot start with
// Geometry values are deliberately not range-checked
func (c Config) Validate() error {
	if c.Scene.FPS <= 0 {
		return fmt.Errorf("%w: scene.fps must be positive, got %d", ErrInvalid, c.Scene.FPS)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%w: render.scale must be positive, got %g", ErrInvalid, c.Render.Scale)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size must be positive, got %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if _, err := termcanvas.ParseColorMode(c.Render.Color); err != nil {
		return fmt.Errorf("%w: render.color: %v", ErrInvalid, err)
	}
	if len(c.Whale.Segments) == 0 {
		return fmt.Errorf("%w: whale.segments is empty", ErrInvalid)
	}
	fins := 0
	for i, s := range c.Whale.Segments {
		kind, err := whale.ParseKind(s.Kind)
		if err != nil {
			return fmt.Errorf("%w: whale.segments[%d]: %v", ErrInvalid, i, err)
		}
		if kind == whale.FinBearing {
			fins++
		}
	}
	if fins != 1 {
		return fmt.Errorf("%w: whale needs exactly one fin segment, got %d", ErrInvalid, fins)
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Encode renders the config as TOML
func (c Config) Encode() ([]byte, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}
	return b, nil
}

// ColorMode is the parsed render.color, auto when invalid
func (c Config) ColorMode() termcanvas.ColorMode {
	m, _ := termcanvas.ParseColorMode(c.Render.Color)
	return m
}

// SceneConfig translates to the scene package's construction config
func (c Config) SceneConfig() scene.Config {
	profile := make([]parameter.SegmentSpec, len(c.Whale.Segments))
	for i, s := range c.Whale.Segments {
		profile[i] = parameter.SegmentSpec{Kind: s.Kind, Size: s.Size, Front: s.Front, Back: s.Back, Margin: s.Margin}
	}
	return scene.Config{
		Background: c.Scene.Background,
		Whale: whale.Config{
			Speed:          c.Whale.Speed,
			TurnRate:       c.Whale.TurnRate,
			NoiseFrequency: c.Whale.NoiseFrequency,
			EdgeMargin:     c.Whale.EdgeMargin,
			SteerRate:      c.Whale.SteerRate,
			Shape: whale.Shape{
				Reach:      c.Whale.Reach,
				TailReach:  c.Whale.TailReach,
				TailShrink: c.Whale.TailShrink,
				FinSize:    c.Whale.FinSize,
			},
			Tightness: c.Whale.Tightness,
			Color:     c.Whale.Color,
			Seed:      c.Scene.Seed,
			Profile:   profile,
		},
		Stars: starfield.Config{
			PerWidth:        c.Stars.PerWidth,
			MinSize:         c.Stars.MinSize,
			MaxSize:         c.Stars.MaxSize,
			Drift:           c.Stars.Drift,
			Influence:       c.Stars.Influence,
			MaxStep:         c.Stars.MaxStep,
			SpringFrequency: c.Stars.SpringFrequency,
			SpringDamping:   c.Stars.SpringDamping,
			TwinkleMinHz:    c.Stars.TwinkleMinHz,
			TwinkleMaxHz:    c.Stars.TwinkleMaxHz,
			Dim:             c.Stars.Dim,
			Bright:          c.Stars.Bright,
			FPS:             c.Scene.FPS,
			Seed:            c.Scene.Seed,
		},
	}
}
