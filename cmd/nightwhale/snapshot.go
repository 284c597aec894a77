package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nightwhale/config"
	"github.com/lixenwraith/nightwhale/logging"
	"github.com/lixenwraith/nightwhale/parameter"
	"github.com/lixenwraith/nightwhale/render/rastercanvas"
	"github.com/lixenwraith/nightwhale/scene"
)

func snapshotCommand(configFile *string) *cobra.Command {
	var (
		frames   int
		out      string
		sequence bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames to PNG without a terminal",
		Long:  `Simulate the scene for a number of frames and write the last one, or every one, as PNG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(cmd, *configFile)
			if err != nil {
				return err
			}
			closeLog, err := logging.Setup(conf.Log, false)
			if err != nil {
				return err
			}
			defer closeLog()

			files, err := renderSnapshot(conf, frames, out, sequence)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	config.DefineFlags(cmd)
	cmd.Flags().Int("render.width", parameter.SnapshotWidth, "image width in pixels")
	cmd.Flags().Int("render.height", parameter.SnapshotHeight, "image height in pixels")
	cmd.Flags().IntVarP(&frames, "frames", "n", 120, "frames to simulate before the snapshot")
	cmd.Flags().StringVarP(&out, "out", "o", "nightwhale.png", "output PNG path")
	cmd.Flags().BoolVar(&sequence, "sequence", false, "write every frame, numbered after the output name")
	return cmd
}

// sequencePath numbers frame i after base: whale.png becomes whale-0007.png
func sequencePath(base string, i int) string {
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(base, ext), i, ext)
}

// renderSnapshot runs frames frames at the configured rate and returns the written files
// With zero frames the initial state is drawn
func renderSnapshot(conf config.Config, frames int, out string, sequence bool) ([]string, error) {
	canvas := rastercanvas.New(conf.Render.Width, conf.Render.Height)
	w, h := canvas.Size()
	sc, err := scene.New(conf.SceneConfig(), w, h)
	if err != nil {
		return nil, err
	}
	dt := 1 / float64(conf.Scene.FPS)

	if frames <= 0 {
		sc.Draw(canvas)
		if err := canvas.SavePNG(out); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	var files []string
	for i := 1; i <= frames; i++ {
		sc.Frame(canvas, dt)
		if sequence {
			path := sequencePath(out, i)
			if err := canvas.SavePNG(path); err != nil {
				return files, err
			}
			files = append(files, path)
		}
	}
	if !sequence {
		if err := canvas.SavePNG(out); err != nil {
			return nil, err
		}
		files = append(files, out)
	}
	head := sc.Whale().Head()
	log.Info().Int("frames", frames).Float64("head_x", head.X).Float64("head_y", head.Y).
		Int("files", len(files)).Msg("snapshot written")
	return files, nil
}
