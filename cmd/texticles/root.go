package main

import (
	"fmt"

	"github.com/phanxgames/texticles"
	"github.com/spf13/cobra"
)

// flags shared by every subcommand.
type settingsFlags struct {
	text     string
	density  float64
	size     float64
	speed    float64
	strength float64
	mode     string
	palette  string
	width    int
	height   int
	debug    bool
}

var shared settingsFlags

var rootCmd = &cobra.Command{
	Use:   "texticles",
	Short: "particle swarm that morphs into text",
	RunE:  run,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "open the interactive window",
	RunE:  run,
}

var (
	showFPS    bool
	showCount  bool
	fullscreen bool
)

func init() {
	def := texticles.DefaultSettings()
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&shared.text, "text", "t", def.Text, "text to spell; \\n starts a new line")
	pf.Float64Var(&shared.density, "density", def.Density, "particles per target point (x5)")
	pf.Float64Var(&shared.size, "size", def.Size, "particle radius")
	pf.Float64Var(&shared.speed, "speed", def.Speed, "spring speed multiplier")
	pf.Float64Var(&shared.strength, "strength", def.Strength, "pointer interaction strength")
	pf.StringVar(&shared.mode, "mode", def.Mode.String(), "pointer mode: none|repel|attract|swirl|pulse|gravity|neural|symmetry|chaos")
	pf.StringVar(&shared.palette, "palette", def.Palette.String(), "palette: emoji|monochrome|gradient|fire|ice|neon|pastel|galaxy|forest|ocean|lava")
	pf.IntVar(&shared.width, "width", 960, "surface width")
	pf.IntVar(&shared.height, "height", 600, "surface height")
	pf.BoolVar(&shared.debug, "debug", false, "log rebuild and frame timings to stderr")

	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().BoolVar(&showFPS, "fps", true, "show the FPS overlay")
		c.Flags().BoolVar(&showCount, "count", true, "show the particle-count overlay")
		c.Flags().BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	}
	rootCmd.AddCommand(runCmd)
}

// settings converts the flags into texticles settings. Unknown mode and
// palette names are rejected here rather than silently defaulted.
func (f settingsFlags) settings() (texticles.Settings, error) {
	mode, ok := texticles.ParseMode(f.mode)
	if !ok {
		return texticles.Settings{}, fmt.Errorf("unknown mode %q", f.mode)
	}
	pal, ok := texticles.ParsePalette(f.palette)
	if !ok {
		return texticles.Settings{}, fmt.Errorf("unknown palette %q", f.palette)
	}
	return texticles.Settings{
		Text:     unescapeNewlines(f.text),
		Density:  f.density,
		Size:     f.size,
		Speed:    f.speed,
		Strength: f.strength,
		Mode:     mode,
		Palette:  pal,
	}, nil
}

func (f settingsFlags) newSimulation(opts ...texticles.Option) (*texticles.Simulation, error) {
	s, err := f.settings()
	if err != nil {
		return nil, err
	}
	opts = append(opts, texticles.WithSettings(s), texticles.WithDebug(f.debug))
	return texticles.New(f.width, f.height, opts...)
}

func run(cmd *cobra.Command, args []string) error {
	sim, err := shared.newSimulation()
	if err != nil {
		return err
	}
	return texticles.Run(sim, texticles.RunConfig{
		Title:      "texticles",
		Width:      shared.width,
		Height:     shared.height,
		ShowFPS:    showFPS,
		ShowCount:  showCount,
		Fullscreen: fullscreen,
	})
}
