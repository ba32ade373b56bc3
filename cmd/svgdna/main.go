// Command svgdna draws generative patterns (mandalas, lotus,
// IFS fractals, palettes) to SVG, PNG or PDF files.
package main

import (
	"os"

	"github.com/benoitkugler/svgdna/svgdoc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configFile string
	verbose    bool
	out        string
	cfg        Config
}

func newRootCommand() *cobra.Command {
	opts := options{cfg: DefaultConfig()}
	var undoLogger func()

	root := &cobra.Command{
		Use:           "svgdna",
		Short:         "Draw generative patterns driven by a deterministic sequence",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			undoLogger = setupLogger(opts.verbose)
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
			if undoLogger != nil {
				undoLogger()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "TOML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")
	flags.StringVarP(&opts.out, "out", "o", "out.svg", "output file (.svg, .png or .pdf)")
	flags.Int64Var(&opts.cfg.Seed, "seed", opts.cfg.Seed, "seed of the sequence (0 selects the default seed)")
	flags.IntVar(&opts.cfg.Length, "length", opts.cfg.Length, "length of the sequence")
	flags.Float64Var(&opts.cfg.Size, "size", opts.cfg.Size, "canvas size")

	mandalaCmd := &cobra.Command{
		Use:   "mandala",
		Short: "Rings of circles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.write(drawMandala(opts.cfg))
		},
	}
	mandalaCmd.Flags().BoolVar(&opts.cfg.Colour, "colour", opts.cfg.Colour, "draw the filled circles below the outlines")

	lotusCmd := &cobra.Command{
		Use:   "lotus",
		Short: "Concentric petalled rings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.write(drawLotus(opts.cfg))
		},
	}

	ifsCmd := &cobra.Command{
		Use:   "ifs",
		Short: "Fractal curve built by line substitution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := drawIFS(opts.cfg)
			if err != nil {
				return err
			}
			return opts.write(doc)
		},
	}
	ifsFlags := ifsCmd.Flags()
	ifsFlags.StringVar(&opts.cfg.IFS.Rule, "rule", opts.cfg.IFS.Rule, "substitution rule")
	ifsFlags.IntVar(&opts.cfg.IFS.Depth, "depth", opts.cfg.IFS.Depth, "number of substitutions minus one")
	ifsFlags.IntVar(&opts.cfg.IFS.Sides, "sides", opts.cfg.IFS.Sides, "sides of the source polygon")
	ifsFlags.IntVar(&opts.cfg.IFS.Polygram, "polygram", opts.cfg.IFS.Polygram, "vertex step of the source polygon")

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "Grid of palette colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.write(drawPalette(opts.cfg))
		},
	}
	paletteFlags := paletteCmd.Flags()
	paletteFlags.IntVar(&opts.cfg.Palette.Rows, "rows", opts.cfg.Palette.Rows, "rows of the grid")
	paletteFlags.IntVar(&opts.cfg.Palette.Columns, "columns", opts.cfg.Palette.Columns, "columns of the grid")
	paletteFlags.Float64Var(&opts.cfg.Palette.Degree, "degree", opts.cfg.Palette.Degree, "angle between the triad hues, in degrees")

	root.AddCommand(mandalaCmd, lotusCmd, ifsCmd, paletteCmd)
	return root
}

// load reads the configuration file, if any, then applies
// the flags explicitly set on the command line.
func (opts *options) load(cmd *cobra.Command) error {
	if opts.configFile == "" {
		return opts.cfg.validate()
	}
	fromFlags := opts.cfg
	cfg, err := LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("seed", func() { cfg.Seed = fromFlags.Seed })
	set("length", func() { cfg.Length = fromFlags.Length })
	set("size", func() { cfg.Size = fromFlags.Size })
	set("colour", func() { cfg.Colour = fromFlags.Colour })
	set("rule", func() { cfg.IFS.Rule = fromFlags.IFS.Rule })
	set("depth", func() { cfg.IFS.Depth = fromFlags.IFS.Depth })
	set("sides", func() { cfg.IFS.Sides = fromFlags.IFS.Sides })
	set("polygram", func() { cfg.IFS.Polygram = fromFlags.IFS.Polygram })
	set("rows", func() { cfg.Palette.Rows = fromFlags.Palette.Rows })
	set("columns", func() { cfg.Palette.Columns = fromFlags.Palette.Columns })
	set("degree", func() { cfg.Palette.Degree = fromFlags.Palette.Degree })
	opts.cfg = cfg
	zap.L().Debug("configuration loaded", zap.String("file", opts.configFile), zap.Any("config", cfg))
	return cfg.validate()
}

func (opts *options) write(doc *svgdoc.Document) error {
	if err := writeDocument(doc, opts.out); err != nil {
		return err
	}
	zap.L().Info("document written", zap.String("file", opts.out))
	return nil
}

// setupLogger installs the global logger and returns the function
// restoring the previous one.
func setupLogger(verbose bool) func() {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		logger = zap.NewNop()
	}
	return zap.ReplaceGlobals(logger)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		zap.L().Error("svgdna failed", zap.Error(err))
		os.Stderr.WriteString("svgdna: " + err.Error() + "\n")
		os.Exit(1)
	}
}
