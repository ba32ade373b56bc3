package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benoitkugler/svgdna/colour"
	"github.com/benoitkugler/svgdna/dna"
	"github.com/benoitkugler/svgdna/geom"
	"github.com/benoitkugler/svgdna/ifs"
	"github.com/benoitkugler/svgdna/mandala"
	"github.com/benoitkugler/svgdna/svgdoc"
	"github.com/benoitkugler/svgdna/svgpdf"
	"github.com/benoitkugler/svgdna/svgraster"
	"go.uber.org/zap"
)

var black = svgdoc.NewPlainColor(colour.Black)

func newMandala(cfg Config) *mandala.Mandala {
	return mandala.New(mandala.Options{Seed: cfg.Seed, Length: cfg.Length, Size: cfg.Size})
}

func drawMandala(cfg Config) *svgdoc.Document {
	doc := svgdoc.NewDocument(cfg.Size, cfg.Size)
	m := newMandala(cfg)
	g := m.Circles(doc, nil, cfg.Colour)
	zap.L().Debug("circle mandala", zap.Int("rings", m.Rings()),
		zap.Int("harmonic", m.Harmonic()), zap.Int("circles", len(g.Children)))
	return doc
}

func drawLotus(cfg Config) *svgdoc.Document {
	doc := svgdoc.NewDocument(cfg.Size, cfg.Size)
	m := newMandala(cfg)
	center := geom.Pt(cfg.Size/2, cfg.Size/2)
	doc.Path(nil, mandala.Wave(center, 2*m.Harmonic(), 8, cfg.Size*0.49, cfg.Size*0.46),
		svgdoc.Style{ID: "wave", Fill: svgdoc.None, Stroke: black, StrokeWidth: 2})
	g := m.Lotus(doc, nil)
	zap.L().Debug("lotus mandala", zap.Int("rings", len(g.Children)))
	return doc
}

func ruleNames() []string {
	out := make([]string, 0, len(ifs.Rules))
	for name := range ifs.Rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// drawIFS substitutes the rule into the sides of a regular polygon
// (or a star polygon).
func drawIFS(cfg Config) (*svgdoc.Document, error) {
	rule, ok := ifs.Rules[cfg.IFS.Rule]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q (expected one of %s)", cfg.IFS.Rule, strings.Join(ruleNames(), ", "))
	}
	circle := geom.Circle{Center: geom.Pt(cfg.Size/2, cfg.Size/2), Radius: cfg.Size / 3}
	source := ifs.CircleToLines(circle, cfg.IFS.Sides, -math.Pi/2, cfg.IFS.Polygram)
	lines, err := ifs.Bounded(source, rule(), cfg.IFS.Depth, cfg.IFS.MaxLines)
	if err != nil {
		return nil, fmt.Errorf("rule %s at depth %d: %w", cfg.IFS.Rule, cfg.IFS.Depth, err)
	}
	zap.L().Debug("ifs", zap.String("rule", cfg.IFS.Rule), zap.Int("lines", len(lines)))

	doc := svgdoc.NewDocument(cfg.Size, cfg.Size)
	doc.Path(nil, svgdoc.PathFromLines(lines), svgdoc.Style{
		ID:          "ifs",
		Fill:        svgdoc.None,
		Stroke:      black,
		StrokeWidth: 1,
		LineJoin:    svgdoc.Round,
	})
	return doc, nil
}

// drawPalette fills a grid with the colours of a palette
// derived from the sequence.
func drawPalette(cfg Config) *svgdoc.Document {
	seq := dna.New(cfg.Seed, cfg.Length, dna.DefaultChromosomeLength, dna.DefaultAlphabetSize)
	prime := colour.FromHLS(seq.Next(), seq.Next(), 0.5)
	palette := colour.NewPalette(seq, prime, cfg.Palette.Degree*math.Pi/180, colour.DefaultVariation)

	rows, cols := cfg.Palette.Rows, cfg.Palette.Columns
	w, h := cfg.Size/float64(cols), cfg.Size/float64(rows)
	doc := svgdoc.NewDocument(cfg.Size, cfg.Size)
	g := doc.Group(nil, svgdoc.Style{ID: "palette", Stroke: svgdoc.None})
	for i, c := range palette.Colours(rows * cols) {
		x, y := float64(i%cols)*w, float64(i/cols)*h
		doc.Rect(g, x, y, w, h, svgdoc.Style{Fill: svgdoc.NewPlainColor(c)})
	}
	return doc
}

// writeDocument saves the document, choosing the format
// from the file extension: .svg, .png or .pdf
func writeDocument(doc *svgdoc.Document, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".svg" {
		return doc.WriteFile(path)
	}

	var write func(w *bufio.Writer) error
	switch ext {
	case ".png":
		write = func(w *bufio.Writer) error { return svgraster.WritePNG(w, doc) }
	case ".pdf":
		write = func(w *bufio.Writer) error { return svgpdf.WritePDF(w, doc) }
	default:
		return fmt.Errorf("unsupported output format %q (expected .svg, .png or .pdf)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
