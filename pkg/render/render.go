package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pydepviz/pydepviz/pkg/errors"
)

// Directions accepted for the graph's rankdir attribute.
var Directions = map[string]bool{"TB": true, "LR": true, "BT": true, "RL": true}

// engines maps CLI engine names to graphviz layout engines.
var engines = map[string]graphviz.Layout{
	"dot":   graphviz.DOT,
	"neato": graphviz.NEATO,
	"fdp":   graphviz.FDP,
	"twopi": graphviz.TWOPI,
	"circo": graphviz.CIRCO,
}

// formats maps output file extensions to graphviz render formats.
var formats = map[string]graphviz.Format{
	".svg":  graphviz.SVG,
	".png":  graphviz.PNG,
	".jpg":  graphviz.JPG,
	".jpeg": graphviz.JPG,
}

// ValidateDirection checks a rankdir token.
func ValidateDirection(dir string) error {
	if !Directions[dir] {
		return errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %q (must be TB, LR, BT, or RL)", dir)
	}
	return nil
}

// ValidateEngine checks a layout engine name.
func ValidateEngine(engine string) error {
	if _, ok := engines[engine]; !ok {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be dot, neato, fdp, twopi, or circo)", engine)
	}
	return nil
}

// OutputPath normalizes the requested output file name. A name without an
// extension gets ".svg" appended; an unsupported extension is an error.
func OutputPath(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == "":
		return name + ".svg", nil
	case ext == ".dot" || ext == ".gv":
		return name, nil
	default:
		if _, ok := formats[ext]; !ok {
			return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (use svg, png, jpg, dot, or gv)", ext)
		}
		return name, nil
	}
}

// Options configures a render call.
type Options struct {
	Engine  string // layout engine name (dot, neato, fdp, twopi, circo)
	KeepDot bool   // also write the DOT source next to the image
}

// Render lays out the DOT description with the chosen engine and writes the
// image to outPath. The format follows the file extension (.dot/.gv skip the
// layout engine and write the DOT text itself). Output is written to a
// temporary file and renamed into place, so a failed render leaves no
// partial file behind.
func Render(ctx context.Context, dot, outPath string, opts Options) error {
	ext := strings.ToLower(filepath.Ext(outPath))

	if ext == ".dot" || ext == ".gv" {
		return writeAtomic(outPath, []byte(dot))
	}

	layout, ok := engines[opts.Engine]
	if !ok {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q", opts.Engine)
	}
	format, ok := formats[ext]
	if !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", ext)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "initialize graphviz")
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "render with engine %s", opts.Engine)
	}

	if err := writeAtomic(outPath, buf.Bytes()); err != nil {
		return err
	}

	if opts.KeepDot {
		dotPath := strings.TrimSuffix(outPath, ext) + ".gv"
		if err := writeAtomic(dotPath, []byte(dot)); err != nil {
			return err
		}
	}
	return nil
}

// writeAtomic writes data to path via a temporary file in the same
// directory, renaming into place only after the full write succeeds.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pydepviz-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "create output in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return nil
}
