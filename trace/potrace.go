package trace

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/fontgrid/fontgrid/bitmap"
	"github.com/fontgrid/fontgrid/config"
)

// DefaultBinary is the tracing engine executable looked up on PATH when no
// explicit binary is configured.
const DefaultBinary = "potrace"

// Potrace traces bitmaps by shelling out to the potrace binary. Each call
// writes the bitmap as a PBM file into the work directory, runs the engine
// with SVG output, and parses the result back into outline paths.
//
// Instances are safe for concurrent use; every call works on its own
// uniquely named files.
type Potrace struct {
	binary   string
	settings config.TraceSettings
	workDir  string
}

// NewPotrace returns an engine adapter writing its intermediate files under
// workDir. The directory must exist and be writable.
func NewPotrace(settings config.TraceSettings, workDir string) *Potrace {
	return &Potrace{
		binary:   DefaultBinary,
		settings: settings,
		workDir:  workDir,
	}
}

// SetBinary overrides the engine executable, e.g. an absolute path.
func (p *Potrace) SetBinary(path string) {
	p.binary = path
}

// Available reports whether the engine binary can be found.
func (p *Potrace) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

// Trace runs the engine on a binarized bitmap and returns cleaned outline
// paths in the bitmap's pixel space. Engine and parse problems are returned
// as *Failure; context cancellation is returned as the context's error.
func (p *Potrace) Trace(ctx context.Context, bm *bitmap.Bitmap) (RawPath, error) {
	in, err := os.CreateTemp(p.workDir, "cell-*.pbm")
	if err != nil {
		return nil, &Failure{Stage: "prepare", Err: err}
	}
	inPath := in.Name()
	defer os.Remove(inPath)

	werr := bm.EncodePBM(in)
	cerr := in.Close()
	if werr != nil {
		return nil, &Failure{Stage: "prepare", Err: werr}
	}
	if cerr != nil {
		return nil, &Failure{Stage: "prepare", Err: cerr}
	}

	outPath := strings.TrimSuffix(inPath, ".pbm") + ".svg"
	defer os.Remove(outPath)

	args := []string{
		"--svg",
		"--output", outPath,
		"--turnpolicy", p.settings.TurnPolicy,
		"--alphamax", formatFloat(p.settings.AlphaMax),
		"--opttolerance", formatFloat(p.settings.OptTolerance),
		inPath,
	}
	cmd := exec.CommandContext(ctx, p.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Failure{
			Stage: "run",
			Err:   fmt.Errorf("%s: %w (%s)", p.binary, err, strings.TrimSpace(stderr.String())),
		}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &Failure{Stage: "run", Err: err}
	}
	raw, err := ParseSVG(data)
	if err != nil {
		return nil, &Failure{Stage: "parse", Err: err}
	}
	return Clean(raw), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ Tracer = (*Potrace)(nil)
