package assemble

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the compiler executable looked up on PATH when no
// explicit binary is configured.
const DefaultBinary = "fontforge"

// compileScript is the FontForge driver. It reads the JSON document named by
// its first argument and generates the font file named by its second. The
// pen protocol mirrors the wire format in encode.go.
const compileScript = `import json
import sys

import fontforge

with open(sys.argv[1]) as f:
    doc = json.load(f)

font = fontforge.font()
font.fontname = doc["name"]
font.familyname = doc["name"]
font.fullname = doc["name"]
font.em = doc["units_per_em"]
font.ascent = doc["ascent"]
font.descent = doc["descent"]

for g in doc["glyphs"]:
    ch = font.createChar(g["codepoint"])
    pen = ch.glyphPen()
    for contour in g.get("contours") or []:
        for seg in contour:
            pts = [tuple(p) for p in seg.get("points", [])]
            op = seg["op"]
            if op == "move":
                pen.moveTo(pts[0])
            elif op == "line":
                pen.lineTo(pts[0])
            elif op == "curve":
                pen.curveTo(pts[0], pts[1], pts[2])
            elif op == "qcurve":
                pen.qCurveTo(pts[0], pts[1])
            elif op == "close":
                pen.closePath()
            else:
                raise ValueError("unknown op %r" % op)
    pen = None
    ch.width = g["advance"]

font.generate(sys.argv[2])
`

// FontForge compiles documents by shelling out to the fontforge binary with
// a generated driver script. Intermediate files live in the work directory;
// the output is written next to outPath and renamed into place only after
// the produced font parses back correctly.
type FontForge struct {
	binary  string
	workDir string
}

// NewFontForge returns a compiler writing its intermediate files under
// workDir. The directory must exist and be writable.
func NewFontForge(workDir string) *FontForge {
	return &FontForge{binary: DefaultBinary, workDir: workDir}
}

// SetBinary overrides the compiler executable.
func (f *FontForge) SetBinary(path string) {
	f.binary = path
}

// Available reports whether the compiler binary can be found.
func (f *FontForge) Available() bool {
	_, err := exec.LookPath(f.binary)
	return err == nil
}

// Compile builds the document into a font file at outPath. On any failure
// nothing is left at outPath; intermediate files are cleaned up either way.
func (f *FontForge) Compile(ctx context.Context, doc *Document, outPath string) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("encode document: %v", err)}
	}

	docPath, err := f.writeWorkFile("font-*.json", data)
	if err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("write document: %v", err)}
	}
	defer os.Remove(docPath)

	scriptPath, err := f.writeWorkFile("compile-*.py", []byte(compileScript))
	if err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("write driver script: %v", err)}
	}
	defer os.Remove(scriptPath)

	// Generate into a temporary file in the target directory so the final
	// rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".font-*"+filepath.Ext(outPath))
	if err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("create output file: %v", err)}
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, f.binary, "-lang=py", "-script", scriptPath, docPath, tmpPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &AssemblyError{
			Reason: fmt.Sprintf("%s: %v (%s)", f.binary, err, strings.TrimSpace(stderr.String())),
		}
	}

	built, err := os.ReadFile(tmpPath)
	if err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("read generated font: %v", err)}
	}
	if err := verifyFont(built, doc); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("move font into place: %v", err)}
	}
	return nil
}

func (f *FontForge) writeWorkFile(pattern string, data []byte) (string, error) {
	file, err := os.CreateTemp(f.workDir, pattern)
	if err != nil {
		return "", err
	}
	_, werr := file.Write(data)
	cerr := file.Close()
	if werr != nil {
		os.Remove(file.Name())
		return "", werr
	}
	if cerr != nil {
		os.Remove(file.Name())
		return "", cerr
	}
	return file.Name(), nil
}

var _ Compiler = (*FontForge)(nil)
