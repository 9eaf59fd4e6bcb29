package trace

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/fontgrid/fontgrid/geom"
)

// ParseSVG extracts outline paths from an SVG document as produced by the
// tracing engine: a single top-level <g> carrying a translate/scale
// transform, containing one or more <path> elements. The group transform is
// applied so the returned subpaths are in the source bitmap's pixel
// coordinate space (y-down).
func ParseSVG(data []byte) (RawPath, error) {
	type svgPath struct {
		D string `xml:"d,attr"`
	}
	type svgGroup struct {
		Transform string    `xml:"transform,attr"`
		Paths     []svgPath `xml:"path"`
	}
	type svgDoc struct {
		Groups []svgGroup `xml:"g"`
		Paths  []svgPath  `xml:"path"`
	}

	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	var out RawPath
	add := func(d string, m geom.Matrix) error {
		path, err := parsePathData(d)
		if err != nil {
			return err
		}
		out = append(out, path.Transform(m).Subpaths()...)
		return nil
	}
	for _, g := range doc.Groups {
		m, err := parseTransform(g.Transform)
		if err != nil {
			return nil, err
		}
		for _, p := range g.Paths {
			if err := add(p.D, m); err != nil {
				return nil, err
			}
		}
	}
	for _, p := range doc.Paths {
		if err := add(p.D, geom.Identity()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseTransform handles the transform list the engine emits: any sequence
// of translate(...) and scale(...) operations.
func parseTransform(s string) (geom.Matrix, error) {
	m := geom.Identity()
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return geom.Matrix{}, fmt.Errorf("parse svg: malformed transform %q", s)
		}
		name := strings.TrimSpace(s[:open])
		args, err := parseNumberList(s[open+1 : end])
		if err != nil {
			return geom.Matrix{}, fmt.Errorf("parse svg: transform %s: %w", name, err)
		}
		var op geom.Matrix
		switch name {
		case "translate":
			switch len(args) {
			case 1:
				op = geom.Translate(args[0], 0)
			case 2:
				op = geom.Translate(args[0], args[1])
			default:
				return geom.Matrix{}, fmt.Errorf("parse svg: translate with %d args", len(args))
			}
		case "scale":
			switch len(args) {
			case 1:
				op = geom.Scale(args[0], args[0])
			case 2:
				op = geom.Scale(args[0], args[1])
			default:
				return geom.Matrix{}, fmt.Errorf("parse svg: scale with %d args", len(args))
			}
		default:
			return geom.Matrix{}, fmt.Errorf("parse svg: unsupported transform %q", name)
		}
		m = m.Multiply(op)
		s = strings.TrimSpace(s[end+1:])
		s = strings.TrimPrefix(s, ",")
		s = strings.TrimSpace(s)
	}
	return m, nil
}

func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parsePathData parses an SVG path data string. The full command set used by
// the tracing engine is supported (M, L, H, V, C, S, Q, T, Z, absolute and
// relative); arcs are not, since the engine never emits them.
func parsePathData(d string) (*geom.Path, error) {
	sc := pathScanner{data: d}
	path := geom.NewPath()

	var (
		cur, start geom.Point
		lastCubic  geom.Point // reflection anchor for S
		lastQuad   geom.Point // reflection anchor for T
		lastCmd    byte
	)
	resetAnchors := func() {
		lastCubic = cur
		lastQuad = cur
	}

	for {
		cmd, ok := sc.command()
		if !ok {
			break
		}
		rel := cmd >= 'a' && cmd <= 'z'
		abs := func(p geom.Point) geom.Point {
			if rel {
				return cur.Add(p)
			}
			return p
		}
		switch upper(cmd) {
		case 'M':
			first := true
			for sc.hasNumber() {
				p, err := sc.point()
				if err != nil {
					return nil, err
				}
				p = abs(p)
				if first {
					path.MoveTo(p.X, p.Y)
					start = p
					first = false
				} else {
					// Subsequent pairs are implicit LineTo.
					path.LineTo(p.X, p.Y)
				}
				cur = p
			}
			if first {
				return nil, fmt.Errorf("parse svg: M without coordinates")
			}
			resetAnchors()
		case 'L':
			for sc.hasNumber() {
				p, err := sc.point()
				if err != nil {
					return nil, err
				}
				p = abs(p)
				path.LineTo(p.X, p.Y)
				cur = p
			}
			resetAnchors()
		case 'H':
			for sc.hasNumber() {
				x, err := sc.number()
				if err != nil {
					return nil, err
				}
				if rel {
					x += cur.X
				}
				path.LineTo(x, cur.Y)
				cur.X = x
			}
			resetAnchors()
		case 'V':
			for sc.hasNumber() {
				y, err := sc.number()
				if err != nil {
					return nil, err
				}
				if rel {
					y += cur.Y
				}
				path.LineTo(cur.X, y)
				cur.Y = y
			}
			resetAnchors()
		case 'C':
			for sc.hasNumber() {
				c1, err := sc.point()
				if err != nil {
					return nil, err
				}
				c2, err := sc.point()
				if err != nil {
					return nil, err
				}
				p, err := sc.point()
				if err != nil {
					return nil, err
				}
				c1, c2, p = abs(c1), abs(c2), abs(p)
				path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
				cur = p
				lastCubic = c2
				lastQuad = cur
			}
		case 'S':
			for sc.hasNumber() {
				c2, err := sc.point()
				if err != nil {
					return nil, err
				}
				p, err := sc.point()
				if err != nil {
					return nil, err
				}
				c2, p = abs(c2), abs(p)
				c1 := cur
				if isCubicCmd(lastCmd) {
					c1 = reflect(lastCubic, cur)
				}
				path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
				cur = p
				lastCubic = c2
				lastQuad = cur
				lastCmd = cmd
			}
		case 'Q':
			for sc.hasNumber() {
				c, err := sc.point()
				if err != nil {
					return nil, err
				}
				p, err := sc.point()
				if err != nil {
					return nil, err
				}
				c, p = abs(c), abs(p)
				path.QuadraticTo(c.X, c.Y, p.X, p.Y)
				cur = p
				lastQuad = c
				lastCubic = cur
			}
		case 'T':
			for sc.hasNumber() {
				p, err := sc.point()
				if err != nil {
					return nil, err
				}
				p = abs(p)
				c := cur
				if isQuadCmd(lastCmd) {
					c = reflect(lastQuad, cur)
				}
				path.QuadraticTo(c.X, c.Y, p.X, p.Y)
				cur = p
				lastQuad = c
				lastCubic = cur
				lastCmd = cmd
			}
		case 'Z':
			path.Close()
			cur = start
			resetAnchors()
		default:
			return nil, fmt.Errorf("parse svg: unsupported path command %q", string(cmd))
		}
		lastCmd = cmd
	}
	return path, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isCubicCmd(c byte) bool {
	u := upper(c)
	return u == 'C' || u == 'S'
}

func isQuadCmd(c byte) bool {
	u := upper(c)
	return u == 'Q' || u == 'T'
}

func reflect(ctrl, about geom.Point) geom.Point {
	return geom.Pt(2*about.X-ctrl.X, 2*about.Y-ctrl.Y)
}

// pathScanner tokenizes SVG path data: single-letter commands and floats
// separated by whitespace or commas.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' {
			s.pos++
			continue
		}
		return
	}
}

// command returns the next command letter, if any.
func (s *pathScanner) command() (byte, bool) {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return 0, false
	}
	c := s.data[s.pos]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		s.pos++
		return c, true
	}
	return 0, false
}

// hasNumber reports whether the next token is a number rather than a command
// letter or end of input.
func (s *pathScanner) hasNumber() bool {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return false
	}
	c := s.data[s.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	begin := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
		s.pos++
	}
	seenDot := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c >= '0' && c <= '9' {
			s.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			s.pos++
			continue
		}
		if (c == 'e' || c == 'E') && s.pos > begin {
			s.pos++
			if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
				s.pos++
			}
			continue
		}
		break
	}
	if s.pos == begin {
		return 0, fmt.Errorf("parse svg: expected number at offset %d", begin)
	}
	v, err := strconv.ParseFloat(s.data[begin:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("parse svg: number %q: %w", s.data[begin:s.pos], err)
	}
	return v, nil
}

func (s *pathScanner) point() (geom.Point, error) {
	x, err := s.number()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}
