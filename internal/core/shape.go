package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/gg"
)

// ErrBadOutline is returned when a state outline cannot be parsed.
var ErrBadOutline = errors.New("bad outline")

// OverlayRadius is the hit and draw radius of marker shapes.
const OverlayRadius = 8.0

// StateShape is one selectable region of the map.
type StateShape struct {
	ID      string `json:"id"`   // postal code, e.g. "AL"
	Name    string `json:"name"` // full name, used for rule lookup and labels
	D       string `json:"d"`    // outline in SVG path syntax
	Anchor  *Pt    `json:"anchor,omitempty"`
	Overlay bool   `json:"overlay,omitempty"`
}

// Start returns the first coordinate of the outline, if it parses.
func (s StateShape) Start() (Pt, bool) {
	sc := outlineScanner{s: s.D}
	sc.skipSep()
	if sc.pos >= len(sc.s) || (sc.s[sc.pos] != 'M' && sc.s[sc.pos] != 'm') {
		return Pt{}, false
	}
	sc.pos++
	x, err := sc.number()
	if err != nil {
		return Pt{}, false
	}
	y, err := sc.number()
	if err != nil {
		return Pt{}, false
	}
	return Pt{x, y}, true
}

// Outline returns the hit outline for the shape. Overlays use a circle
// around their anchor instead of the path data.
func (s StateShape) Outline() (*gg.Path, error) {
	if s.Overlay {
		c, ok := s.center()
		if !ok {
			return nil, fmt.Errorf("%w: overlay %s has no anchor", ErrBadOutline, s.ID)
		}
		p := gg.NewPath()
		p.Circle(c.X, c.Y, OverlayRadius)
		return p, nil
	}
	p, err := ParseOutline(s.D)
	if err != nil {
		return nil, fmt.Errorf("state %s: %w", s.ID, err)
	}
	return p, nil
}

func (s StateShape) center() (Pt, bool) {
	if s.Anchor != nil {
		return *s.Anchor, true
	}
	return s.Start()
}

// ParseOutline converts SVG path data into a gg.Path.
//
// Supported commands are M L H V C S Q T A Z in both absolute and relative
// forms. Open subpaths are closed, matching SVG fill semantics. Elliptical
// arcs are replaced by a straight segment to their end point, which is
// enough for hit testing the flat map artwork.
func ParseOutline(d string) (*gg.Path, error) {
	sc := &outlineScanner{s: d}
	p := gg.NewPath()

	var (
		cur, start, ctrl gg.Point
		cmd, prev        byte
		segments         int
		started, open    bool
	)

	for {
		sc.skipSep()
		if sc.pos >= len(sc.s) {
			break
		}
		c := sc.s[sc.pos]
		switch {
		case isCommand(c):
			cmd = c
			sc.pos++
		case cmd == 0:
			return nil, fmt.Errorf("%w: path must start with a moveto", ErrBadOutline)
		case cmd == 'Z' || cmd == 'z':
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrBadOutline, c, sc.pos)
		case !sc.atNumber():
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrBadOutline, c, sc.pos)
		}
		if !started && cmd != 'M' && cmd != 'm' {
			return nil, fmt.Errorf("%w: path must start with a moveto", ErrBadOutline)
		}

		rel := cmd >= 'a'
		base := gg.Point{}
		if rel {
			base = cur
		}

		kind := cmd | 0x20
		switch kind {
		case 'm':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			pt = pt.Add(base)
			if open {
				p.Close()
			}
			p.MoveTo(pt.X, pt.Y)
			cur, start, started, open = pt, pt, true, false
			// Extra coordinate pairs after a moveto are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'l':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			pt = pt.Add(base)
			p.LineTo(pt.X, pt.Y)
			cur = pt
			segments++
		case 'h':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			cur.X = x + base.X
			p.LineTo(cur.X, cur.Y)
			segments++
		case 'v':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			cur.Y = y + base.Y
			p.LineTo(cur.X, cur.Y)
			segments++
		case 'c':
			pts, err := sc.points(3)
			if err != nil {
				return nil, err
			}
			c1, c2, end := pts[0].Add(base), pts[1].Add(base), pts[2].Add(base)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			ctrl, cur = c2, end
			segments++
		case 's':
			pts, err := sc.points(2)
			if err != nil {
				return nil, err
			}
			c1 := cur
			if prev == 'c' || prev == 's' {
				c1 = reflect(ctrl, cur)
			}
			c2, end := pts[0].Add(base), pts[1].Add(base)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			ctrl, cur = c2, end
			segments++
		case 'q':
			pts, err := sc.points(2)
			if err != nil {
				return nil, err
			}
			c1, end := pts[0].Add(base), pts[1].Add(base)
			p.QuadraticTo(c1.X, c1.Y, end.X, end.Y)
			ctrl, cur = c1, end
			segments++
		case 't':
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			c1 := cur
			if prev == 'q' || prev == 't' {
				c1 = reflect(ctrl, cur)
			}
			end := pt.Add(base)
			p.QuadraticTo(c1.X, c1.Y, end.X, end.Y)
			ctrl, cur = c1, end
			segments++
		case 'a':
			if _, err := sc.points(1); err != nil { // radii
				return nil, err
			}
			if _, err := sc.number(); err != nil { // x-axis rotation
				return nil, err
			}
			if err := sc.flags(2); err != nil {
				return nil, err
			}
			pt, err := sc.point()
			if err != nil {
				return nil, err
			}
			cur = pt.Add(base)
			p.LineTo(cur.X, cur.Y)
			segments++
		case 'z':
			p.Close()
			cur, open = start, false
		}
		if kind != 'm' && kind != 'z' {
			open = true
		}
		prev = kind
	}

	if !started {
		return nil, fmt.Errorf("%w: empty path", ErrBadOutline)
	}
	if segments == 0 {
		return nil, fmt.Errorf("%w: path has no segments", ErrBadOutline)
	}
	if open {
		p.Close()
	}
	return p, nil
}

// Subpaths splits p at every moveto. gg flattens a whole path into one
// point list, so renderers flatten each subpath separately.
func Subpaths(p *gg.Path) []*gg.Path {
	var out []*gg.Path
	var sub *gg.Path
	for _, el := range p.Elements() {
		if _, ok := el.(gg.MoveTo); !ok && sub == nil {
			continue
		}
		switch e := el.(type) {
		case gg.MoveTo:
			sub = gg.NewPath()
			out = append(out, sub)
			sub.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			sub.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			sub.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			sub.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			sub.Close()
		}
	}
	return out
}

// Polygons flattens each subpath of p into a point ring.
func Polygons(p *gg.Path, tolerance float64) [][]Pt {
	var rings [][]Pt
	for _, sub := range Subpaths(p) {
		pts := sub.Flatten(tolerance)
		if len(pts) < 2 {
			continue
		}
		ring := make([]Pt, len(pts))
		for i, q := range pts {
			ring[i] = Pt{q.X, q.Y}
		}
		rings = append(rings, ring)
	}
	return rings
}

func reflect(ctrl, about gg.Point) gg.Point {
	return gg.Point{X: 2*about.X - ctrl.X, Y: 2*about.Y - ctrl.Y}
}

func isCommand(c byte) bool {
	switch c | 0x20 {
	case 'm', 'l', 'h', 'v', 'c', 's', 'q', 't', 'a', 'z':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type outlineScanner struct {
	s   string
	pos int
}

func (sc *outlineScanner) skipSep() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *outlineScanner) atNumber() bool {
	sc.skipSep()
	if sc.pos >= len(sc.s) {
		return false
	}
	c := sc.s[sc.pos]
	return c == '-' || c == '+' || c == '.' || isDigit(c)
}

func (sc *outlineScanner) number() (float64, error) {
	sc.skipSep()
	s, i := sc.s, sc.pos
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && isDigit(s[i]) {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("%w: expected number at offset %d", ErrBadOutline, sc.pos)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[sc.pos:i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadOutline, err)
	}
	sc.pos = i
	return v, nil
}

func (sc *outlineScanner) point() (gg.Point, error) {
	x, err := sc.number()
	if err != nil {
		return gg.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return gg.Point{}, err
	}
	return gg.Point{X: x, Y: y}, nil
}

func (sc *outlineScanner) points(n int) ([]gg.Point, error) {
	pts := make([]gg.Point, n)
	for i := range pts {
		pt, err := sc.point()
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}

// flags reads arc flags, which may be packed without separators ("a1 1 0 01 5 5").
func (sc *outlineScanner) flags(n int) error {
	for range n {
		sc.skipSep()
		if sc.pos >= len(sc.s) || (sc.s[sc.pos] != '0' && sc.s[sc.pos] != '1') {
			return fmt.Errorf("%w: expected arc flag at offset %d", ErrBadOutline, sc.pos)
		}
		sc.pos++
	}
	return nil
}
