// Package main extracts state outlines from a US map SVG into the
// states.json document the checker loads.
//
// Every <path class=".." d=".."><title>Name</title></path> becomes a state;
// the class names its postal code. A <circle> with a title becomes an
// overlay marker anchored at its center.
package main

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/mapdata"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/logging"
)

var postal = map[string]bool{}

func init() {
	for _, c := range strings.Fields(`AL AK AZ AR CA CO CT DE FL GA HI ID IL IN IA KS KY LA ME MD
		MA MI MN MS MO MT NE NV NH NJ NM NY NC ND OH OK OR PA RI SC
		SD TN TX UT VT VA WA WV WI WY DC`) {
		postal[c] = true
	}
}

type svgDoc struct {
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Paths   []svgPath `xml:",any"`
}

type svgPath struct {
	XMLName xml.Name
	Class   string    `xml:"class,attr"`
	D       string    `xml:"d,attr"`
	CX      string    `xml:"cx,attr"`
	CY      string    `xml:"cy,attr"`
	Title   string    `xml:"title"`
	Nested  []svgPath `xml:",any"`
}

// stateID maps an SVG class attribute to a postal code. A class token that
// is already a postal code wins; otherwise the first token is upper-cased.
func stateID(class string) string {
	tokens := strings.Fields(class)
	for _, t := range tokens {
		if u := strings.ToUpper(t); postal[u] {
			return u
		}
	}
	if len(tokens) == 0 {
		return ""
	}
	return strings.ToUpper(tokens[0])
}

// Extract reads an SVG and returns the states document.
func Extract(r io.Reader) (*mapdata.Document, error) {
	var doc svgDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	out := &mapdata.Document{}
	out.Width, out.Height = size(doc)

	seen := make(map[string]bool)
	var walk func([]svgPath) error
	walk = func(els []svgPath) error {
		for _, el := range els {
			if len(el.Nested) > 0 && el.XMLName.Local == "g" {
				if err := walk(el.Nested); err != nil {
					return err
				}
				continue
			}
			shape, ok, err := toShape(el)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if seen[shape.ID] {
				slog.Warn("duplicate state, keeping the first", "id", shape.ID)
				continue
			}
			seen[shape.ID] = true
			out.States = append(out.States, shape)
		}
		return nil
	}
	if err := walk(doc.Paths); err != nil {
		return nil, err
	}
	if len(out.States) == 0 {
		return nil, errors.New("no titled state paths found")
	}
	return out, nil
}

func toShape(el svgPath) (core.StateShape, bool, error) {
	title := strings.TrimSpace(el.Title)
	id := stateID(el.Class)
	if title == "" || id == "" {
		return core.StateShape{}, false, nil
	}
	switch el.XMLName.Local {
	case "path":
		if _, err := core.ParseOutline(el.D); err != nil {
			return core.StateShape{}, false, fmt.Errorf("%s: %w", id, err)
		}
		return core.StateShape{ID: id, Name: title, D: el.D}, true, nil
	case "circle":
		x, errX := strconv.ParseFloat(el.CX, 64)
		y, errY := strconv.ParseFloat(el.CY, 64)
		if errX != nil || errY != nil {
			return core.StateShape{}, false, fmt.Errorf("%s: circle needs numeric cx and cy", id)
		}
		return core.StateShape{
			ID:      id,
			Name:    title,
			D:       fmt.Sprintf("M %g,%g", x, y),
			Anchor:  &core.Pt{X: x, Y: y},
			Overlay: true,
		}, true, nil
	}
	return core.StateShape{}, false, nil
}

// size prefers the viewBox, then width and height, then the bundled map.
func size(doc svgDoc) (float64, float64) {
	if f := strings.Fields(strings.ReplaceAll(doc.ViewBox, ",", " ")); len(f) == 4 {
		w, errW := strconv.ParseFloat(f[2], 64)
		h, errH := strconv.ParseFloat(f[3], 64)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	w, errW := strconv.ParseFloat(strings.TrimSuffix(doc.Width, "px"), 64)
	h, errH := strconv.ParseFloat(strings.TrimSuffix(doc.Height, "px"), 64)
	if errW == nil && errH == nil && w > 0 && h > 0 {
		return w, h
	}
	return core.MapSpace.W, core.MapSpace.H
}

func main() {
	in := flag.String("in", "", "input SVG (default stdin)")
	out := flag.String("out", "", "output JSON (default stdout)")
	flag.Parse()

	logging.Setup("info", "text")

	r := io.Reader(os.Stdin)
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			slog.Error("open input", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	doc, err := Extract(r)
	if err != nil {
		slog.Error("extract", "error", err)
		os.Exit(1)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("create output", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		slog.Error("write", "error", err)
		os.Exit(1)
	}
	slog.Info("extracted states", "count", len(doc.States), "width", doc.Width, "height", doc.Height)
}
