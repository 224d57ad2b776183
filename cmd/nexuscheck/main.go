// Command nexuscheck inspects stored nexus answers from the command line.
//
// Usage:
//
//	nexuscheck [-namespace ns] summary [-json]
//	nexuscheck [-namespace ns] resolve X,Y
//	nexuscheck [-namespace ns] snapshot -o map.png [-w 959] [-h 593] [-zoom 2 -at X,Y] [-font path]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/elektrokombinacija/nexus-checker/internal/answers"
	"github.com/elektrokombinacija/nexus-checker/internal/bootstrap"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/logging"
	"github.com/elektrokombinacija/nexus-checker/internal/snapshot"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
)

var errUsage = errors.New("usage: nexuscheck [-namespace ns] summary|resolve|snapshot [flags]")

func main() {
	namespace := flag.String("namespace", "", "answer namespace (default store.namespace)")
	flag.Parse()

	cfg, err := config.Load("nexuscheck")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ns := cfg.Store.Namespace
	if *namespace != "" {
		ns = *namespace
	}

	ctx := context.Background()
	env, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	err = run(ctx, env, ns, flag.Args(), os.Stdout)
	env.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, env *bootstrap.Env, ns string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "summary":
		return summary(ctx, env, ns, args[1:], out)
	case "resolve":
		return resolve(env, args[1:], out)
	case "snapshot":
		return snap(ctx, env, ns, args[1:], out)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func rows(ctx context.Context, env *bootstrap.Env, ns string) []core.SummaryRow {
	book := answers.LoadOrEmpty(ctx, env.Store, ns)
	ids := make([]string, 0, len(book))
	for id := range book {
		ids = append(ids, id)
	}
	return env.Map.Summary(book, ids)
}

func summary(ctx context.Context, env *bootstrap.Env, ns string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rs := rows(ctx, env, ns)
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}
	if len(rs) == 0 {
		_, err := fmt.Fprintf(out, "no answers in %s\n", ns)
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tNAME\tSTATUS\tTHRESHOLD")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Label, r.Threshold)
	}
	return tw.Flush()
}

func parsePoint(s string) (core.Pt, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Pt{}, fmt.Errorf("point %q must be X,Y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return core.Pt{}, fmt.Errorf("point %q must be two numbers", s)
	}
	return core.Pt{X: x, Y: y}, nil
}

func resolve(env *bootstrap.Env, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("resolve takes one logical point X,Y")
	}
	p, err := parsePoint(args[0])
	if err != nil {
		return err
	}
	s, ok := interact.NewHitRegion(env.Map.Shapes).Resolve(p)
	if !ok {
		_, err := fmt.Fprintf(out, "%g,%g: no state\n", p.X, p.Y)
		return err
	}
	_, err = fmt.Fprintf(out, "%g,%g: %s %s\n", p.X, p.Y, s.ID, s.Name)
	return err
}

func snap(ctx context.Context, env *bootstrap.Env, ns string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	path := fs.String("o", "", "output PNG path (- for stdout)")
	w := fs.Int("w", int(env.Map.Space.W), "image width")
	h := fs.Int("h", int(env.Map.Space.H), "image height")
	zoom := fs.Float64("zoom", 0, "zoom level (0 shows the whole map)")
	at := fs.String("at", "", "logical focal point X,Y for -zoom")
	font := fs.String("font", "", "TrueType font for labels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("snapshot needs -o")
	}

	vp := interact.NewViewport(env.Map.Space, env.Config.Viewport.Levels())
	if *zoom > 0 {
		focal := vp.Region().Center()
		if *at != "" {
			p, err := parsePoint(*at)
			if err != nil {
				return err
			}
			focal = p
		}
		vp.SetZoomAt(*zoom, focal)
	}

	opts := snapshot.Options{
		Width:    *w,
		Height:   *h,
		Region:   vp.Region(),
		Statuses: snapshot.Statuses(rows(ctx, env, ns)),
		FontPath: *font,
	}

	if *path == "-" {
		return snapshot.RenderPNG(out, env.Map, opts)
	}
	f, err := os.Create(*path)
	if err != nil {
		return err
	}
	if err := snapshot.RenderPNG(f, env.Map, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
