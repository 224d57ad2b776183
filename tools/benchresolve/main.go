// Package main benchmarks hit resolution and rendering of the bundled map
// at every zoom level and records the results as CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/mapdata"
	"github.com/elektrokombinacija/nexus-checker/internal/snapshot"
	"github.com/elektrokombinacija/nexus-checker/internal/tui"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
)

// BenchmarkResult stores one workload run at one zoom level.
type BenchmarkResult struct {
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash"`
	GoVersion  string  `json:"go_version"`
	OS         string  `json:"os"`
	Arch       string  `json:"arch"`
	Workload   string  `json:"workload"`
	Zoom       float64 `json:"zoom"`
	Ops        int     `json:"ops"`
	Hits       int     `json:"hits"`
	RuntimeMs  float64 `json:"runtime_ms"`
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
}

// WorkloadMetrics holds per-workload aggregated metrics.
type WorkloadMetrics struct {
	Name           string
	TotalRuns      int
	Successes      int
	TotalOps       int
	TotalHits      int
	TotalRuntimeMs float64
}

// Params size the workloads.
type Params struct {
	Seed   int64
	Points int // resolve: random surface points per level
	Cols   int // raster: grid size
	Rows   int
	Width  int // snapshot: image size
	Height int
}

var workloads = []string{"resolve", "raster", "snapshot"}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// runWorkload times one workload with the viewport at zoom, centered on
// the map.
func runWorkload(m *core.Map, hit *interact.HitRegion, levels core.ZoomLevels, name string, zoom float64, p Params) *BenchmarkResult {
	result := &BenchmarkResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Workload:  name,
		Zoom:      zoom,
	}

	vp := interact.NewViewport(m.Space, levels)
	vp.SetZoomAt(zoom, vp.Region().Center())
	region := vp.Region()

	start := time.Now()
	switch name {
	case "resolve":
		rng := rand.New(rand.NewSource(p.Seed))
		surface := m.Space
		for i := 0; i < p.Points; i++ {
			pt := vp.ToLogical(core.Pt{X: rng.Float64() * surface.W, Y: rng.Float64() * surface.H}, surface)
			if _, ok := hit.Resolve(pt); ok {
				result.Hits++
			}
		}
		result.Ops = p.Points
	case "raster":
		g := tui.Rasterize(hit, region, p.Cols, p.Rows)
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				if g.At(col, row) != "" {
					result.Hits++
				}
			}
		}
		result.Ops = p.Cols * p.Rows
	case "snapshot":
		_, err := snapshot.Render(m, snapshot.Options{Width: p.Width, Height: p.Height, Region: region})
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Ops = 1
	default:
		result.Error = "unknown workload"
		return result
	}
	result.RuntimeMs = float64(time.Since(start).Microseconds()) / 1000.0
	result.Success = true
	return result
}

func writeCSV(results []*BenchmarkResult, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"workload", "zoom", "ops", "hits", "runtime_ms", "success", "error",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Workload, fmt.Sprintf("%g", r.Zoom),
			fmt.Sprintf("%d", r.Ops), fmt.Sprintf("%d", r.Hits),
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Success), r.Error,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func printSummary(w io.Writer, results []*BenchmarkResult) {
	metrics := make(map[string]*WorkloadMetrics)
	for _, r := range results {
		m, ok := metrics[r.Workload]
		if !ok {
			m = &WorkloadMetrics{Name: r.Workload}
			metrics[r.Workload] = m
		}
		m.TotalRuns++
		if r.Success {
			m.Successes++
			m.TotalOps += r.Ops
			m.TotalHits += r.Hits
			m.TotalRuntimeMs += r.RuntimeMs
		}
	}

	fmt.Fprintln(w, "\n=== BENCHMARK SUMMARY ===")
	fmt.Fprintf(w, "%-10s %6s %8s %10s %8s %12s %12s\n",
		"Workload", "Runs", "Success", "Ops", "Hit%", "Avg Time(ms)", "us/op")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime, hitPct, perOp := 0.0, 0.0, 0.0
		if m.Successes > 0 {
			avgTime = m.TotalRuntimeMs / float64(m.Successes)
		}
		if m.TotalOps > 0 {
			hitPct = float64(m.TotalHits) / float64(m.TotalOps) * 100
			perOp = m.TotalRuntimeMs * 1000 / float64(m.TotalOps)
		}
		fmt.Fprintf(w, "%-10s %6d %8d %10d %7.1f%% %12.3f %12.3f\n",
			m.Name, m.TotalRuns, m.Successes, m.TotalOps, hitPct, avgTime, perOp)
	}
}

func main() {
	outputFile := flag.String("output", "evidence/resolve_results.csv", "Output CSV file")
	statesPath := flag.String("states", "", "states.json override (default embedded)")
	workloadFilter := flag.String("workload", "", "Run only these workloads (comma-separated)")
	seed := flag.Int64("seed", 1, "Random seed for resolve points")
	points := flag.Int("points", 100000, "Resolve points per zoom level")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	m, err := mapdata.Load(*statesPath, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading map: %v\n", err)
		os.Exit(1)
	}
	hit := interact.NewHitRegion(m.Shapes)
	levels := core.DefaultZoomLevels

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	active := workloads
	if *workloadFilter != "" {
		active = strings.Split(*workloadFilter, ",")
	}

	p := Params{Seed: *seed, Points: *points, Cols: 160, Rows: 48, Width: 959, Height: 593}
	commit := getGitCommit()
	total := len(levels) * len(active)
	fmt.Printf("Running benchmarks: %d zoom levels x %d workloads = %d runs\n", len(levels), len(active), total)

	var results []*BenchmarkResult
	run := 0
	for _, zoom := range levels {
		for _, name := range active {
			run++
			if *verbose {
				fmt.Printf("[%d/%d] %s @ %gx ... ", run, total, name, zoom)
			} else {
				fmt.Printf("\r[%d/%d] Running...", run, total)
			}

			r := runWorkload(m, hit, levels, name, zoom, p)
			r.CommitHash = commit
			results = append(results, r)

			if *verbose {
				if r.Success {
					fmt.Printf("OK (%.2fms, %d/%d hits)\n", r.RuntimeMs, r.Hits, r.Ops)
				} else {
					fmt.Printf("FAILED: %s\n", r.Error)
				}
			}
		}
	}
	fmt.Println()

	f, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(results, f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	f.Close()
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(os.Stdout, results)
}
