// Command gridpath loads a tile map, finds a path between its start and
// target markers and writes the coordinate listing and an ASCII drawing.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/render"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

const defaultMap = "take_home_project.json"

type config struct {
	mapFile   string
	heuristic algo.HeuristicKind
	weight    int
	coords    string
	visual    string
	png       string
	scale     int
	compare   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.New(os.Stderr, "", 0).Fatalf("[FATAL] %v", err)
	}
}

func parseFlags(args []string) (config, error) {
	fs := flag.NewFlagSet("gridpath", flag.ContinueOnError)
	var cfg config
	var heuristic string
	fs.StringVar(&cfg.mapFile, "map", "", "tile map JSON file (prompted for when empty)")
	fs.StringVar(&heuristic, "heuristic", algo.KindEuclidean.String(), "heuristic: manhattan, euclidean, euclidean-squared or dijkstra")
	fs.IntVar(&cfg.weight, "weight", 10, "heuristic weight")
	fs.StringVar(&cfg.coords, "coords", "PathOutput.txt", "coordinate listing output file (empty to skip)")
	fs.StringVar(&cfg.visual, "visual", "PathVisual.txt", "ASCII drawing output file (empty to skip)")
	fs.StringVar(&cfg.png, "png", "", "optional PNG output file")
	fs.IntVar(&cfg.scale, "scale", 16, "PNG pixels per cell")
	fs.BoolVar(&cfg.compare, "compare", false, "also run every heuristic and print a comparison")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	kind, err := algo.ParseHeuristic(heuristic)
	if err != nil {
		return cfg, err
	}
	cfg.heuristic = kind
	if cfg.weight < 0 {
		return cfg, fmt.Errorf("weight %d must be non-negative", cfg.weight)
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger := log.New(stdout, "", 0)

	if cfg.mapFile == "" {
		cfg.mapFile = promptMapFile(stdin, stdout)
	}

	m, err := tilemap.Load(cfg.mapFile)
	if err != nil {
		return err
	}
	logger.Printf("Opened file: %s", cfg.mapFile)
	logger.Printf("Tile Size: %d x %d", m.TileWidth, m.TileHeight)
	logger.Printf("Start position found at %v (index %d)", m.Start, m.Grid.ToIndex(m.Start))
	logger.Printf("Target position found at %v (index %d)", m.Target, m.Grid.ToIndex(m.Target))

	began := time.Now()
	res, err := algo.Search(m.Grid, m.Start, m.Target, cfg.heuristic.Func(), cfg.weight)
	if err != nil {
		return err
	}
	if !res.Found {
		logger.Printf("[WARN] No path from %v to %v", m.Start, m.Target)
	}
	logger.Printf("Search: %s w=%d, %d cells expanded in %v", cfg.heuristic, cfg.weight, res.Stats.Expanded, time.Since(began))

	if err := writeBoth(stdout, cfg.coords, logger, func(w io.Writer) error {
		return render.WriteCoords(w, res.Path)
	}); err != nil {
		return err
	}
	if err := writeBoth(stdout, cfg.visual, logger, func(w io.Writer) error {
		return render.DrawASCII(w, m.Grid, m.Start, m.Target, res.Path)
	}); err != nil {
		return err
	}

	if cfg.png != "" {
		if err := render.SavePNG(cfg.png, m.Grid, m.Start, m.Target, res.Path, cfg.scale); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.png, err)
		}
		logger.Printf("Wrote %s", cfg.png)
	}

	if cfg.compare {
		compareHeuristics(stdout, m, cfg.weight)
	}
	return nil
}

// promptMapFile asks for the map file name, falling back to the default
// on an empty line or end of input.
func promptMapFile(stdin io.Reader, stdout io.Writer) string {
	fmt.Fprintf(stdout, "Enter the JSON input filename (press ENTER for default %s): ", defaultMap)
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	fmt.Fprintln(stdout)
	if name := strings.TrimSpace(line); name != "" {
		return name
	}
	return defaultMap
}

// writeBoth runs emit against stdout and, when path is set, the file at
// path. A file that cannot be created is skipped with a warning.
func writeBoth(stdout io.Writer, path string, logger *log.Logger, emit func(io.Writer) error) error {
	if path == "" {
		return emit(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Printf("[WARN] Cannot create %s: %v", path, err)
		return emit(stdout)
	}
	if err := emit(io.MultiWriter(stdout, f)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func compareHeuristics(w io.Writer, m *tilemap.Map, weight int) {
	fmt.Fprintf(w, "\n--- Heuristic comparison (weight %d) ---\n", weight)
	for _, kind := range algo.Kinds() {
		start := time.Now()
		res, err := algo.Search(m.Grid, m.Start, m.Target, kind.Func(), weight)
		elapsed := time.Since(start)

		fmt.Fprintf(w, "  %-18s ", kind.String()+":")
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "Found=%v, Steps=%d, Expanded=%d, Pushed=%d, Time=%v\n",
			res.Found, res.Path.Steps(), res.Stats.Expanded, res.Stats.Pushed, elapsed)
	}
}

