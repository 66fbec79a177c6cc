// Command gridpathvis opens the interactive search viewer.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
	"github.com/elektrokombinacija/gridpath/internal/vis"
)

func main() {
	mapFile := flag.String("map", "", "tile map JSON file (built-in demo map when empty)")
	heuristic := flag.String("heuristic", algo.KindManhattan.String(), "initial heuristic")
	weight := flag.Int("weight", 1, "initial heuristic weight")
	flag.Parse()

	kind, err := algo.ParseHeuristic(*heuristic)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	var m *tilemap.Map
	if *mapFile != "" {
		m, err = tilemap.Load(*mapFile)
		if err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("gridpath viewer"),
			app.Size(unit.Dp(1200), unit.Dp(850)),
		)

		application := vis.NewApp(m, kind, *weight)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
