// Command gridpathd serves grid searches over HTTP.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/elektrokombinacija/gridpath/internal/api"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address (PORT overrides the port)")
	mapsDir := flag.String("maps", "", "directory of named *.json tile maps")
	origin := flag.String("origin", "*", "Access-Control-Allow-Origin value")
	release := flag.Bool("release", false, "run gin in release mode")
	flag.Parse()

	if port := os.Getenv("PORT"); port != "" {
		*addr = ":" + port
	}
	if *release {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := log.Default()

	var maps map[string]*tilemap.Map
	if *mapsDir != "" {
		var err error
		maps, err = api.LoadMaps(*mapsDir, logger)
		if err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
	}

	server := api.NewServer(maps, api.WithAllowOrigin(*origin), api.WithLogger(logger))
	router := server.Router()

	log.Printf("[INFO] Serving %d named maps on %s", len(server.MapNames()), *addr)
	if err := router.Run(*addr); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
