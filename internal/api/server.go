// Package api exposes the grid search engine over HTTP.
package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

// MaxCells bounds the size of grids accepted in requests.
const MaxCells = 1 << 20

// Server serves search requests against inline grids and a fixed set of
// named maps. Named maps are read-only and shared between requests.
type Server struct {
	maps        map[string]*tilemap.Map
	allowOrigin string
	logger      *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAllowOrigin sets the Access-Control-Allow-Origin value.
func WithAllowOrigin(origin string) Option {
	return func(s *Server) { s.allowOrigin = origin }
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a server for the given named maps. maps may be nil.
func NewServer(maps map[string]*tilemap.Map, opts ...Option) *Server {
	if maps == nil {
		maps = make(map[string]*tilemap.Map)
	}
	s := &Server{
		maps:        maps,
		allowOrigin: "*",
		logger:      log.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// MapNames returns the named maps in sorted order.
func (s *Server) MapNames() []string {
	names := make([]string, 0, len(s.maps))
	for name := range s.maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Router builds the gin engine with all routes and middleware installed.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID(), CORSMiddleware(s.allowOrigin))

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	api.GET("/heuristics", s.handleHeuristics)
	api.GET("/maps", s.handleMaps)
	api.GET("/maps/:name/path", s.handleMapPath)
	api.POST("/path", s.handlePath)
	api.POST("/path/ascii", s.handlePathASCII)

	return router
}

// LoadMaps loads every *.json tile map in dir, keyed by file name without
// extension. Files that fail to load are skipped with a warning.
func LoadMaps(dir string, logger *log.Logger) (map[string]*tilemap.Map, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing maps in %s: %w", dir, err)
	}

	maps := make(map[string]*tilemap.Map, len(files))
	for _, f := range files {
		m, err := tilemap.Load(f)
		if err != nil {
			logger.Printf("[WARN] Skipping map %s: %v", f, err)
			continue
		}
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		maps[name] = m
		logger.Printf("[INFO] Loaded map %q (%d x %d)", name, m.TileWidth, m.TileHeight)
	}
	return maps, nil
}
