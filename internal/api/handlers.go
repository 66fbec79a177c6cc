package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/render"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

// Defaults for requests that leave the heuristic or weight out.
const (
	DefaultHeuristic = algo.KindManhattan
	DefaultWeight    = 1
)

// problem is a validated search request.
type problem struct {
	grid        *core.Grid
	start, goal core.Coordinate
	kind        algo.HeuristicKind
	weight      int
}

// outcome is a finished search.
type outcome struct {
	problem
	result  algo.Result
	elapsed time.Duration
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "maps": len(s.maps)})
}

func (s *Server) handleHeuristics(c *gin.Context) {
	names := make([]string, 0, len(algo.Kinds()))
	for _, k := range algo.Kinds() {
		names = append(names, k.String())
	}
	c.JSON(http.StatusOK, gin.H{"heuristics": names, "default": DefaultHeuristic.String()})
}

func (s *Server) handleMaps(c *gin.Context) {
	infos := make([]MapInfo, 0, len(s.maps))
	for _, name := range s.MapNames() {
		m := s.maps[name]
		infos = append(infos, MapInfo{
			Name:   name,
			Width:  m.Grid.Width(),
			Height: m.Grid.Height(),
			Start:  pointOf(m.Start),
			Target: pointOf(m.Target),
			Walls:  m.Grid.CountBlocked(),
		})
	}
	c.IndentedJSON(http.StatusOK, infos)
}

// handleMapPath searches a named map. format=ascii or format=png selects a
// rendered response instead of JSON.
func (s *Server) handleMapPath(c *gin.Context) {
	name := c.Param("name")
	m, ok := s.maps[name]
	if !ok {
		s.fail(c, http.StatusNotFound, fmt.Errorf("map %q not found", name))
		return
	}

	p := problem{grid: m.Grid, start: m.Start, goal: m.Target, kind: DefaultHeuristic, weight: DefaultWeight}
	if h := c.Query("heuristic"); h != "" {
		kind, err := algo.ParseHeuristic(h)
		if err != nil {
			s.failErr(c, fmt.Errorf("%w: %v", core.ErrConfiguration, err))
			return
		}
		p.kind = kind
	}
	if w := c.Query("weight"); w != "" {
		weight, err := strconv.Atoi(w)
		if err != nil || weight < 0 {
			s.failErr(c, fmt.Errorf("%w: weight %q must be a non-negative integer", core.ErrConfiguration, w))
			return
		}
		p.weight = weight
	}

	out, err := s.search(c, p)
	if err != nil {
		s.failErr(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "ascii":
		s.writeASCII(c, out)
	case "png":
		var buf bytes.Buffer
		if err := render.EncodePNG(&buf, out.grid, out.start, out.goal, out.result.Path, 16); err != nil {
			s.fail(c, http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	default:
		c.JSON(http.StatusOK, s.response(c, out))
	}
}

func (s *Server) handlePath(c *gin.Context) {
	p, err := s.decode(c)
	if err != nil {
		s.failErr(c, err)
		return
	}
	out, err := s.search(c, p)
	if err != nil {
		s.failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s.response(c, out))
}

func (s *Server) handlePathASCII(c *gin.Context) {
	p, err := s.decode(c)
	if err != nil {
		s.failErr(c, err)
		return
	}
	out, err := s.search(c, p)
	if err != nil {
		s.failErr(c, err)
		return
	}
	s.writeASCII(c, out)
}

// writeASCII streams the coordinate listing and drawing, compressed when
// the client accepts br or gzip.
func (s *Server) writeASCII(c *gin.Context, out outcome) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	w := brotli.HTTPCompressor(c.Writer, c.Request)
	if err := render.WriteCoords(w, out.result.Path); err != nil {
		s.logger.Printf("[WARN] %s: writing coordinates: %v", requestID(c), err)
	}
	if err := render.DrawASCII(w, out.grid, out.start, out.goal, out.result.Path); err != nil {
		s.logger.Printf("[WARN] %s: writing drawing: %v", requestID(c), err)
	}
	if err := w.Close(); err != nil {
		s.logger.Printf("[WARN] %s: closing compressor: %v", requestID(c), err)
	}
}

// decode binds and validates a PathRequest.
func (s *Server) decode(c *gin.Context) (problem, error) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return problem{}, fmt.Errorf("%w: invalid request body: %v", core.ErrConfiguration, err)
	}

	p := problem{kind: DefaultHeuristic, weight: DefaultWeight}
	if req.Heuristic != "" {
		kind, err := algo.ParseHeuristic(req.Heuristic)
		if err != nil {
			return problem{}, fmt.Errorf("%w: %v", core.ErrConfiguration, err)
		}
		p.kind = kind
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return problem{}, fmt.Errorf("%w: weight %d must be non-negative", core.ErrConfiguration, *req.Weight)
		}
		p.weight = *req.Weight
	}

	if len(req.Tilemap) > 0 {
		m, err := tilemap.Decode(bytes.NewReader(req.Tilemap))
		if err != nil {
			return problem{}, err
		}
		p.grid, p.start, p.goal = m.Grid, m.Start, m.Target
	} else {
		if req.Width > MaxCells || req.Height > MaxCells || len(req.Cells) > MaxCells ||
			(req.Width > 0 && req.Height > MaxCells/req.Width) {
			return problem{}, fmt.Errorf("%w: grid exceeds %d cells", core.ErrConfiguration, MaxCells)
		}
		cells := make([]core.Cell, len(req.Cells))
		for i, v := range req.Cells {
			cells[i] = core.Cell(v)
		}
		grid, err := core.NewGrid(req.Width, req.Height, cells)
		if err != nil {
			return problem{}, err
		}
		if req.Start == nil || req.Goal == nil {
			return problem{}, fmt.Errorf("%w: start and goal are required", core.ErrConfiguration)
		}
		p.grid = grid
	}

	if req.Start != nil {
		p.start = req.Start.coordinate()
	}
	if req.Goal != nil {
		p.goal = req.Goal.coordinate()
	}
	return p, nil
}

func (s *Server) search(c *gin.Context, p problem) (outcome, error) {
	began := time.Now()
	res, err := algo.Search(p.grid, p.start, p.goal, p.kind.Func(), p.weight)
	if err != nil {
		return outcome{}, err
	}
	out := outcome{problem: p, result: res, elapsed: time.Since(began)}
	s.logger.Printf("[INFO] %s: %s w=%d %v -> %v found=%v steps=%d expanded=%d in %v",
		requestID(c), p.kind, p.weight, p.start, p.goal, res.Found, res.Path.Steps(), res.Stats.Expanded, out.elapsed)
	return out, nil
}

func (s *Server) response(c *gin.Context, out outcome) PathResponse {
	path := make([]Point, len(out.result.Path))
	for i, pt := range out.result.Path {
		path[i] = pointOf(pt)
	}
	return PathResponse{
		RequestID: requestID(c),
		Found:     out.result.Found,
		Path:      path,
		Steps:     out.result.Path.Steps(),
		Expanded:  out.result.Stats.Expanded,
		Heuristic: out.kind.String(),
		Weight:    out.weight,
		ElapsedMs: float64(out.elapsed.Microseconds()) / 1000.0,
	}
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidEndpoint):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrConfiguration),
		errors.Is(err, tilemap.ErrParse),
		errors.Is(err, tilemap.ErrTileSize),
		errors.Is(err, tilemap.ErrNoLayerData),
		errors.Is(err, tilemap.ErrMissingStart),
		errors.Is(err, tilemap.ErrMissingTarget):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) failErr(c *gin.Context, err error) {
	s.fail(c, statusFor(err), err)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	s.logger.Printf("[WARN] %s: %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(status, ErrorResponse{RequestID: requestID(c), Error: err.Error()})
}
