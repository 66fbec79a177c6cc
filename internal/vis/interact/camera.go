// Package interact handles pan and zoom of the grid view.
package interact

import (
	"math"

	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// CellSize is the edge length of one grid cell in world units.
const CellSize = 32.0

const (
	minZoom    = 0.05
	maxZoom    = 8
	zoomFactor = 1.1
)

// Camera maps world coordinates to the screen.
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with no pan and unit zoom.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// CellOrigin returns the screen position of a cell's top-left corner.
func (c *Camera) CellOrigin(cell core.Coordinate) (float32, float32) {
	return c.WorldToScreen(float64(cell.X)*CellSize, float64(cell.Y)*CellSize)
}

// CellCenter returns the screen position of a cell's center.
func (c *Camera) CellCenter(cell core.Coordinate) (float32, float32) {
	return c.WorldToScreen((float64(cell.X)+0.5)*CellSize, (float64(cell.Y)+0.5)*CellSize)
}

// CellAt returns the grid cell under a screen position. The result may
// lie outside the grid.
func (c *Camera) CellAt(screenX, screenY float32) core.Coordinate {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	return core.Coordinate{
		X: int(math.Floor(wx / CellSize)),
		Y: int(math.Floor(wy / CellSize)),
	}
}

// CellScreenSize returns the on-screen edge length of a cell.
func (c *Camera) CellScreenSize() float32 {
	return float32(CellSize) * c.Zoom
}

// HandleEvent pans on secondary or middle drag and zooms on scroll.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		switch {
		case ev.Scroll.Y > 0:
			c.ZoomBy(1/zoomFactor, ev.Position.X, ev.Position.Y)
		case ev.Scroll.Y < 0:
			c.ZoomBy(zoomFactor, ev.Position.X, ev.Position.Y)
		}
	}
}

// Pan moves the view by a screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy scales the view, keeping the world point under (centerX,
// centerY) fixed on screen.
func (c *Camera) ZoomBy(factor, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)
	c.Zoom = clampZoom(c.Zoom * factor)
	sx, sy := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - sx
	c.OffsetY += centerY - sy
}

// FitGrid zooms and centers so a width x height grid fills the screen
// with margin pixels to spare on every side.
func (c *Camera) FitGrid(width, height int, screenWidth, screenHeight, margin float32) {
	worldW := float32(width) * CellSize
	worldH := float32(height) * CellSize
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoom := (screenWidth - 2*margin) / worldW
	if z := (screenHeight - 2*margin) / worldH; z < zoom {
		zoom = z
	}
	c.Zoom = clampZoom(zoom)
	c.OffsetX = (screenWidth - worldW*c.Zoom) / 2
	c.OffsetY = (screenHeight - worldH*c.Zoom) / 2
}

func clampZoom(z float32) float32 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
