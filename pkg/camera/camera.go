// Package camera tracks what part of the plane a window shows and turns
// mouse gestures into viewport changes.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/joshvictor1024/mandelkernel/pkg/mandel"
	"github.com/joshvictor1024/mandelkernel/pkg/types"
)

var ErrInvalidCamera = errors.New("camera: invalid parameters")

// Camera is a center on the plane, a zoom in pixels per world unit and the
// pixel size of the view. Zoom always stays within [minZoom, maxZoom].
type Camera struct {
	center      types.Pointf64
	zoom        uint64
	initialZoom uint64
	minZoom     uint64
	maxZoom     uint64
	size        types.Pointi
}

// New returns a camera. maxZoom 0 means no upper bound.
func New(center types.Pointf64, zoom uint64, size types.Pointi, minZoom, maxZoom uint64) (*Camera, error) {
	if maxZoom == 0 {
		maxZoom = math.MaxUint64
	}
	if minZoom == 0 || maxZoom <= minZoom {
		return nil, fmt.Errorf("%w: zoom bounds [%d, %d]", ErrInvalidCamera, minZoom, maxZoom)
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidCamera, size.X, size.Y)
	}
	zoom = clamp(zoom, minZoom, maxZoom)
	return &Camera{
		center:      center,
		zoom:        zoom,
		initialZoom: zoom,
		minZoom:     minZoom,
		maxZoom:     maxZoom,
		size:        size,
	}, nil
}

func (c *Camera) Center() types.Pointf64 { return c.center }
func (c *Camera) Zoom() uint64           { return c.zoom }
func (c *Camera) Size() types.Pointi     { return c.size }

// Magnification is the zoom relative to the starting zoom.
func (c *Camera) Magnification() float64 {
	return float64(c.zoom) / float64(c.initialZoom)
}

// SetSize changes the pixel size. Non-positive sizes are ignored.
func (c *Camera) SetSize(size types.Pointi) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	c.size = size
}

// PanByPixels moves the view as if the content were dragged by delta:
// dragging right moves the center left, dragging down moves it up.
func (c *Camera) PanByPixels(delta types.Pointi) {
	inv := 1 / float64(c.zoom)
	c.center.X -= float64(delta.X) * inv
	c.center.Y += float64(delta.Y) * inv
}

// ZoomAtPixel changes zoom by delta while keeping the world point under
// anchor in place on screen.
func (c *Camera) ZoomAtPixel(anchor types.Pointi, delta int64) {
	before := c.ScreenToWorld(anchor)
	c.zoom = clamp(step(c.zoom, delta), c.minZoom, c.maxZoom)
	after := c.ScreenToWorld(anchor)
	c.center = c.center.Add(before.Sub(after))
}

// ScreenToWorld maps a pixel to the plane the same way the kernel does.
func (c *Camera) ScreenToWorld(p types.Pointi) types.Pointf64 {
	halfW := float64(c.size.X) * 0.5
	halfH := float64(c.size.Y) * 0.5
	z := float64(c.zoom)
	return types.Pointf64{
		X: c.center.X + (float64(p.X)-halfW)/z,
		Y: c.center.Y - (float64(p.Y)-halfH)/z,
	}
}

// Bounds is the visible region of the plane, bottom-left corner first.
func (c *Camera) Bounds() types.Rectf64 {
	z := float64(c.zoom)
	w := float64(c.size.X) / z
	h := float64(c.size.Y) / z
	return types.Rectf64{X: c.center.X - w/2, Y: c.center.Y - h/2, W: w, H: h}
}

// Visible reports whether p is inside Bounds.
func (c *Camera) Visible(p types.Pointf64) bool {
	return c.Bounds().Contains(p)
}

// Viewport returns the render viewport for the current view.
func (c *Camera) Viewport() mandel.Viewport {
	return mandel.Viewport{
		CenterX: float32(c.center.X),
		CenterY: float32(c.center.Y),
		Zoom:    c.zoom,
		Width:   c.size.X,
		Height:  c.size.Y,
	}
}

// step adds delta to v, saturating at 0 and MaxUint64.
func step(v uint64, delta int64) uint64 {
	if delta >= 0 {
		d := uint64(delta)
		if math.MaxUint64-v <= d {
			return math.MaxUint64
		}
		return v + d
	}
	d := uint64(-(delta + 1)) + 1
	if d > v {
		return 0
	}
	return v - d
}

func clamp(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
