// Package mandel renders the Mandelbrot set into caller-owned ARGB8888 buffers.
//
// A render maps every pixel of a Viewport to the complex plane, runs the
// escape-time iteration there and stores the colormap color in row-major
// order. Rows are split into disjoint groups and rendered concurrently; the
// result does not depend on the number of workers.
package mandel

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

var (
	// ErrInvalidViewport reports a non-positive size or a zero zoom.
	ErrInvalidViewport = errors.New("mandel: invalid viewport")
	// ErrNullOutput reports a missing destination buffer.
	ErrNullOutput = errors.New("mandel: nil output buffer")
	// ErrOverflow reports a pixel count that does not fit the platform int.
	ErrOverflow = errors.New("mandel: pixel count overflows")
	// ErrBufferTooSmall reports a destination shorter than Width*Height.
	ErrBufferTooSmall = errors.New("mandel: output buffer too small")
)

// Viewport is the region of the plane to render and its pixel resolution.
//
// Zoom is pixels per world unit, so one pixel spans 1/Zoom.
type Viewport struct {
	CenterX float32
	CenterY float32
	Zoom    uint64
	Width   int
	Height  int
}

// Validate checks size and zoom.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	if v.Zoom == 0 {
		return fmt.Errorf("%w: zoom is 0", ErrInvalidViewport)
	}
	return nil
}

// Pixels returns Width*Height, or ErrOverflow if the product does not fit.
func (v Viewport) Pixels() (int, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	hi, lo := bits.Mul(uint(v.Width), uint(v.Height))
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("%w: %d*%d", ErrOverflow, v.Width, v.Height)
	}
	return int(lo), nil
}

// ToWorld maps pixel (px, py) to the plane. Screen Y grows down, world Y up.
func (v Viewport) ToWorld(px, py int) (x, y float64) {
	m := newMapping(v)
	return m.x(px), m.y(py)
}

// mapping is the per-render pixel to plane transform, in float64 throughout.
type mapping struct {
	cx, cy       float64
	invZoom      float64
	halfW, halfH float64
}

func newMapping(v Viewport) mapping {
	return mapping{
		cx:      float64(v.CenterX),
		cy:      float64(v.CenterY),
		invZoom: 1 / float64(v.Zoom),
		halfW:   float64(v.Width) * 0.5,
		halfH:   float64(v.Height) * 0.5,
	}
}

func (m *mapping) x(px int) float64 {
	return m.cx + (float64(px)-m.halfW)*m.invZoom
}

func (m *mapping) y(py int) float64 {
	return m.cy - (float64(py)-m.halfH)*m.invZoom
}

// Request is one render: a viewport and an iteration ceiling.
type Request struct {
	Viewport
	MaxIterations uint32
}

// Validate checks the request against dst and returns the pixel count to be
// written. Checks run in order: viewport, nil buffer, overflow, capacity.
func (r Request) Validate(dst []uint32) (int, error) {
	return r.check(dst != nil, uint64(len(dst)))
}

func (r Request) check(hasDst bool, capacity uint64) (int, error) {
	if err := r.Viewport.Validate(); err != nil {
		return 0, err
	}
	if !hasDst {
		return 0, ErrNullOutput
	}
	n, err := r.Viewport.Pixels()
	if err != nil {
		return 0, err
	}
	if capacity < uint64(n) {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrBufferTooSmall, capacity, n)
	}
	return n, nil
}
