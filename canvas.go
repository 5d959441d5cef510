package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshvictor1024/mandelkernel/pkg/mandel"
	"github.com/joshvictor1024/mandelkernel/pkg/stats"
	"github.com/veandco/go-sdl2/sdl"
)

// number of frame buffers in flight: one being rendered, one being drawn
const FB_CAP = 2

type canvas struct {
	renderer    *sdl.Renderer
	texture     *sdl.Texture
	w           int
	h           int
	mr          *mandel.Renderer
	fq          *frameQueue
	dq          *drawQueue
	fbs         *frameBufferQueue
	cancelLast  context.CancelFunc
	frameTimes  *stats.FrameTimeAverager
	hud         func() []string
	log         *slog.Logger
	wg          sync.WaitGroup
	hasContents bool
}

func newTexture(r *sdl.Renderer, w, h int) (*sdl.Texture, error) {
	t, err := r.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING, // only textures with TEXTUREACCESS_STREAMING can be locked
		int32(w),
		int32(h),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %dx%d texture: %w", w, h, err)
	}
	return t, nil
}

func newCanvas(r *sdl.Renderer, w, h int, workers int, log *slog.Logger) (*canvas, error) {
	t, err := newTexture(r, w, h)
	if err != nil {
		return nil, err
	}

	frameTimes, err := stats.NewFrameTimeAverager(30)
	if err != nil {
		t.Destroy()
		return nil, err
	}

	buffers := make([]*frameBuffer, 0, FB_CAP)
	for i := 0; i < FB_CAP; i += 1 {
		buffers = append(buffers, &frameBuffer{pixels: make([]uint32, w*h)})
	}

	return &canvas{
		renderer:   r,
		texture:    t,
		w:          w,
		h:          h,
		mr:         mandel.NewRenderer(workers),
		fq:         newFrameQueue(),
		dq:         newDrawQueue(),
		fbs:        newFrameBufferQueue(buffers),
		frameTimes: frameTimes,
		log:        log,
	}, nil
}

func (c *canvas) close() {
	c.log.Debug("closing canvas")
	if c.cancelLast != nil {
		c.cancelLast()
	}
	c.fq.close()
	c.dq.close()
	c.fbs.close()
	c.wg.Wait()
	c.texture.Destroy()
	c.log.Debug("canvas closed")
}

// resize swaps in a texture of the new size. Frames still in flight for the
// old size are dropped by upload; buffers grow on their next render.
func (c *canvas) resize(w, h int) error {
	if w == c.w && h == c.h {
		return nil
	}
	t, err := newTexture(c.renderer, w, h)
	if err != nil {
		return err
	}
	c.texture.Destroy()
	c.texture = t
	c.w, c.h = w, h
	c.hasContents = false
	return nil
}

// start the render worker
func (c *canvas) work() {
	c.wg.Add(1)
	go c.processFrames()
}

func (c *canvas) processFrames() {
	defer c.wg.Done()
	for {
		fr, ok := c.fq.recv()
		if !ok {
			return
		}
		fb, ok := c.fbs.recv()
		if !ok {
			fr.cancel()
			return
		}

		err := renderFrame(c.mr, fr, fb)
		fr.cancel()
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				c.log.Warn("render failed", "err", err)
			}
			if !c.fbs.send(fb) {
				return
			}
			continue
		}

		if !c.dq.send(fb) {
			return
		}
	}
}

// generate queues a render of req, superseding any render still pending
func (c *canvas) generate(req mandel.Request) {
	if c.cancelLast != nil {
		c.cancelLast()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLast = cancel
	c.fq.send(&frameRequest{req: req, ctx: ctx, cancel: cancel})
}

// draw uploads the newest finished frame, if any, and copies the texture to
// the window
func (c *canvas) draw() {
	var latest *frameBuffer
	for {
		canRecv, fb, ok := c.dq.attemptRecv(false)
		if !ok {
			return
		}
		if !canRecv {
			break
		}
		c.frameTimes.Push(fb.elapsed)
		if latest != nil && !c.fbs.send(latest) {
			return
		}
		latest = fb
	}

	if latest != nil {
		if c.hud != nil {
			drawHUD(latest, c.hud())
		}
		c.upload(latest)
		if !c.fbs.send(latest) {
			return
		}
	}

	if c.hasContents {
		c.renderer.Copy(c.texture, nil, nil)
	}
}

func (c *canvas) upload(fb *frameBuffer) {
	if fb.req.Width != c.w || fb.req.Height != c.h {
		c.log.Warn("dropping frame of wrong size", "width", fb.req.Width, "height", fb.req.Height)
		return
	}
	data, pitch, err := c.texture.Lock(nil)
	if err != nil {
		c.log.Error("locking texture", "err", err)
		return
	}
	uploadFrame(fb, data, pitch)
	c.texture.Unlock()
	c.hasContents = true
}
