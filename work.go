package main

import (
	"context"
	"time"
	"unsafe"

	"github.com/joshvictor1024/mandelkernel/pkg/mandel"
)

type frameRequest struct {
	req    mandel.Request
	ctx    context.Context
	cancel context.CancelFunc
}

type frameBuffer struct {
	pixels  []uint32 // ARGB8888, row-major
	req     mandel.Request
	elapsed time.Duration
}

// renderFrame fills fb for fr, growing it if the viewport grew
func renderFrame(r *mandel.Renderer, fr *frameRequest, fb *frameBuffer) error {
	n := fr.req.Width * fr.req.Height
	if cap(fb.pixels) < n {
		fb.pixels = make([]uint32, n)
	}
	fb.pixels = fb.pixels[:n]

	start := time.Now()
	if err := r.Render(fr.ctx, fr.req, fb.pixels); err != nil {
		return err
	}
	fb.req = fr.req
	fb.elapsed = time.Since(start)
	return nil
}

// uploadFrame copies fb into locked texture memory, one row at a time since
// the texture pitch may be wider than the frame
func uploadFrame(fb *frameBuffer, textureData []byte, pitch int) {
	w := fb.req.Width
	if w == 0 {
		return
	}
	for yi := 0; yi < fb.req.Height; yi += 1 {
		row := fb.pixels[yi*w : (yi+1)*w]
		src := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(row))), w*4)
		start := yi * pitch
		if start+w*4 > len(textureData) {
			return
		}
		copy(textureData[start:start+w*4], src)
	}
}
