// Command libmandel exports the render kernel as a C shared library.
//
//	go build -buildmode=c-shared -o libmandel.so ./cmd/libmandel
//
// The generated header declares:
//
//	void     render_mandelbrot(float center_x, float center_y, uint64_t zoom,
//	                           int32_t width_px, int32_t height_px, int32_t max_iter,
//	                           uint32_t *dst, size_t dst_len);
//	uint32_t mandel_ping(void);
//
// Pixels are ARGB8888 in row-major order from the top-left corner. Invalid
// arguments return without writing.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/joshvictor1024/mandelkernel/pkg/mandel"
)

//export render_mandelbrot
func render_mandelbrot(centerX, centerY C.float, zoom C.uint64_t, widthPx, heightPx, maxIter C.int32_t, dst *C.uint32_t, dstLen C.size_t) {
	mandel.RenderRaw(
		float32(centerX), float32(centerY),
		uint64(zoom),
		int32(widthPx), int32(heightPx), int32(maxIter),
		(*uint32)(unsafe.Pointer(dst)), uintptr(dstLen),
	)
}

//export mandel_ping
func mandel_ping() C.uint32_t {
	return C.uint32_t(mandel.Ping())
}

func main() {}
