package mandel

import (
	"context"
	"unsafe"
)

// pingValue is what Ping returns; foreign callers compare against it after
// loading the library.
const pingValue = 6

// Ping is a liveness probe for link and load checks.
func Ping() uint32 {
	return pingValue
}

// RenderMandelbrot is the boundary form of Render for callers that cannot
// receive errors. Invalid input returns without writing anything. maxIter is
// used by absolute value. Work is spread over GOMAXPROCS workers.
func RenderMandelbrot(centerX, centerY float32, zoom uint64, widthPx, heightPx, maxIter int32, dst []uint32) {
	req := boundaryRequest(centerX, centerY, zoom, widthPx, heightPx, maxIter)
	_ = NewRenderer(0).Render(context.Background(), req, dst)
}

// RenderRaw is RenderMandelbrot over raw memory: dst must point at dstLen
// contiguous uint32 slots that stay valid for the duration of the call. A
// slice view of exactly Width*Height slots is built only after the pointer
// and capacity checks pass, and is dropped on return.
func RenderRaw(centerX, centerY float32, zoom uint64, widthPx, heightPx, maxIter int32, dst *uint32, dstLen uintptr) {
	req := boundaryRequest(centerX, centerY, zoom, widthPx, heightPx, maxIter)
	n, err := req.check(dst != nil, uint64(dstLen))
	if err != nil {
		Logger().Debug("mandel: raw request rejected", "err", err)
		return
	}
	view := unsafe.Slice(dst, n)
	_ = NewRenderer(0).Render(context.Background(), req, view)
}

func boundaryRequest(centerX, centerY float32, zoom uint64, widthPx, heightPx, maxIter int32) Request {
	return Request{
		Viewport: Viewport{
			CenterX: centerX,
			CenterY: centerY,
			Zoom:    zoom,
			Width:   int(widthPx),
			Height:  int(heightPx),
		},
		MaxIterations: unsignedAbs(maxIter),
	}
}

func unsignedAbs(v int32) uint32 {
	if v < 0 {
		//nolint:gosec // G115: -int64(MinInt32) is 1<<31, which fits
		return uint32(-int64(v))
	}
	return uint32(v)
}
