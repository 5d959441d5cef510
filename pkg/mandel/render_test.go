package mandel

import (
	"context"
	"errors"
	"math/rand"
	"unsafe"

	"github.com/joshvictor1024/mandelkernel/pkg/colormap"

	gc "gopkg.in/check.v1"
)

const untouched uint32 = 0xdeadbeef

func filled(n int) []uint32 {
	buf := make([]uint32, n)
	for i := range buf {
		buf[i] = untouched
	}
	return buf
}

func checkUntouched(c *gc.C, buf []uint32) {
	for i, v := range buf {
		if v != untouched {
			c.Fatalf("buf[%d] = %#08x, want untouched", i, v)
		}
	}
}

type IterateSuite struct{}

var _ = gc.Suite(&IterateSuite{})

func (s *IterateSuite) TestOriginNeverEscapes(c *gc.C) {
	for _, n := range []uint32{1, 2, 10, 1000} {
		c.Check(Iterate(0, 0, n), gc.Equals, n)
		c.Check(colormap.Color(Iterate(0, 0, n), n), gc.Equals, colormap.Black)
	}
}

func (s *IterateSuite) TestZeroCeiling(c *gc.C) {
	c.Check(Iterate(5, 5, 0), gc.Equals, uint32(0))
}

func (s *IterateSuite) TestKnownCounts(c *gc.C) {
	for i, t := range []struct {
		should string
		x, y   float64
		expect uint32
	}{
		{"escape on the first step far outside", 3, 0, 0},
		{"escape on the second step at (-1.5, 1)", -1.5, 1, 1},
		{"escape on the third step at (0.495, -0.995)", 0.495, -0.995, 2},
		{"stay inside the main cardioid", -0.5, 0, 100},
		{"stay on the period-2 bulb", -1, 0, 100},
	} {
		c.Logf("Test %d: should %s", i, t.should)
		c.Check(Iterate(t.x, t.y, 100), gc.Equals, t.expect)
	}
}

func (s *IterateSuite) TestBounded(c *gc.C) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		x := rng.Float64()*4 - 2.5
		y := rng.Float64()*3 - 1.5
		n := uint32(rng.Intn(300))
		if got := Iterate(x, y, n); got > n {
			c.Fatalf("Iterate(%v, %v, %d) = %d, above the ceiling", x, y, n, got)
		}
	}
}

type RenderSuite struct{}

var _ = gc.Suite(&RenderSuite{})

func render(c *gc.C, workers int, req Request) []uint32 {
	dst := make([]uint32, req.Width*req.Height)
	err := NewRenderer(workers).Render(context.Background(), req, dst)
	c.Assert(err, gc.IsNil)
	return dst
}

func (s *RenderSuite) TestNewRendererDefaults(c *gc.C) {
	c.Check(NewRenderer(3).Workers(), gc.Equals, 3)
	c.Check(NewRenderer(0).Workers() > 0, gc.Equals, true)
	c.Check(NewRenderer(-4).Workers(), gc.Equals, NewRenderer(0).Workers())
}

func (s *RenderSuite) TestMatchesPerPixelDefinition(c *gc.C) {
	req := Request{
		Viewport:      Viewport{CenterX: -0.75, CenterY: 0.1, Zoom: 60, Width: 37, Height: 23},
		MaxIterations: 120,
	}
	got := render(c, 4, req)
	for py := 0; py < req.Height; py++ {
		for px := 0; px < req.Width; px++ {
			x, y := req.ToWorld(px, py)
			want := colormap.Color(Iterate(x, y, req.MaxIterations), req.MaxIterations)
			if v := got[py*req.Width+px]; v != want {
				c.Fatalf("pixel (%d, %d) = %#08x, want %#08x", px, py, v, want)
			}
		}
	}
}

func (s *RenderSuite) TestDeterministic(c *gc.C) {
	req := Request{
		Viewport:      Viewport{CenterX: -0.7436, CenterY: 0.1318, Zoom: 5000, Width: 64, Height: 48},
		MaxIterations: 500,
	}
	first := render(c, 0, req)
	for i := 0; i < 3; i++ {
		c.Check(render(c, 0, req), gc.DeepEquals, first)
	}
}

func (s *RenderSuite) TestWorkerCountInvariant(c *gc.C) {
	req := Request{
		Viewport:      Viewport{CenterX: -0.5, CenterY: 0, Zoom: 40, Width: 97, Height: 61},
		MaxIterations: 256,
	}
	serial := render(c, 1, req)
	for _, workers := range []int{2, 3, 5, 8, 16, 61, 200} {
		c.Logf("workers=%d", workers)
		c.Check(render(c, workers, req), gc.DeepEquals, serial)
	}
}

func (s *RenderSuite) TestOnlyRequiredPixelsWritten(c *gc.C) {
	req := Request{Viewport: Viewport{Zoom: 10, Width: 5, Height: 4}, MaxIterations: 20}
	dst := filled(25)
	c.Assert(NewRenderer(2).Render(context.Background(), req, dst), gc.IsNil)
	for i, v := range dst[:20] {
		if v>>24 != 0xff {
			c.Fatalf("dst[%d] = %#08x is not an opaque color", i, v)
		}
	}
	checkUntouched(c, dst[20:])
}

func (s *RenderSuite) TestCardioidCenterIsBlack(c *gc.C) {
	req := Request{
		Viewport:      Viewport{CenterX: -0.5, CenterY: 0, Zoom: 200, Width: 4, Height: 4},
		MaxIterations: 50,
	}
	for i, v := range render(c, 0, req) {
		c.Check(v, gc.Equals, colormap.Black, gc.Commentf("pixel %d", i))
	}
}

func (s *RenderSuite) TestCornersEscape(c *gc.C) {
	req := Request{
		Viewport:      Viewport{CenterX: -0.5, CenterY: 0, Zoom: 200, Width: 400, Height: 400},
		MaxIterations: 50,
	}
	dst := render(c, 0, req)
	c.Check(dst[200*400+200], gc.Equals, colormap.Black)

	for _, p := range [][2]int{{0, 0}, {399, 0}, {0, 399}, {399, 399}} {
		x, y := req.ToWorld(p[0], p[1])
		it := Iterate(x, y, req.MaxIterations)
		c.Check(it >= 1 && it <= 5, gc.Equals, true, gc.Commentf("corner %v escaped after %d", p, it))
		c.Check(dst[p[1]*400+p[0]], gc.Not(gc.Equals), colormap.Black, gc.Commentf("corner %v", p))
	}
}

func (s *RenderSuite) TestSinglePixel(c *gc.C) {
	req := Request{Viewport: Viewport{Zoom: 1, Width: 1, Height: 1}, MaxIterations: 10}
	x, y := req.ToWorld(0, 0)
	c.Check(Iterate(x, y, 10), gc.Equals, uint32(10))
	c.Check(render(c, 0, req), gc.DeepEquals, []uint32{colormap.Black})
}

func (s *RenderSuite) TestRejectedRequestLeavesBuffer(c *gc.C) {
	dst := filled(16)
	err := NewRenderer(2).Render(context.Background(), Request{Viewport: Viewport{Zoom: 1, Width: 4, Height: 5}}, dst)
	c.Check(errors.Is(err, ErrBufferTooSmall), gc.Equals, true)
	checkUntouched(c, dst)
}

func (s *RenderSuite) TestCancelled(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := Request{Viewport: Viewport{Zoom: 50, Width: 32, Height: 32}, MaxIterations: 100}
	for _, workers := range []int{1, 4} {
		err := NewRenderer(workers).Render(ctx, req, make([]uint32, 32*32))
		c.Check(errors.Is(err, context.Canceled), gc.Equals, true)
	}
}

func (s *RenderSuite) TestPartitionDisjoint(c *gc.C) {
	for _, t := range []struct{ w, h, workers int }{
		{10, 1, 8}, {3, 7, 1}, {5, 100, 3}, {1, 33, 16}, {8, 8, 64},
	} {
		dst := make([]uint32, t.w*t.h)
		groups := partition(t.w, t.h, dst, t.workers)
		next := 0
		for _, g := range groups {
			c.Assert(g.y0, gc.Equals, next)
			c.Assert(g.y1 > g.y0, gc.Equals, true)
			c.Assert(len(g.dst), gc.Equals, (g.y1-g.y0)*t.w)
			c.Assert(cap(g.dst), gc.Equals, len(g.dst))
			c.Assert(&g.dst[0], gc.Equals, &dst[g.y0*t.w])
			next = g.y1
		}
		c.Check(next, gc.Equals, t.h)
		c.Check(len(groups) <= t.workers*groupsPerWorker, gc.Equals, true)
	}
}

type BoundarySuite struct{}

var _ = gc.Suite(&BoundarySuite{})

func (s *BoundarySuite) TestPing(c *gc.C) {
	c.Check(Ping(), gc.Equals, uint32(6))
}

func (s *BoundarySuite) TestNoOp(c *gc.C) {
	for i, t := range []struct {
		should        string
		zoom          uint64
		width, height int32
		dst           []uint32
	}{
		{"ignore zero width", 10, 0, 4, filled(16)},
		{"ignore zero height", 10, 4, 0, filled(16)},
		{"ignore negative width", 10, -4, 4, filled(16)},
		{"ignore zero zoom", 0, 4, 4, filled(16)},
		{"ignore a short buffer", 10, 4, 4, filled(15)},
	} {
		c.Logf("Test %d: should %s", i, t.should)
		RenderMandelbrot(0, 0, t.zoom, t.width, t.height, 50, t.dst)
		checkUntouched(c, t.dst)
	}

	// nil buffer must not fault
	RenderMandelbrot(0, 0, 10, 4, 4, 50, nil)
}

func (s *BoundarySuite) TestMatchesRenderer(c *gc.C) {
	req := Request{
		Viewport:      Viewport{CenterX: -1.25, CenterY: 0.2, Zoom: 300, Width: 30, Height: 20},
		MaxIterations: 80,
	}
	want := render(c, 1, req)

	dst := make([]uint32, 600)
	RenderMandelbrot(-1.25, 0.2, 300, 30, 20, 80, dst)
	c.Check(dst, gc.DeepEquals, want)
}

func (s *BoundarySuite) TestNegativeMaxIter(c *gc.C) {
	pos := make([]uint32, 12*9)
	neg := make([]uint32, 12*9)
	RenderMandelbrot(-0.5, 0, 4, 12, 9, 60, pos)
	RenderMandelbrot(-0.5, 0, 4, 12, 9, -60, neg)
	c.Check(neg, gc.DeepEquals, pos)
	c.Check(unsignedAbs(-2147483648), gc.Equals, uint32(1<<31))
}

func (s *BoundarySuite) TestRaw(c *gc.C) {
	want := make([]uint32, 16*8)
	RenderMandelbrot(-0.5, 0, 5, 16, 8, 40, want)

	// extra capacity is left alone
	backing := filled(16*8 + 4)
	RenderRaw(-0.5, 0, 5, 16, 8, 40, &backing[0], uintptr(len(backing)))
	c.Check(backing[:16*8], gc.DeepEquals, want)
	checkUntouched(c, backing[16*8:])

	short := filled(16*8 - 1)
	RenderRaw(-0.5, 0, 5, 16, 8, 40, unsafe.SliceData(short), uintptr(len(short)))
	checkUntouched(c, short)

	RenderRaw(-0.5, 0, 5, 16, 8, 40, nil, 128)
}
