package mandel

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/joshvictor1024/mandelkernel/pkg/colormap"
	"github.com/joshvictor1024/mandelkernel/pkg/types"
)

// groups queued per worker, so a slow group near the set does not leave the
// other workers idle
const groupsPerWorker = 4

// Renderer renders requests with a fixed number of workers. It holds no frame
// state and may be shared between goroutines.
type Renderer struct {
	workers int
}

// NewRenderer returns a renderer using workers goroutines.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewRenderer(workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Renderer{workers: workers}
}

// Workers returns the configured worker count.
func (r *Renderer) Workers() int {
	return r.workers
}

// rowGroup is rows [y0, y1) and the slice of the output that holds them.
type rowGroup struct {
	y0, y1 int
	dst    []uint32
}

// partition cuts dst into contiguous row groups. Each group's slice is capped
// at its own end, so no two groups share an element.
func partition(width, height int, dst []uint32, workers int) []rowGroup {
	target := workers * groupsPerWorker
	rows := (height + target - 1) / target
	if rows < 1 {
		rows = 1
	}
	groups := make([]rowGroup, 0, (height+rows-1)/rows)
	for y0 := 0; y0 < height; y0 += rows {
		y1 := min(y0+rows, height)
		groups = append(groups, rowGroup{
			y0:  y0,
			y1:  y1,
			dst: dst[y0*width : y1*width : y1*width],
		})
	}
	return groups
}

func renderRows(g rowGroup, m *mapping, width int, maxIt uint32) {
	for py := g.y0; py < g.y1; py++ {
		y := m.y(py)
		off := (py - g.y0) * width
		row := g.dst[off : off+width]
		for px := range row {
			it := Iterate(m.x(px), y, maxIt)
			row[px] = colormap.Color(it, maxIt)
		}
	}
}

// Render fills dst[:Width*Height] for req. dst is only written, never read,
// and is not referenced after Render returns.
//
// ctx is checked before each row group. When it is cancelled Render returns
// ctx.Err() and the content of dst is unspecified.
func (r *Renderer) Render(ctx context.Context, req Request, dst []uint32) error {
	n, err := req.Validate(dst)
	if err != nil {
		Logger().Debug("mandel: request rejected", "err", err)
		return err
	}

	start := time.Now()
	vp := req.Viewport
	m := newMapping(vp)
	groups := partition(vp.Width, vp.Height, dst[:n], r.workers)
	workers := min(r.workers, len(groups))

	cq := types.NewControlledQueueOf(groups)
	defer cq.Close()

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				canRecv, g, ok := cq.AttemptRecv(false)
				if !ok || !canRecv {
					return
				}
				renderRows(g, &m, vp.Width, req.MaxIterations)
			}
		}()
	}
	wg.Wait()

	// workers only stop early on cancellation
	if cq.Len() > 0 {
		return ctx.Err()
	}

	Logger().Debug("mandel: rendered",
		"width", vp.Width,
		"height", vp.Height,
		"max_iterations", req.MaxIterations,
		"workers", workers,
		"groups", len(groups),
		"elapsed", time.Since(start))
	return nil
}
