package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/joshvictor1024/mandelkernel/pkg/camera"
	"github.com/joshvictor1024/mandelkernel/pkg/config"
	"github.com/joshvictor1024/mandelkernel/pkg/mandel"
	"github.com/joshvictor1024/mandelkernel/pkg/types"
	"github.com/veandco/go-sdl2/sdl"
)

type scene struct {
	renderer *sdl.Renderer
	canvas   *canvas
	camera   *camera.Camera
	maxIt    int32
	itStep   int32
	zoomStep float64
	cfg      *config.Config
	log      *slog.Logger
}

func newScene(r *sdl.Renderer, cfg *config.Config, log *slog.Logger) (*scene, error) {
	w, h := int(cfg.Window.Width), int(cfg.Window.Height)
	cam, err := newCamera(cfg, w, h)
	if err != nil {
		return nil, err
	}
	c, err := newCanvas(r, w, h, cfg.Render.Workers, log)
	if err != nil {
		return nil, err
	}
	s := &scene{
		renderer: r,
		canvas:   c,
		camera:   cam,
		maxIt:    cfg.Render.MaxIterations,
		itStep:   cfg.Render.IterationStep,
		zoomStep: cfg.View.ZoomStep,
		cfg:      cfg,
		log:      log,
	}
	c.hud = s.hudLines
	c.work()
	s.generate()
	return s, nil
}

func newCamera(cfg *config.Config, w, h int) (*camera.Camera, error) {
	return camera.New(
		types.Pointf64{X: cfg.View.CenterX, Y: cfg.View.CenterY},
		cfg.View.Zoom,
		types.Pointi{X: w, Y: h},
		cfg.View.MinZoom,
		cfg.View.MaxZoom,
	)
}

func (s *scene) close() {
	s.canvas.close()
}

func (s *scene) draw() {
	s.canvas.draw()
}

func (s *scene) generate() {
	s.canvas.generate(mandel.Request{
		Viewport:      s.camera.Viewport(),
		MaxIterations: uint32(s.maxIt),
	})
}

// grab and drag by deltaPixel
func (s *scene) updateView(deltaPixel types.Pointi) {
	if deltaPixel == (types.Pointi{}) {
		return
	}
	s.camera.PanByPixels(deltaPixel)
	s.generate()
}

// zoom in (notches > 0) or out around anchor
func (s *scene) zoom(anchor types.Pointi, notches int32) {
	delta := int64(float64(s.camera.Zoom()) * s.zoomStep)
	if delta < 1 {
		delta = 1
	}
	s.camera.ZoomAtPixel(anchor, delta*int64(notches))
	s.log.Debug("zoom", "zoom", s.camera.Zoom(), "center", s.camera.Center())
	s.generate()
}

// resize follows the window to w x h pixels, keeping center and zoom
func (s *scene) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if err := s.canvas.resize(w, h); err != nil {
		s.log.Error("resizing canvas", "err", err)
		return
	}
	s.camera.SetSize(types.Pointi{X: w, Y: h})
	s.log.Debug("resize", "width", w, "height", h)
	s.generate()
}

func (s *scene) changeIterations(steps int32) {
	it := s.maxIt + steps*s.itStep
	if steps > 0 && it < s.maxIt {
		it = math.MaxInt32
	}
	if it < s.itStep {
		it = s.itStep
	}
	if it == s.maxIt {
		return
	}
	s.maxIt = it
	s.generate()
}

func (s *scene) reset() {
	cam, err := newCamera(s.cfg, s.camera.Size().X, s.camera.Size().Y)
	if err != nil {
		s.log.Error("resetting view", "err", err)
		return
	}
	s.camera = cam
	s.maxIt = s.cfg.Render.MaxIterations
	s.generate()
}

func (s *scene) hudLines() []string {
	center := s.camera.Center()
	size := s.camera.Size()
	lines := []string{
		fmt.Sprintf("center %.10f %+.10fi", center.X, center.Y),
		fmt.Sprintf("zoom %d (x%.1f)  iterations %d", s.camera.Zoom(), s.camera.Magnification(), s.maxIt),
		fmt.Sprintf("%dx%d  frame %d  %.1f ms  %.0f fps  %d workers",
			size.X, size.Y,
			s.canvas.frameTimes.Frames(),
			float64(s.canvas.frameTimes.Average().Microseconds())/1000,
			s.canvas.frameTimes.FPS(),
			s.canvas.mr.Workers()),
	}
	if !s.camera.Visible(s.home()) {
		lines = append(lines, "start point off screen, r to return")
	}
	return lines
}

func (s *scene) home() types.Pointf64 {
	return types.Pointf64{X: s.cfg.View.CenterX, Y: s.cfg.View.CenterY}
}
