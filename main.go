// Command mandelkernel is an interactive preview of the render kernel.
//
//	mandelkernel [config.toml]
//
// Drag to pan, scroll to zoom, up/down to change the iteration ceiling, r to
// reset the view, escape to quit. The view follows window resizes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joshvictor1024/mandelkernel/pkg/config"
	"github.com/joshvictor1024/mandelkernel/pkg/mandel"
	"github.com/joshvictor1024/mandelkernel/pkg/types"
	"github.com/veandco/go-sdl2/sdl"
)

// how long to wait for input before checking for finished frames
const eventWaitMs = 15

func sdlInit(cfg config.Window) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		cfg.Width, cfg.Height, sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

// wheelNotches is the scroll amount with "up" meaning zoom in, whatever the
// platform's natural scrolling setting
func wheelNotches(y int32, direction uint32) int32 {
	if direction == sdl.MOUSEWHEEL_FLIPPED {
		return -y
	}
	return y
}

func newLogger(cfg config.Log) *slog.Logger {
	// Validate already rejected unknown levels
	level, _ := cfg.SlogLevel()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Log)
	mandel.SetLogger(log.With("component", "mandel"))

	// start SDL
	window, renderer, err := sdlInit(cfg.Window)
	if err != nil {
		return err
	}
	defer sdlClose(window, renderer)

	s, err := newScene(renderer, cfg, log)
	if err != nil {
		return err
	}
	defer s.close()

	// start loop
	dragging := false

	for running := true; running; {
		// WaitEvent must be on the same thread that did INIT_VIDEO
		for e := sdl.WaitEventTimeout(eventWaitMs); e != nil; e = sdl.PollEvent() {
			switch t := e.(type) {
			case *sdl.QuitEvent:
				log.Info("quit event")
				running = false
			case *sdl.MouseButtonEvent:
				if t.Button == sdl.BUTTON_LEFT {
					dragging = t.Type == sdl.MOUSEBUTTONDOWN
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					s.updateView(types.Pointi{X: int(t.XRel), Y: int(t.YRel)})
				}
			case *sdl.WindowEvent:
				if t.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					s.resize(int(t.Data1), int(t.Data2))
				}
			case *sdl.MouseWheelEvent:
				x, y, _ := sdl.GetMouseState()
				s.zoom(types.Pointi{X: int(x), Y: int(y)}, wheelNotches(t.Y, t.Direction))
			case *sdl.KeyboardEvent:
				if t.Type != sdl.KEYDOWN {
					break
				}
				switch t.Keysym.Sym {
				case sdl.K_ESCAPE:
					log.Info("esc event")
					running = false
				case sdl.K_UP:
					s.changeIterations(1)
				case sdl.K_DOWN:
					s.changeIterations(-1)
				case sdl.K_r:
					s.reset()
				}
			}
		}

		// draw
		renderer.SetDrawColor(0, 0, 0, 255)
		renderer.Clear()
		s.draw()
		renderer.Present()
	}
	return nil
}
