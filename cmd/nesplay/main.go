// Command nesplay is a thin SDL2 front end for the NES core. The core runs
// on its own goroutine and hands completed frames to the render loop over a
// buffered channel of capacity 1 (newest-frame-wins), so a slow renderer
// never blocks emulation; keyboard state flows the other way through a
// single-writer, single-reader atomic register.
package main

import (
	"context"
	"flag"
	"os"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/nescore/nescore/pkg/nes"
	"github.com/nescore/nescore/pkg/ppu"
)

const windowScale = 3

// frame is the unit handed from the core goroutine to the render goroutine:
// a copy of the palette-index frame buffer, detached from the PPU's own
// backing array so the core can keep rendering into it concurrently.
type frame [ppu.ScreenWidth * ppu.ScreenHeight]uint8

// keymap maps SDL keycodes to the bit position SetButtons expects
// (A, B, Select, Start, Up, Down, Left, Right).
var keymap = map[sdl.Keycode]uint8{
	sdl.K_z:      0, // A
	sdl.K_x:      1, // B
	sdl.K_RSHIFT: 2, // Select
	sdl.K_RETURN: 3, // Start
	sdl.K_UP:     4,
	sdl.K_DOWN:   5,
	sdl.K_LEFT:   6,
	sdl.K_RIGHT:  7,
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() < 1 {
		glog.Fatalf("usage: nesplay <rom-file>")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		glog.Fatalf("reading rom: %v", err)
	}

	console, err := nes.Load(data)
	if err != nil {
		glog.Fatalf("loading rom: %v", err)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		glog.Fatalf("sdl init: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"nesplay",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		ppu.ScreenWidth*windowScale, ppu.ScreenHeight*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		glog.Fatalf("sdl create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		glog.Fatalf("sdl create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight,
	)
	if err != nil {
		glog.Fatalf("sdl create texture: %v", err)
	}
	defer texture.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buttons atomic.Uint32
	frames := make(chan frame, 1)

	go runCore(ctx, console, &buttons, frames)

	rgb := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*3)
	running := true

	for running {
		mask := buttons.Load()
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE && e.Type == sdl.KEYDOWN {
					running = false
					continue
				}
				bit, ok := keymap[e.Keysym.Sym]
				if !ok {
					continue
				}
				if e.Type == sdl.KEYDOWN {
					mask |= 1 << bit
				} else {
					mask &^= 1 << bit
				}
			}
		}
		buttons.Store(mask)
		if !running {
			break
		}

		f, ok := <-frames
		if !ok {
			// The core goroutine exited (a RunFrame error); stop rendering.
			break
		}

		for i, idx := range f {
			c := ppu.HardwarePalette[idx&0x3F]
			rgb[i*3+0] = c.R
			rgb[i*3+1] = c.G
			rgb[i*3+2] = c.B
		}
		if err := texture.Update(nil, rgb, ppu.ScreenWidth*3); err != nil {
			glog.Warningf("texture update: %v", err)
		}

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
	}

	cancel()
}

// runCore is the producer goroutine: it drives emulation forward one frame
// at a time, reading the latest button state and publishing each completed
// frame buffer to frames. If the consumer hasn't drained the previous frame
// yet, it is discarded in favor of the new one (newest-frame-wins), so a
// slow renderer never backpressures emulation speed.
func runCore(ctx context.Context, console *nes.NES, buttons *atomic.Uint32, frames chan<- frame) {
	defer close(frames)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		console.SetButtons(0, uint8(buttons.Load()))

		if err := console.RunFrame(ctx); err != nil {
			glog.Warningf("run frame: %v", err)
			return
		}

		var f frame
		copy(f[:], console.FrameBuffer()[:])

		select {
		case frames <- f:
		default:
			select {
			case <-frames:
			default:
			}
			select {
			case frames <- f:
			default:
			}
		}
	}
}
