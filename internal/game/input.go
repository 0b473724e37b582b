package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"fireworks/internal/firework"
)

// Input feeds glfw pointer callbacks to the firework input mapper and
// tracks edge-triggered keys.
type Input struct {
	mapper   *firework.InputMapper
	prevKeys map[glfw.Key]bool

	resized  bool
	fbW, fbH int
}

func NewInput(window *glfw.Window, mapper *firework.InputMapper) *Input {
	in := &Input{
		mapper:   mapper,
		prevKeys: make(map[glfw.Key]bool),
	}
	in.fbW, in.fbH = window.GetFramebufferSize()

	window.SetMouseButtonCallback(func(w *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if btn != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			ww, wh := w.GetSize()
			in.mapper.PointerDown(x, y, ww, wh, glfw.GetTime())
		case glfw.Release:
			in.mapper.PointerUp()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		ww, wh := w.GetSize()
		in.mapper.PointerMove(x, y, ww, wh, glfw.GetTime())
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		in.fbW, in.fbH = width, height
		in.resized = true
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Resized reports a framebuffer size change since the last call.
func (in *Input) Resized() (w, h int, ok bool) {
	ok = in.resized
	in.resized = false
	return in.fbW, in.fbH, ok
}
