package game

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"fireworks/internal/firework"
)

func RunDesktop() {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	settings := LoadSettings()

	var audio *Audio
	if !settings.Mute {
		if audio, err = NewAudio(SFXVolume); err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		}
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	fbW, fbH := window.GetFramebufferSize()
	bloom, err := NewBloom(fbW, fbH)
	if err != nil {
		panic(fmt.Errorf("bloom: %w", err))
	}
	defer bloom.Destroy()

	cam := firework.NewCamera(1)
	cam.Resize(fbW, fbH)
	var shake Shake
	rnd := firework.NewRand(settings.Seed ^ 0x5EED)

	bus := NewEventBus()
	bus.Subscribe(EventLaunch, func(e Event) {
		audio.PlayLaunch(e.Count)
		shake.Add(ShakeIntensity, ShakeDuration)
	})
	bus.Subscribe(EventFizzle, func(Event) { audio.PlayCrackle() })
	if settings.Debug {
		bus.Subscribe(EventEvict, func(e Event) {
			fmt.Fprintf(os.Stderr, "evicted system %s at %.2f,%.2f (%d particles)\n", e.ID, e.At[0], e.At[1], e.Count)
		})
	}

	engine := firework.New(rend, firework.Options{
		MaxSystems: settings.MaxSystems,
		Seed:       settings.Seed,
		OnSpawn: func(s *firework.System) {
			t := EventLaunch
			if s.Child {
				t = EventFizzle
			}
			bus.Emit(SystemEvent(t, s))
		},
		OnEvict: func(s *firework.System) {
			bus.Emit(SystemEvent(EventEvict, s))
		},
	})
	defer engine.Close()

	mapper := firework.NewInputMapper(engine, cam)
	mapper.OnFirstInteraction = func() { window.SetTitle(WindowTitle) }
	input := NewInput(window, mapper)

	last := glfw.GetTime()
	statsAt := last
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxFrameDelta {
			dt = MaxFrameDelta
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		if w, h, ok := input.Resized(); ok {
			cam.Resize(w, h)
			if err := bloom.Resize(w, h); err != nil {
				fmt.Fprintf(os.Stderr, "resize: %v\n", err)
			}
		}
		fbW, fbH = window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		if input.JustPressed(window, glfw.KeySpace) {
			at := mgl32.Vec3{float32(rnd.RangeF(-12, 12)), float32(rnd.RangeF(-4, 8)), 0}
			engine.Spawn(at, nil)
		}
		if input.JustPressed(window, glfw.KeyBackspace) {
			engine.Close()
		}

		engine.Update(float32(dt))
		shake.Update(dt, rnd)

		if settings.Debug && now-statsAt >= 2 {
			statsAt = now
			st := engine.Stats()
			fmt.Fprintf(os.Stderr, "systems=%d particles=%d spawned=%d children=%d expired=%d evicted=%d\n",
				st.Systems, st.Particles, st.Spawned, st.Children, st.Expired, st.Evicted)
		}

		renderCam := shake.Apply(*cam)
		bloom.Begin()
		rend.Draw(&renderCam, fbH)
		bloom.End()

		window.SwapBuffers()
	}
}
