package game

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// renderTarget is a framebuffer with a single float colour attachment.
type renderTarget struct {
	fbo  uint32
	tex  uint32
	w, h int32
}

func newRenderTarget(w, h int) (renderTarget, error) {
	rt := renderTarget{w: int32(w), h: int32(h)}
	gl.GenTextures(1, &rt.tex)
	gl.BindTexture(gl.TEXTURE_2D, rt.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, rt.w, rt.h, 0, gl.RGBA, gl.HALF_FLOAT, nil)

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.destroy()
		return renderTarget{}, fmt.Errorf("framebuffer %dx%d incomplete: 0x%x", w, h, status)
	}
	return rt, nil
}

func (rt *renderTarget) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.Viewport(0, 0, rt.w, rt.h)
}

func (rt *renderTarget) destroy() {
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
	}
	if rt.tex != 0 {
		gl.DeleteTextures(1, &rt.tex)
	}
	rt.fbo, rt.tex = 0, 0
}

// Bloom renders the scene into an HDR target, blurs its bright parts at
// half resolution and composites both to the default framebuffer.
type Bloom struct {
	scene renderTarget
	ping  [2]renderTarget
	vao   uint32

	bright    uint32
	blur      uint32
	composite uint32

	uThreshold int32
	uBrightSrc int32
	uBlurTex   int32
	uBlurDir   int32
	uCompScene int32
	uCompBloom int32
	uStrength  int32
	uExposure  int32

	w, h int
}

func NewBloom(w, h int) (*Bloom, error) {
	b := &Bloom{}
	var err error
	if b.bright, err = linkProgram(screenVertSrc, brightFragSrc); err != nil {
		return nil, fmt.Errorf("bright pass: %w", err)
	}
	if b.blur, err = linkProgram(screenVertSrc, blurFragSrc); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("blur pass: %w", err)
	}
	if b.composite, err = linkProgram(screenVertSrc, compositeFragSrc); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("composite pass: %w", err)
	}
	b.uThreshold = uniform(b.bright, "uThreshold")
	b.uBrightSrc = uniform(b.bright, "uScene")
	b.uBlurTex = uniform(b.blur, "uTex")
	b.uBlurDir = uniform(b.blur, "uDir")
	b.uCompScene = uniform(b.composite, "uScene")
	b.uCompBloom = uniform(b.composite, "uBloom")
	b.uStrength = uniform(b.composite, "uStrength")
	b.uExposure = uniform(b.composite, "uExposure")

	gl.GenVertexArrays(1, &b.vao)
	if err := b.Resize(w, h); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// Resize reallocates the targets for a w x h framebuffer. Same-size calls
// are no-ops.
func (b *Bloom) Resize(w, h int) error {
	if w <= 0 || h <= 0 || (w == b.w && h == b.h) {
		return nil
	}
	b.releaseTargets()
	var err error
	if b.scene, err = newRenderTarget(w, h); err != nil {
		return fmt.Errorf("scene target: %w", err)
	}
	hw, hh := max(1, w/2), max(1, h/2)
	for i := range b.ping {
		if b.ping[i], err = newRenderTarget(hw, hh); err != nil {
			b.releaseTargets()
			return fmt.Errorf("bloom target: %w", err)
		}
	}
	b.w, b.h = w, h
	return nil
}

// Begin redirects drawing into the HDR scene target and clears it.
func (b *Bloom) Begin() {
	b.scene.bind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End runs the bright, blur and composite passes onto the window.
func (b *Bloom) End() {
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(b.vao)
	gl.ActiveTexture(gl.TEXTURE0)

	b.ping[0].bind()
	gl.UseProgram(b.bright)
	gl.Uniform1i(b.uBrightSrc, 0)
	gl.Uniform1f(b.uThreshold, BloomThreshold)
	gl.BindTexture(gl.TEXTURE_2D, b.scene.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.UseProgram(b.blur)
	gl.Uniform1i(b.uBlurTex, 0)
	tw, th := 1/float32(b.ping[0].w), 1/float32(b.ping[0].h)
	for range BloomPasses {
		b.ping[1].bind()
		gl.Uniform2f(b.uBlurDir, tw, 0)
		gl.BindTexture(gl.TEXTURE_2D, b.ping[0].tex)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)

		b.ping[0].bind()
		gl.Uniform2f(b.uBlurDir, 0, th)
		gl.BindTexture(gl.TEXTURE_2D, b.ping[1].tex)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(b.w), int32(b.h))
	gl.UseProgram(b.composite)
	gl.Uniform1i(b.uCompScene, 0)
	gl.Uniform1i(b.uCompBloom, 1)
	gl.Uniform1f(b.uStrength, BloomStrength)
	gl.Uniform1f(b.uExposure, Exposure)
	gl.BindTexture(gl.TEXTURE_2D, b.scene.tex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, b.ping[0].tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
}

func (b *Bloom) releaseTargets() {
	b.scene.destroy()
	for i := range b.ping {
		b.ping[i].destroy()
	}
	b.w, b.h = 0, 0
}

func (b *Bloom) Destroy() {
	b.releaseTargets()
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	for _, p := range []*uint32{&b.bright, &b.blur, &b.composite} {
		if *p != 0 {
			gl.DeleteProgram(*p)
			*p = 0
		}
	}
}
