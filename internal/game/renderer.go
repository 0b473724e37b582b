package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"fireworks/internal/firework"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// pointProgram is a linked point-sprite program and its uniforms.
type pointProgram struct {
	id         uint32
	uViewProj  int32
	uSize      int32
	uScale     int32
	uOpacity   int32
	uIntensity int32
}

func newPointProgram(frag string) (pointProgram, error) {
	id, err := linkProgram(pointVertSrc, frag)
	if err != nil {
		return pointProgram{}, err
	}
	return pointProgram{
		id:         id,
		uViewProj:  uniform(id, "uViewProj"),
		uSize:      uniform(id, "uSize"),
		uScale:     uniform(id, "uScale"),
		uOpacity:   uniform(id, "uOpacity"),
		uIntensity: uniform(id, "uIntensity"),
	}, nil
}

// drawable is a scene object the renderer knows how to draw.
type drawable interface {
	firework.Object
	draw(r *Renderer)
}

// Renderer implements firework.Scene on OpenGL 4.1 point sprites.
type Renderer struct {
	hard pointProgram
	soft pointProgram

	objects []drawable // attached, in draw order

	// Per-frame uniforms.
	viewProj mgl32.Mat4
	scale    float32
	bound    uint32
}

var _ firework.Scene = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	hard, err := newPointProgram(pointFragSrc)
	if err != nil {
		return nil, fmt.Errorf("point program: %w", err)
	}
	soft, err := newPointProgram(softFragSrc)
	if err != nil {
		gl.DeleteProgram(hard.id)
		return nil, fmt.Errorf("soft program: %w", err)
	}
	return &Renderer{hard: hard, soft: soft}, nil
}

func (r *Renderer) Destroy() {
	for len(r.objects) > 0 {
		o := r.objects[0]
		r.Remove(o)
		o.Dispose()
	}
	for _, id := range []uint32{r.hard.id, r.soft.id} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) Add(o firework.Object) {
	if d, ok := o.(drawable); ok {
		r.objects = append(r.objects, d)
	}
}

func (r *Renderer) Remove(o firework.Object) {
	for i, d := range r.objects {
		if firework.Object(d) == o {
			r.objects = append(r.objects[:i], r.objects[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached objects.
func (r *Renderer) Len() int { return len(r.objects) }

// Draw renders every attached object with additive or premultiplied
// blending into the currently bound framebuffer.
func (r *Renderer) Draw(cam *firework.Camera, fbH int) {
	proj := cam.Projection()
	r.viewProj = proj.Mul4(cam.View())
	// Pixels per world unit at unit depth.
	r.scale = float32(fbH) * proj[5] * 0.5
	r.bound = 0

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	for _, d := range r.objects {
		d.draw(r)
	}
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (r *Renderer) use(p *pointProgram, size, opacity, intensity float32, blend firework.Blend) {
	if r.bound != p.id {
		gl.UseProgram(p.id)
		gl.UniformMatrix4fv(p.uViewProj, 1, false, &r.viewProj[0])
		gl.Uniform1f(p.uScale, r.scale)
		r.bound = p.id
	}
	gl.Uniform1f(p.uSize, size)
	gl.Uniform1f(p.uOpacity, opacity)
	gl.Uniform1f(p.uIntensity, intensity)
	if blend == firework.BlendAlpha {
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.BlendFunc(gl.ONE, gl.ONE)
	}
}

// cloud is a point cloud over caller-owned position and colour slices.
type cloud struct {
	spec    firework.CloudSpec
	vao     uint32
	posVBO  uint32
	colVBO  uint32
	ownsPos bool
	count   int32
	state   firework.CloudState
	dirty   bool
}

func (r *Renderer) NewPointCloud(spec firework.CloudSpec) firework.Cloud {
	c := &cloud{spec: spec, count: int32(len(spec.Positions) / 3)}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	if share, ok := spec.SharePositions.(*cloud); ok && share != nil {
		c.posVBO = share.posVBO
	} else {
		gl.GenBuffers(1, &c.posVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.posVBO)
		bufferFloats(spec.Positions)
		c.ownsPos = true
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, c.posVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))

	gl.GenBuffers(1, &c.colVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.colVBO)
	bufferFloats(spec.Colors)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, glOffset(0))

	gl.BindVertexArray(0)
	return c
}

func bufferFloats(buf []float32) {
	if len(buf) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 4, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.DYNAMIC_DRAW)
}

func subFloats(vbo uint32, buf []float32) {
	if len(buf) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(buf)*4, gl.Ptr(buf))
}

func (c *cloud) Update(st firework.CloudState) {
	c.state = st
	c.dirty = true
}

func (c *cloud) draw(r *Renderer) {
	if c.dirty {
		// Shared positions are uploaded by the owning cloud, drawn first.
		if c.ownsPos {
			subFloats(c.posVBO, c.spec.Positions)
		}
		subFloats(c.colVBO, c.spec.Colors)
		c.dirty = false
	}
	if c.count == 0 || c.state.Opacity <= 0 {
		return
	}
	p := &r.hard
	if c.spec.Soft {
		p = &r.soft
	}
	r.use(p, c.state.Size, c.state.Opacity, c.state.Intensity, c.spec.Blend)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.POINTS, 0, c.count)
}

func (c *cloud) Dispose() {
	gl.DeleteVertexArrays(1, &c.vao)
	gl.DeleteBuffers(1, &c.colVBO)
	if c.ownsPos {
		gl.DeleteBuffers(1, &c.posVBO)
	}
	c.vao, c.colVBO, c.posVBO = 0, 0, 0
}

// sprite is a billboard drawn as one large soft point.
type sprite struct {
	vao   uint32
	vbo   uint32
	state firework.SpriteState
}

func (r *Renderer) NewSprite(spec firework.SpriteSpec) firework.Sprite {
	s := &sprite{}
	// x, y, z, r, g, b
	v := [6]float32{
		spec.Position[0], spec.Position[1], spec.Position[2],
		spec.Color.R, spec.Color.G, spec.Color.B,
	}
	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(v)*4, gl.Ptr(&v[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, glOffset(3*4))
	gl.BindVertexArray(0)
	return s
}

func (s *sprite) Update(st firework.SpriteState) { s.state = st }

func (s *sprite) draw(r *Renderer) {
	if s.state.Opacity <= 0 {
		return
	}
	r.use(&r.soft, s.state.Scale, s.state.Opacity, 1, firework.BlendAdditive)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.POINTS, 0, 1)
}

func (s *sprite) Dispose() {
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteBuffers(1, &s.vbo)
	s.vao, s.vbo = 0, 0
}
