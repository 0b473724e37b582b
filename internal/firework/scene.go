package firework

import "github.com/go-gl/mathgl/mgl32"

// Object is anything the scene can draw. Dispose releases its GPU-side
// buffers and material; it must not be used afterwards.
type Object interface {
	Dispose()
}

// Blend selects how a draw object composites.
type Blend uint8

const (
	BlendAdditive Blend = iota
	BlendAlpha
)

// CloudSpec describes a point-sprite draw object. Positions and Colors are
// owned by the caller and read by the cloud on every Update; they are
// never copied at creation time.
type CloudSpec struct {
	Positions []float32 // xyz * N
	Colors    []float32 // rgb * N
	Soft      bool      // radial falloff instead of a hard disc
	Blend     Blend

	// SharePositions names a cloud whose position buffer this cloud reuses.
	SharePositions Cloud
}

// CloudState is the per-frame material state of a cloud.
type CloudState struct {
	Size      float32 // world units
	Opacity   float32
	Intensity float32
}

type Cloud interface {
	Object
	// Update pushes the material state and marks the attribute buffers dirty.
	Update(CloudState)
}

type SpriteSpec struct {
	Position mgl32.Vec3
	Color    RGB
}

type SpriteState struct {
	Scale   float32
	Opacity float32
}

// Sprite is a camera-facing billboard.
type Sprite interface {
	Object
	Update(SpriteState)
}

// Scene is the rendering collaborator: it creates draw objects and owns the
// attach/detach list the renderer walks every frame.
type Scene interface {
	NewPointCloud(CloudSpec) Cloud
	NewSprite(SpriteSpec) Sprite
	Add(Object)
	Remove(Object)
}
