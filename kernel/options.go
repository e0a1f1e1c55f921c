package kernel

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/texture"
)

// Option configures a kernel during creation.
type Option func(*options)

// options holds the configuration shared by the kernels. Each kernel
// reads only the fields it uses.
type options struct {
	samples    int
	radius     float32
	offset     float32
	background f32.Vec4
	ambient    f32.Vec3
	lights     []Light
	material   Phong
	texture    *texture.Texture2D
	texScale   float32
}

// defaultOptions returns the default kernel options.
func defaultOptions() options {
	return options{
		samples:    8,
		radius:     0.1,
		offset:     1e-3,
		background: f32.Vec4{0, 0, 0, 1},
		ambient:    f32.Vec3{1, 1, 1},
		material:   DefaultMaterial,
	}
}

// WithSamples sets the number of occlusion rays per hit. Negative values
// are treated as 0, which makes every hit fully unoccluded.
func WithSamples(n int) Option {
	return func(o *options) {
		o.samples = max(n, 0)
	}
}

// WithRadius sets the maximum distance at which geometry occludes.
func WithRadius(r float32) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithOffset sets how far secondary rays start from the surface.
func WithOffset(eps float32) Option {
	return func(o *options) {
		o.offset = eps
	}
}

// WithBackground sets the color of lanes that hit nothing.
func WithBackground(c f32.Vec4) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithAmbient sets the ambient light intensity.
func WithAmbient(c f32.Vec3) Option {
	return func(o *options) {
		o.ambient = c
	}
}

// WithLights appends lights.
func WithLights(lights ...Light) Option {
	return func(o *options) {
		o.lights = append(o.lights, lights...)
	}
}

// WithMaterial sets the material of every surface.
func WithMaterial(m Phong) Option {
	return func(o *options) {
		o.material = m
	}
}

// WithTexture modulates the diffuse and ambient color by tex, mapped
// onto world-space XZ with scale texels-per-unit coordinates. The
// texture's address modes decide how it tiles.
func WithTexture(tex *texture.Texture2D, scale float32) Option {
	return func(o *options) {
		o.texture = tex
		o.texScale = scale
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
