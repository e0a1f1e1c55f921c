package sched

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/internal/logging"
	"github.com/gogpu/raypack/internal/parallel"
	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/pixel"
	"github.com/gogpu/raypack/render"
	"github.com/gogpu/raypack/sampling"
	"github.com/gogpu/raypack/simd"
)

// Errors returned by Frame and FrameIntersect before dispatch.
var (
	ErrNilKernel = errors.New("sched: nil kernel")
	ErrNilCamera = errors.New("sched: nil camera")
	ErrNilTarget = errors.New("sched: nil render target")
	ErrClosed    = errors.New("sched: scheduler closed")
)

// Params describes one frame.
type Params[W simd.Width] struct {
	Camera Camera[W]
	Target render.RenderTarget

	// Sampler selects ray placement and store or blend. The zero value
	// is Uniform.
	Sampler PixelSampler

	// Scissor restricts the frame to a rectangle of the target. The zero
	// rectangle means the whole target.
	Scissor image.Rectangle

	// ColorSource is the format kernel colors are interpreted in:
	// RGBA32F (the default when Unspecified) or RGB32F to force opaque
	// alpha.
	ColorSource pixel.Format
}

// TiledScheduler dispatches kernels over tiles of a render target on a
// fixed pool of workers.
//
// Frame, FrameIntersect, Reset and Close serialize on an internal mutex;
// they must not be called from inside a kernel.
type TiledScheduler[W simd.Width] struct {
	mu     sync.Mutex
	pool   *parallel.WorkerPool
	opts   options
	closed bool
}

// NewTiledScheduler creates a scheduler with numThreads workers.
// If numThreads is 0 or negative, GOMAXPROCS is used.
func NewTiledScheduler[W simd.Width](numThreads int, opts ...Option) *TiledScheduler[W] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &TiledScheduler[W]{
		pool: parallel.NewWorkerPool(numThreads),
		opts: o,
	}
}

// Workers returns the number of workers.
func (s *TiledScheduler[W]) Workers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Workers()
}

// Reset changes the number of workers. It is a no-op if the count is
// unchanged.
func (s *TiledScheduler[W]) Reset(numThreads int) {
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || numThreads == s.pool.Workers() {
		return
	}
	s.pool.Close()
	s.pool = parallel.NewWorkerPool(numThreads)
	logging.L().Info("sched: pool reset", "workers", numThreads)
}

// Close stops the workers. Later frames return ErrClosed.
func (s *TiledScheduler[W]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.pool.Close()
}

// Frame renders one frame with k. frameNum numbers frames from 1 and
// drives seeding and progressive blending.
//
// If the kernel panics, the tile containing the panicking packet stops at
// that packet while the other tiles still run. The target and camera
// frames are then ended and the panic is re-raised on the calling
// goroutine.
func (s *TiledScheduler[W]) Frame(k Kernel[W], p Params[W], frameNum uint32) error {
	if k == nil {
		return ErrNilKernel
	}
	return s.frame(k, p, frameNum)
}

// FrameIntersect is Frame for kernels that trace isect.
func (s *TiledScheduler[W]) FrameIntersect(k IntersectKernel[W], p Params[W], isect intersect.Intersector[W], frameNum uint32) error {
	if k == nil {
		return ErrNilKernel
	}
	return s.frame(func(ray geom.Ray[W], gen *sampling.Generator[W]) ResultRecord[W] {
		return k(isect, ray, gen)
	}, p, frameNum)
}

func (s *TiledScheduler[W]) frame(k Kernel[W], p Params[W], frameNum uint32) error {
	if p.Camera == nil {
		return ErrNilCamera
	}
	if p.Target == nil {
		return ErrNilTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	p.Camera.BeginFrame()
	defer p.Camera.EndFrame()

	if err := p.Target.BeginFrame(); err != nil {
		return fmt.Errorf("sched: begin frame: %w", err)
	}
	ended := false
	defer func() {
		// Error and panic paths still leave the target usable.
		if !ended {
			if err := p.Target.EndFrame(); err != nil {
				logging.L().Warn("sched: end frame after failure", "err", err)
			}
		}
	}()

	ref := p.Target.Ref()
	w, err := newFrameWriter(ref, p.ColorSource, p.Sampler, frameNum)
	if err != nil {
		return fmt.Errorf("sched: %w", err)
	}

	bounds := image.Rect(0, 0, ref.Width, ref.Height)
	scissor := bounds
	if p.Scissor != (image.Rectangle{}) {
		scissor = p.Scissor.Intersect(bounds)
	}

	pw, ph := simd.Footprint[W]()
	tiles := parallel.Partition(scissor,
		parallel.RoundUp(s.opts.tileSize, pw),
		parallel.RoundUp(s.opts.tileSize, ph))

	base := s.opts.baseSeed
	if s.opts.seedMode == SeedWallClock {
		base ^= sampling.WallClockSeed()
	}

	fc := frameContext[W]{
		kernel:   k,
		camera:   p.Camera,
		writer:   w,
		sampler:  p.Sampler,
		width:    ref.Width,
		height:   ref.Height,
		frameNum: frameNum,
		baseSeed: base,
	}
	fc.initOffsets()

	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() { fc.renderTile(tile) }
	}

	logging.L().Debug("sched: frame",
		"frame", frameNum,
		"tiles", len(tiles),
		"workers", s.pool.Workers(),
		"sampler", p.Sampler.String())

	s.pool.ExecuteAll(work)

	ended = true
	if err := p.Target.EndFrame(); err != nil {
		return fmt.Errorf("sched: end frame: %w", err)
	}
	return nil
}

// frameContext is the read-only state of one frame shared by all tiles.
type frameContext[W simd.Width] struct {
	kernel   Kernel[W]
	camera   Camera[W]
	writer   *frameWriter
	sampler  PixelSampler
	width    int
	height   int
	frameNum uint32
	baseSeed uint64

	// Lane offsets inside the packet footprint.
	offX, offY simd.Float[W]
}

func (fc *frameContext[W]) initOffsets() {
	var xs, ys [simd.MaxLanes]float32
	n := simd.Lanes[W]()
	for i := range n {
		dx, dy := simd.LaneOffset[W](i)
		xs[i], ys[i] = float32(dx), float32(dy)
	}
	fc.offX = simd.FromLanes[W](xs[:n]...)
	fc.offY = simd.FromLanes[W](ys[:n]...)
}

// renderTile visits the packets of tile row by row.
func (fc *frameContext[W]) renderTile(tile image.Rectangle) {
	pw, ph := simd.Footprint[W]()
	gen := sampling.NewGenerator[W](0)
	for y := tile.Min.Y; y < tile.Max.Y; y += ph {
		for x := tile.Min.X; x < tile.Max.X; x += pw {
			gen.Reseed(sampling.Seed(fc.baseSeed, fc.frameNum, x, y))
			color, depth := fc.samplePacket(x, y, gen)
			write(fc.writer, x, y, tile, color, depth)
		}
	}
}

// samplePacket traces the rays of the packet at (x, y) and returns the
// color and the depth to store (1 where nothing was hit).
func (fc *frameContext[W]) samplePacket(x, y int, gen *sampling.Generator[W]) (geom.Vec4[W], simd.Float[W]) {
	px := simd.Splat[W](float32(x)).Add(fc.offX)
	py := simd.Splat[W](float32(y)).Add(fc.offY)
	one := simd.Splat[W](1)

	if !fc.sampler.jittered() {
		half := simd.Splat[W](0.5)
		res := fc.trace(px.Add(half), py.Add(half), gen)
		return res.Color, simd.Select(res.Hit, res.Depth, one)
	}

	n := fc.sampler.raysPerPixel()
	if n == 1 {
		res := fc.trace(px.Add(gen.Next()), py.Add(gen.Next()), gen)
		return res.Color, simd.Select(res.Hit, res.Depth, one)
	}

	var (
		sum   geom.Vec4[W]
		hit   simd.Mask[W]
		depth = simd.Splat[W](float32(math.Inf(1)))
	)
	for range n {
		res := fc.trace(px.Add(gen.Next()), py.Add(gen.Next()), gen)
		sum = sum.Add(res.Color)
		depth = simd.Select(res.Hit, depth.Min(res.Depth), depth)
		hit = hit.Or(res.Hit)
	}
	return sum.Scale(simd.Splat[W](1 / float32(n))), simd.Select(hit, depth, one)
}

func (fc *frameContext[W]) trace(x, y simd.Float[W], gen *sampling.Generator[W]) ResultRecord[W] {
	ray := fc.camera.PrimaryRay(x, y, fc.width, fc.height)
	return fc.kernel(ray, gen)
}
