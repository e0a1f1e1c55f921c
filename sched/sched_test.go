package sched

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/internal/logging"
	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/pixel"
	"github.com/gogpu/raypack/render"
	"github.com/gogpu/raypack/sampling"
	"github.com/gogpu/raypack/simd"
)

// =============================================================================
// Test doubles
// =============================================================================

// gridCamera puts the pixel coordinates of each ray into its origin.
type gridCamera[W simd.Width] struct {
	log *eventLog
}

func (c *gridCamera[W]) BeginFrame() { c.log.add("camera.begin") }
func (c *gridCamera[W]) EndFrame()   { c.log.add("camera.end") }

func (c *gridCamera[W]) PrimaryRay(x, y simd.Float[W], _, _ int) geom.Ray[W] {
	return geom.NewRay(geom.V3(x, y, simd.Splat[W](0)), geom.SplatV3[W](0, 0, 1))
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// recordingTarget logs the frame bracket of a CPUBuffer.
type recordingTarget struct {
	*render.CPUBuffer
	log *eventLog
}

func (t *recordingTarget) BeginFrame() error {
	t.log.add("target.begin")
	return t.CPUBuffer.BeginFrame()
}

func (t *recordingTarget) EndFrame() error {
	t.log.add("target.end")
	return t.CPUBuffer.EndFrame()
}

// failingEndTarget ends its frame but reports an error doing so.
type failingEndTarget struct {
	*render.CPUBuffer
}

var errEndFrame = errors.New("end frame failed")

func (t *failingEndTarget) EndFrame() error {
	_ = t.CPUBuffer.EndFrame()
	return errEndFrame
}

type nopTexture struct{ w, h int }

func (t nopTexture) Width() int  { return t.w }
func (t nopTexture) Height() int { return t.h }

type nopCreator struct{}

func (nopCreator) NewTextureFromRGBA(w, h int, _ []byte) (gpucontext.Texture, error) {
	return nopTexture{w, h}, nil
}

// coordKernel returns the ray origin as color: pixel (x, y) sampled at
// its center reads (x+0.5, y+0.5, 0, 1).
func coordKernel[W simd.Width](ray geom.Ray[W], _ *sampling.Generator[W]) ResultRecord[W] {
	return ResultRecord[W]{
		Hit:   simd.AllTrue[W](),
		Color: geom.V4(ray.Ori.X, ray.Ori.Y, simd.Splat[W](0), simd.Splat[W](1)),
		Depth: simd.Splat[W](0.5),
	}
}

func constKernel[W simd.Width](v float32) Kernel[W] {
	return func(geom.Ray[W], *sampling.Generator[W]) ResultRecord[W] {
		return ResultRecord[W]{Color: geom.SplatV4[W](v, v, v, 1)}
	}
}

func newTarget(t *testing.T, color, depth pixel.Format, w, h int) *render.CPUBuffer {
	t.Helper()
	rt, err := render.NewCPUBuffer(color, depth)
	if err != nil {
		t.Fatalf("NewCPUBuffer: %v", err)
	}
	if err := rt.Resize(w, h); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	return rt
}

func checkCoords(t *testing.T, b *pixel.Buffer, r image.Rectangle) {
	t.Helper()
	for y := range b.Height() {
		for x := range b.Width() {
			got := b.At(x, y)
			want := [4]float32{}
			if image.Pt(x, y).In(r) {
				want = [4]float32{float32(x) + 0.5, float32(y) + 0.5, 0, 1}
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// =============================================================================
// Coverage and lifecycle
// =============================================================================

func testCoverage[W simd.Width](t *testing.T, workers int, scissor image.Rectangle) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 37, 23)
	s := NewTiledScheduler[W](workers, WithTileSize(8))
	defer s.Close()

	p := Params[W]{Camera: &gridCamera[W]{}, Target: rt, Scissor: scissor}
	if err := s.Frame(coordKernel[W], p, 1); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	want := image.Rect(0, 0, 37, 23)
	if scissor != (image.Rectangle{}) {
		want = scissor.Intersect(want)
	}
	checkCoords(t, rt.Ref().Color, want)
}

func TestFrameCoverage(t *testing.T) {
	scissors := []image.Rectangle{
		{},
		image.Rect(5, 3, 20, 11),
		image.Rect(30, 20, 50, 50),
	}
	for _, sc := range scissors {
		for _, workers := range []int{1, 4} {
			name := fmt.Sprintf("%v/workers=%d", sc, workers)
			t.Run("W1/"+name, func(t *testing.T) { testCoverage[simd.W1](t, workers, sc) })
			t.Run("W4/"+name, func(t *testing.T) { testCoverage[simd.W4](t, workers, sc) })
			t.Run("W8/"+name, func(t *testing.T) { testCoverage[simd.W8](t, workers, sc) })
			t.Run("W16/"+name, func(t *testing.T) { testCoverage[simd.W16](t, workers, sc) })
		}
	}
}

func TestFrameOrder(t *testing.T) {
	log := &eventLog{}
	rt := &recordingTarget{CPUBuffer: newTarget(t, pixel.RGBA8, pixel.Unspecified, 4, 4), log: log}
	s := NewTiledScheduler[simd.W4](2)
	defer s.Close()

	var once sync.Once
	k := func(ray geom.Ray[simd.W4], gen *sampling.Generator[simd.W4]) ResultRecord[simd.W4] {
		once.Do(func() { log.add("kernel") })
		return coordKernel(ray, gen)
	}
	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{log: log}, Target: rt}
	if err := s.Frame(k, p, 1); err != nil {
		t.Fatal(err)
	}

	want := []string{"camera.begin", "target.begin", "kernel", "target.end", "camera.end"}
	if fmt.Sprint(log.events) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", log.events, want)
	}
}

func TestFrameQuadColors(t *testing.T) {
	rt := newTarget(t, pixel.RGBA8, pixel.Unspecified, 2, 2)
	s := NewTiledScheduler[simd.W4](1)
	defer s.Close()

	k := func(geom.Ray[simd.W4], *sampling.Generator[simd.W4]) ResultRecord[simd.W4] {
		return ResultRecord[simd.W4]{Color: geom.V4(
			simd.FromLanes[simd.W4](1, 0, 0, 1),
			simd.FromLanes[simd.W4](0, 1, 0, 1),
			simd.FromLanes[simd.W4](0, 0, 1, 0),
			simd.Splat[simd.W4](1),
		)}
	}
	if err := s.Frame(k, Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt}, 1); err != nil {
		t.Fatal(err)
	}

	img := rt.Ref().Color.Image()
	want := map[image.Point][4]uint8{
		{0, 0}: {255, 0, 0, 255},
		{1, 0}: {0, 255, 0, 255},
		{0, 1}: {0, 0, 255, 255},
		{1, 1}: {255, 255, 0, 255},
	}
	for pt, w := range want {
		c := img.NRGBAAt(pt.X, pt.Y)
		if got := [4]uint8{c.R, c.G, c.B, c.A}; got != w {
			t.Errorf("pixel %v = %v, want %v", pt, got, w)
		}
	}
}

// =============================================================================
// Seeding
// =============================================================================

// jitterKernel records the jittered sample position.
func jitterKernel[W simd.Width](ray geom.Ray[W], gen *sampling.Generator[W]) ResultRecord[W] {
	return ResultRecord[W]{Color: geom.V4(ray.Ori.X, ray.Ori.Y, gen.Next(), simd.Splat[W](1))}
}

func renderJittered(t *testing.T, workers int, frame uint32, opts ...Option) []float32 {
	t.Helper()
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 19, 13)
	s := NewTiledScheduler[simd.W8](workers, opts...)
	defer s.Close()
	p := Params[simd.W8]{Camera: &gridCamera[simd.W8]{}, Target: rt, Sampler: Jittered()}
	if err := s.Frame(jitterKernel[simd.W8], p, frame); err != nil {
		t.Fatal(err)
	}
	return append([]float32(nil), rt.Ref().Color.Float32s()...)
}

func TestDeterministicAcrossWorkers(t *testing.T) {
	a := renderJittered(t, 1, 3, WithBaseSeed(99))
	b := renderJittered(t, 8, 3, WithBaseSeed(99))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("value %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestJitterStaysInPixel(t *testing.T) {
	px := renderJittered(t, 2, 1)
	for i := 0; i < len(px); i += 4 {
		x, y := float32((i/4)%19), float32((i/4)/19)
		if px[i] < x || px[i] > x+1 || px[i+1] < y || px[i+1] > y+1 {
			t.Fatalf("pixel (%v,%v) sampled at (%v,%v)", x, y, px[i], px[i+1])
		}
	}
}

func TestSeedsVaryByFrame(t *testing.T) {
	a := renderJittered(t, 2, 1)
	b := renderJittered(t, 2, 2)
	same := 0
	for i := 0; i < len(a); i += 4 {
		if a[i] == b[i] {
			same++
		}
	}
	if same == len(a)/4 {
		t.Error("frames 1 and 2 produced identical jitter")
	}
}

// =============================================================================
// Pixel samplers
// =============================================================================

func TestProgressive(t *testing.T) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 6, 6)
	s := NewTiledScheduler[simd.W4](3)
	defer s.Close()

	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt, Sampler: Progressive()}
	for frame := uint32(1); frame <= 4; frame++ {
		if err := s.Frame(constKernel[simd.W4](float32(frame)), p, frame); err != nil {
			t.Fatal(err)
		}
	}
	// Mean of 1, 2, 3, 4.
	for y := range 6 {
		for x := range 6 {
			if got := rt.Ref().Color.At(x, y)[0]; math.Abs(float64(got-2.5)) > 1e-5 {
				t.Fatalf("pixel (%d,%d) = %v, want 2.5", x, y, got)
			}
		}
	}
}

func TestProgressiveAccumBuffer(t *testing.T) {
	rt, err := render.NewGPUBuffer(nopCreator{}, pixel.RGBA8, render.WithAccumBuffer())
	if err != nil {
		t.Fatal(err)
	}
	if err := rt.Resize(4, 4); err != nil {
		t.Fatal(err)
	}
	s := NewTiledScheduler[simd.W4](2)
	defer s.Close()

	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt, Sampler: Progressive()}
	for frame := uint32(1); frame <= 64; frame++ {
		v := float32(frame % 2)
		if err := s.Frame(constKernel[simd.W4](v), p, frame); err != nil {
			t.Fatal(err)
		}
	}
	ref := rt.Ref()
	if got := ref.Accum.At(1, 2)[0]; math.Abs(float64(got-0.5)) > 1e-5 {
		t.Errorf("accum = %v, want 0.5", got)
	}
	// The color buffer mirrors the accumulated average.
	if got := ref.Color.Image().NRGBAAt(1, 2).R; got < 127 || got > 128 {
		t.Errorf("color = %d, want about 128", got)
	}
}

func TestJitteredBlend(t *testing.T) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 4, 2)
	s := NewTiledScheduler[simd.W8](1)
	defer s.Close()

	p := Params[simd.W8]{Camera: &gridCamera[simd.W8]{}, Target: rt, Sampler: JitteredBlend(1, 1)}
	for frame := uint32(1); frame <= 2; frame++ {
		if err := s.Frame(constKernel[simd.W8](0.25), p, frame); err != nil {
			t.Fatal(err)
		}
	}
	if got := rt.Ref().Color.At(3, 1); got != [4]float32{0.5, 0.5, 0.5, 2} {
		t.Errorf("pixel = %v, want additive blend", got)
	}
}

func TestSSAA(t *testing.T) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Depth32F, 5, 5)
	s := NewTiledScheduler[simd.W4](2)
	defer s.Close()

	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt, Sampler: SSAA(4)}
	if err := s.Frame(coordKernel[simd.W4], p, 1); err != nil {
		t.Fatal(err)
	}
	ref := rt.Ref()
	for y := range 5 {
		for x := range 5 {
			px := ref.Color.At(x, y)
			// The mean of 4 samples inside the pixel stays inside it.
			if px[0] < float32(x) || px[0] > float32(x+1) || px[3] != 1 {
				t.Fatalf("pixel (%d,%d) = %v", x, y, px)
			}
			if d := ref.Depth.At(x, y)[0]; d != 0.5 {
				t.Fatalf("depth (%d,%d) = %v, want 0.5", x, y, d)
			}
		}
	}
}

func TestDepthSelect(t *testing.T) {
	rt := newTarget(t, pixel.RGBA8, pixel.Depth32F, 4, 4)
	s := NewTiledScheduler[simd.W16](1)
	defer s.Close()

	// Hit only the left half.
	k := func(ray geom.Ray[simd.W16], _ *sampling.Generator[simd.W16]) ResultRecord[simd.W16] {
		return ResultRecord[simd.W16]{
			Hit:   ray.Ori.X.Lt(simd.Splat[simd.W16](2)),
			Color: geom.SplatV4[simd.W16](1, 1, 1, 1),
			Depth: simd.Splat[simd.W16](0.25),
		}
	}
	if err := rt.ClearDepthBuffer(0); err != nil {
		t.Fatal(err)
	}
	if err := s.Frame(k, Params[simd.W16]{Camera: &gridCamera[simd.W16]{}, Target: rt}, 1); err != nil {
		t.Fatal(err)
	}
	for y := range 4 {
		for x := range 4 {
			want := float32(1)
			if x < 2 {
				want = 0.25
			}
			if got := rt.Ref().Depth.At(x, y)[0]; got != want {
				t.Errorf("depth (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorSourceRGB(t *testing.T) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 2, 2)
	s := NewTiledScheduler[simd.W4](1)
	defer s.Close()

	k := func(geom.Ray[simd.W4], *sampling.Generator[simd.W4]) ResultRecord[simd.W4] {
		return ResultRecord[simd.W4]{Color: geom.SplatV4[simd.W4](0.5, 0.5, 0.5, 0)}
	}
	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt, ColorSource: pixel.RGB32F}
	if err := s.Frame(k, p, 1); err != nil {
		t.Fatal(err)
	}
	if got := rt.Ref().Color.At(1, 1)[3]; got != 1 {
		t.Errorf("alpha = %v, want 1", got)
	}
}

// =============================================================================
// Errors and panics
// =============================================================================

func TestFrameErrors(t *testing.T) {
	sized := newTarget(t, pixel.RGBA8, pixel.Unspecified, 2, 2)
	unsized, err := render.NewCPUBuffer(pixel.RGBA8, pixel.Unspecified)
	if err != nil {
		t.Fatal(err)
	}
	cam := &gridCamera[simd.W4]{}

	tests := []struct {
		name string
		k    Kernel[simd.W4]
		p    Params[simd.W4]
		want error
	}{
		{"nil kernel", nil, Params[simd.W4]{Camera: cam, Target: sized}, ErrNilKernel},
		{"nil camera", coordKernel[simd.W4], Params[simd.W4]{Target: sized}, ErrNilCamera},
		{"nil target", coordKernel[simd.W4], Params[simd.W4]{Camera: cam}, ErrNilTarget},
		{"unsized", coordKernel[simd.W4], Params[simd.W4]{Camera: cam, Target: unsized}, render.ErrNotSized},
		{"bad source", coordKernel[simd.W4], Params[simd.W4]{Camera: cam, Target: sized, ColorSource: pixel.R32F}, pixel.ErrUnsupportedConversion},
	}
	s := NewTiledScheduler[simd.W4](1)
	defer s.Close()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Frame(tt.k, tt.p, 1); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	// Failed frames leave the target ready for the next one.
	if sized.InFrame() {
		t.Error("target left in frame after a failed Frame")
	}
}

func TestFrameErrorLogsEndFrameFailure(t *testing.T) {
	orig := logging.L()
	t.Cleanup(func() { logging.Set(orig) })
	var buf bytes.Buffer
	logging.Set(slog.New(slog.NewTextHandler(&buf, nil)))

	rt := &failingEndTarget{CPUBuffer: newTarget(t, pixel.RGBA8, pixel.Unspecified, 2, 2)}
	s := NewTiledScheduler[simd.W4](1)
	defer s.Close()

	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt, ColorSource: pixel.R32F}
	if err := s.Frame(coordKernel[simd.W4], p, 1); !errors.Is(err, pixel.ErrUnsupportedConversion) {
		t.Fatalf("err = %v, want %v", err, pixel.ErrUnsupportedConversion)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, errEndFrame.Error()) {
		t.Errorf("end frame failure not logged at warn: %q", out)
	}
}

func TestFramePanic(t *testing.T) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 32, 32)
	log := &eventLog{}
	cam := &gridCamera[simd.W4]{log: log}
	s := NewTiledScheduler[simd.W4](4)
	defer s.Close()

	var calls atomic.Int32
	k := func(ray geom.Ray[simd.W4], gen *sampling.Generator[simd.W4]) ResultRecord[simd.W4] {
		calls.Add(1)
		if ray.Ori.X.Lane(0) == 16.5 && ray.Ori.Y.Lane(0) == 16.5 {
			panic("boom")
		}
		return coordKernel(ray, gen)
	}

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recovered %v, want boom", r)
			}
		}()
		_ = s.Frame(k, Params[simd.W4]{Camera: cam, Target: rt}, 1)
		t.Error("Frame returned instead of panicking")
	}()

	// The panicking packet opens the last 16x16 tile, which stops there;
	// the other three tiles run to completion.
	const packetsPerTile = 16 * 16 / 4
	if got, want := calls.Load(), int32(3*packetsPerTile+1); got != want {
		t.Errorf("kernel calls = %d, want %d", got, want)
	}
	if rt.InFrame() {
		t.Error("target left in frame after a panic")
	}
	if n := len(log.events); n != 2 || log.events[1] != "camera.end" {
		t.Errorf("camera events = %v", log.events)
	}

	// The scheduler is still usable.
	if err := s.Frame(coordKernel[simd.W4], Params[simd.W4]{Camera: cam, Target: rt}, 2); err != nil {
		t.Fatalf("Frame after panic: %v", err)
	}
}

func TestCloseAndReset(t *testing.T) {
	s := NewTiledScheduler[simd.W4](2)
	if got := s.Workers(); got != 2 {
		t.Errorf("Workers = %d, want 2", got)
	}
	s.Reset(3)
	if got := s.Workers(); got != 3 {
		t.Errorf("Workers after Reset = %d, want 3", got)
	}
	s.Reset(3)

	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 8, 8)
	p := Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt}
	if err := s.Frame(coordKernel[simd.W4], p, 1); err != nil {
		t.Fatal(err)
	}
	checkCoords(t, rt.Ref().Color, image.Rect(0, 0, 8, 8))

	s.Close()
	s.Close()
	if err := s.Frame(coordKernel[simd.W4], p, 2); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

type markerScene struct {
	intersect.List[simd.W4]
}

func TestFrameIntersect(t *testing.T) {
	rt := newTarget(t, pixel.RGBA32F, pixel.Unspecified, 4, 4)
	s := NewTiledScheduler[simd.W4](2)
	defer s.Close()

	want := &markerScene{}
	var seen atomic.Bool
	k := func(isect intersect.Intersector[simd.W4], ray geom.Ray[simd.W4], gen *sampling.Generator[simd.W4]) ResultRecord[simd.W4] {
		if isect == intersect.Intersector[simd.W4](want) {
			seen.Store(true)
		}
		return coordKernel(ray, gen)
	}
	if err := s.FrameIntersect(k, Params[simd.W4]{Camera: &gridCamera[simd.W4]{}, Target: rt}, want, 1); err != nil {
		t.Fatal(err)
	}
	if !seen.Load() {
		t.Error("kernel did not receive the intersector")
	}
	checkCoords(t, rt.Ref().Color, image.Rect(0, 0, 4, 4))
}

func TestPixelSamplerString(t *testing.T) {
	tests := map[string]PixelSampler{
		"Uniform":               {},
		"Jittered":              Jittered(),
		"JitteredBlend(1, 0.5)": JitteredBlend(1, 0.5),
		"Progressive":           Progressive(),
		"SSAA(1)":               SSAA(0),
	}
	for want, s := range tests {
		if got := s.String(); got != want {
			t.Errorf("String = %q, want %q", got, want)
		}
	}
	if got := SeedWallClock.String(); got != "WallClock" {
		t.Errorf("SeedMode = %q", got)
	}
}

func BenchmarkFrame(b *testing.B) {
	rt, _ := render.NewCPUBuffer(pixel.RGBA8, pixel.Unspecified)
	_ = rt.Resize(256, 256)
	s := NewTiledScheduler[simd.W8](0)
	defer s.Close()
	p := Params[simd.W8]{Camera: &gridCamera[simd.W8]{}, Target: rt}
	b.ReportAllocs()
	for i := range b.N {
		_ = s.Frame(coordKernel[simd.W8], p, uint32(i+1))
	}
}
