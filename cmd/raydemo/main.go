// Command raydemo renders a small procedural scene with the raypack
// kernels and writes the image as BMP, TIFF or PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/tiff"

	"github.com/gogpu/raypack"
	"github.com/gogpu/raypack/camera"
	"github.com/gogpu/raypack/kernel"
	"github.com/gogpu/raypack/pixel"
	"github.com/gogpu/raypack/render"
	"github.com/gogpu/raypack/sched"
	"github.com/gogpu/raypack/simd"
)

type config struct {
	width, height int
	lanes         int
	threads       int
	frames        int
	samples       int
	radius        float64
	shading       string
	texture       string
	filter        string
	seed          uint64
}

func main() {
	var (
		cfg     config
		output  = flag.String("output", "raydemo.bmp", "output file (.bmp, .tif, .tiff or .png)")
		verbose = flag.Bool("v", false, "log to stderr")
	)
	flag.IntVar(&cfg.width, "width", 640, "image width")
	flag.IntVar(&cfg.height, "height", 480, "image height")
	flag.IntVar(&cfg.lanes, "lanes", simd.NativeWidth(), "packet width: 1, 4, 8 or 16")
	flag.IntVar(&cfg.threads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	flag.IntVar(&cfg.frames, "frames", 16, "progressive frames")
	flag.IntVar(&cfg.samples, "samples", 8, "ambient occlusion samples per hit")
	flag.Float64Var(&cfg.radius, "radius", 0.5, "ambient occlusion radius")
	flag.StringVar(&cfg.shading, "shading", "ao", "kernel: ao or simple")
	flag.StringVar(&cfg.texture, "texture", "", "floor texture for simple shading (.bmp, .tif, .tiff or .png); empty uses a checkerboard")
	flag.StringVar(&cfg.filter, "filter", "linear", "texture filter: nearest, linear, cubic or catmull-rom")
	flag.Uint64Var(&cfg.seed, "seed", 1, "base random seed")
	flag.Parse()

	if *verbose {
		raypack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var (
		img *image.NRGBA
		err error
	)
	switch cfg.lanes {
	case 1:
		img, err = run[simd.W1](cfg)
	case 4:
		img, err = run[simd.W4](cfg)
	case 8:
		img, err = run[simd.W8](cfg)
	case 16:
		img, err = run[simd.W16](cfg)
	default:
		log.Fatalf("unsupported lane count %d", cfg.lanes)
	}
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := save(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Image saved to %s (%dx%d, %d lanes, %s)\n", *output, cfg.width, cfg.height, cfg.lanes, simd.DetectedISA())
}

// newTarget returns a float color target so progressive averaging keeps
// full precision across frames; the image is quantized only on save.
func newTarget(width, height int) (*render.CPUBuffer, error) {
	rt, err := render.NewCPUBuffer(pixel.RGBA32F, pixel.Depth24Stencil8)
	if err != nil {
		return nil, err
	}
	if err := rt.Resize(width, height); err != nil {
		return nil, err
	}
	return rt, nil
}

func run[W simd.Width](cfg config) (*image.NRGBA, error) {
	rt, err := newTarget(cfg.width, cfg.height)
	if err != nil {
		return nil, err
	}

	scene := buildScene[W]()
	aspect := float32(cfg.width) / float32(cfg.height)
	cam := camera.NewPinhole[W](f32.Vec3{0, 1.2, 4}, f32.Vec3{0, 0.3, 0}, f32.Vec3{0, 1, 0}, math.Pi/4, aspect)

	bg := f32.Vec4{0.15, 0.2, 0.3, 1}
	var k sched.Kernel[W]
	switch cfg.shading {
	case "ao":
		k = kernel.NewAO[W](scene,
			kernel.WithSamples(cfg.samples),
			kernel.WithRadius(float32(cfg.radius)),
			kernel.WithBackground(bg),
		).Kernel()
	case "simple":
		tex, err := loadTexture(cfg.texture, cfg.filter)
		if err != nil {
			return nil, err
		}
		k = kernel.NewSimple[W](scene,
			kernel.WithTexture(tex, 0.5),
			kernel.WithBackground(bg),
			kernel.WithAmbient(f32.Vec3{0.3, 0.3, 0.3}),
			kernel.WithLights(
				kernel.PointLight{Position: f32.Vec3{3, 5, 4}, Color: f32.Vec3{1, 1, 1}, Intensity: 1},
				kernel.NewSpotLight(
					kernel.PointLight{Position: f32.Vec3{-2, 4, 1}, Color: f32.Vec3{1, 0.8, 0.6}, Intensity: 0.8},
					f32.Vec3{2, -4, -1}, math.Pi/8, 8),
			),
		).Kernel()
	default:
		return nil, fmt.Errorf("unknown shading %q", cfg.shading)
	}

	s := sched.NewTiledScheduler[W](cfg.threads, sched.WithBaseSeed(cfg.seed))
	defer s.Close()

	p := sched.Params[W]{Camera: cam, Target: rt, Sampler: sched.Progressive()}
	for frame := 1; frame <= max(cfg.frames, 1); frame++ {
		if err := s.Frame(k, p, uint32(frame)); err != nil {
			return nil, err
		}
	}
	return rt.Ref().Color.Image(), nil
}

func save(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}
	case ".png":
		encode = png.Encode
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
