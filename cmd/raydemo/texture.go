package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/gogpu/raypack/texture"
)

// loadTexture decodes path into a repeating texture, or builds a
// checkerboard when path is empty.
func loadTexture(path, filter string) (*texture.Texture2D, error) {
	var (
		tex *texture.Texture2D
		err error
	)
	if path == "" {
		tex, err = checkerboard(8, [4]float32{0.9, 0.9, 0.9, 1}, [4]float32{0.3, 0.3, 0.35, 1})
	} else {
		tex, err = decodeTexture(path)
	}
	if err != nil {
		return nil, err
	}

	switch filter {
	case "nearest":
		tex.Filter = texture.Nearest
	case "linear":
		tex.Filter = texture.Linear
	case "cubic":
		tex.Filter = texture.Cubic
	case "catmull-rom":
		tex.Filter = texture.CubicCatmullRom
	default:
		return nil, fmt.Errorf("unknown filter %q", filter)
	}
	tex.SetAddressMode(gputypes.AddressModeRepeat)
	return tex, nil
}

func decodeTexture(path string) (*texture.Texture2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return texture.FromImage(img)
}

// checkerboard returns an n x n texture of alternating colors a and b.
func checkerboard(n int, a, b [4]float32) (*texture.Texture2D, error) {
	data := make([]float32, 0, n*n*4)
	for y := range n {
		for x := range n {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			data = append(data, c[:]...)
		}
	}
	return texture.NewTexture2D(n, n, 4, data)
}
