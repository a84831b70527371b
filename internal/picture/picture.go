package picture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "github.com/chai2010/webp"
	_ "github.com/strukturag/libheif/go/heif"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

var ErrDecode = errors.New("picture: decode failed")

// Picture is a decoded image flattened to one 32-bit word per pixel.
// Each word holds the non-premultiplied R, G, B, A bytes in host byte
// order, the same value C code gets by casting an RGBA byte buffer to
// uint32_t*.
type Picture struct {
	Width  int
	Height int
	Format string
	Pixels []uint32
}

func Load(path string) (*Picture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

func Decode(r io.Reader) (*Picture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}

	rgba := toNRGBA(img)
	width, height := bounds.Dx(), bounds.Dy()

	pixels := make([]uint32, 0, width*height)
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		for x := 0; x < len(row); x += 4 {
			pixels = append(pixels, binary.NativeEndian.Uint32(row[x:x+4]))
		}
	}

	return &Picture{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: pixels,
	}, nil
}

// toNRGBA returns img as an NRGBA image anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// Channels splits a packed pixel back into its R, G, B, A bytes.
func Channels(p uint32) (r, g, b, a uint8) {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], p)
	return buf[0], buf[1], buf[2], buf[3]
}
