// Package imageinfo reads container metadata from an image file without
// decoding its pixels: dimensions, colour model, bit depth, embedded ICC
// profile and, for JPEG, the chroma subsampling.
package imageinfo

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "github.com/chai2010/webp"
	_ "github.com/strukturag/libheif/go/heif"
)

type Info struct {
	Format        string
	Width         int
	Height        int
	ColorModel    string
	BitDepth      int
	BytesPerPixel int
	ICCProfile    []byte
	ColorSpace    string
	Subsampling   string // JPEG only
	FileSize      int64
}

// EstimatedSize is the number of bytes the decoder's native buffer will
// occupy.
func (i *Info) EstimatedSize() int64 {
	return int64(i.Width) * int64(i.Height) * int64(i.BytesPerPixel)
}

func (i *Info) String() string {
	s := fmt.Sprintf("format=%s size=%dx%d model=%s depth=%d space=%s",
		i.Format, i.Width, i.Height, i.ColorModel, i.BitDepth, i.ColorSpace)
	if i.Subsampling != "" {
		s += " subsampling=" + i.Subsampling
	}
	if len(i.ICCProfile) > 0 {
		s += fmt.Sprintf(" icc=%dB", len(i.ICCProfile))
	}
	return s + fmt.Sprintf(" file=%dB decoded=%dB", i.FileSize, i.EstimatedSize())
}

func Inspect(filename string) (*Info, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, err
	}

	return InspectReader(file, fileInfo.Size())
}

func InspectReader(r io.ReadSeeker, size int64) (*Info, error) {
	config, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Format:     format,
		Width:      config.Width,
		Height:     config.Height,
		ColorModel: ColorModelName(config.ColorModel),
		ColorSpace: "sRGB",
		FileSize:   size,
	}

	switch format {
	case "png":
		p := scanPNG(r)
		info.BitDepth = p.bitDepth
		info.ICCProfile = p.icc
		info.BytesPerPixel = pngBytesPerPixel(config.ColorModel)

	case "jpeg":
		j := scanJPEG(r)
		info.BitDepth = j.precision
		info.ICCProfile = j.icc
		if config.ColorModel == color.CMYKModel {
			info.BytesPerPixel = 4
			info.BitDepth = 8
		} else {
			info.Subsampling = j.subsampling
			info.BytesPerPixel = 3
			if j.subsampling == "4:2:2" || j.subsampling == "4:2:0" {
				info.BytesPerPixel = 2
			}
		}

	case "heif", "avif":
		info.BytesPerPixel, info.BitDepth = heifLayout(config.ColorModel)
		info.ColorSpace = "BT.709"

	case "webp":
		info.BytesPerPixel = 4
		info.BitDepth = 8

	default:
		info.BytesPerPixel, info.BitDepth = genericLayout(config.ColorModel)
	}

	if len(info.ICCProfile) > 0 {
		info.ColorSpace = ColorSpaceFromICC(info.ICCProfile)
	}

	return info, nil
}

func ColorModelName(cm color.Model) string {
	switch cm {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	default:
		if _, ok := cm.(color.Palette); ok {
			return "Paletted"
		}
		return "Unknown"
	}
}

func pngBytesPerPixel(cm color.Model) int {
	switch cm {
	case color.GrayModel:
		return 1
	case color.Gray16Model:
		return 2
	case color.RGBA64Model, color.NRGBA64Model:
		return 8
	}
	if _, ok := cm.(color.Palette); ok {
		return 1
	}
	return 4
}

func heifLayout(cm color.Model) (bytesPerPixel, bitDepth int) {
	switch cm {
	case color.GrayModel:
		return 1, 8
	case color.Gray16Model:
		return 2, 10
	case color.RGBA64Model, color.NRGBA64Model:
		return 8, 10
	default:
		return 3, 8
	}
}

func genericLayout(cm color.Model) (bytesPerPixel, bitDepth int) {
	switch cm {
	case color.GrayModel, color.AlphaModel:
		return 1, 8
	case color.Gray16Model, color.Alpha16Model:
		return 2, 16
	case color.RGBA64Model, color.NRGBA64Model:
		return 8, 16
	case color.CMYKModel:
		return 4, 8
	}
	if _, ok := cm.(color.Palette); ok {
		return 1, 8
	}
	return 4, 8
}

// ColorSpaceFromICC guesses the colour space from the description
// strings embedded in an ICC profile.
func ColorSpaceFromICC(iccData []byte) string {
	if len(iccData) < 128 {
		return "sRGB"
	}

	switch {
	case bytes.Contains(iccData, []byte("Display P3")) || bytes.Contains(iccData, []byte("P3")):
		return "Display P3"
	case bytes.Contains(iccData, []byte("BT.2020")) || bytes.Contains(iccData, []byte("Rec. 2020")):
		return "BT.2020"
	case bytes.Contains(iccData, []byte("BT.709")) || bytes.Contains(iccData, []byte("Rec. 709")):
		return "BT.709"
	case bytes.Contains(iccData, []byte("Adobe RGB")):
		return "Adobe RGB"
	}
	return "sRGB (ICC)"
}

type pngChunks struct {
	bitDepth int
	icc      []byte
}

// scanPNG walks the chunk list for IHDR and iCCP. The iCCP payload is
// inflated so callers see the raw profile.
func scanPNG(r io.ReadSeeker) pngChunks {
	out := pngChunks{bitDepth: 8}
	_, _ = r.Seek(8, io.SeekStart)

	buf := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return out
		}

		length := binary.BigEndian.Uint32(buf[:4])
		chunkType := string(buf[4:8])

		switch chunkType {
		case "IHDR":
			if length != 13 {
				return out
			}
			ihdr := make([]byte, length)
			if _, err := io.ReadFull(r, ihdr); err != nil {
				return out
			}
			out.bitDepth = int(ihdr[8])
			_, _ = r.Seek(4, io.SeekCurrent)
			continue

		case "iCCP":
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return out
			}
			out.icc = inflateICCP(data)
			return out

		case "IDAT", "IEND":
			return out
		}

		_, _ = r.Seek(int64(length)+4, io.SeekCurrent)
	}
}

// inflateICCP decodes "name\0 method zlib-data".
func inflateICCP(data []byte) []byte {
	nul := bytes.IndexByte(data, 0)
	if nul < 0 || nul+2 > len(data) {
		return data
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[nul+2:]))
	if err != nil {
		return data
	}
	defer func() { _ = zr.Close() }()

	profile, err := io.ReadAll(zr)
	if err != nil {
		return data
	}
	return profile
}

type jpegMarkers struct {
	precision   int
	subsampling string
	icc         []byte
}

// scanJPEG walks the marker segments up to the first frame header,
// collecting APP2 ICC data and the SOF sample factors.
func scanJPEG(r io.ReadSeeker) jpegMarkers {
	out := jpegMarkers{precision: 8, subsampling: "Unknown"}
	_, _ = r.Seek(0, io.SeekStart)

	buf := make([]byte, 2)
	if _, err := io.ReadFull(r, buf); err != nil || buf[0] != 0xFF || buf[1] != 0xD8 {
		return out
	}

	for {
		if _, err := io.ReadFull(r, buf); err != nil || buf[0] != 0xFF {
			return out
		}

		marker := buf[1]
		if marker == 0xD9 || marker == 0xDA {
			return out
		}

		if _, err := io.ReadFull(r, buf); err != nil {
			return out
		}
		length := int(binary.BigEndian.Uint16(buf)) - 2
		if length < 0 {
			return out
		}

		switch marker {
		case 0xC0, 0xC1, 0xC2:
			sof := make([]byte, length)
			if _, err := io.ReadFull(r, sof); err != nil {
				return out
			}
			if len(sof) > 0 {
				out.precision = int(sof[0])
			}
			out.subsampling = subsamplingFromSOF(sof)
			return out

		case 0xE2:
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return out
			}
			if len(data) > 14 && string(data[:12]) == "ICC_PROFILE\x00" {
				out.icc = append(out.icc, data[14:]...)
			}

		default:
			_, _ = r.Seek(int64(length), io.SeekCurrent)
		}
	}
}

func subsamplingFromSOF(sof []byte) string {
	if len(sof) < 6 {
		return "Unknown"
	}

	numComponents := sof[5]
	if numComponents < 3 {
		return "Grayscale"
	}
	if len(sof) < 6+int(numComponents)*3 {
		return "Unknown"
	}

	ySample := sof[7]
	cbSample := sof[10]

	yH, yV := ySample>>4, ySample&0x0F
	cbH, cbV := cbSample>>4, cbSample&0x0F

	switch {
	case cbH != 1 || cbV != 1:
	case yH == 1 && yV == 1:
		return "4:4:4"
	case yH == 2 && yV == 1:
		return "4:2:2"
	case yH == 2 && yV == 2:
		return "4:2:0"
	}
	return fmt.Sprintf("Custom (%dx%d:%dx%d)", yH, yV, cbH, cbV)
}
