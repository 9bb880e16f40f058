package output

import (
	"io"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"
)

// exrChannels are stored in alphabetical order as the format requires
var exrChannels = [3]string{"B", "G", "R"}

// WriteEXR writes src as a 32-bit float RGB OpenEXR file.
func WriteEXR(path string, src Source) error {
	err := writeFile(path, func(f *os.File) error {
		return EncodeEXR(f, src)
	})
	if err == nil {
		logger.Noticef("wrote %dx%d exr image to %s", src.Width(), src.Height(), path)
	}
	return err
}

// EncodeEXR writes src to w as a zip-compressed scanline OpenEXR image.
func EncodeEXR(w io.WriteSeeker, src Source) error {
	width, height := src.Width(), src.Height()

	header := exr.NewScanlineHeader(width, height)
	header.SetCompression(exr.CompressionZIP)
	channels := exr.NewChannelList()
	for _, name := range exrChannels {
		channels.Add(exr.NewChannel(name, exr.PixelTypeFloat))
	}
	header.SetChannels(channels)

	var planes [3][]float32
	for i := range planes {
		planes[i] = make([]float32, width*height)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := src.Eval(x, y)
			i := y*width + x
			planes[0][i], planes[1][i], planes[2][i] = float32(c.B), float32(c.G), float32(c.R)
		}
	}

	fb := exr.NewFrameBuffer()
	for i, name := range exrChannels {
		if err := fb.Insert(name, exr.NewSliceFromFloat32(planes[i], width, height)); err != nil {
			return err
		}
	}

	writer, err := exr.NewScanlineWriter(w, header)
	if err != nil {
		return err
	}
	writer.SetFrameBuffer(fb)
	if err := writer.WritePixels(0, height-1); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
