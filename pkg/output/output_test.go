package output

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// gradientImage is a synthetic source with distinct values per pixel
type gradientImage struct {
	width, height int
}

func (g gradientImage) Width() int  { return g.width }
func (g gradientImage) Height() int { return g.height }
func (g gradientImage) Eval(x, y int) core.Color {
	return core.NewColor(float64(x), float64(y), 0.25)
}

func readEXR(t *testing.T, path string) (*exr.Header, [3][]float32) {
	t.Helper()
	f, err := exr.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	r, err := exr.NewScanlineReader(f)
	if err != nil {
		t.Fatalf("NewScanlineReader failed: %v", err)
	}
	h := r.Header()
	width, height := h.Width(), h.Height()

	var planes [3][]float32
	fb := exr.NewFrameBuffer()
	for i, name := range exrChannels {
		planes[i] = make([]float32, width*height)
		if err := fb.Insert(name, exr.NewSliceFromFloat32(planes[i], width, height)); err != nil {
			t.Fatalf("Insert %s failed: %v", name, err)
		}
	}
	r.SetFrameBuffer(fb)
	if err := r.ReadPixels(0, height-1); err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	return h, planes
}

func TestEncodeEXR(t *testing.T) {
	src := gradientImage{width: 3, height: 2}
	path := filepath.Join(t.TempDir(), "gradient.exr")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := EncodeEXR(f, src); err != nil {
		t.Fatalf("EncodeEXR failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	h, planes := readEXR(t, path)
	if h.Width() != src.width || h.Height() != src.height {
		t.Fatalf("Expected %dx%d, got %dx%d", src.width, src.height, h.Width(), h.Height())
	}
	if h.Compression() != exr.CompressionZIP {
		t.Errorf("Expected zip compression, got %v", h.Compression())
	}
	if h.Channels().Len() != 3 {
		t.Errorf("Expected 3 channels, got %d", h.Channels().Len())
	}
	for _, name := range exrChannels {
		if ch := h.Channels().Get(name); ch == nil || ch.Type != exr.PixelTypeFloat {
			t.Errorf("Expected float channel %s, got %+v", name, ch)
		}
	}

	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			i := y*src.width + x
			b, g, r := planes[0][i], planes[1][i], planes[2][i]
			if r != float32(x) || g != float32(y) || b != 0.25 {
				t.Errorf("Pixel (%d,%d): got r=%v g=%v b=%v", x, y, r, g, b)
			}
		}
	}
}

func TestWriteEXRCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders", "out.exr")
	if err := WriteEXR(path, gradientImage{width: 2, height: 2}); err != nil {
		t.Fatalf("WriteEXR failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty file, got %v %v", info, err)
	}
}

type constantImage struct {
	width, height int
	c             core.Color
}

func (c constantImage) Width() int               { return c.width }
func (c constantImage) Height() int              { return c.height }
func (c constantImage) Eval(int, int) core.Color { return c.c }

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		c        core.Color
		exposure float64
		expected uint8
	}{
		{"black", core.Black, 0, 0},
		{"white", core.White, 0, 255},
		{"clamped", core.Gray(8), 0, 255},
		{"negative", core.Gray(-1), 0, 0},
		{"mid gray", core.Gray(0.2159), 0, 128},
		{"exposure", core.Gray(0.10795), 1, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := ToneMap(constantImage{width: 1, height: 1, c: tt.c}, tt.exposure)
			got := img.NRGBAAt(0, 0)
			if got.R != tt.expected || got.G != tt.expected || got.B != tt.expected || got.A != 255 {
				t.Errorf("Expected %d, got %+v", tt.expected, got)
			}
		})
	}
}

func TestWritePreviewResizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	src := constantImage{width: 40, height: 20, c: core.White}
	if err := WritePreview(path, src, PreviewOptions{Width: 10}); err != nil {
		t.Fatalf("WritePreview failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open preview: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode preview: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Errorf("Expected 10x5 preview, got %v", img.Bounds())
	}
	if r, _, _, _ := img.At(5, 2).RGBA(); r>>8 != 255 {
		t.Errorf("Expected white preview, got r=%d", r>>8)
	}
}
