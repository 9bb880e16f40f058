package renderer

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/sshashank124/fission-sub000/pkg/scene"
)

const stateFile = "state.bin"

// RenderState is the checkpoint unit: the accumulated image and the number
// of fully completed passes.
type RenderState struct {
	Image *Block
	Pass  int
}

// NewRenderState creates an empty state for the given resolution.
func NewRenderState(width, height int) *RenderState {
	return &RenderState{Image: NewImage(width, height)}
}

// Validate checks that the state can continue rendering through camera.
func (s *RenderState) Validate(camera *scene.Camera) error {
	if s.Image == nil || len(s.Image.Pixels) != s.Image.Width()*s.Image.Height() || s.Pass < 0 {
		return ErrInvalidState
	}
	if s.Image.Bounds.Min.X != 0 || s.Image.Bounds.Min.Y != 0 ||
		s.Image.Width() != camera.Width || s.Image.Height() != camera.Height {
		return fmt.Errorf("%w: state is %dx%d, camera is %dx%d",
			ErrStateMismatch, s.Image.Width(), s.Image.Height(), camera.Width, camera.Height)
	}
	return nil
}

// Encode writes the state as a zip archive holding a single gob entry.
func (s *RenderState) Encode(w io.Writer) error {
	zw := zip.NewWriter(w)
	cw, err := zw.Create(stateFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(cw).Encode(s); err != nil {
		return err
	}
	return zw.Close()
}

// DecodeState reads a state written by Encode.
func DecodeState(data []byte) (*RenderState, error) {
	// zip requires a ReaderAt so the archive is read from memory
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	var state *RenderState
	for _, f := range zr.File {
		if f.Name != stateFile {
			logger.Warningf("unknown file %s in state archive; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		state = &RenderState{}
		err = gob.NewDecoder(rc).Decode(state)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidState, f.Name, err)
		}
	}

	if state == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidState, stateFile)
	}
	if state.Image == nil || len(state.Image.Pixels) != state.Image.Width()*state.Image.Height() {
		return nil, ErrInvalidState
	}
	return state, nil
}

// SaveState writes the state to path, replacing any existing file only
// once the new one is completely written.
func SaveState(path string, s *RenderState) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("renderer: encode state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("renderer: write %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renderer: write %q: %w", path, err)
	}

	logger.Infof("saved state with %d passes to %s", s.Pass, path)
	return nil
}

// LoadState reads a state file written by SaveState.
func LoadState(path string) (*RenderState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("renderer: read %q: %w", path, err)
	}
	state, err := DecodeState(data)
	if err != nil {
		return nil, fmt.Errorf("renderer: load %q: %w", path, err)
	}

	logger.Infof("loaded state with %d passes from %s", state.Pass, path)
	return state, nil
}
