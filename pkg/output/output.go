// Package output writes rendered images to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/log"
)

var logger = log.New("output")

// Source is a readable radiance image
type Source interface {
	Width() int
	Height() int
	Eval(x, y int) core.Color
}

// writeFile creates path, hands it to write and closes it, reporting the
// first error.
func writeFile(path string, write func(f *os.File) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output: create %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("output: close %q: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("output: write %q: %w", path, err)
	}
	return nil
}
