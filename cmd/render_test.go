package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sshashank124/fission-sub000/pkg/log"
	"github.com/sshashank124/fission-sub000/pkg/renderer"
)

const smallScene = `
tracer: {type: path, max_depth: 4}
sampler: {type: independent}
passes: 2
scene:
  camera:
    fov: 40
    resolution: [8, 6]
    transforms:
      - look_at: {origin: [0, 0, -4], target: [0, 0, 0]}
  elements:
    - type: sphere
      bsdf: {type: diffuse, albedo: 0.5}
    - type: infinitelight
      color: 1
`

func writeScene(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "small.yaml")
	if err := os.WriteFile(path, []byte(smallScene), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	return dir, path
}

func TestRenderCommandWithCheckpoint(t *testing.T) {
	dir, scenePath := writeScene(t)
	statePath := filepath.Join(dir, "progress.state")
	exrPath := filepath.Join(dir, "out.exr")
	pngPath := filepath.Join(dir, "out.png")

	args := []string{"fission", "render", "--no-progress", "--passes", "1", "-o", exrPath,
		"--preview", pngPath, scenePath, statePath}
	if err := NewApp().Run(args); err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	state, err := renderer.LoadState(statePath)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if state.Pass != 1 {
		t.Errorf("Expected 1 pass after first run, got %d", state.Pass)
	}

	// Resume up to the scene's pass count
	args = []string{"fission", "render", "--no-progress", "-o", exrPath, scenePath, statePath}
	if err := NewApp().Run(args); err != nil {
		t.Fatalf("Resumed render failed: %v", err)
	}
	if state, err = renderer.LoadState(statePath); err != nil || state.Pass != 2 {
		t.Errorf("Expected 2 passes after resume, got %v (%v)", state, err)
	}

	for _, path := range []string{exrPath, pngPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected output %s, got %v", path, err)
		}
	}
}

func TestRenderCommandDefaultAction(t *testing.T) {
	dir, scenePath := writeScene(t)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	if err := NewApp().Run([]string{"fission", "--no-progress", scenePath}); err != nil {
		t.Fatalf("Default render failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "small.exr")); err != nil {
		t.Errorf("Expected small.exr next to the working directory: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir, scenePath := writeScene(t)

	err := NewApp().Run([]string{"fission", "render", filepath.Join(dir, "missing.yaml")})
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("Expected error naming the missing scene, got %v", err)
	}

	// A checkpoint with a different resolution must be rejected
	statePath := filepath.Join(dir, "other.state")
	if err := renderer.SaveState(statePath, renderer.NewRenderState(3, 3)); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	err = NewApp().Run([]string{"fission", "render", "--no-progress", scenePath, statePath})
	if err == nil || !strings.Contains(err.Error(), "resolution") {
		t.Errorf("Expected state mismatch error, got %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	_, scenePath := writeScene(t)
	if err := NewApp().Run([]string{"fission", "inspect", scenePath}); err != nil {
		t.Errorf("Inspect failed: %v", err)
	}
	if err := NewApp().Run([]string{"fission", "inspect"}); err == nil {
		t.Error("Expected an error without a scene argument")
	}
}

func TestAppGlobalFlags(t *testing.T) {
	_, scenePath := writeScene(t)

	for _, args := range [][]string{
		{"fission", "--help"},
		{"fission", "--version"},
		{"fission", "-v", "inspect", scenePath},
		{"fission", "-vv", "inspect", scenePath},
		{"fission", "--log-level", "warning", "inspect", scenePath},
	} {
		if err := NewApp().Run(args); err != nil {
			t.Errorf("%v failed: %v", args[1:], err)
		}
	}
	log.SetLevel(log.Notice)

	err := NewApp().Run([]string{"fission", "--log-level", "loud", "inspect", scenePath})
	if err == nil || !strings.Contains(err.Error(), "loud") {
		t.Errorf("Expected an unknown level error, got %v", err)
	}
}
