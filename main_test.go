package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"two spheres", "two-spheres", false},
		{"cornell box", "cornell-box", false},
		{"bouncing spheres", "bouncing-spheres", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.sceneType, 42, scene.Options{})

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for '%s', got %v", tt.sceneType, err)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if sc.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", sc.CameraConfig.Width)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	if got := outputPath("custom.ppm", "quads", now); got != "custom.ppm" {
		t.Errorf("Explicit output should be kept, got %s", got)
	}
	expected := filepath.Join("output", "quads", "render_20240305_140709.png")
	if got := outputPath("", "quads", now); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "two-spheres.png")

	app := newApp()
	err := app.Run([]string{"go-pathtracer", "render",
		"--scene", "two-spheres",
		"--width", "16",
		"--spp", "1",
		"--depth", "3",
		"--workers", "2",
		"--env-file", "",
		"--out", out,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("Expected width 16, got %d", img.Bounds().Dx())
	}
}

func TestRenderCommandPPMToStdout(t *testing.T) {
	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout

	err := app.Run([]string{"go-pathtracer", "render", "--scene", "quads", "--width", "4", "--spp", "1", "--env-file", "", "--out", "-"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// quads is square: 4x4 pixels after a three-line header
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if lines[0] != "P3" || lines[1] != "4 4" || lines[2] != "255" {
		t.Fatalf("Unexpected PPM header: %q", lines[:3])
	}
	if len(lines) != 3+16 {
		t.Errorf("Expected 16 pixel lines, got %d", len(lines)-3)
	}
}

func TestRenderCommandUnknownScene(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"go-pathtracer", "render", "--scene", "nope", "--env-file", "", "--out", "-"})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestListScenesCommand(t *testing.T) {
	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout

	if err := app.Run([]string{"go-pathtracer", "list-scenes"}); err != nil {
		t.Fatal(err)
	}
	for _, info := range scene.ListScenes() {
		if !strings.Contains(stdout.String(), info.ID) {
			t.Errorf("Listing missing scene %q", info.ID)
		}
	}
}
