package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const triangleOBJ = `v -1 -1 0
v 1 -1 0
v 0 1 0
vt 0 0
vt 1 0
vt 0.5 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	model := writeModel(t)
	outPath := filepath.Join(t.TempDir(), "tri.png")

	out, err := execute(t, "--width", "40", "--height", "30", "--out", outPath, model)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("output %q does not report the written file", out)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("image size = %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}

func TestRenderCommandScene(t *testing.T) {
	model := writeModel(t)
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.lua")
	src := "width, height = 16, 16\nmodel = " + `"` + filepath.ToSlash(model) + `"` + "\noutput = \"frame.bmp\"\n"
	if err := os.WriteFile(scene, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := execute(t, "--scene", scene, "--wireframe", "--axes"); err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame.bmp")); err != nil {
		t.Errorf("scene output missing: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	model := writeModel(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no model", nil},
		{"bad size", []string{"--width", "0", model}},
		{"huge size", []string{"--height", "100000", model}},
		{"bad format", []string{filepath.Join(t.TempDir(), "model.stl")}},
		{"missing model", []string{filepath.Join(t.TempDir(), "missing.obj")}},
		{"missing texture", []string{"--diffuse", "nope.png", model}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTurntableCommand(t *testing.T) {
	model := writeModel(t)
	pattern := filepath.Join(t.TempDir(), "spin.png")

	out, err := execute(t, "turntable", "--frames", "4", "--jobs", "2", "--width", "24", "--height", "24", "--out", pattern, model)
	if err != nil {
		t.Fatalf("turntable: %v\n%s", err, out)
	}
	for i := range 4 {
		name := strings.TrimSuffix(pattern, ".png") + "_00" + string(rune('0'+i)) + ".png"
		if _, err := os.Stat(name); err != nil {
			t.Errorf("frame %d missing: %v", i, err)
		}
	}

	if _, err := execute(t, "turntable", "--frames", "0", model); err == nil {
		t.Error("expected error for zero frames")
	}
}

func TestFitCells(t *testing.T) {
	tests := []struct {
		name                   string
		w, h, maxCols, maxRows int
		wantCols, wantRows     int
	}{
		{"square wide terminal", 100, 100, 80, 60, 80, 40},
		{"square short terminal", 100, 100, 200, 30, 60, 30},
		{"wide image", 200, 100, 80, 60, 80, 20},
		{"degenerate", 0, 10, 80, 24, 80, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := fitCells(tt.w, tt.h, tt.maxCols, tt.maxRows)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("fitCells = %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	model := writeModel(t)
	out, err := execute(t, "--width", "32", "--height", "32", "--out", filepath.Join(t.TempDir(), "p.png"), "--preview", model)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "▀") {
		t.Error("preview printed no half-block cells")
	}
}
