package generator

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/adnsv/icongen/manifest"
	"github.com/adnsv/icongen/raster"
)

func testSource() raster.Source {
	img := image.NewNRGBA(image.Rect(0, 0, 128, 128))
	for i := range img.Pix {
		img.Pix[i] = 0xc0
	}
	return &raster.Bitmap{Image: img}
}

func testSpec() *manifest.PlatformSpec {
	return &manifest.PlatformSpec{
		Root: "Proj-{appName}",
		Icons: []manifest.IconSpec{
			{File: "a.png", Dimension: 48},
			{File: "sub/b.png", Dimension: 96},
		},
	}
}

func checkPNG(t *testing.T, fn string, dim int) {
	t.Helper()
	f, err := os.Open(fn)
	if err != nil {
		t.Fatalf("open %s: %v", fn, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", fn, err)
	}
	if format != "png" {
		t.Errorf("%s: format = %s, want png", fn, format)
	}
	if cfg.Width != dim || cfg.Height != dim {
		t.Errorf("%s: %dx%d, want %dx%d", fn, cfg.Width, cfg.Height, dim, dim)
	}
}

func TestOutputRoot(t *testing.T) {
	got, err := OutputRoot("/w", "X", testSpec(), "Demo")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/w", "platforms", "X", "Proj-Demo"); got != want {
		t.Errorf("OutputRoot = %q, want %q", got, want)
	}

	_, err = OutputRoot("/w", "X", &manifest.PlatformSpec{Root: "{bundle}"}, "Demo")
	if !errors.Is(err, manifest.ErrUnknownPlaceholder) {
		t.Errorf("error = %v, want ErrUnknownPlaceholder", err)
	}
}

func TestGenerate(t *testing.T) {
	wd := t.TempDir()
	report, err := Generate(context.Background(), Job{
		Platform:    "X",
		Spec:        testSpec(),
		ProjectName: "Demo",
		WorkDir:     wd,
		Source:      testSource(),
	})
	if err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(wd, "platforms", "X", "Proj-Demo")
	if report.Root != root {
		t.Errorf("Root = %q, want %q", report.Root, root)
	}
	if len(report.Results) != 2 || report.Failed() != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	checkPNG(t, filepath.Join(root, "a.png"), 48)
	checkPNG(t, filepath.Join(root, "sub", "b.png"), 96)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("root contains %d entries, want 2 (a.png, sub)", len(entries))
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	wd := t.TempDir()
	job := Job{Platform: "X", Spec: testSpec(), ProjectName: "Demo", WorkDir: wd, Source: testSource(), Jobs: 1}
	if _, err := Generate(context.Background(), job); err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(wd, "platforms", "X", "Proj-Demo", "sub", "b.png")
	first, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(context.Background(), job); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("second run produced different output")
	}
	checkPNG(t, fn, 96)
}

func TestGenerateOverwritesStaleOutput(t *testing.T) {
	wd := t.TempDir()
	fn := filepath.Join(wd, "platforms", "X", "Proj-Demo", "a.png")
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fn, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(context.Background(), Job{Platform: "X", Spec: testSpec(), ProjectName: "Demo", WorkDir: wd, Source: testSource()}); err != nil {
		t.Fatal(err)
	}
	checkPNG(t, fn, 48)
}

func TestGenerateBestEffort(t *testing.T) {
	wd := t.TempDir()
	spec := &manifest.PlatformSpec{
		Root: "res",
		Icons: []manifest.IconSpec{
			{File: "a.png", Dimension: 16},
			{File: "b.unknown", Dimension: 16},
			{File: "c/d.png", Dimension: 32},
		},
	}
	report, err := Generate(context.Background(), Job{Platform: "X", Spec: spec, WorkDir: wd, Source: testSource(), Jobs: 2})
	if !errors.Is(err, raster.ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if report.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", report.Failed())
	}
	if report.Results[1].Err == nil {
		t.Error("expected b.unknown to fail")
	}
	root := filepath.Join(wd, "platforms", "X", "res")
	checkPNG(t, filepath.Join(root, "a.png"), 16)
	checkPNG(t, filepath.Join(root, "c", "d.png"), 32)
}

func TestGenerateNoSource(t *testing.T) {
	report, err := Generate(context.Background(), Job{Platform: "X", Spec: testSpec(), ProjectName: "Demo", WorkDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error without a source")
	}
	if report.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", report.Failed())
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	wd := t.TempDir()
	_, err := Generate(ctx, Job{Platform: "X", Spec: testSpec(), ProjectName: "Demo", WorkDir: wd, Source: testSource()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(wd, "platforms")); !os.IsNotExist(err) {
		t.Error("cancelled run should not write anything")
	}
}
