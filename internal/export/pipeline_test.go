package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"textcard/internal/model"
)

type fakeRasterizer struct {
	png      []byte
	err      error
	lastHTML string
	lastOpts CaptureOptions
}

func (f *fakeRasterizer) Capture(_ context.Context, html string, opts CaptureOptions) ([]byte, error) {
	f.lastHTML = html
	f.lastOpts = opts
	return f.png, f.err
}

type fakeSaver struct {
	called   bool
	filename string
	err      error
}

func (f *fakeSaver) Guide(filename string, png []byte) error {
	f.called = true
	f.filename = filename
	return f.err
}

func testCard() model.Card {
	return model.NewCard(model.NewCardParams{
		Title:   "Export Me",
		Content: "body text",
	})
}

// testPNG returns a small valid PNG, standing in for rasterizer output.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestExportImageWritesFile(t *testing.T) {
	dir := t.TempDir()
	rast := &fakeRasterizer{png: testPNG(t)}
	saver := &fakeSaver{}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: saver, Dir: dir})

	outcome, err := pipe.ExportImage(context.Background(), testCard(), nil)
	if err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	if !outcome.Saved {
		t.Error("expected direct write to succeed")
	}

	data, err := os.ReadFile(outcome.Path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported file is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("unexpected image bounds %v", b)
	}
	if !strings.HasPrefix(filepath.Base(outcome.Path), "Export_Me_") {
		t.Errorf("unexpected filename %q", outcome.Path)
	}

	if rast.lastOpts.Scale != 2 {
		t.Errorf("expected default scale 2, got %v", rast.lastOpts.Scale)
	}
	if !strings.Contains(rast.lastHTML, "Export Me") {
		t.Error("expected rendered HTML passed to rasterizer")
	}
}

func TestExportImageAlwaysRunsGuidedSaver(t *testing.T) {
	rast := &fakeRasterizer{png: testPNG(t)}
	saver := &fakeSaver{}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: saver, Dir: t.TempDir()})

	if _, err := pipe.ExportImage(context.Background(), testCard(), nil); err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	if !saver.called {
		t.Error("expected guided saver to run even after a successful write")
	}
	if !strings.HasSuffix(saver.filename, ".png") {
		t.Errorf("expected png filename, got %q", saver.filename)
	}
}

func TestExportImageFallsBackToGuidedSaver(t *testing.T) {
	rast := &fakeRasterizer{png: testPNG(t)}
	saver := &fakeSaver{}
	// Empty dir means no direct write target.
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: saver, Dir: ""})

	outcome, err := pipe.ExportImage(context.Background(), testCard(), nil)
	if err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	if outcome.Saved {
		t.Error("expected no direct write without a directory")
	}
	if !saver.called {
		t.Error("expected guided saver fallback")
	}
}

func TestExportImageCaptureFailureIsFatal(t *testing.T) {
	rast := &fakeRasterizer{err: errors.New("browser crashed")}
	saver := &fakeSaver{}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: saver, Dir: t.TempDir()})

	var stages []string
	progress := func(percent int, message string) {
		stages = append(stages, message)
	}

	_, err := pipe.ExportImage(context.Background(), testCard(), progress)
	if !errors.Is(err, ErrCapture) {
		t.Fatalf("expected ErrCapture, got %v", err)
	}
	if saver.called {
		t.Error("expected no guided save after capture failure")
	}
	if stages[len(stages)-1] != StageFailed {
		t.Errorf("expected final stage %q, got %q", StageFailed, stages[len(stages)-1])
	}
}

func TestExportImageEmptyCaptureIsEncodeError(t *testing.T) {
	rast := &fakeRasterizer{png: nil}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: &fakeSaver{}, Dir: t.TempDir()})

	_, err := pipe.ExportImage(context.Background(), testCard(), nil)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
}

func TestExportImageUndecodableCaptureIsEncodeError(t *testing.T) {
	rast := &fakeRasterizer{png: []byte("not an image")}
	saver := &fakeSaver{}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: saver, Dir: t.TempDir()})

	var stages []string
	progress := func(percent int, message string) {
		stages = append(stages, message)
	}

	_, err := pipe.ExportImage(context.Background(), testCard(), progress)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if saver.called {
		t.Error("expected no guided save after encode failure")
	}
	if stages[len(stages)-1] != StageFailed {
		t.Errorf("expected final stage %q, got %q", StageFailed, stages[len(stages)-1])
	}
}

func TestExportImageProgressMonotonic(t *testing.T) {
	rast := &fakeRasterizer{png: testPNG(t)}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: &fakeSaver{}, Dir: t.TempDir()})

	var percents []int
	progress := func(percent int, message string) {
		percents = append(percents, percent)
	}

	if _, err := pipe.ExportImage(context.Background(), testCard(), progress); err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}

	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress went backwards: %v", percents)
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("expected final percent 100, got %d", percents[len(percents)-1])
	}
}

func TestExportImageBackgroundDefaultsToCardColor(t *testing.T) {
	rast := &fakeRasterizer{png: testPNG(t)}
	pipe := NewPipeline(PipelineParams{Rasterizer: rast, Saver: &fakeSaver{}, Dir: t.TempDir()})

	card := testCard()
	card.Style.BackgroundColor = "#123456"

	if _, err := pipe.ExportImage(context.Background(), card, nil); err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	if rast.lastOpts.Background != "#123456" {
		t.Errorf("expected card background passed through, got %q", rast.lastOpts.Background)
	}
}

func TestExportImageForwardsCaptureOptions(t *testing.T) {
	rast := &fakeRasterizer{png: testPNG(t)}
	pipe := NewPipeline(PipelineParams{
		Rasterizer: rast,
		Saver:      &fakeSaver{},
		Dir:        t.TempDir(),
		Options:    CaptureOptions{Background: "#ff0000", Scale: 3, CrossOrigin: true},
	})

	if _, err := pipe.ExportImage(context.Background(), testCard(), nil); err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	if rast.lastOpts.Background != "#ff0000" || rast.lastOpts.Scale != 3 || !rast.lastOpts.CrossOrigin {
		t.Errorf("capture options not forwarded: %+v", rast.lastOpts)
	}
}
