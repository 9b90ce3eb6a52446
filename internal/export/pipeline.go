package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"textcard/internal/model"
	"textcard/internal/render"
)

// Pipeline stages, reported through ProgressFunc in order.
const (
	StageIdle       = "idle"
	StageCapturing  = "capturing"
	StageEncoding   = "encoding"
	StagePermission = "permission-check"
	StageSaving     = "saving"
	StageDone       = "done"
	StageFailed     = "failed"
)

// Fatal pipeline errors. Neither is retried: a capture or encode failure
// means the card cannot be rasterized at all.
var (
	ErrCapture = errors.New("image capture failed")
	ErrEncode  = errors.New("image encoding failed")
)

// CaptureOptions tune the rasterizer.
type CaptureOptions struct {
	Background  string
	Scale       float64
	CrossOrigin bool
}

// Rasterizer turns a rendered HTML document into PNG bytes.
type Rasterizer interface {
	Capture(ctx context.Context, html string, opts CaptureOptions) ([]byte, error)
}

// GuidedSaver walks the user through saving the image manually when a
// direct write is unavailable or unverifiable.
type GuidedSaver interface {
	Guide(filename string, png []byte) error
}

// ProgressFunc receives pipeline progress. Percent is monotonic within a
// run; message names the current stage.
type ProgressFunc func(percent int, message string)

// Outcome reports what the pipeline did. Saved is advisory: a true value
// means the direct write returned no error, not that the user confirmed
// the file arrived where they wanted it.
type Outcome struct {
	Filename string
	Path     string
	Saved    bool
}

// Pipeline exports a rendered card to a PNG image.
type Pipeline struct {
	rasterizer Rasterizer
	saver      GuidedSaver
	dir        string
	opts       CaptureOptions
}

// PipelineParams configures NewPipeline.
type PipelineParams struct {
	Rasterizer Rasterizer
	Saver      GuidedSaver
	Dir        string
	Options    CaptureOptions
}

// NewPipeline creates an export pipeline. Scale defaults to 2 for crisp
// output on high-density displays.
func NewPipeline(params PipelineParams) *Pipeline {
	opts := params.Options
	if opts.Scale == 0 {
		opts.Scale = 2
	}
	return &Pipeline{
		rasterizer: params.Rasterizer,
		saver:      params.Saver,
		dir:        params.Dir,
		opts:       opts,
	}
}

// ExportImage renders the card, captures it as PNG and saves it. The
// guided saver always runs after a direct write so the user can place the
// file themselves when the write location is wrong or unverifiable.
func (p *Pipeline) ExportImage(ctx context.Context, card model.Card, progress ProgressFunc) (Outcome, error) {
	if progress == nil {
		progress = func(int, string) {}
	}

	progress(0, StageIdle)

	html, err := render.HTML(card)
	if err != nil {
		progress(100, StageFailed)
		return Outcome{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	progress(20, StageCapturing)
	opts := p.opts
	if opts.Background == "" {
		opts.Background = card.Style.BackgroundColor
	}
	pixels, err := p.rasterizer.Capture(ctx, html, opts)
	if err != nil {
		progress(100, StageFailed)
		return Outcome{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	progress(50, StageEncoding)
	encoded, err := encodePNG(pixels)
	if err != nil {
		progress(100, StageFailed)
		return Outcome{}, err
	}

	progress(70, StagePermission)
	filename := ImageFilename(card.Title)
	writable := dirWritable(p.dir)

	progress(85, StageSaving)
	outcome := Outcome{Filename: filename}
	if writable {
		path := filepath.Join(p.dir, filename)
		if err := os.WriteFile(path, encoded, 0644); err == nil {
			outcome.Path = path
			outcome.Saved = true
		}
	}

	if p.saver != nil {
		if err := p.saver.Guide(filename, encoded); err != nil && !outcome.Saved {
			progress(100, StageFailed)
			return outcome, fmt.Errorf("guided save: %w", err)
		}
	} else if !outcome.Saved {
		progress(100, StageFailed)
		return outcome, fmt.Errorf("writing %s: directory not writable", filename)
	}

	progress(100, StageDone)
	return outcome, nil
}

// encodePNG decodes the captured pixel buffer and re-encodes it as PNG at
// a fixed compression level, so the artifact does not depend on whatever
// settings the rasterizer used.
func encodePNG(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEncode
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// dirWritable probes whether the export directory accepts writes. The
// probe is advisory: passing it does not guarantee the later write lands.
func dirWritable(dir string) bool {
	if dir == "" {
		return false
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".export-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}
