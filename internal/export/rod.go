package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodRasterizer captures card HTML with a headless Chrome instance.
type RodRasterizer struct {
	browser *rod.Browser
	cleanup func()
}

// NewRodRasterizer launches a headless browser. Callers must Close it.
func NewRodRasterizer() (*RodRasterizer, error) {
	l := launcher.New().Headless(true)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	return &RodRasterizer{browser: browser, cleanup: l.Cleanup}, nil
}

// Close shuts down the browser.
func (r *RodRasterizer) Close() error {
	err := r.browser.Close()
	if r.cleanup != nil {
		r.cleanup()
	}
	return err
}

// Capture loads the HTML document and screenshots the card element.
func (r *RodRasterizer) Capture(ctx context.Context, html string, opts CaptureOptions) ([]byte, error) {
	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	if opts.CrossOrigin {
		// Lets the document embed cross-origin background images.
		if err := (proto.PageSetBypassCSP{Enabled: true}).Call(page); err != nil {
			return nil, fmt.Errorf("bypass csp: %w", err)
		}
	}

	if rgba, ok := parseHexColor(opts.Background); ok {
		if err := (proto.EmulationSetDefaultBackgroundColorOverride{Color: &rgba}).Call(page); err != nil {
			return nil, fmt.Errorf("set background: %w", err)
		}
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	scale := opts.Scale
	if scale == 0 {
		scale = 2
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1024,
		Height:            1024,
		DeviceScaleFactor: scale,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	element, err := page.Element("#card")
	if err != nil {
		return nil, fmt.Errorf("find card element: %w", err)
	}

	png, err := element.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	return png, nil
}

// parseHexColor parses #rgb and #rrggbb CSS colors. Other color notations
// are ignored and the page default is kept.
func parseHexColor(s string) (proto.DOMRGBA, bool) {
	if !strings.HasPrefix(s, "#") {
		return proto.DOMRGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return proto.DOMRGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return proto.DOMRGBA{}, false
	}
	alpha := 1.0
	return proto.DOMRGBA{
		R: int(v >> 16 & 0xff),
		G: int(v >> 8 & 0xff),
		B: int(v & 0xff),
		A: &alpha,
	}, true
}
