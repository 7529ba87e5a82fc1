package figrender

import (
	"errors"
	"io"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
	"github.com/ukaji3/figrender-go/pkg/figrender/preview"
)

// previewDPI keeps the rasterized preview small; it is downscaled to terminal cells anyway.
const previewDPI = 48

// Show presents the canvas in the terminal. It does nothing when the
// environment is not interactive.
func Show(c *Canvas, opts Options) error {
	log := opts.logger()
	if !opts.IsInteractive() {
		log.Debug("show skipped, not interactive")
		return nil
	}
	if c == nil {
		return NewRenderError("canvas", -1, errors.New("nil canvas"))
	}

	img := c.Image(previewDPI)
	if opts.Viewer {
		return preview.Run(img, models.PlainText(c.spec.Title))
	}
	_, err := io.WriteString(opts.out(), preview.Render(img, opts.columns()))
	return err
}
