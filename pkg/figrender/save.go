package figrender

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/figrender-go/pkg/figrender/xlsx"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// encoder writes a canvas in one format.
type encoder func(w io.Writer, c *Canvas) error

// Save writes the canvas to path in the format given by its extension.
//
// With saving disabled nothing is resolved or written and nil is returned.
// Path failures are returned as *IOError; unknown extensions as ErrUnsupportedFormat.
func Save(c *Canvas, path string, opts Options) error {
	log := opts.logger()
	if !opts.ShouldSave() {
		log.Debug("save disabled", "path", path)
		return nil
	}
	if c == nil {
		return NewRenderError("canvas", -1, errors.New("nil canvas"))
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	enc, err := encoderFor(opts.backend(), format)
	if err != nil {
		return err
	}

	resolved, err := opts.sink().Resolve(path)
	if err != nil {
		return NewIOError("resolve", path, err)
	}

	var buf bytes.Buffer
	if err := enc(&buf, c); err != nil {
		return NewRenderError("encode", -1, err)
	}
	if err := os.WriteFile(resolved, buf.Bytes(), 0644); err != nil {
		return NewIOError("write", resolved, err)
	}

	log.Info("figure saved", "path", resolved, "format", string(format), "backend", string(opts.backend()), "bytes", buf.Len())
	return nil
}

func encoderFor(b Backend, f Format) (encoder, error) {
	if f == FormatXLSX {
		return encodeWorkbook, nil
	}
	switch b {
	case BackendGonum:
		switch f {
		case FormatPDF, FormatSVG, FormatEPS, FormatTeX:
			return gonumVector(f), nil
		case FormatPNG, FormatJPEG, FormatTIFF:
			return gonumRaster(f), nil
		}
	case BackendCanvas:
		switch f {
		case FormatPDF, FormatSVG, FormatPNG:
			return canvasEncoder(f), nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnsupportedFormat, b)
	}
	return nil, fmt.Errorf("%w: %s with %s backend", ErrUnsupportedFormat, f, b)
}

func gonumVector(f Format) encoder {
	return func(out io.Writer, c *Canvas) error {
		w, h := c.size()
		wt, err := c.plot.WriterTo(w, h, string(f))
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(out)
		return err
	}
}

func gonumRaster(f Format) encoder {
	return func(out io.Writer, c *Canvas) error {
		img := vgimg.NewWith(vgimg.UseWH(c.size()), vgimg.UseDPI(rasterDPI(c.style.DPI)))
		c.plot.Draw(draw.New(img))

		var wt io.WriterTo
		switch f {
		case FormatPNG:
			wt = vgimg.PngCanvas{Canvas: img}
		case FormatJPEG:
			wt = vgimg.JpegCanvas{Canvas: img}
		case FormatTIFF:
			wt = vgimg.TiffCanvas{Canvas: img}
		default:
			return fmt.Errorf("%w: %s is not a raster format", ErrUnsupportedFormat, f)
		}
		_, err := wt.WriteTo(out)
		return err
	}
}

func encodeWorkbook(out io.Writer, c *Canvas) error {
	return xlsx.Write(out, c.spec, c.style)
}
