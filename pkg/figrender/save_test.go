package figrender

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
	"github.com/ukaji3/figrender-go/pkg/figrender/xlsx"
)

// testCanvas renders the P^δ figure at a low resolution so raster tests stay fast.
func testCanvas(t *testing.T) *Canvas {
	t.Helper()
	spec, style := PDelta()
	style.DPI = 30
	c, err := Render(spec, style)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	f, err := Finalize(c)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	return f
}

func boolPtr(b bool) *bool { return &b }

func TestSaveToggle(t *testing.T) {
	c := testCanvas(t)
	tests := []struct {
		save   *bool
		exists bool
	}{
		{boolPtr(false), false},
		{boolPtr(true), true},
		{nil, true},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "P_delta.svg")
		opts := DefaultOptions()
		opts.Save = tt.save
		if err := Save(c, path, opts); err != nil {
			t.Fatalf("Save(save=%v) failed: %v", tt.save, err)
		}
		_, err := os.Stat(path)
		if exists := err == nil; exists != tt.exists {
			t.Errorf("Save(save=%v): file exists = %v, expected %v", tt.save, exists, tt.exists)
		}
	}
}

func TestSaveDisabledIgnoresBadPath(t *testing.T) {
	c := testCanvas(t)
	opts := DefaultOptions()
	opts.Save = boolPtr(false)
	if err := Save(c, "/nonexistent/dir/figure.unknown", opts); err != nil {
		t.Errorf("Save with saving disabled returned %v", err)
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	c := testCanvas(t)
	paths := []string{
		filepath.Join(t.TempDir(), "missing", "P_delta.pdf"),
		filepath.Join(t.TempDir(), "missing", "P_delta.xlsx"),
	}

	for _, path := range paths {
		err := Save(c, path, DefaultOptions())
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Errorf("Save(%q) error = %v (%T), expected *IOError", path, err, err)
			continue
		}
		var renderErr *RenderError
		if errors.As(err, &renderErr) || errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Save(%q) error %v must only be an IOError", path, err)
		}
		if _, statErr := os.Stat(filepath.Dir(path)); !os.IsNotExist(statErr) {
			t.Errorf("Save(%q) must not create the parent directory", path)
		}
	}
}

func TestSaveParentIsFile(t *testing.T) {
	c := testCanvas(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	err := Save(c, filepath.Join(blocker, "out.svg"), DefaultOptions())
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("error = %v, expected *IOError", err)
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	c := testCanvas(t)
	dir := t.TempDir()

	err := Save(c, filepath.Join(dir, "figure.bmp"), DefaultOptions())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, expected ErrUnsupportedFormat", err)
	}

	opts := DefaultOptions()
	opts.Backend = BackendCanvas
	err = Save(c, filepath.Join(dir, "figure.eps"), opts)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("canvas backend eps error = %v, expected ErrUnsupportedFormat", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("unsupported formats must not write files, found %d", len(entries))
	}
}

func TestSaveFormats(t *testing.T) {
	c := testCanvas(t)
	tests := []struct {
		name   string
		prefix []byte
	}{
		{"figure.pdf", []byte("%PDF")},
		{"figure.svg", []byte("<?xml")},
		{"figure.eps", []byte("%%!PS-Adobe")},
		{"figure.png", []byte("\x89PNG")},
		{"figure.jpg", []byte("\xff\xd8")},
		{"figure.tif", []byte("II")},
		{"figure.xlsx", []byte("PK")},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		if err := Save(c, path, DefaultOptions()); err != nil {
			t.Errorf("Save(%s) failed: %v", tt.name, err)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", tt.name, err)
		}
		if !bytes.HasPrefix(data, tt.prefix) {
			t.Errorf("%s starts with %q, expected %q", tt.name, data[:min(len(data), 8)], tt.prefix)
		}
	}
}

func TestSaveCanvasBackend(t *testing.T) {
	c := testCanvas(t)
	opts := DefaultOptions()
	opts.Backend = BackendCanvas

	for _, name := range []string{"figure.svg", "figure.pdf", "figure.png"} {
		path := filepath.Join(t.TempDir(), name)
		if err := Save(c, path, opts); err != nil {
			t.Errorf("Save(%s) with canvas backend failed: %v", name, err)
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestSaveIdempotent(t *testing.T) {
	for _, name := range []string{"P_delta.pdf", "P_delta.svg", "P_delta.png"} {
		path := filepath.Join(t.TempDir(), name)
		var outputs [][]byte
		for i := 0; i < 2; i++ {
			c := testCanvas(t)
			if err := Save(c, path, DefaultOptions()); err != nil {
				t.Fatalf("Save(%s) failed: %v", name, err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			outputs = append(outputs, data)
		}
		if !bytes.Equal(outputs[0], outputs[1]) {
			t.Errorf("%s differs between identical renders", name)
		}
	}
}

func TestSaveEmptyFigure(t *testing.T) {
	c, err := Render(models.NewFigure("Nothing", "X", "Y"), models.DefaultStyle())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	f, err := Finalize(c)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := Save(f, filepath.Join(t.TempDir(), "empty.svg"), DefaultOptions()); err != nil {
		t.Errorf("Save failed: %v", err)
	}
}

func TestSaveWorkbookContents(t *testing.T) {
	c := testCanvas(t)
	path := filepath.Join(t.TempDir(), "P_delta.xlsx")
	if err := Save(c, path, DefaultOptions()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	charts, err := xlsx.Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(charts) != 1 {
		t.Fatalf("expected 1 chart, got %d", len(charts))
	}
	// 3 segments and 1 marker
	if n := len(charts[0].Series); n != 4 {
		t.Fatalf("expected 4 series, got %d", n)
	}
	if got, expected := charts[0].LegendNames(), c.LegendLabels(); !reflect.DeepEqual(got, expected) {
		t.Errorf("workbook legend = %q, expected %q", got, expected)
	}
	if op := charts[0].Series[1].LineOpacity; op != 0.5 {
		t.Errorf("horizontal band opacity = %v, expected 0.5", op)
	}
}

func TestSavePDeltaFigure(t *testing.T) {
	spec, style := PDelta()
	c, err := Render(spec, style)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	f, err := Finalize(c)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{PDeltaFilename, "P_delta.svg", "P_delta.eps", "P_delta.png"} {
		path := filepath.Join(dir, name)
		if err := Save(f, path, DefaultOptions()); err != nil {
			t.Errorf("Save(%s) failed: %v", name, err)
			continue
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestSaveRasterMatchesImage(t *testing.T) {
	spec, style := PDelta()
	style.DPI = 30.6
	c, err := Render(spec, style)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "P_delta.png")
	if err := Save(c, path, DefaultOptions()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	b := c.Image(style.DPI).Bounds()
	if cfg.Width != b.Dx() || cfg.Height != b.Dy() {
		t.Errorf("png is %dx%d, Image is %dx%d", cfg.Width, cfg.Height, b.Dx(), b.Dy())
	}
}

func TestSaveDirSink(t *testing.T) {
	c := testCanvas(t)
	root := t.TempDir()
	opts := DefaultOptions()
	opts.Sink = DirSink{Root: root}

	if err := Save(c, "P_delta.svg", opts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "P_delta.svg")); err != nil {
		t.Errorf("expected file under sink root: %v", err)
	}

	opts.Sink = DirSink{Root: filepath.Join(root, "unmounted")}
	err := Save(c, "P_delta.svg", opts)
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "resolve" {
		t.Errorf("unmounted root error = %v, expected resolve *IOError", err)
	}
}

func TestSaveNilCanvas(t *testing.T) {
	err := Save(nil, filepath.Join(t.TempDir(), "x.svg"), DefaultOptions())
	var re *RenderError
	if !errors.As(err, &re) {
		t.Errorf("error = %v, expected *RenderError", err)
	}
}
