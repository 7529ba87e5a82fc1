// Package figrender renders declarative figures to image files.
package figrender

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Backend selects the drawing backend used by Save.
type Backend string

const (
	// BackendGonum draws with gonum/plot's own vector and raster canvases.
	BackendGonum Backend = "gonum"
	// BackendCanvas draws through tdewolff/canvas.
	BackendCanvas Backend = "canvas"
)

// Options configures saving and showing.
type Options struct {
	// Backend specifies the drawing backend (gonum, canvas).
	Backend Backend
	// Save toggles persistence. If nil, defaults to true.
	Save *bool
	// Sink resolves output names to paths. If nil, paths are used as given.
	Sink Sink
	// Interactive forces Show on or off.
	// If nil, Show is enabled only when Out is a terminal.
	Interactive *bool
	// Viewer makes Show start the full-screen viewer instead of printing a preview.
	Viewer bool
	// Columns is the preview width in terminal cells (0 uses 80).
	Columns int
	// Out receives the preview. If nil, os.Stdout.
	Out io.Writer
	// Logger receives debug and info records. If nil, records are dropped.
	Logger *slog.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Backend: BackendGonum,
	}
}

// ShouldSave returns whether Save writes anything.
func (o Options) ShouldSave() bool {
	if o.Save != nil {
		return *o.Save
	}
	return true
}

// IsInteractive returns whether Show presents anything.
func (o Options) IsInteractive() bool {
	if o.Interactive != nil {
		return *o.Interactive
	}
	f, ok := o.out().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (o Options) backend() Backend {
	if o.Backend == "" {
		return BackendGonum
	}
	return o.Backend
}

func (o Options) sink() Sink {
	if o.Sink == nil {
		return PathSink{}
	}
	return o.Sink
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o Options) columns() int {
	if o.Columns <= 0 {
		return 80
	}
	return o.Columns
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
