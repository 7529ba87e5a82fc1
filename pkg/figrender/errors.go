package figrender

import (
	"errors"
	"fmt"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
)

// ErrUnsupportedFormat indicates the output extension has no writer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrDegenerateSegment indicates a segment whose endpoints coincide.
var ErrDegenerateSegment = errors.New("degenerate segment")

// ErrNonFinite indicates a NaN or infinite coordinate.
var ErrNonFinite = errors.New("non-finite coordinate")

// ErrInvalidAlignment indicates an unknown text alignment.
var ErrInvalidAlignment = errors.New("invalid alignment")

// ErrInvalidColor indicates a color spec that cannot be parsed.
var ErrInvalidColor = models.ErrInvalidColor

// ErrInvalidSize indicates a non-positive width, size, or font size.
var ErrInvalidSize = errors.New("invalid size")

// ErrInvalidOpacity indicates an opacity outside [0, 1].
var ErrInvalidOpacity = errors.New("invalid opacity")

// ErrEmptyText indicates an annotation without text.
var ErrEmptyText = errors.New("empty annotation text")

// ErrInvalidText indicates math text the text handler cannot lay out.
var ErrInvalidText = errors.New("invalid math text")

// ErrEmptyElement indicates an element with zero or several kinds set.
var ErrEmptyElement = errors.New("element must set exactly one of segment, marker, annotation")

// RenderError represents a figure that cannot be drawn or encoded.
type RenderError struct {
	Kind  string // "segment", "marker", "annotation", "element", "style", "encode"
	Index int    // element index, -1 when not tied to an element
	Err   error
}

func (e *RenderError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("render error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("render error in element %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(kind string, index int, err error) *RenderError {
	return &RenderError{
		Kind:  kind,
		Index: index,
		Err:   err,
	}
}

// IOError represents a failure to resolve or write the output path.
type IOError struct {
	Op   string // "resolve", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
