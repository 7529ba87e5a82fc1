package figrender

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents an output file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatSVG  Format = "svg"
	FormatEPS  Format = "eps"
	FormatTeX  Format = "tex"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatTIFF Format = "tiff"
	// FormatXLSX writes the figure data and a native chart to a workbook.
	FormatXLSX Format = "xlsx"
)

// FormatFromPath infers the output format from the path extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "pdf":
		return FormatPDF, nil
	case "svg":
		return FormatSVG, nil
	case "eps":
		return FormatEPS, nil
	case "tex":
		return FormatTeX, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "xlsx":
		return FormatXLSX, nil
	case "":
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
}

// Formats returns the formats a backend can write.
func Formats(b Backend) []Format {
	switch b {
	case BackendGonum:
		return []Format{FormatPDF, FormatSVG, FormatEPS, FormatTeX, FormatPNG, FormatJPEG, FormatTIFF, FormatXLSX}
	case BackendCanvas:
		return []Format{FormatPDF, FormatSVG, FormatPNG, FormatXLSX}
	}
	return nil
}

// ParseBackend converts a string to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "", "gonum":
		return BackendGonum, nil
	case "canvas", "tdewolff":
		return BackendCanvas, nil
	default:
		return "", fmt.Errorf("unknown backend: %s", s)
	}
}
