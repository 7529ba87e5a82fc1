// Package config loads figure files: output settings, style, and the figure itself.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/figrender-go/pkg/figrender"
	"github.com/ukaji3/figrender-go/pkg/figrender/models"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the figure file format version.
const CurrentVersion = 1

// DefaultFilename is used when a figure file names no output.
const DefaultFilename = "figure.pdf"

// Output configures where and whether the figure is written.
type Output struct {
	// Root is the directory relative filenames resolve against, e.g. a mounted drive.
	Root string `yaml:"root,omitempty"`
	// Filename is the output name; its extension selects the format.
	Filename string `yaml:"filename"`
	// Save toggles writing. Absent means true.
	Save *bool `yaml:"save,omitempty"`
	// Backend is "gonum" (default) or "canvas".
	Backend string `yaml:"backend,omitempty"`
}

// File models a figure file.
type File struct {
	Version int               `yaml:"version"`
	Output  Output            `yaml:"output"`
	Style   models.Style      `yaml:"style"`
	Figure  models.FigureSpec `yaml:"figure"`
}

// Default returns the built-in P^δ figure with its output name.
func Default() File {
	spec, style := figrender.PDelta()
	return File{
		Version: CurrentVersion,
		Output:  Output{Filename: figrender.PDeltaFilename},
		Style:   style,
		Figure:  spec,
	}
}

// Load reads and parses a figure file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a figure file. Style fields absent from the document keep
// their default values.
func Parse(data []byte) (*File, error) {
	f := File{
		Version: CurrentVersion,
		Style:   models.DefaultStyle(),
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported version %d (want %d)", f.Version, CurrentVersion)
	}
	if f.Output.Filename == "" {
		f.Output.Filename = DefaultFilename
	}
	return &f, nil
}

// Marshal encodes a figure file.
func Marshal(f File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Options converts the output settings to render options.
func (f *File) Options() (figrender.Options, error) {
	opts := figrender.DefaultOptions()
	backend, err := figrender.ParseBackend(f.Output.Backend)
	if err != nil {
		return opts, err
	}
	opts.Backend = backend
	opts.Save = f.Output.Save
	if f.Output.Root != "" {
		opts.Sink = figrender.DirSink{Root: f.Output.Root}
	}
	return opts, nil
}
