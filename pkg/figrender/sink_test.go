package figrender

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathSink(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		wantErr bool
	}{
		{filepath.Join(dir, "a.pdf"), false},
		{filepath.Join(dir, "missing", "a.pdf"), true},
	}

	for _, tt := range tests {
		got, err := PathSink{}.Resolve(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.name {
			t.Errorf("Resolve(%q) = %q, expected it unchanged", tt.name, got)
		}
	}
}

func TestDirSink(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "figs"), 0755); err != nil {
		t.Fatal(err)
	}
	other := t.TempDir()

	tests := []struct {
		sink     DirSink
		name     string
		expected string
		wantErr  bool
	}{
		{DirSink{Root: root}, "P_delta.pdf", filepath.Join(root, "P_delta.pdf"), false},
		{DirSink{Root: root}, "figs/P_delta.pdf", filepath.Join(root, "figs", "P_delta.pdf"), false},
		{DirSink{Root: root}, filepath.Join(other, "abs.pdf"), filepath.Join(other, "abs.pdf"), false},
		{DirSink{Root: root}, "nested/P_delta.pdf", "", true},
		{DirSink{Root: filepath.Join(root, "gdrive")}, "P_delta.pdf", "", true},
		{DirSink{}, "P_delta.pdf", "", true},
	}

	for _, tt := range tests {
		got, err := tt.sink.Resolve(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v.Resolve(%q) error = %v, wantErr %v", tt.sink, tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("%+v.Resolve(%q) = %q, expected %q", tt.sink, tt.name, got, tt.expected)
		}
	}
}
