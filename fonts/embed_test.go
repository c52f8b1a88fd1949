package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltin(t *testing.T) {
	data, err := Load("builtin:regular")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(data) != len(goregular.TTF) {
		t.Fatalf("unexpected font size %d", len(data))
	}
	if _, err := Load("built-in:Bold"); err != nil {
		t.Fatalf("built-in alias should resolve: %v", err)
	}
	if _, err := Load("builtin:comic"); err == nil {
		t.Fatalf("expected error for unknown builtin font")
	}
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("ttf"), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := LoadSet(path)
	if err != nil {
		t.Fatalf("LoadSet returned error: %v", err)
	}
	if string(set.Regular) != "ttf" || string(set.Bold) != "ttf" {
		t.Fatalf("file set should fall back to the regular data")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSetBuiltin(t *testing.T) {
	set, err := LoadSet("builtin:regular")
	if err != nil {
		t.Fatalf("LoadSet returned error: %v", err)
	}
	if len(set.Bold) != len(gobold.TTF) {
		t.Fatalf("builtin set should carry the bold face")
	}
	if len(set.Italic) == 0 || len(set.BoldItalic) == 0 {
		t.Fatalf("builtin set should carry italic faces")
	}
}
