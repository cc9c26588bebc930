package filestorage

import (
	"io"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return ls
}

func TestSaveBytes(t *testing.T) {
	ls := newTestStorage(t)

	t.Run("round trip through a subdirectory", func(t *testing.T) {
		stored, err := ls.SaveBytes([]byte("content"), "documents", "r.pdf")
		if err != nil {
			t.Fatalf("SaveBytes: %v", err)
		}
		if stored != filepath.Join("documents", "r.pdf") {
			t.Errorf("stored path = %q", stored)
		}

		rc, err := ls.Open(stored)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		if string(data) != "content" {
			t.Errorf("read back %q", data)
		}
	})

	t.Run("empty subpath stores at the root", func(t *testing.T) {
		stored, err := ls.SaveBytes([]byte("x"), "", "top.pdf")
		if err != nil {
			t.Fatalf("SaveBytes: %v", err)
		}
		if stored != "top.pdf" {
			t.Errorf("stored path = %q, want top.pdf", stored)
		}
		if !ls.Exists(stored) {
			t.Error("file should exist")
		}
	})
}

func TestExists(t *testing.T) {
	ls := newTestStorage(t)
	if ls.Exists("documents/never-written.pdf") {
		t.Error("missing file reported as existing")
	}
}

func TestFullPath(t *testing.T) {
	ls := newTestStorage(t)

	tests := []struct {
		name      string
		path      string
		wantEmpty bool
	}{
		{"normal relative path", "documents/a.pdf", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"parent escape", "../outside.pdf", true},
		{"nested parent escape", "documents/../../outside.pdf", true},
		{"absolute path", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ls.FullPath(tt.path)
			if tt.wantEmpty && got != "" {
				t.Errorf("FullPath(%q) = %q, want empty", tt.path, got)
			}
			if !tt.wantEmpty && got == "" {
				t.Errorf("FullPath(%q) resolved to empty", tt.path)
			}
		})
	}
}
