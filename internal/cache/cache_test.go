package cache

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dgallion1/sumtree/internal/doctree"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleTree(hash string) *doctree.DocumentTree {
	return &doctree.DocumentTree{
		Metadata: doctree.Metadata{
			Filename:    "doc.md",
			Hash:        hash,
			Model:       "test-model",
			ProcessedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		Chunks: []*doctree.Chunk{
			{ID: "chunk_0", Level: 0, Content: "hello", ParentID: "chunk_2", ChildIDs: []string{}, Position: 0},
			{ID: "chunk_1", Level: 0, Content: "world", ParentID: "chunk_2", ChildIDs: []string{}, Position: 1},
			{ID: "chunk_2", Level: 1, Content: "summary", ChildIDs: []string{"chunk_0", "chunk_1"}, Position: 0},
		},
	}
}

func TestPath(t *testing.T) {
	s := New("/var/cache/sumtree", slog.Default())

	tests := []struct {
		docPath string
		want    string
	}{
		{"/home/me/doc.md", "/var/cache/sumtree/doc_md_cache.json"},
		{"report.final.pdf", "/var/cache/sumtree/report_final_pdf_cache.json"},
		{"plain", "/var/cache/sumtree/plain_cache.json"},
	}
	for _, tt := range tests {
		if got := s.Path(tt.docPath); got != tt.want {
			t.Errorf("Path(%q): expected %q, got %q", tt.docPath, tt.want, got)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)
	tree := sampleTree("abc123")

	if err := s.Save(tree, "/some/dir/doc.md"); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := s.Load("/another/dir/doc.md") // only the base name matters
	if loaded == nil {
		t.Fatal("expected cached tree, got nil")
	}
	if !reflect.DeepEqual(loaded, tree) {
		t.Errorf("loaded tree differs from saved tree:\nsaved  %+v\nloaded %+v", tree, loaded)
	}
}

func TestLoad_Missing(t *testing.T) {
	s := testStore(t)
	if got := s.Load("never-saved.md"); got != nil {
		t.Errorf("expected nil for missing record, got %+v", got)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	s := testStore(t)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path("doc.md"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := s.Load("doc.md"); got != nil {
		t.Errorf("expected nil for corrupt record, got %+v", got)
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}

	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("rehash: %v", err)
	}
	if h1 != h2 {
		t.Error("hash not deterministic")
	}

	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	h3, err := HashFile(path)
	if err != nil {
		t.Fatalf("hash after change: %v", err)
	}
	if h3 == h1 {
		t.Error("expected hash to change with content")
	}
}

func TestValid(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("stable content"), 0o644); err != nil {
		t.Fatal(err)
	}

	hash, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !s.Valid(sampleTree(hash), path) {
		t.Error("expected matching hash to validate")
	}
	if s.Valid(sampleTree("deadbeef"), path) {
		t.Error("expected stale hash to invalidate")
	}
	if s.Valid(nil, path) {
		t.Error("expected nil tree to invalidate")
	}
	if s.Valid(sampleTree(""), path) {
		t.Error("expected empty hash to invalidate")
	}
	if s.Valid(sampleTree(hash), filepath.Join(dir, "gone.md")) {
		t.Error("expected missing file to invalidate")
	}
}

func TestSave_ReplacesPreviousRecord(t *testing.T) {
	s := testStore(t)

	if err := s.Save(sampleTree("old"), "doc.md"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(sampleTree("new"), "doc.md"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded := s.Load("doc.md")
	if loaded == nil || loaded.Metadata.Hash != "new" {
		t.Errorf("expected replaced record, got %+v", loaded)
	}
}
