package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/sumtree/internal/doctree"
)

// Store persists one DocumentTree per source document, each as a
// self-contained JSON record under the cache directory.
type Store struct {
	dir string
	log *slog.Logger
}

func New(dir string, log *slog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Path returns the cache file path for a document. The document's base name
// is made filesystem-safe: /path/to/doc.md -> <dir>/doc_md_cache.json.
func (s *Store) Path(docPath string) string {
	name := strings.ReplaceAll(filepath.Base(docPath), ".", "_")
	return filepath.Join(s.dir, name+"_cache.json")
}

// HashFile computes the SHA-256 digest of a file's full byte content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads the cached tree for a document. A missing or unparseable
// record is reported as absent, never as an error: corruption triggers a
// rebuild, not a failure.
func (s *Store) Load(docPath string) *doctree.DocumentTree {
	data, err := os.ReadFile(s.Path(docPath))
	if err != nil {
		return nil
	}

	var tree doctree.DocumentTree
	if err := json.Unmarshal(data, &tree); err != nil {
		s.log.Warn("cache record corrupted, will rebuild", "path", s.Path(docPath), "error", err)
		return nil
	}
	return &tree
}

// Valid reports whether a cached tree still matches the source document.
// Only content identity is checked: a changed model or level configuration
// does not invalidate the record.
func (s *Store) Valid(tree *doctree.DocumentTree, docPath string) bool {
	if tree == nil || tree.Metadata.Hash == "" {
		return false
	}
	current, err := HashFile(docPath)
	if err != nil {
		return false
	}
	return current == tree.Metadata.Hash
}

// Save writes the tree's cache record, replacing any previous one. The tree
// must be fully assembled before this is called; a failed build never
// reaches Save, so good cached data is never overwritten by a bad run.
func (s *Store) Save(tree *doctree.DocumentTree, docPath string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	path := s.Path(docPath)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace cache record: %w", err)
	}
	return nil
}
