package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrTargetExists is returned when a rename would overwrite another file.
var ErrTargetExists = errors.New("destination file already exists")

// FileVault reads and renames documents on the local file system.
type FileVault struct {
	locks sync.Map // source path -> *sync.Mutex
}

// NewFileVault returns a ready FileVault.
func NewFileVault() *FileVault {
	return &FileVault{}
}

// Read returns the document's text. HTML documents are reduced to their
// readable text; every other file is returned as-is.
func (v *FileVault) Read(_ context.Context, doc Document) (string, error) {
	b, err := os.ReadFile(doc.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", doc.Path, err)
	}
	if isHTML(doc.Ext()) {
		return textFromHTML(b), nil
	}
	return string(b), nil
}

// Rename moves doc to target. It is a no-op when both name the same file and
// refuses to overwrite a different existing file. Renames of the same source
// are serialized.
func (v *FileVault) Rename(_ context.Context, doc Document, target string) error {
	src := filepath.Clean(doc.Path)
	dst := filepath.Clean(target)

	mu := v.lockFor(src)
	mu.Lock()
	defer mu.Unlock()

	if src == dst {
		log.Debug().Str("path", src).Msg("title unchanged; skipping rename")
		return nil
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("rename %s: %w", src, err)
	}
	if dstInfo, err := os.Stat(dst); err == nil {
		// A case-only rename on a case-insensitive file system reports the
		// source itself as the destination.
		if !os.SameFile(srcInfo, dstInfo) {
			return fmt.Errorf("rename %s -> %s: %w", src, dst, ErrTargetExists)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
	}
	return nil
}

func (v *FileVault) lockFor(path string) *sync.Mutex {
	mu, _ := v.locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
