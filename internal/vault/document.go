// Package vault is the file-system side of title generation: it reads
// document text and renames documents in place.
package vault

import (
	"path/filepath"
	"strings"
)

// Document identifies a note by its current path.
type Document struct {
	Path string
}

// Name returns the base name without extension, as shown to the user.
func (d Document) Name() string {
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ext returns the extension including the leading dot, or "".
func (d Document) Ext() string {
	return filepath.Ext(d.Path)
}

// TargetPath returns the path of a document renamed to title: same directory
// and extension, cleaned to the platform's separator convention.
func TargetPath(current, title string) string {
	dir := filepath.Dir(current)
	return filepath.Join(dir, title+filepath.Ext(current))
}
