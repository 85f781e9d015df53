// Package archive walks stylesheets stored inside zip based containers
// (plain .zip, .epub).
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// MaxEntrySize limits size of a single stylesheet read from archive.
const MaxEntrySize = 16 << 20

// WalkFunc is called for every accepted entry with its name inside archive
// and uncompressed content. If an error is returned, processing stops.
type WalkFunc func(archive, name string, data []byte) error

// Walk visits regular files under prefix (an entry or a directory inside
// archive) for which accept returns true, in archive order. Nil accept takes
// everything. Archives with absolute entry
// names or ".." components are rejected as a whole.
func Walk(archive, prefix string, accept func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !under(name, prefix) {
			continue
		}
		if accept != nil && !accept(name) {
			continue
		}
		data, err := read(f)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		if err := walkFn(archive, name, data); err != nil {
			return err
		}
	}
	return nil
}

// under reports whether name is the prefix itself or lies in the prefix
// directory. Empty prefix matches everything.
func under(name, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+"/")
}

func read(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("entry is too large (%d bytes)", f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("entry is too large")
	}
	return data, nil
}

// isSafePath returns false for absolute names and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
