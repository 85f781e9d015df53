package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"cssnest/archive"
)

// source is a single stylesheet to check: either file on disk or entry read
// from archive.
type source struct {
	name string // reported in diagnostics
	path string // file on disk, empty for archive entries
	data []byte // content of archive entry
}

func (s source) read() ([]byte, error) {
	if s.path == "" {
		return s.data, nil
	}
	return os.ReadFile(s.path)
}

// discover expands command line arguments into stylesheets. An argument may
// be a stylesheet, a directory (walked recursively) or an archive optionally
// followed by path inside it ("book.epub/OEBPS/styles"). Sources are sorted
// naturally by name.
func (l *linter) discover(ctx context.Context, args []string) ([]source, error) {
	var srcs []source
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := l.expand(ctx, arg)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			l.log.Debug("Nothing to check", zap.String("source", arg))
		}
		srcs = append(srcs, found...)
	}

	slices.SortStableFunc(srcs, func(a, b source) int {
		switch {
		case a.name == b.name:
			return 0
		case natural.Less(a.name, b.name):
			return -1
		default:
			return 1
		}
	})
	return slices.CompactFunc(srcs, func(a, b source) bool {
		return a.name == b.name
	}), nil
}

func (l *linter) expand(ctx context.Context, arg string) ([]source, error) {
	head, inner, info, err := splitArchivePath(arg)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		if inner != "" {
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, inner)
		}
		return l.walkDir(ctx, head)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("unexpected path mode for (%s)", head)
	}

	isArchive, err := isArchiveFile(head)
	if err != nil {
		return nil, fmt.Errorf("unable to check archive type: %w", err)
	}
	if isArchive {
		if !l.cfg.Sources.Archives {
			return nil, fmt.Errorf("looking into archives is disabled (%s)", head)
		}
		return l.walkArchive(ctx, head, inner)
	}
	if inner != "" {
		return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, inner)
	}
	// explicitly named files are checked whatever extension they have
	return []source{{name: head, path: head}}, nil
}

// splitArchivePath finds the longest existing prefix of the path, the rest is
// treated as path inside archive.
func splitArchivePath(arg string) (string, string, fs.FileInfo, error) {
	clean := filepath.Clean(arg)
	for head := clean; ; {
		info, err := os.Stat(head)
		if err == nil {
			inner := strings.TrimPrefix(strings.TrimPrefix(clean, head), string(filepath.Separator))
			return head, filepath.ToSlash(inner), info, nil
		}
		// stat through regular file (archive) reports ENOTDIR
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", "", nil, err
		}
		parent := filepath.Dir(head)
		if parent == head {
			return "", "", nil, fmt.Errorf("input source was not found (%s)", arg)
		}
		head = parent
	}
}

func (l *linter) walkDir(ctx context.Context, dir string) ([]source, error) {
	var srcs []source
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			l.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if isStylesheet(path, l.cfg.Sources.Extensions) {
			srcs = append(srcs, source{name: path, path: path})
			return nil
		}
		if !l.cfg.Sources.Archives {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			l.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isArchive {
			return nil
		}
		found, err := l.walkArchive(ctx, path, "")
		if err != nil {
			l.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			l.failed.Add(1)
			return nil
		}
		srcs = append(srcs, found...)
		return nil
	})
	return srcs, err
}

func (l *linter) walkArchive(ctx context.Context, arc, inner string) ([]source, error) {
	var srcs []source
	accept := func(name string) bool {
		return isStylesheet(name, l.cfg.Sources.Extensions)
	}
	err := archive.Walk(arc, inner, accept, func(arc, name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		srcs = append(srcs, source{name: filepath.Join(arc, filepath.FromSlash(name)), data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to walk archive %s: %w", arc, err)
	}
	return srcs, nil
}
