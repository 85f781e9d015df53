package check

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
)

// archiveExts are zip based containers stylesheets may be found in.
var archiveExts = []string{".zip", ".epub"}

// isArchiveFile checks extension first and then looks at the file signature,
// so renamed non zip files are not opened as archives.
func isArchiveFile(path string) (bool, error) {
	if !slices.Contains(archiveExts, strings.ToLower(filepath.Ext(path))) {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// filetype needs at most 262 bytes of header
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return false, nil
	}
	return kind.Extension == "zip" || kind.Extension == "epub", nil
}

// isStylesheet checks name against configured extensions, case is ignored.
func isStylesheet(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
