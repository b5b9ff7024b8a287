// Package importer resolves @import paths against a filesystem, the
// single external collaborator tree.Env needs to evaluate @import (spec
// §6). It implements tree.Importer.
package importer

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// FileImporter resolves @import paths against an fs.FS, the way
// os.DirFS(root) would back a directory of stylesheets. It tries the
// path as given, then with a ".less" extension, then as
// "<dir>/_<name>.less" (the LESS convention for partials).
type FileImporter struct {
	fs     fs.FS
	logger *logrus.Logger
}

// New builds a FileImporter rooted at filesystem.
func New(filesystem fs.FS) *FileImporter {
	return &FileImporter{fs: filesystem, logger: logrus.StandardLogger()}
}

// WithLogger overrides the default standard logger, e.g. to route import
// diagnostics into the CLI's configured logrus instance. A nil logger is
// replaced by one that discards its output.
func (imp *FileImporter) WithLogger(l *logrus.Logger) *FileImporter {
	if l == nil {
		l = logrus.New()
		l.SetOutput(io.Discard)
	}
	imp.logger = l
	return imp
}

// Import implements tree.Importer. alreadyImported is always false:
// once/multiple bookkeeping is the evaluator's responsibility (tree.Env
// tracks canonical paths already spliced in), not the importer's.
func (imp *FileImporter) Import(importPath, currentFile string) (source, canonicalPath string, alreadyImported bool, err error) {
	for _, candidate := range candidates(importPath, currentFile) {
		content, readErr := fs.ReadFile(imp.fs, candidate)
		if readErr == nil {
			imp.logger.WithFields(logrus.Fields{
				"path":     importPath,
				"resolved": candidate,
				"from":     currentFile,
			}).Debug("resolved import")
			return string(content), candidate, false, nil
		}
	}
	return "", "", false, fmt.Errorf("import not found: %q (relative to %q)", importPath, currentFile)
}

// candidates enumerates the resolution order for an import path: as
// given, with a .less extension appended, and as a leading-underscore
// partial, each joined against currentFile's directory.
func candidates(importPath, currentFile string) []string {
	dir := path.Dir(currentFile)
	if dir == "." {
		dir = ""
	}
	join := func(p string) string {
		if dir == "" {
			return path.Clean(p)
		}
		return path.Clean(path.Join(dir, p))
	}

	clean := strings.TrimSpace(importPath)
	var out []string
	out = append(out, join(clean))
	if !strings.HasSuffix(clean, ".less") && !strings.HasSuffix(clean, ".css") {
		out = append(out, join(clean+".less"))
	}
	base := path.Base(clean)
	if !strings.HasPrefix(base, "_") {
		partial := path.Join(path.Dir(clean), "_"+base)
		if !strings.HasSuffix(partial, ".less") {
			partial += ".less"
		}
		out = append(out, join(partial))
	}
	return out
}
