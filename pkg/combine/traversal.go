// File: pkg/combine/traversal.go
package combine

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	scanerrors "ctxgen/pkg/errors"
)

// Scanner walks a root path and writes either file contents or a dry-run
// report to its writer. A Scanner is not safe for concurrent use.
type Scanner struct {
	matcher Matcher
	writer  io.Writer
	logger  *zap.Logger
	skipped error
}

// New creates a Scanner that consults m for every entry and writes to w.
func New(m Matcher, w io.Writer, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{matcher: m, writer: w, logger: logger}
}

// Scan writes every included text file under root.
func (s *Scanner) Scan(root string) error {
	return s.Run(root, ModeScan)
}

// DryRun writes a report of what Scan would include and exclude.
func (s *Scanner) DryRun(root string) error {
	return s.Run(root, ModeDryRun)
}

// Skipped returns the per-entry failures of the last run, combined with
// multierr, or nil if every entry was readable.
func (s *Scanner) Skipped() error {
	return s.skipped
}

// Run walks root in the given mode. Output is buffered and always flushed,
// so an aborted content scan leaves everything written so far in place.
func (s *Scanner) Run(root string, mode Mode) (err error) {
	s.skipped = nil
	s.logger.Debug("Starting scan", zap.String("root", root), zap.Stringer("mode", mode))

	bw := bufio.NewWriter(s.writer)
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			err = scanerrors.NewError(scanerrors.IO, "error writing output", "", flushErr)
		}
	}()

	if mode == ModeDryRun {
		included, excluded, collectErr := s.Collect(root)
		if collectErr != nil {
			return collectErr
		}
		writeReport(bw, root, included, excluded)
		return nil
	}
	return s.scan(root, &emitter{w: bw})
}

// Collect walks root and returns the included and excluded entries in walk
// order. Included regular files are classified; everything else is not.
func (s *Scanner) Collect(root string) (included, excluded []FileInfo, err error) {
	base, info, err := resolveRoot(root)
	if err != nil {
		return nil, nil, err
	}

	if !info.IsDir() {
		isText, err := IsText(base)
		if err != nil {
			s.skip(base, err)
		}
		return []FileInfo{{RelPath: ".", IsText: isText}}, nil, nil
	}

	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return s.walkError(base, path, walkErr)
		}
		if path == base {
			return nil
		}

		rel := relPath(base, path)
		if reason := s.matcher.MatchEntry(path, base, d.IsDir()); reason != nil {
			s.logger.Debug("Excluded entry", zap.String("path", rel), zap.String("category", reason.Category), zap.String("pattern", reason.Pattern))
			excluded = append(excluded, FileInfo{RelPath: rel, IsDir: d.IsDir(), Excluded: true, Reason: reason})
			return nil
		}

		entry := FileInfo{RelPath: rel, IsDir: d.IsDir()}
		if d.Type().IsRegular() {
			isText, err := IsText(path)
			if err != nil {
				s.skip(path, err)
			}
			entry.IsText = isText
		}
		included = append(included, entry)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug("Completed dry run walk", zap.Int("included", len(included)), zap.Int("excluded", len(excluded)))
	return included, excluded, nil
}

func (s *Scanner) scan(root string, e *emitter) error {
	base, info, err := resolveRoot(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := s.emitFile(e, base, "."); err != nil {
			return err
		}
		e.separator()
		return nil
	}

	files := 0
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return s.walkError(base, path, walkErr)
		}
		if path == base {
			return nil
		}

		if reason := s.matcher.MatchEntry(path, base, d.IsDir()); reason != nil {
			s.logger.Debug("Skipping excluded entry", zap.String("path", path), zap.String("pattern", reason.Pattern))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		files++
		return s.emitFile(e, path, relPath(base, path))
	})
	if err != nil {
		return err
	}

	e.separator()
	s.logger.Debug("Completed scan", zap.Int("files", files))
	return nil
}

// emitFile writes one file block if the file is text. Failures before the
// header is written only skip the file; a read failure afterwards aborts.
func (s *Scanner) emitFile(e *emitter, path, rel string) error {
	file, err := os.Open(path)
	if err != nil {
		s.skip(path, scanerrors.NewError(scanerrors.IO, "error opening file", path, err))
		return nil
	}
	defer file.Close()

	isText, err := sniff(file, path)
	if err != nil {
		s.skip(path, err)
		return nil
	}
	if !isText {
		s.logger.Debug("Skipping binary file", zap.String("path", rel))
		return nil
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		s.skip(path, scanerrors.NewError(scanerrors.IO, "error rewinding file", path, err))
		return nil
	}

	e.header(rel)
	return e.body(file, path)
}

// walkError decides what a traversal error means. Errors on the root end
// the walk; anything below it is recorded and skipped.
func (s *Scanner) walkError(base, path string, err error) error {
	if path == base {
		return scanerrors.NewError(scanerrors.IO, "error reading directory", path, err)
	}
	s.skip(path, scanerrors.NewError(scanerrors.IO, "error accessing path", path, err))
	return nil
}

func (s *Scanner) skip(path string, err error) {
	s.logger.Warn("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
	s.skipped = multierr.Append(s.skipped, err)
}

// resolveRoot makes root absolute and resolves symlinks in it.
func resolveRoot(root string) (string, os.FileInfo, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return "", nil, scanerrors.NewError(scanerrors.PathNotFound, "directory does not exist", root, nil)
		}
		return "", nil, scanerrors.NewError(scanerrors.PathResolution, "error checking directory", root, err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", nil, scanerrors.NewError(scanerrors.PathResolution, "error getting absolute path", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", nil, scanerrors.NewError(scanerrors.PathResolution, "error resolving path", root, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, scanerrors.NewError(scanerrors.PathResolution, "error checking directory", resolved, err)
	}
	return resolved, info, nil
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
