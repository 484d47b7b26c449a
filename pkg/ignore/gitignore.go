package ignore

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"

	"ctxgen/pkg/errors"
)

// GitignoreCategory is the category reported for paths matched by the
// root .gitignore file.
const GitignoreCategory = "Gitignore"

const gitignoreFile = ".gitignore"

// WithGitignore attaches the .gitignore found directly under root as an
// extra rule source, consulted after the glob rules. A missing file leaves
// the filter unchanged, as does a root that is not a directory.
func (f *Filter) WithGitignore(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.NewError(errors.PathResolution, "failed to resolve path", root, err)
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return nil
	}
	path := filepath.Join(abs, gitignoreFile)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug("No .gitignore found", zap.String("root", abs))
			return nil
		}
		return errors.NewError(errors.IO, "failed to read ignore file", path, err)
	}

	m, err := gitignore.NewGitIgnore(path, abs)
	if err != nil {
		return errors.NewError(errors.IO, "failed to read ignore file", path, err)
	}
	f.git = m
	f.gitBase = abs
	f.logger.Debug("Loaded .gitignore", zap.String("path", path))
	return nil
}
