// Package ignore decides which paths of a scan are excluded.
//
// A Filter is an ordered list of compiled glob rules. Each rule remembers the
// pattern it was compiled from and the category that contributed it, so a
// match can be explained. Rules are tried in order and the first one that
// fires wins.
package ignore

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/gobwas/glob"
	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"

	"ctxgen/pkg/catalog"
	"ctxgen/pkg/errors"
)

// CustomCategory is the category reported for user supplied patterns.
const CustomCategory = "Custom"

// Reason explains why a path was excluded.
type Reason struct {
	Pattern  string
	Category string
}

// String renders the reason as "Category: pattern".
func (r Reason) String() string {
	return r.Category + ": " + r.Pattern
}

// Options controls how a Filter is assembled.
type Options struct {
	// Custom patterns are appended after the catalog patterns.
	Custom []string
	// Disabled lists category IDs whose patterns are left out.
	Disabled []string
	// NoDefaults drops the catalog entirely.
	NoDefaults bool
	Logger     *zap.Logger
}

type rule struct {
	glob     glob.Glob
	pattern  string
	category string
}

// Filter is a compiled exclusion rule set. It is read-only once built.
type Filter struct {
	rules   []rule
	git     gitignore.IgnoreMatcher
	gitBase string
	logger  *zap.Logger
}

// Build compiles the catalog patterns of every enabled category, in catalog
// order, followed by the custom patterns. An invalid glob fails the build.
func Build(cat *catalog.Catalog, opts Options) (*Filter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Filter{logger: logger}

	if !opts.NoDefaults && cat != nil {
		for _, c := range cat.Categories() {
			if slices.Contains(opts.Disabled, c.ID) {
				logger.Debug("Category disabled", zap.String("category", c.ID))
				continue
			}
			for _, p := range c.Patterns {
				if err := f.add(p, c.Name); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, p := range opts.Custom {
		if err := f.add(p, CustomCategory); err != nil {
			return nil, err
		}
	}

	logger.Debug("Compiled exclusion rules", zap.Int("rules", len(f.rules)))
	return f, nil
}

func (f *Filter) add(pattern, category string) error {
	if err := checkSyntax(pattern); err != nil {
		return errors.NewError(errors.InvalidPattern, "invalid exclude pattern", pattern, err)
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return errors.NewError(errors.InvalidPattern, "invalid exclude pattern", pattern, err)
	}
	f.rules = append(f.rules, rule{glob: g, pattern: pattern, category: category})
	return nil
}

var (
	errUnclosedBrace     = stderrors.New("unclosed '{'")
	errUnexpectedBrace   = stderrors.New("unexpected '}'")
	errTrailingBackslash = stderrors.New("trailing backslash")
)

// checkSyntax catches malformed patterns that glob.Compile lets through.
// Braces inside a character class or after a backslash are literal.
func checkSyntax(pattern string) error {
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			if i == len(pattern)-1 {
				return errTrailingBackslash
			}
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				return errUnexpectedBrace
			}
			depth--
		}
	}
	if depth > 0 {
		return errUnclosedBrace
	}
	return nil
}

// Len returns the number of compiled glob rules.
func (f *Filter) Len() int {
	return len(f.rules)
}

// Patterns returns the compiled patterns in evaluation order.
func (f *Filter) Patterns() []string {
	out := make([]string, len(f.rules))
	for i, r := range f.rules {
		out[i] = r.pattern
	}
	return out
}

// Match reports why path, relative to baseDir, is excluded, or nil when it
// is not. When a .gitignore source is attached the entry is stat'ed to learn
// whether it is a directory; callers that already know should use MatchEntry.
func (f *Filter) Match(path, baseDir string) *Reason {
	isDir := false
	if f.git != nil {
		if fi, err := os.Lstat(path); err == nil {
			isDir = fi.IsDir()
		}
	}
	return f.MatchEntry(path, baseDir, isDir)
}

// MatchEntry is Match for a walk entry whose type is already known.
func (f *Filter) MatchEntry(path, baseDir string, isDir bool) *Reason {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	name := filepath.Base(path)

	for _, r := range f.rules {
		if r.glob.Match(name) || r.glob.Match(rel) {
			return &Reason{Pattern: r.pattern, Category: r.category}
		}
	}

	if f.git != nil && f.git.Match(filepath.Join(f.gitBase, filepath.FromSlash(rel)), isDir) {
		return &Reason{Pattern: gitignoreFile, Category: GitignoreCategory}
	}
	return nil
}
