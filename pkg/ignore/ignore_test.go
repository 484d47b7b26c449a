package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctxgen/pkg/catalog"
	"ctxgen/pkg/errors"
)

const testCatalog = `
categories:
  - id: vcs
    name: Version Control
    patterns: [".git"]
  - id: build
    name: Build Artifacts
    patterns: ["build", "*.o"]
  - id: c
    name: C/C++
    patterns: ["*.o", "*.a"]
  - id: docs
    name: Documentation
    patterns: ["docs/_build", "doc/"]
`

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	return c
}

func TestMatch(t *testing.T) {
	base := "/project"
	f, err := Build(loadCatalog(t), Options{Custom: []string{"*.tmp", "src/gen/*"}})
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		pattern  string
		category string
	}{
		{"directory name", "/project/.git", ".git", "Version Control"},
		{"nested name", "/project/sub/build", "build", "Build Artifacts"},
		{"extension glob", "/project/lib/x.o", "*.o", "Build Artifacts"},
		{"relative path rule", "/project/docs/_build", "docs/_build", "Documentation"},
		{"custom pattern", "/project/a/b.tmp", "*.tmp", CustomCategory},
		{"custom path pattern", "/project/src/gen/api.go", "src/gen/*", CustomCategory},
		{"not excluded", "/project/main.go", "", ""},
		{"star does not cross separator", "/project/src/gen/deep/api.go", "", ""},
		{"trailing slash never matches", "/project/doc", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := f.MatchEntry(tt.path, base, false)
			if tt.pattern == "" {
				assert.Nil(t, r)
				return
			}
			require.NotNil(t, r)
			assert.Equal(t, tt.pattern, r.Pattern)
			assert.Equal(t, tt.category, r.Category)
		})
	}
}

func TestFirstMatchWins(t *testing.T) {
	c, err := catalog.Parse([]byte(`
categories:
  - id: logs
    name: Logs
    patterns: ["*.log"]
`))
	require.NoError(t, err)

	f, err := Build(c, Options{Custom: []string{"debug.log"}})
	require.NoError(t, err)

	r := f.Match("/p/debug.log", "/p")
	require.NotNil(t, r)
	assert.Equal(t, Reason{Pattern: "*.log", Category: "Logs"}, *r)
	assert.Equal(t, "Logs: *.log", r.String())
}

func TestDuplicatePatternsKeepFirstCategory(t *testing.T) {
	f, err := Build(loadCatalog(t), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{".git", "build", "*.o", "*.o", "*.a", "docs/_build", "doc/"}, f.Patterns())

	r := f.Match("/p/main.o", "/p")
	require.NotNil(t, r)
	assert.Equal(t, "Build Artifacts", r.Category)

	f, err = Build(loadCatalog(t), Options{Disabled: []string{"build"}})
	require.NoError(t, err)
	r = f.Match("/p/main.o", "/p")
	require.NotNil(t, r)
	assert.Equal(t, "C/C++", r.Category)
}

func TestDisabledCategories(t *testing.T) {
	f, err := Build(loadCatalog(t), Options{Disabled: []string{"vcs", "docs"}})
	require.NoError(t, err)

	assert.Nil(t, f.Match("/p/.git", "/p"))
	assert.Nil(t, f.Match("/p/docs/_build", "/p"))
	assert.NotNil(t, f.Match("/p/build", "/p"))
	assert.Equal(t, 4, f.Len())
}

func TestNoDefaults(t *testing.T) {
	f, err := Build(loadCatalog(t), Options{NoDefaults: true, Custom: []string{"*.md"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"*.md"}, f.Patterns())
	assert.Nil(t, f.Match("/p/.git", "/p"))

	r := f.Match("/p/README.md", "/p")
	require.NotNil(t, r)
	assert.Equal(t, CustomCategory, r.Category)

	empty, err := Build(nil, Options{NoDefaults: true})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Match("/p/anything", "/p"))
}

func TestGlobSyntax(t *testing.T) {
	f, err := Build(nil, Options{Custom: []string{"file?.txt", "[!a]*.cfg", "**/fixtures/*.json", "{x,y}.bin"}})
	require.NoError(t, err)

	assert.NotNil(t, f.Match("/p/file1.txt", "/p"))
	assert.Nil(t, f.Match("/p/file12.txt", "/p"))
	assert.NotNil(t, f.Match("/p/b.cfg", "/p"))
	assert.Nil(t, f.Match("/p/a.cfg", "/p"))
	assert.NotNil(t, f.Match("/p/a/b/fixtures/one.json", "/p"))
	assert.NotNil(t, f.Match("/p/y.bin", "/p"))
	assert.Nil(t, f.Match("/p/z.bin", "/p"))
}

func TestInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"[abc", "*.{log", "{a,b", "a}", "{a}}", `a\`} {
		t.Run(pattern, func(t *testing.T) {
			_, err := Build(nil, Options{Custom: []string{"ok", pattern}})
			require.Error(t, err)
			assert.True(t, errors.IsInvalidPattern(err))
			assert.Contains(t, err.Error(), pattern)
		})
	}
}

func TestEscapedBraces(t *testing.T) {
	f, err := Build(nil, Options{Custom: []string{`\{a`, "[{]b", "*.{log,tmp}"}})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	r := f.MatchEntry("/project/x.tmp", "/project", false)
	require.NotNil(t, r)
	assert.Equal(t, "*.{log,tmp}", r.Pattern)

	r = f.MatchEntry("/project/{b", "/project", false)
	require.NotNil(t, r)
	assert.Equal(t, "[{]b", r.Pattern)
}

func TestMatchIsDeterministic(t *testing.T) {
	f, err := Build(loadCatalog(t), Options{})
	require.NoError(t, err)

	first := f.Match("/p/x/build", "/p")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, f.Match("/p/x/build", "/p"))
	}
}

func TestLoadPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excludes")
	content := "# generated\n\n*.tmp\n  secrets/*  \n\\#notes.txt\n#skip\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	patterns, err := LoadPatternFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.tmp", "secrets/*", "#notes.txt"}, patterns)

	_, err = LoadPatternFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
}

func TestWithGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.secret\nout/\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "out"), 0o755))

	f, err := Build(nil, Options{Custom: []string{"*.tmp"}})
	require.NoError(t, err)
	require.NoError(t, f.WithGitignore(root))

	r := f.Match(filepath.Join(root, "token.secret"), root)
	require.NotNil(t, r)
	assert.Equal(t, Reason{Pattern: ".gitignore", Category: GitignoreCategory}, *r)

	r = f.Match(filepath.Join(root, "out"), root)
	require.NotNil(t, r)
	assert.Equal(t, GitignoreCategory, r.Category)

	// glob rules are consulted first
	r = f.Match(filepath.Join(root, "a.tmp"), root)
	require.NotNil(t, r)
	assert.Equal(t, CustomCategory, r.Category)

	assert.Nil(t, f.Match(filepath.Join(root, "main.go"), root))
}

func TestWithGitignoreMissingFile(t *testing.T) {
	f, err := Build(nil, Options{})
	require.NoError(t, err)
	require.NoError(t, f.WithGitignore(t.TempDir()))
	assert.Nil(t, f.git)
}
