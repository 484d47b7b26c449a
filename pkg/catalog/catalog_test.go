package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctxgen/pkg/errors"
)

const sampleCatalog = `
categories:
  - id: vcs
    name: Version Control
    description: Version control systems and metadata
    patterns: [".git", ".svn"]
  - id: logs
    name: Logs & Temporary
    description: Log files and temporary data
    patterns: ["*.tmp", "*.log"]
`

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, 20, c.Len())

	ids := c.IDs()
	assert.Equal(t, "vcs", ids[0])
	assert.Equal(t, "kotlin", ids[len(ids)-1])

	goCat, ok := c.Category("go")
	require.True(t, ok)
	assert.Equal(t, "Go Specific", goCat.Name)
	assert.Equal(t, []string{"go.sum", "*.test", "coverage.out", "*.prof"}, goCat.Patterns)

	_, ok = c.Category("nope")
	assert.False(t, ok)

	assert.Same(t, c, Default())
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.PatternCount())
	assert.Equal(t, []string{"vcs", "logs"}, c.IDs())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not yaml", "categories: [\n"},
		{"empty", ""},
		{"missing id", "categories:\n  - name: X\n    patterns: [a]\n"},
		{"missing name", "categories:\n  - id: x\n    patterns: [a]\n"},
		{"duplicate id", "categories:\n  - id: x\n    name: X\n  - id: x\n    name: Y\n"},
		{"unknown field", "categories:\n  - id: x\n    name: X\n    globs: [a]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.IsCatalogLoad(err))
		})
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	c := Load([]byte("categories: {"), nil)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Unknown(nil))
	assert.Equal(t, []string{"vcs"}, c.Unknown([]string{"vcs"}))
}

func TestUnknown(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Empty(t, c.Unknown([]string{"vcs", "logs"}))
	assert.Equal(t, []string{"foo", "bar"}, c.Unknown([]string{"foo", "vcs", "bar"}))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	cats := c.Categories()
	cats[0].ID = "changed"
	assert.Equal(t, "vcs", c.IDs()[0])
}

func TestPrintExclusions(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.PrintExclusions(&buf))

	want := strings.Join([]string{
		"Default Exclusions by Category",
		"==============================",
		"ID: vcs - Version Control",
		"Description: Version control systems and metadata",
		"Patterns:",
		"  .git",
		"  .svn",
		"",
		"ID: logs - Logs & Temporary",
		"Description: Log files and temporary data",
		"Patterns:",
		"  *.log",
		"  *.tmp",
		"",
		"Summary:",
		"  Total categories: 2",
		"  Total patterns: 4",
		"",
		"Usage:",
	}, "\n")
	assert.True(t, strings.HasPrefix(buf.String(), want), buf.String())
	assert.Contains(t, buf.String(), "  --disable-category go,vcs   Disable multiple categories\n")
	assert.Contains(t, buf.String(), "\nExamples:\n")
}

func TestPrintPatternsOnly(t *testing.T) {
	src := `
categories:
  - id: a
    name: A
    patterns: ["zeta", "*.b", "alpha"]
  - id: b
    name: B
    patterns: ["file?.txt", "[ab].c", "beta"]
`
	c, err := Parse([]byte(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.PrintPatternsOnly(&buf))
	assert.Equal(t, "*.b\n[ab].c\nfile?.txt\nalpha\nbeta\nzeta\n", buf.String())
}

func TestPrintCategory(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.PrintCategory(&buf, "logs"))
	assert.Equal(t, "*.log\n*.tmp\n", buf.String())

	err = c.PrintCategory(&buf, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCategory))
}

func TestIsWildcard(t *testing.T) {
	assert.True(t, IsWildcard("*.go"))
	assert.True(t, IsWildcard("file?.txt"))
	assert.True(t, IsWildcard("[ab]"))
	assert.False(t, IsWildcard("node_modules"))
	assert.False(t, IsWildcard("doc/"))
}
