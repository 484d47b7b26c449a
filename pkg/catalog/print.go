package catalog

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"ctxgen/pkg/errors"
)

// PrintExclusions writes every category with its sorted patterns, followed
// by totals and usage hints.
func (c *Catalog) PrintExclusions(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Default Exclusions by Category")
	fmt.Fprintln(bw, "==============================")

	for i, cat := range c.categories {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "ID: %s - %s\n", cat.ID, cat.Name)
		fmt.Fprintf(bw, "Description: %s\n", cat.Description)
		fmt.Fprintln(bw, "Patterns:")
		for _, p := range sorted(cat.Patterns) {
			fmt.Fprintf(bw, "  %s\n", p)
		}
	}

	fmt.Fprintln(bw, "\nSummary:")
	fmt.Fprintf(bw, "  Total categories: %d\n", c.Len())
	fmt.Fprintf(bw, "  Total patterns: %d\n", c.PatternCount())

	fmt.Fprintln(bw, "\nUsage:")
	fmt.Fprintln(bw, "  --disable-category <id>     Disable a specific category")
	fmt.Fprintln(bw, "  --disable-category go,vcs   Disable multiple categories")

	fmt.Fprintln(bw, "\nExamples:")
	fmt.Fprintln(bw, "  ctxgen --disable-category go     # Include go.sum and Go test files")
	fmt.Fprintln(bw, "  ctxgen --disable-category vcs    # Include .git directory contents")
	fmt.Fprintln(bw, "  ctxgen --disable-category logs   # Include log files")

	return bw.Flush()
}

// PrintPatternsOnly writes one pattern per line across all categories:
// wildcard patterns sorted first, then literal names sorted.
func (c *Catalog) PrintPatternsOnly(w io.Writer) error {
	var wildcards, literals []string
	for _, cat := range c.categories {
		for _, p := range cat.Patterns {
			if IsWildcard(p) {
				wildcards = append(wildcards, p)
			} else {
				literals = append(literals, p)
			}
		}
	}
	sort.Strings(wildcards)
	sort.Strings(literals)

	bw := bufio.NewWriter(w)
	for _, p := range wildcards {
		fmt.Fprintln(bw, p)
	}
	for _, p := range literals {
		fmt.Fprintln(bw, p)
	}
	return bw.Flush()
}

// PrintCategory writes the sorted patterns of a single category.
func (c *Catalog) PrintCategory(w io.Writer, id string) error {
	cat, ok := c.Category(id)
	if !ok {
		return errors.NewError(errors.InvalidCategory, "unknown category", id, nil)
	}

	bw := bufio.NewWriter(w)
	for _, p := range sorted(cat.Patterns) {
		fmt.Fprintln(bw, p)
	}
	return bw.Flush()
}

// IsWildcard reports whether a pattern uses glob metacharacters.
func IsWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

func sorted(patterns []string) []string {
	out := make([]string, len(patterns))
	copy(out, patterns)
	sort.Strings(out)
	return out
}
