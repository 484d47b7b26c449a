package combine

import (
	"fmt"
	"io"
	"sort"
)

// writeReport prints the dry-run result for root as given by the caller.
func writeReport(w io.Writer, root string, included, excluded []FileInfo) {
	sortByPath(included)
	sortByPath(excluded)

	fmt.Fprintf(w, "Dry run for directory: %s\n\n", root)

	fmt.Fprintln(w, "Files that would be processed:")
	writeSection(w, included, false)

	fmt.Fprintln(w, "\nFiles that would be excluded:")
	writeSection(w, excluded, true)
}

func writeSection(w io.Writer, files []FileInfo, showReasons bool) {
	if len(files) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	BuildTree(files).Render(w, showReasons)
}

func sortByPath(files []FileInfo) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
}
