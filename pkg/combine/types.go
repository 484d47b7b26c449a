package combine

import "ctxgen/pkg/ignore"

// Separator delimits file blocks in content mode.
const Separator = "--------------------"

// SampleSize is the number of leading bytes inspected by the classifier.
const SampleSize = 1024

// Mode selects what a Scanner produces.
type Mode int

const (
	// ModeScan emits the contents of every included text file.
	ModeScan Mode = iota
	// ModeDryRun prints a tree of what would be included and excluded.
	ModeDryRun
)

func (m Mode) String() string {
	switch m {
	case ModeScan:
		return "scan"
	case ModeDryRun:
		return "dry-run"
	}
	return "unknown"
}

// Matcher decides whether a walk entry is excluded.
type Matcher interface {
	MatchEntry(path, baseDir string, isDir bool) *ignore.Reason
}

// FileInfo describes one entry seen during a dry run.
type FileInfo struct {
	RelPath  string // Slash separated, "." for a single-file root
	IsDir    bool
	IsText   bool
	Excluded bool
	Reason   *ignore.Reason
}
