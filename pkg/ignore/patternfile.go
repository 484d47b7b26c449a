package ignore

import (
	"bufio"
	"os"
	"strings"

	"ctxgen/pkg/errors"
)

// LoadPatternFile reads exclude patterns from a file, one glob per line.
// Blank lines and lines starting with '#' are skipped; a leading "\#"
// stands for a literal '#'.
func LoadPatternFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewError(errors.IO, "failed to open pattern file", path, err)
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if p, ok := parsePatternLine(scanner.Text()); ok {
			patterns = append(patterns, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewError(errors.IO, "failed to read pattern file", path, err)
	}
	return patterns, nil
}

func parsePatternLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	if strings.HasPrefix(trimmed, `\#`) {
		trimmed = trimmed[1:]
	}
	return trimmed, true
}
