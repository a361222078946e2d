package worker

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadSourceList reads document sources (URLs or file paths) from a list
// file, one per line, skipping blanks and # comments and dropping duplicates
// while preserving first-seen order.
func ReadSourceList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source list: %w", err)
	}
	defer file.Close()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan source list: %w", err)
	}

	return sources, nil
}
