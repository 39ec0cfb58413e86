package store

import (
	"errors"
	"strings"
)

// ErrUnterminatedFrontmatter is returned when an opening "---" line has no
// matching closing line.
var ErrUnterminatedFrontmatter = errors.New("frontmatter is not terminated")

const frontmatterDelimiter = "---"

// ParseFrontmatter splits a markdown document into its YAML frontmatter and
// body. A document that does not start with a "---" line has no frontmatter
// and is returned whole as the body.
func ParseFrontmatter(content string) (frontmatter, body string, err error) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	first, rest, found := strings.Cut(content, "\n")
	if strings.TrimRight(first, " \t") != frontmatterDelimiter {
		return "", content, nil
	}
	if !found {
		return "", "", ErrUnterminatedFrontmatter
	}

	lines := strings.SplitAfter(rest, "\n")
	offset := 0
	for _, line := range lines {
		if strings.TrimRight(line, " \t\n") == frontmatterDelimiter {
			return rest[:offset], rest[offset+len(line):], nil
		}
		offset += len(line)
	}
	return "", "", ErrUnterminatedFrontmatter
}
