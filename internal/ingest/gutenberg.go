package ingest

import "strings"

// StripGutenberg removes the Project Gutenberg license header and footer.
// Text without the markers is returned unchanged.
func StripGutenberg(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start := 0
	for i, line := range lines {
		if strings.Contains(line, "*** START OF") ||
			strings.Contains(line, "***START OF") ||
			strings.Contains(line, "*END*THE SMALL PRINT") {
			start = i + 1
			break
		}
	}

	end := len(lines)
	for i := len(lines) - 1; i >= start; i-- {
		if strings.Contains(lines[i], "*** END OF") ||
			strings.Contains(lines[i], "***END OF") ||
			strings.Contains(lines[i], "End of Project Gutenberg") ||
			strings.Contains(lines[i], "End of the Project Gutenberg") {
			end = i
			break
		}
	}

	if start >= end {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[start:end], "\n")
}
