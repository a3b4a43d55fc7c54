package spanlib

import "strings"

// Wrap merges physical source lines into logical lines. A pending line
// that ends in an ASCII period is flushed before the next physical
// line starts a new one; otherwise the next line is joined onto it
// with a single space. Only '.' flushes, not '!', '?' or quotes, and
// the pending line is always flushed at the end, so the result is
// never empty.
func Wrap(lines []string) []string {
	output := make([]string, 0, len(lines))
	current := ""
	for _, line := range lines {
		if current == "" {
			current = line
		} else if strings.HasSuffix(current, ".") {
			output = append(output, current)
			current = line
		} else {
			current = current + " " + line
		}
	}
	return append(output, current)
}
