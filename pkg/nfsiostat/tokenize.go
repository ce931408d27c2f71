package nfsiostat

import (
	"strings"
	"unicode"
)

var noise = strings.NewReplacer("(", "", ")", "", "%", "")

// Normalize splits raw report text into non-blank lines with parentheses and
// percent signs removed. Indentation is preserved.
func Normalize(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, noise.Replace(l))
	}
	return lines
}

// Tokenize splits a line on whitespace. A line that starts with whitespace
// yields an empty first token, which marks it as a continuation line.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	if line != "" && unicode.IsSpace(rune(line[0])) {
		return append([]string{""}, fields...)
	}
	return fields
}

// isIndented reports whether tokens came from a whitespace-leading line.
func isIndented(toks []string) bool {
	return len(toks) > 0 && toks[0] == ""
}
