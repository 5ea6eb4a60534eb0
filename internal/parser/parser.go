package parser

import "strings"

// isDelimiter reports whether r separates phrases within a single line.
func isDelimiter(r rune) bool {
	return r == ',' || r == ';'
}

// Parse extracts keyword phrases from free-form user text.
//
// The text is split on line breaks first, then each line is split on commas
// and semicolons. Every token is trimmed, internal whitespace runs are
// collapsed to a single space, and empty tokens are dropped. Duplicates are
// removed case-insensitively; the first occurrence wins and the original
// order is preserved.
//
// Parse returns ErrEmptyInput when text is empty or whitespace-only,
// ErrNoKeywords when splitting yields nothing, and a *LimitError when the
// unique keyword count exceeds maxKeywords.
func Parse(text string, maxKeywords int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	keywords := make([]string, 0)
	seen := make(map[string]struct{})

	for line := range strings.SplitSeq(text, "\n") {
		for _, part := range strings.FieldsFunc(line, isDelimiter) {
			// Fields splits on any run of Unicode whitespace, so
			// rejoining collapses internal runs to a single space
			// and trims the edges in one step.
			keyword := strings.Join(strings.Fields(part), " ")
			if keyword == "" {
				continue
			}

			key := strings.ToLower(keyword)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keywords = append(keywords, keyword)
		}
	}

	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}
	if len(keywords) > maxKeywords {
		return nil, &LimitError{Got: len(keywords), Limit: maxKeywords}
	}
	return keywords, nil
}
