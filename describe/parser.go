package describe

import "strings"

// Defaults substituted when a section marker cannot be located.
const (
	DefaultTitle       = "No Title"
	DefaultDescription = "No Description"
)

// Description is the structured result of parsing the generator's free-form
// text. The Defaulted flags record which fields fell back to defaults, so
// callers can log the substitution and tests can observe it. Immutable once
// produced.
type Description struct {
	Title       string
	Description string
	Keywords    []string

	TitleDefaulted       bool
	DescriptionDefaulted bool
	KeywordsDefaulted    bool
}

const (
	markerTitle       = "title"
	markerDescription = "description"
	markerKeywords    = "keywords"
)

// Python's string.punctuation plus ASCII digits; stripped from every
// extracted span to shed formatting noise like "**Title:**" and "1. red".
const noiseChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~0123456789"

// Parse extracts title, description, and keywords from the generator's raw
// text by locating case-insensitive section markers in first-occurrence
// order. A field's value spans from just after its marker to the start of
// the next marker appearing later in the text, or to the end of the text.
// The generator's output is prose, not a contract; absent markers yield
// defaults rather than errors.
func Parse(content string) Description {
	lower := strings.ToLower(content)

	titleIdx := strings.Index(lower, markerTitle)
	descIdx := strings.Index(lower, markerDescription)
	keywordsIdx := strings.Index(lower, markerKeywords)

	parsed := Description{
		Title:       DefaultTitle,
		Description: DefaultDescription,

		TitleDefaulted:       titleIdx == -1,
		DescriptionDefaulted: descIdx == -1,
		KeywordsDefaulted:    keywordsIdx == -1,
	}

	if titleIdx != -1 {
		start := titleIdx + len(markerTitle)
		end := len(content)
		if descIdx > titleIdx {
			end = descIdx
		} else if keywordsIdx > titleIdx {
			end = keywordsIdx
		}
		parsed.Title = stripNoise(content[start:end])
	}

	if descIdx != -1 {
		start := descIdx + len(markerDescription)
		end := len(content)
		if keywordsIdx > descIdx {
			end = keywordsIdx
		}
		parsed.Description = stripNoise(content[start:end])
	}

	if keywordsIdx != -1 {
		start := keywordsIdx + len(markerKeywords)
		cleaned := stripNoise(strings.ToLower(content[start:]))
		parsed.Keywords = strings.Fields(cleaned)
	}

	return parsed
}

// stripNoise drops punctuation and digits and trims surrounding whitespace.
func stripNoise(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(noiseChars, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(mapped)
}
