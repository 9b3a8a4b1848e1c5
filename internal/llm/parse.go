package llm

import "strings"

// Defaults used when a reply lacks the corresponding label.
const (
	DefaultHeadline    = "AI Generated Suggestion"
	DefaultDescription = "No specific suggestion description extracted."
)

const (
	headlineLabel    = "Suggestion Headline:"
	descriptionLabel = "Suggestion Description:"
)

// Suggestion is the headline/description pair pulled out of a reply.
type Suggestion struct {
	Headline    string
	Description string
}

// ParseSuggestion scans text line by line for the two labels. It never
// fails: missing labels fall back to the defaults.
//
// The description is the text after its label plus every following
// non-empty line up to the next headline label or another description
// label. Markdown emphasis, heading marks and list bullets in front of a
// label are ignored, so "**Suggestion Headline:** x" and "- Suggestion
// Headline: x" both match. The last occurrence of each label wins.
func ParseSuggestion(text string) Suggestion {
	out := Suggestion{Headline: DefaultHeadline, Description: DefaultDescription}

	var desc []string
	capturing := false
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if v, ok := cutLabel(line, headlineLabel); ok {
			out.Headline = orDefault(v, DefaultHeadline)
			capturing = false
			continue
		}
		if v, ok := cutLabel(line, descriptionLabel); ok {
			desc = desc[:0]
			if v != "" {
				desc = append(desc, v)
			}
			capturing = true
			continue
		}
		if capturing {
			if t := strings.TrimSpace(line); t != "" {
				desc = append(desc, t)
			}
		}
	}
	if len(desc) > 0 {
		out.Description = strings.Join(desc, "\n")
	}
	return out
}

// cutLabel strips decoration in front of label and returns the trimmed
// remainder of the line.
func cutLabel(line, label string) (string, bool) {
	s := strings.TrimLeft(line, " \t*#>-•")
	s = strings.TrimLeft(trimNumbering(s), " \t*")
	rest, ok := strings.CutPrefix(s, label)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(rest, "*")), true
}

// trimNumbering drops a leading "4." or "4)" list marker.
func trimNumbering(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return strings.TrimLeft(s[i+1:], " \t")
	}
	return s
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
