package response

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section labels the model is instructed to emit, wrapped in "**".
const (
	LabelContent     = "NỘI DUNG THAM MƯU"
	LabelSources     = "CĂN CỨ TRI THỨC"
	LabelSuggestions = "CÂU HỎI GỢI Ý"

	markerDelim    = "**"
	maxSuggestions = 3
	minSuggestion  = 5
)

// Section identifies which bucket a marker body belongs to.
type Section int

const (
	SectionContent Section = iota
	SectionSources
	SectionSuggestions
)

var labels = []struct {
	section Section
	label   string
}{
	{SectionContent, LabelContent},
	{SectionSources, LabelSources},
	{SectionSuggestions, LabelSuggestions},
}

// ParsedResponse is the view projection of an assistant reply.
type ParsedResponse struct {
	MainContent     string   `json:"main_content"`
	SourceCitations string   `json:"source_citations"`
	Suggestions     []string `json:"suggestions"`
}

// Block is one recognized marker together with the text that follows it.
type Block struct {
	Section Section
	Body    string
}

// Parse splits raw model output into its three sections.
// It accepts any prefix of a reply and never fails: when no marker is
// recognized the trimmed input becomes the main content.
func Parse(raw string) ParsedResponse {
	res := ParsedResponse{Suggestions: []string{}}

	blocks := Split(raw)
	if len(blocks) == 0 {
		res.MainContent = strings.TrimSpace(raw)
		return res
	}

	var suggestionsBody string
	for _, b := range blocks {
		switch b.Section {
		case SectionContent:
			res.MainContent = b.Body
		case SectionSources:
			res.SourceCitations = b.Body
		case SectionSuggestions:
			suggestionsBody = b.Body
		}
	}
	res.Suggestions = ExtractSuggestions(suggestionsBody)

	return res
}

// Split scans raw once and returns every recognized marker in order of
// appearance. Text before the first marker is dropped.
func Split(raw string) []Block {
	var blocks []Block
	bodyStart := -1
	var current Section

	i := 0
	for i < len(raw) {
		j := strings.Index(raw[i:], markerDelim)
		if j < 0 {
			break
		}
		start := i + j

		section, end, ok := matchMarker(raw, start)
		if !ok {
			i = start + 1
			continue
		}

		if bodyStart >= 0 {
			blocks = append(blocks, Block{Section: current, Body: strings.TrimSpace(raw[bodyStart:start])})
		}
		current = section
		bodyStart = end
		i = end
	}

	if bodyStart >= 0 {
		blocks = append(blocks, Block{Section: current, Body: strings.TrimSpace(raw[bodyStart:])})
	}

	return blocks
}

// matchMarker reports whether raw[pos:] starts with "**LABEL**" for one of
// the known labels, compared case-insensitively.
func matchMarker(raw string, pos int) (Section, int, bool) {
	rest := raw[pos+len(markerDelim):]
	for _, l := range labels {
		n, ok := hasPrefixFold(rest, l.label)
		if !ok {
			continue
		}
		if strings.HasPrefix(rest[n:], markerDelim) {
			return l.section, pos + len(markerDelim) + n + len(markerDelim), true
		}
	}
	return 0, 0, false
}

// hasPrefixFold returns the number of bytes of s that fold-match prefix.
func hasPrefixFold(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		if n >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if !equalFoldRune(sr, pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// ExtractSuggestions turns the suggestions section body into at most three
// clean questions, dropping bullets, numbering and short noise lines.
func ExtractSuggestions(body string) []string {
	out := []string{}
	if body == "" {
		return out
	}

	for _, line := range strings.Split(body, "\n") {
		s := strings.TrimSpace(strings.TrimLeftFunc(line, isBulletRune))
		if utf8.RuneCountInString(s) <= minSuggestion {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}

func isBulletRune(r rune) bool {
	switch r {
	case '-', '*', '•', '.':
		return true
	}
	return unicode.IsDigit(r) || unicode.IsSpace(r)
}

// SpeakableText returns the text read aloud for a reply.
func SpeakableText(p ParsedResponse, raw string) string {
	if p.MainContent != "" {
		return p.MainContent
	}
	return strings.TrimSpace(raw)
}
