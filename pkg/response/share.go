package response

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const shareHeading = "NGHIỆP VỤ BAN XÂY DỰNG ĐẢNG 2025:"

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ShareText is the clipboard/share form of a reply.
func ShareText(content string) string {
	return shareHeading + "\n\n" + content
}

// Markdown rebuilds a canonical reply from its parsed sections.
func Markdown(p ParsedResponse) string {
	var sb strings.Builder
	sb.WriteString("## " + LabelContent + "\n\n")
	sb.WriteString(p.MainContent)
	if p.SourceCitations != "" {
		sb.WriteString("\n\n## " + LabelSources + "\n\n")
		sb.WriteString(p.SourceCitations)
	}
	if len(p.Suggestions) > 0 {
		sb.WriteString("\n\n## " + LabelSuggestions + "\n\n")
		for _, s := range p.Suggestions {
			sb.WriteString("- " + s + "\n")
		}
	}
	return sb.String()
}

// RenderHTML renders the parsed reply as an HTML fragment.
func RenderHTML(p ParsedResponse) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("<h1>" + shareHeading + "</h1>\n")
	if err := markdown.Convert([]byte(Markdown(p)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
