package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareText(t *testing.T) {
	assert.Equal(t, "NGHIỆP VỤ BAN XÂY DỰNG ĐẢNG 2025:\n\nabc", ShareText("abc"))
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(Parse(fullReply))
	require.NoError(t, err)

	assert.Contains(t, out, "<h2>NỘI DUNG THAM MƯU</h2>")
	assert.Contains(t, out, "<p>Answer text</p>")
	assert.Contains(t, out, "<h2>CĂN CỨ TRI THỨC</h2>")
	assert.Contains(t, out, "<li>Question three here?</li>")
	assert.NotContains(t, out, "Q2")
}

func TestRenderHTMLWithoutSources(t *testing.T) {
	out, err := RenderHTML(Parse("plain **bold** line"))
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, LabelSources)
}
