package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShort(t *testing.T) {
	assert.Equal(t, []string{"ngắn"}, SplitText("ngắn", 10, 0))
	assert.Equal(t, []string{""}, SplitText("", 10, 0))
}

func TestSplitTextBreaksOnSpace(t *testing.T) {
	chunks := SplitText("một hai ba bốn năm", 8, 0)

	assert.Equal(t, "một hai ba bốn năm", strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 8)
	}
	assert.Equal(t, "một hai ", chunks[0])
}

func TestSplitTextHardCut(t *testing.T) {
	chunks := SplitText("abcdefghij", 4, 0)

	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	chunks := SplitText("abcdefghij", 4, 1)

	assert.Equal(t, []string{"abcd", "defg", "ghij"}, chunks)
}
