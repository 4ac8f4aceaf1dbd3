package utils

import (
	"unicode"
	"unicode/utf8"
)

// SplitText splits text into chunks of at most chunkSize runes, repeating
// overlap runes at each boundary. A chunk ends at the last whitespace in its
// final quarter when there is one, so words are not cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 || utf8.RuneCountInString(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	total := len(runes)

	for start := 0; start < total; {
		end := start + chunkSize
		if end >= total {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		end = breakAt(runes, start, end)
		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			next = end // overlap >= chunk length
		}
		start = next
	}

	return chunks
}

func breakAt(runes []rune, start, end int) int {
	floor := end - (end-start)/4
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
