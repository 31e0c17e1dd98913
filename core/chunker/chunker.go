// Package chunker splits long text into chunks that fit within the
// embedding model's token limit.
//
// The target chunk size is expressed in tokens and converted to a
// character budget using the CharsPerToken approximation (English
// text). Splitting order: paragraph, then sentence, then hard
// character cut.
package chunker

import (
	"regexp"
	"strings"
)

// CharsPerToken is the approximate number of characters per token for
// English text. The character budget for a chunk is tokenBudget * CharsPerToken.
const CharsPerToken = 4

// paragraphSep matches one or more blank lines between paragraphs.
var paragraphSep = regexp.MustCompile(`\n\n+`)

// Split splits text into an ordered list of non-blank chunks, each at
// most maxChars characters long. Blank input yields an empty list, and
// text that already fits within maxChars is returned as a single
// trimmed chunk.
func Split(text string, maxChars int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if len(text) <= maxChars {
		return []string{strings.TrimSpace(text)}
	}

	var (
		chunks  []string
		current strings.Builder
	)

	for _, paragraph := range paragraphSep.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}

		switch {
		case current.Len()+len(paragraph)+2 <= maxChars:
			// Fits in the current chunk.
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(paragraph)
		case len(paragraph) > maxChars:
			// Paragraph itself is too large, flush and split by sentences.
			chunks = flush(chunks, &current)
			chunks = splitBySentences(paragraph, maxChars, chunks, &current)
		default:
			// Start a new chunk with this paragraph.
			chunks = flush(chunks, &current)
			current.WriteString(paragraph)
		}
	}

	return flush(chunks, &current)
}

// splitBySentences splits a single oversized paragraph on sentence
// boundaries. Leftover text stays in current so the caller keeps
// accumulating into it.
func splitBySentences(text string, maxChars int, chunks []string, current *strings.Builder) []string {
	for _, sentence := range splitSentenceBoundaries(text) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}

		switch {
		case current.Len()+len(sentence)+1 <= maxChars:
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
		case len(sentence) > maxChars:
			// Single sentence is longer than the limit, hard split.
			// Cutting happens on rune boundaries so multi-byte text is
			// never sliced mid-character.
			chunks = flush(chunks, current)
			runes := []rune(sentence)
			for i := 0; i < len(runes); i += maxChars {
				end := i + maxChars
				if end > len(runes) {
					end = len(runes)
				}
				if piece := strings.TrimSpace(string(runes[i:end])); piece != "" {
					chunks = append(chunks, piece)
				}
			}
		default:
			chunks = flush(chunks, current)
			current.WriteString(sentence)
		}
	}
	return chunks
}

// splitSentenceBoundaries splits text after '.', '!' or '?' followed by
// whitespace. The separating whitespace is consumed.
func splitSentenceBoundaries(text string) []string {
	var (
		sentences []string
		start     int
	)
	for i := 0; i < len(text)-1; i++ {
		if !isSentenceEnd(text[i]) || !isSpace(text[i+1]) {
			continue
		}
		sentences = append(sentences, text[start:i+1])
		i++
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		start = i
		i--
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// flush appends the trimmed buffer content to chunks and resets it.
func flush(chunks []string, current *strings.Builder) []string {
	if current.Len() == 0 {
		return chunks
	}
	if chunk := strings.TrimSpace(current.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}
	current.Reset()
	return chunks
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
