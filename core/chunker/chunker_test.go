package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// maxChars 40 equals a 10 token budget, small enough to exercise every
// split path.
const testMaxChars = 10 * CharsPerToken

func TestSplitEmptyText(t *testing.T) {
	assert.Empty(t, Split("", testMaxChars))
	assert.Empty(t, Split("   ", testMaxChars))
	assert.Empty(t, Split("\n\n\t\n", testMaxChars))
}

func TestSplitShortTextReturnsSingleChunk(t *testing.T) {
	chunks := Split("Short text.", testMaxChars)
	assert.Equal(t, []string{"Short text."}, chunks)
}

func TestSplitShortTextIsTrimmed(t *testing.T) {
	chunks := Split("  Short text.\n", testMaxChars)
	assert.Equal(t, []string{"Short text."}, chunks)
}

func TestSplitTextExactlyAtLimit(t *testing.T) {
	text := strings.Repeat("a", testMaxChars)
	chunks := Split(text, testMaxChars)
	assert.Len(t, chunks, 1)
	assert.Equal(t, testMaxChars, len(chunks[0]))
}

func TestSplitLongTextIntoMultipleChunks(t *testing.T) {
	text := strings.Repeat("word ", 50) // 250 chars
	chunks := Split(text, testMaxChars)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), testMaxChars)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplitRespectsParagraphBoundaries(t *testing.T) {
	// Both paragraphs fit the limit individually, but not together.
	para1 := "First paragraph text here."   // 26 chars
	para2 := "Second paragraph text here."  // 27 chars
	chunks := Split(para1+"\n\n"+para2, testMaxChars)

	assert.Equal(t, []string{para1, para2}, chunks)
}

func TestSplitSkipsBlankParagraphs(t *testing.T) {
	text := "First part.\n\n   \n\nSecond part." // blank paragraph in the middle
	chunks := Split(text, 20)
	assert.Equal(t, []string{"First part.", "Second part."}, chunks)
}

func TestSplitOversizedParagraphFallsBackToSentences(t *testing.T) {
	// One paragraph of several short sentences, longer than the limit.
	text := "One two three four. Five six seven eight. Nine ten eleven twelve. More words follow here."
	chunks := Split(text, testMaxChars)

	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), testMaxChars)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
	// Sentence boundaries survive: every chunk ends at a sentence end.
	for _, chunk := range chunks {
		assert.True(t, strings.HasSuffix(chunk, "."), "chunk %q should end at a sentence boundary", chunk)
	}
}

func TestSplitHardCutsOversizedSentence(t *testing.T) {
	sentence := strings.Repeat("x", 100) // no sentence boundary at all
	chunks := Split(sentence, testMaxChars)

	assert.Len(t, chunks, 3)
	assert.Equal(t, testMaxChars, len(chunks[0]))
	assert.Equal(t, testMaxChars, len(chunks[1]))
	assert.Equal(t, 20, len(chunks[2]))
}

func TestSplitHardCutKeepsMultiByteRunesIntact(t *testing.T) {
	sentence := strings.Repeat("€", 100) // 3 bytes per rune, no sentence boundary
	chunks := Split(sentence, testMaxChars)

	assert.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %q must stay valid UTF-8", chunk)
	}
	assert.Equal(t, testMaxChars, len([]rune(chunks[0])))
	assert.Equal(t, testMaxChars, len([]rune(chunks[1])))
	assert.Equal(t, 20, len([]rune(chunks[2])))
	assert.Equal(t, sentence, strings.Join(chunks, ""))
}

func TestSplitPreservesContent(t *testing.T) {
	// No oversized sentence, so no hard cut breaks words: joining the
	// chunks back must reproduce the original word sequence.
	text := "Alpha beta gamma delta. Epsilon zeta eta theta.\n\nIota kappa lambda mu. Nu xi omicron pi rho.\n\nSigma tau upsilon phi chi. Psi omega ends here."
	chunks := Split(text, testMaxChars)

	got := strings.Fields(strings.Join(chunks, " "))
	want := strings.Fields(text)
	assert.Equal(t, want, got)
}

func TestSplitAllChunksNonBlank(t *testing.T) {
	text := "Hello world.\n\nFoo bar baz.\n\n" + strings.Repeat("Long sentence that definitely goes well beyond the limit. ", 5)
	for _, chunk := range Split(text, testMaxChars) {
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplitDefaultBudgetHandlesTypicalDocument(t *testing.T) {
	maxChars := 1000 * CharsPerToken

	shortDoc := "This is a normal document that fits in a single chunk."
	assert.Len(t, Split(shortDoc, maxChars), 1)

	largeDoc := strings.Repeat("paragraph content here. ", 500) // ~12000 chars
	chunks := Split(largeDoc, maxChars)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), maxChars)
	}
}
