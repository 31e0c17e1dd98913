package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// HashDim is the fixed dimension of hash-based embeddings.
const HashDim = 384

// HashEmbedder is a deterministic offline embedder based on character
// n-grams and hashing. Suitable for local use and testing; for
// production, swap in the remote model-backed embedder.
type HashEmbedder struct{}

// NewHashEmbedder creates an offline hash embedder.
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

// Embed hashes every overlapping 3-character window of text, folds the
// digest bytes into a HashDim accumulator and L2-normalizes the result.
// The output is a pure function of the input.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := checkInput(text); err != nil {
		return nil, err
	}

	vec := make([]float64, HashDim)
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		end := i + 3
		if end > len(runes) {
			end = len(runes)
		}
		digest := sha256.Sum256([]byte(string(runes[i:end])))
		for j := 0; j+4 <= len(digest); j += 4 {
			idx := (j / 4) % HashDim
			val := math.Float32frombits(binary.BigEndian.Uint32(digest[j : j+4]))
			if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
				continue
			}
			vec[idx] += float64(val)
		}
	}

	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	result := make([]float32, HashDim)
	if norm := math.Sqrt(sum); norm > 0 {
		for i, v := range vec {
			result[i] = float32(v / norm)
		}
	}
	return result, nil
}

var _ Embedder = (*HashEmbedder)(nil)
