package knowledge

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// fallbackDim is the fixed vector width FallbackEmbedder produces.
const fallbackDim = 64

// FallbackEmbedder is an offline, dependency-free embedder used when no
// embedding model endpoint is configured. It hashes each whitespace
// token into one of fallbackDim buckets (a standard hashing-trick bag of
// words) and L2-normalizes the result, giving a stable, comparable
// vector space without any network call.
type FallbackEmbedder struct{}

func (FallbackEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, fallbackDim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[int(h.Sum32())%fallbackDim]++
	}

	var mag float64
	for _, v := range vec {
		mag += float64(v) * float64(v)
	}
	if mag == 0 {
		return vec, nil
	}
	mag = math.Sqrt(mag)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / mag)
	}
	return vec, nil
}
