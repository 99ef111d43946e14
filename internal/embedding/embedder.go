// Package embedding provides text embedding with ONNX, OpenAI, and mock backends.
package embedding

import (
	"context"
	"fmt"
)

// Embedder produces vector embeddings for text. Implementations must return
// exactly Dimensions() floats or an error; a wrong-length vector would
// corrupt similarity search for every later query against it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// CheckDimensions validates that vec has the expected length.
func CheckDimensions(vec []float32, want int) error {
	if len(vec) != want {
		return fmt.Errorf("embedding dimension mismatch: got %d, expected %d", len(vec), want)
	}
	return nil
}
