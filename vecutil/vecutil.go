package vecutil

import (
	"context"
	"fmt"

	"github.com/viant/weighted-vec/vector"
)

// EmbedFunc converts free-form text into a raw embedding.
//
// Implementations can call any embedding provider (OpenAI, local model,
// other cloud APIs, etc.) as long as they return a slice of float32 values.
// The weighted-vec packages remain embedding-agnostic and only depend on the
// numeric vectors.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// UpsertDocumentText embeds content and stores it with the given importance
// weight through the provided store.
func UpsertDocumentText(ctx context.Context, store vector.Store, embed EmbedFunc, id, content, meta string, importance float64) error {
	if store == nil {
		return fmt.Errorf("vecutil: store is nil")
	}
	if embed == nil {
		return fmt.Errorf("vecutil: EmbedFunc is nil")
	}

	emb, err := embed(ctx, content)
	if err != nil {
		return err
	}
	_, err = store.AddDocuments(ctx, []vector.Document{{
		ID:         id,
		Content:    content,
		Metadata:   meta,
		Embedding:  emb,
		Importance: importance,
	}})
	return err
}
