// Package groups resolves a voice selector into a single style vector: the
// centroid of every matching voice in the catalog.
package groups

import (
	"context"
	"fmt"

	"github.com/msto63/mSW/internal/styles"
	"github.com/msto63/mSW/internal/voicestore"
)

// EmptyGroupError indicates a selector that matched no voices. An empty
// group never resolves to a zero vector; the selector is reported so the
// operator can correct it.
type EmptyGroupError struct {
	Selector voicestore.Selector
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no voices found for selector: %s", e.Selector)
}

// Resolve evaluates the selector against the store and reduces the matched
// voices to their centroid. The matched records are returned alongside the
// vector so callers can report which voices contributed; they have no
// influence on the result beyond their style vectors.
func Resolve(ctx context.Context, store voicestore.Store, sel voicestore.Selector) ([]float32, []*voicestore.VoiceRecord, error) {
	matched, err := store.Select(ctx, sel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve group: %w", err)
	}
	if len(matched) == 0 {
		return nil, nil, &EmptyGroupError{Selector: sel}
	}

	vectors := make([][]float32, len(matched))
	for i, rec := range matched {
		vectors[i] = rec.StyleVector
	}

	centroid, err := styles.Centroid(vectors)
	if err != nil {
		return nil, nil, fmt.Errorf("group %s: %w", sel, err)
	}

	return centroid, matched, nil
}
