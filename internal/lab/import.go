package lab

import (
	"context"
	"fmt"

	"github.com/msto63/mSW/internal/export"
	"github.com/msto63/mSW/internal/manifest"
	"github.com/msto63/mSW/pkg/core/logging"
)

// ImportResult reports a bulk import
type ImportResult struct {
	Imported int
	Skipped  []ImportProblem
	Total    int64
}

// ImportProblem names a manifest entry that could not be imported
type ImportProblem struct {
	Name   string
	Reason error
}

// ImportManifest loads a voice manifest and writes every entry into the
// catalog. Style vectors come either inline from the manifest or from a
// voice-pack archive given alongside it. Each entry is upserted, so a
// re-import refreshes existing voices in place.
func (l *Lab) ImportManifest(ctx context.Context, manifestPath, packPath string) (*ImportResult, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	l.logger.Info("importing voice manifest", logging.Fields{
		"manifest": manifestPath,
		"voices":   len(m.Voices),
	})

	result := &ImportResult{}
	for i := range m.Voices {
		v := &m.Voices[i]

		vec := v.StyleVector
		if len(vec) == 0 {
			if packPath == "" {
				result.Skipped = append(result.Skipped, ImportProblem{
					Name:   v.Name,
					Reason: fmt.Errorf("no inline style vector and no voice pack given"),
				})
				continue
			}
			vec, err = export.ReadArchiveVoice(packPath, v.Name)
			if err != nil {
				result.Skipped = append(result.Skipped, ImportProblem{Name: v.Name, Reason: err})
				continue
			}
		}

		rec, err := v.Record(vec)
		if err != nil {
			result.Skipped = append(result.Skipped, ImportProblem{Name: v.Name, Reason: err})
			continue
		}

		if err := l.store.Upsert(ctx, rec); err != nil {
			result.Skipped = append(result.Skipped, ImportProblem{Name: v.Name, Reason: err})
			continue
		}
		result.Imported++
	}

	result.Total, err = l.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify catalog size: %w", err)
	}

	l.logger.Info("import finished", logging.Fields{
		"imported": result.Imported,
		"skipped":  len(result.Skipped),
		"total":    result.Total,
	})

	return result, nil
}
