package lab

import (
	"context"
	"path/filepath"

	"github.com/msto63/mSW/internal/export"
	"github.com/msto63/mSW/internal/voicestore"
	"github.com/msto63/mSW/pkg/core/logging"
)

// ExportVoice writes a single voice's style vector as a tensor file and
// returns the written path
func (l *Lab) ExportVoice(ctx context.Context, name, dir string) (string, error) {
	rec, err := l.store.Get(ctx, name)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = l.config.ExportDir
	}
	path := filepath.Join(dir, rec.Name+".npy")
	if err := export.WriteTensor(path, rec.StyleVector); err != nil {
		return "", err
	}

	l.logger.Info("exported voice", logging.Fields{"name": rec.Name, "path": path})
	return path, nil
}

// ExportAll writes every voice matching the selector into one archive and
// returns the written path together with the exported names
func (l *Lab) ExportAll(ctx context.Context, sel voicestore.Selector, dir string) (string, []string, error) {
	records, err := l.store.Select(ctx, sel)
	if err != nil {
		return "", nil, err
	}

	if dir == "" {
		dir = l.config.ExportDir
	}
	path := filepath.Join(dir, "voices.npz")

	vectors := make(map[string][]float32, len(records))
	names := make([]string, 0, len(records))
	for _, rec := range records {
		vectors[rec.Name] = rec.StyleVector
		names = append(names, rec.Name)
	}

	if err := export.WriteArchive(path, vectors); err != nil {
		return "", nil, err
	}

	l.logger.Info("exported voice archive", logging.Fields{
		"voices": len(names),
		"path":   path,
	})
	return path, names, nil
}
