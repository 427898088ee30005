// Package export writes style vectors to the interchange formats consumed
// by downstream tooling: a single-tensor NPY file per voice, or an NPZ
// archive holding the whole catalog.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/msto63/mSW/internal/npy"
)

// EmptyExportError indicates a bulk export with nothing to export. A
// zero-entry archive is never written silently.
type EmptyExportError struct {
	Path string
}

func (e *EmptyExportError) Error() string {
	return fmt.Sprintf("nothing to export to %s", e.Path)
}

// WriteTensor writes a single style vector as an NPY file. The stored
// tensor matches the in-memory vector in dimension and element type.
func WriteTensor(path string, vec []float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, npy.Encode(vec), 0644); err != nil {
		return fmt.Errorf("failed to write tensor file: %w", err)
	}
	return nil
}

// ReadTensor reads a single style vector from an NPY file
func ReadTensor(path string) ([]float32, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor file: %w", err)
	}
	vec, err := npy.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("tensor file %s: %w", path, err)
	}
	return vec, nil
}

// WriteArchive writes all voices as an NPZ archive: a ZIP file with one
// stored (uncompressed) NPY entry per voice, as np.savez produces. Entries
// are independent, so one voice can be read without decoding the rest.
func WriteArchive(path string, voices map[string][]float32) error {
	if len(voices) == 0 {
		return &EmptyExportError{Path: path}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	// A failed export must not leave a partial archive behind
	discard := func(err error) error {
		f.Close()
		os.Remove(path)
		return err
	}

	w := zip.NewWriter(f)

	// Stable entry order keeps archives reproducible
	names := make([]string, 0, len(voices))
	for name := range voices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, err := w.CreateHeader(&zip.FileHeader{
			Name:   name + ".npy",
			Method: zip.Store,
		})
		if err != nil {
			return discard(fmt.Errorf("failed to create archive entry %q: %w", name, err))
		}
		if _, err := entry.Write(npy.Encode(voices[name])); err != nil {
			return discard(fmt.Errorf("failed to write archive entry %q: %w", name, err))
		}
	}

	if err := w.Close(); err != nil {
		return discard(fmt.Errorf("failed to finalize archive: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// ReadArchive reads every voice from an NPZ archive
func ReadArchive(path string) (map[string][]float32, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	voices := make(map[string][]float32, len(r.File))
	for _, entry := range r.File {
		name := strings.TrimSuffix(entry.Name, ".npy")

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %q: %w", entry.Name, err)
		}
		blob, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %q: %w", entry.Name, err)
		}

		vec, err := npy.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("archive entry %q: %w", entry.Name, err)
		}
		voices[name] = vec
	}

	return voices, nil
}

// ReadArchiveVoice reads a single voice from an NPZ archive without
// touching the other entries
func ReadArchiveVoice(path, name string) ([]float32, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	want := name + ".npy"
	for _, entry := range r.File {
		if entry.Name != want {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %q: %w", entry.Name, err)
		}
		blob, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %q: %w", entry.Name, err)
		}
		vec, err := npy.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("archive entry %q: %w", entry.Name, err)
		}
		return vec, nil
	}

	return nil, fmt.Errorf("voice %q not found in archive %s", name, path)
}
