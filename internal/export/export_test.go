package export

import (
	"archive/zip"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadTensor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "af_sarah.npy")
	vec := []float32{0.5, -1.25, 3.75}

	if err := WriteTensor(path, vec); err != nil {
		t.Fatalf("WriteTensor() error = %v", err)
	}

	got, err := ReadTensor(path)
	if err != nil {
		t.Fatalf("ReadTensor() error = %v", err)
	}
	if len(got) != len(vec) {
		t.Fatalf("length = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if math.Float32bits(got[i]) != math.Float32bits(vec[i]) {
			t.Errorf("element %d = %v, want %v (bit-exact)", i, got[i], vec[i])
		}
	}
}

func TestReadTensor_Missing(t *testing.T) {
	_, err := ReadTensor(filepath.Join(t.TempDir(), "missing.npy"))
	if err == nil {
		t.Error("ReadTensor() should fail for a missing file")
	}
}

func TestWriteReadArchive_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.bin")
	voices := map[string][]float32{
		"af_sarah":   {1, 2, 3},
		"am_adam":    {-1, 0.5, 0},
		"bf_emma":    {0, 0, 0},
		"plain.name": {7},
	}

	if err := WriteArchive(path, voices); err != nil {
		t.Fatalf("WriteArchive() error = %v", err)
	}

	got, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive() error = %v", err)
	}
	if len(got) != len(voices) {
		t.Fatalf("archive holds %d voices, want %d", len(got), len(voices))
	}
	for name, vec := range voices {
		gotVec, ok := got[name]
		if !ok {
			t.Errorf("voice %q missing after round trip", name)
			continue
		}
		for i := range vec {
			if math.Float32bits(gotVec[i]) != math.Float32bits(vec[i]) {
				t.Errorf("voice %q element %d = %v, want %v", name, i, gotVec[i], vec[i])
			}
		}
	}
}

func TestWriteArchive_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.bin")

	err := WriteArchive(path, nil)
	if err == nil {
		t.Fatal("WriteArchive() should fail for an empty mapping")
	}
	var emptyErr *EmptyExportError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error type = %T, want *EmptyExportError", err)
	}
}

func TestWriteArchive_FailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.bin")

	// ZIP entry names are capped at 64 KiB; longer names fail mid-write.
	// The half-written archive must be removed, not left on disk.
	longName := strings.Repeat("x", 1<<16+1)
	err := WriteArchive(path, map[string][]float32{longName: {1}})
	if err == nil {
		t.Fatal("WriteArchive() should fail for an oversized entry name")
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("partial archive left behind: stat error = %v", statErr)
	}
}

func TestWriteArchive_EntriesUncompressed(t *testing.T) {
	// np.load expects stored entries; compression would break downstream
	// consumers
	path := filepath.Join(t.TempDir(), "voices.bin")
	if err := WriteArchive(path, map[string][]float32{"v": {1, 2}}); err != nil {
		t.Fatalf("WriteArchive() error = %v", err)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("archive is not a ZIP: %v", err)
	}
	defer r.Close()

	if len(r.File) != 1 {
		t.Fatalf("archive holds %d entries, want 1", len(r.File))
	}
	entry := r.File[0]
	if entry.Name != "v.npy" {
		t.Errorf("entry name = %q, want v.npy", entry.Name)
	}
	if entry.Method != zip.Store {
		t.Errorf("entry method = %d, want Store", entry.Method)
	}
}

func TestReadArchiveVoice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.bin")
	WriteArchive(path, map[string][]float32{
		"af_sarah": {1, 2},
		"am_adam":  {3, 4},
	})

	vec, err := ReadArchiveVoice(path, "am_adam")
	if err != nil {
		t.Fatalf("ReadArchiveVoice() error = %v", err)
	}
	if vec[0] != 3 || vec[1] != 4 {
		t.Errorf("vector = %v, want [3 4]", vec)
	}

	_, err = ReadArchiveVoice(path, "missing")
	if err == nil {
		t.Error("ReadArchiveVoice() should fail for an unknown voice")
	}
}
