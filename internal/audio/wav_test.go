package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteWAV_Header(t *testing.T) {
	var buf bytes.Buffer
	samples := []float32{0.0, 0.5, -0.5, 1.0}

	if err := WriteWAV(&buf, samples, 24000); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Errorf("WAV size = %d, want %d", len(data), 44+len(samples)*2)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate != 24000 {
		t.Errorf("sample rate = %d, want 24000", sampleRate)
	}

	bitsPerSample := binary.LittleEndian.Uint16(data[34:36])
	if bitsPerSample != 16 {
		t.Errorf("bits per sample = %d, want 16", bitsPerSample)
	}
}

func TestWriteWAV_ParseWAV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	samples := []float32{0.0, 0.25, -0.25, 0.9, -0.9}

	if err := WriteWAV(&buf, samples, 24000); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}

	got, rate, err := ParseWAV(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseWAV() error = %v", err)
	}
	if rate != 24000 {
		t.Errorf("sample rate = %d, want 24000", rate)
	}
	if len(got) != len(samples) {
		t.Fatalf("sample count = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if math.Abs(float64(got[i]-samples[i])) > 1.0/32000 {
			t.Errorf("sample[%d] = %v, want ~%v", i, got[i], samples[i])
		}
	}
}

func TestWriteWAV_Clipping(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWAV(&buf, []float32{2.0, -2.0}, 24000); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}

	got, _, err := ParseWAV(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseWAV() error = %v", err)
	}
	if got[0] < 0.99 {
		t.Errorf("clipped positive sample = %v, want ~1.0", got[0])
	}
	if got[1] > -0.99 {
		t.Errorf("clipped negative sample = %v, want ~-1.0", got[1])
	}
}

func TestWriteWAVFile_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "test.wav")

	if err := WriteWAVFile(path, []float32{0.1, 0.2}, 24000); err != nil {
		t.Fatalf("WriteWAVFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if _, _, err := ParseWAV(data); err != nil {
		t.Errorf("written file does not parse: %v", err)
	}
}

func TestParseWAV_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte("RIFF")},
		{"wrong magic", bytes.Repeat([]byte{0x42}, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseWAV(tt.data); err == nil {
				t.Error("ParseWAV() expected error, got nil")
			}
		})
	}
}
