// Package manifest parses voice manifests: the metadata files that describe
// a voice pack for the bulk catalog build. JSON is the native form; YAML is
// accepted as well.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/mSW/internal/voicestore"
)

// Manifest describes a set of voices to load into the catalog
type Manifest struct {
	Voices []Voice `json:"voices" yaml:"voices"`
}

// Voice is one manifest entry. Name, gender, language and quality are
// required; the style vector comes either inline or from a voice pack
// archive looked up by name.
type Voice struct {
	Name             string    `json:"name" yaml:"name"`
	Gender           string    `json:"gender" yaml:"gender"`
	Language         string    `json:"language" yaml:"language"`
	Quality          *int      `json:"quality" yaml:"quality"`
	TrainingDuration string    `json:"training_duration,omitempty" yaml:"training_duration,omitempty"`
	IsSynthetic      bool      `json:"is_synthetic,omitempty" yaml:"is_synthetic,omitempty"`
	Notes            string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	StyleVector      []float32 `json:"style_vector,omitempty" yaml:"style_vector,omitempty"`
}

// Load reads a manifest file, choosing the parser by file extension
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	}

	if len(m.Voices) == 0 {
		return nil, fmt.Errorf("manifest %s describes no voices", path)
	}

	return &m, nil
}

// Record converts a manifest entry into a catalog record. The style vector
// must already be resolved (inline or from the voice pack).
func (v *Voice) Record(vec []float32) (*voicestore.VoiceRecord, error) {
	if v.Name == "" {
		return nil, fmt.Errorf("manifest entry without name")
	}
	gender, err := voicestore.ParseGender(v.Gender)
	if err != nil {
		return nil, fmt.Errorf("voice %q: %w", v.Name, err)
	}
	if v.Language == "" {
		return nil, fmt.Errorf("voice %q: language is required", v.Name)
	}
	if v.Quality == nil {
		return nil, fmt.Errorf("voice %q: quality is required", v.Name)
	}

	rec := &voicestore.VoiceRecord{
		Name:             v.Name,
		Gender:           gender,
		Language:         v.Language,
		Quality:          *v.Quality,
		TrainingDuration: v.TrainingDuration,
		StyleVector:      vec,
		IsSynthetic:      v.IsSynthetic,
		Notes:            v.Notes,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
