package lab

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/mSW/internal/audio"
	"github.com/msto63/mSW/internal/groups"
	"github.com/msto63/mSW/internal/styles"
	"github.com/msto63/mSW/internal/voicestore"
	"github.com/msto63/mSW/pkg/core/logging"
)

// InterpolateOptions configures an interpolation sweep between two voice
// groups. Factors outside [-1, 1] extrapolate beyond the group centroids.
type InterpolateOptions struct {
	Source   voicestore.Selector
	Target   voicestore.Selector
	Factors  []float64
	Text     string
	Speed    float32
	Language string
	Output   string
}

// InterpolateStep is one rendered point of a sweep
type InterpolateStep struct {
	Factor     float64
	Style      []float32
	OutputPath string
}

// InterpolateResult reports the resolved groups and all rendered steps
type InterpolateResult struct {
	SourceVoices []*voicestore.VoiceRecord
	TargetVoices []*voicestore.VoiceRecord
	Steps        []InterpolateStep
}

// Interpolate blends the source and target group centroids at each factor
// and renders the given text once per step
func (l *Lab) Interpolate(ctx context.Context, opts InterpolateOptions) (*InterpolateResult, error) {
	var missing []string
	if opts.Text == "" {
		missing = append(missing, "text")
	}
	if len(opts.Factors) == 0 {
		missing = append(missing, "ranges")
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentError{Missing: missing}
	}

	source, target, result, err := l.resolveGroups(ctx, opts.Source, opts.Target)
	if err != nil {
		return nil, err
	}

	outDir := opts.Output
	if outDir == "" {
		outDir = l.config.OutputDir
	}

	runID := uuid.New().String()[:8]
	log := l.logger.WithField("run", runID)
	log.Info("starting interpolation sweep", logging.Fields{
		"source": opts.Source.String(),
		"target": opts.Target.String(),
		"steps":  len(opts.Factors),
	})

	for _, factor := range opts.Factors {
		style, err := styles.Interpolate(source, target, factor)
		if err != nil {
			return nil, err
		}

		samples, sampleRate, err := l.synthesize(ctx, opts.Text, style, opts.Speed, opts.Language)
		if err != nil {
			return nil, fmt.Errorf("factor %.2f: %w", factor, err)
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("interpolation_%.2f.wav", factor))
		if err := audio.WriteWAVFile(outPath, samples, sampleRate); err != nil {
			return nil, err
		}
		log.Info("wrote interpolation step", logging.Fields{
			"factor": fmt.Sprintf("%.2f", factor),
			"path":   outPath,
		})

		result.Steps = append(result.Steps, InterpolateStep{
			Factor:     factor,
			Style:      style,
			OutputPath: outPath,
		})
	}

	return result, nil
}

// SyntheticOptions configures the creation of a named synthetic voice from
// a single interpolation step. Quality is a pointer so that an explicit 0
// stays distinguishable from "not supplied".
type SyntheticOptions struct {
	Source   voicestore.Selector
	Target   voicestore.Selector
	Factor   float64
	Name     string
	Gender   string
	Quality  *int
	Notes    string
	Text     string
	Speed    float32
	Language string
	Output   string
}

// SyntheticResult reports the stored record and, when text was given, the
// rendered sample file
type SyntheticResult struct {
	Record       *voicestore.VoiceRecord
	SourceVoices []*voicestore.VoiceRecord
	TargetVoices []*voicestore.VoiceRecord
	OutputPath   string
}

// InsertSynthetic blends two groups at one factor and stores the result as
// a new synthetic voice. The insert is strict: an existing voice of the
// same name aborts the operation instead of being overwritten.
func (l *Lab) InsertSynthetic(ctx context.Context, opts SyntheticOptions) (*SyntheticResult, error) {
	// Argument checks come first so that nothing is resolved, stored or
	// synthesized when the call is incomplete
	var missing []string
	if opts.Name == "" {
		missing = append(missing, "name")
	}
	if opts.Gender == "" {
		missing = append(missing, "gender")
	}
	if opts.Quality == nil {
		missing = append(missing, "quality")
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentError{Missing: missing}
	}

	gender, err := voicestore.ParseGender(opts.Gender)
	if err != nil {
		return nil, err
	}

	source, target, resolved, err := l.resolveGroups(ctx, opts.Source, opts.Target)
	if err != nil {
		return nil, err
	}

	style, err := styles.Interpolate(source, target, opts.Factor)
	if err != nil {
		return nil, err
	}

	language := opts.Language
	if language == "" {
		language = l.config.Language
	}

	notes := opts.Notes
	if notes == "" {
		notes = fmt.Sprintf("interpolated %.2f between [%s] and [%s]",
			opts.Factor, opts.Source.String(), opts.Target.String())
	}

	rec := &voicestore.VoiceRecord{
		Name:        opts.Name,
		Gender:      gender,
		Language:    language,
		Quality:     *opts.Quality,
		StyleVector: style,
		IsSynthetic: true,
		Notes:       notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := l.store.Insert(ctx, rec); err != nil {
		return nil, err
	}

	runID := uuid.New().String()[:8]
	log := l.logger.WithField("run", runID)
	log.Info("stored synthetic voice", logging.Fields{
		"name":   rec.Name,
		"factor": fmt.Sprintf("%.2f", opts.Factor),
	})

	result := &SyntheticResult{
		Record:       rec,
		SourceVoices: resolved.SourceVoices,
		TargetVoices: resolved.TargetVoices,
	}

	if opts.Text != "" {
		samples, sampleRate, err := l.synthesize(ctx, opts.Text, style, opts.Speed, language)
		if err != nil {
			return nil, fmt.Errorf("voice stored, but synthesis failed: %w", err)
		}

		outDir := opts.Output
		if outDir == "" {
			outDir = l.config.OutputDir
		}
		outPath := filepath.Join(outDir, rec.Name+".wav")
		if err := audio.WriteWAVFile(outPath, samples, sampleRate); err != nil {
			return nil, err
		}
		log.Info("wrote audio sample", logging.Fields{"path": outPath})
		result.OutputPath = outPath
	}

	return result, nil
}

func (l *Lab) resolveGroups(ctx context.Context, sourceSel, targetSel voicestore.Selector) ([]float32, []float32, *InterpolateResult, error) {
	source, sourceVoices, err := groups.Resolve(ctx, l.store, sourceSel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("source group: %w", err)
	}

	target, targetVoices, err := groups.Resolve(ctx, l.store, targetSel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("target group: %w", err)
	}

	return source, target, &InterpolateResult{
		SourceVoices: sourceVoices,
		TargetVoices: targetVoices,
	}, nil
}
