// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
// Package: lab
// Description: Workflow layer of the voice lab. Coordinates the voice
//              catalog, style math, synthesis and audio output for the
//              user-facing operations.
// Author: Mike Stoffels with Claude
// Created: 2026-08
// License: MIT
// ============================================================================

package lab

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/msto63/mSW/internal/audio"
	"github.com/msto63/mSW/internal/synth"
	"github.com/msto63/mSW/internal/voicestore"
	"github.com/msto63/mSW/pkg/core/logging"
)

// MissingArgumentError reports required arguments that were not provided.
// It is raised before any store or synthesis call happens.
type MissingArgumentError struct {
	Missing []string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required arguments: %s", strings.Join(e.Missing, ", "))
}

// AudioPlayer plays rendered samples on an output device
type AudioPlayer interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// Config configures the lab workflows
type Config struct {
	OutputDir string
	ExportDir string
	Speed     float32
	Language  string
}

// DefaultConfig returns the default lab configuration
func DefaultConfig() Config {
	return Config{
		OutputDir: "./output",
		ExportDir: "./exported_voices",
		Speed:     1.0,
		Language:  "en-us",
	}
}

// Lab bundles the voice catalog with the synthesis engine
type Lab struct {
	store  voicestore.Store
	engine synth.Engine
	player AudioPlayer
	config Config
	logger *logging.Logger
}

// New creates a lab. The player may be nil when no direct playback is needed.
func New(store voicestore.Store, engine synth.Engine, player AudioPlayer, config Config, logger *logging.Logger) *Lab {
	if logger == nil {
		logger = logging.NewSimpleLogger("lab")
	}
	if config.Speed == 0 {
		config.Speed = DefaultConfig().Speed
	}
	if config.Language == "" {
		config.Language = DefaultConfig().Language
	}
	if config.OutputDir == "" {
		config.OutputDir = DefaultConfig().OutputDir
	}
	if config.ExportDir == "" {
		config.ExportDir = DefaultConfig().ExportDir
	}

	return &Lab{
		store:  store,
		engine: engine,
		player: player,
		config: config,
		logger: logger,
	}
}

// SayOptions configures a single synthesis run for a stored voice
type SayOptions struct {
	Voice    string
	Text     string
	Speed    float32
	Language string
	Output   string
	Play     bool
}

// SayResult reports what a say run produced
type SayResult struct {
	Voice      *voicestore.VoiceRecord
	OutputPath string
	SampleRate int
	Samples    int
}

// Say synthesizes text with a stored voice and writes a WAV file
func (l *Lab) Say(ctx context.Context, opts SayOptions) (*SayResult, error) {
	var missing []string
	if opts.Voice == "" {
		missing = append(missing, "voice")
	}
	if opts.Text == "" {
		missing = append(missing, "text")
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentError{Missing: missing}
	}

	rec, err := l.store.Get(ctx, opts.Voice)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()[:8]
	log := l.logger.WithField("run", runID)
	log.Info("synthesizing with stored voice", logging.Fields{
		"voice": rec.Name,
		"chars": len(opts.Text),
	})

	samples, sampleRate, err := l.synthesize(ctx, opts.Text, rec.StyleVector, opts.Speed, opts.Language)
	if err != nil {
		return nil, err
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = filepath.Join(l.config.OutputDir, rec.Name+".wav")
	}
	if err := audio.WriteWAVFile(outPath, samples, sampleRate); err != nil {
		return nil, err
	}
	log.Info("wrote audio file", logging.Fields{"path": outPath})

	if opts.Play {
		if l.player == nil {
			return nil, fmt.Errorf("no audio output device configured")
		}
		if err := l.player.Play(ctx, samples, sampleRate); err != nil {
			return nil, fmt.Errorf("playback failed: %w", err)
		}
	}

	return &SayResult{
		Voice:      rec,
		OutputPath: outPath,
		SampleRate: sampleRate,
		Samples:    len(samples),
	}, nil
}

// List returns the voices matching a selector, in name order
func (l *Lab) List(ctx context.Context, sel voicestore.Selector) ([]*voicestore.VoiceRecord, error) {
	return l.store.Select(ctx, sel)
}

func (l *Lab) synthesize(ctx context.Context, text string, style []float32, speed float32, language string) ([]float32, int, error) {
	if speed == 0 {
		speed = l.config.Speed
	}
	if language == "" {
		language = l.config.Language
	}

	return l.engine.Synthesize(ctx, synth.Request{
		Text:     text,
		Style:    style,
		Speed:    speed,
		Language: language,
	})
}
