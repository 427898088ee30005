// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
// Package: synth
// Description: Client for the local speech synthesis service. Sends text
//              together with a style vector and receives rendered audio.
// Author: Mike Stoffels with Claude
// Created: 2026-08
// License: MIT
// ============================================================================

package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/msto63/mSW/internal/audio"
)

// Engine renders text to audio using a concrete style vector
type Engine interface {
	// Synthesize returns mono float32 samples and their sample rate
	Synthesize(ctx context.Context, req Request) ([]float32, int, error)
	Close() error
}

// Request carries everything a synthesis call needs
type Request struct {
	Text     string    `json:"text"`
	Style    []float32 `json:"style"`
	Speed    float32   `json:"speed"`
	Language string    `json:"language"`
}

// HTTPConfig configures the HTTP synthesis client
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultHTTPConfig returns the default synthesis client configuration
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		BaseURL: "http://localhost:8880",
		Timeout: 120 * time.Second,
	}
}

// HTTPEngine talks to a local synthesis service over HTTP. The service
// accepts a JSON request on /synthesize and answers with a 16-bit PCM WAV.
type HTTPEngine struct {
	config HTTPConfig
	client *http.Client
}

// NewHTTPEngine creates a synthesis client
func NewHTTPEngine(config HTTPConfig) *HTTPEngine {
	if config.BaseURL == "" {
		config.BaseURL = DefaultHTTPConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultHTTPConfig().Timeout
	}

	return &HTTPEngine{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Synthesize renders text with the given style vector
func (e *HTTPEngine) Synthesize(ctx context.Context, req Request) ([]float32, int, error) {
	if req.Text == "" {
		return nil, 0, fmt.Errorf("text must not be empty")
	}
	if len(req.Style) == 0 {
		return nil, 0, fmt.Errorf("style vector must not be empty")
	}
	if req.Speed == 0 {
		req.Speed = 1.0
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := e.config.BaseURL + "/synthesize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, fmt.Errorf("synthesis service returned %d: %s", resp.StatusCode, string(msg))
	}

	wav, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	samples, sampleRate, err := audio.ParseWAV(wav)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode synthesis response: %w", err)
	}

	return samples, sampleRate, nil
}

// Close releases client resources
func (e *HTTPEngine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
