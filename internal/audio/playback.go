package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const playbackFrames = 1024

// Player plays float32 samples on the default output device
type Player struct {
	initialized bool
}

// NewPlayer initializes PortAudio
func NewPlayer() (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return &Player{initialized: true}, nil
}

// Play blocks until the samples have been played or the context is cancelled
func (p *Player) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if !p.initialized {
		return fmt.Errorf("player not initialized")
	}

	buf := make([]float32, playbackFrames)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(buf), &buf)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for pos := 0; pos < len(samples); pos += playbackFrames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := copy(buf, samples[pos:])
		// Final chunk may be short, pad with silence
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write audio: %w", err)
		}
	}

	return nil
}

// Close releases PortAudio
func (p *Player) Close() error {
	if !p.initialized {
		return nil
	}
	p.initialized = false
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate portaudio: %w", err)
	}
	return nil
}
