// Package wavio writes rendered float64 buffers as 16-bit PCM WAV files.
package wavio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteFile writes one or more equal-length channels to path as 16-bit PCM.
// Samples are clamped to [-1, 1] before quantization.
func WriteFile(path string, sampleRate int, channels ...[]float64) error {
	if len(channels) == 0 {
		return fmt.Errorf("wav %s: no channels", path)
	}
	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return fmt.Errorf("wav %s: channel %d has %d samples, want %d", path, i, len(ch), frames)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, len(channels), 1)

	data := make([]int, 0, frames*len(channels))
	for i := 0; i < frames; i++ {
		for _, ch := range channels {
			data = append(data, quantize16(ch[i]))
		}
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav %s: %w", path, err)
	}
	return f.Close()
}

func quantize16(v float64) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * 32767)
}
