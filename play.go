package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// playChannels previews a rendered asset through the default audio device.
// Blocks until playback finishes.
func playChannels(sampleRate int, channels [][]float64) error {
	if len(channels) == 0 {
		return fmt.Errorf("play: no channels")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: len(channels),
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(bytes.NewReader(interleaveFloat32LE(channels)))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

// interleaveFloat32LE packs the channels frame by frame into the byte
// layout oto expects.
func interleaveFloat32LE(channels [][]float64) []byte {
	frames := len(channels[0])
	out := make([]byte, 0, frames*len(channels)*4)
	var scratch [4]byte
	for i := 0; i < frames; i++ {
		for _, ch := range channels {
			v := ch[i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(float32(v)))
			out = append(out, scratch[:]...)
		}
	}
	return out
}
