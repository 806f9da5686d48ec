package main

import (
	"fmt"
	"math/rand"

	"github.com/azu-azu/tsukisound/ambience"
	"github.com/azu-azu/tsukisound/pieces"
)

// Asset is one renderable output file. Render returns one channel slice
// for mono, two for stereo.
type Asset struct {
	Name        string
	Description string
	Render      func(cfg *Config, rng *rand.Rand) ([][]float64, error)
}

func mono(x []float64, err error) ([][]float64, error) {
	if err != nil {
		return nil, err
	}
	return [][]float64{x}, nil
}

// dupStereo duplicates a mono render into two channels, the treatment the
// wind bed gets on export.
func dupStereo(x []float64) [][]float64 {
	r := make([]float64, len(x))
	copy(r, x)
	return [][]float64{x, r}
}

func assetList() []Asset {
	assets := []Asset{
		{
			Name:        "moonlit-gymnopedie",
			Description: "Gymnopedie No.1, detuned sine voicing with cathedral reverb",
			Render: func(cfg *Config, _ *rand.Rand) ([][]float64, error) {
				return mono(pieces.MoonlitGymnopedie(cfg.sampleRateF()))
			},
		},
		{
			Name:        "acoustic-gymnopedie",
			Description: "Gymnopedie No.1, plucked guitar voicing",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(pieces.AcousticGymnopedie(cfg.sampleRateF(), rng))
			},
		},
		{
			Name:        "music-box",
			Description: "Brahms lullaby on a music-box bell voice",
			Render: func(cfg *Config, _ *rand.Rand) ([][]float64, error) {
				return mono(pieces.MusicBox(cfg.sampleRateF()))
			},
		},
		{
			Name:        "jupiter",
			Description: "Jupiter hymn: drone, evolving melody timbres, chimes",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(pieces.Jupiter(cfg.sampleRateF(), rng))
			},
		},
		{
			Name:        "acoustic-jupiter",
			Description: "Jupiter theme on plucked guitar, warm room reverb",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(pieces.AcousticJupiter(cfg.sampleRateF(), rng))
			},
		},
		{
			Name:        "pink-noise",
			Description: "pink noise bed, Voss-McCartney",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(ambience.Pink(cfg.sampleRateF(), cfg.BedSeconds, rng), nil)
			},
		},
		{
			Name:        "ocean-waves",
			Description: "lowpassed noise under slow overlapping swells",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(ambience.Ocean(cfg.sampleRateF(), cfg.BedSeconds, rng), nil)
			},
		},
		{
			Name:        "rain",
			Description: "three filtered noise layers with an intensity cycle",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(ambience.Rain(cfg.sampleRateF(), cfg.BedSeconds, rng), nil)
			},
		},
		{
			Name:        "forest",
			Description: "wind, leaves, and sparse chirps",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(ambience.Forest(cfg.sampleRateF(), cfg.BedSeconds, rng), nil)
			},
		},
		{
			Name:        "forest-wind-leaves",
			Description: "band-masked wind with rustle events, stereo",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return dupStereo(ambience.WindLeaves(cfg.sampleRateF(), cfg.BedSeconds, rng)), nil
			},
		},
		{
			Name:        "forest-birds",
			Description: "panned frequency-sweep bird calls, stereo",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				l, r := ambience.ForestBirds(cfg.sampleRateF(), cfg.BedSeconds, rng)
				return [][]float64{l, r}, nil
			},
		},
		{
			Name:        "bubbles",
			Description: "sparse triple-poko bubble events, stereo",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				l, r := ambience.Bubbles(cfg.sampleRateF(), cfg.BedSeconds, rng)
				return [][]float64{l, r}, nil
			},
		},
		{
			Name:        "seagull",
			Description: "single seagull cry",
			Render: func(cfg *Config, rng *rand.Rand) ([][]float64, error) {
				return mono(ambience.Seagull(cfg.sampleRateF(), rng), nil)
			},
		},
	}

	for i := 1; i <= 5; i++ {
		variation := i
		assets = append(assets, Asset{
			Name:        fmt.Sprintf("tree-chime-%d", variation),
			Description: "metallic shimmer cascade, fixed seed",
			Render: func(cfg *Config, _ *rand.Rand) ([][]float64, error) {
				return mono(ambience.ChimeVariations(cfg.sampleRateF())[variation-1], nil)
			},
		})
	}
	return assets
}

func findAsset(name string) (Asset, error) {
	for _, a := range assetList() {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("unknown asset %q", name)
}
