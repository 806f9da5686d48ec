package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/azu-azu/tsukisound/dsp"
	"github.com/azu-azu/tsukisound/wavio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		sampleRate int
		seed       int64
		outDir     string
		bedSeconds float64
	)

	root := &cobra.Command{
		Use:           "tsukisound",
		Short:         "Procedural ambience and music asset generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "tsukisound.yaml", "config file path")
	pf.IntVar(&sampleRate, "sample-rate", 0, "override sample rate")
	pf.Int64Var(&seed, "seed", 0, "override random seed")
	pf.StringVar(&outDir, "out", "", "override output directory")
	pf.Float64Var(&bedSeconds, "bed-seconds", 0, "override ambience loop length")

	loadCfg := func() (*Config, error) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if sampleRate != 0 {
			cfg.SampleRate = sampleRate
		}
		if seed != 0 {
			cfg.Seed = seed
		}
		if outDir != "" {
			cfg.OutDir = outDir
		}
		if bedSeconds != 0 {
			cfg.BedSeconds = bedSeconds
		}
		return cfg, cfg.validate()
	}

	var useTUI bool
	renderCmd := &cobra.Command{
		Use:   "render [asset...]",
		Short: "Render assets to WAV files (all assets when none named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			assets, err := selectAssets(args)
			if err != nil {
				return err
			}
			if useTUI {
				return renderTUI(cfg, assets)
			}
			return renderBatch(cfg, assets)
		},
	}
	renderCmd.Flags().BoolVar(&useTUI, "tui", false, "interactive progress and meter view")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range assetList() {
				fmt.Printf("  %-22s %s\n", a.Name, a.Description)
			}
			return nil
		},
	}

	playCmd := &cobra.Command{
		Use:   "play <asset>",
		Short: "Render one asset and play it through the default device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			asset, err := findAsset(args[0])
			if err != nil {
				return err
			}
			channels, err := renderAsset(cfg, asset)
			if err != nil {
				return err
			}
			return playChannels(cfg.SampleRate, channels)
		},
	}

	root.AddCommand(renderCmd, listCmd, playCmd)
	return root
}

func selectAssets(names []string) ([]Asset, error) {
	if len(names) == 0 {
		return assetList(), nil
	}
	out := make([]Asset, 0, len(names))
	for _, name := range names {
		a, err := findAsset(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// renderAsset runs an asset's generator with a fresh seeded source and
// applies the configured final peak trim.
func renderAsset(cfg *Config, asset Asset) ([][]float64, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	channels, err := asset.Render(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", asset.Name, err)
	}
	if cfg.TargetPeak > 0 {
		trimChannels(channels, cfg.TargetPeak)
	}
	for i, ch := range channels {
		if dsp.HasNonFinite(ch) {
			return nil, fmt.Errorf("render %s: channel %d has non-finite samples", asset.Name, i)
		}
	}
	return channels, nil
}

// trimChannels scales all channels by a shared factor so the loudest one
// peaks at target. Channel balance is preserved.
func trimChannels(channels [][]float64, target float64) {
	peak := 0.0
	for _, ch := range channels {
		if p := dsp.Peak(ch); p > peak {
			peak = p
		}
	}
	if peak == 0 || peak <= target {
		return
	}
	scale := target / peak
	for _, ch := range channels {
		for i := range ch {
			ch[i] *= scale
		}
	}
}

func renderBatch(cfg *Config, assets []Asset) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}
	for _, asset := range assets {
		channels, err := renderAsset(cfg, asset)
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.OutDir, asset.Name+".wav")
		if err := wavio.WriteFile(path, cfg.SampleRate, channels...); err != nil {
			return err
		}
		seconds := float64(len(channels[0])) / cfg.sampleRateF()
		fmt.Printf("wrote %-26s %6.1fs  peak %5.3f  rms %5.3f\n",
			path, seconds, dsp.Peak(channels[0]), dsp.RMS(channels[0]))
	}
	return nil
}
