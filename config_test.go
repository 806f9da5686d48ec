package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if *cfg != *def {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tsukisound.yaml")
	data := "sampleRate: 44100\noutDir: build\nseed: 7\nbedSeconds: 30\ntargetPeak: 0.8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SampleRate != 44100 || cfg.OutDir != "build" || cfg.Seed != 7 ||
		cfg.BedSeconds != 30 || cfg.TargetPeak != 0.8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"broken yaml":     "sampleRate: [oops\n",
		"zero rate":       "sampleRate: 0\n",
		"negative bed":    "bedSeconds: -4\n",
		"peak over unity": "targetPeak: 1.5\n",
	}
	for name, data := range cases {
		name, data := name, data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("%s accepted", name)
			}
		})
	}
}
