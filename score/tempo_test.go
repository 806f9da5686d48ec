package score

import (
	"math"
	"testing"
)

func testMap(t *testing.T) *TempoMap {
	t.Helper()
	tm, err := NewTempoMap(TempoMap{
		Sections: []TempoSection{
			{StartBar: 1, Tempo: 0.8},
			{StartBar: 5, Tempo: 1.0},
			{StartBar: 9, Tempo: 1.1},
			{StartBar: 13, Tempo: 1.2},
			{StartBar: 21, Tempo: 1.2, TempoEnd: 1.0},
		},
		TotalBars:      25,
		BeatDuration:   1.0,
		BeatsPerBar:    3,
		IntroRestBeats: 2,
		LeadIn:         0.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func TestNewTempoMap_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    TempoMap
	}{
		{"no sections", TempoMap{TotalBars: 4, BeatDuration: 1, BeatsPerBar: 3}},
		{"first bar not 1", TempoMap{
			Sections: []TempoSection{{StartBar: 2, Tempo: 1}},
			TotalBars: 4, BeatDuration: 1, BeatsPerBar: 3,
		}},
		{"zero tempo", TempoMap{
			Sections: []TempoSection{{StartBar: 1, Tempo: 0}},
			TotalBars: 4, BeatDuration: 1, BeatsPerBar: 3,
		}},
		{"bars not advancing", TempoMap{
			Sections:  []TempoSection{{StartBar: 1, Tempo: 1}, {StartBar: 1, Tempo: 1.2}},
			TotalBars: 4, BeatDuration: 1, BeatsPerBar: 3,
		}},
		{"two ramps", TempoMap{
			Sections: []TempoSection{
				{StartBar: 1, Tempo: 1, TempoEnd: 1.2},
				{StartBar: 3, Tempo: 1.2, TempoEnd: 1},
			},
			TotalBars: 4, BeatDuration: 1, BeatsPerBar: 3,
		}},
		{"intro rest swallows first section", TempoMap{
			Sections:       []TempoSection{{StartBar: 1, Tempo: 1}, {StartBar: 2, Tempo: 1}},
			TotalBars:      4,
			BeatDuration:   1,
			BeatsPerBar:    3,
			IntroRestBeats: 3,
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewTempoMap(tc.m); err == nil {
				t.Errorf("NewTempoMap accepted %s", tc.name)
			}
		})
	}
}

func TestTempoMap_StartSkipsIntroRest(t *testing.T) {
	t.Parallel()

	tm := testMap(t)
	// Musical time at the end of the lead-in is the skipped rest.
	if got := tm.RealToMusical(0.5); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("musical start %g, want 2.0", got)
	}
	// Inside the lead-in, musical time counts backwards from there.
	if got := tm.RealToMusical(0.25); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("lead-in mapping %g, want 1.75", got)
	}
}

func TestTempoMap_MonotoneAndContinuous(t *testing.T) {
	t.Parallel()

	tm := testMap(t)
	end := tm.LeadIn + tm.CycleDuration()
	prev := math.Inf(-1)
	const step = 1e-3
	for r := 0.0; r <= end+1; r += step {
		mus := tm.RealToMusical(r)
		if mus < prev-1e-12 {
			t.Fatalf("musical time decreased at real %g: %g < %g", r, mus, prev)
		}
		// Continuity: one real step never jumps more than the fastest
		// tempo can cover (plus slack).
		if prev > math.Inf(-1) && mus-prev > step*1.3 {
			t.Fatalf("discontinuity at real %g: jump %g", r, mus-prev)
		}
		prev = mus
	}
	if got := tm.RealToMusical(end + 10); math.Abs(got-tm.MusicalLength()) > 1e-9 {
		t.Errorf("past-end clamp %g, want %g", got, tm.MusicalLength())
	}
}

func TestTempoMap_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := testMap(t)
	end := tm.LeadIn + tm.CycleDuration()
	for r := 0.0; r < end; r += 0.37 {
		mus := tm.RealToMusical(r)
		back := tm.MusicalToReal(mus)
		if math.Abs(back-r) > 1e-6 {
			t.Errorf("real %g -> musical %g -> real %g", r, mus, back)
		}
	}
}

func TestTempoMap_ConstantSectionRate(t *testing.T) {
	t.Parallel()

	tm := testMap(t)
	// Well inside the second section (bars 5-8, ratio 1.0) musical time
	// advances at exactly the tempo ratio.
	r0 := tm.MusicalToReal(13.0)
	r1 := tm.MusicalToReal(14.0)
	if math.Abs((r1-r0)-1.0) > 1e-9 {
		t.Errorf("1 musical second took %g real seconds at tempo 1.0", r1-r0)
	}

	// First section runs at 0.8, so musical seconds cost 1/0.8 real seconds.
	r0 = tm.MusicalToReal(3.0)
	r1 = tm.MusicalToReal(4.0)
	if math.Abs((r1-r0)-1.25) > 1e-9 {
		t.Errorf("1 musical second took %g real seconds at tempo 0.8", r1-r0)
	}
}

func TestTempoMap_SectionAt(t *testing.T) {
	t.Parallel()

	tm := testMap(t)
	cases := []struct {
		musical float64
		want    int
	}{
		{0, 0},
		{11.9, 0},  // bar 4
		{12.0, 1},  // bar 5
		{24.0, 2},  // bar 9
		{36.0, 3},  // bar 13
		{60.0, 4},  // bar 21
		{74.9, 4},  // last bar
		{500.0, 4}, // clamped
		{-3.0, 0},  // clamped
	}
	for _, tc := range cases {
		if got := tm.SectionAt(tc.musical); got != tc.want {
			t.Errorf("SectionAt(%g)=%d, want %d", tc.musical, got, tc.want)
		}
	}
}

func TestTempoMap_SectionProgress(t *testing.T) {
	t.Parallel()

	tm := testMap(t)
	if got := tm.SectionProgress(12.0, 1); got != 0 {
		t.Errorf("progress at section start: %g", got)
	}
	if got := tm.SectionProgress(18.0, 1); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("progress at section midpoint: %g, want 0.5", got)
	}
	if got := tm.SectionProgress(100.0, 1); got != 1 {
		t.Errorf("progress past section end: %g, want 1", got)
	}
}
