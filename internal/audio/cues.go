// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a sound.
type Cue int

const (
	CuePaddle Cue = iota // Ball off a paddle
	CueScore             // Goal
	CueShot              // Gun fired
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CuePaddle:
		return "paddle"
	case CueScore:
		return "score"
	case CueShot:
		return "shot"
	default:
		return "unknown"
	}
}

// Cue lengths
const (
	PaddleDuration = 60 * time.Millisecond
	ScoreDuration  = 450 * time.Millisecond
	ShotDuration   = 220 * time.Millisecond
)

// Duration returns how long a cue plays.
func (c Cue) Duration() time.Duration {
	switch c {
	case CuePaddle:
		return PaddleDuration
	case CueScore:
		return ScoreDuration
	case CueShot:
		return ShotDuration
	default:
		return 0
	}
}

// Streamer builds a fresh finite streamer for a cue at the given rate.
// Returns nil for an unknown cue.
func Streamer(c Cue, sr beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CuePaddle:
		s = newClick(sr)
	case CueScore:
		s = newClang(sr)
	case CueShot:
		s = newTwang(sr)
	default:
		return nil
	}
	return withVolume(s, vol)
}

// withVolume scales a stream linearly. Zero means silent, since log2(0) is -Inf.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// decay shapes a stream with an exponential fade and stops after total samples.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
	rate     float64 // e-folds per second
	sr       beep.SampleRate
}

func newDecay(s beep.Streamer, d time.Duration, rate float64, sr beep.SampleRate) *decay {
	return &decay{streamer: s, total: sr.N(d), rate: rate, sr: sr}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.pos >= d.total {
		return 0, false
	}
	if left := d.total - d.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.pos) / float64(d.sr)
		g := math.Exp(-d.rate * t)
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// click is a wood-like knock: a noise burst over a short 1.1kHz ping.
type click struct {
	sr    beep.SampleRate
	pos   int
	total int
	rng   *rand.Rand
}

func newClick(sr beep.SampleRate) beep.Streamer {
	c := &click{sr: sr, total: sr.N(PaddleDuration), rng: rand.New(rand.NewSource(1))}
	return newDecay(c, PaddleDuration, 60, sr)
}

func (c *click) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.pos >= c.total {
			return i, false
		}
		t := float64(c.pos) / float64(c.sr)
		noise := c.rng.Float64()*2 - 1
		ping := math.Sin(2 * math.Pi * 1100 * t)
		val := 0.35*noise*math.Exp(-400*t) + 0.65*ping
		samples[i][0] = val
		samples[i][1] = val
		c.pos++
	}
	return len(samples), true
}

func (c *click) Err() error { return nil }

// newClang mixes inharmonic partials, like a struck metal sheet, with a
// slow wobble on top.
func newClang(sr beep.SampleRate) beep.Streamer {
	partials := []struct {
		freq float64
		gain float64
	}{
		{220, 0.45},
		{587, 0.25},
		{893, 0.18},
		{1351, 0.12},
	}

	parts := make([]beep.Streamer, 0, len(partials))
	for _, p := range partials {
		tone, err := generators.SineTone(sr, p.freq)
		if err != nil {
			// Partials above Nyquist are dropped
			continue
		}
		parts = append(parts, withVolume(beep.Take(sr.N(ScoreDuration), tone), p.gain))
	}

	return newDecay(&wobble{streamer: beep.Mix(parts...), sr: sr, hz: 7}, ScoreDuration, 6, sr)
}

// wobble applies amplitude modulation.
type wobble struct {
	streamer beep.Streamer
	sr       beep.SampleRate
	hz       float64
	pos      int
}

func (w *wobble) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = w.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(w.pos) / float64(w.sr)
		g := 0.75 + 0.25*math.Sin(2*math.Pi*w.hz*t)
		samples[i][0] *= g
		samples[i][1] *= g
		w.pos++
	}
	return n, ok
}

func (w *wobble) Err() error { return w.streamer.Err() }

// twang is a metallic pluck whose pitch bends down from 1.6kHz to 400Hz.
type twang struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

func newTwang(sr beep.SampleRate) beep.Streamer {
	tw := &twang{sr: sr, total: sr.N(ShotDuration)}
	return newDecay(tw, ShotDuration, 14, sr)
}

func (tw *twang) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if tw.pos >= tw.total {
			return i, false
		}
		progress := float64(tw.pos) / float64(tw.total)
		freq := 400 + 1200*math.Pow(1-progress, 2)

		// Square-ish edge for the metallic bite
		s := math.Sin(2 * math.Pi * tw.phase)
		val := 0.7*s + 0.3*math.Tanh(4*s)
		samples[i][0] = val
		samples[i][1] = val

		tw.phase += freq / float64(tw.sr)
		tw.phase -= math.Floor(tw.phase)
		tw.pos++
	}
	return len(samples), true
}

func (tw *twang) Err() error { return nil }
