package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/gunpong/internal/pong"
)

// SampleRate is the output rate used for every cue.
const SampleRate = beep.SampleRate(44100)

// Player plays cues through one long-lived mixer on the speaker.
// When not initialized every call is a silent no-op, so the game runs
// the same with or without audio.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[Cue]int
}

// NewPlayer creates a player. Call Initialize to open the speaker.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[Cue]int),
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play starts a cue without waiting for it to finish.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[c]++
	if !p.initialized {
		return
	}

	s := Streamer(c, SampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times a cue was requested.
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}

// CueFor maps a match event to its sound, if any.
func CueFor(kind pong.EventKind) (Cue, bool) {
	switch kind {
	case pong.EventPaddleHit:
		return CuePaddle, true
	case pong.EventScore:
		return CueScore, true
	case pong.EventShotFired:
		return CueShot, true
	default:
		return 0, false
	}
}

// Notify implements pong.Sink.
func (p *Player) Notify(e pong.Event) {
	if c, ok := CueFor(e.Kind); ok {
		p.Play(c)
	}
}

var _ pong.Sink = (*Player)(nil)
