package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/opdozitz/internal/actor"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Sink receives streamers to play.
type Sink interface {
	Play(s beep.Streamer)
}

// Silent is a Sink that drops everything.
var Silent Sink = silentSink{}

type silentSink struct{}

func (silentSink) Play(beep.Streamer) {}

// Speaker plays streamers through the system audio device.
type Speaker struct {
	mixer *beep.Mixer
}

// OpenSpeaker initializes the audio device.
func OpenSpeaker(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes s into the output.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Player turns cues into sounds. The same cue is not repeated within
// MinGap so bursts of events, such as a fast-forwarded wave of landings,
// stay audible. Player is safe for concurrent use and implements
// actor.Listener.
type Player struct {
	mu     sync.Mutex
	sink   Sink
	rate   beep.SampleRate
	volume float64
	muted  bool
	minGap time.Duration
	last   map[Cue]time.Time
	now    func() time.Time
}

// NewPlayer creates a player writing to sink. A nil sink is Silent.
func NewPlayer(sink Sink, volume float64) *Player {
	if sink == nil {
		sink = Silent
	}
	return &Player{
		sink:   sink,
		rate:   SampleRate,
		volume: volume,
		minGap: 60 * time.Millisecond,
		last:   make(map[Cue]time.Time),
		now:    time.Now,
	}
}

// Play plays c and reports whether it was sent to the sink.
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.volume <= 0 {
		return false
	}
	now := p.now()
	if last, ok := p.last[c]; ok && now.Sub(last) < p.minGap {
		return false
	}
	s := Synth(c, p.rate, p.volume)
	if s == nil {
		return false
	}
	p.last[c] = now
	p.sink.Play(s)
	return true
}

// ToggleMute switches sound off or on and returns the new muted state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// OnEvent plays the cue for a zit event.
func (p *Player) OnEvent(ev actor.Event, _ *actor.Zit) {
	switch ev {
	case actor.EventSpawn:
		p.Play(CueSpawn)
	case actor.EventLand:
		p.Play(CueLand)
	case actor.EventDie:
		p.Play(CueDie)
	case actor.EventHome:
		p.Play(CueHome)
	}
}
