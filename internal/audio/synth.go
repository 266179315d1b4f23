// Package audio synthesizes short sound cues for zit events and plays them
// through the system speaker. Everything is generated; there are no sound
// files.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sliding in pitch.
type oscillator struct {
	freq     float64
	slide    float64 // Hz per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates an oscillator that plays for duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch moves linearly from one
// frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	slide := 0.0
	if duration > 0 {
		slide = (to - from) / duration.Seconds()
	}
	return &oscillator{
		freq:     from,
		slide:    slide,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(from*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.freq += o.slide / float64(o.rate)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue is a sound played for a game event.
type Cue int

const (
	CueSpawn Cue = iota
	CueLand
	CueDie
	CueHome
	CueMove
	CueLevelDone
)

func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueLand:
		return "land"
	case CueDie:
		return "die"
	case CueHome:
		return "home"
	case CueMove:
		return "move"
	case CueLevelDone:
		return "level_done"
	default:
		return "unknown"
	}
}

// Synth builds the streamer for a cue at the given volume.
func Synth(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueSpawn:
		d := 90 * time.Millisecond
		s = NewEnvelope(NewSweep(330, 660, d, WaveSine, rate), d, 5*time.Millisecond, 40*time.Millisecond, rate)
	case CueLand:
		d := 60 * time.Millisecond
		s = NewEnvelope(NewOscillator(110, d, WaveSquare, rate), d, 2*time.Millisecond, 50*time.Millisecond, rate)
		volume *= 0.5
	case CueDie:
		d := 300 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 250*time.Millisecond, rate)
		thud := NewEnvelope(NewSweep(180, 40, d, WaveSaw, rate), d, 2*time.Millisecond, 200*time.Millisecond, rate)
		s = beep.Take(rate.N(d), beep.Mix(newVolume(noise, 0.6), newVolume(thud, 0.4)))
	case CueHome:
		d1, d2 := 80*time.Millisecond, 160*time.Millisecond
		n1 := NewEnvelope(NewOscillator(987.77, d1, WaveSquare, rate), d1, 5*time.Millisecond, 30*time.Millisecond, rate)
		n2 := NewEnvelope(NewOscillator(1318.51, d2, WaveSquare, rate), d2, 5*time.Millisecond, 120*time.Millisecond, rate)
		s = beep.Seq(n1, n2)
		volume *= 0.6
	case CueMove:
		d := 40 * time.Millisecond
		s = NewEnvelope(NewOscillator(220, d, WaveSaw, rate), d, 2*time.Millisecond, 30*time.Millisecond, rate)
		volume *= 0.3
	case CueLevelDone:
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		parts := make([]beep.Streamer, len(notes))
		for i, f := range notes {
			d := 120 * time.Millisecond
			parts[i] = NewEnvelope(NewOscillator(f, d, WaveSine, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
		}
		s = beep.Seq(parts...)
	default:
		return nil
	}
	return newVolume(s, volume)
}
