package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/opdozitz/internal/actor"
)

// drain streams s to the end and returns the sample count and peak.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, tt.wave, rate)
			samples := make([][2]float64, 100)
			n, ok := osc.Stream(samples)
			if !ok || n != 100 {
				t.Fatalf("Stream() = %d, %v, expected 100, true", n, ok)
			}
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 || samples[i][0] != samples[i][1] {
					t.Fatalf("sample %d = %v out of range or not mono", i, samples[i])
				}
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	n, _ := drain(NewOscillator(440, 100*time.Millisecond, WaveSine, rate))
	if n != rate.N(100*time.Millisecond) {
		t.Errorf("streamed %d samples, expected %d", n, rate.N(100*time.Millisecond))
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Stream() = %d samples, expected 100", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, expected silence at attack start", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain sample = %v, expected 1", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("release not decaying: %v >= %v", samples[99][0], samples[90][0])
	}
}

func TestSynthEveryCue(t *testing.T) {
	for c := CueSpawn; c <= CueLevelDone; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s := Synth(c, SampleRate, 1)
			if s == nil {
				t.Fatal("Synth() = nil")
			}
			n, peak := drain(s)
			if n == 0 {
				t.Error("cue produced no samples")
			}
			if peak == 0 || peak > 1.01 {
				t.Errorf("peak = %v, expected audible and unclipped", peak)
			}
		})
	}
	if Synth(Cue(99), SampleRate, 1) != nil {
		t.Error("unknown cue should synthesize nothing")
	}
}

func TestSynthSilentVolume(t *testing.T) {
	_, peak := drain(Synth(CueHome, SampleRate, 0))
	if peak != 0 {
		t.Errorf("peak = %v at volume 0, expected silence", peak)
	}
}

type recordSink struct {
	played int
}

func (r *recordSink) Play(beep.Streamer) { r.played++ }

func TestPlayerThrottlesRepeats(t *testing.T) {
	sink := &recordSink{}
	p := NewPlayer(sink, 1)
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	if !p.Play(CueLand) {
		t.Fatal("first Play() = false")
	}
	if p.Play(CueLand) {
		t.Error("repeat within the gap was played")
	}
	if !p.Play(CueDie) {
		t.Error("a different cue was throttled")
	}
	clock = clock.Add(100 * time.Millisecond)
	if !p.Play(CueLand) {
		t.Error("repeat after the gap was dropped")
	}
	if sink.played != 3 {
		t.Errorf("sink played %d, expected 3", sink.played)
	}
}

func TestPlayerMute(t *testing.T) {
	sink := &recordSink{}
	p := NewPlayer(sink, 1)

	if !p.ToggleMute() || !p.Muted() {
		t.Fatal("ToggleMute() did not mute")
	}
	if p.Play(CueHome) {
		t.Error("muted player played")
	}
	p.ToggleMute()
	if !p.Play(CueHome) {
		t.Error("unmuted player stayed silent")
	}
}

func TestPlayerListensToZits(t *testing.T) {
	sink := &recordSink{}
	p := NewPlayer(sink, 1)
	var l actor.Listener = p

	l.OnEvent(actor.EventSpawn, nil)
	l.OnEvent(actor.EventHome, nil)
	if sink.played != 2 {
		t.Errorf("sink played %d, expected 2", sink.played)
	}

	NewPlayer(nil, 1).OnEvent(actor.EventDie, nil)
}
