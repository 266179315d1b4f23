package actor

import "math"

// Playback tracks the progress of a flipbook animation.
type Playback struct {
	elapsed      float64
	timePerFrame float64
	frameCount   int
}

// NewPlayback starts a playback of frameCount frames.
func NewPlayback(timePerFrame float64, frameCount int) *Playback {
	return &Playback{timePerFrame: timePerFrame, frameCount: frameCount}
}

// Update advances the playback and reports whether it has finished.
func (p *Playback) Update(elapsed float64) bool {
	p.elapsed += elapsed
	return p.Done()
}

// Done reports whether every frame has been shown for its full time.
func (p *Playback) Done() bool {
	return p.elapsed > p.timePerFrame*float64(p.frameCount)
}

// Frame returns the index of the frame to show.
func (p *Playback) Frame() int {
	if p.timePerFrame <= 0 {
		return p.frameCount - 1
	}
	f := int(math.Floor(p.elapsed / p.timePerFrame))
	if f > p.frameCount-1 {
		return p.frameCount - 1
	}
	return f
}

// FrameCount returns the number of frames.
func (p *Playback) FrameCount() int {
	return p.frameCount
}
