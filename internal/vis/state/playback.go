package state

import "time"

// DefaultRate is the default replay speed in events per second.
const DefaultRate = 40.0

// PlaybackState steps through a recorded search trace.
type PlaybackState struct {
	Position   float64 // Current position in events
	Length     int     // Number of events in the trace
	Rate       float64 // Events per second
	Playing    bool
	lastUpdate time.Time
}

// NewPlaybackState creates a playback over length events.
func NewPlaybackState(length int) *PlaybackState {
	return &PlaybackState{
		Length:     length,
		Rate:       DefaultRate,
		lastUpdate: time.Now(),
	}
}

// Load switches to a new trace, jumping to its end so the result shows.
func (p *PlaybackState) Load(length int) {
	p.Length = length
	p.Position = float64(length)
	p.Playing = false
}

// Step returns the number of events to replay for the current position.
func (p *PlaybackState) Step() int {
	return int(p.Position)
}

// AtEnd reports whether the whole trace is shown.
func (p *PlaybackState) AtEnd() bool {
	return p.Step() >= p.Length
}

// TogglePlay toggles playback, restarting from the beginning at the end.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.AtEnd() {
			p.Position = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to the first event.
func (p *PlaybackState) Reset() {
	p.Position = 0
	p.Playing = false
}

// Advance moves forward by the time elapsed since the last call.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.advanceBy(now.Sub(p.lastUpdate))
	p.lastUpdate = now
}

func (p *PlaybackState) advanceBy(d time.Duration) {
	p.Position += d.Seconds() * p.Rate
	if p.Position >= float64(p.Length) {
		p.Position = float64(p.Length)
		p.Playing = false
	}
}

// Seek sets the position, clamped to the trace.
func (p *PlaybackState) Seek(pos float64) {
	if pos < 0 {
		pos = 0
	}
	if pos > float64(p.Length) {
		pos = float64(p.Length)
	}
	p.Position = pos
}

// StepForward pauses and moves one event ahead.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.Seek(float64(p.Step() + 1))
}

// StepBack pauses and moves one event back.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.Seek(float64(p.Step() - 1))
}

// SetRate sets the replay speed, clamped to [1, 2000] events per second.
func (p *PlaybackState) SetRate(rate float64) {
	if rate < 1 {
		rate = 1
	}
	if rate > 2000 {
		rate = 2000
	}
	p.Rate = rate
}

// Progress returns the position as a fraction in [0, 1].
func (p *PlaybackState) Progress() float64 {
	if p.Length <= 0 {
		return 0
	}
	return p.Position / float64(p.Length)
}
