// Package audio plays WAV samples on the speaker without blocking the frame
// loop. Samples are decoded once and kept in memory.
package audio

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// Player triggers one-shot sounds and a single looping music track. A
// disabled player accepts every call and does nothing. Failures are logged,
// never returned to the caller of Play or Loop.
type Player struct {
	mu      sync.Mutex
	enabled bool
	started bool
	log     *slog.Logger

	mixer   *beep.Mixer
	music   *beep.Ctrl
	buffers map[string]*beep.Buffer
}

// NewPlayer creates a player. Nothing is audible until Start.
func NewPlayer(enabled bool, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		enabled: enabled,
		log:     log,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
	}
}

// Enabled reports whether the player makes sound.
func (p *Player) Enabled() bool { return p.enabled }

// Start opens the speaker and begins draining the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences everything. The speaker stays open; beep cannot reopen it.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locked(func() { p.mixer.Clear() })
	p.music = nil
}

// Play starts a one-shot sample.
func (p *Player) Play(path string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	buf, err := p.load(path)
	if err != nil {
		p.log.Warn("sound not played", "path", path, "err", err)
		return
	}
	p.locked(func() { p.mixer.Add(buf.Streamer(0, buf.Len())) })
}

// Loop replaces the music track with path, repeated forever.
func (p *Player) Loop(path string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	buf, err := p.load(path)
	if err != nil {
		p.log.Warn("music not played", "path", path, "err", err)
		return
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	p.locked(func() {
		if p.music != nil {
			p.music.Paused = true
		}
		p.mixer.Add(ctrl)
	})
	p.music = ctrl
}

// StopMusic pauses the music track.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music != nil {
		p.locked(func() { p.music.Paused = true })
		p.music = nil
	}
}

// Preload decodes path ahead of its first use.
func (p *Player) Preload(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.load(path)
	return err
}

// Active returns the number of streams in the mixer, paused ones included.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	p.locked(func() { n = p.mixer.Len() })
	return n
}

// locked runs fn with the speaker goroutine held off the mixer.
func (p *Player) locked(fn func()) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func (p *Player) load(path string) (*beep.Buffer, error) {
	if buf, ok := p.buffers[path]; ok {
		return buf, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	p.buffers[path] = buf
	return buf, nil
}
