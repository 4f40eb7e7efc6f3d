package video

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jengzang/igs-backend-go/internal/models"
)

var (
	// ErrNoVideo is returned when a command arrives before a video is loaded
	ErrNoVideo = errors.New("no video loaded")
	// ErrUnknownAction is returned for player actions that do not exist
	ErrUnknownAction = errors.New("unknown video action")
)

// Player is the control surface of a video source
type Player interface {
	Play()
	Pause()
	SeekTo(seconds float64)
	CurrentTime() float64
	Duration() float64
	Mute()
	Unmute()
	Show()
	Hide()
	Destroy()
}

// IsVideoFile reports whether the file name is a playable video upload
func IsVideoFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".mp4")
}

// Headless tracks player state on the server. The play head advances with
// the wall clock while playing, as a browser player would.
type Headless struct {
	mu        sync.Mutex
	platform  string
	source    string
	duration  float64
	position  float64
	playing   bool
	startedAt time.Time
	muted     bool
	showing   bool
	destroyed bool

	now func() time.Time
}

// NewHeadless creates a paused, muted, hidden player for a source
func NewHeadless(platform, source string, duration float64) *Headless {
	if duration < 0 {
		duration = 0
	}
	return &Headless{
		platform: platform,
		source:   source,
		duration: duration,
		muted:    true,
		now:      time.Now,
	}
}

// current returns the play head; mu must be held
func (h *Headless) current() float64 {
	pos := h.position
	if h.playing {
		pos += h.now().Sub(h.startedAt).Seconds()
	}
	if h.duration > 0 && pos > h.duration {
		pos = h.duration
	}
	return pos
}

func (h *Headless) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.playing || h.destroyed {
		return
	}
	h.playing = true
	h.startedAt = h.now()
}

func (h *Headless) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.position = h.current()
	h.playing = false
}

func (h *Headless) SeekTo(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if h.duration > 0 && seconds > h.duration {
		seconds = h.duration
	}
	h.position = seconds
	h.startedAt = h.now()
}

func (h *Headless) CurrentTime() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current()
}

func (h *Headless) Duration() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.duration
}

// SetDuration records the media length once the client reports it
func (h *Headless) SetDuration(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seconds >= 0 {
		h.duration = seconds
	}
}

func (h *Headless) Mute()   { h.set(func() { h.muted = true }) }
func (h *Headless) Unmute() { h.set(func() { h.muted = false }) }
func (h *Headless) Show()   { h.set(func() { h.showing = true }) }
func (h *Headless) Hide()   { h.set(func() { h.showing = false }) }

func (h *Headless) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.position = h.current()
	h.playing = false
	h.showing = false
	h.destroyed = true
}

func (h *Headless) set(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

// State snapshots the player
func (h *Headless) State() models.VideoState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return models.VideoState{
		Platform:    h.platform,
		Source:      h.source,
		Duration:    h.duration,
		CurrentTime: h.current(),
		Playing:     h.playing,
		Muted:       h.muted,
		Showing:     h.showing,
	}
}

// Apply runs a command from the API against a player
func Apply(p Player, cmd models.VideoCommand) error {
	if p == nil {
		return ErrNoVideo
	}
	switch strings.ToLower(cmd.Action) {
	case "play":
		p.Play()
	case "pause":
		p.Pause()
	case "seek":
		if cmd.Time == nil {
			return fmt.Errorf("seek needs a time")
		}
		p.SeekTo(*cmd.Time)
	case "mute":
		p.Mute()
	case "unmute":
		p.Unmute()
	case "show":
		p.Show()
	case "hide":
		p.Hide()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
	}
	if cmd.Duration != nil {
		if h, ok := p.(*Headless); ok {
			h.SetDuration(*cmd.Duration)
		}
	}
	return nil
}
