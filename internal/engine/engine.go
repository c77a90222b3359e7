// Package engine is a thin adapter over a host game engine. It keeps the host
// handle explicit and owns the lifetime of every listener and timer it
// registers.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thcheetah777/engine/internal/ranges"
	"github.com/thcheetah777/engine/internal/rng"
)

var (
	ErrNoHost       = errors.New("host is nil")
	ErrUnknownKey   = errors.New("unknown key")
	ErrNoFrames     = errors.New("animation has no frames")
	ErrInvalidColor = errors.New("invalid color")
	ErrUnsupported  = errors.New("host does not support this capability")
)

// Engine wraps a Host with convenience helpers.
type Engine struct {
	host   Host
	rand   *rng.Rand
	width  float64
	height float64
}

type Option func(*Engine)

// WithRand sets the random source used by the helpers.
func WithRand(r *rng.Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// New creates an Engine bound to host. Canvas dimensions are captured once.
func New(host Host, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, ErrNoHost
	}

	size := host.Canvas()
	e := &Engine{
		host:   host,
		width:  size.Width,
		height: size.Height,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rand == nil {
		e.rand = rng.NewTimeSeeded()
	}

	log.Debug("engine created", "width", e.width, "height", e.height)
	return e, nil
}

func (e *Engine) Host() Host { return e.host }
func (e *Engine) Rand() *rng.Rand { return e.rand }
func (e *Engine) Width() float64 { return e.width }
func (e *Engine) Height() float64 { return e.height }
func (e *Engine) CenterX() float64 { return e.width / 2 }
func (e *Engine) CenterY() float64 { return e.height / 2 }

func (e *Engine) RandomBetween(min, max float64) float64 {
	return e.rand.Between(min, max)
}

func (e *Engine) RoundRandomBetween(min, max int) int {
	return e.rand.RoundBetween(min, max)
}

func (e *Engine) RandomPercentage() int {
	return e.rand.Percentage()
}

func (e *Engine) RandomBool() bool {
	return e.rand.Bool()
}

// PercentageCheck returns the index of the range containing percentage.
func (e *Engine) PercentageCheck(intervals []ranges.Interval, percentage float64) (int, bool) {
	return ranges.SelectIndex(intervals, percentage)
}

// AddAnimation registers an animation built from frame keys. repeat loops the
// animation forever.
func (e *Engine) AddAnimation(name string, frameRate float64, repeat, yoyo bool, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFrames, name)
	}

	frames := make([]Frame, len(keys))
	for i, k := range keys {
		frames[i] = Frame{Key: k}
	}

	cfg := AnimationConfig{
		Key:       name,
		Frames:    frames,
		FrameRate: frameRate,
		Repeat:    0,
		Yoyo:      yoyo,
	}
	if repeat {
		cfg.Repeat = -1
	}

	if err := e.host.Animations().Create(cfg); err != nil {
		return fmt.Errorf("failed to create animation %q: %w", name, err)
	}

	log.Debug("animation added", "name", name, "frames", len(frames), "frame_rate", frameRate, "repeat", cfg.Repeat, "yoyo", yoyo)
	return nil
}

// SetBackgroundColor sets the main camera background from a hex string.
func (e *Engine) SetBackgroundColor(hex string) error {
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	e.host.Camera().SetBackgroundColor(c)
	return nil
}

// Every runs callback every delay until the returned timer is removed.
func (e *Engine) Every(delay time.Duration, callback func()) Timer {
	log.Debug("repeating timer added", "delay", delay)
	return e.host.Clock().AddEvent(TimerConfig{
		Delay:    delay,
		Callback: callback,
		Repeat:   -1,
	})
}

// IsKeyDown reports whether the named key is held.
func (e *Engine) IsKeyDown(name string) (bool, error) {
	code, err := LookupKey(name)
	if err != nil {
		return false, err
	}
	return e.host.Keyboard().IsDown(code), nil
}

func (e *Engine) physics() (Physics, error) {
	ph, ok := e.host.(PhysicsHost)
	if !ok {
		return nil, ErrUnsupported
	}
	return ph.Physics(), nil
}
