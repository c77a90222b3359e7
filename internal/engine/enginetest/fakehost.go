// Package enginetest provides an in-memory engine.SceneHost for tests.
package enginetest

import (
	"time"

	"github.com/thcheetah777/engine/internal/engine"
)

// FakeHost records every call made through the engine adapter.
type FakeHost struct {
	Size       engine.Size
	FakeInput  *FakeInput
	FakeKeys   *FakeKeyboard
	FakeAnims  *FakeAnimations
	FakeCamera *FakeCamera
	FakeClock  *FakeClock
	FakePhys   *FakePhysics
	FakeTweens *FakeTweens
	FakeScenes *FakeScenes
	FakeLoader *FakeLoader
}

var _ engine.SceneHost = (*FakeHost)(nil)

// NewFakeHost creates a host with the given canvas size.
func NewFakeHost(width, height float64) *FakeHost {
	return &FakeHost{
		Size:       engine.Size{Width: width, Height: height},
		FakeInput:  &FakeInput{listeners: make(map[engine.PointerEvent]map[int]func(engine.Pointer))},
		FakeKeys:   &FakeKeyboard{down: make(map[engine.KeyCode]bool)},
		FakeAnims:  &FakeAnimations{},
		FakeCamera: &FakeCamera{},
		FakeClock:  &FakeClock{},
		FakePhys:   &FakePhysics{},
		FakeTweens: &FakeTweens{},
		FakeScenes: &FakeScenes{},
		FakeLoader: &FakeLoader{Images: make(map[string]string)},
	}
}

func (h *FakeHost) Canvas() engine.Size { return h.Size }
func (h *FakeHost) Input() engine.Input { return h.FakeInput }
func (h *FakeHost) Keyboard() engine.Keyboard { return h.FakeKeys }
func (h *FakeHost) Animations() engine.Animations { return h.FakeAnims }
func (h *FakeHost) Camera() engine.Camera { return h.FakeCamera }
func (h *FakeHost) Clock() engine.Clock { return h.FakeClock }
func (h *FakeHost) Physics() engine.Physics { return h.FakePhys }
func (h *FakeHost) Tweens() engine.Tweens { return h.FakeTweens }
func (h *FakeHost) Scenes() engine.Scenes { return h.FakeScenes }
func (h *FakeHost) Loader() engine.Loader { return h.FakeLoader }

// BareHost exposes only the required engine.Host methods of a FakeHost.
type BareHost struct {
	Fake *FakeHost
}

func (b BareHost) Canvas() engine.Size { return b.Fake.Canvas() }
func (b BareHost) Input() engine.Input { return b.Fake.Input() }
func (b BareHost) Keyboard() engine.Keyboard { return b.Fake.Keyboard() }
func (b BareHost) Animations() engine.Animations { return b.Fake.Animations() }
func (b BareHost) Camera() engine.Camera { return b.Fake.Camera() }
func (b BareHost) Clock() engine.Clock { return b.Fake.Clock() }

type FakeInput struct {
	Current   engine.Pointer
	listeners map[engine.PointerEvent]map[int]func(engine.Pointer)
	nextID    int
}

func (in *FakeInput) On(event engine.PointerEvent, fn func(engine.Pointer)) func() {
	if in.listeners[event] == nil {
		in.listeners[event] = make(map[int]func(engine.Pointer))
	}
	id := in.nextID
	in.nextID++
	in.listeners[event][id] = fn
	return func() {
		delete(in.listeners[event], id)
	}
}

func (in *FakeInput) Pointer() engine.Pointer {
	return in.Current
}

// Emit dispatches event at the current pointer position.
func (in *FakeInput) Emit(event engine.PointerEvent) {
	for _, fn := range in.listeners[event] {
		fn(in.Current)
	}
}

// Click emits a pointer-down followed by a pointer-up.
func (in *FakeInput) Click() {
	in.Emit(engine.PointerDown)
	in.Emit(engine.PointerUp)
}

func (in *FakeInput) MoveTo(x, y float64) {
	in.Current = engine.Pointer{X: x, Y: y}
}

func (in *FakeInput) ListenerCount(event engine.PointerEvent) int {
	return len(in.listeners[event])
}

type FakeKeyboard struct {
	down map[engine.KeyCode]bool
}

func (k *FakeKeyboard) IsDown(code engine.KeyCode) bool {
	return k.down[code]
}

func (k *FakeKeyboard) Press(code engine.KeyCode) {
	k.down[code] = true
}

func (k *FakeKeyboard) Release(code engine.KeyCode) {
	delete(k.down, code)
}

type FakeAnimations struct {
	Created []engine.AnimationConfig
	Err     error
}

func (a *FakeAnimations) Create(cfg engine.AnimationConfig) error {
	if a.Err != nil {
		return a.Err
	}
	a.Created = append(a.Created, cfg)
	return nil
}

type FakeCamera struct {
	Background []engine.Color
}

func (c *FakeCamera) SetBackgroundColor(col engine.Color) {
	c.Background = append(c.Background, col)
}

type FakeTimer struct {
	Config  engine.TimerConfig
	Removed bool
	Fired   int
	elapsed time.Duration
}

func (t *FakeTimer) Remove() {
	t.Removed = true
}

type FakeClock struct {
	Timers []*FakeTimer
}

func (c *FakeClock) AddEvent(cfg engine.TimerConfig) engine.Timer {
	t := &FakeTimer{Config: cfg}
	c.Timers = append(c.Timers, t)
	return t
}

// Advance moves time forward and fires due callbacks.
func (c *FakeClock) Advance(d time.Duration) {
	for _, t := range c.Timers {
		if t.Removed || t.Config.Delay <= 0 {
			continue
		}
		t.elapsed += d
		for t.elapsed >= t.Config.Delay && !t.Removed {
			if t.Config.Repeat >= 0 && t.Fired > t.Config.Repeat {
				break
			}
			t.elapsed -= t.Config.Delay
			t.Fired++
			t.Config.Callback()
		}
	}
}

type FakeSprite struct {
	Config engine.SpriteConfig
	x, y   float64
	scale  float64
}

func (s *FakeSprite) X() float64 { return s.x }
func (s *FakeSprite) Y() float64 { return s.y }
func (s *FakeSprite) SetPosition(x, y float64) { s.x, s.y = x, y }
func (s *FakeSprite) Scale() float64 { return s.scale }
func (s *FakeSprite) SetScale(v float64) { s.scale = v }

type FakePhysics struct {
	Sprites []*FakeSprite
}

func (p *FakePhysics) AddSprite(cfg engine.SpriteConfig) engine.Sprite {
	s := &FakeSprite{Config: cfg, x: cfg.X, y: cfg.Y, scale: cfg.Scale}
	p.Sprites = append(p.Sprites, s)
	return s
}

type FakeTween struct {
	Config  engine.TweenConfig
	Playing bool
	Plays   int
	Done    bool
}

func (t *FakeTween) Play() {
	t.Playing = true
	t.Plays++
}

// Finish jumps the target to the end value and fires OnComplete.
func (t *FakeTween) Finish() {
	switch t.Config.Property {
	case "x":
		t.Config.Target.SetPosition(t.Config.To, t.Config.Target.Y())
	case "y":
		t.Config.Target.SetPosition(t.Config.Target.X(), t.Config.To)
	}
	t.Playing = false
	t.Done = true
	if t.Config.OnComplete != nil {
		t.Config.OnComplete()
	}
}

type FakeTweens struct {
	Added []*FakeTween
}

func (ts *FakeTweens) Add(cfg engine.TweenConfig) engine.Tween {
	t := &FakeTween{Config: cfg, Playing: !cfg.Paused}
	if t.Playing {
		t.Plays = 1
	}
	ts.Added = append(ts.Added, t)
	return t
}

// RunAll finishes playing tweens until none are left playing.
func (ts *FakeTweens) RunAll() {
	for {
		progressed := false
		for _, t := range ts.Added {
			if t.Playing {
				t.Finish()
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

type FakeScenes struct {
	Stopped int
	Started []string
}

func (s *FakeScenes) Stop() { s.Stopped++ }
func (s *FakeScenes) Start(key string) { s.Started = append(s.Started, key) }

type FakeLoader struct {
	Images map[string]string
}

func (l *FakeLoader) Image(key, path string) {
	l.Images[key] = path
}
