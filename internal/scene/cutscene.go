// Package scene holds reusable scenes built on the engine adapter.
package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thcheetah777/engine/internal/engine"
)

const (
	CutsceneSpriteScale = 16
	CutsceneTweenEase   = "Back.easeInOut"
	CutsceneTweenTime   = 500 * time.Millisecond

	// Off-screen margin used for the entry positions.
	cutsceneMargin = 128

	// Vertical offset of the two fighters above the center line.
	cutsceneLift = 64
)

// CutscenePhase tracks where the intro sequence is.
type CutscenePhase int

const (
	PhaseIdle CutscenePhase = iota
	PhaseLeftEntering
	PhaseVersusDropping
	PhaseRightEntering
	PhaseComplete
	PhaseDone
)

func (p CutscenePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLeftEntering:
		return "left_entering"
	case PhaseVersusDropping:
		return "versus_dropping"
	case PhaseRightEntering:
		return "right_entering"
	case PhaseComplete:
		return "complete"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// CutsceneConfig names the scene, its three images and the scene that
// follows it.
type CutsceneConfig struct {
	Key       string
	Left      string
	Right     string
	Versus    string
	NextScene string
}

func (c CutsceneConfig) validate() error {
	switch {
	case c.Key == "":
		return errors.New("cutscene key is required")
	case c.Left == "" || c.Right == "" || c.Versus == "":
		return errors.New("cutscene needs left, right and versus images")
	case c.NextScene == "":
		return errors.New("cutscene next scene is required")
	}
	return nil
}

// Cutscene slides two sprites in from the sides with a "versus" sprite
// dropping between them, then waits for a click to move to NextScene.
type Cutscene struct {
	cfg CutsceneConfig

	mu    sync.Mutex
	phase CutscenePhase

	engine *engine.Engine
	host   engine.SceneHost

	left, right, versus            engine.Sprite
	leftTween, rightTween, vsTween engine.Tween
	offClick                       func()
}

func NewCutscene(cfg CutsceneConfig) (*Cutscene, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Cutscene{cfg: cfg}, nil
}

func (c *Cutscene) Key() string {
	return c.cfg.Key
}

func (c *Cutscene) Phase() CutscenePhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Preload queues the three images, keyed by their paths.
func (c *Cutscene) Preload(loader engine.Loader) {
	loader.Image(c.cfg.Left, c.cfg.Left)
	loader.Image(c.cfg.Right, c.cfg.Right)
	loader.Image(c.cfg.Versus, c.cfg.Versus)
}

// Create places the sprites, chains the tweens and registers the click
// listener. The left tween starts immediately.
func (c *Cutscene) Create(host engine.SceneHost) error {
	if c.host != nil {
		return fmt.Errorf("cutscene %q already created", c.cfg.Key)
	}

	e, err := engine.New(host)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	c.engine = e
	c.host = host

	w, h := e.Width(), e.Height()
	physics := host.Physics()
	tweens := host.Tweens()

	c.left = physics.AddSprite(engine.SpriteConfig{
		X: -cutsceneMargin, Y: h/2 - cutsceneLift, Texture: c.cfg.Left, Scale: CutsceneSpriteScale, Static: true,
	})
	c.right = physics.AddSprite(engine.SpriteConfig{
		X: w + cutsceneMargin, Y: h/2 - cutsceneLift, Texture: c.cfg.Right, Scale: CutsceneSpriteScale, Static: true,
	})
	c.versus = physics.AddSprite(engine.SpriteConfig{
		X: w / 2, Y: -cutsceneMargin, Texture: c.cfg.Versus, Scale: CutsceneSpriteScale, Static: true,
	})

	c.setPhase(PhaseLeftEntering)

	c.rightTween = tweens.Add(engine.TweenConfig{
		Target:     c.right,
		Property:   "x",
		To:         c.right.X() - w/2 + w/6,
		Ease:       CutsceneTweenEase,
		Duration:   CutsceneTweenTime,
		Paused:     true,
		OnComplete: func() { c.setPhase(PhaseComplete) },
	})
	c.vsTween = tweens.Add(engine.TweenConfig{
		Target:   c.versus,
		Property: "y",
		To:       c.versus.Y() + h/2 + cutsceneLift,
		Ease:     CutsceneTweenEase,
		Duration: CutsceneTweenTime,
		Paused:   true,
		OnComplete: func() {
			c.setPhase(PhaseRightEntering)
			c.rightTween.Play()
		},
	})
	c.leftTween = tweens.Add(engine.TweenConfig{
		Target:   c.left,
		Property: "x",
		To:       c.left.X() + w/2 - w/6,
		Ease:     CutsceneTweenEase,
		Duration: CutsceneTweenTime,
		OnComplete: func() {
			c.setPhase(PhaseVersusDropping)
			c.vsTween.Play()
		},
	})

	c.offClick = host.Input().On(engine.PointerDown, func(engine.Pointer) { c.onClick() })

	log.Debug("cutscene created", "key", c.cfg.Key, "next", c.cfg.NextScene)
	return nil
}

// onClick moves on to the next scene once the intro has finished. Clicks
// before that, or after the transition, are ignored.
func (c *Cutscene) onClick() {
	c.mu.Lock()
	if c.phase != PhaseComplete {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseDone
	c.mu.Unlock()

	log.Debug("cutscene finished", "key", c.cfg.Key, "next", c.cfg.NextScene)
	scenes := c.host.Scenes()
	scenes.Stop()
	scenes.Start(c.cfg.NextScene)
}

// Close removes the click listener.
func (c *Cutscene) Close() {
	if c.offClick != nil {
		c.offClick()
		c.offClick = nil
	}
}

func (c *Cutscene) setPhase(p CutscenePhase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}
