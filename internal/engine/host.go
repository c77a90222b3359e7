package engine

import "time"

// Host is the game engine runtime the adapter drives. Rendering, physics,
// tweening and event dispatch all happen on the host side.
type Host interface {
	Canvas() Size
	Input() Input
	Keyboard() Keyboard
	Animations() Animations
	Camera() Camera
	Clock() Clock
}

// PhysicsHost is implemented by hosts that can spawn physics sprites.
type PhysicsHost interface {
	Physics() Physics
}

type Size struct {
	Width  float64
	Height float64
}

type PointerEvent string

const (
	PointerDown PointerEvent = "pointerdown"
	PointerUp   PointerEvent = "pointerup"
)

type Pointer struct {
	X float64
	Y float64
}

// Input dispatches pointer events. On returns a function that removes the
// listener.
type Input interface {
	On(event PointerEvent, fn func(Pointer)) (off func())
	Pointer() Pointer
}

type Keyboard interface {
	IsDown(code KeyCode) bool
}

type Frame struct {
	Key string
}

type AnimationConfig struct {
	Key       string
	Frames    []Frame
	FrameRate float64
	// Repeat is -1 for forever, 0 for play once.
	Repeat int
	Yoyo   bool
}

type Animations interface {
	Create(cfg AnimationConfig) error
}

type Camera interface {
	SetBackgroundColor(c Color)
}

type TimerConfig struct {
	Delay    time.Duration
	Callback func()
	// Repeat is -1 for forever.
	Repeat int
}

type Timer interface {
	Remove()
}

type Clock interface {
	AddEvent(cfg TimerConfig) Timer
}

type SpriteConfig struct {
	X       float64
	Y       float64
	Texture string
	Scale   float64
	Static  bool
	// Body tuning, ignored for static sprites.
	GravityY   float64
	BodyWidth  float64
	BodyHeight float64
	OriginX    float64
	OriginY    float64
	Depth      float64
}

type Sprite interface {
	X() float64
	Y() float64
	SetPosition(x, y float64)
	Scale() float64
	SetScale(s float64)
}

type Physics interface {
	AddSprite(cfg SpriteConfig) Sprite
}

type TweenConfig struct {
	Target Sprite
	// Property is "x" or "y".
	Property   string
	To         float64
	Ease       string
	Duration   time.Duration
	Paused     bool
	OnComplete func()
}

type Tween interface {
	Play()
}

type Tweens interface {
	Add(cfg TweenConfig) Tween
}

// Scenes controls the host scene manager from inside a running scene.
type Scenes interface {
	Stop()
	Start(key string)
}

type Loader interface {
	Image(key, path string)
}

// SceneHost is the full host surface available to a scene.
type SceneHost interface {
	Host
	PhysicsHost
	Tweens() Tweens
	Scenes() Scenes
	Loader() Loader
}
