package engine

import "math"

const (
	CursorTexture      = "cursor"
	CursorScale        = 8.0
	CursorPressedScale = 6.5
)

// Cursor renders above everything else.
var maxDepth = math.Inf(1)

// PixelCursor is a sprite that follows the pointer and shrinks while pressed.
// The host's default cursor should be hidden by the page embedding the game.
type PixelCursor struct {
	input   Input
	sprite  Sprite
	pointer *PointerState
	offs    []func()
}

// PixelCursor spawns the cursor sprite at the current pointer position.
// It requires a host implementing PhysicsHost.
func (e *Engine) PixelCursor() (*PixelCursor, error) {
	ph, err := e.physics()
	if err != nil {
		return nil, err
	}

	input := e.host.Input()
	p := input.Pointer()
	c := &PixelCursor{
		input:   input,
		pointer: e.TrackPointer(),
		sprite: ph.AddSprite(SpriteConfig{
			X:          p.X,
			Y:          p.Y,
			Texture:    CursorTexture,
			Scale:      CursorScale,
			GravityY:   -1500,
			BodyWidth:  2,
			BodyHeight: 2,
			OriginX:    0,
			OriginY:    0,
			Depth:      maxDepth,
		}),
	}

	c.offs = append(c.offs,
		input.On(PointerDown, func(Pointer) { c.sprite.SetScale(CursorPressedScale) }),
		input.On(PointerUp, func(Pointer) { c.sprite.SetScale(CursorScale) }),
	)
	return c, nil
}

// Update moves the sprite to the pointer. Call once per frame.
func (c *PixelCursor) Update() {
	p := c.input.Pointer()
	c.sprite.SetPosition(p.X, p.Y)
}

func (c *PixelCursor) Sprite() Sprite {
	return c.sprite
}

func (c *PixelCursor) Pressed() bool {
	return c.pointer.Down()
}

func (c *PixelCursor) Close() {
	for _, off := range c.offs {
		if off != nil {
			off()
		}
	}
	c.offs = nil
	c.pointer.Close()
}
